package devserver

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"chatapp-client/internal/wire"

	"github.com/gorilla/websocket"
)

var errUnknownChannel = errors.New("unknown channel")

type feedClient struct {
	userID string

	writeMutex sync.Mutex
	conn       *websocket.Conn
}

func (c *feedClient) send(data []byte) error {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.sugar.Error(err)
		return
	}
	defer conn.Close()

	sessionID, err := s.snow.Next()
	if err != nil {
		s.sugar.Error(err)
		return
	}

	client := &feedClient{userID: userID, conn: conn}

	s.clientsMutex.Lock()
	s.clients[sessionID] = client
	s.clientsMutex.Unlock()
	s.sugar.Debugf("Session ID [%d] connected to the event feed", sessionID)

	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, sessionID)
		s.clientsMutex.Unlock()
		s.sugar.Debugf("Session ID [%d] left the event feed", sessionID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.sugar.Debug(err)
			return
		}

		cmd, err := wire.DecodeCommand(data)
		if err != nil {
			s.sugar.Debug(err)
			continue
		}
		s.handleCommand(userID, cmd)
	}
}

// broadcast fans an event out to every connected feed client.
func (s *Server) broadcast(event wire.Event) {
	data, err := wire.EncodeEvent(event)
	if err != nil {
		s.sugar.Error(err)
		return
	}

	s.clientsMutex.Lock()
	clients := make([]*feedClient, 0, len(s.clients))
	for _, client := range s.clients {
		clients = append(clients, client)
	}
	s.clientsMutex.Unlock()

	for _, client := range clients {
		if err := client.send(data); err != nil {
			s.sugar.Debug(err)
		}
	}
}

func (s *Server) handleCommand(userID string, cmd wire.Command) {
	switch cmd := cmd.(type) {
	case wire.SendMessage:
		msg, err := s.appendMessage(cmd.ChannelID, userID, cmd.Content)
		if err != nil {
			s.sugar.Debug(err)
			return
		}
		s.broadcast(wire.MessageSent{Message: msg})

	case wire.StartTyping:
		s.mutex.Lock()
		user := s.users[userID]
		s.mutex.Unlock()
		s.broadcast(wire.TypingStarted{ChannelID: cmd.ChannelID, User: user})

	case wire.EditMessage:
		s.mutex.Lock()
		channelID, found := s.messageChannel[cmd.MessageID]
		var edited *wire.MessageEdited
		if found {
			msgs := s.messages[channelID]
			for i := range msgs {
				if msgs[i].ID == cmd.MessageID && msgs[i].Author.ID == userID {
					now := time.Now().UTC()
					msgs[i].Content = cmd.Content
					msgs[i].EditedAt = &now
					edited = &wire.MessageEdited{Message: msgs[i]}
					break
				}
			}
		}
		s.mutex.Unlock()
		if edited != nil {
			s.broadcast(*edited)
		}

	case wire.DeleteMessage:
		s.mutex.Lock()
		channelID, found := s.messageChannel[cmd.MessageID]
		deleted := false
		if found {
			msgs := s.messages[channelID]
			kept := msgs[:0]
			for _, msg := range msgs {
				if msg.ID == cmd.MessageID && msg.Author.ID == userID {
					deleted = true
					continue
				}
				kept = append(kept, msg)
			}
			if deleted {
				s.messages[channelID] = kept
				delete(s.messageChannel, cmd.MessageID)
			}
		}
		s.mutex.Unlock()
		if deleted {
			s.broadcast(wire.MessageDeleted{MessageID: cmd.MessageID, ChannelID: channelID})
		}

	default:
		// account and catalog commands go through the HTTP surface
		s.sugar.Debugf("Ignoring feed command type [%s]", cmd.CommandType())
	}
}
