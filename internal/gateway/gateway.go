// Package gateway maintains the client's real-time connection: a WebSocket
// carrying wire events inbound and wire commands outbound. Received events
// are applied straight to the state containers.
package gateway

import (
	"context"
	"net/http"
	"sync"

	"chatapp-client/internal/store"
	"chatapp-client/internal/wire"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Gateway struct {
	sugar    *zap.SugaredLogger
	servers  *store.Servers
	messages *store.Messages

	writeMutex sync.Mutex
	conn       *websocket.Conn
	done       chan struct{}

	// OnClose, when set before Dial, runs once when the read loop ends. A
	// nil error means a locally requested Close.
	OnClose func(error)
}

func New(servers *store.Servers, messages *store.Messages, sugar *zap.SugaredLogger) *Gateway {
	return &Gateway{
		sugar:    sugar,
		servers:  servers,
		messages: messages,
	}
}

// Dial connects to the event feed and starts the read loop. The bearer token
// rides along as a header, same as on the HTTP surface.
func (g *Gateway) Dial(ctx context.Context, url string, token string) error {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return err
	}

	g.conn = conn
	g.done = make(chan struct{})
	go g.readLoop()
	return nil
}

// Send encodes a command and writes it to the feed.
func (g *Gateway) Send(cmd wire.Command) error {
	data, err := wire.EncodeCommand(cmd)
	if err != nil {
		return err
	}

	g.writeMutex.Lock()
	defer g.writeMutex.Unlock()
	return g.conn.WriteMessage(websocket.TextMessage, data)
}

// Close tears the connection down and waits for the read loop to end.
func (g *Gateway) Close() error {
	if g.conn == nil {
		return nil
	}
	err := g.conn.Close()
	<-g.done
	return err
}

func (g *Gateway) readLoop() {
	defer close(g.done)

	for {
		_, data, err := g.conn.ReadMessage()
		if err != nil {
			g.sugar.Debug(err)
			if g.OnClose != nil {
				g.OnClose(err)
			}
			return
		}

		event, err := wire.DecodeEvent(data)
		if err != nil {
			g.sugar.Debug(err)
			continue
		}
		g.apply(event)
	}
}

func (g *Gateway) apply(event wire.Event) {
	switch ev := event.(type) {
	case wire.MessageSent:
		g.messages.ClearTyping(ev.Message.ChannelID, ev.Message.Author.Username)
		g.messages.AddMessage(ev.Message)
	case wire.MessageEdited:
		g.messages.EditMessage(ev.Message.ID, ev.Message.ChannelID, ev.Message.Content)
	case wire.MessageDeleted:
		g.messages.DeleteMessage(ev.MessageID, ev.ChannelID)
	case wire.ServerCreated:
		g.servers.AddServer(ev.Server)
	case wire.ChannelCreated:
		g.servers.AddChannel(ev.Channel)
	case wire.MemberJoinedServer:
		g.servers.AddMember(ev.ServerID, ev.Member)
	case wire.TypingStarted:
		g.messages.SetTyping(ev.ChannelID, ev.User.Username)
	case wire.UserRegistered:
		g.sugar.Debugf("User [%s] registered", ev.User.Username)
	case wire.UserLoggedIn:
		g.sugar.Debugf("User [%s] logged in", ev.User.Username)
	default:
		g.sugar.Debugf("Unhandled event type [%s]", event.EventType())
	}
}
