package devserver

import (
	"encoding/json"
	"net/http"
	"time"

	"chatapp-client/internal/models"
	"chatapp-client/internal/validate"
	"chatapp-client/internal/wire"

	"github.com/go-chi/chi/v5"
)

const messagePageSize = 50

func (s *Server) listServers(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	s.mutex.Lock()
	servers := []models.Server{}
	for _, server := range s.servers {
		for _, member := range s.members[server.ID] {
			if member.User.ID == userID {
				servers = append(servers, server)
				break
			}
		}
	}
	s.mutex.Unlock()

	s.writeJSON(w, http.StatusOK, servers)
}

func (s *Server) createServer(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.sugar.Debug(err)
		s.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	if err := validate.Struct(validate.ServerForm{Name: body.Name}); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	serverID, err := s.nextID()
	if err != nil {
		s.sugar.Error(err)
		s.writeError(w, http.StatusInternalServerError, "couldn't generate server ID")
		return
	}

	server := models.Server{
		ID:        serverID,
		Name:      body.Name,
		OwnerID:   userID,
		CreatedAt: time.Now().UTC(),
	}

	s.mutex.Lock()
	owner := s.users[userID]
	s.servers = append(s.servers, server)
	s.channels[serverID] = []models.Channel{}
	s.members[serverID] = []models.ServerMember{{
		User:     owner,
		Roles:    []models.Role{},
		JoinedAt: server.CreatedAt,
	}}
	s.mutex.Unlock()

	s.broadcast(wire.ServerCreated{Server: server})
	s.writeJSON(w, http.StatusCreated, server)
}

func (s *Server) updateServer(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	serverID := chi.URLParam(r, "serverID")

	var patch models.ServerPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.sugar.Debug(err)
		s.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i := range s.servers {
		if s.servers[i].ID != serverID {
			continue
		}
		if s.servers[i].OwnerID != userID {
			s.writeError(w, http.StatusForbidden, "you don't own this server")
			return
		}
		patch.Apply(&s.servers[i])
		s.writeJSON(w, http.StatusOK, s.servers[i])
		return
	}

	s.writeError(w, http.StatusNotFound, "unknown server")
}

func (s *Server) deleteServer(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	serverID := chi.URLParam(r, "serverID")

	s.mutex.Lock()

	found := false
	kept := s.servers[:0]
	for _, server := range s.servers {
		if server.ID == serverID {
			if server.OwnerID != userID {
				s.mutex.Unlock()
				s.writeError(w, http.StatusForbidden, "you don't own this server")
				return
			}
			found = true
			continue
		}
		kept = append(kept, server)
	}
	s.servers = kept

	// cascade everything keyed by the dead ids
	for _, channel := range s.channels[serverID] {
		for _, msg := range s.messages[channel.ID] {
			delete(s.messageChannel, msg.ID)
		}
		delete(s.messages, channel.ID)
	}
	delete(s.channels, serverID)
	delete(s.members, serverID)
	delete(s.roles, serverID)

	s.mutex.Unlock()

	if !found {
		s.writeError(w, http.StatusNotFound, "unknown server")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	serverID := chi.URLParam(r, "serverID")

	s.mutex.Lock()
	members := append([]models.ServerMember{}, s.members[serverID]...)
	s.mutex.Unlock()

	s.writeJSON(w, http.StatusOK, members)
}

func (s *Server) listChannels(w http.ResponseWriter, r *http.Request) {
	serverID := chi.URLParam(r, "serverID")

	s.mutex.Lock()
	channels := append([]models.Channel{}, s.channels[serverID]...)
	s.mutex.Unlock()

	s.writeJSON(w, http.StatusOK, channels)
}

func (s *Server) createChannel(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	serverID := chi.URLParam(r, "serverID")

	var body struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.sugar.Debug(err)
		s.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	if err := validate.Struct(validate.ChannelForm{Name: body.Name, Category: body.Category}); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	channelID, err := s.nextID()
	if err != nil {
		s.sugar.Error(err)
		s.writeError(w, http.StatusInternalServerError, "couldn't generate channel ID")
		return
	}

	s.mutex.Lock()

	owner := false
	exists := false
	for _, server := range s.servers {
		if server.ID == serverID {
			exists = true
			owner = server.OwnerID == userID
			break
		}
	}
	if !exists {
		s.mutex.Unlock()
		s.writeError(w, http.StatusNotFound, "unknown server")
		return
	}
	if !owner {
		s.mutex.Unlock()
		s.writeError(w, http.StatusForbidden, "you don't own this server")
		return
	}

	position := 0
	for _, existing := range s.channels[serverID] {
		if existing.Category == body.Category {
			position++
		}
	}

	channel := models.Channel{
		ID:        channelID,
		ServerID:  serverID,
		Name:      body.Name,
		Category:  body.Category,
		Position:  position,
		CreatedAt: time.Now().UTC(),
	}
	s.channels[serverID] = append(s.channels[serverID], channel)
	s.messages[channelID] = []models.Message{}

	s.mutex.Unlock()

	s.broadcast(wire.ChannelCreated{Channel: channel})
	s.writeJSON(w, http.StatusCreated, channel)
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "channelID")
	before := r.URL.Query().Get("before")

	s.mutex.Lock()
	history := s.messages[channelID]

	end := len(history)
	if before != "" {
		for i, msg := range history {
			if msg.ID == before {
				end = i
				break
			}
		}
	}
	start := max(end-messagePageSize, 0)
	page := append([]models.Message{}, history[start:end]...)
	s.mutex.Unlock()

	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) createMessage(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	channelID := chi.URLParam(r, "channelID")

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.sugar.Debug(err)
		s.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	if body.Content == "" {
		s.writeError(w, http.StatusBadRequest, "message content can't be empty")
		return
	}

	msg, err := s.appendMessage(channelID, userID, body.Content)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcast(wire.MessageSent{Message: msg})
	s.writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) editMessage(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	messageID := chi.URLParam(r, "messageID")

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.sugar.Debug(err)
		s.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}

	s.mutex.Lock()
	channelID, found := s.messageChannel[messageID]
	if !found {
		s.mutex.Unlock()
		s.writeError(w, http.StatusNotFound, "unknown message")
		return
	}

	var edited models.Message
	msgs := s.messages[channelID]
	for i := range msgs {
		if msgs[i].ID != messageID {
			continue
		}
		if msgs[i].Author.ID != userID {
			s.mutex.Unlock()
			s.writeError(w, http.StatusForbidden, "not your message")
			return
		}
		now := time.Now().UTC()
		msgs[i].Content = body.Content
		msgs[i].EditedAt = &now
		edited = msgs[i]
		break
	}
	s.mutex.Unlock()

	s.broadcast(wire.MessageEdited{Message: edited})
	s.writeJSON(w, http.StatusOK, edited)
}

func (s *Server) deleteMessage(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	messageID := chi.URLParam(r, "messageID")

	s.mutex.Lock()
	channelID, found := s.messageChannel[messageID]
	if !found {
		s.mutex.Unlock()
		s.writeError(w, http.StatusNotFound, "unknown message")
		return
	}

	msgs := s.messages[channelID]
	kept := msgs[:0]
	for _, msg := range msgs {
		if msg.ID == messageID {
			if msg.Author.ID != userID {
				s.mutex.Unlock()
				s.writeError(w, http.StatusForbidden, "not your message")
				return
			}
			continue
		}
		kept = append(kept, msg)
	}
	s.messages[channelID] = kept
	delete(s.messageChannel, messageID)
	s.mutex.Unlock()

	s.broadcast(wire.MessageDeleted{MessageID: messageID, ChannelID: channelID})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listRoles(w http.ResponseWriter, r *http.Request) {
	serverID := chi.URLParam(r, "serverID")

	s.mutex.Lock()
	roles := append([]models.Role{}, s.roles[serverID]...)
	s.mutex.Unlock()

	s.writeJSON(w, http.StatusOK, roles)
}

func (s *Server) createRole(w http.ResponseWriter, r *http.Request) {
	serverID := chi.URLParam(r, "serverID")

	var patch models.RolePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.sugar.Debug(err)
		s.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}

	roleID, err := s.nextID()
	if err != nil {
		s.sugar.Error(err)
		s.writeError(w, http.StatusInternalServerError, "couldn't generate role ID")
		return
	}

	role := models.Role{
		ID:          roleID,
		ServerID:    serverID,
		Permissions: []models.Permission{},
	}
	patch.Apply(&role)

	s.mutex.Lock()
	role.Position = len(s.roles[serverID])
	s.roles[serverID] = append(s.roles[serverID], role)
	s.mutex.Unlock()

	s.writeJSON(w, http.StatusCreated, role)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.sugar.Debug(err)
		s.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}

	s.mutex.Lock()
	user := s.users[userID]
	patch.Apply(&user)
	s.users[userID] = user
	s.mutex.Unlock()

	s.writeJSON(w, http.StatusOK, user)
}

// appendMessage creates and stores a message, returning it with the author
// embedded.
func (s *Server) appendMessage(channelID string, userID string, content string) (models.Message, error) {
	messageID, err := s.nextID()
	if err != nil {
		s.sugar.Error(err)
		return models.Message{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, known := s.messages[channelID]; !known {
		if s.messageChannelExists(channelID) {
			s.messages[channelID] = []models.Message{}
		} else {
			return models.Message{}, errUnknownChannel
		}
	}

	msg := models.Message{
		ID:        messageID,
		ChannelID: channelID,
		Author:    s.users[userID],
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	s.messages[channelID] = append(s.messages[channelID], msg)
	s.messageChannel[messageID] = channelID
	return msg, nil
}

func (s *Server) messageChannelExists(channelID string) bool {
	for _, channels := range s.channels {
		for _, channel := range channels {
			if channel.ID == channelID {
				return true
			}
		}
	}
	return false
}
