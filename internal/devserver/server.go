// Package devserver is an in-memory implementation of the chat backend's
// HTTP surface plus the /ws event feed. It exists so the client, gateway and
// tests run with zero infrastructure; state lives in maps for the lifetime
// of the process and nothing is persisted.
package devserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"chatapp-client/internal/mockdata"
	"chatapp-client/internal/models"
	"chatapp-client/internal/snowflake"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = bcrypt.DefaultCost

type credentials struct {
	userID string
	hash   []byte
}

type Server struct {
	sugar  *zap.SugaredLogger
	secret []byte
	snow   *snowflake.Generator

	mutex          sync.Mutex
	users          map[string]models.User
	creds          map[string]credentials
	servers        []models.Server
	channels       map[string][]models.Channel
	members        map[string][]models.ServerMember
	roles          map[string][]models.Role
	messages       map[string][]models.Message
	messageChannel map[string]string // message id -> channel id

	clientsMutex sync.Mutex
	clients      map[int64]*feedClient
}

func New(sugar *zap.SugaredLogger) (*Server, error) {
	snow, err := snowflake.NewGenerator(0)
	if err != nil {
		return nil, err
	}

	return &Server{
		sugar:          sugar,
		secret:         []byte(uuid.NewString()),
		snow:           snow,
		users:          make(map[string]models.User),
		creds:          make(map[string]credentials),
		channels:       make(map[string][]models.Channel),
		members:        make(map[string][]models.ServerMember),
		roles:          make(map[string][]models.Role),
		messages:       make(map[string][]models.Message),
		messageChannel: make(map[string]string),
		clients:        make(map[int64]*feedClient),
	}, nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", s.login)
		api.Post("/auth/register", s.register)

		api.Group(func(r chi.Router) {
			r.Use(s.userVerifier)

			r.Get("/servers", s.listServers)
			r.Post("/servers", s.createServer)
			r.Patch("/servers/{serverID}", s.updateServer)
			r.Delete("/servers/{serverID}", s.deleteServer)
			r.Get("/servers/{serverID}/members", s.listMembers)
			r.Get("/servers/{serverID}/channels", s.listChannels)
			r.Post("/servers/{serverID}/channels", s.createChannel)
			r.Get("/servers/{serverID}/roles", s.listRoles)
			r.Post("/servers/{serverID}/roles", s.createRole)

			r.Get("/channels/{channelID}/messages", s.listMessages)
			r.Post("/channels/{channelID}/messages", s.createMessage)
			r.Patch("/messages/{messageID}", s.editMessage)
			r.Delete("/messages/{messageID}", s.deleteMessage)

			r.Patch("/users/me", s.updateProfile)
		})
	})

	r.With(s.userVerifier).Get("/ws", s.handleFeed)

	return r
}

// Seed preloads the mock dataset and registers credentials with the given
// password for every user in it.
func (s *Server) Seed(data mockdata.Set, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, user := range data.Users {
		s.users[user.ID] = user
		s.creds[user.Email] = credentials{userID: user.ID, hash: hash}
	}

	s.servers = append(s.servers, data.Servers...)
	for id, channels := range data.Channels {
		s.channels[id] = append([]models.Channel(nil), channels...)
	}
	for id, members := range data.Members {
		s.members[id] = append([]models.ServerMember(nil), members...)
	}
	for id, messages := range data.Messages {
		s.messages[id] = append([]models.Message(nil), messages...)
		for _, msg := range messages {
			s.messageChannel[msg.ID] = msg.ChannelID
		}
	}

	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.sugar.Error(err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) nextID() (string, error) {
	return s.snow.NextString()
}
