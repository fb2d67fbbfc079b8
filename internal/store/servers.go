package store

import (
	"sync"

	"chatapp-client/internal/mockdata"
	"chatapp-client/internal/models"

	"go.uber.org/zap"
)

// Servers is the catalog of servers the user belongs to, each server's
// channels and members, and the active server/channel selection.
type Servers struct {
	notifier
	sugar *zap.SugaredLogger

	mutex           sync.RWMutex
	servers         []models.Server
	channels        map[string][]models.Channel
	members         map[string][]models.ServerMember
	activeServerID  string
	activeChannelID string
}

func NewServers(sugar *zap.SugaredLogger) *Servers {
	return &Servers{
		sugar:    sugar,
		channels: make(map[string][]models.Channel),
		members:  make(map[string][]models.ServerMember),
	}
}

// SetActiveServer focuses a server and resets the active channel to that
// server's first channel by list order, or clears it when the server has
// none. This keeps the selection pointers consistent with each other.
func (s *Servers) SetActiveServer(id string) {
	s.mutex.Lock()
	s.activeServerID = id
	s.activeChannelID = firstChannelID(s.channels[id])
	s.mutex.Unlock()
	s.notify()
}

// SetActiveChannel trusts the caller to pass a channel of the active server;
// the channel list UI only ever offers those.
func (s *Servers) SetActiveChannel(id string) {
	s.mutex.Lock()
	s.activeChannelID = id
	s.mutex.Unlock()
	s.notify()
}

// AddServer appends the server and seeds empty channel and member lists for
// it. The active selection is untouched.
func (s *Servers) AddServer(server models.Server) {
	s.mutex.Lock()
	s.servers = append(s.servers, server)
	s.channels[server.ID] = []models.Channel{}
	s.members[server.ID] = []models.ServerMember{}
	s.mutex.Unlock()
	s.notify()
}

func (s *Servers) AddChannel(channel models.Channel) {
	s.mutex.Lock()
	s.channels[channel.ServerID] = append(s.channels[channel.ServerID], channel)
	s.mutex.Unlock()
	s.notify()
}

func (s *Servers) AddMember(serverID string, member models.ServerMember) {
	s.mutex.Lock()
	s.members[serverID] = append(s.members[serverID], member)
	s.mutex.Unlock()
	s.notify()
}

// DeleteServer removes the server together with its channel and member
// entries, so no state keyed by the dead id lingers. When the deleted server
// was active, focus falls back to the new first server in the list.
func (s *Servers) DeleteServer(id string) {
	s.mutex.Lock()

	kept := s.servers[:0]
	for _, server := range s.servers {
		if server.ID != id {
			kept = append(kept, server)
		}
	}
	s.servers = kept

	delete(s.channels, id)
	delete(s.members, id)

	if s.activeServerID == id {
		if len(s.servers) > 0 {
			s.activeServerID = s.servers[0].ID
			s.activeChannelID = firstChannelID(s.channels[s.activeServerID])
		} else {
			s.activeServerID = ""
			s.activeChannelID = ""
		}
	}

	s.mutex.Unlock()
	s.notify()
}

// LoadMockData replaces the whole catalog with the bundled mock dataset and
// selects its first server and channel.
func (s *Servers) LoadMockData(data mockdata.Set) {
	s.mutex.Lock()

	s.servers = append([]models.Server(nil), data.Servers...)
	s.channels = make(map[string][]models.Channel, len(data.Channels))
	for id, channels := range data.Channels {
		s.channels[id] = append([]models.Channel(nil), channels...)
	}
	s.members = make(map[string][]models.ServerMember, len(data.Members))
	for id, members := range data.Members {
		s.members[id] = append([]models.ServerMember(nil), members...)
	}

	s.activeServerID = ""
	s.activeChannelID = ""
	if len(s.servers) > 0 {
		s.activeServerID = s.servers[0].ID
		s.activeChannelID = firstChannelID(s.channels[s.activeServerID])
	}

	s.mutex.Unlock()
	s.notify()
}

func (s *Servers) List() []models.Server {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]models.Server(nil), s.servers...)
}

// Channels returns the server's channels in list order. Display code sorts a
// copy with models.SortChannels.
func (s *Servers) Channels(serverID string) []models.Channel {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]models.Channel(nil), s.channels[serverID]...)
}

func (s *Servers) Members(serverID string) []models.ServerMember {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]models.ServerMember(nil), s.members[serverID]...)
}

func (s *Servers) ActiveServerID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.activeServerID
}

func (s *Servers) ActiveChannelID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.activeChannelID
}

func (s *Servers) ActiveServer() (models.Server, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, server := range s.servers {
		if server.ID == s.activeServerID {
			return server, true
		}
	}
	return models.Server{}, false
}

func firstChannelID(channels []models.Channel) string {
	if len(channels) == 0 {
		return ""
	}
	return channels[0].ID
}
