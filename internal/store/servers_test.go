package store

import (
	"testing"
	"time"

	"chatapp-client/internal/mockdata"
	"chatapp-client/internal/models"

	"go.uber.org/zap"
)

func testServers() *Servers {
	return NewServers(zap.NewNop().Sugar())
}

func TestSetActiveServerSelectsFirstChannel(t *testing.T) {
	s := testServers()
	s.AddServer(models.Server{ID: "s1", Name: "First"})
	s.AddChannel(models.Channel{ID: "c1", ServerID: "s1", Name: "general"})
	s.AddChannel(models.Channel{ID: "c2", ServerID: "s1", Name: "help"})

	s.SetActiveServer("s1")

	if got := s.ActiveServerID(); got != "s1" {
		t.Errorf("expected active server s1, got [%s]", got)
	}
	if got := s.ActiveChannelID(); got != "c1" {
		t.Errorf("expected active channel c1, got [%s]", got)
	}
}

func TestSetActiveServerWithoutChannels(t *testing.T) {
	s := testServers()
	s.AddServer(models.Server{ID: "s9", Name: "Test"})

	s.SetActiveServer("s9")

	if got := s.ActiveServerID(); got != "s9" {
		t.Errorf("expected active server s9, got [%s]", got)
	}
	if got := s.ActiveChannelID(); got != "" {
		t.Errorf("expected no active channel, got [%s]", got)
	}
}

func TestDeleteServerAdvancesActivePointer(t *testing.T) {
	s := testServers()
	s.AddServer(models.Server{ID: "s1", Name: "First"})
	s.AddServer(models.Server{ID: "s2", Name: "Second"})
	s.AddChannel(models.Channel{ID: "c1", ServerID: "s1", Name: "general"})
	s.AddChannel(models.Channel{ID: "c2", ServerID: "s2", Name: "general"})
	s.SetActiveServer("s1")

	s.DeleteServer("s1")

	if got := len(s.List()); got != 1 {
		t.Fatalf("expected 1 server left, got %d", got)
	}
	if got := s.ActiveServerID(); got != "s2" {
		t.Errorf("expected active server s2, got [%s]", got)
	}
	if got := s.ActiveChannelID(); got != "c2" {
		t.Errorf("expected active channel c2, got [%s]", got)
	}
}

func TestDeleteServerKeepsUnrelatedSelection(t *testing.T) {
	s := testServers()
	s.AddServer(models.Server{ID: "s1", Name: "First"})
	s.AddServer(models.Server{ID: "s2", Name: "Second"})
	s.AddChannel(models.Channel{ID: "c1", ServerID: "s1", Name: "general"})
	s.SetActiveServer("s1")

	s.DeleteServer("s2")

	if got := s.ActiveServerID(); got != "s1" {
		t.Errorf("expected active server s1, got [%s]", got)
	}
	if got := s.ActiveChannelID(); got != "c1" {
		t.Errorf("expected active channel c1, got [%s]", got)
	}
}

func TestDeleteLastServerClearsSelection(t *testing.T) {
	s := testServers()
	s.AddServer(models.Server{ID: "s1", Name: "Only"})
	s.SetActiveServer("s1")

	s.DeleteServer("s1")

	if got := s.ActiveServerID(); got != "" {
		t.Errorf("expected no active server, got [%s]", got)
	}
	if got := s.ActiveChannelID(); got != "" {
		t.Errorf("expected no active channel, got [%s]", got)
	}
}

func TestDeleteServerCleansDependentEntries(t *testing.T) {
	s := testServers()
	s.AddServer(models.Server{ID: "s1", Name: "First"})
	s.AddChannel(models.Channel{ID: "c1", ServerID: "s1", Name: "general"})
	s.AddMember("s1", models.ServerMember{User: models.User{ID: "u1", Username: "Alice"}})

	s.DeleteServer("s1")

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if _, stale := s.channels["s1"]; stale {
		t.Error("expected the channel entry for the deleted server to be removed")
	}
	if _, stale := s.members["s1"]; stale {
		t.Error("expected the member entry for the deleted server to be removed")
	}
}

func TestLoadMockDataSelectsFirstServerAndChannel(t *testing.T) {
	s := testServers()
	data := mockdata.Generate(time.Now())

	s.LoadMockData(data)

	if got := s.ActiveServerID(); got != data.Servers[0].ID {
		t.Errorf("expected active server [%s], got [%s]", data.Servers[0].ID, got)
	}
	wantChannel := data.Channels[data.Servers[0].ID][0].ID
	if got := s.ActiveChannelID(); got != wantChannel {
		t.Errorf("expected active channel [%s], got [%s]", wantChannel, got)
	}
	if got := len(s.List()); got != len(data.Servers) {
		t.Errorf("expected %d servers, got %d", len(data.Servers), got)
	}
}

func TestSubscribeNotifiesOnMutation(t *testing.T) {
	s := testServers()

	notified := 0
	cancel := s.Subscribe(func() { notified++ })

	s.AddServer(models.Server{ID: "s1", Name: "First"})
	if notified != 1 {
		t.Errorf("expected 1 notification, got %d", notified)
	}

	cancel()
	s.AddServer(models.Server{ID: "s2", Name: "Second"})
	if notified != 1 {
		t.Errorf("expected no notification after cancel, got %d", notified)
	}
}
