package gateway_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chatapp-client/internal/api"
	"chatapp-client/internal/devserver"
	"chatapp-client/internal/gateway"
	"chatapp-client/internal/models"
	"chatapp-client/internal/store"
	"chatapp-client/internal/wire"

	"go.uber.org/zap"
)

type fixture struct {
	client   *api.Client
	user     models.User
	servers  *store.Servers
	messages *store.Messages
	gateway  *gateway.Gateway
}

func setup(t *testing.T) fixture {
	t.Helper()
	sugar := zap.NewNop().Sugar()

	dev, err := devserver.New(sugar)
	if err != nil {
		t.Fatal(err)
	}
	backend := httptest.NewServer(dev.Handler())
	t.Cleanup(backend.Close)

	client := api.New(backend.URL+"/api", sugar)
	res, err := client.Register(context.Background(), "DemoUser", "demo@example.com", "Password1")
	if err != nil {
		t.Fatal(err)
	}
	client.SetToken(res.AccessToken)

	servers := store.NewServers(sugar)
	messages := store.NewMessages(sugar)

	g := gateway.New(servers, messages, sugar)
	wsURL := "ws" + strings.TrimPrefix(backend.URL, "http") + "/ws"
	if err := g.Dial(context.Background(), wsURL, res.AccessToken); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { g.Close() })

	return fixture{client: client, user: res.User, servers: servers, messages: messages, gateway: g}
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestDialRejectsBadToken(t *testing.T) {
	sugar := zap.NewNop().Sugar()
	dev, err := devserver.New(sugar)
	if err != nil {
		t.Fatal(err)
	}
	backend := httptest.NewServer(dev.Handler())
	defer backend.Close()

	g := gateway.New(store.NewServers(sugar), store.NewMessages(sugar), sugar)
	wsURL := "ws" + strings.TrimPrefix(backend.URL, "http") + "/ws"
	if err := g.Dial(context.Background(), wsURL, "not-a-token"); err == nil {
		g.Close()
		t.Error("expected the dial to be rejected, but it wasn't")
	}
}

func TestBackendChangesArriveAsEvents(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	server, err := f.client.CreateServer(ctx, "Test Server")
	if err != nil {
		t.Fatal(err)
	}
	waitFor(t, "the server to appear in the store", func() bool {
		return len(f.servers.List()) == 1
	})

	channel, err := f.client.CreateChannel(ctx, server.ID, "general", "")
	if err != nil {
		t.Fatal(err)
	}
	waitFor(t, "the channel to appear in the store", func() bool {
		return len(f.servers.Channels(server.ID)) == 1
	})
	if f.servers.Channels(server.ID)[0].ID != channel.ID {
		t.Errorf("expected channel [%s] in the store", channel.ID)
	}
}

func TestSendMessageRoundTrip(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	server, err := f.client.CreateServer(ctx, "Test Server")
	if err != nil {
		t.Fatal(err)
	}
	channel, err := f.client.CreateChannel(ctx, server.ID, "general", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := f.gateway.Send(wire.SendMessage{ChannelID: channel.ID, Content: "hello"}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "the message to echo back", func() bool {
		return len(f.messages.ChannelMessages(channel.ID)) == 1
	})

	msg := f.messages.ChannelMessages(channel.ID)[0]
	if msg.Content != "hello" || msg.Author.ID != f.user.ID {
		t.Errorf("unexpected echoed message: %+v", msg)
	}

	if err := f.gateway.Send(wire.EditMessage{MessageID: msg.ID, Content: "hello again"}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "the edit to apply", func() bool {
		return f.messages.ChannelMessages(channel.ID)[0].Content == "hello again"
	})
	if f.messages.ChannelMessages(channel.ID)[0].EditedAt == nil {
		t.Error("expected the edit timestamp to be set")
	}

	if err := f.gateway.Send(wire.DeleteMessage{MessageID: msg.ID}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "the deletion to apply", func() bool {
		return len(f.messages.ChannelMessages(channel.ID)) == 0
	})
}

func TestTypingIndicatorArrives(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	server, err := f.client.CreateServer(ctx, "Test Server")
	if err != nil {
		t.Fatal(err)
	}
	channel, err := f.client.CreateChannel(ctx, server.ID, "general", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := f.gateway.Send(wire.StartTyping{ChannelID: channel.ID}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "the typing indicator", func() bool {
		users := f.messages.TypingUsers(channel.ID)
		return len(users) == 1 && users[0] == "DemoUser"
	})

	// A sent message clears its author's indicator.
	if err := f.gateway.Send(wire.SendMessage{ChannelID: channel.ID, Content: "done typing"}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "the indicator to clear", func() bool {
		return len(f.messages.TypingUsers(channel.ID)) == 0
	})
}
