package api_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"chatapp-client/internal/api"
	"chatapp-client/internal/devserver"
	"chatapp-client/internal/models"

	"go.uber.org/zap"
)

func testClient(t *testing.T) *api.Client {
	t.Helper()

	dev, err := devserver.New(zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}

	backend := httptest.NewServer(dev.Handler())
	t.Cleanup(backend.Close)

	return api.New(backend.URL+"/api", zap.NewNop().Sugar())
}

func loggedInClient(t *testing.T) (*api.Client, models.User) {
	t.Helper()
	client := testClient(t)

	res, err := client.Register(context.Background(), "DemoUser", "demo@example.com", "Password1")
	if err != nil {
		t.Fatal(err)
	}
	client.SetToken(res.AccessToken)
	return client, res.User
}

func TestRegisterAndLogin(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	res, err := client.Register(ctx, "DemoUser", "demo@example.com", "Password1")
	if err != nil {
		t.Fatal(err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Error("expected both tokens in the auth response")
	}
	if res.User.Username != "DemoUser" {
		t.Errorf("expected the registered user back, got %+v", res.User)
	}

	login, err := client.Login(ctx, "demo@example.com", "Password1")
	if err != nil {
		t.Fatal(err)
	}
	if login.User.ID != res.User.ID {
		t.Error("expected login to resolve the same account")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	client := testClient(t)

	_, err := client.Login(context.Background(), "bad@x.com", "WrongPassword1")

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected an api error, got %v", err)
	}
	if apiErr.Status != 401 {
		t.Errorf("expected status 401, got %d", apiErr.Status)
	}
	if apiErr.Message != "invalid credentials" {
		t.Errorf("expected [invalid credentials], got [%s]", apiErr.Message)
	}
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	client := testClient(t)

	_, err := client.Servers(context.Background())

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected an api error, got %v", err)
	}
	if apiErr.Status != 401 {
		t.Errorf("expected status 401, got %d", apiErr.Status)
	}
}

func TestServerLifecycle(t *testing.T) {
	client, user := loggedInClient(t)
	ctx := context.Background()

	server, err := client.CreateServer(ctx, "Test Server")
	if err != nil {
		t.Fatal(err)
	}
	if server.OwnerID != user.ID {
		t.Errorf("expected the creator to own the server, got [%s]", server.OwnerID)
	}

	servers, err := client.Servers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(servers) != 1 || servers[0].ID != server.ID {
		t.Errorf("expected the created server in the list, got %+v", servers)
	}

	name := "Renamed"
	updated, err := client.UpdateServer(ctx, server.ID, models.ServerPatch{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("expected the rename to apply, got [%s]", updated.Name)
	}

	members, err := client.ServerMembers(ctx, server.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 || members[0].User.ID != user.ID {
		t.Errorf("expected the owner as the only member, got %+v", members)
	}

	if err := client.DeleteServer(ctx, server.ID); err != nil {
		t.Fatal(err)
	}
	servers, err = client.Servers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(servers) != 0 {
		t.Errorf("expected no servers after deletion, got %+v", servers)
	}
}

func TestChannelAndMessageLifecycle(t *testing.T) {
	client, user := loggedInClient(t)
	ctx := context.Background()

	server, err := client.CreateServer(ctx, "Test Server")
	if err != nil {
		t.Fatal(err)
	}

	channel, err := client.CreateChannel(ctx, server.ID, "general", "Text Channels")
	if err != nil {
		t.Fatal(err)
	}
	if channel.ServerID != server.ID || channel.Category != "Text Channels" {
		t.Errorf("unexpected channel: %+v", channel)
	}

	channels, err := client.Channels(ctx, server.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(channels) != 1 {
		t.Fatalf("expected 1 channel, got %d", len(channels))
	}

	sent, err := client.SendMessage(ctx, channel.ID, "hello there")
	if err != nil {
		t.Fatal(err)
	}
	if sent.Author.ID != user.ID || sent.Content != "hello there" {
		t.Errorf("unexpected message: %+v", sent)
	}

	edited, err := client.EditMessage(ctx, sent.ID, "hello again")
	if err != nil {
		t.Fatal(err)
	}
	if edited.Content != "hello again" || edited.EditedAt == nil {
		t.Errorf("expected the edit to apply with a timestamp, got %+v", edited)
	}

	messages, err := client.Messages(ctx, channel.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 || messages[0].Content != "hello again" {
		t.Errorf("expected the edited message in the history, got %+v", messages)
	}

	if err := client.DeleteMessage(ctx, sent.ID); err != nil {
		t.Fatal(err)
	}
	messages, err = client.Messages(ctx, channel.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 0 {
		t.Errorf("expected an empty history after deletion, got %+v", messages)
	}
}

func TestMessagePagination(t *testing.T) {
	client, _ := loggedInClient(t)
	ctx := context.Background()

	server, err := client.CreateServer(ctx, "Test Server")
	if err != nil {
		t.Fatal(err)
	}
	channel, err := client.CreateChannel(ctx, server.ID, "general", "")
	if err != nil {
		t.Fatal(err)
	}

	var sent []models.Message
	for i := 0; i < 5; i++ {
		msg, err := client.SendMessage(ctx, channel.ID, "msg")
		if err != nil {
			t.Fatal(err)
		}
		sent = append(sent, msg)
	}

	page, err := client.Messages(ctx, channel.ID, sent[3].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 3 {
		t.Fatalf("expected the 3 messages preceding the cursor, got %d", len(page))
	}
	for i, msg := range page {
		if msg.ID != sent[i].ID {
			t.Errorf("expected message [%s] at index %d, got [%s]", sent[i].ID, i, msg.ID)
		}
	}
}

func TestRolesAndProfile(t *testing.T) {
	client, _ := loggedInClient(t)
	ctx := context.Background()

	server, err := client.CreateServer(ctx, "Test Server")
	if err != nil {
		t.Fatal(err)
	}

	name := "Moderator"
	color := "#ff0000"
	perms := []models.Permission{models.PermManageMessages, models.PermKickMembers}
	role, err := client.CreateRole(ctx, server.ID, models.RolePatch{Name: &name, Color: &color, Permissions: &perms})
	if err != nil {
		t.Fatal(err)
	}
	if role.Name != "Moderator" || len(role.Permissions) != 2 {
		t.Errorf("unexpected role: %+v", role)
	}

	roles, err := client.Roles(ctx, server.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(roles) != 1 {
		t.Errorf("expected 1 role, got %d", len(roles))
	}

	username := "Renamed"
	status := models.StatusDnd
	user, err := client.UpdateProfile(ctx, models.UserPatch{Username: &username, Status: &status})
	if err != nil {
		t.Fatal(err)
	}
	if user.Username != "Renamed" || user.Status != models.StatusDnd {
		t.Errorf("expected the profile patch to apply, got %+v", user)
	}
}
