package wire_test

import (
	"strings"
	"testing"

	"chatapp-client/internal/models"
	"chatapp-client/internal/wire"
)

func TestDecodeEventDispatchesOnTag(t *testing.T) {
	data := []byte(`{"type":"MessageDeleted","message_id":"m1","channel_id":"c1"}`)

	event, err := wire.DecodeEvent(data)
	if err != nil {
		t.Fatal(err)
	}

	deleted, ok := event.(wire.MessageDeleted)
	if !ok {
		t.Fatalf("expected MessageDeleted, got %T", event)
	}
	if deleted.MessageID != "m1" || deleted.ChannelID != "c1" {
		t.Errorf("unexpected payload: %+v", deleted)
	}
}

func TestDecodeEventRejectsUnknownTag(t *testing.T) {
	_, err := wire.DecodeEvent([]byte(`{"type":"ServerDeleted"}`))
	if err == nil {
		t.Error("Expected an error for a tag outside the vocabulary, but there wasn't")
	}
}

func TestEncodeEventFlattensPayload(t *testing.T) {
	data, err := wire.EncodeEvent(wire.TypingStarted{
		ChannelID: "c1",
		User:      models.User{ID: "u2", Username: "Alice"},
	})
	if err != nil {
		t.Fatal(err)
	}

	text := string(data)
	if !strings.Contains(text, `"type":"TypingStarted"`) {
		t.Errorf("expected the type tag next to the payload, got %s", text)
	}
	if !strings.Contains(text, `"channel_id":"c1"`) {
		t.Errorf("expected the payload fields inline, got %s", text)
	}

	event, err := wire.DecodeEvent(data)
	if err != nil {
		t.Fatal(err)
	}
	typing, ok := event.(wire.TypingStarted)
	if !ok || typing.User.Username != "Alice" {
		t.Errorf("expected the event to survive the round trip, got %+v", event)
	}
}

func TestCommandRoundTrip(t *testing.T) {
	data, err := wire.EncodeCommand(wire.SendMessage{ChannelID: "c1", Content: "hello"})
	if err != nil {
		t.Fatal(err)
	}

	cmd, err := wire.DecodeCommand(data)
	if err != nil {
		t.Fatal(err)
	}

	send, ok := cmd.(wire.SendMessage)
	if !ok {
		t.Fatalf("expected SendMessage, got %T", cmd)
	}
	if send.ChannelID != "c1" || send.Content != "hello" {
		t.Errorf("unexpected payload: %+v", send)
	}
}

func TestDecodeCommandRejectsUnknownTag(t *testing.T) {
	_, err := wire.DecodeCommand([]byte(`{"type":"BanMember"}`))
	if err == nil {
		t.Error("Expected an error for a tag outside the vocabulary, but there wasn't")
	}
}
