// Package wire defines the vocabulary exchanged over the real-time feed: a
// closed set of server-to-client events and client-to-server commands, each a
// JSON object carrying a "type" tag next to its payload fields.
package wire

import (
	"encoding/json"
	"fmt"

	"chatapp-client/internal/models"
)

const (
	EventUserRegistered     = "UserRegistered"
	EventUserLoggedIn       = "UserLoggedIn"
	EventServerCreated      = "ServerCreated"
	EventChannelCreated     = "ChannelCreated"
	EventMessageSent        = "MessageSent"
	EventMessageEdited      = "MessageEdited"
	EventMessageDeleted     = "MessageDeleted"
	EventMemberJoinedServer = "MemberJoinedServer"
	EventTypingStarted      = "TypingStarted"
)

// Event is one of the concrete event payload types in this package.
type Event interface {
	EventType() string
}

type UserRegistered struct {
	User models.User `json:"user"`
}

type UserLoggedIn struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type ServerCreated struct {
	Server models.Server `json:"server"`
}

type ChannelCreated struct {
	Channel models.Channel `json:"channel"`
}

type MessageSent struct {
	Message models.Message `json:"message"`
}

type MessageEdited struct {
	Message models.Message `json:"message"`
}

type MessageDeleted struct {
	MessageID string `json:"message_id"`
	ChannelID string `json:"channel_id"`
}

type MemberJoinedServer struct {
	ServerID string              `json:"server_id"`
	Member   models.ServerMember `json:"member"`
}

type TypingStarted struct {
	ChannelID string      `json:"channel_id"`
	User      models.User `json:"user"`
}

func (UserRegistered) EventType() string     { return EventUserRegistered }
func (UserLoggedIn) EventType() string       { return EventUserLoggedIn }
func (ServerCreated) EventType() string      { return EventServerCreated }
func (ChannelCreated) EventType() string     { return EventChannelCreated }
func (MessageSent) EventType() string        { return EventMessageSent }
func (MessageEdited) EventType() string      { return EventMessageEdited }
func (MessageDeleted) EventType() string     { return EventMessageDeleted }
func (MemberJoinedServer) EventType() string { return EventMemberJoinedServer }
func (TypingStarted) EventType() string      { return EventTypingStarted }

// DecodeEvent reads the "type" tag and unmarshals into the matching payload
// struct. Tags outside the closed set are an error, never silently dropped.
func DecodeEvent(data []byte) (Event, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case EventUserRegistered:
		var ev UserRegistered
		return ev, json.Unmarshal(data, &ev)
	case EventUserLoggedIn:
		var ev UserLoggedIn
		return ev, json.Unmarshal(data, &ev)
	case EventServerCreated:
		var ev ServerCreated
		return ev, json.Unmarshal(data, &ev)
	case EventChannelCreated:
		var ev ChannelCreated
		return ev, json.Unmarshal(data, &ev)
	case EventMessageSent:
		var ev MessageSent
		return ev, json.Unmarshal(data, &ev)
	case EventMessageEdited:
		var ev MessageEdited
		return ev, json.Unmarshal(data, &ev)
	case EventMessageDeleted:
		var ev MessageDeleted
		return ev, json.Unmarshal(data, &ev)
	case EventMemberJoinedServer:
		var ev MemberJoinedServer
		return ev, json.Unmarshal(data, &ev)
	case EventTypingStarted:
		var ev TypingStarted
		return ev, json.Unmarshal(data, &ev)
	default:
		return nil, fmt.Errorf("unknown event type [%s]", head.Type)
	}
}

// EncodeEvent flattens the payload fields next to the "type" tag.
func EncodeEvent(ev Event) ([]byte, error) {
	type tagged struct {
		Type string `json:"type"`
	}
	tag := tagged{ev.EventType()}

	switch ev := ev.(type) {
	case UserRegistered:
		return json.Marshal(struct {
			tagged
			UserRegistered
		}{tag, ev})
	case UserLoggedIn:
		return json.Marshal(struct {
			tagged
			UserLoggedIn
		}{tag, ev})
	case ServerCreated:
		return json.Marshal(struct {
			tagged
			ServerCreated
		}{tag, ev})
	case ChannelCreated:
		return json.Marshal(struct {
			tagged
			ChannelCreated
		}{tag, ev})
	case MessageSent:
		return json.Marshal(struct {
			tagged
			MessageSent
		}{tag, ev})
	case MessageEdited:
		return json.Marshal(struct {
			tagged
			MessageEdited
		}{tag, ev})
	case MessageDeleted:
		return json.Marshal(struct {
			tagged
			MessageDeleted
		}{tag, ev})
	case MemberJoinedServer:
		return json.Marshal(struct {
			tagged
			MemberJoinedServer
		}{tag, ev})
	case TypingStarted:
		return json.Marshal(struct {
			tagged
			TypingStarted
		}{tag, ev})
	default:
		return nil, fmt.Errorf("unknown event type [%T]", ev)
	}
}
