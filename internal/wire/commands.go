package wire

import (
	"encoding/json"
	"fmt"
)

const (
	CommandRegister      = "Register"
	CommandLogin         = "Login"
	CommandCreateServer  = "CreateServer"
	CommandCreateChannel = "CreateChannel"
	CommandSendMessage   = "SendMessage"
	CommandEditMessage   = "EditMessage"
	CommandDeleteMessage = "DeleteMessage"
	CommandStartTyping   = "StartTyping"
)

// Command is one of the concrete command payload types in this package.
type Command interface {
	CommandType() string
}

type Register struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateServer struct {
	Name string `json:"name"`
}

type CreateChannel struct {
	ServerID string `json:"server_id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

type SendMessage struct {
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
}

type EditMessage struct {
	MessageID string `json:"message_id"`
	Content   string `json:"content"`
}

type DeleteMessage struct {
	MessageID string `json:"message_id"`
}

type StartTyping struct {
	ChannelID string `json:"channel_id"`
}

func (Register) CommandType() string      { return CommandRegister }
func (Login) CommandType() string         { return CommandLogin }
func (CreateServer) CommandType() string  { return CommandCreateServer }
func (CreateChannel) CommandType() string { return CommandCreateChannel }
func (SendMessage) CommandType() string   { return CommandSendMessage }
func (EditMessage) CommandType() string   { return CommandEditMessage }
func (DeleteMessage) CommandType() string { return CommandDeleteMessage }
func (StartTyping) CommandType() string   { return CommandStartTyping }

func DecodeCommand(data []byte) (Command, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case CommandRegister:
		var cmd Register
		return cmd, json.Unmarshal(data, &cmd)
	case CommandLogin:
		var cmd Login
		return cmd, json.Unmarshal(data, &cmd)
	case CommandCreateServer:
		var cmd CreateServer
		return cmd, json.Unmarshal(data, &cmd)
	case CommandCreateChannel:
		var cmd CreateChannel
		return cmd, json.Unmarshal(data, &cmd)
	case CommandSendMessage:
		var cmd SendMessage
		return cmd, json.Unmarshal(data, &cmd)
	case CommandEditMessage:
		var cmd EditMessage
		return cmd, json.Unmarshal(data, &cmd)
	case CommandDeleteMessage:
		var cmd DeleteMessage
		return cmd, json.Unmarshal(data, &cmd)
	case CommandStartTyping:
		var cmd StartTyping
		return cmd, json.Unmarshal(data, &cmd)
	default:
		return nil, fmt.Errorf("unknown command type [%s]", head.Type)
	}
}

func EncodeCommand(cmd Command) ([]byte, error) {
	type tagged struct {
		Type string `json:"type"`
	}
	tag := tagged{cmd.CommandType()}

	switch cmd := cmd.(type) {
	case Register:
		return json.Marshal(struct {
			tagged
			Register
		}{tag, cmd})
	case Login:
		return json.Marshal(struct {
			tagged
			Login
		}{tag, cmd})
	case CreateServer:
		return json.Marshal(struct {
			tagged
			CreateServer
		}{tag, cmd})
	case CreateChannel:
		return json.Marshal(struct {
			tagged
			CreateChannel
		}{tag, cmd})
	case SendMessage:
		return json.Marshal(struct {
			tagged
			SendMessage
		}{tag, cmd})
	case EditMessage:
		return json.Marshal(struct {
			tagged
			EditMessage
		}{tag, cmd})
	case DeleteMessage:
		return json.Marshal(struct {
			tagged
			DeleteMessage
		}{tag, cmd})
	case StartTyping:
		return json.Marshal(struct {
			tagged
			StartTyping
		}{tag, cmd})
	default:
		return nil, fmt.Errorf("unknown command type [%T]", cmd)
	}
}
