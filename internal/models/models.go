package models

import (
	"sort"
	"time"
)

type UserStatus string

const (
	StatusOnline  UserStatus = "online"
	StatusIdle    UserStatus = "idle"
	StatusDnd     UserStatus = "dnd"
	StatusOffline UserStatus = "offline"
)

type Permission string

const (
	PermManageServer   Permission = "ManageServer"
	PermManageChannels Permission = "ManageChannels"
	PermManageRoles    Permission = "ManageRoles"
	PermManageMessages Permission = "ManageMessages"
	PermSendMessages   Permission = "SendMessages"
	PermReadMessages   Permission = "ReadMessages"
	PermKickMembers    Permission = "KickMembers"
	PermBanMembers     Permission = "BanMembers"
)

type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	AvatarURL string     `json:"avatar_url"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

type Server struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IconURL   string    `json:"icon_url"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Channel struct {
	ID        string    `json:"id"`
	ServerID  string    `json:"server_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID        string     `json:"id"`
	ChannelID string     `json:"channel_id"`
	Author    User       `json:"author"`
	Content   string     `json:"content"`
	EditedAt  *time.Time `json:"edited_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type Role struct {
	ID          string       `json:"id"`
	ServerID    string       `json:"server_id"`
	Name        string       `json:"name"`
	Color       string       `json:"color"`
	Permissions []Permission `json:"permissions"`
	Position    int          `json:"position"`
}

type ServerMember struct {
	User     User      `json:"user"`
	Roles    []Role    `json:"roles"`
	JoinedAt time.Time `json:"joined_at"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SortChannels orders channels for display: by category label first, then by
// position within the category.
func SortChannels(channels []Channel) {
	sort.SliceStable(channels, func(i, j int) bool {
		if channels[i].Category != channels[j].Category {
			return channels[i].Category < channels[j].Category
		}
		return channels[i].Position < channels[j].Position
	})
}
