// Package mockdata fabricates a deterministic roster of users, servers,
// channels and message histories so the client can run without a backend.
// Everything derives from the caller-supplied "now"; two calls with the same
// instant produce identical data.
package mockdata

import (
	"fmt"
	"time"

	"chatapp-client/internal/models"
)

// Set is the complete mock dataset the stores load in one shot.
type Set struct {
	CurrentUser models.User
	Users       []models.User
	Servers     []models.Server
	Channels    map[string][]models.Channel
	Members     map[string][]models.ServerMember
	Messages    map[string][]models.Message
}

const messagesPerChannel = 25

var phrases = []string{
	"Hey everyone!",
	"Has anyone tried the new iterator functions yet?",
	"I just deployed my latest project",
	"Can someone review my PR?",
	"Great work on the release!",
	"Let me check that real quick",
	"That's a really interesting approach",
	"I think we should refactor that package",
	"Anyone up for a code review session?",
	"The docs need some updating",
	"Looks good to me!",
	"I'm chasing a goroutine leak, send help",
}

// DemoUser is the account LoginMock signs in as.
func DemoUser(now time.Time) models.User {
	return models.User{
		ID:        "u1",
		Username:  "DemoUser",
		Email:     "demo@example.com",
		Status:    models.StatusOnline,
		CreatedAt: now,
	}
}

func Generate(now time.Time) Set {
	currentUser := DemoUser(now)

	others := []models.User{
		{ID: "u2", Username: "Alice", Email: "alice@example.com", Status: models.StatusOnline, CreatedAt: now},
		{ID: "u3", Username: "Bob", Email: "bob@example.com", Status: models.StatusIdle, CreatedAt: now},
		{ID: "u4", Username: "Charlie", Email: "charlie@example.com", Status: models.StatusDnd, CreatedAt: now},
		{ID: "u5", Username: "Diana", Email: "diana@example.com", Status: models.StatusOffline, CreatedAt: now},
	}
	allUsers := append([]models.User{currentUser}, others...)

	servers := []models.Server{
		{ID: "s1", Name: "Go Devs", OwnerID: "u1", CreatedAt: now},
		{ID: "s2", Name: "Gaming Hub", OwnerID: "u2", CreatedAt: now},
		{ID: "s3", Name: "Design Studio", OwnerID: "u1", CreatedAt: now},
	}

	channels := map[string][]models.Channel{
		"s1": {
			{ID: "c1", ServerID: "s1", Name: "general", Category: "Text Channels", Position: 0, CreatedAt: now},
			{ID: "c2", ServerID: "s1", Name: "help", Category: "Text Channels", Position: 1, CreatedAt: now},
			{ID: "c3", ServerID: "s1", Name: "announcements", Category: "Info", Position: 0, CreatedAt: now},
		},
		"s2": {
			{ID: "c4", ServerID: "s2", Name: "general", Category: "Text Channels", Position: 0, CreatedAt: now},
			{ID: "c5", ServerID: "s2", Name: "looking-for-group", Category: "Text Channels", Position: 1, CreatedAt: now},
		},
		"s3": {
			{ID: "c6", ServerID: "s3", Name: "general", Category: "Text Channels", Position: 0, CreatedAt: now},
			{ID: "c7", ServerID: "s3", Name: "feedback", Category: "Text Channels", Position: 1, CreatedAt: now},
		},
	}

	members := map[string][]models.ServerMember{
		"s1": membersOf(now, allUsers...),
		"s2": membersOf(now, currentUser, others[0], others[1]),
		"s3": membersOf(now, currentUser, others[2], others[3]),
	}

	messages := make(map[string][]models.Message, 7)
	for _, serverChannels := range channels {
		for _, channel := range serverChannels {
			messages[channel.ID] = generateMessages(now, channel.ID, allUsers)
		}
	}

	return Set{
		CurrentUser: currentUser,
		Users:       allUsers,
		Servers:     servers,
		Channels:    channels,
		Members:     members,
		Messages:    messages,
	}
}

func membersOf(now time.Time, users ...models.User) []models.ServerMember {
	members := make([]models.ServerMember, 0, len(users))
	for _, user := range users {
		members = append(members, models.ServerMember{
			User:     user,
			Roles:    []models.Role{},
			JoinedAt: now,
		})
	}
	return members
}

// generateMessages rotates through the phrase list, spacing timestamps three
// minutes apart walking back from now, oldest first.
func generateMessages(now time.Time, channelID string, authors []models.User) []models.Message {
	messages := make([]models.Message, 0, messagesPerChannel)
	for i := 0; i < messagesPerChannel; i++ {
		minutesAgo := time.Duration(messagesPerChannel-i) * 3 * time.Minute
		messages = append(messages, models.Message{
			ID:        fmt.Sprintf("%s-m%d", channelID, i),
			ChannelID: channelID,
			Author:    authors[i%len(authors)],
			Content:   phrases[i%len(phrases)],
			CreatedAt: now.Add(-minutesAgo),
		})
	}
	return messages
}
