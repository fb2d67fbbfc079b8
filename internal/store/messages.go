package store

import (
	"sort"
	"sync"
	"time"

	"chatapp-client/internal/mockdata"
	"chatapp-client/internal/models"

	"go.uber.org/zap"
)

// typingWindow is how long a typing indicator lives without being refreshed.
const typingWindow = 3 * time.Second

// Messages holds per-channel message history plus the ephemeral typing
// indicator sets with timed expiry.
type Messages struct {
	notifier
	sugar *zap.SugaredLogger

	mutex    sync.Mutex
	messages map[string][]models.Message
	typing   map[string]map[string]time.Time // channel id -> username -> expiry deadline
	window   time.Duration
}

func NewMessages(sugar *zap.SugaredLogger) *Messages {
	return &Messages{
		sugar:    sugar,
		messages: make(map[string][]models.Message),
		typing:   make(map[string]map[string]time.Time),
		window:   typingWindow,
	}
}

// AddMessage appends to the channel's history, creating it if absent. A
// message id already present in the channel is ignored, so an event echoing
// an optimistic local append doesn't double the entry.
func (m *Messages) AddMessage(msg models.Message) {
	m.mutex.Lock()
	for _, existing := range m.messages[msg.ChannelID] {
		if existing.ID == msg.ID {
			m.mutex.Unlock()
			m.sugar.Debugf("Ignoring duplicate message ID [%s] in channel [%s]", msg.ID, msg.ChannelID)
			return
		}
	}
	m.messages[msg.ChannelID] = append(m.messages[msg.ChannelID], msg)
	m.mutex.Unlock()
	m.notify()
}

// EditMessage replaces the matching message's content and stamps the edited
// timestamp. Unknown ids are a silent no-op.
func (m *Messages) EditMessage(id string, channelID string, content string) {
	m.mutex.Lock()
	edited := false
	msgs := m.messages[channelID]
	for i := range msgs {
		if msgs[i].ID == id {
			now := time.Now()
			msgs[i].Content = content
			msgs[i].EditedAt = &now
			edited = true
			break
		}
	}
	m.mutex.Unlock()

	if edited {
		m.notify()
	}
}

// DeleteMessage filters the matching message out. Unknown ids are a silent
// no-op.
func (m *Messages) DeleteMessage(id string, channelID string) {
	m.mutex.Lock()
	deleted := false
	msgs := m.messages[channelID]
	kept := msgs[:0]
	for _, msg := range msgs {
		if msg.ID == id {
			deleted = true
			continue
		}
		kept = append(kept, msg)
	}
	if deleted {
		m.messages[channelID] = kept
	}
	m.mutex.Unlock()

	if deleted {
		m.notify()
	}
}

// ChannelMessages returns the channel's history in insertion order, empty
// (never nil) for unknown channels.
func (m *Messages) ChannelMessages(channelID string) []models.Message {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]models.Message{}, m.messages[channelID]...)
}

// LoadMockMessages replaces all history with the bundled mock dataset.
func (m *Messages) LoadMockMessages(data mockdata.Set) {
	m.mutex.Lock()
	m.messages = make(map[string][]models.Message, len(data.Messages))
	for id, msgs := range data.Messages {
		m.messages[id] = append([]models.Message(nil), msgs...)
	}
	m.mutex.Unlock()
	m.notify()
}

// SetTyping marks the user as typing in the channel and schedules automatic
// removal once the typing window elapses. Calling again refreshes the
// deadline; the earlier timer sees the newer deadline and leaves the entry
// alone.
func (m *Messages) SetTyping(channelID string, username string) {
	m.mutex.Lock()
	if m.typing[channelID] == nil {
		m.typing[channelID] = make(map[string]time.Time)
	}
	m.typing[channelID][username] = time.Now().Add(m.window)
	window := m.window
	m.mutex.Unlock()
	m.notify()

	time.AfterFunc(window, func() {
		m.expireTyping(channelID, username)
	})
}

// ClearTyping removes the user from the channel's typing set immediately.
func (m *Messages) ClearTyping(channelID string, username string) {
	m.mutex.Lock()
	cleared := m.removeTyping(channelID, username)
	m.mutex.Unlock()

	if cleared {
		m.notify()
	}
}

// TypingUsers returns the usernames currently typing in the channel, sorted
// for stable presentation.
func (m *Messages) TypingUsers(channelID string) []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	users := make([]string, 0, len(m.typing[channelID]))
	for username := range m.typing[channelID] {
		users = append(users, username)
	}
	sort.Strings(users)
	return users
}

func (m *Messages) expireTyping(channelID string, username string) {
	m.mutex.Lock()
	deadline, present := m.typing[channelID][username]
	if !present || time.Now().Before(deadline) {
		// refreshed since this timer was armed
		m.mutex.Unlock()
		return
	}
	m.removeTyping(channelID, username)
	m.mutex.Unlock()
	m.notify()
}

func (m *Messages) removeTyping(channelID string, username string) bool {
	users := m.typing[channelID]
	if _, present := users[username]; !present {
		return false
	}
	delete(users, username)
	if len(users) == 0 {
		delete(m.typing, channelID)
	}
	return true
}
