package store

import "sync"

// ViewMode selects which major view is showing.
type ViewMode string

const (
	ViewServers ViewMode = "servers"
	ViewDMs     ViewMode = "dms"
)

// SettingsView selects which settings panel is open, if any.
type SettingsView string

const (
	SettingsNone   SettingsView = ""
	SettingsUser   SettingsView = "user"
	SettingsServer SettingsView = "server"
)

// UI holds pure presentation-mode flags. Setters don't validate anything;
// there is nothing to get wrong beyond showing the wrong panel.
type UI struct {
	notifier

	mutex             sync.RWMutex
	viewMode          ViewMode
	sidebarCollapsed  bool
	settingsView      SettingsView
	activeDMID        string
	showDMProfile     bool
	showMemberList    bool
	showNotifications bool
	showSearch        bool
	showAddFriends    bool
	showNewMessage    bool
	createServerOpen  bool
	createChannelOpen bool
}

func NewUI() *UI {
	return &UI{viewMode: ViewServers}
}

func (u *UI) SetViewMode(mode ViewMode) {
	u.set(func() { u.viewMode = mode })
}

func (u *UI) ToggleSidebar() {
	u.set(func() { u.sidebarCollapsed = !u.sidebarCollapsed })
}

func (u *UI) OpenSettings(view SettingsView) {
	u.set(func() { u.settingsView = view })
}

func (u *UI) CloseSettings() {
	u.set(func() { u.settingsView = SettingsNone })
}

// SetActiveDM focuses a conversation and drops the profile panel, which
// would otherwise keep showing the previous conversation partner.
func (u *UI) SetActiveDM(id string) {
	u.set(func() {
		u.activeDMID = id
		u.showDMProfile = false
	})
}

func (u *UI) SetShowDMProfile(show bool) {
	u.set(func() { u.showDMProfile = show })
}

func (u *UI) ToggleMemberList() {
	u.set(func() { u.showMemberList = !u.showMemberList })
}

func (u *UI) ToggleNotifications() {
	u.set(func() { u.showNotifications = !u.showNotifications })
}

func (u *UI) SetShowSearch(show bool) {
	u.set(func() { u.showSearch = show })
}

func (u *UI) SetShowAddFriends(show bool) {
	u.set(func() { u.showAddFriends = show })
}

func (u *UI) SetShowNewMessage(show bool) {
	u.set(func() { u.showNewMessage = show })
}

func (u *UI) SetCreateServerOpen(open bool) {
	u.set(func() { u.createServerOpen = open })
}

func (u *UI) SetCreateChannelOpen(open bool) {
	u.set(func() { u.createChannelOpen = open })
}

func (u *UI) set(mutate func()) {
	u.mutex.Lock()
	mutate()
	u.mutex.Unlock()
	u.notify()
}

func (u *UI) ViewMode() ViewMode {
	u.mutex.RLock()
	defer u.mutex.RUnlock()
	return u.viewMode
}

func (u *UI) SidebarCollapsed() bool {
	u.mutex.RLock()
	defer u.mutex.RUnlock()
	return u.sidebarCollapsed
}

func (u *UI) Settings() SettingsView {
	u.mutex.RLock()
	defer u.mutex.RUnlock()
	return u.settingsView
}

func (u *UI) ActiveDMID() string {
	u.mutex.RLock()
	defer u.mutex.RUnlock()
	return u.activeDMID
}

func (u *UI) ShowDMProfile() bool {
	u.mutex.RLock()
	defer u.mutex.RUnlock()
	return u.showDMProfile
}

func (u *UI) ShowMemberList() bool {
	u.mutex.RLock()
	defer u.mutex.RUnlock()
	return u.showMemberList
}

func (u *UI) ShowNotifications() bool {
	u.mutex.RLock()
	defer u.mutex.RUnlock()
	return u.showNotifications
}

func (u *UI) ShowSearch() bool {
	u.mutex.RLock()
	defer u.mutex.RUnlock()
	return u.showSearch
}

func (u *UI) ShowAddFriends() bool {
	u.mutex.RLock()
	defer u.mutex.RUnlock()
	return u.showAddFriends
}

func (u *UI) ShowNewMessage() bool {
	u.mutex.RLock()
	defer u.mutex.RUnlock()
	return u.showNewMessage
}

func (u *UI) CreateServerOpen() bool {
	u.mutex.RLock()
	defer u.mutex.RUnlock()
	return u.createServerOpen
}

func (u *UI) CreateChannelOpen() bool {
	u.mutex.RLock()
	defer u.mutex.RUnlock()
	return u.createChannelOpen
}
