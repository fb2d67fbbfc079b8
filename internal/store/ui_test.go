package store_test

import (
	"testing"

	"chatapp-client/internal/store"
)

func TestUIDefaults(t *testing.T) {
	ui := store.NewUI()

	if ui.ViewMode() != store.ViewServers {
		t.Errorf("expected the servers view by default, got [%s]", ui.ViewMode())
	}
	if ui.Settings() != store.SettingsNone {
		t.Errorf("expected no settings panel by default, got [%s]", ui.Settings())
	}
	if ui.SidebarCollapsed() || ui.ShowMemberList() {
		t.Error("expected all flags off by default")
	}
}

func TestSetActiveDMClearsProfilePanel(t *testing.T) {
	ui := store.NewUI()
	ui.SetActiveDM("u2")
	ui.SetShowDMProfile(true)

	ui.SetActiveDM("u3")

	if ui.ActiveDMID() != "u3" {
		t.Errorf("expected active DM u3, got [%s]", ui.ActiveDMID())
	}
	if ui.ShowDMProfile() {
		t.Error("expected the profile panel to close when the conversation changes")
	}
}

func TestToggles(t *testing.T) {
	ui := store.NewUI()

	ui.ToggleSidebar()
	if !ui.SidebarCollapsed() {
		t.Error("expected the sidebar to collapse")
	}
	ui.ToggleSidebar()
	if ui.SidebarCollapsed() {
		t.Error("expected the sidebar to expand again")
	}

	ui.ToggleMemberList()
	if !ui.ShowMemberList() {
		t.Error("expected the member list to show")
	}

	ui.ToggleNotifications()
	if !ui.ShowNotifications() {
		t.Error("expected the notifications overlay to show")
	}
}

func TestSettingsLifecycle(t *testing.T) {
	ui := store.NewUI()

	ui.OpenSettings(store.SettingsServer)
	if ui.Settings() != store.SettingsServer {
		t.Errorf("expected the server settings panel, got [%s]", ui.Settings())
	}

	ui.CloseSettings()
	if ui.Settings() != store.SettingsNone {
		t.Errorf("expected settings to close, got [%s]", ui.Settings())
	}
}

func TestOverlayFlags(t *testing.T) {
	ui := store.NewUI()

	ui.SetShowSearch(true)
	ui.SetShowAddFriends(true)
	ui.SetShowNewMessage(true)
	ui.SetCreateServerOpen(true)
	ui.SetCreateChannelOpen(true)

	if !ui.ShowSearch() || !ui.ShowAddFriends() || !ui.ShowNewMessage() {
		t.Error("expected the overlay flags to be set")
	}
	if !ui.CreateServerOpen() || !ui.CreateChannelOpen() {
		t.Error("expected the dialog flags to be set")
	}
}
