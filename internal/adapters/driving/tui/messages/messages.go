// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search bar with its dropdown.
	ViewSearch
	// ViewClosets lists the user's closets.
	ViewClosets
	// ViewAccount shows the profile card.
	ViewAccount
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewClosets:
		return "closets"
	case ViewAccount:
		return "account"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ClosetsLoaded carries the user's closets from the backend.
type ClosetsLoaded struct {
	Owner   string
	Closets []domain.Closet
	Err     error
}

// ClosetOp names a mutating closet action.
type ClosetOp string

const (
	ClosetCreated ClosetOp = "create"
	ClosetDeleted ClosetOp = "delete"
	ItemAdded     ClosetOp = "add_item"
)

// ClosetMutated reports the outcome of a create, delete or add-item call.
type ClosetMutated struct {
	Owner  string
	Op     ClosetOp
	Closet string
	Item   domain.ItemRef
	Err    error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Values   []domain.Setting
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Key string
	Err error
}

// SettingsReloaded is sent when the config file changes on disk.
type SettingsReloaded struct{}

// ProfileSaved signals the profile was persisted.
type ProfileSaved struct {
	Profile domain.Profile
	Err     error
}
