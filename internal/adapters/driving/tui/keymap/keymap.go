// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back closes the top popup or returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Focus moves focus between the search input and the dropdown.
	Focus key.Binding

	// AddToCloset opens the closet picker for the highlighted item.
	AddToCloset key.Binding

	// NewCloset creates a closet.
	NewCloset key.Binding

	// DeleteCloset deletes the highlighted closet.
	DeleteCloset key.Binding

	// EditProfile opens the edit profile dialog.
	EditProfile key.Binding

	// Addresses opens the addresses dialog.
	Addresses key.Binding

	// Save persists the focused form.
	Save key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "focus"),
		),
		AddToCloset: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add to closet"),
		),
		NewCloset: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new closet"),
		),
		DeleteCloset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete closet"),
		),
		EditProfile: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit profile"),
		),
		Addresses: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "addresses"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
	}
}

// ShortHelp returns the bindings shown while typing.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Back, k.Quit}
}

// ResultsHelp returns the bindings shown while navigating the dropdown.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.AddToCloset, k.Back}
}

// PickerHelp returns the bindings shown while the closet picker is open.
func (k *KeyMap) PickerHelp() []key.Binding {
	return []key.Binding{k.Select, k.NewCloset, k.DeleteCloset, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Focus},
		{k.AddToCloset, k.NewCloset, k.DeleteCloset},
		{k.EditProfile, k.Addresses, k.Save},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
