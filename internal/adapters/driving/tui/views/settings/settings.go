// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/closet-cli/internal/core/domain"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driving"
)

// ErrNoSettingsService is reported when the view has no settings backend.
var ErrNoSettingsService = errors.New("settings service not available")

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// secretKey is edited with a masked input.
const secretKey = "api.session_token"

// View is the settings configuration view. It lists every stored key and
// edits one value at a time.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	values []domain.Setting
	err    error
	notice string

	selected int
	editing  bool
	input    textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	input := textinput.New()
	input.CharLimit = 256

	return &View{
		styles:          s,
		settingsService: settingsService,
		input:           input,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := v.settingsService.Get()
		if err != nil {
			return messages.SettingsLoaded{Err: err}
		}
		values, err := v.settingsService.Values()
		return messages.SettingsLoaded{Settings: settings, Values: values, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.input.Width = max(20, msg.Width/2)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.values = msg.Values
		v.selected = max(0, min(v.selected, len(v.values)-1))
		return v, nil

	case messages.SettingsReloaded:
		if v.editing {
			return v, nil
		}
		return v, v.loadSettings()

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.editing = false
		v.input.Blur()
		v.notice = "Saved " + msg.Key
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.editing {
		return v.handleEditKeys(msg)
	}

	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(v.values)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected < len(v.values) {
			return v, v.startEdit(v.values[v.selected])
		}
	case "r":
		return v, v.loadSettings()
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.editing = false
		v.err = nil
		v.input.Blur()
		return v, nil
	case keyEnter:
		return v, v.save(v.values[v.selected].Key, v.input.Value())
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) startEdit(s domain.Setting) tea.Cmd {
	v.editing = true
	v.notice = ""
	v.err = nil
	v.input.Placeholder = s.Key
	if s.Key == secretKey {
		v.input.EchoMode = textinput.EchoPassword
		v.input.SetValue("")
	} else {
		v.input.EchoMode = textinput.EchoNormal
		v.input.SetValue(s.Value)
	}
	v.input.CursorEnd()
	return v.input.Focus()
}

func (v *View) save(key, raw string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Key: key, Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Key: key, Err: v.settingsService.SetValue(key, raw)}
	}
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n")
	if v.settingsService != nil {
		b.WriteString(v.styles.Muted.Render(v.settingsService.Path()))
	}
	b.WriteString("\n\n")

	if len(v.values) == 0 && v.err == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		b.WriteString("\n")
	}

	keyWidth := 0
	for _, s := range v.values {
		keyWidth = max(keyWidth, len(s.Key))
	}
	for i, s := range v.values {
		b.WriteString(v.renderRow(i, s, keyWidth))
		b.WriteString("\n")
	}

	if v.editing {
		b.WriteString("\n")
		b.WriteString(v.input.View())
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[enter] edit  [r] reload  [esc] back"))
	}
	return b.String()
}

func (v *View) renderRow(i int, s domain.Setting, keyWidth int) string {
	value := s.Value
	if value == "" {
		value = "-"
	}
	line := fmt.Sprintf("%-*s  %s", keyWidth, s.Key, value)
	if v.width > 4 {
		line = ansi.Truncate(line, v.width-4, "…")
	}

	if i == v.selected {
		return v.styles.Selected.Render("> " + line)
	}
	return v.styles.Normal.Render("  " + line)
}

// Values returns the displayed settings.
func (v *View) Values() []domain.Setting {
	return v.values
}

// SelectedIndex returns the highlighted row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
