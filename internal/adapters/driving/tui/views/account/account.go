// Package account provides the profile card and its dialogs.
package account

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/components/modal"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/closet-cli/internal/core/domain"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driving"
	"github.com/custodia-labs/closet-cli/internal/logger"
)

// ErrNoSettingsService is reported when the view has no settings backend.
var ErrNoSettingsService = errors.New("settings service not available")

// Form fields of the edit profile dialog.
const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldUsername
	fieldCount
)

var fieldLabels = [fieldCount]string{"First name", "Last name", "Email", "Username"}

// View shows the profile card. The edit profile and addresses dialogs are
// modals drawn over it.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	settings driving.SettingsService

	profile domain.Profile
	err     error
	notice  string
	saving  bool

	editModal      *modal.Modal
	addressesModal *modal.Modal
	inputs         [fieldCount]textinput.Model
	focus          int

	width  int
	height int
}

// NewView creates a new account view.
func NewView(s *styles.Styles, km *keymap.KeyMap, settings driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:         s,
		keymap:         km,
		settings:       settings,
		editModal:      modal.New(s, "Edit profile"),
		addressesModal: modal.New(s, "Addresses"),
	}
	for i := range v.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = strings.ToLower(fieldLabels[i])
		ti.CharLimit = 128
		ti.Width = 32
		v.inputs[i] = ti
	}
	return v
}

// Init loads the stored profile.
func (v *View) Init() tea.Cmd {
	return func() tea.Msg {
		if v.settings == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		s, err := v.settings.Get()
		return messages.SettingsLoaded{Settings: s, Err: err}
	}
}

// Update handles messages for the account view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		if msg.Settings != nil {
			v.profile = msg.Settings.Profile
		}

	case messages.SettingsReloaded:
		return v, v.Init()

	case messages.ProfileSaved:
		v.saving = false
		if msg.Err != nil {
			logger.Warn("save profile: %v", msg.Err)
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.profile = msg.Profile
		v.notice = "Profile saved"
		v.editModal.Close()

	case tea.KeyMsg:
		return v, v.handleKeyMsg(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			v.HandlePointerDown(msg.X, msg.Y)
		}
	}
	return v, nil
}

// HandlePointerDown forwards a press to the open modal. It reports whether
// the press landed inside the dialog.
func (v *View) HandlePointerDown(x, y int) bool {
	switch {
	case v.editModal.IsOpen():
		return v.editModal.HandlePointerDown(x, y)
	case v.addressesModal.IsOpen():
		return v.addressesModal.HandlePointerDown(x, y)
	}
	return false
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()

	if v.addressesModal.IsOpen() {
		v.addressesModal.HandleKey(k)
		return nil
	}

	if v.editModal.IsOpen() {
		if v.editModal.HandleKey(k) {
			v.blurInputs()
			return nil
		}
		return v.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, v.keymap.Back):
		return func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case key.Matches(msg, v.keymap.EditProfile):
		return v.openEdit()
	case key.Matches(msg, v.keymap.Addresses):
		v.addressesModal.Open()
	}
	return nil
}

func (v *View) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keymap.Save):
		return v.save()
	case msg.String() == "enter":
		if v.focus == fieldCount-1 {
			return v.save()
		}
		return v.focusField(v.focus + 1)
	case msg.String() == "tab" || msg.String() == "down":
		return v.focusField((v.focus + 1) % fieldCount)
	case msg.String() == "shift+tab" || msg.String() == "up":
		return v.focusField((v.focus + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return cmd
}

func (v *View) openEdit() tea.Cmd {
	v.notice = ""
	v.inputs[fieldFirstName].SetValue(v.profile.FirstName)
	v.inputs[fieldLastName].SetValue(v.profile.LastName)
	v.inputs[fieldEmail].SetValue(v.profile.Email)
	v.inputs[fieldUsername].SetValue(v.profile.Username)
	v.editModal.Open()
	return v.focusField(fieldFirstName)
}

func (v *View) focusField(i int) tea.Cmd {
	v.blurInputs()
	v.focus = i
	v.inputs[i].CursorEnd()
	return v.inputs[i].Focus()
}

func (v *View) blurInputs() {
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
}

func (v *View) save() tea.Cmd {
	if v.saving {
		return nil
	}
	v.saving = true

	p := domain.Profile{
		FirstName: strings.TrimSpace(v.inputs[fieldFirstName].Value()),
		LastName:  strings.TrimSpace(v.inputs[fieldLastName].Value()),
		Email:     strings.TrimSpace(v.inputs[fieldEmail].Value()),
		Username:  strings.TrimSpace(v.inputs[fieldUsername].Value()),
	}
	return func() tea.Msg {
		if v.settings == nil {
			return messages.ProfileSaved{Profile: p, Err: ErrNoSettingsService}
		}
		return messages.ProfileSaved{Profile: p, Err: v.settings.SetProfile(p)}
	}
}

// View renders the profile card and any open dialog.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Account"))
	b.WriteString("\n\n")
	b.WriteString(v.renderCard())
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[e] edit profile  [a] addresses  [esc] back"))

	frame := b.String()
	frame = v.editModal.Render(frame, v.renderForm(), v.width, v.height)
	frame = v.addressesModal.Render(frame, v.styles.Muted.Render("No saved addresses."), v.width, v.height)
	return frame
}

func (v *View) renderCard() string {
	initials := v.profile.Initials()
	if initials == "" {
		initials = "?"
	}

	name := v.profile.DisplayName()
	if name == "" {
		name = "Guest"
	}
	details := lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Normal.Bold(true).Render(name),
		v.styles.Muted.Render(v.profile.Email),
	)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		v.styles.Avatar.Render(initials), "  ", details)
}

func (v *View) renderForm() string {
	lines := make([]string, 0, fieldCount*2+1)
	for i := range v.inputs {
		label := v.styles.Muted
		if i == v.focus {
			label = v.styles.Selected
		}
		lines = append(lines, label.Render(fieldLabels[i]), v.inputs[i].View())
	}
	hint := "ctrl+s save"
	if v.saving {
		hint = "Saving…"
	}
	lines = append(lines, "", v.styles.Help.Render(hint))
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Profile returns the displayed profile.
func (v *View) Profile() domain.Profile {
	return v.profile
}

// EditOpen reports whether the edit profile dialog is shown.
func (v *View) EditOpen() bool {
	return v.editModal.IsOpen()
}

// AddressesOpen reports whether the addresses dialog is shown.
func (v *View) AddressesOpen() bool {
	return v.addressesModal.IsOpen()
}

// ModalOpen reports whether any dialog is shown.
func (v *View) ModalOpen() bool {
	return v.editModal.IsOpen() || v.addressesModal.IsOpen()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
