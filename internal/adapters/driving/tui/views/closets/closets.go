// Package closets provides the closet management view for the TUI.
package closets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/closet-cli/internal/core/domain"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driving"
)

// ErrNoClosetService is reported when the view has no backend.
var ErrNoClosetService = errors.New("closet service not available")

// View lists the user's closets and their items.
type View struct {
	id      string
	styles  *styles.Styles
	service driving.ClosetService
	ctx     context.Context

	closets  []domain.Closet
	selected int
	loading  bool
	busy     bool
	err      error
	notice   string

	naming    bool
	nameInput textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new closets view.
func NewView(s *styles.Styles, service driving.ClosetService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ni := textinput.New()
	ni.Placeholder = "closet name"
	ni.CharLimit = 64

	return &View{
		id:        uuid.NewString(),
		styles:    s,
		service:   service,
		ctx:       context.Background(),
		nameInput: ni,
	}
}

// WithContext sets the context backend calls run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the closets.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	id := v.id
	return func() tea.Msg {
		if v.service == nil {
			return messages.ClosetsLoaded{Owner: id, Err: ErrNoClosetService}
		}
		closets, err := v.service.List(v.ctx)
		return messages.ClosetsLoaded{Owner: id, Closets: closets, Err: err}
	}
}

// Update handles messages for the closets view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ClosetsLoaded:
		if msg.Owner != v.id {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.closets = msg.Closets
		v.selected = max(0, min(v.selected, len(v.closets)-1))
		return v, nil

	case messages.ClosetMutated:
		if msg.Owner != v.id {
			return v, nil
		}
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		switch msg.Op {
		case messages.ClosetCreated:
			v.notice = "Created " + msg.Closet
		case messages.ClosetDeleted:
			v.notice = "Deleted " + msg.Closet
		case messages.ItemAdded:
		}
		v.loading = true
		return v, v.load()
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.naming {
		return v, v.handleNamingKey(msg)
	}

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.closets)-1 {
			v.selected++
		}
	case "n":
		v.naming = true
		v.nameInput.SetValue("")
		return v, v.nameInput.Focus()
	case "x", "delete":
		if v.selected < len(v.closets) {
			return v, v.mutate(messages.ClosetDeleted, v.closets[v.selected].Name)
		}
	case "r":
		v.loading = true
		return v, v.load()
	}
	return v, nil
}

func (v *View) handleNamingKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.naming = false
		v.nameInput.Blur()
		return nil
	case "enter":
		name := strings.TrimSpace(v.nameInput.Value())
		if name == "" {
			return nil
		}
		v.naming = false
		v.nameInput.Blur()
		return v.mutate(messages.ClosetCreated, name)
	}
	var cmd tea.Cmd
	v.nameInput, cmd = v.nameInput.Update(msg)
	return cmd
}

func (v *View) mutate(op messages.ClosetOp, name string) tea.Cmd {
	if v.busy {
		return nil
	}
	v.busy = true
	v.notice = ""

	id := v.id
	return func() tea.Msg {
		msg := messages.ClosetMutated{Owner: id, Op: op, Closet: name}
		if v.service == nil {
			msg.Err = ErrNoClosetService
			return msg
		}
		if op == messages.ClosetCreated {
			msg.Err = v.service.Create(v.ctx, name)
		} else {
			msg.Err = v.service.Delete(v.ctx, name)
		}
		return msg
	}
}

// View renders the closets view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Closets"))
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.closets) == 0:
		b.WriteString(v.styles.Muted.Render("Loading closets..."))
		b.WriteString("\n")
	case len(v.closets) == 0:
		b.WriteString(v.styles.Muted.Render("No closets yet."))
		b.WriteString("\n")
	default:
		for i := range v.closets {
			b.WriteString(v.renderCloset(i, &v.closets[i]))
			b.WriteString("\n")
		}
	}

	if v.naming {
		b.WriteString("\nNew closet: ")
		b.WriteString(v.nameInput.View())
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
	b.WriteString(v.styles.Help.Render("[n] new  [x] delete  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderCloset(index int, c *domain.Closet) string {
	label := fmt.Sprintf("%s (%d)", c.Name, len(c.Items))
	if index != v.selected {
		return v.styles.Normal.Render("  " + label)
	}

	lines := []string{v.styles.Selected.Render("> " + label)}
	for _, it := range c.Items {
		ref := domain.ItemRef(it)
		lines = append(lines, v.styles.Muted.Render("    · "+ref.Label()))
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.nameInput.Width = max(16, width/3)
}

// Closets returns the loaded closets.
func (v *View) Closets() []domain.Closet {
	return v.closets
}

// SelectedIndex returns the highlighted closet.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Naming reports whether the new-closet field has focus.
func (v *View) Naming() bool {
	return v.naming
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
