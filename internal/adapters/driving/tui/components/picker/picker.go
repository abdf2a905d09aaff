// Package picker implements the "add to closet" popup.
//
// Activating an item fetches the user's closets once and then opens the
// popup anchored under the activated row. Choosing a closet saves the
// item; on success the popup closes, on failure it stays open with a
// status line so the user can retry. Closets can be created and deleted
// from the popup with the same semantics.
package picker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/components/overlay"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/closet-cli/internal/core/domain"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driving"
	"github.com/custodia-labs/closet-cli/internal/logger"
)

// ErrNoClosetService is reported when the picker has no backend.
var ErrNoClosetService = errors.New("picker: closet service not available")

// rows above the first closet inside the frame: border, header, blank
const headerRows = 3

// Picker is the closet chooser popup.
type Picker struct {
	id      string
	epoch   int
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.ClosetService
	ctx     context.Context

	overlay *overlay.Controller
	box     overlay.Box
	trigger overlay.Element

	item     domain.ItemRef
	closets  []domain.Closet
	selected int

	loading bool
	busy    bool

	naming    bool
	nameInput textinput.Model

	status    string
	statusErr bool
	notice    string
}

// New creates a closed picker.
func New(s *styles.Styles, km *keymap.KeyMap, service driving.ClosetService) *Picker {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ni := textinput.New()
	ni.Placeholder = "closet name"
	ni.CharLimit = 64
	ni.Width = 24

	p := &Picker{
		id:        uuid.NewString(),
		styles:    s,
		keymap:    km,
		service:   service,
		ctx:       context.Background(),
		nameInput: ni,
	}
	p.overlay = overlay.NewController(p.Region())
	p.overlay.OnClose(p.reset)
	return p
}

// WithContext sets the context backend calls run under.
func (p *Picker) WithContext(ctx context.Context) *Picker {
	p.ctx = ctx
	return p
}

// Region covers the trigger row and the popup.
func (p *Picker) Region() overlay.Region {
	return overlay.RegionFunc(func(x, y int) bool {
		if p.box.Contains(x, y) {
			return true
		}
		if p.trigger == nil {
			return false
		}
		r, ok := p.trigger.Bounds()
		return ok && r.Contains(x, y)
	})
}

// Attach registers for outside-press detection.
func (p *Picker) Attach(doc *overlay.Document) {
	p.overlay.Attach(doc)
}

// Detach releases the document registration.
func (p *Picker) Detach() {
	p.overlay.Detach()
}

// Activate is called when an item row is activated. An open picker closes;
// otherwise the closets are fetched and the popup opens once they arrive.
func (p *Picker) Activate(item domain.ItemRef, trigger overlay.Element) tea.Cmd {
	if p.overlay.IsOpen() {
		p.overlay.OpenFor(trigger)
		return nil
	}
	if p.loading {
		return nil
	}

	p.item = item
	p.trigger = trigger
	p.loading = true
	p.status = ""
	p.statusErr = false
	return p.load()
}

// owner tags backend replies with the current open cycle. Replies from
// an earlier cycle are dropped.
func (p *Picker) owner() string {
	return fmt.Sprintf("%s#%d", p.id, p.epoch)
}

func (p *Picker) owns(owner string) bool {
	return strings.HasPrefix(owner, p.id+"#")
}

func (p *Picker) load() tea.Cmd {
	id := p.owner()
	return func() tea.Msg {
		if p.service == nil {
			return messages.ClosetsLoaded{Owner: id, Err: ErrNoClosetService}
		}
		closets, err := p.service.List(p.ctx)
		return messages.ClosetsLoaded{Owner: id, Closets: closets, Err: err}
	}
}

// Update consumes the picker's backend replies.
func (p *Picker) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ClosetsLoaded:
		if !p.owns(msg.Owner) {
			return false, nil
		}
		if msg.Owner == p.owner() {
			p.handleLoaded(msg)
		}
		return true, nil

	case messages.ClosetMutated:
		if !p.owns(msg.Owner) {
			return false, nil
		}
		if msg.Owner == p.owner() {
			p.handleMutated(msg)
		} else {
			logger.Debug("closet picker: dropped %s reply for %s after close", msg.Op, msg.Closet)
		}
		return true, nil
	}
	return false, nil
}

func (p *Picker) handleLoaded(msg messages.ClosetsLoaded) {
	if !p.loading {
		return
	}
	p.loading = false
	p.selected = 0
	p.closets = msg.Closets
	if msg.Err != nil {
		p.closets = nil
		p.setError("Could not load closets")
	}
	p.overlay.OpenFor(p.trigger)
}

func (p *Picker) handleMutated(msg messages.ClosetMutated) {
	p.busy = false

	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return
		}
		switch msg.Op {
		case messages.ItemAdded:
			p.setError(fmt.Sprintf("Could not add to %s", msg.Closet))
		case messages.ClosetCreated:
			p.setError(fmt.Sprintf("Could not create %s", msg.Closet))
		case messages.ClosetDeleted:
			p.setError(fmt.Sprintf("Could not delete %s", msg.Closet))
		}
		return
	}

	switch msg.Op {
	case messages.ItemAdded:
		p.notice = fmt.Sprintf("Added %s to %s", msg.Item.Label(), msg.Closet)
		p.overlay.Close()
	case messages.ClosetCreated:
		p.closets = append(p.closets, domain.Closet{Name: msg.Closet})
		p.selected = len(p.closets) - 1
		p.setStatus("Created " + msg.Closet)
	case messages.ClosetDeleted:
		for i, c := range p.closets {
			if c.Name == msg.Closet {
				p.closets = append(p.closets[:i], p.closets[i+1:]...)
				break
			}
		}
		p.selected = max(0, min(p.selected, len(p.closets)-1))
		p.setStatus("Deleted " + msg.Closet)
	}
}

// HandleKey handles keys while the picker is open.
func (p *Picker) HandleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd) {
	if !p.overlay.IsOpen() {
		return false, nil
	}
	if p.naming {
		return true, p.handleNamingKey(msg)
	}

	key := msg.String()
	switch {
	case p.overlay.HandleKey(key):
	case keymap.Matches(key, p.keymap.Up):
		if p.selected > 0 {
			p.selected--
		}
	case keymap.Matches(key, p.keymap.Down):
		if p.selected < len(p.closets)-1 {
			p.selected++
		}
	case keymap.Matches(key, p.keymap.Select):
		if c, ok := p.SelectedCloset(); ok {
			return true, p.mutate(messages.ItemAdded, c.Name)
		}
	case keymap.Matches(key, p.keymap.NewCloset):
		p.naming = true
		p.nameInput.SetValue("")
		return true, p.nameInput.Focus()
	case keymap.Matches(key, p.keymap.DeleteCloset):
		if c, ok := p.SelectedCloset(); ok {
			return true, p.mutate(messages.ClosetDeleted, c.Name)
		}
	}
	return true, nil
}

func (p *Picker) handleNamingKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		p.naming = false
		p.nameInput.Blur()
		return nil
	case "enter":
		name := strings.TrimSpace(p.nameInput.Value())
		if name == "" {
			return nil
		}
		p.naming = false
		p.nameInput.Blur()
		return p.mutate(messages.ClosetCreated, name)
	}
	var cmd tea.Cmd
	p.nameInput, cmd = p.nameInput.Update(msg)
	return cmd
}

// HandleClick saves the item into the closet row at (x, y). It reports
// whether the press landed on the popup.
func (p *Picker) HandleClick(x, y int) (handled bool, cmd tea.Cmd) {
	if !p.overlay.IsOpen() || !p.box.Contains(x, y) {
		return false, nil
	}
	r, _ := p.box.Bounds()
	idx := y - r.Y - headerRows
	if idx < 0 || idx >= len(p.closets) {
		return true, nil
	}
	p.selected = idx
	return true, p.mutate(messages.ItemAdded, p.closets[idx].Name)
}

// mutate issues one backend call. Further requests are refused until it
// reports back.
func (p *Picker) mutate(op messages.ClosetOp, closet string) tea.Cmd {
	if p.busy {
		return nil
	}
	p.busy = true
	p.status = ""
	p.statusErr = false

	id, item := p.owner(), p.item
	return func() tea.Msg {
		msg := messages.ClosetMutated{Owner: id, Op: op, Closet: closet, Item: item}
		if p.service == nil {
			msg.Err = ErrNoClosetService
			return msg
		}
		switch op {
		case messages.ItemAdded:
			msg.Err = p.service.AddItem(p.ctx, closet, item)
		case messages.ClosetCreated:
			msg.Err = p.service.Create(p.ctx, closet)
		case messages.ClosetDeleted:
			msg.Err = p.service.Delete(p.ctx, closet)
		}
		return msg
	}
}

// Close hides the picker. Replies to an in-flight fetch or mutation are
// dropped.
func (p *Picker) Close() {
	if p.overlay.IsOpen() {
		p.overlay.Close()
		return
	}
	p.reset()
}

// reset runs on every close and starts a new open cycle.
func (p *Picker) reset() {
	p.epoch++
	p.loading = false
	p.busy = false
	p.naming = false
	p.nameInput.Blur()
	p.box.Clear()
}

func (p *Picker) setError(text string) {
	logger.Warn("closet picker: %s", text)
	p.status = text
	p.statusErr = true
}

func (p *Picker) setStatus(text string) {
	p.status = text
	p.statusErr = false
}

// Render composes the popup over background at the overlay's anchor and
// records its box. A closed picker returns background unchanged.
func (p *Picker) Render(background string, width, height int) string {
	if !p.overlay.IsOpen() {
		return background
	}

	body := p.body()
	popup := p.styles.Popup.Render(body)
	anchor := p.overlay.Anchor()
	if anchor.Width > lipgloss.Width(popup) {
		// the popup is at least as wide as its trigger; Width excludes the border
		popup = p.styles.Popup.Width(anchor.Width - 2).Render(body)
	}

	p.box.Set(overlay.PlacedRect(anchor, lipgloss.Width(popup), lipgloss.Height(popup), width, height))
	return overlay.Place(background, popup, anchor, width, height)
}

func (p *Picker) body() string {
	lines := []string{
		p.styles.Subtitle.Render("Add " + p.item.Label() + " to closet"),
		"",
	}

	if len(p.closets) == 0 {
		lines = append(lines, p.styles.Muted.Render("No closets"))
	}
	for i, c := range p.closets {
		label := fmt.Sprintf("%s (%d)", c.Name, len(c.Items))
		if i == p.selected {
			lines = append(lines, p.styles.Selected.Render("› "+label))
		} else {
			lines = append(lines, p.styles.Normal.Render("  "+label))
		}
	}

	if p.naming {
		lines = append(lines, "", "New closet: "+p.nameInput.View())
	}
	if p.busy {
		lines = append(lines, "", p.styles.Muted.Render("Saving…"))
	}
	if p.status != "" {
		style := p.styles.Success
		if p.statusErr {
			style = p.styles.Error
		}
		lines = append(lines, "", style.Render(p.status))
	}

	return strings.Join(lines, "\n")
}

// SelectedCloset returns the highlighted closet.
func (p *Picker) SelectedCloset() (domain.Closet, bool) {
	if p.selected < 0 || p.selected >= len(p.closets) {
		return domain.Closet{}, false
	}
	return p.closets[p.selected], true
}

// TakeNotice returns and clears the last success notice for the host's
// status bar.
func (p *Picker) TakeNotice() string {
	n := p.notice
	p.notice = ""
	return n
}

// IsOpen reports whether the popup is visible.
func (p *Picker) IsOpen() bool {
	return p.overlay.IsOpen()
}

// Loading reports whether the closet list is being fetched.
func (p *Picker) Loading() bool {
	return p.loading
}

// Busy reports whether a mutating call is in flight.
func (p *Picker) Busy() bool {
	return p.busy
}

// Naming reports whether the new-closet field has focus.
func (p *Picker) Naming() bool {
	return p.naming
}

// Closets returns the closets shown in the popup.
func (p *Picker) Closets() []domain.Closet {
	return p.closets
}

// Item returns the item being filed.
func (p *Picker) Item() domain.ItemRef {
	return p.item
}

// Status returns the popup's status line and whether it reports a failure.
func (p *Picker) Status() (string, bool) {
	return p.status, p.statusErr
}

// Anchor exposes the overlay anchor.
func (p *Picker) Anchor() overlay.Anchor {
	return p.overlay.Anchor()
}

// Bounds returns the popup's last rendered box.
func (p *Picker) Bounds() (overlay.Rect, bool) {
	return p.box.Bounds()
}
