// Package search provides the search bar view: a text input with an
// incremental-search dropdown and an "add to closet" picker for items.
package search

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/components/lookup"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/components/overlay"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/components/picker"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/closet-cli/internal/core/domain"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driving"
)

// Dropdown placeholder texts.
const (
	TextSearching   = "Searching…"
	TextNoResults   = "No results"
	TextTypeSearch  = "Type to search"
	minDropdownRows = 3
)

// inputTop is the row the input's frame starts on.
const inputTop = 2

// View is the search bar host. It owns one lookup controller for the input
// and one overlay controller for the dropdown.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	results   *list.ResultList
	spinner   spinner.Model
	statusbar *status.Bar

	lookup   *lookup.Controller
	dropdown *overlay.Controller
	picker   *picker.Picker

	// boxes recorded while rendering, used for anchoring and hit tests
	inputBox overlay.Box
	popupBox overlay.Box
	rowBox   overlay.Box
	listTop  int

	shownVersion uint64
	focusList    bool
	mounted      bool

	width  int
	height int
	ready  bool
}

// NewView creates a search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	lookupService driving.LookupService,
	closetService driving.ClosetService,
	cfg lookup.Config,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewSearchInput(s),
		results:   list.NewResultList(s),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Title)),
		statusbar: status.NewBar(s, km),
		lookup:    lookup.NewController(lookupService, cfg),
		picker:    picker.New(s, km, closetService),
		listTop:   -1,
		width:     80,
		height:    24,
	}
	v.dropdown = overlay.NewController(overlay.Union(&v.inputBox, &v.popupBox, v.picker.Region()))
	return v
}

// WithContext sets the context backend calls run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.lookup.WithContext(ctx)
	v.picker.WithContext(ctx)
	return v
}

// Init starts the cursor blink.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Mount attaches the view's popups to doc and focuses the input. A query
// left from the last visit reopens the dropdown and is looked up again.
func (v *View) Mount(doc *overlay.Document) tea.Cmd {
	v.lookup.Reopen()
	v.dropdown.Attach(doc)
	v.picker.Attach(doc)
	v.mounted = true

	if v.input.Value() == "" {
		v.focusList = false
		return tea.Batch(v.input.Init(), v.input.Focus())
	}
	return tea.Batch(v.input.Init(), v.focusInput())
}

// Unmount detaches from the document, closes the popups and releases the
// lookup's timer and request.
func (v *View) Unmount() {
	v.dropdown.Detach()
	v.picker.Detach()
	v.dropdown.Close()
	v.picker.Close()
	v.lookup.Close()
	v.mounted = false
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if handled, cmd := v.lookup.Update(msg); handled {
		return v, tea.Batch(cmd, v.sync())
	}
	if handled, cmd := v.picker.Update(msg); handled {
		if notice := v.picker.TakeNotice(); notice != "" {
			v.statusbar.SetState(status.StateNotice)
			v.statusbar.SetMessage(notice)
		}
		v.syncHints()
		return v, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		if !v.lookup.Loading() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return v, v.handleClick(msg.X, msg.Y)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	if v.input.Focused() {
		_, cmd := v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// sync copies lookup state into the dropdown list and status bar. It
// returns the spinner tick when a lookup has just started.
func (v *View) sync() tea.Cmd {
	if v.lookup.Version() == v.shownVersion {
		return nil
	}
	v.shownVersion = v.lookup.Version()

	var cmd tea.Cmd
	switch v.lookup.State() {
	case lookup.StateLoading:
		v.results.SetResult(domain.SearchResult{})
		v.statusbar.SetState(status.StateSearching)
		cmd = v.spinner.Tick
	case lookup.StateReady, lookup.StateError:
		v.results.SetResult(v.lookup.Result())
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetResultCount(v.results.Count())
	case lookup.StateIdle:
		v.results.SetResult(domain.SearchResult{})
		v.statusbar.Clear()
	}
	if v.results.IsEmpty() {
		v.focusList = false
	}
	v.syncHints()
	return cmd
}

func (v *View) syncHints() {
	switch {
	case v.picker.IsOpen():
		v.statusbar.SetHints(v.keymap.PickerHelp())
	case v.focusList:
		v.statusbar.SetHints(v.keymap.ResultsHelp())
	default:
		v.statusbar.SetHints(v.keymap.ShortHelp())
	}
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if handled, cmd := v.picker.HandleKey(msg); handled {
		v.syncHints()
		return v, cmd
	}

	key := msg.String()

	if keymap.Matches(key, v.keymap.Back) {
		if v.dropdown.HandleKey(key) {
			v.focusList = false
			v.input.Focus()
			v.syncHints()
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if keymap.Matches(key, v.keymap.Focus) {
		if v.focusList {
			return v, v.focusInput()
		}
		v.focusResults()
		return v, nil
	}

	if v.focusList {
		switch {
		case keymap.Matches(key, v.keymap.Up):
			v.results.MoveUp()
		case keymap.Matches(key, v.keymap.Down):
			v.results.MoveDown()
		case keymap.Matches(key, v.keymap.Select):
			return v, v.activate()
		default:
			// typing goes back to the input
			cmd := v.focusInput()
			return v, tea.Batch(cmd, v.typeKey(msg))
		}
		return v, nil
	}

	if msg.Type == tea.KeyDown || msg.Type == tea.KeyEnter {
		v.focusResults()
		return v, nil
	}

	return v, v.typeKey(msg)
}

// typeKey forwards a key to the input and reports text changes to the
// lookup controller.
func (v *View) typeKey(msg tea.KeyMsg) tea.Cmd {
	changed, cmd := v.input.Update(msg)
	if !changed {
		return cmd
	}
	return tea.Batch(cmd, v.textChanged())
}

func (v *View) textChanged() tea.Cmd {
	open, cmd := v.lookup.TextChanged(v.input.Value())
	if open {
		v.dropdown.Show(&v.inputBox)
	}
	return tea.Batch(cmd, v.sync())
}

// focusInput moves focus to the input. Focus opens the dropdown and looks
// the current query up again through the debounce path.
func (v *View) focusInput() tea.Cmd {
	v.focusList = false
	blink := v.input.Focus()
	v.dropdown.Show(&v.inputBox)
	v.syncHints()
	return tea.Batch(blink, v.lookup.FocusGained())
}

func (v *View) focusResults() {
	if !v.dropdown.IsOpen() || v.results.IsEmpty() {
		return
	}
	v.focusList = true
	v.input.Blur()
	v.syncHints()
}

// activate acts on the highlighted row: items open the closet picker,
// tags and brands become the new query.
func (v *View) activate() tea.Cmd {
	row, ok := v.results.SelectedRow()
	if !ok {
		return nil
	}

	if row.Kind == list.KindItem {
		item := domain.ItemRef{Item: row.Label, Brand: v.lookup.Result().BrandFor(row.Label)}
		cmd := v.picker.Activate(item, &v.rowBox)
		v.syncHints()
		return cmd
	}

	v.picker.Close()
	v.input.SetValue(row.Label)
	v.input.CursorEnd()
	return tea.Batch(v.focusInput(), v.textChanged())
}

// handleClick routes a left press after the document listeners have run.
func (v *View) handleClick(x, y int) tea.Cmd {
	if handled, cmd := v.picker.HandleClick(x, y); handled {
		return cmd
	}

	if v.dropdown.IsOpen() && v.popupBox.Contains(x, y) && v.listTop >= 0 {
		idx, ok := v.results.RowAt(y - v.listTop)
		if !ok {
			return nil
		}
		v.results.SetSelected(idx)
		v.focusResults()
		return v.activate()
	}

	if v.inputBox.Contains(x, y) && !v.input.Focused() {
		return v.focusInput()
	}
	return nil
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	header := v.styles.Title.Render("closet") + v.styles.Muted.Render("  search the catalogue")
	inputView := v.input.View()
	v.inputBox.Set(overlay.Rect{X: 0, Y: inputTop, Width: lipgloss.Width(inputView), Height: input.Height})

	lines := make([]string, 0, v.height)
	lines = append(lines, header, "")
	lines = append(lines, strings.Split(inputView, "\n")...)
	for len(lines) < v.height-1 {
		lines = append(lines, "")
	}
	lines = append(lines[:v.height-1], v.statusbar.View())
	frame := strings.Join(lines, "\n")

	frame = v.renderDropdown(frame)
	return v.picker.Render(frame, v.width, v.height)
}

func (v *View) renderDropdown(frame string) string {
	v.listTop = -1
	if !v.dropdown.IsOpen() {
		v.popupBox.Clear()
		v.rowBox.Clear()
		return frame
	}

	anchor := v.dropdown.Anchor()
	innerWidth := max(20, anchor.Width-4)
	body, isList := v.dropdownBody(innerWidth, anchor.Top)

	style := v.styles.Popup
	if anchor.Width > 0 {
		style = style.Width(max(anchor.Width-2, innerWidth+2))
	}
	popup := style.Render(body)

	box := overlay.PlacedRect(anchor, lipgloss.Width(popup), lipgloss.Height(popup), v.width, v.height)
	v.popupBox.Set(box)

	v.rowBox.Clear()
	if isList {
		v.listTop = box.Y + 1
		if line, ok := v.results.LineOf(v.results.Selected()); ok {
			v.rowBox.Set(overlay.Rect{X: box.X, Y: v.listTop + line, Width: box.Width, Height: 1})
		}
	}

	return overlay.Place(frame, popup, anchor, v.width, v.height)
}

// dropdownBody renders the dropdown content for the lookup state and
// reports whether it is the result list.
func (v *View) dropdownBody(width, top int) (string, bool) {
	switch v.lookup.State() {
	case lookup.StateLoading:
		return v.spinner.View() + " " + v.styles.Muted.Render(TextSearching), false
	case lookup.StateReady, lookup.StateError:
		if v.results.IsEmpty() {
			return v.styles.Muted.Render(TextNoResults), false
		}
		// border rows plus the status bar
		v.results.SetDimensions(width, max(minDropdownRows, v.height-top-3))
		return v.results.View(), true
	case lookup.StateIdle:
	}
	return v.styles.Muted.Render(TextTypeSearch), false
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = max(height, input.Height+4)
	v.ready = true

	v.input.SetWidth(min(width, 72))
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the input text.
func (v *View) Query() string {
	return v.input.Value()
}

// Lookup exposes the lookup controller.
func (v *View) Lookup() *lookup.Controller {
	return v.lookup
}

// Dropdown exposes the dropdown's overlay controller.
func (v *View) Dropdown() *overlay.Controller {
	return v.dropdown
}

// Picker exposes the closet picker.
func (v *View) Picker() *picker.Picker {
	return v.picker
}

// Results exposes the dropdown rows.
func (v *View) Results() *list.ResultList {
	return v.results
}

// FocusList reports whether the dropdown rows have keyboard focus.
func (v *View) FocusList() bool {
	return v.focusList
}

// Mounted reports whether the view is attached to a document.
func (v *View) Mounted() bool {
	return v.mounted
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}
