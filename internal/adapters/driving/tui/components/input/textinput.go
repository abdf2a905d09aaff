// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/styles"
)

// Placeholder is shown while the search bar is empty.
const Placeholder = "Search tags, items, brands..."

// Height is the rendered height of the bordered input in rows.
const Height = 3

const minFieldWidth = 20

// SearchInput wraps a bubbles textinput with the search bar's framing.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewSearchInput creates a focused, empty search bar.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "⌕ "
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     40,
	}
}

// Init starts the cursor blink.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the text field and reports whether its text
// changed.
func (s *SearchInput) Update(msg tea.Msg) (changed bool, cmd tea.Cmd) {
	before := s.textinput.Value()
	s.textinput, cmd = s.textinput.Update(msg)
	return s.textinput.Value() != before, cmd
}

// View renders the bordered field.
func (s *SearchInput) View() string {
	style := s.styles.InputField
	if s.textinput.Focused() {
		style = style.BorderForeground(s.styles.Theme().Primary)
	}
	return style.Render(s.textinput.View())
}

// RenderedWidth returns the width of View's output in cells.
func (s *SearchInput) RenderedWidth() int {
	return lipgloss.Width(s.View())
}

// Value returns the current text.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue replaces the text.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// CursorEnd moves the cursor after the last character.
func (s *SearchInput) CursorEnd() {
	s.textinput.CursorEnd()
}

// Focus focuses the field.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the field.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused reports whether the field has focus.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sizes the field to fit width cells including its frame.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// border, padding and prompt
	s.textinput.Width = max(minFieldWidth, width-8)
}

// Width returns the width last passed to SetWidth.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the text.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
