// Package modal provides a centred dialog drawn over the current view.
package modal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/components/overlay"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/styles"
)

// CloseKeys close an open modal.
var CloseKeys = []string{"esc", "ctrl+w"}

// Modal is an open flag plus the box it was last drawn in. A press on the
// backdrop, anywhere outside the box, closes it.
type Modal struct {
	title  string
	styles *styles.Styles
	open   bool
	box    overlay.Box
}

// New creates a closed modal.
func New(s *styles.Styles, title string) *Modal {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Modal{title: title, styles: s}
}

// Open shows the modal.
func (m *Modal) Open() {
	m.open = true
}

// Close hides the modal. It is idempotent.
func (m *Modal) Close() {
	m.open = false
	m.box.Clear()
}

// IsOpen reports whether the modal is shown.
func (m *Modal) IsOpen() bool {
	return m.open
}

// Title returns the dialog title.
func (m *Modal) Title() string {
	return m.title
}

// HandleKey closes the modal on a close key and reports whether the key
// was consumed.
func (m *Modal) HandleKey(key string) bool {
	if !m.open {
		return false
	}
	for _, k := range CloseKeys {
		if key == k {
			m.Close()
			return true
		}
	}
	return false
}

// HandlePointerDown closes the modal when the press lands on the backdrop.
// It reports whether the press hit the dialog box.
func (m *Modal) HandlePointerDown(x, y int) bool {
	if !m.open {
		return false
	}
	if m.box.Contains(x, y) {
		return true
	}
	m.Close()
	return false
}

// Render draws body in a titled frame centred over background and records
// the frame's box for hit tests. A closed modal returns background as is.
func (m *Modal) Render(background, body string, width, height int) string {
	if !m.open {
		return background
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(m.title),
		"",
		body,
		"",
		m.styles.Muted.Render("esc close"),
	)
	frame := m.styles.Modal.Render(content)

	w, h := lipgloss.Width(frame), lipgloss.Height(frame)
	x := max(0, (width-w)/2)
	y := max(0, (height-h)/2)
	m.box.Set(overlay.Rect{X: x, Y: y, Width: w, Height: h})

	return overlay.Place(background, frame, overlay.Anchor{Left: x, Top: y}, width, height)
}

// Bounds returns the box of the last render.
func (m *Modal) Bounds() (overlay.Rect, bool) {
	return m.box.Bounds()
}
