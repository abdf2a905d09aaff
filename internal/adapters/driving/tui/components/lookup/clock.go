package lookup

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Clock schedules a message for delivery after a delay.
type Clock interface {
	// After returns a command that yields msg once d has elapsed.
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// TeaClock is the wall clock backed by tea.Tick.
type TeaClock struct{}

// After implements Clock.
func (TeaClock) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
