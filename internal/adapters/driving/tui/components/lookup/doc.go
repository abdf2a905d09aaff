// Package lookup provides the incremental search controller used by every
// text-driven dropdown in the TUI.
//
// A Controller debounces keystrokes, serves repeated queries from a per
// controller cache, keeps at most one backend request in flight, and drops
// responses that no longer match the current query. It never renders
// anything; hosts read State and Result and draw them however they like.
//
// All methods must be called from the Bubble Tea Update loop. Backend calls
// run inside tea.Cmd goroutines and only report back through ResultMsg, so
// the controller needs no locking.
//
// Lifecycle, per host:
//
//	open, cmd := c.TextChanged(input.Value()) // on every edit
//	cmd := c.FocusGained()                    // when the input regains focus
//	handled, cmd := c.Update(msg)             // for every message the host sees
//	c.Close()                                 // when the host unmounts
package lookup
