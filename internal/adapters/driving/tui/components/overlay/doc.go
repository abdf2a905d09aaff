// Package overlay manages popups anchored to a trigger element: the search
// dropdown, the closet picker and anything else that opens on demand and
// closes on outside interaction.
//
// A Controller tracks open/closed state and the anchor computed from the
// trigger's layout box each time the popup opens. It closes when a pointer
// press lands outside the widget's root region, or on esc.
//
// Pointer presses reach controllers through a Document, which the root
// model owns and dispatches to before routing the press to the focused
// view. This mirrors capture-phase listeners on a web document: every
// attached widget sees every press, including presses inside other popups.
package overlay
