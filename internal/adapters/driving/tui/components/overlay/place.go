package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const resetSGR = "\x1b[0m"

// Place draws popup over background at anchor and returns the combined
// frame. The frame is padded or cut to width x height cells; the popup is
// shifted left or cut so it stays on screen. Both inputs may contain ANSI
// styling.
func Place(background, popup string, anchor Anchor, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	bg := strings.Split(background, "\n")
	for len(bg) < height {
		bg = append(bg, "")
	}
	bg = bg[:height]

	lines := strings.Split(popup, "\n")
	popupWidth := 0
	for _, l := range lines {
		popupWidth = max(popupWidth, ansi.StringWidth(l))
	}
	box := PlacedRect(anchor, popupWidth, len(lines), width, height)
	left, top := box.X, box.Y
	popupWidth = box.Width

	for i, line := range lines {
		row := top + i
		if row >= height {
			break
		}
		bg[row] = spliceLine(bg[row], line, left, popupWidth)
	}

	return strings.Join(bg, "\n")
}

// spliceLine replaces cells [left, left+w) of base with overlay.
func spliceLine(base, overlay string, left, w int) string {
	overlay = ansi.Truncate(overlay, w, "")
	if pad := w - ansi.StringWidth(overlay); pad > 0 {
		overlay += strings.Repeat(" ", pad)
	}

	head := ansi.Truncate(base, left, "")
	if pad := left - ansi.StringWidth(head); pad > 0 {
		head += strings.Repeat(" ", pad)
	}
	tail := ""
	if ansi.StringWidth(base) > left+w {
		tail = ansi.TruncateLeft(base, left+w, "")
	}

	return head + resetSGR + overlay + resetSGR + tail
}

// PlacedRect returns the on-screen box Place uses for a w x h popup: moved
// left to fit the viewport and cut at its edges.
func PlacedRect(anchor Anchor, w, h, width, height int) Rect {
	w = min(w, width)

	left := anchor.Left
	if anchor.FromRight {
		left = width - w - anchor.Right
	}
	if left+w > width {
		left = width - w
	}
	left = max(0, left)
	top := max(0, anchor.Top)

	return Rect{X: left, Y: top, Width: w, Height: max(0, min(h, height-top))}
}
