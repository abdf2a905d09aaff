package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace_DrawsAtAnchor(t *testing.T) {
	bg := strings.Join([]string{
		"..........",
		"..........",
		"..........",
	}, "\n")

	out := ansi.Strip(Place(bg, "ab\ncd", Anchor{Left: 3, Top: 1}, 10, 3))

	assert.Equal(t, strings.Join([]string{
		"..........",
		"...ab.....",
		"...cd.....",
	}, "\n"), out)
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := ansi.Strip(Place("", "xy", Anchor{Left: 2, Top: 1}, 6, 2))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "  xy", lines[1])
}

func TestPlace_ShiftsLeftToStayOnScreen(t *testing.T) {
	out := ansi.Strip(Place("........", "abcd", Anchor{Left: 6}, 8, 1))
	assert.Equal(t, "....abcd", out)
}

func TestPlace_FromRight(t *testing.T) {
	out := ansi.Strip(Place("..........", "ab", Anchor{FromRight: true, Right: 2}, 10, 1))
	assert.Equal(t, "......ab..", out)
}

func TestPlace_CutsRowsBelowScreen(t *testing.T) {
	out := ansi.Strip(Place("....\n....", "a\nb\nc", Anchor{Left: 0, Top: 1}, 4, 2))
	assert.Equal(t, "....\na...", out)
}

func TestPlace_PadsRaggedPopup(t *testing.T) {
	out := ansi.Strip(Place("......", "abc\nd", Anchor{Left: 1, Top: 0}, 6, 2))
	lines := strings.Split(out, "\n")
	assert.Equal(t, ".abc..", lines[0])
	assert.Equal(t, " d  ", lines[1])
}

func TestPlace_ZeroViewport(t *testing.T) {
	assert.Equal(t, "", Place("bg", "p", Anchor{}, 0, 0))
}

func TestPlacedRect(t *testing.T) {
	tests := []struct {
		name   string
		anchor Anchor
		want   Rect
	}{
		{"anchored", Anchor{Left: 2, Top: 1}, Rect{X: 2, Y: 1, Width: 4, Height: 3}},
		{"shifted left", Anchor{Left: 9, Top: 0}, Rect{X: 6, Y: 0, Width: 4, Height: 3}},
		{"cut at bottom", Anchor{Left: 0, Top: 4}, Rect{X: 0, Y: 4, Width: 4, Height: 1}},
		{"from right", Anchor{FromRight: true, Right: 2, Top: 3}, Rect{X: 4, Y: 3, Width: 4, Height: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlacedRect(tt.anchor, 4, 3, 10, 5))
		})
	}
}
