package overlay

// Rect is a layout box in terminal cells. X and Y are zero-based.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	if r.Empty() {
		return false
	}
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Bottom returns the first row below r.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Element is something with a layout box, such as a popup trigger.
type Element interface {
	// Bounds returns the element's last rendered box. ok is false when the
	// element has not been laid out.
	Bounds() (r Rect, ok bool)
}

// Region answers hit tests for a widget root.
type Region interface {
	Contains(x, y int) bool
}

// RegionFunc adapts a function to Region.
type RegionFunc func(x, y int) bool

// Contains implements Region.
func (f RegionFunc) Contains(x, y int) bool {
	return f(x, y)
}

// Union returns a Region covering every given region.
func Union(regions ...Region) Region {
	return RegionFunc(func(x, y int) bool {
		for _, r := range regions {
			if r != nil && r.Contains(x, y) {
				return true
			}
		}
		return false
	})
}

// Box is a mutable Element and Region. Views record where they drew a
// widget into a Box while rendering.
type Box struct {
	rect    Rect
	laidOut bool
}

// Set records the rendered box.
func (b *Box) Set(r Rect) {
	b.rect = r
	b.laidOut = !r.Empty()
}

// Clear forgets the box, e.g. when the widget is not drawn.
func (b *Box) Clear() {
	b.rect = Rect{}
	b.laidOut = false
}

// Bounds implements Element.
func (b *Box) Bounds() (Rect, bool) {
	return b.rect, b.laidOut
}

// Contains implements Region.
func (b *Box) Contains(x, y int) bool {
	return b.laidOut && b.rect.Contains(x, y)
}

// Anchor positions a popup on screen.
//
// Anchored popups sit directly below their trigger: Left and Top are the
// popup's top-left cell and Width is the trigger's width, used as the
// popup's minimum width. A FromRight anchor is the fallback for triggers
// without a layout box; the popup then hugs the right edge, Right cells in.
type Anchor struct {
	Left, Top int
	Width     int

	FromRight bool
	Right     int
}

// Fallback anchor, in cells: top-right corner below a typical header.
const (
	FallbackTop   = 3
	FallbackRight = 2
)

// AnchorFor computes the anchor for a trigger box.
func AnchorFor(r Rect, ok bool) Anchor {
	if !ok || r.Empty() {
		return Anchor{Top: FallbackTop, FromRight: true, Right: FallbackRight}
	}
	return Anchor{
		Left:  max(0, r.X),
		Top:   max(0, r.Bottom()),
		Width: r.Width,
	}
}
