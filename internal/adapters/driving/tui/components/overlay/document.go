package overlay

import "sort"

// PointerListener receives pointer presses in screen cells.
type PointerListener func(x, y int)

// Document is the whole-screen pointer registry.
// It is used from the Bubble Tea Update loop only and is not safe for
// concurrent use.
type Document struct {
	next      uint64
	listeners map[uint64]PointerListener
}

// NewDocument creates an empty registry.
func NewDocument() *Document {
	return &Document{listeners: make(map[uint64]PointerListener)}
}

// Listen registers fn and returns a release func. Releasing more than once
// is harmless.
func (d *Document) Listen(fn PointerListener) (release func()) {
	d.next++
	id := d.next
	d.listeners[id] = fn

	return func() {
		delete(d.listeners, id)
	}
}

// DispatchPointerDown delivers a press to every listener registered when
// the dispatch starts, in registration order. Listeners may release
// themselves or others while being called.
func (d *Document) DispatchPointerDown(x, y int) {
	ids := make([]uint64, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	snapshot := make([]PointerListener, 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, d.listeners[id])
	}
	for _, fn := range snapshot {
		fn(x, y)
	}
}

// Len returns the number of registered listeners.
func (d *Document) Len() int {
	return len(d.listeners)
}
