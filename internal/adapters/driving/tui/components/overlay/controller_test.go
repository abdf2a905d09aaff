package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture() (*Controller, *Box, *Box) {
	trigger := &Box{}
	trigger.Set(Rect{X: 4, Y: 2, Width: 10, Height: 1})
	popup := &Box{}
	popup.Set(Rect{X: 4, Y: 3, Width: 20, Height: 5})
	return NewController(Union(trigger, popup)), trigger, popup
}

func TestController_StartsClosed(t *testing.T) {
	c := NewController(nil)
	assert.False(t, c.IsOpen())
	assert.False(t, c.Attached())
}

func TestController_OpenForAnchorsBelowTrigger(t *testing.T) {
	c, trigger, _ := newFixture()

	c.OpenFor(trigger)

	require.True(t, c.IsOpen())
	assert.Equal(t, Anchor{Left: 4, Top: 3, Width: 10}, c.Anchor())
	assert.Same(t, trigger, c.Trigger())
}

func TestController_OpenForTogglesWithoutReanchoring(t *testing.T) {
	c, trigger, _ := newFixture()
	c.OpenFor(trigger)
	first := c.Anchor()

	trigger.Set(Rect{X: 30, Y: 10, Width: 5, Height: 1})
	c.OpenFor(trigger)

	assert.False(t, c.IsOpen())
	assert.Equal(t, first, c.Anchor())
}

func TestController_ReopenRecomputesAnchor(t *testing.T) {
	c, trigger, _ := newFixture()
	c.OpenFor(trigger)
	c.Close()

	trigger.Set(Rect{X: 30, Y: 10, Width: 5, Height: 1})
	c.OpenFor(trigger)

	require.True(t, c.IsOpen())
	assert.Equal(t, Anchor{Left: 30, Top: 11, Width: 5}, c.Anchor())
}

func TestController_TriggerWithoutLayoutUsesFallback(t *testing.T) {
	c := NewController(nil)

	c.OpenFor(&Box{})
	assert.Equal(t, Anchor{Top: FallbackTop, FromRight: true, Right: FallbackRight}, c.Anchor())

	c.Close()
	c.OpenFor(nil)
	assert.True(t, c.IsOpen())
	assert.True(t, c.Anchor().FromRight)
}

func TestController_ShowDoesNotToggle(t *testing.T) {
	c, trigger, _ := newFixture()

	c.Show(trigger)
	c.Show(trigger)

	assert.True(t, c.IsOpen())
}

func TestController_PointerOutsideCloses(t *testing.T) {
	c, trigger, _ := newFixture()
	c.OpenFor(trigger)

	c.HandlePointerDown(0, 0)

	assert.False(t, c.IsOpen())
}

func TestController_PointerInsideKeepsOpen(t *testing.T) {
	c, trigger, _ := newFixture()
	c.OpenFor(trigger)

	c.HandlePointerDown(5, 2)  // trigger
	c.HandlePointerDown(10, 6) // popup body

	assert.True(t, c.IsOpen())
}

func TestController_PointerWhileClosedIsNoop(t *testing.T) {
	c, _, _ := newFixture()
	c.HandlePointerDown(0, 0)
	assert.False(t, c.IsOpen())
}

func TestController_EscCloses(t *testing.T) {
	c, trigger, _ := newFixture()

	assert.False(t, c.HandleKey("esc"), "closed popup does not consume esc")

	c.OpenFor(trigger)
	assert.False(t, c.HandleKey("enter"))
	assert.True(t, c.IsOpen())

	assert.True(t, c.HandleKey("esc"))
	assert.False(t, c.IsOpen())
}

func TestController_CloseIsIdempotent(t *testing.T) {
	c, trigger, _ := newFixture()
	c.OpenFor(trigger)
	c.Close()
	c.Close()
	assert.False(t, c.IsOpen())
}

func TestController_OnCloseRunsOncePerClose(t *testing.T) {
	doc := NewDocument()
	c, trigger, _ := newFixture()
	c.Attach(doc)
	closes := 0
	c.OnClose(func() { closes++ })

	c.Close()
	assert.Equal(t, 0, closes, "closing a closed popup does not fire")

	c.OpenFor(trigger)
	doc.DispatchPointerDown(79, 23)
	assert.Equal(t, 1, closes)

	c.OpenFor(trigger)
	c.HandleKey("esc")
	assert.Equal(t, 2, closes)

	c.OpenFor(trigger)
	c.OpenFor(trigger)
	c.Close()
	assert.Equal(t, 3, closes)
}

func TestController_AttachDetach(t *testing.T) {
	doc := NewDocument()
	c, trigger, _ := newFixture()

	c.Attach(doc)
	c.Attach(doc)
	assert.Equal(t, 1, doc.Len(), "re-attaching replaces the registration")

	c.OpenFor(trigger)
	doc.DispatchPointerDown(79, 23)
	assert.False(t, c.IsOpen())

	c.Detach()
	c.Detach()
	assert.Equal(t, 0, doc.Len())
	assert.False(t, c.Attached())

	c.OpenFor(trigger)
	doc.DispatchPointerDown(79, 23)
	assert.True(t, c.IsOpen(), "detached controller ignores document presses")
}

func TestController_AttachNilDocument(t *testing.T) {
	c := NewController(nil)
	c.Attach(nil)
	assert.False(t, c.Attached())
}

func TestController_SiblingPopupsCloseIndependently(t *testing.T) {
	doc := NewDocument()

	aTrigger := &Box{}
	aTrigger.Set(Rect{X: 0, Y: 0, Width: 5, Height: 1})
	bTrigger := &Box{}
	bTrigger.Set(Rect{X: 40, Y: 0, Width: 5, Height: 1})

	a := NewController(aTrigger)
	b := NewController(bTrigger)
	a.Attach(doc)
	b.Attach(doc)
	a.OpenFor(aTrigger)
	b.OpenFor(bTrigger)

	doc.DispatchPointerDown(41, 0)

	assert.False(t, a.IsOpen())
	assert.True(t, b.IsOpen())
}
