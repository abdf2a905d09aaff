package overlay

// Controller owns the open/closed state of one popup.
type Controller struct {
	root    Region
	open    bool
	trigger Element
	anchor  Anchor
	release func()
	onClose func()
}

// NewController creates a closed controller for the widget whose root
// region is root. Presses inside root never close the popup.
func NewController(root Region) *Controller {
	return &Controller{root: root}
}

// OpenFor toggles the popup for trigger. An open popup closes without
// recomputing its anchor; a closed one opens anchored to trigger's
// current box.
func (c *Controller) OpenFor(trigger Element) {
	if c.open {
		c.Close()
		return
	}
	c.Show(trigger)
}

// Show opens the popup anchored to trigger. When already open it only
// re-anchors.
func (c *Controller) Show(trigger Element) {
	c.trigger = trigger
	if trigger == nil {
		c.anchor = AnchorFor(Rect{}, false)
	} else {
		c.anchor = AnchorFor(trigger.Bounds())
	}
	c.open = true
}

// OnClose sets fn to run whenever an open popup closes, whichever path
// closed it.
func (c *Controller) OnClose(fn func()) {
	c.onClose = fn
}

// Close closes the popup. It is idempotent; the close hook only runs on
// the open to closed transition.
func (c *Controller) Close() {
	if !c.open {
		return
	}
	c.open = false
	if c.onClose != nil {
		c.onClose()
	}
}

// HandlePointerDown closes the popup when (x, y) lies outside the root.
func (c *Controller) HandlePointerDown(x, y int) {
	if !c.open {
		return
	}
	if c.root != nil && c.root.Contains(x, y) {
		return
	}
	c.Close()
}

// HandleKey closes the popup on esc. It reports whether the key was
// consumed.
func (c *Controller) HandleKey(key string) bool {
	if key != "esc" || !c.open {
		return false
	}
	c.Close()
	return true
}

// Attach registers the controller with doc. Attaching again first
// releases the previous registration.
func (c *Controller) Attach(doc *Document) {
	c.Detach()
	if doc == nil {
		return
	}
	c.release = doc.Listen(c.HandlePointerDown)
}

// Detach releases the document registration. It is safe to call without
// a prior Attach and more than once.
func (c *Controller) Detach() {
	if c.release == nil {
		return
	}
	c.release()
	c.release = nil
}

// Attached reports whether the controller is registered with a document.
func (c *Controller) Attached() bool {
	return c.release != nil
}

// IsOpen reports whether the popup is visible.
func (c *Controller) IsOpen() bool {
	return c.open
}

// Anchor returns the anchor computed on the last open. It is only
// meaningful while the popup is open.
func (c *Controller) Anchor() Anchor {
	return c.anchor
}

// Trigger returns the element the popup was last opened for.
func (c *Controller) Trigger() Element {
	return c.trigger
}
