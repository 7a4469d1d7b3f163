package canvas

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inamate/sketchpad/internal/shape"
)

// Press routes a pointer press. While a draw mode is armed the press starts
// a new shape; otherwise the topmost element gets the first chance to claim
// it (an item's resize handle), and unclaimed presses select and begin a move.
func (c *Canvas) Press(ev shape.PointerEvent) {
	if c.mode != DrawIdle {
		if ev.Button == shape.ButtonLeft {
			c.beginDrawing(ev.Scene)
		}
		return
	}

	el := c.ElementAt(ev.Scene)
	if h, ok := el.(shape.PointerHandler); ok && h.Press(ev) {
		c.active = h
		return
	}
	if ev.Button != shape.ButtonLeft {
		return
	}

	c.Select(el)
	if it, ok := el.(*shape.Item); ok {
		c.moving = it
		c.last = ev.Scene
	}
}

// Move routes a pointer move to the drawing preview, the active resize, or
// the item being dragged.
func (c *Canvas) Move(ev shape.PointerEvent) {
	switch {
	case c.preview != nil:
		c.updateDrawing(ev.Scene)
	case c.active != nil:
		c.active.Move(ev)
	case c.moving != nil:
		c.moving.MoveBy(r2.Sub(ev.Scene, c.last))
		c.last = ev.Scene
	}
}

// Release ends whichever gesture is in progress. Finishing a drawing returns
// the committed element, if any.
func (c *Canvas) Release(ev shape.PointerEvent) Element {
	if c.preview != nil {
		return c.finishDrawing()
	}
	if c.active != nil {
		c.active.Release(ev)
		c.active = nil
	}
	c.moving = nil
	return nil
}

// KeyPress forwards a key to the selected item.
func (c *Canvas) KeyPress(ev shape.KeyEvent) bool {
	it, ok := c.selected.(*shape.Item)
	if !ok {
		return false
	}
	return it.KeyPress(ev)
}
