package canvas

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inamate/sketchpad/internal/shape"
)

// Canvas menu labels.
const (
	LabelDelete = "Delete"
	LabelResize = "Resize"
)

// ContextMenu shows the scene menu for the element under at. Picking an entry
// notifies the registered handler; nothing is executed here. With no element
// under the pointer no menu is shown.
func (c *Canvas) ContextMenu(at r2.Vec, menu shape.Menu) {
	el := c.ElementAt(at)
	if el == nil {
		return
	}
	choice, ok := menu.Exec(at, []string{LabelDelete, LabelResize})
	if !ok {
		return
	}
	slog.Debug("canvas menu", "canvas", c.id, "id", el.ID(), "choice", choice)
	switch choice {
	case LabelDelete:
		if c.onDeletionRequested != nil {
			c.onDeletionRequested(el)
		}
	case LabelResize:
		if c.onResizeRequested != nil {
			c.onResizeRequested(el)
		}
	}
}

// ItemContextMenu shows the item menu for the item under at. It returns
// ActionNone when there is no item there or the menu was dismissed.
func (c *Canvas) ItemContextMenu(at r2.Vec, menu shape.Menu, prompt shape.Prompter) shape.Action {
	it, ok := c.ElementAt(at).(*shape.Item)
	if !ok {
		return shape.ActionNone
	}
	return it.ContextMenu(at, menu, prompt)
}
