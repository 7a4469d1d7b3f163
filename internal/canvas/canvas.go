// Package canvas owns the placed elements of a diagram and routes pointer,
// keyboard and menu input to them or to the drawing controller.
package canvas

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/shape"
)

var ErrUnknownElement = errors.New("unknown element")

// Element is anything placed on the canvas: a shape item or a freehand path.
type Element interface {
	ID() string
	Name() string
	SceneBounds() geom.Rect
	Contains(p r2.Vec) bool
	SetOwner(o shape.Owner)
	SetSelected(v bool)
	Selected() bool
	Delete()
}

var (
	_ Element = (*shape.Item)(nil)
	_ Element = (*shape.Path)(nil)
)

// Canvas is the single owner of its elements. Elements are kept back to
// front; the last one is drawn on top and wins hit tests.
type Canvas struct {
	id       string
	elements []Element
	selected Element
	fill     color.RGBA

	// drawing controller
	mode    DrawMode
	start   r2.Vec
	preview *Preview

	// default item gesture when no resize is in progress
	active shape.PointerHandler
	moving *shape.Item
	last   r2.Vec

	redraws int

	onInvalidate        func(id string)
	onDeletionRequested func(el Element)
	onResizeRequested   func(el Element)
}

// New creates an empty canvas whose new shapes use fill.
func New(fill color.RGBA) *Canvas {
	return &Canvas{
		id:   uuid.New().String(),
		fill: fill,
	}
}

// ID identifies this canvas session.
func (c *Canvas) ID() string { return c.id }

// OnInvalidate registers a callback for redraw requests.
func (c *Canvas) OnInvalidate(fn func(id string)) { c.onInvalidate = fn }

// OnDeletionRequested registers the host handler for the canvas menu's
// Delete command.
func (c *Canvas) OnDeletionRequested(fn func(el Element)) { c.onDeletionRequested = fn }

// OnResizeRequested registers the host handler for the canvas menu's Resize
// command.
func (c *Canvas) OnResizeRequested(fn func(el Element)) { c.onResizeRequested = fn }

// Redraws counts redraw requests since creation.
func (c *Canvas) Redraws() int { return c.redraws }

// Elements returns the elements back to front.
func (c *Canvas) Elements() []Element { return slices.Clone(c.elements) }

// Element looks up an element by id.
func (c *Canvas) Element(id string) (Element, error) {
	for _, el := range c.elements {
		if el.ID() == id {
			return el, nil
		}
	}
	return nil, ErrUnknownElement
}

// FillColor is the color used for newly committed shapes.
func (c *Canvas) FillColor() color.RGBA { return c.fill }

// SetFillColor changes the color for new shapes and recolors the selected
// item, if any.
func (c *Canvas) SetFillColor(col color.RGBA) {
	c.fill = col
	if it, ok := c.selected.(*shape.Item); ok {
		it.SetFillColor(col)
		return
	}
	if c.preview != nil {
		c.Invalidate("")
	}
}

// Add places el on top of the stack.
func (c *Canvas) Add(el Element) {
	el.SetOwner(c)
	c.elements = append(c.elements, el)
	c.Invalidate(el.ID())
	slog.Info("element added", "canvas", c.id, "id", el.ID(), "name", el.Name())
}

// AddShape places a vector item of kind in a size x size box at pos.
func (c *Canvas) AddShape(name string, kind shape.Kind, pos r2.Vec, size float64) *shape.Item {
	it := shape.NewShape(name, kind, c.fill, geom.Rect{X: pos.X, Y: pos.Y, Width: size, Height: size})
	c.Add(it)
	return it
}

// AddImage places an image item fitted into a size x size box at pos.
func (c *Canvas) AddImage(name string, src image.Image, pos r2.Vec, size float64) *shape.Item {
	it := shape.NewImage(name, src, c.fill, geom.Rect{X: pos.X, Y: pos.Y, Width: size, Height: size})
	c.Add(it)
	return it
}

// Detach implements shape.Owner.
func (c *Canvas) Detach(id string) {
	i := slices.IndexFunc(c.elements, func(el Element) bool { return el.ID() == id })
	if i < 0 {
		return
	}
	el := c.elements[i]
	c.elements = slices.Delete(c.elements, i, i+1)
	if c.selected == el {
		c.selected = nil
	}
	if h, ok := el.(shape.PointerHandler); ok && c.active == h {
		c.active = nil
	}
	if it, ok := el.(*shape.Item); ok && c.moving == it {
		c.moving = nil
	}
	c.Invalidate(id)
	slog.Info("element removed", "canvas", c.id, "id", id)
}

// Invalidate implements shape.Owner.
func (c *Canvas) Invalidate(id string) {
	c.redraws++
	if c.onInvalidate != nil {
		c.onInvalidate(id)
	}
}

// ElementAt returns the topmost element containing the scene point.
func (c *Canvas) ElementAt(p r2.Vec) Element {
	for i := len(c.elements) - 1; i >= 0; i-- {
		if c.elements[i].Contains(p) {
			return c.elements[i]
		}
	}
	return nil
}

// Selected returns the focused element, or nil.
func (c *Canvas) Selected() Element { return c.selected }

// Select focuses el, or clears the selection when el is nil.
func (c *Canvas) Select(el Element) {
	if c.selected == el {
		return
	}
	if c.selected != nil {
		c.selected.SetSelected(false)
	}
	c.selected = el
	if el != nil {
		el.SetSelected(true)
	}
}

// DeleteSelected deletes the focused element. It reports whether anything
// was deleted.
func (c *Canvas) DeleteSelected() bool {
	if c.selected == nil {
		return false
	}
	c.selected.Delete()
	return true
}

// Cursor is the pointer shape the host should show.
func (c *Canvas) Cursor() shape.Cursor {
	if it, ok := c.active.(*shape.Item); ok {
		return it.Cursor()
	}
	return shape.CursorArrow
}
