package engine

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/colorutil"
	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/shape"
)

var ErrNoCanvas = errors.New("no canvas")

// ImageLoader resolves a source image for image items.
type ImageLoader interface {
	Load(path string) (image.Image, error)
}

// Options configures an Engine. Menu and Prompter are the host's modal
// dialogs; they block until the user answers.
type Options struct {
	Fill        color.RGBA
	PaletteSize float64
	Menu        shape.Menu
	Prompter    shape.Prompter
	Images      ImageLoader
}

// Engine owns the canvas and is the single entry point for a host. It
// processes commands from the front end and answers queries.
type Engine struct {
	canvas *canvas.Canvas
	opts   Options

	// Cached draw list, rebuilt when the canvas invalidates.
	commands []DrawCommand
	dirty    bool
}

// NewEngine creates an engine without a canvas. Call NewCanvas before
// sending commands.
func NewEngine(opts Options) *Engine {
	if opts.Fill == (color.RGBA{}) {
		opts.Fill = colorutil.Default
	}
	if opts.PaletteSize <= 0 {
		opts.PaletteSize = 100
	}
	return &Engine{opts: opts, dirty: true}
}

// --- Commands (front end → engine) ---

// NewCanvas replaces the current canvas with an empty one and returns its id.
func (e *Engine) NewCanvas() string {
	c := canvas.New(e.opts.Fill)
	c.OnInvalidate(func(string) { e.dirty = true })
	c.OnDeletionRequested(e.deletionRequested)
	c.OnResizeRequested(e.resizeRequested)
	e.canvas = c
	e.dirty = true
	slog.Info("canvas created", "canvas", c.ID())
	return c.ID()
}

// Canvas exposes the underlying canvas, or nil.
func (e *Engine) Canvas() *canvas.Canvas { return e.canvas }

func (e *Engine) deletionRequested(el canvas.Element) {
	slog.Info("delete requested", "canvas", e.canvas.ID(), "id", el.ID())
	el.Delete()
}

func (e *Engine) resizeRequested(el canvas.Element) {
	it, ok := el.(*shape.Item)
	if !ok || e.opts.Prompter == nil {
		slog.Debug("resize request ignored", "id", el.ID())
		return
	}
	it.ManualResize(e.opts.Prompter)
}

// EnableDrawing arms the canvas for one shape of the named mode.
func (e *Engine) EnableDrawing(mode string) error {
	if e.canvas == nil {
		return ErrNoCanvas
	}
	m, err := canvas.ParseDrawMode(mode)
	if err != nil {
		return fmt.Errorf("enable drawing: %w", err)
	}
	e.canvas.EnableDrawing(m)
	return nil
}

// SetFillColor sets the color for new shapes and recolors the selection.
func (e *Engine) SetFillColor(hex string) error {
	if e.canvas == nil {
		return ErrNoCanvas
	}
	col, err := colorutil.ParseHex(hex)
	if err != nil {
		return fmt.Errorf("set fill color: %w", err)
	}
	e.canvas.SetFillColor(col)
	return nil
}

// AddItem places a vector item of the named kind with its top-left at (x, y)
// and returns its id.
func (e *Engine) AddItem(name, kind string, x, y float64) (string, error) {
	if e.canvas == nil {
		return "", ErrNoCanvas
	}
	k, err := shape.ParseKind(kind)
	if err != nil {
		return "", fmt.Errorf("add item: %w", err)
	}
	if k == shape.KindImage {
		return "", fmt.Errorf("add item %q: image items are added with AddImage", name)
	}
	it := e.canvas.AddShape(name, k, r2.Vec{X: x, Y: y}, e.opts.PaletteSize)
	return it.ID(), nil
}

// AddImage loads the image at path and places it fitted into the palette box
// with its top-left at (x, y).
func (e *Engine) AddImage(name, path string, x, y float64) (string, error) {
	if e.canvas == nil {
		return "", ErrNoCanvas
	}
	if e.opts.Images == nil {
		return "", fmt.Errorf("add image %q: no image loader", name)
	}
	src, err := e.opts.Images.Load(path)
	if err != nil {
		return "", fmt.Errorf("add image %q: %w", name, err)
	}
	it := e.canvas.AddImage(name, src, r2.Vec{X: x, Y: y}, e.opts.PaletteSize)
	return it.ID(), nil
}

// DeleteSelected deletes the selected element and reports whether there was one.
func (e *Engine) DeleteSelected() bool {
	if e.canvas == nil {
		return false
	}
	return e.canvas.DeleteSelected()
}

// Select focuses the element with id. An empty id clears the selection.
func (e *Engine) Select(id string) error {
	if e.canvas == nil {
		return ErrNoCanvas
	}
	if id == "" {
		e.canvas.Select(nil)
		return nil
	}
	el, err := e.canvas.Element(id)
	if err != nil {
		return fmt.Errorf("select %q: %w", id, err)
	}
	e.canvas.Select(el)
	return nil
}

func (e *Engine) PointerPress(x, y float64, button shape.Button) {
	if e.canvas != nil {
		e.canvas.Press(pointer(x, y, button))
	}
}

func (e *Engine) PointerMove(x, y float64, button shape.Button) {
	if e.canvas != nil {
		e.canvas.Move(pointer(x, y, button))
	}
}

// PointerRelease ends the current gesture. It returns the id of a shape or
// path committed by the release, or "".
func (e *Engine) PointerRelease(x, y float64, button shape.Button) string {
	if e.canvas == nil {
		return ""
	}
	el := e.canvas.Release(pointer(x, y, button))
	if el == nil {
		return ""
	}
	return el.ID()
}

func pointer(x, y float64, button shape.Button) shape.PointerEvent {
	return shape.PointerEvent{Scene: r2.Vec{X: x, Y: y}, Button: button}
}

// Key forwards a key chord to the selected item.
func (e *Engine) Key(key rune, mods shape.Modifier) bool {
	if e.canvas == nil {
		return false
	}
	return e.canvas.KeyPress(shape.KeyEvent{Key: key, Mods: mods})
}

// ContextMenu opens the menu for whatever is under (x, y): the item menu for
// items, the canvas menu for paths. Nothing under the pointer shows nothing.
// The returned action is ActionNone unless an item menu action ran.
func (e *Engine) ContextMenu(x, y float64) shape.Action {
	if e.canvas == nil || e.opts.Menu == nil {
		return shape.ActionNone
	}
	at := r2.Vec{X: x, Y: y}
	switch e.canvas.ElementAt(at).(type) {
	case *shape.Item:
		return e.canvas.ItemContextMenu(at, e.opts.Menu, e.opts.Prompter)
	case *shape.Path:
		e.canvas.ContextMenu(at, e.opts.Menu)
	}
	return shape.ActionNone
}

// CanvasContextMenu always opens the canvas menu (Delete / Resize) for the
// element under (x, y).
func (e *Engine) CanvasContextMenu(x, y float64) {
	if e.canvas == nil || e.opts.Menu == nil {
		return
	}
	e.canvas.ContextMenu(r2.Vec{X: x, Y: y}, e.opts.Menu)
}

// --- Queries (front end ← engine) ---

// Render returns the draw commands for the current canvas in painter's order.
// The slice is a copy; callers may modify it.
func (e *Engine) Render() []DrawCommand {
	if e.canvas == nil {
		return nil
	}
	if e.dirty {
		e.commands = CompileDrawCommands(e.canvas)
		e.dirty = false
	}
	return slices.Clone(e.commands)
}

// RenderJSON is Render serialized for the browser bridge.
func (e *Engine) RenderJSON() string {
	result, _ := DrawCommandsToJSON(e.Render())
	return result
}

// HitTest returns the id of the topmost element at (x, y), or "".
func (e *Engine) HitTest(x, y float64) string {
	if e.canvas == nil {
		return ""
	}
	el := e.canvas.ElementAt(r2.Vec{X: x, Y: y})
	if el == nil {
		return ""
	}
	return el.ID()
}

// Snapshot records the committed elements.
func (e *Engine) Snapshot() (*document.Document, error) {
	if e.canvas == nil {
		return nil, ErrNoCanvas
	}
	return e.canvas.Snapshot(), nil
}

// Selection returns the selected element's id, or "".
func (e *Engine) Selection() string {
	if e.canvas == nil || e.canvas.Selected() == nil {
		return ""
	}
	return e.canvas.Selected().ID()
}

// SelectionBounds is the scene bounding box of the selection.
func (e *Engine) SelectionBounds() geom.Rect {
	if e.canvas == nil || e.canvas.Selected() == nil {
		return geom.Rect{}
	}
	return e.canvas.Selected().SceneBounds()
}

// Cursor is the pointer shape the host should display.
func (e *Engine) Cursor() string {
	if e.canvas == nil {
		return shape.CursorArrow.String()
	}
	return e.canvas.Cursor().String()
}

// DrawMode names the armed draw mode, "idle" when none.
func (e *Engine) DrawMode() string {
	if e.canvas == nil {
		return canvas.DrawIdle.String()
	}
	return e.canvas.DrawMode().String()
}

// ItemPixels returns the current raster of the item with id, for hosts that
// draw "image" commands themselves.
func (e *Engine) ItemPixels(id string) (*image.RGBA, error) {
	if e.canvas == nil {
		return nil, ErrNoCanvas
	}
	el, err := e.canvas.Element(id)
	if err != nil {
		return nil, fmt.Errorf("item pixels %q: %w", id, err)
	}
	switch v := el.(type) {
	case *shape.Item:
		return v.Raster(), nil
	case *shape.Path:
		return v.Raster(), nil
	}
	return nil, fmt.Errorf("item pixels %q: %w", id, canvas.ErrUnknownElement)
}
