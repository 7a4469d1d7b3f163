package canvas

import (
	"fmt"
	"log/slog"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/shape"
)

// DrawMode selects what the next drag on the canvas constructs.
type DrawMode int

const (
	DrawIdle DrawMode = iota
	DrawRectangle
	DrawCircle
	DrawTriangle
	DrawFreehand
)

func (m DrawMode) String() string {
	switch m {
	case DrawIdle:
		return "idle"
	case DrawRectangle:
		return "rectangle"
	case DrawCircle:
		return "circle"
	case DrawTriangle:
		return "triangle"
	case DrawFreehand:
		return "freehand"
	default:
		return fmt.Sprintf("DrawMode(%d)", int(m))
	}
}

// ParseDrawMode accepts the names produced by String.
func ParseDrawMode(s string) (DrawMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "idle", "":
		return DrawIdle, nil
	case "rectangle", "rect":
		return DrawRectangle, nil
	case "circle", "ellipse":
		return DrawCircle, nil
	case "triangle":
		return DrawTriangle, nil
	case "freehand", "path":
		return DrawFreehand, nil
	}
	return DrawIdle, fmt.Errorf("unknown draw mode %q", s)
}

// shapeKind maps the closed shape modes to item kinds.
func (m DrawMode) shapeKind() (shape.Kind, bool) {
	switch m {
	case DrawRectangle:
		return shape.KindRectangle, true
	case DrawCircle:
		return shape.KindCircle, true
	case DrawTriangle:
		return shape.KindTriangle, true
	}
	return 0, false
}

// Preview is the live primitive shown while a drawing drag is in progress.
// Bounds is used by rectangle and circle, Polygon by triangle, Points by
// freehand.
type Preview struct {
	Mode    DrawMode
	Bounds  geom.Rect
	Polygon []r2.Vec
	Points  []r2.Vec
}

// Outline returns the preview as a polyline in scene coordinates and whether
// it is closed.
func (p *Preview) Outline() ([]r2.Vec, bool) {
	switch p.Mode {
	case DrawRectangle:
		b := p.Bounds
		return []r2.Vec{
			{X: b.X, Y: b.Y},
			{X: b.X + b.Width, Y: b.Y},
			{X: b.X + b.Width, Y: b.Y + b.Height},
			{X: b.X, Y: b.Y + b.Height},
		}, true
	case DrawCircle:
		return shape.EllipsePoints(p.Bounds, 64), true
	case DrawTriangle:
		return p.Polygon, true
	default:
		return p.Points, false
	}
}

// DrawMode returns the current drawing state.
func (c *Canvas) DrawMode() DrawMode { return c.mode }

// Preview returns the in-progress primitive, or nil.
func (c *Canvas) Preview() *Preview { return c.preview }

// EnableDrawing arms the canvas to construct one shape of mode. Any
// in-progress preview is discarded.
func (c *Canvas) EnableDrawing(mode DrawMode) {
	if c.preview != nil {
		c.preview = nil
		c.Invalidate("")
	}
	c.mode = mode
	slog.Debug("draw mode", "canvas", c.id, "mode", mode.String())
}

func (c *Canvas) beginDrawing(p r2.Vec) {
	c.start = p
	c.preview = &Preview{Mode: c.mode}
	switch c.mode {
	case DrawRectangle, DrawCircle:
		c.preview.Bounds = geom.Rect{X: p.X, Y: p.Y}
	case DrawTriangle:
		c.preview.Bounds = geom.Rect{X: p.X, Y: p.Y}
		c.preview.Polygon = shape.TrianglePoints(c.preview.Bounds)
	case DrawFreehand:
		c.preview.Points = []r2.Vec{p}
	}
	c.Invalidate("")
}

func (c *Canvas) updateDrawing(p r2.Vec) {
	switch c.mode {
	case DrawRectangle, DrawCircle:
		c.preview.Bounds = geom.RectFromPoints(c.start, p)
	case DrawTriangle:
		c.preview.Bounds = geom.RectFromPoints(c.start, p)
		c.preview.Polygon = shape.TrianglePoints(c.preview.Bounds)
	case DrawFreehand:
		c.preview.Points = append(c.preview.Points, p)
	}
	c.Invalidate("")
}

// finishDrawing commits the preview and disarms the canvas.
func (c *Canvas) finishDrawing() Element {
	pv := c.preview
	c.preview = nil
	c.mode = DrawIdle

	var el Element
	if kind, ok := pv.Mode.shapeKind(); ok {
		el = shape.NewShape(kind.String(), kind, c.fill, pv.Bounds)
	} else if len(pv.Points) >= 2 {
		el = shape.NewPath(pv.Points, c.fill)
	}

	if el == nil {
		slog.Debug("freehand path discarded", "canvas", c.id, "points", len(pv.Points))
		c.Invalidate("")
		return nil
	}
	c.Add(el)
	return el
}
