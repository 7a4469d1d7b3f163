package shape

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/typeid"
)

// MinSize is the smallest width or height a resize may produce.
const MinSize = 20

// Item is a placed shape or image on a canvas.
//
// Geometry is held in scene units: pos is the top-left of the untransformed
// box, and rotation is applied about the center of the current box.
type Item struct {
	id   string
	name string
	kind Kind

	pos      r2.Vec
	width    float64
	height   float64
	rotation float64

	fill     color.RGBA
	original image.Image // KindImage only, never modified
	raster   *image.RGBA

	gesture  gesture
	cursor   Cursor
	selected bool

	owner   Owner
	deleted bool
}

// Owner is the container an item is placed in. The canvas implements it.
type Owner interface {
	// Detach removes the element from the container without releasing it.
	Detach(id string)
	// Invalidate requests a redraw of the element.
	Invalidate(id string)
}

// NewShape creates a vector item of kind filling bounds. No minimum size is
// enforced here; shapes committed from a drag may be degenerate.
func NewShape(name string, kind Kind, fill color.RGBA, bounds geom.Rect) *Item {
	it := &Item{
		id:     typeid.NewItemID(),
		name:   name,
		kind:   kind,
		pos:    bounds.Min(),
		width:  bounds.Width,
		height: bounds.Height,
		fill:   fill,
	}
	it.raster = Render(kind, it.width, it.height, it.fill, nil)
	return it
}

// NewImage creates an image-backed item whose raster is src fitted into box.
func NewImage(name string, src image.Image, fill color.RGBA, box geom.Rect) *Item {
	it := &Item{
		id:       typeid.NewItemID(),
		name:     name,
		kind:     KindImage,
		pos:      box.Min(),
		width:    box.Width,
		height:   box.Height,
		fill:     fill,
		original: src,
	}
	it.raster = Render(KindImage, it.width, it.height, it.fill, it.original)
	return it
}

func (it *Item) ID() string            { return it.id }
func (it *Item) Name() string          { return it.name }
func (it *Item) Kind() Kind            { return it.kind }
func (it *Item) Pos() r2.Vec           { return it.pos }
func (it *Item) Width() float64        { return it.width }
func (it *Item) Height() float64       { return it.height }
func (it *Item) Rotation() float64     { return it.rotation }
func (it *Item) FillColor() color.RGBA { return it.fill }
func (it *Item) Selected() bool        { return it.selected }
func (it *Item) Cursor() Cursor        { return it.cursor }

// Raster returns the current rendered representation. Callers must not modify it.
func (it *Item) Raster() *image.RGBA { return it.raster }

// Original returns the source image of an image item, nil otherwise.
func (it *Item) Original() image.Image { return it.original }

// SetOwner attaches the item to a container. A nil owner detaches it.
func (it *Item) SetOwner(o Owner) { it.owner = o }

// SetSelected is driven by the owning canvas's selection model.
func (it *Item) SetSelected(v bool) {
	if it.selected != v {
		it.selected = v
		it.update()
	}
}

// LocalRect is the untransformed box in item coordinates.
func (it *Item) LocalRect() geom.Rect {
	return geom.Rect{Width: it.width, Height: it.height}
}

// Origin is the rotation pivot in item coordinates: the center of the
// current box.
func (it *Item) Origin() r2.Vec {
	return it.LocalRect().Center()
}

// Transform maps item coordinates to scene coordinates.
func (it *Item) Transform() geom.Matrix2D {
	o := it.Origin()
	return geom.FromTransform(it.pos.X+o.X, it.pos.Y+o.Y, it.rotation, o.X, o.Y)
}

// RasterTransform maps raster pixels to scene coordinates. It differs from
// Transform only when the raster was rendered at reduced resolution.
func (it *Item) RasterTransform() geom.Matrix2D {
	k := RasterScale(it.width, it.height)
	if k == 1 {
		return it.Transform()
	}
	return it.Transform().Multiply(geom.Scale(1/k, 1/k))
}

// MapFromScene converts a scene point into item coordinates.
func (it *Item) MapFromScene(p r2.Vec) r2.Vec {
	return it.Transform().Invert().Apply(p)
}

// SceneBounds is the axis-aligned scene box of the transformed item.
func (it *Item) SceneBounds() geom.Rect {
	return it.Transform().TransformRect(it.LocalRect())
}

// Contains reports whether the scene point lies on the item's box.
func (it *Item) Contains(p r2.Vec) bool {
	return it.LocalRect().Contains(it.MapFromScene(p))
}

// MoveBy translates the item in scene units.
func (it *Item) MoveBy(d r2.Vec) {
	it.pos = r2.Add(it.pos, d)
	it.update()
}

// ResizeTo regenerates the item at width x height. Requests below MinSize on
// either axis, or not finite, are ignored and report false.
func (it *Item) ResizeTo(width, height float64) bool {
	if !(width >= MinSize && height >= MinSize) || math.IsInf(width, 1) || math.IsInf(height, 1) {
		slog.Debug("resize rejected", "item", it.id, "width", width, "height", height)
		return false
	}
	it.width = width
	it.height = height
	it.raster = Render(it.kind, width, height, it.fill, it.original)
	it.update()
	return true
}

// ScaleBy resizes proportionally by factor, under the same minimum as ResizeTo.
func (it *Item) ScaleBy(factor float64) bool {
	return it.ResizeTo(it.width*factor, it.height*factor)
}

// RotateBy adds delta degrees to the current rotation.
func (it *Item) RotateBy(delta float64) {
	it.SetRotation(it.rotation + delta)
}

// SetRotation sets the absolute rotation, wrapped into [0, 360).
func (it *Item) SetRotation(degrees float64) {
	r := math.Mod(degrees, 360)
	if r < 0 {
		r += 360
	}
	it.rotation = r
	it.update()
}

// SetFillColor stores the fill. Vector items are re-rendered with it; image
// items keep rendering from their source image.
func (it *Item) SetFillColor(c color.RGBA) {
	it.fill = c
	if it.kind != KindImage {
		it.raster = Render(it.kind, it.width, it.height, it.fill, nil)
	}
	it.update()
}

// Delete removes the item from its owner and releases its images. The item
// must not be used afterwards.
func (it *Item) Delete() {
	if it.owner != nil {
		it.owner.Detach(it.id)
		it.owner = nil
	}
	it.raster = nil
	it.original = nil
	it.gesture = nil
	it.deleted = true
	slog.Debug("item deleted", "item", it.id, "name", it.name)
}

// Deleted reports whether Delete has run.
func (it *Item) Deleted() bool { return it.deleted }

func (it *Item) update() {
	if it.owner != nil {
		it.owner.Invalidate(it.id)
	}
}
