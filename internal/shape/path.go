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

// PathWidth is the stroke width of committed freehand paths.
const PathWidth = 2

// Path is a committed freehand stroke. Its points are fixed at creation.
type Path struct {
	id     string
	points []r2.Vec
	stroke color.RGBA

	selected bool
	owner    Owner
	deleted  bool
}

// NewPath copies points into a new path.
func NewPath(points []r2.Vec, stroke color.RGBA) *Path {
	return &Path{
		id:     typeid.NewPathID(),
		points: append([]r2.Vec(nil), points...),
		stroke: stroke,
	}
}

func (p *Path) ID() string         { return p.id }
func (p *Path) Name() string       { return "Path" }
func (p *Path) Stroke() color.RGBA { return p.stroke }
func (p *Path) Selected() bool     { return p.selected }
func (p *Path) SetOwner(o Owner)   { p.owner = o }
func (p *Path) Deleted() bool      { return p.deleted }

// Points returns a copy of the path's points in scene coordinates.
func (p *Path) Points() []r2.Vec { return append([]r2.Vec(nil), p.points...) }

func (p *Path) SetSelected(v bool) {
	if p.selected != v {
		p.selected = v
		if p.owner != nil {
			p.owner.Invalidate(p.id)
		}
	}
}

// SceneBounds covers the points plus half the stroke width.
func (p *Path) SceneBounds() geom.Rect {
	return geom.Bounds(p.points).Inset(-PathWidth / 2.0)
}

// Contains reports whether the scene point lies within the stroke hit
// tolerance of any segment.
func (p *Path) Contains(pt r2.Vec) bool {
	const tolerance = PathWidth/2.0 + 2
	for i := 1; i < len(p.points); i++ {
		if segmentDistance(pt, p.points[i-1], p.points[i]) <= tolerance {
			return true
		}
	}
	return false
}

// Raster strokes the path into an image covering SceneBounds, with pixel
// (0, 0) at the bounds' top-left. Bounds larger than MaxRasterSize are
// rendered at reduced resolution; RasterTransform places the result.
func (p *Path) Raster() *image.RGBA {
	b := p.SceneBounds()
	k := RasterScale(b.Width, b.Height)
	w := min(int(math.Ceil(b.Width*k)), MaxRasterSize)
	h := min(int(math.Ceil(b.Height*k)), MaxRasterSize)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	local := make([]r2.Vec, len(p.points))
	for i, pt := range p.points {
		local[i] = r2.Scale(k, r2.Sub(pt, b.Min()))
	}
	StrokePolyline(dst, local, PathWidth*k, false, p.stroke)
	return dst
}

// RasterTransform maps Raster pixels to scene coordinates.
func (p *Path) RasterTransform() geom.Matrix2D {
	b := p.SceneBounds()
	m := geom.Translate(b.X, b.Y)
	if k := RasterScale(b.Width, b.Height); k != 1 {
		m = m.Multiply(geom.Scale(1/k, 1/k))
	}
	return m
}

// Delete removes the path from its owner.
func (p *Path) Delete() {
	if p.owner != nil {
		p.owner.Detach(p.id)
		p.owner = nil
	}
	p.points = nil
	p.deleted = true
	slog.Debug("path deleted", "path", p.id)
}

func segmentDistance(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l2 := r2.Dot(ab, ab)
	if l2 == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	t := math.Max(0, math.Min(1, r2.Dot(r2.Sub(p, a), ab)/l2))
	return r2.Norm(r2.Sub(p, r2.Add(a, r2.Scale(t, ab))))
}
