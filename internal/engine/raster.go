package engine

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/shape"
)

// Raster composites the canvas back to front onto a width x height image
// filled with background. Items are resampled through their world transform.
func (e *Engine) Raster(width, height int, background color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	if e.canvas == nil {
		return dst
	}

	selection := color.RGBA{R: 0x1e, G: 0x90, B: 0xff, A: 0xff}
	for _, el := range e.canvas.Elements() {
		switch v := el.(type) {
		case *shape.Item:
			src := v.Raster()
			if src == nil || src.Bounds().Empty() {
				continue
			}
			draw.CatmullRom.Transform(dst, aff3(v.RasterTransform()), src, src.Bounds(), draw.Over, nil)
			if v.Selected() {
				m := v.Transform()
				shape.StrokePolyline(dst, corners(m, v.LocalRect()), selectionWidth, true, selection)
			}
		case *shape.Path:
			src := v.Raster()
			if src.Bounds().Empty() {
				continue
			}
			b := v.SceneBounds()
			draw.CatmullRom.Transform(dst, aff3(v.RasterTransform()), src, src.Bounds(), draw.Over, nil)
			if v.Selected() {
				shape.StrokePolyline(dst, corners(geom.Identity(), b), selectionWidth, true, selection)
			}
		}
	}

	if pv := e.canvas.Preview(); pv != nil {
		pts, closed := pv.Outline()
		shape.StrokePolyline(dst, pts, previewWidth, closed, e.canvas.FillColor())
	}
	return dst
}

// aff3 converts a canvas matrix to the row-major form used by x/image/draw.
func aff3(m geom.Matrix2D) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

func corners(m geom.Matrix2D, r geom.Rect) []r2.Vec {
	return []r2.Vec{
		m.Apply(r2.Vec{X: r.X, Y: r.Y}),
		m.Apply(r2.Vec{X: r.X + r.Width, Y: r.Y}),
		m.Apply(r2.Vec{X: r.X + r.Width, Y: r.Y + r.Height}),
		m.Apply(r2.Vec{X: r.X, Y: r.Y + r.Height}),
	}
}
