package shape

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inamate/sketchpad/internal/geom"
)

// Bezier constant for approximating a quarter ellipse: 4 * (sqrt(2) - 1) / 3.
const kappa = 0.5522847498

// MaxRasterSize bounds a raster's width and height in pixels. Larger boxes
// are rendered at a reduced resolution and scaled up by their raster
// transform.
const MaxRasterSize = 2048

// RasterScale is the pixels-per-unit factor used to render a width x height
// box: 1 unless that would exceed MaxRasterSize on either axis.
func RasterScale(width, height float64) float64 {
	k := 1.0
	if width > MaxRasterSize {
		k = MaxRasterSize / width
	}
	if height*k > MaxRasterSize {
		k = MaxRasterSize / height
	}
	return k
}

// Render produces the raster for an item of the given kind at width x height,
// downsampled by RasterScale. Vector kinds fill their outline with fill;
// KindImage rescales src to fit the box while keeping the source aspect
// ratio, so the result may be smaller than the box on one axis.
func Render(kind Kind, width, height float64, fill color.Color, src image.Image) *image.RGBA {
	k := RasterScale(width, height)
	width, height = width*k, height*k
	if kind == KindImage {
		return fitImage(src, width, height)
	}

	w, h := int(width), int(height)
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	if w <= 0 || h <= 0 {
		return dst
	}

	z := vector.NewRasterizer(w, h)
	fw, fh := float32(width), float32(height)
	switch kind {
	case KindRectangle:
		z.MoveTo(0, 0)
		z.LineTo(fw, 0)
		z.LineTo(fw, fh)
		z.LineTo(0, fh)
		z.ClosePath()
	case KindCircle:
		ellipse(z, fw/2, fh/2, fw/2, fh/2)
	case KindTriangle:
		tri := TrianglePoints(geom.Rect{Width: width, Height: height})
		z.MoveTo(float32(tri[0].X), float32(tri[0].Y))
		z.LineTo(float32(tri[1].X), float32(tri[1].Y))
		z.LineTo(float32(tri[2].X), float32(tri[2].Y))
		z.ClosePath()
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{})
	return dst
}

// ellipse adds an ellipse centered at (cx, cy) as four cubic segments.
func ellipse(z *vector.Rasterizer, cx, cy, rx, ry float32) {
	kx, ky := rx*kappa, ry*kappa
	z.MoveTo(cx+rx, cy)
	z.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	z.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	z.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	z.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	z.ClosePath()
}

// fitImage scales src into the largest rect of its own aspect ratio that fits
// in width x height.
func fitImage(src image.Image, width, height float64) *image.RGBA {
	if src == nil || src.Bounds().Empty() {
		return image.NewRGBA(image.Rectangle{})
	}
	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	scale := math.Min(width/sw, height/sh)
	w := int(math.Round(sw * scale))
	h := int(math.Round(sh * scale))
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	if w <= 0 || h <= 0 {
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	return dst
}

// TrianglePoints returns the isosceles triangle inscribed in r: apex at
// top-center, base along the bottom edge.
func TrianglePoints(r geom.Rect) []r2.Vec {
	return []r2.Vec{
		{X: r.X + r.Width/2, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}

// EllipsePoints samples the ellipse inscribed in r as a closed polygon.
func EllipsePoints(r geom.Rect, segments int) []r2.Vec {
	c := r.Center()
	pts := make([]r2.Vec, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = r2.Vec{X: c.X + r.Width/2*math.Cos(a), Y: c.Y + r.Height/2*math.Sin(a)}
	}
	return pts
}

// StrokePolyline draws a polyline of the given width onto dst. Points are in
// dst pixel coordinates. Each segment is filled as its own quad with square
// joints.
func StrokePolyline(dst *image.RGBA, pts []r2.Vec, width float64, closed bool, col color.Color) {
	if len(pts) < 2 || dst.Bounds().Empty() {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	half := width / 2
	off := r2.Vec{X: float64(b.Min.X), Y: float64(b.Min.Y)}

	segment := func(a, c r2.Vec) {
		d := r2.Sub(c, a)
		n := r2.Norm(d)
		if n == 0 {
			// degenerate: a dot
			d, n = r2.Vec{X: 1}, 1
			a = r2.Sub(a, r2.Vec{X: half})
			c = r2.Add(c, r2.Vec{X: half})
		}
		u := r2.Scale(half/n, d)
		nrm := r2.Vec{X: -u.Y, Y: u.X}
		a = r2.Sub(r2.Sub(a, u), off)
		c = r2.Sub(r2.Add(c, u), off)
		quad := [4]r2.Vec{r2.Add(a, nrm), r2.Add(c, nrm), r2.Sub(c, nrm), r2.Sub(a, nrm)}
		z.MoveTo(float32(quad[0].X), float32(quad[0].Y))
		for _, q := range quad[1:] {
			z.LineTo(float32(q.X), float32(q.Y))
		}
		z.ClosePath()
	}

	for i := 1; i < len(pts); i++ {
		segment(pts[i-1], pts[i])
	}
	if closed {
		segment(pts[len(pts)-1], pts[0])
	}
	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}
