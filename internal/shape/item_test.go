package shape_test

import (
	"image/color"
	"math"
	"testing"

	"github.com/inamate/sketchpad/internal/colorutil"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/shape"
)

func newRect(w, h float64) *shape.Item {
	return shape.NewShape("Rectangle", shape.KindRectangle, colorutil.Default, geom.Rect{Width: w, Height: h})
}

func TestResizeBelowMinimumIsIgnored(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		ok   bool
	}{
		{"both valid", 50, 60, true},
		{"exactly minimum", 20, 20, true},
		{"width too small", 19.9, 60, false},
		{"height too small", 50, 5, false},
		{"negative", -10, -10, false},
		{"NaN width", math.NaN(), 60, false},
		{"infinite height", 50, math.Inf(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := newRect(100, 100)
			if got := it.ResizeTo(tt.w, tt.h); got != tt.ok {
				t.Fatalf("ResizeTo = %v, want %v", got, tt.ok)
			}
			wantW, wantH := 100.0, 100.0
			if tt.ok {
				wantW, wantH = tt.w, tt.h
			}
			if it.Width() != wantW || it.Height() != wantH {
				t.Fatalf("size = %vx%v, want %vx%v", it.Width(), it.Height(), wantW, wantH)
			}
			if r := it.Raster().Bounds(); r.Dx() != int(wantW) || r.Dy() != int(wantH) {
				t.Fatalf("raster %v does not match size", r)
			}
		})
	}
}

func TestResizeToHugeBoxCapsRaster(t *testing.T) {
	it := newRect(100, 100)
	if !it.ResizeTo(1e8, 1e8) {
		t.Fatal("huge resize rejected")
	}
	if it.Width() != 1e8 || it.Height() != 1e8 {
		t.Fatalf("size = %vx%v, want 1e8x1e8", it.Width(), it.Height())
	}
	r := it.Raster().Bounds()
	if r.Dx() <= 0 || r.Dy() <= 0 || r.Dx() > shape.MaxRasterSize || r.Dy() > shape.MaxRasterSize {
		t.Fatalf("raster %v outside (0, %d]", r, shape.MaxRasterSize)
	}
	if a := it.Raster().RGBAAt(r.Dx()/2, r.Dy()/2).A; a == 0 {
		t.Fatal("reduced raster is empty")
	}

	// The raster transform stretches the reduced raster back over the box.
	far := it.RasterTransform().Apply(pt(float64(r.Dx()), float64(r.Dy())))
	if math.Abs(far.X-1e8) > 1e8*1e-3 || math.Abs(far.Y-1e8) > 1e8*1e-3 {
		t.Fatalf("far raster corner maps to %+v", far)
	}
}

func TestResizeToWideBoxKeepsAspect(t *testing.T) {
	it := newRect(100, 100)
	it.ResizeTo(4*shape.MaxRasterSize, 100)
	r := it.Raster().Bounds()
	if r.Dx() != shape.MaxRasterSize || r.Dy() != 25 {
		t.Fatalf("raster %v, want %dx25", r, shape.MaxRasterSize)
	}
	if it.RasterTransform() == it.Transform() {
		t.Fatal("reduced raster shares the item transform")
	}
	small := newRect(100, 100)
	if small.RasterTransform() != small.Transform() {
		t.Fatal("full-resolution raster transform differs from item transform")
	}
}

func TestScaleByShrinkStopsAboveMinimum(t *testing.T) {
	it := newRect(200, 100)
	prevW, prevH := it.Width(), it.Height()
	changes := 0
	for i := 0; i < 20; i++ {
		if it.ScaleBy(0.9) {
			changes++
			if it.Width() >= prevW || it.Height() >= prevH {
				t.Fatalf("step %d: size did not decrease", i)
			}
		} else if it.Width() != prevW || it.Height() != prevH {
			t.Fatalf("step %d: rejected scale changed size", i)
		}
		prevW, prevH = it.Width(), it.Height()
	}
	// 100 * 0.9^15 ≈ 20.59, one more step would be ≈ 18.53.
	if changes != 15 {
		t.Fatalf("applied %d shrinks, want 15", changes)
	}
	if it.Height() <= shape.MinSize {
		t.Fatalf("height %v should be the last valid size, not clamped", it.Height())
	}
	if math.Abs(it.Height()-100*math.Pow(0.9, 15)) > 1e-9 {
		t.Fatalf("height = %v", it.Height())
	}
}

func TestImageResizeKeepsSourceAspect(t *testing.T) {
	src := checker(200, 100)
	it := shape.NewImage("Chair", src, colorutil.Default, geom.Rect{Width: 100, Height: 100})

	assertAspect := func(step string) {
		t.Helper()
		b := it.Raster().Bounds()
		// Source aspect is 2:1; allow a pixel of rounding.
		if math.Abs(float64(b.Dy())-float64(b.Dx())/2) > 1 {
			t.Fatalf("%s: raster %dx%d lost the 2:1 aspect", step, b.Dx(), b.Dy())
		}
	}
	assertAspect("initial")
	if b := it.Raster().Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("initial raster %v, want 100x50 letterboxed", b)
	}

	sizes := [][2]float64{{300, 300}, {57, 500}, {21, 21}, {999, 33}, {123, 456}}
	for _, s := range sizes {
		if !it.ResizeTo(s[0], s[1]) {
			t.Fatalf("resize %v rejected", s)
		}
		assertAspect("after resize")
	}
	if it.Original() != src {
		t.Fatal("original image replaced")
	}
}

func TestImageFillColorDoesNotRepaint(t *testing.T) {
	it := shape.NewImage("Chair", checker(40, 40), colorutil.Default, geom.Rect{Width: 40, Height: 40})
	before := it.Raster().RGBAAt(0, 0)
	red := color.RGBA{R: 255, A: 255}
	it.SetFillColor(red)
	if it.FillColor() != red {
		t.Fatal("fill not retained")
	}
	if got := it.Raster().RGBAAt(0, 0); got != before {
		t.Fatalf("image pixel changed from %v to %v", before, got)
	}
}

func TestVectorFillColorRepaints(t *testing.T) {
	it := newRect(40, 40)
	red := color.RGBA{R: 255, A: 255}
	it.SetFillColor(red)
	if got := it.Raster().RGBAAt(20, 20); got.R < 250 || got.G > 5 || got.A != 255 {
		t.Fatalf("center pixel %v, want red", got)
	}
}

func TestRotationRoundTripAndWrap(t *testing.T) {
	it := newRect(100, 50)
	it.RotateBy(30)
	it.RotateBy(-30)
	if it.Rotation() != 0 {
		t.Fatalf("rotation = %v, want 0", it.Rotation())
	}
	it.RotateBy(-45)
	if it.Rotation() != 315 {
		t.Fatalf("rotation = %v, want 315", it.Rotation())
	}
	it.RotateBy(45)
	if it.Rotation() != 0 {
		t.Fatalf("rotation = %v, want 0", it.Rotation())
	}
	it.SetRotation(725)
	if it.Rotation() != 5 {
		t.Fatalf("rotation = %v, want 5", it.Rotation())
	}
}

func TestPivotFollowsCurrentSize(t *testing.T) {
	it := newRect(100, 50)
	it.SetRotation(90)
	if o := it.Origin(); o.X != 50 || o.Y != 25 {
		t.Fatalf("origin %+v", o)
	}
	it.ResizeTo(200, 80)
	if o := it.Origin(); o.X != 100 || o.Y != 40 {
		t.Fatalf("origin after resize %+v", o)
	}
	// The pivot maps to pos + origin in scene space regardless of rotation.
	c := it.Transform().Apply(it.Origin())
	if math.Abs(c.X-100) > 1e-9 || math.Abs(c.Y-40) > 1e-9 {
		t.Fatalf("pivot in scene %+v", c)
	}
}

func TestMutationsInvalidateOwner(t *testing.T) {
	it := newRect(100, 100)
	o := &fakeOwner{}
	it.SetOwner(o)
	it.ResizeTo(120, 120)
	it.RotateBy(10)
	it.ResizeTo(5, 5) // rejected, no redraw
	if o.invalidated != 2 {
		t.Fatalf("invalidated %d times, want 2", o.invalidated)
	}
}

func TestDeleteDetachesAndReleases(t *testing.T) {
	it := newRect(100, 100)
	o := &fakeOwner{}
	it.SetOwner(o)
	it.Delete()
	if len(o.detached) != 1 || o.detached[0] != it.ID() {
		t.Fatalf("detached %v", o.detached)
	}
	if !it.Deleted() || it.Raster() != nil {
		t.Fatal("item not released")
	}
}
