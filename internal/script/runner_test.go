package script_test

import (
	"image"
	"strings"
	"testing"

	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/script"
)

const drawing = `[
  {"op": "enable", "kind": "rectangle"},
  {"op": "drag", "x": 100, "y": 100, "toX": 40, "toY": 60, "as": "box"},
  {"op": "add", "kind": "circle", "x": 300, "y": 300, "as": "ball"},
  {"op": "enable", "kind": "freehand"},
  {"op": "press", "x": 500, "y": 500},
  {"op": "move", "x": 520, "y": 510},
  {"op": "release", "x": 540, "y": 500, "as": "squiggle"},
  {"op": "select", "id": "ball"},
  {"op": "fill", "color": "#0000ff"},
  {"op": "key", "key": "=", "ctrl": true},
  {"op": "context", "x": 70, "y": 80, "choice": "Manual Resize", "prompts": [250, 90]},
  {"op": "context", "x": 350, "y": 350, "choice": "Rotate -45°"}
]`

func TestRunDrawingScript(t *testing.T) {
	steps, err := script.Decode(strings.NewReader(drawing))
	if err != nil {
		t.Fatal(err)
	}
	r := script.NewRunner(engine.Options{})
	if err := r.Run(steps); err != nil {
		t.Fatal(err)
	}

	snap, err := r.Engine().Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Objects) != 3 {
		t.Fatalf("%d objects", len(snap.Objects))
	}

	boxID, _ := r.Lookup("box")
	box, _ := snap.Find(boxID)
	if box.Transform.X != 40 || box.Transform.Y != 60 || box.Width != 250 || box.Height != 90 {
		t.Fatalf("box %+v", box)
	}

	ballID, _ := r.Lookup("ball")
	ball, _ := snap.Find(ballID)
	if ball.Style.Fill != "#0000ff" || ball.Transform.R != 315 {
		t.Fatalf("ball %+v", ball)
	}
	if ball.Width < 109.99 || ball.Width > 110.01 {
		t.Fatalf("ball width %v", ball.Width)
	}
	if _, ok := r.Lookup("squiggle"); !ok {
		t.Fatal("freehand path not recorded")
	}
}

func TestCancelledPromptLeavesItem(t *testing.T) {
	steps := []script.Step{
		{Op: script.OpAdd, Kind: "rectangle", As: "r"},
		// An out-of-range width cancels before the height prompt.
		{Op: script.OpContext, X: 50, Y: 50, Choice: "Manual Resize", Prompts: []int{5, 80}},
		{Op: script.OpContext, X: 50, Y: 50, Choice: "Manual Resize"},
	}
	r := script.NewRunner(engine.Options{})
	if err := r.Run(steps); err != nil {
		t.Fatal(err)
	}
	snap, _ := r.Engine().Snapshot()
	if o := snap.Objects[0]; o.Width != 100 || o.Height != 100 {
		t.Fatalf("size %vx%v", o.Width, o.Height)
	}
}

func TestCanvasMenuDelete(t *testing.T) {
	r := script.NewRunner(engine.Options{})
	err := r.Run([]script.Step{
		{Op: script.OpAdd, Kind: "triangle"},
		{Op: script.OpMenu, X: 50, Y: 50, Choice: "Delete"},
	})
	if err != nil {
		t.Fatal(err)
	}
	snap, _ := r.Engine().Snapshot()
	if len(snap.Objects) != 0 {
		t.Fatalf("%d objects left", len(snap.Objects))
	}
}

type oneImage struct{}

func (oneImage) Load(string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 50, 200)), nil
}

func TestImageStep(t *testing.T) {
	r := script.NewRunner(engine.Options{Images: oneImage{}})
	if err := r.Apply(script.Step{Op: script.OpImage, Path: "tall.png", As: "img"}); err != nil {
		t.Fatal(err)
	}
	id, _ := r.Lookup("img")
	px, err := r.Engine().ItemPixels(id)
	if err != nil {
		t.Fatal(err)
	}
	if px.Bounds().Dx() != 25 || px.Bounds().Dy() != 100 {
		t.Fatalf("raster %v", px.Bounds())
	}
}

func TestStepErrors(t *testing.T) {
	tests := []struct {
		name string
		step script.Step
		want string
	}{
		{"unknown op", script.Step{Op: "teleport"}, "unknown operation type"},
		{"bad kind", script.Step{Op: script.OpAdd, Kind: "hexagon"}, "unknown shape kind"},
		{"bad button", script.Step{Op: script.OpPress, Button: "fourth"}, "unknown button"},
		{"long key", script.Step{Op: script.OpKey, Key: "plus", Ctrl: true}, "single character"},
		{"unknown id", script.Step{Op: script.OpSelect, ID: "nobody"}, "unknown element"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := script.NewRunner(engine.Options{})
			err := r.Apply(tt.step)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
			if !strings.HasPrefix(err.Error(), "step 1 (") {
				t.Fatalf("err %q lacks step prefix", err)
			}
		})
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := script.Decode(strings.NewReader(`{"op": "press"}`)); err == nil {
		t.Fatal("expected error for non-array script")
	}
}
