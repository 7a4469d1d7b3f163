package engine

import (
	"encoding/json"
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/colorutil"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/shape"
)

// Selection outline style.
const (
	selectionStroke = "#1e90ff"
	selectionWidth  = 1.0
	previewWidth    = 1.0
)

// DrawCommand represents a single drawing operation for the front end to execute.
// The front end receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op           string        `json:"op"`                     // Operation: "path" or "image"
	ObjectID     string        `json:"objectId,omitempty"`     // For hit correlation; empty for previews
	Transform    []float64     `json:"transform,omitempty"`    // [a, b, c, d, e, f] affine matrix
	Path         []PathCommand `json:"path,omitempty"`         // Path data for "path" ops
	Fill         string        `json:"fill,omitempty"`         // Fill color
	Stroke       string        `json:"stroke,omitempty"`       // Stroke color
	StrokeWidth  float64       `json:"strokeWidth,omitempty"`  // Stroke width
	Opacity      float64       `json:"opacity,omitempty"`      // Global alpha
	ImageAssetID string        `json:"imageAssetId,omitempty"` // Item id whose pixels to draw
	ImageWidth   float64       `json:"imageWidth,omitempty"`   // Raster width
	ImageHeight  float64       `json:"imageHeight,omitempty"`  // Raster height
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []interface{}

// CompileDrawCommands generates the draw command buffer for a canvas.
// Commands are in painter's order (back to front), with the drawing preview last.
func CompileDrawCommands(c *canvas.Canvas) []DrawCommand {
	if c == nil {
		return nil
	}

	var commands []DrawCommand
	for _, el := range c.Elements() {
		switch v := el.(type) {
		case *shape.Item:
			compileItem(v, &commands)
		case *shape.Path:
			compilePath(v, &commands)
		}
	}
	if pv := c.Preview(); pv != nil {
		commands = append(commands, compilePreview(pv, c.FillColor()))
	}
	return commands
}

func compileItem(it *shape.Item, commands *[]DrawCommand) {
	transform := it.Transform().ToSlice()
	w, h := it.Width(), it.Height()

	if it.Kind() == shape.KindImage {
		r := it.Raster().Bounds()
		*commands = append(*commands, DrawCommand{
			Op:           "image",
			ObjectID:     it.ID(),
			Transform:    it.RasterTransform().ToSlice(),
			Opacity:      1,
			ImageAssetID: it.ID(),
			ImageWidth:   float64(r.Dx()),
			ImageHeight:  float64(r.Dy()),
		})
	} else {
		*commands = append(*commands, DrawCommand{
			Op:        "path",
			ObjectID:  it.ID(),
			Transform: transform,
			Path:      itemPath(it.Kind(), w, h),
			Opacity:   1,
			Fill:      colorutil.Hex(it.FillColor()),
		})
	}

	if it.Selected() {
		*commands = append(*commands, DrawCommand{
			Op:          "path",
			ObjectID:    it.ID(),
			Transform:   transform,
			Path:        rectPath(0, 0, w, h),
			Opacity:     1,
			Stroke:      selectionStroke,
			StrokeWidth: selectionWidth,
		})
	}
}

func compilePath(p *shape.Path, commands *[]DrawCommand) {
	*commands = append(*commands, DrawCommand{
		Op:          "path",
		ObjectID:    p.ID(),
		Transform:   geom.Identity().ToSlice(),
		Path:        polylinePath(p.Points(), false),
		Opacity:     1,
		Stroke:      colorutil.Hex(p.Stroke()),
		StrokeWidth: shape.PathWidth,
	})
	if p.Selected() {
		b := p.SceneBounds()
		*commands = append(*commands, DrawCommand{
			Op:          "path",
			ObjectID:    p.ID(),
			Transform:   geom.Translate(b.X, b.Y).ToSlice(),
			Path:        rectPath(0, 0, b.Width, b.Height),
			Opacity:     1,
			Stroke:      selectionStroke,
			StrokeWidth: selectionWidth,
		})
	}
}

func compilePreview(pv *canvas.Preview, fill color.RGBA) DrawCommand {
	cmd := DrawCommand{
		Op:          "path",
		Transform:   geom.Identity().ToSlice(),
		Opacity:     1,
		Stroke:      colorutil.Hex(fill),
		StrokeWidth: previewWidth,
	}
	b := pv.Bounds
	switch pv.Mode {
	case canvas.DrawRectangle:
		cmd.Path = rectPath(b.X, b.Y, b.Width, b.Height)
	case canvas.DrawCircle:
		cmd.Path = ellipsePath(b.X+b.Width/2, b.Y+b.Height/2, b.Width/2, b.Height/2)
	default:
		pts, closed := pv.Outline()
		cmd.Path = polylinePath(pts, closed)
	}
	return cmd
}

// itemPath generates the outline of a vector item in its local box.
func itemPath(kind shape.Kind, w, h float64) []PathCommand {
	switch kind {
	case shape.KindCircle:
		return ellipsePath(w/2, h/2, w/2, h/2)
	case shape.KindTriangle:
		return polylinePath(shape.TrianglePoints(geom.Rect{Width: w, Height: h}), true)
	default:
		return rectPath(0, 0, w, h)
	}
}

// rectPath generates path commands for a rectangle.
func rectPath(x, y, w, h float64) []PathCommand {
	return []PathCommand{
		{"M", x, y},
		{"L", x + w, y},
		{"L", x + w, y + h},
		{"L", x, y + h},
		{"Z"},
	}
}

// ellipsePath generates path commands for an ellipse using bezier curves.
func ellipsePath(cx, cy, rx, ry float64) []PathCommand {
	// k = 4 * (sqrt(2) - 1) / 3
	const k = 0.5522847498
	kx, ky := rx*k, ry*k

	return []PathCommand{
		{"M", cx + rx, cy},
		{"C", cx + rx, cy + ky, cx + kx, cy + ry, cx, cy + ry},
		{"C", cx - kx, cy + ry, cx - rx, cy + ky, cx - rx, cy},
		{"C", cx - rx, cy - ky, cx - kx, cy - ry, cx, cy - ry},
		{"C", cx + kx, cy - ry, cx + rx, cy - ky, cx + rx, cy},
		{"Z"},
	}
}

func polylinePath(pts []r2.Vec, closed bool) []PathCommand {
	if len(pts) == 0 {
		return nil
	}
	path := make([]PathCommand, 0, len(pts)+1)
	path = append(path, PathCommand{"M", pts[0].X, pts[0].Y})
	for _, p := range pts[1:] {
		path = append(path, PathCommand{"L", p.X, p.Y})
	}
	if closed {
		path = append(path, PathCommand{"Z"})
	}
	return path
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r geom.Rect) string {
	data, _ := json.Marshal(map[string]float64{
		"x":      r.X,
		"y":      r.Y,
		"width":  r.Width,
		"height": r.Height,
	})
	return string(data)
}
