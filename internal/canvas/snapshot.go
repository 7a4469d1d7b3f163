package canvas

import (
	"encoding/json"
	"time"

	"github.com/inamate/sketchpad/internal/colorutil"
	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/shape"
)

// Snapshot records the committed elements for save and export collaborators.
func (c *Canvas) Snapshot() *document.Document {
	doc := &document.Document{
		Canvas: document.Canvas{
			ID:       c.id,
			Fill:     colorutil.Hex(c.fill),
			DrawMode: c.mode.String(),
		},
		Objects:    make([]document.Object, 0, len(c.elements)),
		CapturedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if c.selected != nil {
		doc.Selection = c.selected.ID()
	}

	for _, el := range c.elements {
		switch e := el.(type) {
		case *shape.Item:
			doc.Objects = append(doc.Objects, itemObject(e))
		case *shape.Path:
			doc.Objects = append(doc.Objects, pathObject(e))
		}
	}
	return doc
}

func itemObject(it *shape.Item) document.Object {
	o := it.Origin()
	obj := document.Object{
		ID:   it.ID(),
		Name: it.Name(),
		Type: objectType(it.Kind()),
		Transform: document.Transform{
			X:  it.Pos().X,
			Y:  it.Pos().Y,
			R:  it.Rotation(),
			AX: o.X,
			AY: o.Y,
		},
		Style:  document.Style{Fill: colorutil.Hex(it.FillColor())},
		Width:  it.Width(),
		Height: it.Height(),
	}
	if it.Kind() == shape.KindImage {
		data := document.ImageData{
			RasterWidth:  it.Raster().Bounds().Dx(),
			RasterHeight: it.Raster().Bounds().Dy(),
		}
		if src := it.Original(); src != nil {
			data.SourceWidth = src.Bounds().Dx()
			data.SourceHeight = src.Bounds().Dy()
		}
		obj.Data, _ = json.Marshal(data)
	}
	return obj
}

func pathObject(p *shape.Path) document.Object {
	pts := p.Points()
	data := document.PathData{Points: make([][2]float64, len(pts))}
	for i, pt := range pts {
		data.Points[i] = [2]float64{pt.X, pt.Y}
	}
	b := p.SceneBounds()
	obj := document.Object{
		ID:        p.ID(),
		Name:      p.Name(),
		Type:      document.ObjectTypeVectorPath,
		Transform: document.Transform{X: b.X, Y: b.Y},
		Style:     document.Style{Stroke: colorutil.Hex(p.Stroke()), StrokeWidth: shape.PathWidth},
		Width:     b.Width,
		Height:    b.Height,
	}
	obj.Data, _ = json.Marshal(data)
	return obj
}

func objectType(k shape.Kind) document.ObjectType {
	switch k {
	case shape.KindCircle:
		return document.ObjectTypeShapeEllipse
	case shape.KindTriangle:
		return document.ObjectTypeShapeTriangle
	case shape.KindImage:
		return document.ObjectTypeRasterImage
	default:
		return document.ObjectTypeShapeRect
	}
}
