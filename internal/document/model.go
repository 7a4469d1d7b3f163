// Package document is the read-only record of a canvas's committed elements,
// the form in which save and export collaborators consume it.
package document

import "encoding/json"

type Document struct {
	Canvas     Canvas   `json:"canvas"`
	Objects    []Object `json:"objects"` // back to front
	Selection  string   `json:"selection,omitempty"`
	CapturedAt string   `json:"capturedAt"`
}

type Canvas struct {
	ID       string `json:"id"`
	Fill     string `json:"fill"`
	DrawMode string `json:"drawMode"`
}

type ObjectType string

const (
	ObjectTypeShapeRect     ObjectType = "ShapeRect"
	ObjectTypeShapeEllipse  ObjectType = "ShapeEllipse"
	ObjectTypeShapeTriangle ObjectType = "ShapeTriangle"
	ObjectTypeVectorPath    ObjectType = "VectorPath"
	ObjectTypeRasterImage   ObjectType = "RasterImage"
)

// Transform places an object: (X, Y) is the top-left of the untransformed
// box, R the rotation in degrees about the anchor (AX, AY) in local units.
type Transform struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	R  float64 `json:"r"`
	AX float64 `json:"ax"`
	AY float64 `json:"ay"`
}

type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

type Object struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      ObjectType      `json:"type"`
	Transform Transform       `json:"transform"`
	Style     Style           `json:"style"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// PathData is the Data payload of a VectorPath object.
type PathData struct {
	Points [][2]float64 `json:"points"`
}

// ImageData is the Data payload of a RasterImage object: the size of the
// rendered raster inside the object's box and of its source image.
type ImageData struct {
	RasterWidth  int `json:"rasterWidth"`
	RasterHeight int `json:"rasterHeight"`
	SourceWidth  int `json:"sourceWidth"`
	SourceHeight int `json:"sourceHeight"`
}

// Find returns the object with id.
func (d *Document) Find(id string) (Object, bool) {
	for _, o := range d.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return Object{}, false
}
