// Package shape implements the manipulable items placed on a canvas: vector
// shapes and image-backed items, their rendering, and their direct-manipulation
// protocols (corner-drag resize, keyboard scale, rotation, context menu).
package shape

import (
	"fmt"
	"strings"
)

// Kind is the closed set of item kinds.
type Kind int

const (
	KindRectangle Kind = iota
	KindCircle
	KindTriangle
	KindImage // freeform, backed by a source image
)

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "Rectangle"
	case KindCircle:
		return "Circle"
	case KindTriangle:
		return "Triangle"
	case KindImage:
		return "FreeformImage"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts the names produced by String, case-insensitively, plus a
// few short aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect":
		return KindRectangle, nil
	case "circle", "ellipse":
		return KindCircle, nil
	case "triangle":
		return KindTriangle, nil
	case "freeformimage", "freeform", "image":
		return KindImage, nil
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}
