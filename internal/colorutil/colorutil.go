// Package colorutil converts between fill colors and their "#rrggbb" text form.
package colorutil

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Default is the fill given to new shape items.
var Default = color.RGBA{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF}

var ErrInvalidHex = errors.New("invalid hex color")

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var parts []string
	switch len(hex) {
	case 3:
		parts = []string{hex[0:1] + hex[0:1], hex[1:2] + hex[1:2], hex[2:3] + hex[2:3], "ff"}
	case 6:
		parts = []string{hex[0:2], hex[2:4], hex[4:6], "ff"}
	case 8:
		parts = []string{hex[0:2], hex[2:4], hex[4:6], hex[6:8]}
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	var ch [4]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
