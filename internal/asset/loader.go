// Package asset loads source images for image items.
package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Loader reads images from disk. Relative paths resolve against its directory.
type Loader struct {
	dir string // base directory for relative paths
}

// NewLoader creates a loader rooted at dir. An empty dir leaves relative
// paths relative to the working directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Resolve returns the file path Load would open for path.
func (l *Loader) Resolve(path string) string {
	if l.dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.dir, path)
}

// Load opens and decodes the image at path.
func (l *Loader) Load(path string) (image.Image, error) {
	full := l.Resolve(path)
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", full, err)
	}
	slog.Debug("asset loaded", "path", full, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

// Decode reads a PNG, JPEG, BMP, TIFF or WebP image from r.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return img, nil
}
