// Package export writes canvas renders and snapshots to an output directory.
package export

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/inamate/sketchpad/internal/document"
)

type Writer struct {
	dir string
}

// NewWriter creates dir if needed and returns a writer into it.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WritePNG encodes img as <name>.png and returns the file path.
func (w *Writer) WritePNG(name string, img image.Image) (string, error) {
	path := filepath.Join(w.dir, sanitize(name)+".png")
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("encode png: %w", err)
	}
	slog.Info("render written", "path", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return path, nil
}

// WriteSnapshot stores doc as indented JSON in <name>.json.
func (w *Writer) WriteSnapshot(name string, doc *document.Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	path := filepath.Join(w.dir, sanitize(name)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("snapshot written", "path", path, "objects", len(doc.Objects))
	return path, nil
}

func sanitize(name string) string {
	if name == "" {
		return "canvas"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
