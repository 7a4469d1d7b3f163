package export_test

import (
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/export"
)

func TestWritePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := export.NewWriter(dir)
	if err != nil {
		t.Fatal(err)
	}
	path, err := w.WritePNG("my render!", image.NewRGBA(image.Rect(0, 0, 8, 4)))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "my-render-.png" {
		t.Fatalf("path %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 8 || cfg.Height != 4 {
		t.Fatalf("decoded %dx%d", cfg.Width, cfg.Height)
	}
}

func TestWriteSnapshot(t *testing.T) {
	w, err := export.NewWriter(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	doc := &document.Document{
		Canvas:  document.Canvas{ID: "c1", Fill: "#4caf50", DrawMode: "idle"},
		Objects: []document.Object{{ID: "item_1", Name: "Rectangle", Type: document.ObjectTypeShapeRect, Width: 20, Height: 30}},
	}
	path, err := w.WriteSnapshot("", doc)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "canvas.json" {
		t.Fatalf("path %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got document.Document
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if o, ok := got.Find("item_1"); !ok || o.Height != 30 {
		t.Fatalf("object %+v", o)
	}
}
