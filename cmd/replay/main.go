// Command replay runs a recorded script of canvas input headlessly and writes
// the resulting render and snapshot.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/inamate/sketchpad/internal/asset"
	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/export"
	"github.com/inamate/sketchpad/internal/script"
)

func main() {
	scriptPath := flag.String("script", "-", "Path to the JSON step script, or - for stdin")
	outDir := flag.String("out", "./out", "Directory for render.png and snapshot.json")
	watch := flag.Bool("watch", false, "Replay again whenever the script file changes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	out, err := export.NewWriter(*outDir)
	if err != nil {
		slog.Error("open output", "error", err)
		os.Exit(1)
	}

	if err := replay(cfg, *scriptPath, out); err != nil {
		slog.Error("replay failed", "error", err)
		if !*watch {
			os.Exit(1)
		}
	}
	if !*watch {
		return
	}
	if *scriptPath == "-" {
		slog.Error("watch needs a script file")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w, err := script.NewWatcher(*scriptPath)
	if err != nil {
		slog.Error("watch script", "error", err)
		os.Exit(1)
	}
	defer w.Close()

	slog.Info("watching script", "path", *scriptPath)
	w.Run(ctx, func() {
		if err := replay(cfg, *scriptPath, out); err != nil {
			slog.Error("replay failed", "error", err)
		}
	})
	slog.Info("stopped watching")
}

// replay runs the script on a fresh canvas and writes its outputs.
func replay(cfg *config.Config, path string, out *export.Writer) error {
	steps, err := readSteps(path)
	if err != nil {
		return err
	}

	r := script.NewRunner(engine.Options{
		Fill:        cfg.Fill(),
		PaletteSize: cfg.PaletteSize,
		Images:      asset.NewLoader(cfg.AssetDir),
	})
	if err := r.Run(steps); err != nil {
		return err
	}
	slog.Info("script replayed", "steps", len(steps))

	eng := r.Engine()
	snap, err := eng.Snapshot()
	if err != nil {
		return err
	}
	if _, err := out.WriteSnapshot("snapshot", snap); err != nil {
		return err
	}
	if _, err := out.WritePNG("render", eng.Raster(cfg.CanvasWidth, cfg.CanvasHeight, cfg.Background())); err != nil {
		return err
	}
	return nil
}

func readSteps(path string) ([]script.Step, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}
	return script.Decode(in)
}
