package config

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/inamate/sketchpad/internal/colorutil"
)

type Config struct {
	CanvasWidth      int     `envconfig:"CANVAS_WIDTH" default:"1280"`
	CanvasHeight     int     `envconfig:"CANVAS_HEIGHT" default:"720"`
	CanvasBackground string  `envconfig:"CANVAS_BACKGROUND" default:"#ffffff"`
	DefaultFill      string  `envconfig:"DEFAULT_FILL" default:"#4CAF50"`
	PaletteSize      float64 `envconfig:"PALETTE_SIZE" default:"100"`
	AssetDir         string  `envconfig:"ASSET_DIR" default:"./data/assets"`
	LogLevel         string  `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d must be positive", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.PaletteSize <= 0 {
		return nil, fmt.Errorf("palette size %v must be positive", cfg.PaletteSize)
	}
	for _, hex := range []string{cfg.CanvasBackground, cfg.DefaultFill} {
		if _, err := colorutil.ParseHex(hex); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// Fill is DefaultFill parsed. Load has already validated it.
func (c *Config) Fill() color.RGBA {
	col, _ := colorutil.ParseHex(c.DefaultFill)
	return col
}

// Background is CanvasBackground parsed.
func (c *Config) Background() color.RGBA {
	col, _ := colorutil.ParseHex(c.CanvasBackground)
	return col
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
