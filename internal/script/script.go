// Package script replays recorded host input against an engine: commands,
// pointer and key events, and the answers to any modal menus and prompts
// they open.
package script

import (
	"encoding/json"
	"fmt"
	"io"
)

// Step operation types.
const (
	OpEnable  = "enable"
	OpFill    = "fill"
	OpAdd     = "add"
	OpImage   = "image"
	OpSelect  = "select"
	OpDelete  = "delete"
	OpPress   = "press"
	OpMove    = "move"
	OpRelease = "release"
	OpDrag    = "drag"
	OpKey     = "key"
	OpContext = "context"
	OpMenu    = "menu"
)

// Step is one recorded host action.
type Step struct {
	Op string `json:"op"`

	// Pointer position; OpDrag moves from (X, Y) to (ToX, ToY).
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Button string  `json:"button,omitempty"` // left (default), right, middle

	// For enable, add and image
	Kind string `json:"kind,omitempty"`
	Name string `json:"name,omitempty"`
	Path string `json:"path,omitempty"`

	// For fill
	Color string `json:"color,omitempty"`

	// For key
	Key   string `json:"key,omitempty"`
	Ctrl  bool   `json:"ctrl,omitempty"`
	Shift bool   `json:"shift,omitempty"`
	Alt   bool   `json:"alt,omitempty"`

	// Menu answer for context and menu steps; empty dismisses the menu.
	Choice string `json:"choice,omitempty"`
	// Prompt answers in order. Values outside the prompt range cancel.
	Prompts []int `json:"prompts,omitempty"`

	// As names the element an add, image or committing release produced so
	// later steps can refer to it in ID.
	As string `json:"as,omitempty"`
	ID string `json:"id,omitempty"`
}

// Decode reads a JSON array of steps.
func Decode(r io.Reader) ([]Step, error) {
	var steps []Step
	if err := json.NewDecoder(r).Decode(&steps); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return steps, nil
}
