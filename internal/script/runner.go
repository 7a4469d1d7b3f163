package script

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/shape"
)

// Runner applies steps to an engine it owns.
type Runner struct {
	eng    *engine.Engine
	menu   *Menu
	prompt *Prompter
	names  map[string]string // alias -> element id
	seq    int
}

// NewRunner creates an engine with scripted dialogs and an empty canvas.
// The Menu and Prompter in opts are replaced.
func NewRunner(opts engine.Options) *Runner {
	r := &Runner{
		menu:   &Menu{},
		prompt: &Prompter{},
		names:  make(map[string]string),
	}
	opts.Menu = r.menu
	opts.Prompter = r.prompt
	r.eng = engine.NewEngine(opts)
	r.eng.NewCanvas()
	return r
}

// Engine returns the engine the steps are applied to.
func (r *Runner) Engine() *engine.Engine { return r.eng }

// Lookup returns the element id recorded under alias.
func (r *Runner) Lookup(alias string) (string, bool) {
	id, ok := r.names[alias]
	return id, ok
}

// Run applies steps in order and stops at the first error.
func (r *Runner) Run(steps []Step) error {
	for _, st := range steps {
		if err := r.Apply(st); err != nil {
			return err
		}
	}
	return nil
}

// Apply runs one step.
func (r *Runner) Apply(st Step) error {
	r.seq++
	r.menu.choice = st.Choice
	r.prompt.answers = st.Prompts
	if err := r.apply(st); err != nil {
		return fmt.Errorf("step %d (%s): %w", r.seq, st.Op, err)
	}
	slog.Debug("step applied", "seq", r.seq, "op", st.Op)
	return nil
}

func (r *Runner) apply(st Step) error {
	button, err := parseButton(st.Button)
	if err != nil {
		return err
	}

	switch st.Op {
	case OpEnable:
		return r.eng.EnableDrawing(st.Kind)
	case OpFill:
		return r.eng.SetFillColor(st.Color)
	case OpAdd:
		id, err := r.eng.AddItem(nameOr(st.Name, st.Kind), st.Kind, st.X, st.Y)
		if err != nil {
			return err
		}
		r.remember(st.As, id)
	case OpImage:
		id, err := r.eng.AddImage(nameOr(st.Name, "Image"), st.Path, st.X, st.Y)
		if err != nil {
			return err
		}
		r.remember(st.As, id)
	case OpSelect:
		return r.eng.Select(r.resolve(st.ID))
	case OpDelete:
		if !r.eng.DeleteSelected() {
			slog.Debug("delete with empty selection", "seq", r.seq)
		}
	case OpPress:
		r.eng.PointerPress(st.X, st.Y, button)
	case OpMove:
		r.eng.PointerMove(st.X, st.Y, button)
	case OpRelease:
		r.remember(st.As, r.eng.PointerRelease(st.X, st.Y, button))
	case OpDrag:
		r.eng.PointerPress(st.X, st.Y, button)
		r.eng.PointerMove(st.ToX, st.ToY, button)
		r.remember(st.As, r.eng.PointerRelease(st.ToX, st.ToY, button))
	case OpKey:
		key, err := parseKey(st.Key)
		if err != nil {
			return err
		}
		r.eng.Key(key, modifiers(st))
	case OpContext:
		action := r.eng.ContextMenu(st.X, st.Y)
		slog.Info("context menu", "seq", r.seq, "action", action.String())
	case OpMenu:
		r.eng.CanvasContextMenu(st.X, st.Y)
	default:
		return fmt.Errorf("unknown operation type: %s", st.Op)
	}
	return nil
}

func (r *Runner) remember(alias, id string) {
	if alias != "" && id != "" {
		r.names[alias] = id
	}
}

func (r *Runner) resolve(ref string) string {
	if id, ok := r.names[ref]; ok {
		return id
	}
	return ref
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

func parseButton(s string) (shape.Button, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return shape.ButtonLeft, nil
	case "right":
		return shape.ButtonRight, nil
	case "middle":
		return shape.ButtonMiddle, nil
	}
	return shape.ButtonNone, fmt.Errorf("unknown button %q", s)
}

func parseKey(s string) (rune, error) {
	k, size := utf8.DecodeRuneInString(s)
	if k == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("key %q is not a single character", s)
	}
	return k, nil
}

func modifiers(st Step) shape.Modifier {
	var m shape.Modifier
	if st.Ctrl {
		m |= shape.ModCtrl
	}
	if st.Shift {
		m |= shape.ModShift
	}
	if st.Alt {
		m |= shape.ModAlt
	}
	return m
}
