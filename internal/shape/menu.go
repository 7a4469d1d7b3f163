package shape

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"
)

// Manual resize prompt bounds.
const (
	PromptMin = 20
	PromptMax = 1000
)

// Menu shows a modal list of labels at a scene position and blocks until the
// user picks one (ok = true) or dismisses it.
type Menu interface {
	Exec(at r2.Vec, labels []string) (choice string, ok bool)
}

// Prompter asks for an integer in [min, max], blocking until the user
// confirms (ok = true) or cancels.
type Prompter interface {
	Int(title, label string, value, min, max int) (n int, ok bool)
}

// Action is an item context menu entry.
type Action int

const (
	ActionNone Action = iota
	ActionRotate45
	ActionRotate90
	ActionRotate180
	ActionRotateMinus45
	ActionResetRotation
	ActionManualResize
	ActionDelete
)

var actionLabels = []struct {
	action Action
	label  string
}{
	{ActionRotate45, "Rotate 45°"},
	{ActionRotate90, "Rotate 90°"},
	{ActionRotate180, "Rotate 180°"},
	{ActionRotateMinus45, "Rotate -45°"},
	{ActionResetRotation, "Reset Rotation"},
	{ActionManualResize, "Manual Resize"},
	{ActionDelete, "Delete"},
}

func (a Action) String() string {
	for _, al := range actionLabels {
		if al.action == a {
			return al.label
		}
	}
	return "None"
}

// MenuLabels lists the item context menu entries in display order.
func MenuLabels() []string {
	labels := make([]string, len(actionLabels))
	for i, al := range actionLabels {
		labels[i] = al.label
	}
	return labels
}

// ContextMenu shows the item menu and applies the chosen action. It returns
// the action taken, or ActionNone when the menu was dismissed.
func (it *Item) ContextMenu(at r2.Vec, menu Menu, prompt Prompter) Action {
	choice, ok := menu.Exec(at, MenuLabels())
	if !ok {
		return ActionNone
	}

	action := ActionNone
	for _, al := range actionLabels {
		if al.label == choice {
			action = al.action
			break
		}
	}
	slog.Debug("item menu", "item", it.id, "action", action.String())

	switch action {
	case ActionRotate45:
		it.RotateBy(45)
	case ActionRotate90:
		it.RotateBy(90)
	case ActionRotate180:
		it.RotateBy(180)
	case ActionRotateMinus45:
		it.RotateBy(-45)
	case ActionResetRotation:
		it.SetRotation(0)
	case ActionManualResize:
		if !it.ManualResize(prompt) {
			return ActionNone
		}
	case ActionDelete:
		it.Delete()
	}
	return action
}

// ManualResize asks for a width then a height and applies both. Cancelling
// either prompt, or an answer outside the prompt range, leaves the item
// untouched.
func (it *Item) ManualResize(prompt Prompter) bool {
	w, ok := prompt.Int("Resize Width", "Enter new width:", int(it.width), PromptMin, PromptMax)
	if !ok || w < PromptMin || w > PromptMax {
		return false
	}
	h, ok := prompt.Int("Resize Height", "Enter new height:", int(it.height), PromptMin, PromptMax)
	if !ok || h < PromptMin || h > PromptMax {
		return false
	}
	return it.ResizeTo(float64(w), float64(h))
}
