package shape

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inamate/sketchpad/internal/geom"
)

// HandleSize is the side of the square around the bottom-right corner that
// starts a resize drag, in item units.
const HandleSize = 10

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Modifier is a keyboard modifier mask.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Cursor is the pointer shape an item asks the host to show.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorSizeFDiag
)

func (c Cursor) String() string {
	if c == CursorSizeFDiag {
		return "size-fdiag"
	}
	return "arrow"
}

// PointerEvent is a press, move or release at a scene position.
type PointerEvent struct {
	Scene  r2.Vec
	Button Button
}

// KeyEvent carries a key and the modifiers held with it.
type KeyEvent struct {
	Key  rune
	Mods Modifier
}

// PointerHandler is implemented by anything that can own a pointer gesture.
// Press, Move and Release report whether the event was consumed; unconsumed
// events fall through to the canvas's default select/move behavior.
type PointerHandler interface {
	Owns(scene r2.Vec) bool
	Press(ev PointerEvent) bool
	Move(ev PointerEvent) bool
	Release(ev PointerEvent) bool
}

// gesture is the per-item interaction state: nil when idle, *resizing while a
// corner drag is in progress.
type gesture interface{ isGesture() }

type resizing struct {
	originalRect geom.Rect
	lastPos      r2.Vec
}

func (*resizing) isGesture() {}

var _ PointerHandler = (*Item)(nil)

// Resizing reports whether a corner drag is in progress.
func (it *Item) Resizing() bool {
	_, ok := it.gesture.(*resizing)
	return ok
}

// Owns reports whether the scene point hits the item.
func (it *Item) Owns(scene r2.Vec) bool { return it.Contains(scene) }

// OnHandle reports whether the scene point lies on the resize handle.
func (it *Item) OnHandle(scene r2.Vec) bool {
	p := it.MapFromScene(scene)
	return math.Abs(p.X-it.width) < HandleSize && math.Abs(p.Y-it.height) < HandleSize
}

// Press starts a resize when the left button goes down on the handle.
func (it *Item) Press(ev PointerEvent) bool {
	if ev.Button != ButtonLeft || !it.OnHandle(ev.Scene) {
		return false
	}
	it.gesture = &resizing{originalRect: it.LocalRect(), lastPos: ev.Scene}
	it.cursor = CursorSizeFDiag
	slog.Debug("resize started", "item", it.id, "width", it.width, "height", it.height)
	return true
}

// Move tracks a resize drag. Frames whose size would fall below MinSize are
// skipped without ending the drag.
func (it *Item) Move(ev PointerEvent) bool {
	g, ok := it.gesture.(*resizing)
	if !ok {
		return false
	}
	d := r2.Sub(ev.Scene, g.lastPos)
	it.ResizeTo(g.originalRect.Width+d.X, g.originalRect.Height+d.Y)
	return true
}

// Release ends a resize drag.
func (it *Item) Release(ev PointerEvent) bool {
	if !it.Resizing() {
		return false
	}
	it.gesture = nil
	it.cursor = CursorArrow
	slog.Debug("resize finished", "item", it.id, "width", it.width, "height", it.height)
	return true
}

// KeyPress handles the scale chords on a selected item: Ctrl + '+' or '='
// grows by 10%, Ctrl + '-' shrinks by 10%.
func (it *Item) KeyPress(ev KeyEvent) bool {
	if !it.selected || ev.Mods&ModCtrl == 0 {
		return false
	}
	switch ev.Key {
	case '+', '=':
		it.ScaleBy(1.1)
	case '-':
		it.ScaleBy(0.9)
	default:
		return false
	}
	return true
}
