//go:build js && wasm

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"syscall/js"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/inamate/sketchpad/internal/asset"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/shape"
)

var eng *engine.Engine

// images holds bytes registered by the page, keyed by the path the page
// later passes to addImage.
var images = jsImages{}

func main() {
	eng = engine.NewEngine(engine.Options{
		Menu:     jsMenu{},
		Prompter: jsPrompter{},
		Images:   images,
	})

	// Create the engine API object
	sketchpadEngine := js.Global().Get("Object").New()

	// --- Commands (front end → engine) ---
	sketchpadEngine.Set("newCanvas", js.FuncOf(newCanvas))
	sketchpadEngine.Set("enableDrawing", js.FuncOf(enableDrawing))
	sketchpadEngine.Set("setFillColor", js.FuncOf(setFillColor))
	sketchpadEngine.Set("addItem", js.FuncOf(addItem))
	sketchpadEngine.Set("registerImage", js.FuncOf(registerImage))
	sketchpadEngine.Set("addImage", js.FuncOf(addImage))
	sketchpadEngine.Set("deleteSelected", js.FuncOf(deleteSelected))
	sketchpadEngine.Set("select", js.FuncOf(selectElement))
	sketchpadEngine.Set("pointerDown", js.FuncOf(pointerDown))
	sketchpadEngine.Set("pointerMove", js.FuncOf(pointerMove))
	sketchpadEngine.Set("pointerUp", js.FuncOf(pointerUp))
	sketchpadEngine.Set("keyDown", js.FuncOf(keyDown))
	sketchpadEngine.Set("contextMenu", js.FuncOf(contextMenu))
	sketchpadEngine.Set("canvasContextMenu", js.FuncOf(canvasContextMenu))

	// --- Queries (front end ← engine) ---
	sketchpadEngine.Set("render", js.FuncOf(render))
	sketchpadEngine.Set("hitTest", js.FuncOf(hitTest))
	sketchpadEngine.Set("getSelection", js.FuncOf(getSelection))
	sketchpadEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	sketchpadEngine.Set("getCursor", js.FuncOf(getCursor))
	sketchpadEngine.Set("getDrawMode", js.FuncOf(getDrawMode))
	sketchpadEngine.Set("getSnapshot", js.FuncOf(getSnapshot))
	sketchpadEngine.Set("getItemPixels", js.FuncOf(getItemPixels))

	// Register on global scope
	js.Global().Set("sketchpadEngine", sketchpadEngine)

	// Signal that WASM is ready
	js.Global().Set("sketchpadWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Host dialogs ---

// jsMenu calls sketchpadHost.showMenu(x, y, labels), which must block and
// return the chosen label or null.
type jsMenu struct{}

func (jsMenu) Exec(at r2.Vec, labels []string) (string, bool) {
	host := js.Global().Get("sketchpadHost")
	if host.IsUndefined() {
		return "", false
	}
	items := make([]interface{}, len(labels))
	for i, l := range labels {
		items[i] = l
	}
	res := host.Call("showMenu", at.X, at.Y, js.ValueOf(items))
	if res.Type() != js.TypeString {
		return "", false
	}
	return res.String(), true
}

// jsPrompter calls sketchpadHost.promptInt(title, label, value, min, max),
// which returns a number or null on cancel.
type jsPrompter struct{}

func (jsPrompter) Int(title, label string, value, min, max int) (int, bool) {
	host := js.Global().Get("sketchpadHost")
	if host.IsUndefined() {
		return value, false
	}
	res := host.Call("promptInt", title, label, value, min, max)
	if res.Type() != js.TypeNumber {
		return value, false
	}
	return res.Int(), true
}

type jsImages map[string][]byte

func (m jsImages) Load(path string) (image.Image, error) {
	data, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("image %q not registered", path)
	}
	return asset.Decode(bytes.NewReader(data))
}

// --- Command Handlers ---

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func newCanvas(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.NewCanvas())
}

func enableDrawing(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return result(fmt.Errorf("missing draw mode"))
	}
	return result(eng.EnableDrawing(args[0].String()))
}

func setFillColor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return result(fmt.Errorf("missing color"))
	}
	return result(eng.SetFillColor(args[0].String()))
}

func addItem(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return result(fmt.Errorf("addItem(name, kind, x, y)"))
	}
	id, err := eng.AddItem(args[0].String(), args[1].String(), args[2].Float(), args[3].Float())
	if err != nil {
		return result(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "id": id})
}

func registerImage(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return result(fmt.Errorf("registerImage(path, bytes)"))
	}
	data := make([]byte, args[1].Length())
	js.CopyBytesToGo(data, args[1])
	images[args[0].String()] = data
	return result(nil)
}

func addImage(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return result(fmt.Errorf("addImage(name, path, x, y)"))
	}
	id, err := eng.AddImage(args[0].String(), args[1].String(), args[2].Float(), args[3].Float())
	if err != nil {
		return result(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "id": id})
}

func deleteSelected(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.DeleteSelected())
}

func selectElement(this js.Value, args []js.Value) interface{} {
	id := ""
	if len(args) > 0 && args[0].Type() == js.TypeString {
		id = args[0].String()
	}
	return result(eng.Select(id))
}

// pointerButton maps MouseEvent.button to a pointer button.
func pointerButton(args []js.Value) shape.Button {
	if len(args) < 3 {
		return shape.ButtonLeft
	}
	switch args[2].Int() {
	case 0:
		return shape.ButtonLeft
	case 1:
		return shape.ButtonMiddle
	case 2:
		return shape.ButtonRight
	}
	return shape.ButtonNone
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerPress(args[0].Float(), args[1].Float(), pointerButton(args))
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerMove(args[0].Float(), args[1].Float(), pointerButton(args))
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.PointerRelease(args[0].Float(), args[1].Float(), pointerButton(args)))
}

// keyDown takes a KeyboardEvent-like object with key, ctrlKey, metaKey,
// shiftKey and altKey.
func keyDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	ev := args[0]
	key := []rune(ev.Get("key").String())
	if len(key) != 1 {
		return js.ValueOf(false)
	}
	var mods shape.Modifier
	if ev.Get("ctrlKey").Truthy() || ev.Get("metaKey").Truthy() {
		mods |= shape.ModCtrl
	}
	if ev.Get("shiftKey").Truthy() {
		mods |= shape.ModShift
	}
	if ev.Get("altKey").Truthy() {
		mods |= shape.ModAlt
	}
	return js.ValueOf(eng.Key(key[0], mods))
}

func contextMenu(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("None")
	}
	return js.ValueOf(eng.ContextMenu(args[0].Float(), args[1].Float()).String())
}

func canvasContextMenu(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.CanvasContextMenu(args[0].Float(), args[1].Float())
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.RenderJSON())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Selection())
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(engine.RectToJSON(eng.SelectionBounds()))
}

func getCursor(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Cursor())
}

func getDrawMode(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.DrawMode())
}

func getSnapshot(this js.Value, args []js.Value) interface{} {
	snap, err := eng.Snapshot()
	if err != nil {
		return js.ValueOf("{}")
	}
	data, _ := json.Marshal(snap)
	return js.ValueOf(string(data))
}

// getItemPixels returns {width, height, data} with RGBA bytes suitable for
// an ImageData, or null.
func getItemPixels(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	px, err := eng.ItemPixels(args[0].String())
	if err != nil || px == nil {
		return nil
	}
	data := js.Global().Get("Uint8Array").New(len(px.Pix))
	js.CopyBytesToJS(data, px.Pix)
	return js.ValueOf(map[string]interface{}{
		"width":  px.Bounds().Dx(),
		"height": px.Bounds().Dy(),
		"data":   data,
	})
}
