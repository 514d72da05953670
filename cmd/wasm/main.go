//go:build js && wasm

package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"syscall/js"

	"github.com/structsketch/structsketch/backend-go/internal/document"
	"github.com/structsketch/structsketch/backend-go/internal/engine"
	"github.com/structsketch/structsketch/backend-go/internal/gesture"
	"github.com/structsketch/structsketch/backend-go/internal/viewport"
)

var (
	// mu serializes page callbacks with long-press timers.
	mu       sync.Mutex
	eng      *engine.Engine
	listener js.Value
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	eng = engine.NewEngine(engine.Options{
		Metrics: viewport.DefaultMetrics(
			js.Global().Get("innerWidth").Float(),
			js.Global().Get("innerHeight").Float(),
		),
		Post: posted,
	})

	structEngine := js.Global().Get("Object").New()

	// --- Commands (page → engine) ---
	structEngine.Set("loadDocument", js.FuncOf(locked(loadDocument)))
	structEngine.Set("loadSampleDocument", js.FuncOf(locked(loadSampleDocument)))
	structEngine.Set("addGlyph", js.FuncOf(locked(addGlyph)))
	structEngine.Set("removeGlyph", js.FuncOf(locked(removeGlyph)))
	structEngine.Set("moveGlyph", js.FuncOf(locked(moveGlyph)))
	structEngine.Set("setMode", js.FuncOf(locked(setMode)))
	structEngine.Set("resize", js.FuncOf(locked(resize)))
	structEngine.Set("setViewport", js.FuncOf(locked(setViewport)))
	structEngine.Set("pointerDown", js.FuncOf(locked(pointer(eng.PointerDown))))
	structEngine.Set("pointerMove", js.FuncOf(locked(pointer(eng.PointerMove))))
	structEngine.Set("pointerUp", js.FuncOf(locked(pointer(eng.PointerUp))))
	structEngine.Set("doubleClick", js.FuncOf(locked(pointer(eng.DoubleClick))))
	structEngine.Set("wheel", js.FuncOf(locked(wheel)))
	structEngine.Set("setSelection", js.FuncOf(locked(setSelection)))
	structEngine.Set("setSignalListener", js.FuncOf(locked(setSignalListener)))

	// --- Queries (page ← engine) ---
	structEngine.Set("render", js.FuncOf(locked(render)))
	structEngine.Set("hitTest", js.FuncOf(locked(hitTest)))
	structEngine.Set("getSelectionBounds", js.FuncOf(locked(getSelectionBounds)))
	structEngine.Set("getSelection", js.FuncOf(locked(getSelection)))
	structEngine.Set("getViewport", js.FuncOf(locked(getViewport)))
	structEngine.Set("getDocument", js.FuncOf(locked(getDocument)))
	structEngine.Set("drainSignals", js.FuncOf(locked(drainSignals)))

	js.Global().Set("structEngine", structEngine)
	js.Global().Set("structWasmReady", js.ValueOf(true))

	select {}
}

type handler func(this js.Value, args []js.Value) interface{}

func locked(h handler) handler {
	return func(this js.Value, args []js.Value) interface{} {
		mu.Lock()
		defer mu.Unlock()
		return h(this, args)
	}
}

// posted runs on the timer goroutine. The listener is invoked after the lock
// is released so it may call back into structEngine.
func posted(ev gesture.Event) {
	mu.Lock()
	eng.HandleEvent(ev)
	fn := listener
	var sigs []gesture.Signal
	if fn.Type() == js.TypeFunction {
		sigs = eng.DrainSignals()
	}
	mu.Unlock()

	if len(sigs) > 0 {
		fn.Invoke(toJSON(sigs))
	}
}

func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}

func errorResult(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error(), "kind": engine.ErrorKind(err)})
}

func okResult() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func missing(what string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": "missing " + what, "kind": "bad_request"})
}

// pointerEvent reads a DOM MouseEvent or TouchEvent.
func pointerEvent(v js.Value) viewport.PointerEvent {
	ev := viewport.PointerEvent{Input: viewport.InputType(v.Get("type").String())}
	if x := v.Get("clientX"); x.Type() == js.TypeNumber {
		ev.ClientX = x.Float()
		ev.ClientY = v.Get("clientY").Float()
	}
	if touches := v.Get("touches"); touches.Type() == js.TypeObject {
		for i := 0; i < touches.Length(); i++ {
			t := touches.Index(i)
			ev.Touches = append(ev.Touches, viewport.PointerSample{X: t.Get("clientX").Float(), Y: t.Get("clientY").Float()})
		}
	}
	return ev
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("document JSON")
	}
	if err := eng.LoadDocument(args[0].String()); err != nil {
		return errorResult(err)
	}
	return okResult()
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	eng.LoadSampleDocument()
	return okResult()
}

func addGlyph(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return missing("glyph kind and params JSON")
	}
	id, err := eng.AddGlyph(document.GlyphKind(args[0].String()), json.RawMessage(args[1].String()))
	if err != nil {
		return errorResult(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "id": id})
}

func removeGlyph(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("glyph id")
	}
	if err := eng.RemoveGlyph(args[0].String()); err != nil {
		return errorResult(err)
	}
	return okResult()
}

func moveGlyph(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return missing("glyph id and delta")
	}
	if err := eng.MoveGlyph(args[0].String(), args[1].Float(), args[2].Float()); err != nil {
		return errorResult(err)
	}
	return okResult()
}

// setMode takes {mode, strokeWidth, strokeColor}.
func setMode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("mode")
	}
	cfg := viewport.ModeConfig{Mode: viewport.Mode(args[0].Get("mode").String())}
	if w := args[0].Get("strokeWidth"); w.Type() == js.TypeNumber {
		cfg.StrokeWidth = w.Float()
	}
	if c := args[0].Get("strokeColor"); c.Type() == js.TypeString {
		cfg.StrokeColor = c.String()
	}
	if err := eng.SetMode(cfg); err != nil {
		return errorResult(err)
	}
	return okResult()
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return missing("width and height")
	}
	return toJSON(eng.Resize(args[0].Float(), args[1].Float()))
}

// setViewport takes a JSON {offsetX, offsetY, zoom} and returns the clamped state.
func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("viewport")
	}
	var s viewport.State
	if err := json.Unmarshal([]byte(args[0].String()), &s); err != nil {
		return errorResult(err)
	}
	return toJSON(eng.SetViewport(s))
}

func pointer(fn func(viewport.PointerEvent)) handler {
	return func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 {
			return nil
		}
		fn(pointerEvent(args[0]))
		return nil
	}
}

func wheel(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ev := args[0]
	s := eng.Wheel(ev.Get("deltaY").Float(), viewport.PointerSample{X: ev.Get("clientX").Float(), Y: ev.Get("clientY").Float()})
	return toJSON(s)
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

// setSignalListener registers fn(signalsJSON) for gestures recognized outside
// a page callback, such as long presses.
func setSignalListener(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		listener = js.Undefined()
		return nil
	}
	listener = args[0]
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return eng.Render()
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return ""
	}
	return eng.HitTest(args[0].Float(), args[1].Float())
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return engine.RectToJSON(eng.GetSelectionBounds())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return toJSON(eng.GetSelection())
}

func getViewport(this js.Value, args []js.Value) interface{} {
	return toJSON(eng.GetViewport())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return eng.GetDocument()
}

func drainSignals(this js.Value, args []js.Value) interface{} {
	sigs := eng.DrainSignals()
	if len(sigs) == 0 {
		return "[]"
	}
	return toJSON(sigs)
}
