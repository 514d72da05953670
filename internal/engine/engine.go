package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/structsketch/structsketch/backend-go/internal/document"
	"github.com/structsketch/structsketch/backend-go/internal/geom"
	"github.com/structsketch/structsketch/backend-go/internal/gesture"
	"github.com/structsketch/structsketch/backend-go/internal/viewport"
)

// Options configures an Engine.
type Options struct {
	Metrics        viewport.Metrics
	LongPressDelay time.Duration
	Clock          gesture.Clock
	// Post hands long-press timer events back to the goroutine owning the
	// engine, which must pass them to HandleEvent.
	Post   func(gesture.Event)
	Logger *slog.Logger
}

// Engine owns the sketch, its scene graph, the viewport and the gesture
// dispatcher of one drawing surface. It processes commands from the page and
// answers queries. It is not safe for concurrent use.
type Engine struct {
	sketch *document.Sketch

	// Retained scene graph
	sceneGraph *SceneGraph
	dirty      bool

	dispatcher *gesture.Dispatcher
	selection  []string
	signals    []gesture.Signal

	logger *slog.Logger
}

// NewEngine creates an engine with an empty sketch.
func NewEngine(opts Options) *Engine {
	if opts.Metrics == (viewport.Metrics{}) {
		opts.Metrics = viewport.DefaultMetrics(800, 600)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	e := &Engine{
		sketch:     document.NewSketch("Untitled"),
		sceneGraph: NewSceneGraph(),
		dirty:      true,
		logger:     opts.Logger,
	}
	e.dispatcher = gesture.NewDispatcher(viewport.NewController(opts.Metrics), e, e.onSignal, gesture.Options{
		LongPressDelay: opts.LongPressDelay,
		Clock:          opts.Clock,
		Post:           opts.Post,
		Logger:         opts.Logger,
	})
	return e
}

// --- Commands (page -> engine) ---

// LoadDocument loads a sketch from JSON.
func (e *Engine) LoadDocument(jsonData string) error {
	var s document.Sketch
	if err := json.Unmarshal([]byte(jsonData), &s); err != nil {
		return fmt.Errorf("%w: %v", document.ErrInvalidGlyph, err)
	}
	if s.Glyphs == nil {
		s.Glyphs = map[string]document.Glyph{}
	}
	if err := s.Validate(); err != nil {
		return err
	}
	e.setSketch(&s)
	return nil
}

// LoadSampleDocument loads the built-in sample sketch.
func (e *Engine) LoadSampleDocument() {
	e.setSketch(document.NewSampleSketch())
}

func (e *Engine) setSketch(s *document.Sketch) {
	for _, id := range e.sketch.Order {
		e.dispatcher.Forget(id)
	}
	e.sketch = s

	ctrl := e.dispatcher.Controller()
	m := ctrl.Metrics()
	if s.Page.Width > 0 && s.Page.Height > 0 {
		m.PageWidth, m.PageHeight = s.Page.Width, s.Page.Height
	}
	ctrl.SetMetrics(m)

	e.selection = nil
	e.dirty = true
	e.logger.Info("sketch loaded", "sketch", s.ID, "glyphs", len(s.Order))
}

// AddGlyph validates params by building the glyph, then adds it on top.
func (e *Engine) AddGlyph(kind document.GlyphKind, params json.RawMessage) (string, error) {
	if _, err := document.ParseKind(string(kind)); err != nil {
		return "", err
	}
	g, err := document.NewGlyph(kind, params)
	if err != nil {
		return "", err
	}
	return g.ID, e.addGlyph(g)
}

func (e *Engine) addGlyph(g document.Glyph) error {
	if _, err := BuildGlyph(g); err != nil {
		return err
	}
	e.sketch.Add(g)
	e.dirty = true
	return nil
}

// RemoveGlyph deletes a glyph and drops it from the selection.
func (e *Engine) RemoveGlyph(id string) error {
	if err := e.sketch.Remove(id); err != nil {
		return err
	}
	e.dispatcher.Forget(id)
	e.selection = slices.DeleteFunc(e.selection, func(s string) bool { return s == id })
	e.dirty = true
	return nil
}

// MoveGlyph translates a glyph by (dx, dy) canvas units.
func (e *Engine) MoveGlyph(id string, dx, dy float64) error {
	if _, err := e.sketch.Move(id, geom.Vec(dx, dy)); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

// SetMode switches the interaction mode.
func (e *Engine) SetMode(cfg viewport.ModeConfig) error {
	if err := e.dispatcher.SetMode(cfg); err != nil {
		return err
	}
	e.logger.Debug("mode set", "mode", cfg.Mode)
	return nil
}

// Resize updates the canvas size.
func (e *Engine) Resize(width, height float64) viewport.State {
	s := e.dispatcher.Controller().Resize(width, height)
	e.emitViewport(s)
	return s
}

// SetViewport replaces the viewport state, clamped to the page.
func (e *Engine) SetViewport(s viewport.State) viewport.State {
	s = e.dispatcher.Controller().SetState(s)
	e.emitViewport(s)
	return s
}

// PointerDown starts a gesture, resolving the glyph under the pointer.
func (e *Engine) PointerDown(ev viewport.PointerEvent) {
	e.dispatcher.Handle(gesture.Event{Kind: gesture.EventPointerDown, Pointer: ev, GlyphID: e.glyphAt(ev)})
}

func (e *Engine) PointerMove(ev viewport.PointerEvent) {
	e.dispatcher.Handle(gesture.Event{Kind: gesture.EventPointerMove, Pointer: ev})
}

func (e *Engine) PointerUp(ev viewport.PointerEvent) {
	e.dispatcher.Handle(gesture.Event{Kind: gesture.EventPointerUp, Pointer: ev})
}

// DoubleClick reports a double click on the glyph under the pointer.
func (e *Engine) DoubleClick(ev viewport.PointerEvent) {
	e.dispatcher.Handle(gesture.Event{Kind: gesture.EventDoubleClick, Pointer: ev, GlyphID: e.glyphAt(ev)})
}

// Wheel zooms around the pointer.
func (e *Engine) Wheel(deltaY float64, at viewport.PointerSample) viewport.State {
	ctrl := e.dispatcher.Controller()
	prev := ctrl.State()
	s := ctrl.Wheel(deltaY, at)
	if s != prev {
		e.emitViewport(s)
	}
	return s
}

// SetSelection replaces the selected glyph ids. Unknown ids are dropped.
func (e *Engine) SetSelection(ids []string) {
	kind := gesture.EventSelectionUpdated
	if len(e.selection) == 0 {
		kind = gesture.EventSelectionCreated
	}
	known := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := e.sketch.Glyphs[id]; ok {
			known = append(known, id)
		}
	}
	e.dispatcher.Handle(gesture.Event{Kind: kind, Selection: known})
}

// HandleEvent processes an event posted back by the dispatcher, such as an
// expired long-press timer.
func (e *Engine) HandleEvent(ev gesture.Event) {
	e.dispatcher.Handle(ev)
}

func (e *Engine) glyphAt(ev viewport.PointerEvent) string {
	s, ok := viewport.Sample(ev)
	if !ok {
		return ""
	}
	return HitTest(e.scene(), e.dispatcher.Controller().State().ScreenToWorld(s))
}

// onSignal applies gestures that edit the sketch before queueing them for the page.
func (e *Engine) onSignal(sig gesture.Signal) {
	switch sig.Kind {
	case gesture.SignalMove:
		if err := e.MoveGlyph(sig.GlyphID, sig.Delta.X, sig.Delta.Y); err != nil {
			e.logger.Warn("move glyph", "glyph", sig.GlyphID, "error", err)
			return
		}
	case gesture.SignalStroke:
		g, err := document.NewGlyph(document.GlyphFreehand, document.FreehandParams{Points: sig.Points, Brush: *sig.Brush})
		if err == nil {
			err = e.addGlyph(g)
		}
		if err != nil {
			e.logger.Warn("add stroke", "error", err)
			return
		}
		sig.GlyphID = g.ID
	case gesture.SignalSelection:
		e.selection = slices.Clone(sig.Selection)
	}
	e.signals = append(e.signals, sig)
}

func (e *Engine) emitViewport(s viewport.State) {
	e.signals = append(e.signals, gesture.Signal{Kind: gesture.SignalViewport, Viewport: &s})
}

// --- Queries (page <- engine) ---

// scene returns the scene graph, rebuilding it if the sketch changed.
func (e *Engine) scene() *SceneGraph {
	if e.dirty {
		e.sceneGraph = BuildSceneGraph(e.sketch)
		for _, err := range e.sceneGraph.Errors {
			e.logger.Warn("glyph skipped", "error", err)
		}
		e.dirty = false
	}
	return e.sceneGraph
}

// GlyphBounds returns the world bounds of a glyph.
func (e *Engine) GlyphBounds(id string) (geom.Rect, bool) {
	n, ok := e.scene().Glyph(id)
	if !ok {
		return geom.Rect{}, false
	}
	return n.Bounds, true
}

// RenderCommands returns the draw commands with the viewport applied.
func (e *Engine) RenderCommands() []DrawCommand {
	return CompileDrawCommands(e.scene(), e.dispatcher.Controller().State().Transform())
}

// Render returns the draw commands as JSON.
func (e *Engine) Render() string {
	result, err := DrawCommandsToJSON(e.RenderCommands())
	if err != nil {
		e.logger.Error("render", "error", err)
	}
	return result
}

// HitTest returns the topmost glyph at the screen position (x, y), or "".
func (e *Engine) HitTest(x, y float64) string {
	return HitTest(e.scene(), e.dispatcher.Controller().State().ScreenToWorld(viewport.PointerSample{X: x, Y: y}))
}

// GetSelectionBounds returns the world bounding box of the current selection.
func (e *Engine) GetSelectionBounds() geom.Rect {
	return GetSelectionBounds(e.scene(), e.selection)
}

// GetSelection returns the selected glyph ids.
func (e *Engine) GetSelection() []string {
	return slices.Clone(e.selection)
}

// GetViewport returns the viewport state.
func (e *Engine) GetViewport() viewport.State {
	return e.dispatcher.Controller().State()
}

// Mode returns the interaction mode.
func (e *Engine) Mode() viewport.Mode {
	return e.dispatcher.Controller().Mode()
}

// Sketch returns the sketch. Callers must not modify it.
func (e *Engine) Sketch() *document.Sketch {
	return e.sketch
}

// GetDocument returns the sketch as JSON.
func (e *Engine) GetDocument() string {
	data, err := json.Marshal(e.sketch)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// DrainSignals returns and clears the signals recognized since the last call.
func (e *Engine) DrainSignals() []gesture.Signal {
	out := e.signals
	e.signals = nil
	return out
}
