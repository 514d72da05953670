package gesture

import (
	"log/slog"
	"time"

	"github.com/structsketch/structsketch/backend-go/internal/geom"
	"github.com/structsketch/structsketch/backend-go/internal/viewport"
)

// EventKind discriminates the events fed to a Dispatcher.
type EventKind string

const (
	EventPointerDown      EventKind = "pointer.down"
	EventPointerMove      EventKind = "pointer.move"
	EventPointerUp        EventKind = "pointer.up"
	EventSelectionCreated EventKind = "selection.created"
	EventSelectionUpdated EventKind = "selection.updated"
	EventDoubleClick      EventKind = "dblclick"
	EventLongPressTimer   EventKind = "longpress.timer"
)

// Event is one input for the dispatcher. GlyphID names the glyph under the
// pointer (empty over bare canvas) and Selection the selected glyph ids.
type Event struct {
	Kind      EventKind             `json:"kind"`
	Pointer   viewport.PointerEvent `json:"pointer"`
	GlyphID   string                `json:"glyphId,omitempty"`
	Selection []string              `json:"selection,omitempty"`

	token uint64
}

// SignalKind discriminates the outputs of a Dispatcher.
type SignalKind string

const (
	SignalViewport    SignalKind = "viewport"
	SignalLongPress   SignalKind = "longpress"
	SignalDoubleClick SignalKind = "dblclick"
	SignalSelection   SignalKind = "selection"
	SignalMove        SignalKind = "move"
	SignalStroke      SignalKind = "stroke"
)

// Signal is a recognized gesture.
type Signal struct {
	Kind      SignalKind      `json:"kind"`
	GlyphID   string          `json:"glyphId,omitempty"`
	Viewport  *viewport.State `json:"viewport,omitempty"`
	Selection []string        `json:"selection,omitempty"`
	Delta     *geom.Vector    `json:"delta,omitempty"`
	Points    []geom.Vector   `json:"points,omitempty"`
	Brush     *viewport.Brush `json:"brush,omitempty"`
}

// Locator resolves the current bounds of a glyph.
type Locator interface {
	GlyphBounds(id string) (geom.Rect, bool)
}

// Options configures a Dispatcher. Post delivers long-press timer events back
// to the goroutine that owns the dispatcher; when nil they are handled directly
// on the timer goroutine, which is only safe for single-threaded hosts.
type Options struct {
	LongPressDelay time.Duration
	Clock          Clock
	Post           func(Event)
	Logger         *slog.Logger
}

// Dispatcher turns pointer streams into gestures according to the current mode.
// Pan mode drags the viewport, select mode tracks long presses and glyph drags,
// draw mode collects free-hand strokes. It is not safe for concurrent use.
type Dispatcher struct {
	ctrl    *viewport.Controller
	presses *Tracker
	locate  Locator
	emit    func(Signal)
	post    func(Event)
	logger  *slog.Logger

	active string
	last   geom.Vector
	stroke []geom.Vector
}

// NewDispatcher wires a dispatcher around ctrl. emit receives every signal.
func NewDispatcher(ctrl *viewport.Controller, locate Locator, emit func(Signal), opts Options) *Dispatcher {
	d := &Dispatcher{
		ctrl:   ctrl,
		locate: locate,
		emit:   emit,
		post:   opts.Post,
		logger: opts.Logger,
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.post == nil {
		d.post = d.Handle
	}
	d.presses = NewTracker(opts.Clock, opts.LongPressDelay, func(id string, token uint64) {
		d.post(Event{Kind: EventLongPressTimer, GlyphID: id, token: token})
	})
	return d
}

// Controller returns the viewport controller driven by the dispatcher.
func (d *Dispatcher) Controller() *viewport.Controller { return d.ctrl }

// Tracker returns the long-press tracker.
func (d *Dispatcher) Tracker() *Tracker { return d.presses }

// SetMode switches mode, abandoning any gesture in progress.
func (d *Dispatcher) SetMode(cfg viewport.ModeConfig) error {
	if err := d.ctrl.SetMode(cfg); err != nil {
		return err
	}
	d.reset()
	return nil
}

// Forget drops long-press state for a removed glyph.
func (d *Dispatcher) Forget(glyphID string) {
	d.presses.Forget(glyphID)
	if d.active == glyphID {
		d.active = ""
	}
}

func (d *Dispatcher) reset() {
	d.presses.ReleaseAll()
	d.active = ""
	d.stroke = nil
}

// Handle processes one event.
func (d *Dispatcher) Handle(ev Event) {
	switch ev.Kind {
	case EventPointerDown:
		d.pointerDown(ev)
	case EventPointerMove:
		d.pointerMove(ev)
	case EventPointerUp:
		d.pointerUp()
	case EventLongPressTimer:
		d.longPress(ev)
	case EventDoubleClick:
		d.logger.Info("double click", "glyph", ev.GlyphID)
		d.emit(Signal{Kind: SignalDoubleClick, GlyphID: ev.GlyphID})
	case EventSelectionCreated, EventSelectionUpdated:
		d.logger.Info("selection", "event", ev.Kind, "glyphs", ev.Selection)
		d.emit(Signal{Kind: SignalSelection, Selection: ev.Selection})
	default:
		d.logger.Warn("unknown gesture event", "kind", ev.Kind)
	}
}

func (d *Dispatcher) world(ev viewport.PointerEvent) (geom.Vector, bool) {
	s, ok := viewport.Sample(ev)
	if !ok {
		return geom.Vector{}, false
	}
	return d.ctrl.State().ScreenToWorld(s), true
}

func (d *Dispatcher) pointerDown(ev Event) {
	switch d.ctrl.Mode() {
	case viewport.ModePan:
		d.ctrl.PointerDown(ev.Pointer)
	case viewport.ModeDraw:
		if p, ok := d.world(ev.Pointer); ok {
			d.stroke = []geom.Vector{p}
		}
	case viewport.ModeSelect:
		if ev.GlyphID == "" {
			return
		}
		p, ok := d.world(ev.Pointer)
		if !ok {
			return
		}
		bounds, found := d.locate.GlyphBounds(ev.GlyphID)
		if !found {
			return
		}
		d.presses.Press(ev.GlyphID, bounds)
		d.active = ev.GlyphID
		d.last = p
	}
}

func (d *Dispatcher) pointerMove(ev Event) {
	switch d.ctrl.Mode() {
	case viewport.ModePan:
		if s, changed := d.ctrl.PointerMove(ev.Pointer); changed {
			d.emit(Signal{Kind: SignalViewport, Viewport: &s})
		}
	case viewport.ModeDraw:
		if d.stroke == nil {
			return
		}
		if p, ok := d.world(ev.Pointer); ok && p != d.stroke[len(d.stroke)-1] {
			d.stroke = append(d.stroke, p)
		}
	case viewport.ModeSelect:
		if d.active == "" {
			return
		}
		p, ok := d.world(ev.Pointer)
		if !ok || p == d.last {
			return
		}
		delta := p.Sub(d.last)
		d.last = p
		d.emit(Signal{Kind: SignalMove, GlyphID: d.active, Delta: &delta})
	}
}

func (d *Dispatcher) pointerUp() {
	d.ctrl.PointerUp()
	if len(d.stroke) >= 2 {
		brush := d.ctrl.Brush()
		d.emit(Signal{Kind: SignalStroke, Points: d.stroke, Brush: &brush})
	}
	d.reset()
}

func (d *Dispatcher) longPress(ev Event) {
	bounds, found := d.locate.GlyphBounds(ev.GlyphID)
	if !d.presses.Fire(ev.GlyphID, ev.token, bounds, found) {
		d.logger.Debug("long press dropped", "glyph", ev.GlyphID, "state", d.presses.State(ev.GlyphID))
		return
	}
	d.logger.Info("long press", "glyph", ev.GlyphID)
	d.emit(Signal{Kind: SignalLongPress, GlyphID: ev.GlyphID})
}
