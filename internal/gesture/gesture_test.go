package gesture

import (
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/structsketch/structsketch/backend-go/internal/geom"
	"github.com/structsketch/structsketch/backend-go/internal/viewport"
)

type fakeTimer struct {
	at   time.Duration
	f    func()
	done bool
}

func (t *fakeTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

// fakeClock runs due callbacks synchronously from Advance.
type fakeClock struct {
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now += d
	sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].at < c.timers[j].at })
	for _, t := range c.timers {
		if !t.done && t.at <= c.now {
			t.done = true
			t.f()
		}
	}
}

type boundsMap map[string]geom.Rect

func (m boundsMap) GlyphBounds(id string) (geom.Rect, bool) {
	r, ok := m[id]
	return r, ok
}

type harness struct {
	clock   *fakeClock
	glyphs  boundsMap
	signals []Signal
	d       *Dispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:  &fakeClock{},
		glyphs: boundsMap{"g1": {X: 10, Y: 10, Width: 20, Height: 20}},
	}
	ctrl := viewport.NewController(viewport.DefaultMetrics(800, 600))
	h.d = NewDispatcher(ctrl, h.glyphs, func(s Signal) { h.signals = append(h.signals, s) }, Options{
		Clock:  h.clock,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return h
}

func (h *harness) kinds() []SignalKind {
	out := make([]SignalKind, len(h.signals))
	for i, s := range h.signals {
		out[i] = s.Kind
	}
	return out
}

func down(glyph string, x, y float64) Event {
	return Event{
		Kind:    EventPointerDown,
		GlyphID: glyph,
		Pointer: viewport.PointerEvent{Input: viewport.InputMouseDown, ClientX: x, ClientY: y},
	}
}

func move(x, y float64) Event {
	return Event{Kind: EventPointerMove, Pointer: viewport.PointerEvent{Input: viewport.InputMouseMove, ClientX: x, ClientY: y}}
}

func up() Event {
	return Event{Kind: EventPointerUp, Pointer: viewport.PointerEvent{Input: viewport.InputMouseUp}}
}

func TestLongPressFires(t *testing.T) {
	h := newHarness(t)
	h.d.Handle(down("g1", 15, 15))

	h.clock.Advance(999 * time.Millisecond)
	if len(h.signals) != 0 {
		t.Fatalf("signal before delay: %v", h.kinds())
	}
	h.clock.Advance(time.Millisecond)
	if len(h.signals) != 1 || h.signals[0].Kind != SignalLongPress || h.signals[0].GlyphID != "g1" {
		t.Fatalf("signals = %+v, want one long press on g1", h.signals)
	}
	if got := h.d.Tracker().State("g1"); got != PressFired {
		t.Errorf("state = %v, want fired", got)
	}
}

func TestLongPressCancelledByRelease(t *testing.T) {
	h := newHarness(t)
	h.d.Handle(down("g1", 15, 15))
	h.clock.Advance(500 * time.Millisecond)
	h.d.Handle(up())
	h.clock.Advance(time.Second)

	if len(h.signals) != 0 {
		t.Errorf("signals = %v, want none", h.kinds())
	}
	if got := h.d.Tracker().State("g1"); got != PressCancelled {
		t.Errorf("state = %v, want cancelled", got)
	}
	if n := h.d.Tracker().Pending(); n != 0 {
		t.Errorf("Pending() = %d, want 0", n)
	}
}

func TestLongPressSupersededPress(t *testing.T) {
	h := newHarness(t)
	h.d.Handle(down("g1", 15, 15))
	h.clock.Advance(600 * time.Millisecond)
	h.d.Handle(up())
	h.d.Handle(down("g1", 15, 15))

	// The first press would have expired here.
	h.clock.Advance(600 * time.Millisecond)
	if len(h.signals) != 0 {
		t.Fatalf("stale press fired: %v", h.kinds())
	}
	h.clock.Advance(400 * time.Millisecond)
	if len(h.signals) != 1 || h.signals[0].Kind != SignalLongPress {
		t.Fatalf("signals = %v, want one long press", h.kinds())
	}
}

func TestLongPressMovedGlyphDoesNotFire(t *testing.T) {
	h := newHarness(t)
	h.d.Handle(down("g1", 15, 15))
	h.glyphs["g1"] = geom.Rect{X: 40, Y: 10, Width: 20, Height: 20}
	h.clock.Advance(time.Second)

	if len(h.signals) != 0 {
		t.Errorf("signals = %v, want none", h.kinds())
	}
	if got := h.d.Tracker().State("g1"); got != PressCancelled {
		t.Errorf("state = %v, want cancelled", got)
	}
}

func TestLongPressRemovedGlyphDoesNotFire(t *testing.T) {
	h := newHarness(t)
	h.d.Handle(down("g1", 15, 15))
	delete(h.glyphs, "g1")
	h.clock.Advance(time.Second)
	if len(h.signals) != 0 {
		t.Errorf("signals = %v, want none", h.kinds())
	}
}

func TestTrackerTokens(t *testing.T) {
	clock := &fakeClock{}
	var fired []uint64
	tr := NewTracker(clock, 0, func(_ string, token uint64) { fired = append(fired, token) })
	r := geom.Rect{Width: 1, Height: 1}

	first := tr.Press("a", r)
	second := tr.Press("a", r)
	if first == second {
		t.Fatal("Press() reused a token")
	}
	if tr.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", tr.Pending())
	}
	if tr.Fire("a", first, r, true) {
		t.Error("Fire() accepted a superseded token")
	}
	if !tr.Fire("a", second, r, true) {
		t.Error("Fire() rejected the current token")
	}
	if tr.Fire("a", second, r, true) {
		t.Error("Fire() fired twice")
	}

	clock.Advance(DefaultLongPressDelay)
	if len(fired) != 1 || fired[0] != second {
		t.Errorf("timer callbacks = %v, want only %d", fired, second)
	}

	tr.Forget("a")
	if got := tr.State("a"); got != PressIdle {
		t.Errorf("State() after Forget = %v, want idle", got)
	}
}

func TestSelectDragEmitsMove(t *testing.T) {
	h := newHarness(t)
	h.d.Handle(down("g1", 15, 15))
	h.d.Handle(move(25, 18))
	h.d.Handle(move(25, 18))
	h.d.Handle(up())

	if len(h.signals) != 1 || h.signals[0].Kind != SignalMove {
		t.Fatalf("signals = %v, want one move", h.kinds())
	}
	if d := *h.signals[0].Delta; d != geom.Vec(10, 3) {
		t.Errorf("delta = %+v, want (10,3)", d)
	}
}

func TestSelectOnBareCanvasIgnored(t *testing.T) {
	h := newHarness(t)
	h.d.Handle(down("", 15, 15))
	h.d.Handle(move(30, 30))
	h.clock.Advance(2 * time.Second)
	if len(h.signals) != 0 {
		t.Errorf("signals = %v, want none", h.kinds())
	}
}

func TestPanModeEmitsViewport(t *testing.T) {
	h := newHarness(t)
	if err := h.d.SetMode(viewport.ModeConfig{Mode: viewport.ModePan}); err != nil {
		t.Fatal(err)
	}
	h.d.Handle(down("g1", 100, 100))
	h.d.Handle(move(80, 90))
	h.d.Handle(up())
	h.clock.Advance(2 * time.Second)

	if len(h.signals) != 1 || h.signals[0].Kind != SignalViewport {
		t.Fatalf("signals = %v, want one viewport", h.kinds())
	}
	if v := h.signals[0].Viewport; v.OffsetX != -20 || v.OffsetY != -10 {
		t.Errorf("viewport = %+v, want offset (-20,-10)", *v)
	}
	if !h.d.Controller().SelectionEnabled() {
		t.Error("selection not restored after pointer up")
	}
}

func TestDrawModeEmitsStroke(t *testing.T) {
	h := newHarness(t)
	err := h.d.SetMode(viewport.ModeConfig{Mode: viewport.ModeDraw, StrokeWidth: 5, StrokeColor: "#ff0000"})
	if err != nil {
		t.Fatal(err)
	}
	h.d.Handle(down("g1", 0, 0))
	h.d.Handle(move(10, 0))
	h.d.Handle(move(10, 0))
	h.d.Handle(move(10, 10))
	h.d.Handle(up())
	h.clock.Advance(2 * time.Second)

	if len(h.signals) != 1 || h.signals[0].Kind != SignalStroke {
		t.Fatalf("signals = %v, want one stroke", h.kinds())
	}
	s := h.signals[0]
	want := []geom.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	if len(s.Points) != len(want) {
		t.Fatalf("points = %v, want %v", s.Points, want)
	}
	for i := range want {
		if s.Points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, s.Points[i], want[i])
		}
	}
	if s.Brush.Width != 5 || s.Brush.Color != "#ff0000" {
		t.Errorf("brush = %+v", *s.Brush)
	}
}

func TestDrawModeClickWithoutMoveIsNotStroke(t *testing.T) {
	h := newHarness(t)
	if err := h.d.SetMode(viewport.ModeConfig{Mode: viewport.ModeDraw}); err != nil {
		t.Fatal(err)
	}
	h.d.Handle(down("", 5, 5))
	h.d.Handle(up())
	if len(h.signals) != 0 {
		t.Errorf("signals = %v, want none", h.kinds())
	}
}

func TestPassThroughEvents(t *testing.T) {
	h := newHarness(t)
	h.d.Handle(Event{Kind: EventDoubleClick, GlyphID: "g1"})
	h.d.Handle(Event{Kind: EventSelectionCreated, Selection: []string{"g1"}})
	h.d.Handle(Event{Kind: EventSelectionUpdated, Selection: []string{"g1", "g2"}})
	h.d.Handle(Event{Kind: "bogus"})

	want := []SignalKind{SignalDoubleClick, SignalSelection, SignalSelection}
	got := h.kinds()
	if len(got) != len(want) {
		t.Fatalf("signals = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("signal %d = %v, want %v", i, got[i], want[i])
		}
	}
	if h.signals[0].GlyphID != "g1" || len(h.signals[2].Selection) != 2 {
		t.Errorf("payloads not passed through: %+v", h.signals)
	}
}

func TestSetModeAbandonsPress(t *testing.T) {
	h := newHarness(t)
	h.d.Handle(down("g1", 15, 15))
	if err := h.d.SetMode(viewport.ModeConfig{Mode: viewport.ModePan}); err != nil {
		t.Fatal(err)
	}
	h.clock.Advance(time.Second)
	if len(h.signals) != 0 {
		t.Errorf("signals = %v, want none", h.kinds())
	}
	if err := h.d.SetMode(viewport.ModeConfig{Mode: "zoom"}); err == nil {
		t.Error("SetMode(zoom) succeeded")
	}
}
