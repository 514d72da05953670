package viewport

import (
	"errors"
	"testing"
)

func mouse(input InputType, x, y float64) PointerEvent {
	return PointerEvent{Input: input, ClientX: x, ClientY: y}
}

func touch(input InputType, x, y float64) PointerEvent {
	return PointerEvent{Input: input, Touches: []PointerSample{{X: x, Y: y}}}
}

func panController(t *testing.T) *Controller {
	t.Helper()
	c := NewController(DefaultMetrics(800, 600))
	if err := c.SetMode(ModeConfig{Mode: ModePan}); err != nil {
		t.Fatal(err)
	}
	c.SetState(State{OffsetX: -300, OffsetY: -300, Zoom: 1})
	return c
}

func TestControllerPanDrag(t *testing.T) {
	c := panController(t)

	if !c.PointerDown(mouse(InputMouseDown, 100, 100)) {
		t.Fatal("PointerDown() did not arm dragging in pan mode")
	}
	if c.SelectionEnabled() {
		t.Error("selection rectangle still enabled while dragging")
	}

	s, changed := c.PointerMove(mouse(InputMouseMove, 150, 120))
	if !changed || s.OffsetX != -250 || s.OffsetY != -280 {
		t.Errorf("first move = %+v changed=%v, want (-250,-280)", s, changed)
	}
	s, _ = c.PointerMove(mouse(InputMouseMove, 140, 140))
	if s.OffsetX != -260 || s.OffsetY != -260 {
		t.Errorf("second move = %+v, want deltas from the last sample (-260,-260)", s)
	}

	c.PointerUp()
	if c.Dragging() || !c.SelectionEnabled() {
		t.Error("PointerUp() did not end dragging and restore selection")
	}
	if _, changed := c.PointerMove(mouse(InputMouseMove, 500, 500)); changed {
		t.Error("move after release changed the viewport")
	}
}

func TestControllerTouchDrag(t *testing.T) {
	c := panController(t)
	c.PointerDown(touch(InputTouchStart, 10, 10))
	s, _ := c.PointerMove(touch(InputTouchMove, 30, 0))
	if s.OffsetX != -280 || s.OffsetY != -310 {
		t.Errorf("touch move = %+v, want (-280,-310)", s)
	}
}

func TestControllerOnlyPansInPanMode(t *testing.T) {
	for _, m := range []Mode{ModeSelect, ModeDraw} {
		c := NewController(DefaultMetrics(800, 600))
		if err := c.SetMode(ModeConfig{Mode: m}); err != nil {
			t.Fatal(err)
		}
		before := c.State()
		if c.PointerDown(mouse(InputMouseDown, 0, 0)) {
			t.Errorf("%s: PointerDown() armed dragging", m)
		}
		if s, changed := c.PointerMove(mouse(InputMouseMove, -100, -100)); changed || s != before {
			t.Errorf("%s: PointerMove() changed viewport to %+v", m, s)
		}
	}
}

func TestControllerLeavingPanStopsDrag(t *testing.T) {
	c := panController(t)
	c.PointerDown(mouse(InputMouseDown, 0, 0))
	if err := c.SetMode(ModeConfig{Mode: ModeSelect}); err != nil {
		t.Fatal(err)
	}
	if c.Dragging() {
		t.Error("dragging survived a switch to select mode")
	}
}

func TestControllerSetModeBrush(t *testing.T) {
	c := NewController(DefaultMetrics(800, 600))
	if err := c.SetMode(ModeConfig{Mode: ModeDraw, StrokeWidth: 12, StrokeColor: "#ff0000"}); err != nil {
		t.Fatalf("SetMode() error = %v", err)
	}
	if !c.DrawingMode() || c.Brush() != (Brush{Width: 12, Color: "#ff0000"}) {
		t.Errorf("mode=%s brush=%+v", c.Mode(), c.Brush())
	}

	tests := []struct {
		name string
		cfg  ModeConfig
		want error
	}{
		{"unknown mode", ModeConfig{Mode: "zoom"}, ErrInvalidMode},
		{"width too large", ModeConfig{Mode: ModeDraw, StrokeWidth: 61}, ErrInvalidBrush},
		{"width too small", ModeConfig{Mode: ModeDraw, StrokeWidth: 0.5}, ErrInvalidBrush},
		{"bad color", ModeConfig{Mode: ModeDraw, StrokeColor: "#12"}, ErrInvalidBrush},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.SetMode(tt.cfg); !errors.Is(err, tt.want) {
				t.Errorf("SetMode() error = %v, want %v", err, tt.want)
			}
			if c.Mode() != ModeDraw || c.Brush().Width != 12 {
				t.Error("failed SetMode() changed controller state")
			}
		})
	}
}

func TestControllerResizeReclamps(t *testing.T) {
	c := NewController(DefaultMetrics(800, 600))
	c.SetState(State{OffsetX: -2170, OffsetY: -1500, Zoom: 1})
	s := c.Resize(1600, 1200)
	if s.OffsetX != 1600-2970 || s.OffsetY != 1200-2100 {
		t.Errorf("Resize() = %+v, want far edges re-clamped", s)
	}
}

func TestControllerWheel(t *testing.T) {
	c := NewController(DefaultMetrics(800, 600))
	if s := c.Wheel(-1, PointerSample{X: 0, Y: 0}); s.Zoom <= 1 {
		t.Errorf("wheel up zoom = %v, want > 1", s.Zoom)
	}
	if s := c.Wheel(0, PointerSample{}); s.Zoom <= 1 {
		t.Errorf("zero delta changed zoom to %v", s.Zoom)
	}
}

func TestControllerSetMetrics(t *testing.T) {
	c := NewController(DefaultMetrics(800, 600))
	c.SetState(State{OffsetX: -2000, OffsetY: -1000, Zoom: 1})

	s := c.SetMetrics(Metrics{CanvasWidth: 800, CanvasHeight: 600, PageWidth: 1000, PageHeight: 500})
	if s.OffsetX != -200 || s.OffsetY != 50 {
		t.Errorf("state = %+v, want offset (-200, 50)", s)
	}
	if c.Metrics().PageWidth != 1000 {
		t.Errorf("metrics not stored: %+v", c.Metrics())
	}
}
