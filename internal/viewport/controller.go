package viewport

// wheelZoomFactor is the zoom step of one wheel notch.
const wheelZoomFactor = 1.1

// Controller owns the viewport of one drawing surface. It is not safe for
// concurrent use; the owner must feed it events one at a time.
type Controller struct {
	mode    Mode
	brush   Brush
	metrics Metrics
	state   State

	dragging  bool
	last      PointerSample
	selection bool // selection rectangle enabled
}

// NewController returns a controller in select mode with the default pen.
func NewController(m Metrics) *Controller {
	return &Controller{
		mode:      ModeSelect,
		brush:     DefaultBrush(),
		metrics:   m,
		state:     Clamp(Initial(), m),
		selection: true,
	}
}

func (c *Controller) Mode() Mode       { return c.mode }
func (c *Controller) Brush() Brush     { return c.brush }
func (c *Controller) State() State     { return c.state }
func (c *Controller) Metrics() Metrics { return c.metrics }
func (c *Controller) Dragging() bool   { return c.dragging }

// SelectionEnabled reports whether the selection rectangle is active.
func (c *Controller) SelectionEnabled() bool { return c.selection }

// DrawingMode reports whether pointer streams are free-draw strokes.
func (c *Controller) DrawingMode() bool { return c.mode == ModeDraw }

// SetMode switches the interaction mode and updates the pen.
func (c *Controller) SetMode(cfg ModeConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Mode != ModePan {
		c.dragging = false
	}
	c.mode = cfg.Mode
	if cfg.StrokeWidth != 0 {
		c.brush.Width = cfg.StrokeWidth
	}
	if cfg.StrokeColor != "" {
		c.brush.Color = cfg.StrokeColor
	}
	return nil
}

// Resize updates the canvas size and re-clamps the viewport.
func (c *Controller) Resize(width, height float64) State {
	c.metrics.CanvasWidth = width
	c.metrics.CanvasHeight = height
	c.state = Clamp(c.state, c.metrics)
	return c.state
}

// SetMetrics replaces the canvas and page sizes and re-clamps the viewport.
func (c *Controller) SetMetrics(m Metrics) State {
	c.metrics = m
	c.state = Clamp(c.state, c.metrics)
	return c.state
}

// SetState replaces the viewport state, clamped to the page.
func (c *Controller) SetState(s State) State {
	if s.Zoom <= 0 {
		s.Zoom = 1
	}
	c.state = Clamp(s, c.metrics)
	return c.state
}

// PointerDown arms dragging in pan mode and reports whether it did.
func (c *Controller) PointerDown(ev PointerEvent) bool {
	if c.mode != ModePan {
		return false
	}
	s, ok := Sample(ev)
	if !ok {
		return false
	}
	c.selection = false
	c.dragging = true
	c.last = s
	return true
}

// PointerMove pans by the distance from the last sample while dragging.
// changed is false when the event did not move the viewport.
func (c *Controller) PointerMove(ev PointerEvent) (s State, changed bool) {
	if !c.dragging {
		return c.state, false
	}
	p, ok := Sample(ev)
	if !ok {
		return c.state, false
	}
	prev := c.state
	c.state = Pan(c.state, p.X-c.last.X, p.Y-c.last.Y, c.metrics)
	c.last = p
	return c.state, c.state != prev
}

// PointerUp ends any drag and re-enables the selection rectangle.
func (c *Controller) PointerUp() State {
	c.dragging = false
	c.selection = true
	return c.state
}

// Wheel zooms around the pointer: negative deltaY zooms in.
func (c *Controller) Wheel(deltaY float64, at PointerSample) State {
	switch {
	case deltaY < 0:
		c.state = ZoomAt(c.state, wheelZoomFactor, at, c.metrics)
	case deltaY > 0:
		c.state = ZoomAt(c.state, 1/wheelZoomFactor, at, c.metrics)
	}
	return c.state
}
