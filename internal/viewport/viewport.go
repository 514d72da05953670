package viewport

import (
	"github.com/structsketch/structsketch/backend-go/internal/geom"
)

const (
	// MaxPageWidth and MaxPageHeight are an A4 landscape page in canvas units.
	MaxPageWidth  = 2970.0
	MaxPageHeight = 2100.0

	MinZoom = 0.1
	MaxZoom = 10.0
)

// State is the viewport translation and zoom.
type State struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Zoom    float64 `json:"zoom"`
}

// Metrics are the canvas size in pixels and the page size in canvas units.
type Metrics struct {
	CanvasWidth  float64 `json:"canvasWidth"`
	CanvasHeight float64 `json:"canvasHeight"`
	PageWidth    float64 `json:"pageWidth"`
	PageHeight   float64 `json:"pageHeight"`
}

// DefaultMetrics returns metrics for the default page on a canvas of the given size.
func DefaultMetrics(canvasWidth, canvasHeight float64) Metrics {
	return Metrics{
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
		PageWidth:    MaxPageWidth,
		PageHeight:   MaxPageHeight,
	}
}

// Initial returns an unpanned viewport at zoom 1.
func Initial() State {
	return State{Zoom: 1}
}

// Transform returns the viewport transform [zoom, 0, 0, zoom, offsetX, offsetY].
func (s State) Transform() geom.Matrix2D {
	return geom.Matrix2D{s.Zoom, 0, 0, s.Zoom, s.OffsetX, s.OffsetY}
}

// ScreenToWorld maps a client position to canvas units.
func (s State) ScreenToWorld(p PointerSample) geom.Vector {
	return s.Transform().Invert().Apply(geom.Vec(p.X, p.Y))
}

// clampAxis keeps one axis of the page in view. A page that fits is centered;
// a larger page may not leave a gap at either edge.
func clampAxis(offset, canvas, page, zoom float64) float64 {
	scaled := page * zoom
	if scaled <= canvas {
		return (canvas - scaled) / 2
	}
	if offset > 0 {
		return 0
	}
	if low := canvas - scaled; offset < low {
		return low
	}
	return offset
}

// Clamp applies the per-axis page constraints to s.
func Clamp(s State, m Metrics) State {
	s.OffsetX = clampAxis(s.OffsetX, m.CanvasWidth, m.PageWidth, s.Zoom)
	s.OffsetY = clampAxis(s.OffsetY, m.CanvasHeight, m.PageHeight, s.Zoom)
	return s
}

// Pan moves the viewport by a raw pointer delta and clamps the result.
func Pan(s State, dx, dy float64, m Metrics) State {
	s.OffsetX += dx
	s.OffsetY += dy
	return Clamp(s, m)
}

// ZoomAt scales the viewport by factor keeping the canvas point under pivot
// fixed, then clamps zoom and offsets.
func ZoomAt(s State, factor float64, pivot PointerSample, m Metrics) State {
	if factor <= 0 {
		return Clamp(s, m)
	}
	world := s.ScreenToWorld(pivot)

	s.Zoom *= factor
	if s.Zoom < MinZoom {
		s.Zoom = MinZoom
	}
	if s.Zoom > MaxZoom {
		s.Zoom = MaxZoom
	}

	s.OffsetX = pivot.X - world.X*s.Zoom
	s.OffsetY = pivot.Y - world.Y*s.Zoom
	return Clamp(s, m)
}
