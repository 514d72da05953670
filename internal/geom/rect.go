package geom

import "math"

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromPoints returns the smallest rect containing every point.
func RectFromPoints(points ...Vector) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Contains checks if a point is inside the rect, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsZero reports the zero Rect, which is used as "no bounds".
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Union returns the smallest rect containing both rects.
// Zero rects are ignored; degenerate ones (a horizontal line) are kept.
func (r Rect) Union(other Rect) Rect {
	if r.IsZero() {
		return other
	}
	if other.IsZero() {
		return r
	}
	return RectFromPoints(
		Vec(r.X, r.Y), Vec(r.X+r.Width, r.Y+r.Height),
		Vec(other.X, other.Y), Vec(other.X+other.Width, other.Y+other.Height),
	)
}

// Inflate grows the rect by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Center returns the center point of the rect.
func (r Rect) Center() Vector {
	return Vec(r.X+r.Width/2, r.Y+r.Height/2)
}
