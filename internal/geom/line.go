package geom

import "math"

const (
	insideCount       = 10
	insideInterval    = 25.0
	insideMinInterval = 10.0
)

// Lerp returns the point at alpha between v1 and v2.
// alpha is clamped: values <= 0 return v1 and values >= 1 return v2.
func Lerp(v1, v2 Vector, alpha float64) Vector {
	if alpha >= 1 {
		return v2
	}
	if alpha <= 0 {
		return v1
	}
	return v1.Add(v2.Sub(v1).Mul(alpha))
}

// InsidePoints returns evenly spaced interior points from start towards end,
// stepping along direction (expected to be the unit vector start->end).
//
// Up to 10 points are placed with at least 25 units between them. When even a
// single subdivision is too tight, the midpoint is used if half the distance is
// at least 10 units; shorter segments get no points.
func InsidePoints(start, end, direction Vector) []Vector {
	distance := start.Distance(end)

	count := insideCount
	interval := distance / float64(count+1)
	for interval < insideInterval && count > 0 {
		count--
		interval = distance / float64(count+1)
	}

	if count > 0 {
		points := make([]Vector, 0, count)
		for i := 1; i <= count; i++ {
			points = append(points, start.Add(direction.Mul(interval*float64(i))))
		}
		return points
	}

	if distance/2 >= insideMinInterval {
		return []Vector{Lerp(start, end, 0.5)}
	}
	return nil
}

// Line is an infinite line through P1 and P2 in slope/intercept form.
// Slope and Intercept are NaN when the line is vertical.
type Line struct {
	P1, P2    Vector
	Slope     float64
	Intercept float64
}

// NewLine builds the slope/intercept form of the line through p1 and p2.
func NewLine(p1, p2 Vector) Line {
	slope := math.NaN()
	if p2.X-p1.X != 0 {
		slope = (p2.Y - p1.Y) / (p2.X - p1.X)
	}
	intercept := math.NaN()
	if !math.IsNaN(slope) {
		intercept = p1.Y - slope*p1.X
	}
	return Line{P1: p1, P2: p2, Slope: slope, Intercept: intercept}
}

// Vertical reports whether the line is parallel to the Y axis.
func (l Line) Vertical() bool {
	return math.IsNaN(l.Slope)
}

// BoxContains reports whether p lies inside the inclusive bounding box of P1 and P2.
func (l Line) BoxContains(p Vector) bool {
	return p.X >= math.Min(l.P1.X, l.P2.X) && p.X <= math.Max(l.P1.X, l.P2.X) &&
		p.Y >= math.Min(l.P1.Y, l.P2.Y) && p.Y <= math.Max(l.P1.Y, l.P2.Y)
}

// IntersectPoint returns where the line from start along dir crosses target.
//
// The crossing is computed on infinite lines and then accepted only when it lies
// inside the (inclusive) bounding box of target's two points. The box test is what
// limits the result to the target segment; for non axis-aligned targets it is an
// approximation that glyph placement depends on, so it is kept as is. Parallel
// lines, including two vertical ones, never intersect.
func IntersectPoint(target Line, start, dir Vector) (Vector, bool) {
	ray := NewLine(start, start.Add(dir))

	if target.Vertical() && ray.Vertical() {
		return Vector{}, false
	}
	if target.Slope == ray.Slope {
		return Vector{}, false
	}

	var p Vector
	switch {
	case target.Vertical():
		p.X = target.P1.X
		p.Y = p.X*ray.Slope + ray.Intercept
	case ray.Vertical():
		p.X = start.X
		p.Y = p.X*target.Slope + target.Intercept
	default:
		p.X = (ray.Intercept - target.Intercept) / (target.Slope - ray.Slope)
		p.Y = target.Slope*p.X + target.Intercept
	}

	if !p.IsFinite() || !target.BoxContains(p) {
		return Vector{}, false
	}
	return p, true
}
