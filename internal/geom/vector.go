package geom

import (
	"errors"
	"math"
)

// ErrDegenerateVector is returned when a direction is required from a zero-length vector,
// e.g. when the two endpoints of a beam or arrow coincide.
var ErrDegenerateVector = errors.New("degenerate vector")

// Vector is a 2D vector in canvas units (Y grows downwards on screen).
// Vectors are values: every operation returns a new Vector.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var (
	// AxisX is the unit vector along +X.
	AxisX = Vector{X: 1, Y: 0}
	// AxisY is the unit vector along +Y.
	AxisY = Vector{X: 0, Y: 1}
)

// Vec is shorthand for Vector{X: x, Y: y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	return v
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul multiplies both components by s.
func (v Vector) Mul(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Invert flips the direction of v.
func (v Vector) Invert() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vector) Distance(o Vector) float64 {
	return v.Sub(o).Length()
}

// Normalize returns the unit vector of v, or ErrDegenerateVector if v has zero length.
func (v Vector) Normalize() (Vector, error) {
	l := v.Length()
	if l == 0 || math.IsNaN(l) {
		return Vector{}, ErrDegenerateVector
	}
	return Vector{X: v.X / l, Y: v.Y / l}, nil
}

// RotateDeg rotates v by deg degrees: (x cos - y sin, x sin + y cos).
func (v Vector) RotateDeg(deg float64) Vector {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return Vector{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// AngleDeg is the angle of v from the +X axis in degrees, in (-180, 180].
func (v Vector) AngleDeg() float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// VerticalAngleDeg is the angle of v from the +Y axis in degrees.
// AngleDeg()+VerticalAngleDeg() is always 90 modulo 360.
func (v Vector) VerticalAngleDeg() float64 {
	return math.Atan2(v.X, v.Y) * 180 / math.Pi
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Direction returns the unit vector pointing from a to b.
func Direction(a, b Vector) (Vector, error) {
	return b.Sub(a).Normalize()
}

// VerticalNormalize returns the unit vector perpendicular to b-a, oriented so that
// its dot product with AxisY is <= 0.
func VerticalNormalize(a, b Vector) (Vector, error) {
	dir, err := Direction(a, b)
	if err != nil {
		return Vector{}, err
	}
	v := Vector{X: dir.Y, Y: -dir.X}
	if AxisY.Dot(v) > 0 {
		v = v.Invert()
	}
	return v, nil
}
