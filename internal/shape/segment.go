package shape

import (
	"errors"
	"fmt"

	"github.com/structsketch/structsketch/backend-go/internal/geom"
)

var (
	// ErrInvalidParameters reports a malformed factory call.
	ErrInvalidParameters = errors.New("invalid parameters")
	// ErrConfiguration reports out-of-domain load parameters.
	ErrConfiguration = errors.New("invalid configuration")
)

// Form selects which fields of a SegmentInput are populated.
type Form string

const (
	FormPoints  Form = "points"
	FormVectors Form = "vectors"
)

// SegmentInput describes a segment either as a flat [x1, y1, x2, y2] array or as
// two vectors. Form decides which one is read.
type SegmentInput struct {
	Form   Form         `json:"form"`
	Points [4]float64   `json:"points,omitempty"`
	I      *geom.Vector `json:"i,omitempty"`
	J      *geom.Vector `json:"j,omitempty"`
}

// Segment is an ordered pair of endpoints.
type Segment struct {
	Start geom.Vector `json:"start"`
	End   geom.Vector `json:"end"`
}

// Points builds a points-form input.
func Points(x1, y1, x2, y2 float64) SegmentInput {
	return SegmentInput{Form: FormPoints, Points: [4]float64{x1, y1, x2, y2}}
}

// Vectors builds a vector-form input.
func Vectors(i, j geom.Vector) SegmentInput {
	return SegmentInput{Form: FormVectors, I: &i, J: &j}
}

// Resolve returns the segment described by in.
func (in SegmentInput) Resolve() (Segment, error) {
	var seg Segment
	switch in.Form {
	case FormPoints:
		seg = Segment{
			Start: geom.Vec(in.Points[0], in.Points[1]),
			End:   geom.Vec(in.Points[2], in.Points[3]),
		}
	case FormVectors:
		if in.I == nil || in.J == nil {
			return Segment{}, fmt.Errorf("%w: vector form needs both i and j", ErrInvalidParameters)
		}
		seg = Segment{Start: *in.I, End: *in.J}
	default:
		return Segment{}, fmt.Errorf("%w: unknown segment form %q", ErrInvalidParameters, in.Form)
	}
	if !seg.Start.IsFinite() || !seg.End.IsFinite() {
		return Segment{}, fmt.Errorf("%w: segment coordinates must be finite", ErrInvalidParameters)
	}
	return seg, nil
}

// Translate returns the input moved by d, keeping its form.
func (in SegmentInput) Translate(d geom.Vector) SegmentInput {
	out := in
	switch in.Form {
	case FormPoints:
		out.Points = [4]float64{in.Points[0] + d.X, in.Points[1] + d.Y, in.Points[2] + d.X, in.Points[3] + d.Y}
	case FormVectors:
		if in.I != nil {
			i := in.I.Add(d)
			out.I = &i
		}
		if in.J != nil {
			j := in.J.Add(d)
			out.J = &j
		}
	}
	return out
}

// Direction returns the unit vector from Start to End.
func (s Segment) Direction() (geom.Vector, error) {
	return geom.Direction(s.Start, s.End)
}

func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}
