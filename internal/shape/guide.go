package shape

import (
	"fmt"
	"math"

	"github.com/structsketch/structsketch/backend-go/internal/geom"
)

const (
	guideEdgeSize   = 8.0
	guideTickHeight = 14.0
	guideColor      = "silver"
	guideLabelGap   = 5.0
	guideFontSize   = 10.0
)

// GuideLine builds a dimension line |<-->| between two points with a label
// reading the rounded distance in meters.
//
// Endpoints are ordered left to right (lower y first on a tie) so the result
// does not depend on input order.
func GuideLine(in SegmentInput) (*Group, error) {
	seg, err := in.Resolve()
	if err != nil {
		return nil, err
	}

	v1, v2 := seg.Start, seg.End
	if v1.X > v2.X || (v1.X == v2.X && v1.Y > v2.Y) {
		v1, v2 = v2, v1
	}

	dir, err := geom.Direction(v1, v2)
	if err != nil {
		return nil, fmt.Errorf("guide line: %w", err)
	}
	distance := v1.Distance(v2)
	angle := dir.AngleDeg()

	// Local frame: x along the line from v1, y across it.
	local := geom.Translate(v1.X, v1.Y).Multiply(geom.RotateDegrees(angle))
	at := func(x, y float64) geom.Vector { return local.Apply(geom.Vec(x, y)) }

	lineStyle := guideStyle()
	lineStyle.Stroke = guideColor
	lineStyle.StrokeWidth = 1

	edgeStyle := lineStyle
	edgeStyle.Fill = guideColor

	half := guideTickHeight / 2
	e := guideEdgeSize
	guide := &Group{
		Children: []Primitive{
			&Line{P1: at(0, -half), P2: at(0, half), Style: lineStyle},
			&Polygon{
				Vertices: []geom.Vector{at(0, 0), at(e, e/2), at(e, -e/2)},
				Origin:   at(e/2, 0),
				Angle:    angle - 90,
				Style:    edgeStyle,
			},
			&Line{P1: at(0, 0), P2: at(distance, 0), Style: lineStyle},
			&Polygon{
				Vertices: []geom.Vector{at(distance, 0), at(distance-e, -e/2), at(distance-e, e/2)},
				Origin:   at(distance-e/2, 0),
				Angle:    angle + 90,
				Style:    edgeStyle,
			},
			&Line{P1: at(distance, -half), P2: at(distance, half), Style: lineStyle},
		},
		Style: guideStyle(),
	}

	labelAngle := angle
	vdir, err := geom.VerticalNormalize(v1, v2)
	if err != nil {
		return nil, fmt.Errorf("guide line: %w", err)
	}
	vdir = vdir.Invert()
	labelPos := v1.Add(vdir.Mul(guideLabelGap))
	if vdir.Dot(geom.AxisY) == 0 {
		// Vertical line: the label hangs from the lower end along +X.
		vdir = geom.AxisX
		labelAngle = -90
		labelPos = v2.Add(vdir.Mul(guideLabelGap))
	}

	content := fmt.Sprintf("%d m", int64(math.Floor(distance+0.5)))
	labelStyle := guideStyle()
	labelStyle.Fill = guideColor
	label := &Text{
		Content:   content,
		Position:  labelPos,
		Width:     distance,
		Angle:     labelAngle,
		FontSize:  guideFontSize,
		Family:    labelFamily,
		TextAlign: "center",
		Advance:   MeasureLabel(content, guideFontSize),
		Style:     labelStyle,
	}

	return &Group{Children: []Primitive{guide, label}, Style: guideStyle()}, nil
}

// guideStyle is inert: guide lines are annotations, not editable glyphs.
func guideStyle() Style {
	s := DefaultStyle()
	s.Selectable = false
	s.Evented = false
	return s
}
