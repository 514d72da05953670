package shape

import (
	"fmt"
	"math"
	"strconv"

	"github.com/structsketch/structsketch/backend-go/internal/geom"
)

const (
	// TrapezoidArrowBaseLength is the arrow length drawn for the average force.
	TrapezoidArrowBaseLength = 30.0
	// DefaultLoadAngle is perpendicular to the reference axis.
	DefaultLoadAngle = 90.0

	trapezoidColor      = "pink"
	trapezoidArrowWidth = 2.0
	trapezoidArrowEdge  = 8.0
	trapezoidLineWidth  = 2.0
	trapezoidLabelWidth = 140.0
	trapezoidLabelGap   = 5.0
	trapezoidFontSize   = 10.0

	// arrowMinLength drops arrows that would have no visible shaft.
	arrowMinLength = 1e-9
)

// TrapezoidParams describes a distributed load on a beam.
type TrapezoidParams struct {
	Beam SegmentInput `json:"beam"`
	// ForceAverage is the reference magnitude drawn at TrapezoidArrowBaseLength.
	ForceAverage float64 `json:"forceAverage"`
	// ForceI and ForceJ are the magnitudes at each end in kN/m.
	ForceI float64 `json:"forceI"`
	ForceJ float64 `json:"forceJ"`
	// DistanceI and DistanceJ are the fractions of the beam left unloaded at each
	// end; 0 <= DistanceI + DistanceJ <= 1.
	DistanceI float64 `json:"distanceI"`
	DistanceJ float64 `json:"distanceJ"`
	// Angle of the load in degrees within [-180, 180]; nil means DefaultLoadAngle.
	Angle *float64 `json:"angle,omitempty"`
	// Global measures Angle from the world X axis instead of the beam axis.
	Global bool `json:"global,omitempty"`
}

// LoadAngle returns the effective load angle.
func (p TrapezoidParams) LoadAngle() float64 {
	if p.Angle == nil {
		return DefaultLoadAngle
	}
	return *p.Angle
}

// Validate checks the parameter domains.
func (p TrapezoidParams) Validate() error {
	for name, v := range map[string]float64{"forceI": p.ForceI, "forceJ": p.ForceJ} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrConfiguration, name)
		}
	}
	if math.IsInf(p.ForceAverage, 0) {
		return fmt.Errorf("%w: forceAverage must not be infinite", ErrConfiguration)
	}
	if !inUnit(p.DistanceI) || !inUnit(p.DistanceJ) {
		return fmt.Errorf("%w: distanceI and distanceJ must be within [0, 1]", ErrConfiguration)
	}
	if p.DistanceI+p.DistanceJ > 1 {
		return fmt.Errorf("%w: distanceI + distanceJ = %g exceeds 1", ErrConfiguration, p.DistanceI+p.DistanceJ)
	}
	angle := p.LoadAngle()
	if math.IsNaN(angle) || angle < -180 || angle > 180 {
		return fmt.Errorf("%w: angle %g outside [-180, 180]", ErrConfiguration, angle)
	}
	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// loadArrowLength scales the base length by force relative to the average.
func loadArrowLength(force, average float64) float64 {
	if math.IsNaN(average) || average == 0 {
		return TrapezoidArrowBaseLength
	}
	return force / average * TrapezoidArrowBaseLength
}

// Trapezoid builds a distributed load glyph: the loaded part of the beam gets a
// sloped top line, an arrow at each end scaled by its magnitude, evenly spaced
// arrows in between, and a magnitude label at each end. Arrows point from the
// top line onto the beam.
func Trapezoid(p TrapezoidParams) (*Group, error) {
	seg, err := p.Beam.Resolve()
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	beamDir, err := seg.Direction()
	if err != nil {
		return nil, fmt.Errorf("trapezoid: %w", err)
	}

	reference := beamDir
	if p.Global {
		reference = geom.AxisX
	}
	dir, err := reference.RotateDeg(-p.LoadAngle()).Normalize()
	if err != nil {
		return nil, fmt.Errorf("trapezoid: %w", err)
	}

	beamLength := seg.Length()
	bi := seg.Start.Add(beamDir.Mul(beamLength * p.DistanceI))
	bj := seg.Start.Add(beamDir.Mul(beamLength * (1 - p.DistanceJ)))
	pi := bi.Add(dir.Mul(loadArrowLength(p.ForceI, p.ForceAverage)))
	pj := bj.Add(dir.Mul(loadArrowLength(p.ForceJ, p.ForceAverage)))

	arrowStyle := DefaultStyle()
	arrowStyle.Fill = trapezoidColor

	// top line end -> base point, so the head lands on the beam
	shafts := []Segment{{Start: pi, End: bi}}
	top := geom.NewLine(pi, pj)
	for _, point := range geom.InsidePoints(bi, bj, beamDir) {
		if pu, ok := geom.IntersectPoint(top, point, dir); ok {
			shafts = append(shafts, Segment{Start: pu, End: point})
		}
	}
	shafts = append(shafts, Segment{Start: pj, End: bj})

	arrows := make([]Primitive, 0, len(shafts))
	for _, s := range shafts {
		if s.Length() < arrowMinLength {
			continue
		}
		a, err := arrow(s, trapezoidArrowWidth, trapezoidArrowEdge, arrowStyle)
		if err != nil {
			return nil, fmt.Errorf("trapezoid: %w", err)
		}
		arrows = append(arrows, a)
	}

	lineStyle := DefaultStyle()
	lineStyle.Stroke = trapezoidColor
	lineStyle.StrokeWidth = trapezoidLineWidth
	line := &Line{P1: pi, P2: pj, Style: lineStyle}

	labelAngle := dir.AngleDeg()
	labelI := trapezoidLabel(p.ForceI, bi.Add(beamDir.Mul(trapezoidLabelGap)), labelAngle)
	labelJ := trapezoidLabel(p.ForceJ, bj.Add(beamDir.Mul(trapezoidLabelGap)), labelAngle)

	children := make([]Primitive, 0, 3+len(arrows))
	children = append(children, labelI, labelJ, line)
	children = append(children, arrows...)
	return &Group{Children: children, Style: DefaultStyle()}, nil
}

func trapezoidLabel(force float64, pos geom.Vector, angle float64) *Text {
	content := "  " + strconv.FormatFloat(force, 'f', -1, 64) + " kN/m"
	style := DefaultStyle()
	style.Fill = trapezoidColor
	style.Selectable = false
	style.Evented = false
	return &Text{
		Content:  content,
		Position: pos,
		Width:    trapezoidLabelWidth,
		Angle:    angle,
		FontSize: trapezoidFontSize,
		Family:   labelFamily,
		Advance:  MeasureLabel(content, trapezoidFontSize),
		Style:    style,
	}
}
