package shape

import (
	"fmt"

	"github.com/structsketch/structsketch/backend-go/internal/geom"
)

const (
	defaultArrowWidth    = 3.0
	defaultArrowEdgeSize = 12.0
)

// arrowOutline returns the outline of an arrow pointing down (+Y): a shaft of
// width starting at y=0 and a head edgeSize wide ending at the tip (edgeSize/2, length).
func arrowOutline(length, width, edgeSize float64) []geom.Vector {
	return []geom.Vector{
		{X: edgeSize/2 - width/2, Y: 0},
		{X: edgeSize/2 - width/2, Y: length - edgeSize},
		{X: 0, Y: length - edgeSize},
		{X: edgeSize / 2, Y: length},
		{X: edgeSize, Y: length - edgeSize},
		{X: edgeSize/2 + width/2, Y: length - edgeSize},
		{X: edgeSize/2 + width/2, Y: 0},
	}
}

// Arrow builds a force arrow from the first point to the second. The head's tip
// sits on the second point and is the polygon's rotation origin.
//
// Recognized options besides the style fields: arrowWidth (shaft width, default 3)
// and arrowEdgeSize (head size, default 12).
func Arrow(in SegmentInput, opts Options) (*Polygon, error) {
	seg, err := in.Resolve()
	if err != nil {
		return nil, err
	}

	opts = opts.Clone()
	width, err := opts.takeFloat("arrowWidth", defaultArrowWidth)
	if err != nil {
		return nil, err
	}
	edgeSize, err := opts.takeFloat("arrowEdgeSize", defaultArrowEdgeSize)
	if err != nil {
		return nil, err
	}
	if width <= 0 || edgeSize <= 0 {
		return nil, fmt.Errorf("%w: arrow width and edge size must be positive", ErrInvalidParameters)
	}

	style, err := DefaultStyle().Apply(opts)
	if err != nil {
		return nil, err
	}
	return arrow(seg, width, edgeSize, style)
}

func arrow(seg Segment, width, edgeSize float64, style Style) (*Polygon, error) {
	dir, err := seg.Direction()
	if err != nil {
		return nil, fmt.Errorf("arrow: %w", err)
	}
	length := seg.Length()

	// The outline points along +Y; turn it onto dir around the tip.
	angle := dir.AngleDeg() - 90
	m := geom.Translate(seg.End.X, seg.End.Y).
		Multiply(geom.RotateDegrees(angle)).
		Multiply(geom.Translate(-edgeSize/2, -length))

	outline := arrowOutline(length, width, edgeSize)
	vertices := make([]geom.Vector, len(outline))
	for i, p := range outline {
		vertices[i] = m.Apply(p)
	}

	return &Polygon{
		Vertices: vertices,
		Origin:   seg.End,
		Angle:    angle,
		Style:    style,
	}, nil
}
