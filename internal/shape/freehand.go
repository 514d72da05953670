package shape

import (
	"fmt"
	"math"
	"slices"

	"github.com/structsketch/structsketch/backend-go/internal/geom"
)

// Freehand builds a pen stroke through points.
func Freehand(points []geom.Vector, width float64, color string) (*Polyline, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: a stroke needs at least 2 points, got %d", ErrInvalidParameters, len(points))
	}
	for _, p := range points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: stroke points must be finite", ErrInvalidParameters)
		}
	}
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("%w: stroke width %g", ErrInvalidParameters, width)
	}

	style := DefaultStyle()
	style.Stroke = color
	style.StrokeWidth = width
	return &Polyline{Points: slices.Clone(points), Style: style}, nil
}
