package shape

import (
	"fmt"

	"github.com/structsketch/structsketch/backend-go/internal/geom"
)

// NodeRadius is the radius of a node marker.
const NodeRadius = 5.0

// Node builds a joint marker at pos. It can be selected and moved but shows no
// controls, so it cannot be resized or rotated.
func Node(pos geom.Vector, opts Options) (*Circle, error) {
	if !pos.IsFinite() {
		return nil, fmt.Errorf("%w: node position must be finite", ErrInvalidParameters)
	}

	style := DefaultStyle()
	style.Fill = "black"
	style.HasControls = false
	style.HasBorders = false
	style.LockRotation = true
	style.LockScaling = true
	style, err := style.Apply(opts)
	if err != nil {
		return nil, err
	}

	return &Circle{Center: pos, Radius: NodeRadius, Style: style}, nil
}
