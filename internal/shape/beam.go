package shape

import (
	"fmt"
	"maps"
)

// beamControls shows only the top handle and the rotation handle.
var beamControls = map[string]bool{
	"bl":  false,
	"br":  false,
	"mb":  false,
	"ml":  false,
	"mr":  false,
	"mt":  true,
	"tl":  false,
	"tr":  false,
	"mtr": true,
}

// Beam builds a structural member between two points.
func Beam(in SegmentInput, opts Options) (*Line, error) {
	seg, err := in.Resolve()
	if err != nil {
		return nil, err
	}
	if _, err := seg.Direction(); err != nil {
		return nil, fmt.Errorf("beam: %w", err)
	}

	style := DefaultStyle()
	style.Stroke = "black"
	style.StrokeWidth = 4
	style.Controls = maps.Clone(beamControls)
	style, err = style.Apply(opts)
	if err != nil {
		return nil, err
	}

	return &Line{P1: seg.Start, P2: seg.End, Style: style}, nil
}
