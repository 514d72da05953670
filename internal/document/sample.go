package document

import (
	"github.com/structsketch/structsketch/backend-go/internal/geom"
	"github.com/structsketch/structsketch/backend-go/internal/shape"
)

// NewSampleSketch returns a loaded portal frame: two columns and a beam on four
// nodes, a linearly varying load on the beam, a horizontal point load and a
// dimension line under the frame.
func NewSampleSketch() *Sketch {
	s := NewSketch("Portal frame")

	base := []geom.Vector{
		geom.Vec(400, 1200),
		geom.Vec(400, 600),
		geom.Vec(1000, 600),
		geom.Vec(1000, 1200),
	}

	for i := 0; i+1 < len(base); i++ {
		s.Add(mustGlyph(GlyphBeam, SegmentParams{Segment: shape.Vectors(base[i], base[i+1])}))
	}
	for _, p := range base {
		s.Add(mustGlyph(GlyphNode, NodeParams{Position: p}))
	}

	s.Add(mustGlyph(GlyphTrapezoid, shape.TrapezoidParams{
		Beam:         shape.Vectors(base[1], base[2]),
		ForceAverage: 15,
		ForceI:       10,
		ForceJ:       20,
	}))
	s.Add(mustGlyph(GlyphArrow, SegmentParams{
		Segment: shape.Points(1150, 600, 1005, 600),
		Options: shape.Options{"stroke": "red", "fill": "red"},
	}))
	s.Add(mustGlyph(GlyphGuide, SegmentParams{Segment: shape.Vectors(geom.Vec(400, 1300), geom.Vec(1000, 1300))}))

	return s
}

func mustGlyph(kind GlyphKind, params any) Glyph {
	g, err := NewGlyph(kind, params)
	if err != nil {
		panic(err)
	}
	return g
}
