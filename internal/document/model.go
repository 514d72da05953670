package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/structsketch/structsketch/backend-go/internal/geom"
	"github.com/structsketch/structsketch/backend-go/internal/shape"
	"github.com/structsketch/structsketch/backend-go/internal/typeid"
	"github.com/structsketch/structsketch/backend-go/internal/viewport"
)

var (
	ErrGlyphNotFound = errors.New("glyph not found")
	ErrUnknownKind   = errors.New("unknown glyph kind")
	ErrInvalidGlyph  = errors.New("invalid glyph")
)

// Sketch is a structural diagram: glyphs keyed by id plus their paint order.
type Sketch struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Page   Page             `json:"page"`
	Glyphs map[string]Glyph `json:"glyphs"`
	Order  []string         `json:"order"`
}

// Page is the drawable area in canvas units.
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type GlyphKind string

const (
	GlyphBeam      GlyphKind = "beam"
	GlyphNode      GlyphKind = "node"
	GlyphArrow     GlyphKind = "arrow"
	GlyphGuide     GlyphKind = "guide"
	GlyphTrapezoid GlyphKind = "trapezoid"
	GlyphFreehand  GlyphKind = "freehand"
)

// GlyphKinds lists every kind a sketch may contain.
var GlyphKinds = []GlyphKind{GlyphBeam, GlyphNode, GlyphArrow, GlyphGuide, GlyphTrapezoid, GlyphFreehand}

// ParseKind converts s into a GlyphKind.
func ParseKind(s string) (GlyphKind, error) {
	k := GlyphKind(s)
	if !slices.Contains(GlyphKinds, k) {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Glyph is one semantic element of a sketch. Params holds the kind-specific
// parameters (SegmentParams, NodeParams, shape.TrapezoidParams or
// FreehandParams) as JSON.
type Glyph struct {
	ID     string          `json:"id"`
	Kind   GlyphKind       `json:"kind"`
	Params json.RawMessage `json:"params"`
}

// SegmentParams places a beam, arrow or guide line.
type SegmentParams struct {
	Segment shape.SegmentInput `json:"segment"`
	Options shape.Options      `json:"options,omitempty"`
}

// NodeParams places a node marker.
type NodeParams struct {
	Position geom.Vector   `json:"position"`
	Options  shape.Options `json:"options,omitempty"`
}

// FreehandParams is a stroke drawn with the pen.
type FreehandParams struct {
	Points []geom.Vector  `json:"points"`
	Brush  viewport.Brush `json:"brush"`
}

// NewSketch returns an empty sketch on the default page.
func NewSketch(name string) *Sketch {
	return &Sketch{
		ID:     typeid.NewSketchID(),
		Name:   name,
		Page:   Page{Width: viewport.MaxPageWidth, Height: viewport.MaxPageHeight},
		Glyphs: map[string]Glyph{},
		Order:  []string{},
	}
}

// NewGlyph encodes params into a glyph with a fresh id.
func NewGlyph(kind GlyphKind, params any) (Glyph, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Glyph{}, err
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return Glyph{}, fmt.Errorf("%w: encode %s params: %v", ErrInvalidGlyph, kind, err)
	}
	return Glyph{ID: typeid.NewGlyphID(), Kind: kind, Params: raw}, nil
}

// Decode unmarshals the glyph parameters into the type matching its kind.
func (g Glyph) Decode() (any, error) {
	var dst any
	switch g.Kind {
	case GlyphBeam, GlyphArrow, GlyphGuide:
		dst = &SegmentParams{}
	case GlyphNode:
		dst = &NodeParams{}
	case GlyphTrapezoid:
		dst = &shape.TrapezoidParams{}
	case GlyphFreehand:
		dst = &FreehandParams{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, g.Kind)
	}
	if err := json.Unmarshal(g.Params, dst); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrInvalidGlyph, g.Kind, g.ID, err)
	}
	return dst, nil
}

// Translate returns the glyph moved by d.
func (g Glyph) Translate(d geom.Vector) (Glyph, error) {
	params, err := g.Decode()
	if err != nil {
		return Glyph{}, err
	}
	switch p := params.(type) {
	case *SegmentParams:
		p.Segment = p.Segment.Translate(d)
	case *NodeParams:
		p.Position = p.Position.Add(d)
	case *shape.TrapezoidParams:
		p.Beam = p.Beam.Translate(d)
	case *FreehandParams:
		for i := range p.Points {
			p.Points[i] = p.Points[i].Add(d)
		}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return Glyph{}, fmt.Errorf("%w: encode %s params: %v", ErrInvalidGlyph, g.Kind, err)
	}
	g.Params = raw
	return g, nil
}

// Add appends g on top of the paint order, replacing a glyph with the same id.
func (s *Sketch) Add(g Glyph) {
	if _, ok := s.Glyphs[g.ID]; !ok {
		s.Order = append(s.Order, g.ID)
	}
	s.Glyphs[g.ID] = g
}

// Get returns the glyph with the given id.
func (s *Sketch) Get(id string) (Glyph, error) {
	g, ok := s.Glyphs[id]
	if !ok {
		return Glyph{}, fmt.Errorf("%w: %s", ErrGlyphNotFound, id)
	}
	return g, nil
}

// Remove deletes a glyph.
func (s *Sketch) Remove(id string) error {
	if _, ok := s.Glyphs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrGlyphNotFound, id)
	}
	delete(s.Glyphs, id)
	s.Order = slices.DeleteFunc(s.Order, func(o string) bool { return o == id })
	return nil
}

// Move translates a glyph by d.
func (s *Sketch) Move(id string, d geom.Vector) (Glyph, error) {
	g, err := s.Get(id)
	if err != nil {
		return Glyph{}, err
	}
	moved, err := g.Translate(d)
	if err != nil {
		return Glyph{}, err
	}
	s.Glyphs[id] = moved
	return moved, nil
}

// Ordered returns the glyphs bottom to top.
func (s *Sketch) Ordered() []Glyph {
	out := make([]Glyph, 0, len(s.Order))
	for _, id := range s.Order {
		if g, ok := s.Glyphs[id]; ok {
			out = append(out, g)
		}
	}
	return out
}

// Validate checks that Order and Glyphs describe the same set and every glyph decodes.
func (s *Sketch) Validate() error {
	if len(s.Order) != len(s.Glyphs) {
		return fmt.Errorf("%w: order lists %d glyphs, sketch has %d", ErrInvalidGlyph, len(s.Order), len(s.Glyphs))
	}
	seen := make(map[string]bool, len(s.Order))
	for _, id := range s.Order {
		if seen[id] {
			return fmt.Errorf("%w: %s listed twice in order", ErrInvalidGlyph, id)
		}
		seen[id] = true
		g, ok := s.Glyphs[id]
		if !ok {
			return fmt.Errorf("%w: order references %s", ErrGlyphNotFound, id)
		}
		if err := typeid.Validate(id, typeid.PrefixGlyph); err != nil {
			return fmt.Errorf("glyph: %w", err)
		}
		if g.ID != id {
			return fmt.Errorf("%w: glyph keyed %s has id %s", ErrInvalidGlyph, id, g.ID)
		}
		if _, err := g.Decode(); err != nil {
			return err
		}
	}
	return nil
}
