package shape

import (
	"encoding/json"
	"math"

	"github.com/structsketch/structsketch/backend-go/internal/geom"
)

// Kind tags the concrete type of a Primitive.
type Kind string

const (
	KindPolygon  Kind = "polygon"
	KindLine     Kind = "line"
	KindCircle   Kind = "circle"
	KindText     Kind = "text"
	KindGroup    Kind = "group"
	KindPolyline Kind = "polyline"
)

// Primitive is a renderable piece of geometry in world coordinates.
// The concrete types are *Polygon, *Line, *Polyline, *Circle, *Text and *Group.
type Primitive interface {
	Kind() Kind
	Bounds() geom.Rect
	StyleOf() *Style
}

// Polygon is a closed shape. Origin and Angle describe the rotation handle the
// rendering side uses when the user later rotates the glyph.
type Polygon struct {
	Vertices []geom.Vector `json:"vertices"`
	Origin   geom.Vector   `json:"origin"`
	Angle    float64       `json:"angle"`
	Style    Style         `json:"style"`
}

type Line struct {
	P1    geom.Vector `json:"p1"`
	P2    geom.Vector `json:"p2"`
	Style Style       `json:"style"`
}

// Polyline is an open free-hand stroke.
type Polyline struct {
	Points []geom.Vector `json:"points"`
	Style  Style         `json:"style"`
}

type Circle struct {
	Center geom.Vector `json:"center"`
	Radius float64     `json:"radius"`
	Style  Style       `json:"style"`
}

// Text is a single-line label box anchored at its top-left corner and rotated
// by Angle degrees around that corner.
type Text struct {
	Content   string      `json:"content"`
	Position  geom.Vector `json:"position"`
	Width     float64     `json:"width"`
	Angle     float64     `json:"angle"`
	FontSize  float64     `json:"fontSize"`
	Family    string      `json:"fontFamily"`
	TextAlign string      `json:"textAlign,omitempty"`
	Advance   float64     `json:"advance"` // measured width of Content
	Style     Style       `json:"style"`
}

type Group struct {
	Children []Primitive `json:"children"`
	Style    Style       `json:"style"`
}

func (*Polygon) Kind() Kind { return KindPolygon }
func (*Line) Kind() Kind    { return KindLine }
func (*Circle) Kind() Kind  { return KindCircle }
func (*Text) Kind() Kind    { return KindText }
func (*Group) Kind() Kind   { return KindGroup }

func (*Polyline) Kind() Kind { return KindPolyline }

func (p *Polygon) StyleOf() *Style { return &p.Style }
func (l *Line) StyleOf() *Style    { return &l.Style }
func (c *Circle) StyleOf() *Style  { return &c.Style }
func (t *Text) StyleOf() *Style    { return &t.Style }
func (g *Group) StyleOf() *Style   { return &g.Style }

func (p *Polyline) StyleOf() *Style { return &p.Style }

func (p *Polygon) Bounds() geom.Rect {
	return geom.RectFromPoints(p.Vertices...)
}

// Bounds of a line include half the stroke so horizontal and vertical lines
// still have an area to hit.
func (l *Line) Bounds() geom.Rect {
	return geom.RectFromPoints(l.P1, l.P2).Inflate(math.Max(l.Style.StrokeWidth, 1) / 2)
}

func (p *Polyline) Bounds() geom.Rect {
	return geom.RectFromPoints(p.Points...).Inflate(math.Max(p.Style.StrokeWidth, 1) / 2)
}

func (c *Circle) Bounds() geom.Rect {
	return geom.Rect{
		X:      c.Center.X - c.Radius,
		Y:      c.Center.Y - c.Radius,
		Width:  2 * c.Radius,
		Height: 2 * c.Radius,
	}
}

// textLineHeight is the box height of one line relative to the font size.
const textLineHeight = 1.16

// Height returns the height of the label box.
func (t *Text) Height() float64 {
	return t.FontSize * textLineHeight
}

// Bounds covers the measured text inside the box, not the whole box width.
func (t *Text) Bounds() geom.Rect {
	left := 0.0
	ink := t.Advance
	if ink == 0 || ink > t.Width && t.Width > 0 {
		ink = t.Width
	}
	switch t.TextAlign {
	case "center":
		left = (t.Width - ink) / 2
	case "right":
		left = t.Width - ink
	}
	m := geom.Translate(t.Position.X, t.Position.Y).Multiply(geom.RotateDegrees(t.Angle))
	return m.ApplyRect(geom.Rect{X: left, Y: 0, Width: ink, Height: t.Height()})
}

func (g *Group) Bounds() geom.Rect {
	var r geom.Rect
	for _, c := range g.Children {
		r = r.Union(c.Bounds())
	}
	return r
}

func (p *Polygon) MarshalJSON() ([]byte, error) {
	type alias Polygon
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*alias
	}{KindPolygon, (*alias)(p)})
}

func (l *Line) MarshalJSON() ([]byte, error) {
	type alias Line
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*alias
	}{KindLine, (*alias)(l)})
}

func (c *Circle) MarshalJSON() ([]byte, error) {
	type alias Circle
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*alias
	}{KindCircle, (*alias)(c)})
}

func (t *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*alias
	}{KindText, (*alias)(t)})
}

func (g *Group) MarshalJSON() ([]byte, error) {
	type alias Group
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*alias
	}{KindGroup, (*alias)(g)})
}

func (p *Polyline) MarshalJSON() ([]byte, error) {
	type alias Polyline
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*alias
	}{KindPolyline, (*alias)(p)})
}
