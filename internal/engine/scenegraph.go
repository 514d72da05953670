package engine

import "github.com/structsketch/structsketch/backend-go/internal/geom"

// SceneGraph is the render-ready state of a sketch. It is rebuilt whenever the
// sketch changes and is kept between frames otherwise.
type SceneGraph struct {
	Root *SceneNode
	// NodesByID indexes the root node of every glyph by glyph id.
	NodesByID map[string]*SceneNode
	// Errors lists glyphs that could not be built and were left out.
	Errors []error
}

// SceneNode is a resolved node ready for rendering. Nodes below a glyph root
// carry the glyph id so any hit can be traced back to its glyph.
type SceneNode struct {
	ID      string
	GlyphID string
	Type    string // "root", "group", "path", "text"

	WorldTransform geom.Matrix2D

	Opacity float64
	Visible bool
	Evented bool

	Parent   *SceneNode
	Children []*SceneNode

	Path        []PathCommand
	Fill        string
	Stroke      string
	StrokeWidth float64

	Text       string
	FontSize   float64
	FontFamily string
	TextAlign  string
	TextWidth  float64

	// Bounds is the axis-aligned bounding box in world space.
	Bounds geom.Rect
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []any

// NewSceneGraph creates an empty scene graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{
		Root:      &SceneNode{Type: "root", Visible: true, Opacity: 1, WorldTransform: geom.Identity()},
		NodesByID: make(map[string]*SceneNode),
	}
}

// Glyph returns the root node of a glyph.
func (sg *SceneGraph) Glyph(id string) (*SceneNode, bool) {
	if sg == nil {
		return nil, false
	}
	n, ok := sg.NodesByID[id]
	return n, ok
}
