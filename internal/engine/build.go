package engine

import (
	"fmt"

	"github.com/structsketch/structsketch/backend-go/internal/document"
	"github.com/structsketch/structsketch/backend-go/internal/geom"
	"github.com/structsketch/structsketch/backend-go/internal/shape"
)

// BuildGlyph runs the shape factory matching the glyph kind.
func BuildGlyph(g document.Glyph) (shape.Primitive, error) {
	params, err := g.Decode()
	if err != nil {
		return nil, err
	}

	var prim shape.Primitive
	switch p := params.(type) {
	case *document.SegmentParams:
		switch g.Kind {
		case document.GlyphBeam:
			prim, err = shape.Beam(p.Segment, p.Options)
		case document.GlyphArrow:
			prim, err = shape.Arrow(p.Segment, p.Options)
		case document.GlyphGuide:
			prim, err = shape.GuideLine(p.Segment)
		}
	case *document.NodeParams:
		prim, err = shape.Node(p.Position, p.Options)
	case *shape.TrapezoidParams:
		prim, err = shape.Trapezoid(*p)
	case *document.FreehandParams:
		prim, err = shape.Freehand(p.Points, p.Brush.Width, p.Brush.Color)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", g.Kind, g.ID, err)
	}
	if prim == nil {
		return nil, fmt.Errorf("build %s %s: %w", g.Kind, g.ID, document.ErrUnknownKind)
	}
	return prim, nil
}

// BuildSceneGraph builds a render-ready scene graph from the sketch. Glyphs
// whose factory fails are left out and reported in SceneGraph.Errors.
func BuildSceneGraph(s *document.Sketch) *SceneGraph {
	sg := NewSceneGraph()
	if s == nil {
		return sg
	}

	for _, g := range s.Ordered() {
		prim, err := BuildGlyph(g)
		if err != nil {
			sg.Errors = append(sg.Errors, err)
			continue
		}
		node := buildNode(prim, g.ID, g.ID, sg.Root, 1)
		if node == nil {
			continue
		}
		sg.Root.Children = append(sg.Root.Children, node)
		sg.NodesByID[g.ID] = node
		sg.Root.Bounds = sg.Root.Bounds.Union(node.Bounds)
	}
	return sg
}

// buildNode converts a primitive into a scene node.
func buildNode(prim shape.Primitive, id, glyphID string, parent *SceneNode, parentOpacity float64) *SceneNode {
	style := prim.StyleOf()
	if !style.Visible {
		return nil
	}

	node := &SceneNode{
		ID:             id,
		GlyphID:        glyphID,
		WorldTransform: geom.Identity(),
		Opacity:        parentOpacity * style.Opacity,
		Visible:        true,
		Evented:        style.Evented,
		Parent:         parent,
		Fill:           style.Fill,
		Stroke:         style.Stroke,
		StrokeWidth:    style.StrokeWidth,
	}

	switch p := prim.(type) {
	case *shape.Group:
		node.Type = "group"
		for i, c := range p.Children {
			child := buildNode(c, fmt.Sprintf("%s/%d", id, i), glyphID, node, node.Opacity)
			if child == nil {
				continue
			}
			// A glyph that ignores events makes all of its parts ignore them.
			child.Evented = child.Evented && node.Evented
			node.Children = append(node.Children, child)
			node.Bounds = node.Bounds.Union(child.Bounds)
		}

	case *shape.Polygon:
		node.Type = "path"
		node.Path = polylinePath(p.Vertices, true)
		node.Bounds = p.Bounds()

	case *shape.Line:
		node.Type = "path"
		node.Path = polylinePath([]geom.Vector{p.P1, p.P2}, false)
		node.Bounds = p.Bounds()

	case *shape.Polyline:
		node.Type = "path"
		node.Path = polylinePath(p.Points, false)
		node.Bounds = p.Bounds()

	case *shape.Circle:
		node.Type = "path"
		node.WorldTransform = geom.Translate(p.Center.X, p.Center.Y)
		node.Path = ellipsePath(p.Radius, p.Radius)
		node.Bounds = computePathBounds(node.Path, node.WorldTransform)

	case *shape.Text:
		node.Type = "text"
		node.WorldTransform = geom.Translate(p.Position.X, p.Position.Y).Multiply(geom.RotateDegrees(p.Angle))
		node.Text = p.Content
		node.FontSize = p.FontSize
		node.FontFamily = p.Family
		node.TextAlign = p.TextAlign
		node.TextWidth = p.Width
		node.Bounds = p.Bounds()
		// Labels are painted with the stroke colour as text fill.
		if node.Fill == "" {
			node.Fill = node.Stroke
		}
	}

	return node
}

// polylinePath generates path commands through points.
func polylinePath(points []geom.Vector, closed bool) []PathCommand {
	if len(points) == 0 {
		return nil
	}
	path := make([]PathCommand, 0, len(points)+1)
	path = append(path, PathCommand{"M", points[0].X, points[0].Y})
	for _, p := range points[1:] {
		path = append(path, PathCommand{"L", p.X, p.Y})
	}
	if closed {
		path = append(path, PathCommand{"Z"})
	}
	return path
}

// ellipsePath generates path commands for an ellipse centred on the origin using bezier curves.
func ellipsePath(rx, ry float64) []PathCommand {
	// k = 4 * (sqrt(2) - 1) / 3
	k := 0.5522847498
	kx, ky := rx*k, ry*k

	return []PathCommand{
		{"M", rx, 0.0},
		{"C", rx, ky, kx, ry, 0.0, ry},
		{"C", -kx, ry, -rx, ky, -rx, 0.0},
		{"C", -rx, -ky, -kx, -ry, 0.0, -ry},
		{"C", kx, -ry, rx, -ky, rx, 0.0},
		{"Z"},
	}
}

// computePathBounds computes the axis-aligned bounding box of a path in world space.
// Bezier control points are included, so curves get a slightly loose box.
func computePathBounds(path []PathCommand, worldTransform geom.Matrix2D) geom.Rect {
	var points []geom.Vector
	for _, cmd := range path {
		if len(cmd) == 0 {
			continue
		}
		op, ok := cmd[0].(string)
		if !ok {
			continue
		}
		var n int
		switch op {
		case "M", "L":
			n = 1
		case "Q":
			n = 2
		case "C":
			n = 3
		}
		if len(cmd) < 1+2*n {
			continue
		}
		for i := range n {
			p := geom.Vec(toFloat64(cmd[1+2*i]), toFloat64(cmd[2+2*i]))
			points = append(points, worldTransform.Apply(p))
		}
	}
	if len(points) == 0 {
		return geom.Rect{}
	}
	return geom.RectFromPoints(points...)
}

// toFloat64 converts a path operand to float64.
func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
