package engine

import (
	"encoding/json"

	"github.com/structsketch/structsketch/backend-go/internal/geom"
)

// DrawCommand represents a single drawing operation for the page to execute.
// The page receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string        `json:"op"`                    // Operation: "path", "text"
	GlyphID     string        `json:"glyphId,omitempty"`     // For hit correlation
	Transform   []float64     `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix, viewport included
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string        `json:"fill,omitempty"`        // Fill color
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width
	Opacity     float64       `json:"opacity,omitempty"`     // Global alpha
	Text        string        `json:"text,omitempty"`        // Label for "text" ops
	FontSize    float64       `json:"fontSize,omitempty"`
	FontFamily  string        `json:"fontFamily,omitempty"`
	TextAlign   string        `json:"textAlign,omitempty"`
	Width       float64       `json:"width,omitempty"` // Label box width
}

// CompileDrawCommands generates a draw command buffer from a scene graph.
// Commands are in painter's order (back to front) and every transform is
// premultiplied by view.
func CompileDrawCommands(sg *SceneGraph, view geom.Matrix2D) []DrawCommand {
	if sg == nil || sg.Root == nil {
		return nil
	}

	var commands []DrawCommand
	compileNode(sg.Root, view, &commands)
	return commands
}

// compileNode recursively generates draw commands for a node and its children.
func compileNode(node *SceneNode, view geom.Matrix2D, commands *[]DrawCommand) {
	if node == nil || !node.Visible {
		return
	}

	switch {
	case node.Type == "text" && node.Text != "":
		*commands = append(*commands, DrawCommand{
			Op:         "text",
			GlyphID:    node.GlyphID,
			Transform:  view.Multiply(node.WorldTransform).ToSlice(),
			Fill:       node.Fill,
			Opacity:    node.Opacity,
			Text:       node.Text,
			FontSize:   node.FontSize,
			FontFamily: node.FontFamily,
			TextAlign:  node.TextAlign,
			Width:      node.TextWidth,
		})
	case len(node.Path) > 0:
		*commands = append(*commands, DrawCommand{
			Op:          "path",
			GlyphID:     node.GlyphID,
			Transform:   view.Multiply(node.WorldTransform).ToSlice(),
			Path:        node.Path,
			Opacity:     node.Opacity,
			Fill:        node.Fill,
			Stroke:      node.Stroke,
			StrokeWidth: node.StrokeWidth,
		})
	}

	for _, child := range node.Children {
		compileNode(child, view, commands)
	}
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// HitTest returns the id of the topmost glyph whose geometry contains the world
// point p, or the empty string. Glyphs that ignore events are never hit.
func HitTest(sg *SceneGraph, p geom.Vector) string {
	if sg == nil || sg.Root == nil {
		return ""
	}
	return hitTestNode(sg.Root, p)
}

// hitTestNode tests children first since they are on top in painter's order.
func hitTestNode(node *SceneNode, p geom.Vector) string {
	if node == nil || !node.Visible {
		return ""
	}

	for i := len(node.Children) - 1; i >= 0; i-- {
		if hit := hitTestNode(node.Children[i], p); hit != "" {
			return hit
		}
	}

	if !node.Evented || node.Type == "group" || node.Type == "root" {
		return ""
	}
	if node.Bounds.Contains(p.X, p.Y) {
		return node.GlyphID
	}
	return ""
}

// GetSelectionBounds returns the combined bounding box of the given glyph ids.
func GetSelectionBounds(sg *SceneGraph, glyphIDs []string) geom.Rect {
	var result geom.Rect
	for _, id := range glyphIDs {
		node, ok := sg.Glyph(id)
		if !ok {
			continue
		}
		result = result.Union(node.Bounds)
	}
	return result
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r geom.Rect) string {
	data, _ := json.Marshal(r)
	return string(data)
}
