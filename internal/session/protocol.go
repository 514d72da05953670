package session

import (
	"encoding/json"

	"github.com/structsketch/structsketch/backend-go/internal/document"
	"github.com/structsketch/structsketch/backend-go/internal/engine"
	"github.com/structsketch/structsketch/backend-go/internal/viewport"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Input
	TypePointerDown      = "pointer.down"
	TypePointerMove      = "pointer.move"
	TypePointerUp        = "pointer.up"
	TypeDoubleClick      = "dblclick"
	TypeWheel            = "wheel"
	TypeModeSet          = "mode.set"
	TypeResize           = "resize"
	TypeGlyphAdd         = "glyph.add"
	TypeGlyphRemove      = "glyph.remove"
	TypeGlyphMove        = "glyph.move"
	TypeSelectionCreated = "selection.created"
	TypeSelectionUpdated = "selection.updated"
	TypeDocLoad          = "doc.load"
	TypeDocSample        = "doc.sample"
	TypeDocGet           = "doc.get"

	// Output
	TypeWelcome    = "welcome"
	TypeViewport   = "viewport"
	TypeSignal     = "signal"
	TypeRender     = "render"
	TypeGlyphAdded = "glyph.added"
	TypeDocSync    = "doc.sync"
	TypeError      = "error"
)

type WheelPayload struct {
	DeltaY float64 `json:"deltaY"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type ResizePayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type GlyphAddPayload struct {
	Kind   document.GlyphKind `json:"kind"`
	Params json.RawMessage    `json:"params"`
}

type GlyphRefPayload struct {
	ID string `json:"id"`
}

type GlyphMovePayload struct {
	ID string  `json:"id"`
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type SelectionPayload struct {
	Glyphs []string `json:"glyphs"`
}

type WelcomePayload struct {
	SessionID string          `json:"sessionId"`
	ClientID  string          `json:"clientId"`
	Mode      viewport.Mode   `json:"mode"`
	Viewport  viewport.State  `json:"viewport"`
	Sketch    json.RawMessage `json:"sketch"`
}

type RenderPayload struct {
	Commands []engine.DrawCommand `json:"commands"`
}

type ErrorPayload struct {
	Request string `json:"request,omitempty"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
}
