// Package typeid issues the prefixed, sortable identifiers used for sketches,
// glyphs and sessions.
package typeid

import (
	"errors"
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixGlyph   = "glyph"
	PrefixSession = "sess"
	PrefixSketch  = "sketch"
)

// ErrInvalidID is returned for ids that do not parse or carry the wrong prefix.
var ErrInvalidID = errors.New("invalid id")

// New panics only if prefix is not a valid typeid prefix.
func New(prefix string) string {
	return typeid.MustGenerate(prefix).String()
}

func NewGlyphID() string   { return New(PrefixGlyph) }
func NewSessionID() string { return New(PrefixSession) }
func NewSketchID() string  { return New(PrefixSketch) }

// Validate checks that id parses and was issued for want.
func Validate(id, want string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidID, id, err)
	}
	if got := parsed.Prefix(); got != want {
		return fmt.Errorf("%w: %q is a %s id, want %s", ErrInvalidID, id, got, want)
	}
	return nil
}
