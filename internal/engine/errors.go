package engine

import (
	"errors"

	"github.com/structsketch/structsketch/backend-go/internal/document"
	"github.com/structsketch/structsketch/backend-go/internal/geom"
	"github.com/structsketch/structsketch/backend-go/internal/shape"
	"github.com/structsketch/structsketch/backend-go/internal/typeid"
	"github.com/structsketch/structsketch/backend-go/internal/viewport"
)

// ErrorKind classifies err for clients: every sentinel of the engine packages
// maps to a stable string, anything else is "internal".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, geom.ErrDegenerateVector):
		return "degenerate_vector"
	case errors.Is(err, shape.ErrConfiguration):
		return "configuration"
	case errors.Is(err, shape.ErrInvalidParameters):
		return "invalid_parameters"
	case errors.Is(err, viewport.ErrInvalidMode):
		return "invalid_mode"
	case errors.Is(err, viewport.ErrInvalidBrush):
		return "invalid_brush"
	case errors.Is(err, document.ErrUnknownKind):
		return "unknown_kind"
	case errors.Is(err, document.ErrGlyphNotFound):
		return "not_found"
	case errors.Is(err, document.ErrInvalidGlyph):
		return "invalid_glyph"
	case errors.Is(err, typeid.ErrInvalidID):
		return "invalid_id"
	default:
		return "internal"
	}
}

// IsClientError reports whether err was caused by bad input rather than a fault.
func IsClientError(err error) bool {
	k := ErrorKind(err)
	return k != "" && k != "internal"
}
