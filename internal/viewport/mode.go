package viewport

import (
	"errors"
	"fmt"
	"math"
	"regexp"
)

// Mode selects how pointer streams on the drawing surface are interpreted.
type Mode string

const (
	ModePan    Mode = "pan"
	ModeSelect Mode = "select"
	ModeDraw   Mode = "draw"
)

// Modes lists every mode in toolbox order.
var Modes = []Mode{ModePan, ModeSelect, ModeDraw}

// ErrInvalidMode is returned for values outside Modes.
var ErrInvalidMode = errors.New("invalid mode")

// ErrInvalidBrush is returned for an out-of-range pen width or a malformed color.
var ErrInvalidBrush = errors.New("invalid brush")

// ParseMode converts s into a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

const (
	MinStrokeWidth     = 1.0
	MaxStrokeWidth     = 60.0
	DefaultStrokeWidth = 3.0
	DefaultStrokeColor = "#000000"
)

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|#[0-9a-fA-F]{3}|[a-zA-Z]+)$`)

// Brush is the free-draw pen.
type Brush struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// DefaultBrush returns the pen used before any mode configuration.
func DefaultBrush() Brush {
	return Brush{Width: DefaultStrokeWidth, Color: DefaultStrokeColor}
}

// ModeConfig is the mode setter input.
type ModeConfig struct {
	Mode        Mode    `json:"mode"`
	StrokeWidth float64 `json:"strokeWidth"`
	StrokeColor string  `json:"strokeColor"`
}

// Validate checks the mode and, when set, the pen parameters.
// A zero StrokeWidth or empty StrokeColor keeps the current pen value.
func (c ModeConfig) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.StrokeWidth != 0 && (math.IsNaN(c.StrokeWidth) || c.StrokeWidth < MinStrokeWidth || c.StrokeWidth > MaxStrokeWidth) {
		return fmt.Errorf("%w: stroke width %g outside [%g, %g]", ErrInvalidBrush, c.StrokeWidth, MinStrokeWidth, MaxStrokeWidth)
	}
	if c.StrokeColor != "" && !colorPattern.MatchString(c.StrokeColor) {
		return fmt.Errorf("%w: stroke color %q", ErrInvalidBrush, c.StrokeColor)
	}
	return nil
}
