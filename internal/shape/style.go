package shape

import (
	"fmt"
	"maps"
	"sort"
)

// Style carries the paint and interaction flags handed to the rendering side.
type Style struct {
	Stroke       string          `json:"stroke,omitempty"`
	StrokeWidth  float64         `json:"strokeWidth,omitempty"`
	Fill         string          `json:"fill,omitempty"`
	Opacity      float64         `json:"opacity"`
	Visible      bool            `json:"visible"`
	Selectable   bool            `json:"selectable"`
	Evented      bool            `json:"evented"`
	HasControls  bool            `json:"hasControls"`
	HasBorders   bool            `json:"hasBorders"`
	LockRotation bool            `json:"lockRotation"`
	LockScaling  bool            `json:"lockScaling"`
	Controls     map[string]bool `json:"controls,omitempty"`
	Extra        map[string]any  `json:"extra,omitempty"`
}

// DefaultStyle is visible, selectable and evented with every control shown.
func DefaultStyle() Style {
	return Style{
		Opacity:     1,
		Visible:     true,
		Selectable:  true,
		Evented:     true,
		HasControls: true,
		HasBorders:  true,
	}
}

// Options is a configuration object of style overrides, usually decoded from JSON.
// Recognized keys replace Style fields; any other key is kept in Style.Extra.
type Options map[string]any

// Clone returns a shallow copy of o.
func (o Options) Clone() Options {
	return maps.Clone(o)
}

// takeFloat removes key from o and returns it as a float64.
func (o Options) takeFloat(key string, def float64) (float64, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	delete(o, key)
	f, ok := toFloat64(v)
	if !ok {
		return 0, fmt.Errorf("%w: option %q must be a number, got %T", ErrInvalidParameters, key, v)
	}
	return f, nil
}

// Apply returns s with the options applied.
func (s Style) Apply(opts Options) (Style, error) {
	if len(opts) == 0 {
		return s, nil
	}

	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := opts[k]
		var err error
		switch k {
		case "stroke":
			s.Stroke, err = asString(k, v)
		case "fill":
			s.Fill, err = asString(k, v)
		case "strokeWidth":
			s.StrokeWidth, err = asNumber(k, v)
		case "opacity":
			s.Opacity, err = asNumber(k, v)
		case "visible":
			s.Visible, err = asBool(k, v)
		case "selectable":
			s.Selectable, err = asBool(k, v)
		case "evented":
			s.Evented, err = asBool(k, v)
		case "hasControls":
			s.HasControls, err = asBool(k, v)
		case "hasBorders":
			s.HasBorders, err = asBool(k, v)
		case "lockRotation":
			s.LockRotation, err = asBool(k, v)
		case "lockScaling":
			s.LockScaling, err = asBool(k, v)
		default:
			if s.Extra == nil {
				s.Extra = make(map[string]any)
			} else {
				s.Extra = maps.Clone(s.Extra)
			}
			s.Extra[k] = v
		}
		if err != nil {
			return Style{}, err
		}
	}
	return s, nil
}

func asString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: option %q must be a string, got %T", ErrInvalidParameters, key, v)
	}
	return s, nil
}

func asNumber(key string, v any) (float64, error) {
	f, ok := toFloat64(v)
	if !ok {
		return 0, fmt.Errorf("%w: option %q must be a number, got %T", ErrInvalidParameters, key, v)
	}
	return f, nil
}

func asBool(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: option %q must be a boolean, got %T", ErrInvalidParameters, key, v)
	}
	return b, nil
}

// toFloat64 accepts the numeric types JSON decoding and Go callers produce.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
