package shape

import (
	"log/slog"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// labelFamily is the family the rendering side uses for labels. Widths are
// measured with Go Regular, a close sans-serif stand-in.
const labelFamily = "sans-serif"

var labelMetrics = newTextMeasurer()

type textMeasurer struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

func newTextMeasurer() *textMeasurer {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		slog.Error("parse label font", "error", err)
	}
	return &textMeasurer{font: f, faces: make(map[float64]font.Face)}
}

// measure returns the advance width of s at size (canvas units, 72 DPI).
// It falls back to an average glyph width when the font is unavailable.
func (m *textMeasurer) measure(s string, size float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.font == nil {
		return float64(len([]rune(s))) * size * 0.55
	}

	face, ok := m.faces[size]
	if !ok {
		var err error
		face, err = opentype.NewFace(m.font, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			slog.Warn("create label face", "error", err, "size", size)
			return float64(len([]rune(s))) * size * 0.55
		}
		m.faces[size] = face
	}

	return float64(font.MeasureString(face, s)) / 64
}

// MeasureLabel returns the rendered width of a label at fontSize.
func MeasureLabel(s string, fontSize float64) float64 {
	return labelMetrics.measure(s, fontSize)
}
