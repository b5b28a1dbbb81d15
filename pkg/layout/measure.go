package layout

import (
	"fmt"
	"math"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// Measurer returns the unrotated box of text drawn at a pixel size.
// Implementations must be safe for concurrent use.
type Measurer interface {
	Measure(text string, size float64) (width, height float64)
}

// =============================================================================
// Font metrics
// =============================================================================

// FontMeasurer measures text with real glyph advances from an OpenType font.
// Faces are created lazily and cached per quarter pixel of size.
type FontMeasurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFontMeasurer returns a measurer backed by the Go Regular font.
func NewFontMeasurer() (*FontMeasurer, error) {
	f, err := fonts.Regular()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return NewFontMeasurerFrom(f), nil
}

// NewFontMeasurerFrom returns a measurer for an already parsed font.
func NewFontMeasurerFrom(f *opentype.Font) *FontMeasurer {
	return &FontMeasurer{font: f, faces: make(map[float64]font.Face)}
}

// Measure returns the advance width and the ascent+descent height.
func (m *FontMeasurer) Measure(text string, size float64) (float64, float64) {
	if !(size > 0) || math.IsInf(size, 1) {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(size)
	if err != nil {
		return EstimateMeasurer{}.Measure(text, size)
	}
	metrics := face.Metrics()
	return fixedToFloat(font.MeasureString(face, text)), fixedToFloat(metrics.Ascent + metrics.Descent)
}

// faceQuantum is the size step faces are cached at, which bounds the cache
// while sizes animate.
const faceQuantum = 0.25

func (m *FontMeasurer) face(size float64) (font.Face, error) {
	size = max(faceQuantum, math.Round(size/faceQuantum)*faceQuantum)
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// =============================================================================
// Terminal cells
// =============================================================================

// CellMeasurer measures text in terminal cells: one row high, as wide as
// its display width. The size argument is ignored.
type CellMeasurer struct{}

// Measure returns the display width in cells and a height of one row.
func (CellMeasurer) Measure(text string, _ float64) (float64, float64) {
	return float64(runewidth.StringWidth(text)), 1
}

// =============================================================================
// Estimate
// =============================================================================

const (
	charWidthRatio  = 0.55
	lineHeightRatio = 1.0
)

// EstimateMeasurer approximates text width from the rune count.
type EstimateMeasurer struct{}

// Measure returns runes × 0.55 × size by one size.
func (EstimateMeasurer) Measure(text string, size float64) (float64, float64) {
	n := utf8.RuneCountInString(text)
	return float64(n) * size * charWidthRatio, size * lineHeightRatio
}
