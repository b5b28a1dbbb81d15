package cloud

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

// ColorFunc maps a word's raw text to a fill color.
type ColorFunc = func(text string) string

// NewPalette returns a ColorFunc that picks one of n hues spread evenly
// around the HCL wheel at the given chroma and lightness. The hue is chosen
// by hashing the text, so a word keeps its color across data updates.
func NewPalette(n int, chroma, lightness float64) ColorFunc {
	n = max(1, n)
	colors := make([]string, n)
	for i := range colors {
		hue := float64(i) * 360 / float64(n)
		colors[i] = colorful.Hcl(hue, chroma, lightness).Clamped().Hex()
	}
	return func(text string) string {
		return colors[layout.Hash(text, n)]
	}
}

// DefaultPalette is a ten-hue palette readable on a white background.
var DefaultPalette = NewPalette(10, 0.55, 0.55)

// Monochrome returns a ColorFunc that always returns hex.
func Monochrome(hex string) ColorFunc {
	return func(string) string { return hex }
}
