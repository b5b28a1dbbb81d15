// Package fonts provides the font used to measure and draw word labels.
//
// The Go Regular font ships inside golang.org/x/image as a byte slice, so
// measurement works without any system fonts installed.
package fonts

import (
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// RegularTTF returns the Go Regular TrueType data.
func RegularTTF() []byte {
	return goregular.TTF
}

// Cache for the parsed font (parsed once on first access).
var (
	regular     *opentype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular font.
// The result is cached after first computation.
func Regular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// FontFamily is the CSS font-family name written into exported SVG.
const FontFamily = "Go"

// FallbackFontFamily provides fallback fonts for viewers without Go Regular.
// Widths were measured with Go Regular, so close sans-serif metrics matter.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`
