// Package sink exports word cloud frames to files.
//
// A [scene.Frame] is the drawn state of every word at one instant: glyph
// centers in viewport coordinates, rotation, font size, color and opacity.
// The sinks in this package turn a frame into a standalone document.
//
// # Formats
//
//   - [RenderSVG]: an SVG document, one <text> element per visible word
//   - [RenderPDF]: a vector PDF drawn with tdewolff/canvas and the embedded Go font
//   - [RenderPNG]: a raster image, converted from SVG with rsvg-convert
//   - [RenderJSON]: the cloud's debug info plus the frame, for tooling
//
// Hidden words (those the layout could not place) and fully transparent
// words are skipped by the drawing sinks.
//
// # External Tools
//
// PNG export shells out to rsvg-convert from librsvg:
//
//	brew install librsvg        # macOS
//	apt install librsvg2-bin    # Debian/Ubuntu
package sink
