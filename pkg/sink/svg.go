package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/scene"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	fontFamily string
	title      string
	interact   bool
}

// WithBackground fills the viewport with color before drawing words.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithFontFamily overrides the CSS font-family of every word.
func WithFontFamily(family string) SVGOption { return func(r *svgRenderer) { r.fontFamily = family } }

// WithTitle adds a <title> element.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithInteraction adds hover highlighting for browsers.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interact = true } }

const wordInteractionCSS = `
    .word { transition: opacity 0.2s ease; cursor: pointer; }
    svg:hover .word { opacity: 0.4; }
    svg:hover .word:hover { opacity: 1; }`

// RenderSVG renders the visible words of f. Each word is a <text> element
// centered on its glyph center and rotated about it.
func RenderSVG(f scene.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: fonts.FallbackFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	fmt.Fprintf(&buf, "  <!-- %s -->\n", escapeXML(buildinfo.Generator()))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if r.interact {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", wordInteractionCSS)
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	fmt.Fprintf(&buf, `  <g font-family="%s" text-anchor="middle" dominant-baseline="central">`+"\n", escapeXML(r.fontFamily))
	for _, n := range f.Visible() {
		renderWord(&buf, n)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderWord(buf *bytes.Buffer, n scene.NodeState) {
	fmt.Fprintf(buf, `    <text class="word" data-key="%s" x="%.2f" y="%.2f" font-size="%.1f" fill="%s"`,
		escapeXML(n.Key), n.X, n.Y, n.Size, escapeXML(n.Color))
	if n.Rotation != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%g %.2f %.2f)"`, n.Rotation, n.X, n.Y)
	}
	if n.Opacity < 1 {
		fmt.Fprintf(buf, ` fill-opacity="%.3f"`, n.Opacity)
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(n.Text))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
