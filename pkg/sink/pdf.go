package sink

import (
	"bytes"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	werrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/scene"
)

const (
	pxToMm = 25.4 / 96 // canvas works in millimeters
	pxToPt = 72.0 / 96 // font faces are sized in points
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	background string
	title      string
}

// WithPDFBackground fills the page with color before drawing words.
func WithPDFBackground(color string) PDFOption {
	return func(r *pdfRenderer) { r.background = color }
}

// WithPDFTitle sets the document title metadata.
func WithPDFTitle(title string) PDFOption {
	return func(r *pdfRenderer) { r.title = title }
}

var (
	familyOnce sync.Once
	family     *canvas.FontFamily
	familyErr  error
)

func fontFamily() (*canvas.FontFamily, error) {
	familyOnce.Do(func() {
		f := canvas.NewFontFamily(fonts.FontFamily)
		if err := f.LoadFont(fonts.RegularTTF(), 0, canvas.FontRegular); err != nil {
			familyErr = werrors.Wrap(werrors.ErrCodeInternal, err, "load embedded font")
			return
		}
		family = f
	})
	return family, familyErr
}

// RenderPDF renders the visible words of f as a single-page vector PDF. One
// frame pixel maps to 1/96 inch, so the page matches the SVG at 96 DPI.
func RenderPDF(f scene.Frame, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if err := werrors.ValidateViewport(f.Width, f.Height); err != nil {
		return nil, err
	}
	fam, err := fontFamily()
	if err != nil {
		return nil, err
	}

	w, h := f.Width*pxToMm, f.Height*pxToMm
	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	writer.SetInfo(r.title, "", "", "", buildinfo.Generator())

	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	if r.background != "" {
		ctx.SetFillColor(canvas.Hex(r.background))
		ctx.DrawPath(0, 0, canvas.Rectangle(w, h))
	}
	for _, n := range f.Visible() {
		face := fam.Face(n.Size*pxToPt, fade(canvas.Hex(n.Color), n.Opacity), canvas.FontRegular, canvas.FontNormal)
		line := canvas.NewTextLine(face, n.Text, canvas.Center)
		m := face.Metrics()

		ctx.Push()
		ctx.ComposeView(canvas.Identity.Translate(n.X*pxToMm, n.Y*pxToMm).Rotate(n.Rotation))
		ctx.DrawText(0, (m.Ascent-m.Descent)/2, line)
		ctx.Pop()
	}

	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, werrors.Wrap(werrors.ErrCodeInternal, err, "write pdf")
	}
	return buf.Bytes(), nil
}

// fade scales a premultiplied color by opacity.
func fade(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	opacity = max(0, opacity)
	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(float64(c.A) * opacity),
	}
}
