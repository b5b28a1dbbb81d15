package layout

import "math"

// Word is one weighted label. RawText identifies the word within a batch.
type Word struct {
	RawText     string
	DisplayText string
	Value       float64
	Meta        map[string]any
}

// Label returns the text to draw: DisplayText when set, RawText otherwise.
func (w Word) Label() string {
	if w.DisplayText != "" {
		return w.DisplayText
	}
	return w.RawText
}

// Placement is where a word sits. X and Y are offsets of the glyph center
// from the viewport center, Rotation is in degrees and Size in pixels.
// Unplaced words have NaN coordinates.
type Placement struct {
	X        float64
	Y        float64
	Rotation float64
	Size     float64
}

// Valid reports whether the placement has numeric coordinates.
func (p Placement) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Unplaced returns a placement with NaN coordinates that keeps size and rotation.
func Unplaced(size, rotation float64) Placement {
	return Placement{X: math.NaN(), Y: math.NaN(), Rotation: rotation, Size: size}
}

// PlacedWord is a word together with the placement computed for it.
type PlacedWord struct {
	Word
	Placement
}

// Words strips placements from a placed word list.
func Words(placed []PlacedWord) []Word {
	out := make([]Word, len(placed))
	for i, p := range placed {
		out[i] = p.Word
	}
	return out
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return !(r.W > 0) || !(r.H > 0) }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Union returns the smallest rectangle containing both. Empty rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Overlaps reports whether the interiors of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Inflate grows the rectangle by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// GlyphBox returns the axis-aligned bounds of a w×h text box rotated by deg
// degrees around its center (cx, cy).
func GlyphBox(cx, cy, w, h, deg float64) Rect {
	rad := deg * math.Pi / 180
	sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
	bw := w*cos + h*sin
	bh := w*sin + h*cos
	return Rect{X: cx - bw/2, Y: cy - bh/2, W: bw, H: bh}
}
