package scene

import (
	"math"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

// Bounds returns the union of the settled glyph boxes of all non-exiting
// nodes in viewport coordinates. Parked nodes count, so a cloud with dropped
// words is never reported as contained. An empty scene has empty bounds.
func (s *Scene) Bounds() layout.Rect {
	var b layout.Rect
	for _, key := range s.order {
		n := s.nodes[key]
		if n == nil || n.exiting {
			continue
		}
		b = b.Union(s.box(n, n.target))
	}
	return b
}

// Contained reports whether bounds lie inside a width×height viewport.
// Empty bounds are contained.
func Contained(bounds layout.Rect, width, height float64) bool {
	if bounds.Empty() {
		return true
	}
	return bounds.X >= 0 && bounds.Y >= 0 && bounds.Right() <= width && bounds.Bottom() <= height
}

// Contained reports whether the scene's bounds fit its current viewport.
func (s *Scene) Contained() bool {
	return Contained(s.Bounds(), s.width, s.height)
}

func (s *Scene) box(n *node, v visual) layout.Rect {
	tw, th := s.measurer.Measure(n.word.Label(), v.Size)
	return layout.GlyphBox(v.X, v.Y, tw, th, v.Rotation)
}

// HitTest returns the topmost visible, non-exiting word whose rotated glyph
// box contains (x, y) at the current animation state.
func (s *Scene) HitTest(x, y float64) (layout.PlacedWord, bool) {
	now := s.loop.Now()
	for i := len(s.order) - 1; i >= 0; i-- {
		n := s.nodes[s.order[i]]
		if n == nil || n.hidden || n.exiting {
			continue
		}
		v := n.at(now)
		tw, th := s.measurer.Measure(n.word.Label(), v.Size)

		// Rotate the point into the glyph's frame.
		rad := -v.Rotation * math.Pi / 180
		dx, dy := x-v.X, y-v.Y
		lx := dx*math.Cos(rad) - dy*math.Sin(rad)
		ly := dx*math.Sin(rad) + dy*math.Cos(rad)
		if math.Abs(lx) <= tw/2 && math.Abs(ly) <= th/2 {
			return n.word, true
		}
	}
	return layout.PlacedWord{}, false
}
