package layout

import "math"

// spiralStep scales the spiral parameter; smaller steps test more positions.
const spiralStep = 0.1

// archimedean returns the spiral offset at parameter t for a viewport of
// aspect ratio e (width / height). The spiral is stretched horizontally to
// match the viewport so wide clouds stay wide.
func archimedean(e, t float64) (dx, dy float64) {
	t *= spiralStep
	return e * t * math.Cos(t), t * math.Sin(t)
}

// spiral walks positions outward from the origin until both offsets exceed
// limit. dir is +1 or -1 and picks the turning direction.
type spiral struct {
	aspect float64
	limit  float64
	dir    float64
	t      float64
}

func newSpiral(width, height, dir float64) *spiral {
	return &spiral{
		aspect: width / height,
		limit:  math.Hypot(width, height),
		dir:    dir,
		t:      -dir,
	}
}

// next returns the next offset, or ok=false once the walk has left any
// position that could still fit inside the viewport.
func (s *spiral) next() (dx, dy float64, ok bool) {
	s.t += s.dir
	dx, dy = archimedean(s.aspect, s.t)
	if min(math.Abs(dx), math.Abs(dy)) >= s.limit {
		return 0, 0, false
	}
	return dx, dy, true
}
