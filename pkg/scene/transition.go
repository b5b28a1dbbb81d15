package scene

import (
	"time"
)

const (
	// DefaultMoveDuration is how long entering and updating nodes animate.
	DefaultMoveDuration = 600 * time.Millisecond
	// DefaultExitDuration is how long exiting nodes fade before removal.
	DefaultExitDuration = 200 * time.Millisecond
	// DefaultFrameInterval is the animation tick period.
	DefaultFrameInterval = 16 * time.Millisecond

	// exitOpacity is the final opacity of an exiting node.
	exitOpacity = 1e-6
	// exitSize is the final font size of an exiting node.
	exitSize = 1
)

// Timing holds transition durations.
type Timing struct {
	Move  time.Duration
	Exit  time.Duration
	Frame time.Duration
}

// DefaultTiming returns the standard transition timing.
func DefaultTiming() Timing {
	return Timing{Move: DefaultMoveDuration, Exit: DefaultExitDuration, Frame: DefaultFrameInterval}
}

func (t *Timing) setDefaults() {
	if t.Move < 0 {
		t.Move = 0
	}
	if t.Exit < 0 {
		t.Exit = 0
	}
	if t.Frame <= 0 {
		t.Frame = DefaultFrameInterval
	}
}

// visual is the animatable part of a node.
type visual struct {
	X, Y     float64
	Rotation float64
	Size     float64
	Opacity  float64
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func (v visual) towards(to visual, t float64) visual {
	return visual{
		X:        lerp(v.X, to.X, t),
		Y:        lerp(v.Y, to.Y, t),
		Rotation: lerp(v.Rotation, to.Rotation, t),
		Size:     lerp(v.Size, to.Size, t),
		Opacity:  lerp(v.Opacity, to.Opacity, t),
	}
}

// easeCubicInOut is the symmetric cubic easing curve.
func easeCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// transition is one running animation on a node.
type transition struct {
	from, to visual
	start    time.Time
	dur      time.Duration
	onEnd    func()
}

// progress returns eased progress in [0, 1] and whether the transition is over.
func (tr *transition) progress(now time.Time) (float64, bool) {
	if tr.dur <= 0 {
		return 1, true
	}
	p := float64(now.Sub(tr.start)) / float64(tr.dur)
	if p >= 1 {
		return 1, true
	}
	if p < 0 {
		p = 0
	}
	return easeCubicInOut(p), false
}

// start begins a transition on n from its current state. A running
// transition is interrupted: its end callback never fires.
func (s *Scene) start(n *node, to visual, dur time.Duration, onEnd func()) {
	now := s.loop.Now()
	if n.tr != nil {
		n.cur = n.at(now)
	}
	n.tr = &transition{from: n.cur, to: to, start: now, dur: dur, onEnd: onEnd}
	n.target = to
	s.schedule()
}

// schedule arms the next frame tick unless one is armed already.
func (s *Scene) schedule() {
	if s.ticker != nil {
		return
	}
	s.ticker = s.loop.AfterFunc(s.timing.Frame, s.tick)
}

// tick advances every running transition, fires end callbacks, checks the
// active round for staleness and draws a frame.
func (s *Scene) tick() {
	s.ticker = nil
	now := s.loop.Now()

	var ended []func()
	for _, key := range s.order {
		n := s.nodes[key]
		if n == nil || n.tr == nil {
			continue
		}
		n.cur = n.at(now)
		if _, done := n.tr.progress(now); done {
			if n.tr.onEnd != nil {
				ended = append(ended, n.tr.onEnd)
			}
			n.tr = nil
		}
	}
	for _, fn := range ended {
		fn()
	}

	s.checkStale()
	s.draw()
	if s.animating() {
		s.schedule()
	}
}

func (s *Scene) animating() bool {
	for _, n := range s.nodes {
		if n.tr != nil {
			return true
		}
	}
	return false
}
