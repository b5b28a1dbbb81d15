package scene

import (
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/loop"
)

// ColorFunc maps a word's raw text to a fill color.
type ColorFunc func(text string) string

// Option configures a Scene.
type Option func(*Scene)

// WithTiming overrides transition durations.
func WithTiming(t Timing) Option {
	return func(s *Scene) { s.timing = t }
}

// WithMeasurer sets the measurer used for node boxes (default layout.EstimateMeasurer).
func WithMeasurer(m layout.Measurer) Option {
	return func(s *Scene) {
		if m != nil {
			s.measurer = m
		}
	}
}

// WithColor sets the color function (default: every word black).
func WithColor(fn ColorFunc) Option {
	return func(s *Scene) {
		if fn != nil {
			s.color = fn
		}
	}
}

// WithLogger sets the logger (default discards).
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scene is a retained, animated set of word nodes. All methods must be
// called on the loop goroutine.
type Scene struct {
	loop     *loop.Loop
	surface  Surface
	measurer layout.Measurer
	color    ColorFunc
	timing   Timing
	logger   *log.Logger

	width, height float64
	nodes         map[string]*node
	order         []string // draw order
	current       *round
	rounds        int
	ticker        *loop.Timer
}

type node struct {
	key     string
	word    layout.PlacedWord
	color   string
	hidden  bool
	exiting bool
	cur     visual // state when tr started or last ticked
	target  visual // settled state once tr ends
	tr      *transition
}

func (n *node) at(now time.Time) visual {
	if n.tr == nil {
		return n.cur
	}
	p, _ := n.tr.progress(now)
	return n.tr.from.towards(n.tr.to, p)
}

// round tracks the transitions started by one Reconcile call.
type round struct {
	id       int
	moving   int
	exiting  int
	stale    func() bool
	done     func(abandoned bool)
	resolved bool
}

// Diff counts how a reconcile classified nodes.
type Diff struct {
	Entering int
	Updating int
	Exiting  int
}

// New creates an empty scene that animates on l and draws to surface.
// surface may be nil.
func New(l *loop.Loop, surface Surface, opts ...Option) *Scene {
	s := &Scene{
		loop:     l,
		surface:  surface,
		measurer: layout.EstimateMeasurer{},
		color:    func(string) string { return "#000000" },
		timing:   DefaultTiming(),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		nodes:    make(map[string]*node),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.timing.setDefaults()
	return s
}

// =============================================================================
// Reconcile
// =============================================================================

// Reconcile transitions the scene to words inside a width×height viewport.
//
// done is posted to the loop once all move and exit transitions of this round
// have ended, with abandoned=false. If stale is non-nil and returns true
// while the round is in flight, done is posted with abandoned=true instead
// and later transition ends of the round are ignored.
func (s *Scene) Reconcile(words []layout.PlacedWord, width, height float64, stale func() bool, done func(abandoned bool)) Diff {
	s.width, s.height = width, height
	if s.current != nil && !s.current.resolved {
		// Superseded round; its callback is never delivered.
		s.current.resolved = true
	}
	s.rounds++
	r := &round{id: s.rounds, stale: stale, done: done}
	s.current = r

	var diff Diff
	seen := make(map[string]bool, len(words))
	newOrder := make([]string, 0, len(words))

	for _, w := range words {
		key := w.RawText
		if seen[key] {
			s.logger.Debug("duplicate word ignored", "word", key)
			continue
		}
		seen[key] = true
		newOrder = append(newOrder, key)

		to, hidden := s.settled(w)
		n, ok := s.nodes[key]
		if ok {
			diff.Updating++
			n.exiting = false
		} else {
			diff.Entering++
			n = &node{key: key, cur: to}
			s.nodes[key] = n
		}
		n.word = w
		n.color = s.color(key)
		n.hidden = hidden

		r.moving++
		s.start(n, to, s.timing.Move, func() { s.moveEnded(r) })
	}

	var exiting []string
	for _, key := range s.order {
		if seen[key] {
			continue
		}
		n := s.nodes[key]
		if n == nil {
			continue
		}
		exiting = append(exiting, key)
		if n.exiting {
			// Already fading out from an earlier round.
			continue
		}
		diff.Exiting++
		n.exiting = true
		r.exiting++
		to := n.target
		to.Opacity = exitOpacity
		to.Size = exitSize
		s.start(n, to, s.timing.Exit, func() {
			s.remove(n)
			s.exitEnded(r)
		})
	}
	s.order = append(exiting, newOrder...)

	s.logger.Debug("reconcile", "round", r.id,
		"entering", diff.Entering, "updating", diff.Updating, "exiting", diff.Exiting)

	if r.moving == 0 && r.exiting == 0 {
		s.finish(r, false)
	}
	s.draw()
	return diff
}

// settled returns the final visual state for w and whether it is parked.
func (s *Scene) settled(w layout.PlacedWord) (visual, bool) {
	size := w.Size
	if math.IsNaN(size) || size <= 0 {
		size = 1
	}
	rot := w.Rotation
	if math.IsNaN(rot) {
		rot = 0
	}
	if w.Valid() {
		return visual{
			X:        s.width/2 + w.X,
			Y:        s.height/2 + w.Y,
			Rotation: rot,
			Size:     size,
			Opacity:  1,
		}, false
	}
	// Park the word up and to the left, clear of the viewport by its own extent.
	tw, th := s.measurer.Measure(w.Label(), size)
	ext := math.Max(tw, th)
	return visual{
		X:        -(s.width/2 + ext),
		Y:        -(s.height/2 + ext),
		Rotation: rot,
		Size:     size,
		Opacity:  0,
	}, true
}

func (s *Scene) moveEnded(r *round) {
	if r.resolved {
		return
	}
	r.moving--
	if r.moving <= 0 && r.exiting <= 0 {
		s.finish(r, false)
	}
}

func (s *Scene) exitEnded(r *round) {
	if r.resolved {
		return
	}
	r.exiting--
	if r.moving <= 0 && r.exiting <= 0 {
		s.finish(r, false)
	}
}

func (s *Scene) checkStale() {
	r := s.current
	if r == nil || r.resolved || r.stale == nil {
		return
	}
	if r.stale() {
		s.logger.Debug("reconcile abandoned", "round", r.id, "moving", r.moving, "exiting", r.exiting)
		s.finish(r, true)
	}
}

// finish resolves r once and posts its callback.
func (s *Scene) finish(r *round, abandoned bool) {
	if r.resolved {
		return
	}
	r.resolved = true
	if r.done != nil {
		done := r.done
		s.loop.Post(func() { done(abandoned) })
	}
}

func (s *Scene) remove(n *node) {
	if s.nodes[n.key] != n {
		return
	}
	delete(s.nodes, n.key)
	if i := slices.Index(s.order, n.key); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// Clear removes every node immediately and stops animating. An in-flight
// round is dropped without its callback.
func (s *Scene) Clear() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	if s.current != nil {
		s.current.resolved = true
	}
	clear(s.nodes)
	s.order = nil
	s.draw()
}

// Resize sets the viewport used for frames without touching nodes.
func (s *Scene) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Len returns the number of nodes, exiting ones included.
func (s *Scene) Len() int { return len(s.nodes) }

// Animating reports whether any transition is running.
func (s *Scene) Animating() bool { return s.animating() }

// =============================================================================
// Frames
// =============================================================================

// Frame returns the current interpolated state of all nodes in draw order.
func (s *Scene) Frame() Frame {
	now := s.loop.Now()
	fr := Frame{Width: s.width, Height: s.height, Nodes: make([]NodeState, 0, len(s.order))}
	for _, key := range s.order {
		n := s.nodes[key]
		if n == nil {
			continue
		}
		v := n.at(now)
		fr.Nodes = append(fr.Nodes, NodeState{
			Key:      n.key,
			Text:     n.word.Label(),
			Color:    n.color,
			X:        v.X,
			Y:        v.Y,
			Rotation: v.Rotation,
			Size:     v.Size,
			Opacity:  v.Opacity,
			Hidden:   n.hidden,
			Exiting:  n.exiting,
		})
	}
	return fr
}

func (s *Scene) draw() {
	if s.surface == nil {
		return
	}
	s.surface.Draw(s.Frame())
}
