package layout

import (
	"cmp"
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	werrors "github.com/matzehuels/wordcloud/pkg/errors"
)

const (
	// DefaultPadding is the gap in pixels kept around every glyph box.
	DefaultPadding = 5.0
	// DefaultBudget bounds a whole placement pass.
	DefaultBudget = time.Second
	// DefaultSeed makes placements reproducible.
	DefaultSeed = uint64(42)
)

// Config controls a placement pass.
type Config struct {
	Width       float64     // Viewport width; must be positive
	Height      float64     // Viewport height; must be positive
	Orientation Orientation // Rotation policy
	Padding     float64     // Gap around glyph boxes (0 = DefaultPadding, negative = none)
	Budget      time.Duration
	Seed        uint64
	Measurer    Measurer         // Glyph boxes (default EstimateMeasurer)
	Now         func() time.Time // Clock for the budget (default time.Now)
}

// SetDefaults fills unset fields. Width and Height are left alone.
func (c *Config) SetDefaults() {
	if c.Padding == 0 {
		c.Padding = DefaultPadding
	}
	if c.Budget <= 0 {
		c.Budget = DefaultBudget
	}
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	if c.Measurer == nil {
		c.Measurer = EstimateMeasurer{}
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Result is the outcome of a placement pass.
type Result struct {
	Words   []PlacedWord  // Input order; unplaced words have NaN coordinates
	Placed  int           // Words with a valid position
	Dropped int           // Words left unplaced
	Elapsed time.Duration // Time spent according to Config.Now
	Bounds  Rect          // Union of placed glyph boxes, viewport coordinates
	Expired bool          // Budget ran out before every word was tried
}

// Place computes a non-overlapping placement for words.
//
// Words are placed largest first. Each starts at a seeded random point near
// the viewport center and follows an archimedean spiral until its padded
// glyph box lies inside the viewport without touching an earlier box.
// When Budget runs out or ctx is cancelled, the remaining words stay
// unplaced and the partial result is returned.
//
// A viewport without area returns an INVALID_VIEWPORT error without running.
// A non-empty word list where nothing could be placed returns the result
// together with a NO_PLACEMENT error.
func Place(ctx context.Context, words []Word, size SizeFunc, cfg Config) (Result, error) {
	if err := werrors.ValidateViewport(cfg.Width, cfg.Height); err != nil {
		return Result{}, err
	}
	cfg.SetDefaults()

	res := Result{Words: make([]PlacedWord, len(words))}
	if len(words) == 0 {
		return res, nil
	}

	pad := max(0, cfg.Padding)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xdeadbeef))
	start := cfg.Now()
	expired := func() bool {
		return ctx.Err() != nil || cfg.Now().Sub(start) >= cfg.Budget
	}

	for i, w := range words {
		px := math.Max(1, math.Trunc(size(w)))
		if math.IsNaN(px) {
			px = 1
		}
		res.Words[i] = PlacedWord{Word: w, Placement: Unplaced(px, Rotation(w.RawText, cfg.Orientation))}
	}

	order := make([]int, len(words))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(res.Words[b].Size, res.Words[a].Size)
	})

	p := placer{width: cfg.Width, height: cfg.Height, pad: pad}
	for _, i := range order {
		if expired() {
			res.Expired = true
			break
		}
		pw := &res.Words[i]
		tw, th := cfg.Measurer.Measure(pw.Label(), pw.Size)

		// Start offset and turning direction are drawn for every word so a
		// word's start does not depend on whether earlier ones fit.
		x0 := cfg.Width * (rng.Float64() + 0.5) / 2
		y0 := cfg.Height * (rng.Float64() + 0.5) / 2
		dir := 1.0
		if rng.Float64() >= 0.5 {
			dir = -1
		}

		cx, cy, ok, timedOut := p.search(x0, y0, tw, th, pw.Rotation, dir, expired)
		if timedOut {
			res.Expired = true
			break
		}
		if !ok {
			continue
		}
		pw.X = cx - cfg.Width/2
		pw.Y = cy - cfg.Height/2
		res.Bounds = res.Bounds.Union(GlyphBox(cx, cy, tw, th, pw.Rotation))
	}

	for _, pw := range res.Words {
		if pw.Valid() {
			res.Placed++
		}
	}
	res.Dropped = len(words) - res.Placed
	res.Elapsed = cfg.Now().Sub(start)

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if res.Placed == 0 {
		return res, werrors.New(werrors.ErrCodeNoPlacement, "none of %d words could be placed in %vx%v", len(words), cfg.Width, cfg.Height)
	}
	return res, nil
}

// placer holds the padded boxes of words placed so far.
type placer struct {
	width, height float64
	pad           float64
	boxes         []Rect
	bounds        Rect
}

// search walks the spiral from (x0, y0) and records the first free position.
func (p *placer) search(x0, y0, tw, th, rot, dir float64, expired func() bool) (cx, cy float64, ok, timedOut bool) {
	if tw <= 0 || th <= 0 {
		return 0, 0, false, false
	}
	view := Rect{W: p.width, H: p.height}
	s := newSpiral(p.width, p.height, dir)
	for {
		if expired() {
			return 0, 0, false, true
		}
		dx, dy, more := s.next()
		if !more {
			return 0, 0, false, false
		}
		cx, cy = x0+dx, y0+dy
		glyph := GlyphBox(cx, cy, tw, th, rot)
		if glyph.X < view.X || glyph.Y < view.Y || glyph.Right() > view.Right() || glyph.Bottom() > view.Bottom() {
			continue
		}
		box := glyph.Inflate(p.pad)
		if p.collides(box) {
			continue
		}
		p.boxes = append(p.boxes, box)
		p.bounds = p.bounds.Union(box)
		return cx, cy, true, false
	}
}

func (p *placer) collides(box Rect) bool {
	if !box.Overlaps(p.bounds) {
		return false
	}
	for _, b := range p.boxes {
		if box.Overlaps(b) {
			return true
		}
	}
	return false
}
