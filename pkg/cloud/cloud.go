package cloud

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	werrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/loop"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/scene"
)

// Container is the host drawing surface: it reports its size and receives
// frames.
type Container interface {
	scene.Surface
	Size() (width, height float64)
}

// Cloud is a live word cloud bound to a container. Every method must be
// called on the Cloud's loop goroutine; use [loop.Loop.Post] or
// [loop.Loop.Call] from elsewhere.
type Cloud struct {
	container Container
	loop      *loop.Loop
	scene     *scene.Scene
	logger    *log.Logger
	measurer  layout.Measurer
	placement layout.Config
	ctx       context.Context
	cancel    context.CancelFunc

	m       machine
	armSeq  uint64
	options Options
	words   []layout.Word
	hasData bool
	version uint64

	width, height    float64
	extentW, extentH float64
	status           Status
	completed        *Job
	reconcileStarted time.Time
	events           emitter
}

// New binds a cloud to container. colorFn maps raw text to a fill color;
// nil uses [DefaultPalette].
func New(container Container, colorFn ColorFunc, opts ...Option) *Cloud {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.loop == nil {
		cfg.loop = loop.New()
	}
	if cfg.measurer == nil {
		cfg.measurer = layout.EstimateMeasurer{}
	}
	if colorFn == nil {
		colorFn = DefaultPalette
	}

	ctx, cancel := context.WithCancel(cfg.ctx)
	c := &Cloud{
		container: container,
		loop:      cfg.loop,
		logger:    cfg.logger,
		measurer:  cfg.measurer,
		placement: cfg.placement,
		ctx:       ctx,
		cancel:    cancel,
		options:   cfg.options,
		status:    StatusIncomplete,
	}
	c.scene = scene.New(cfg.loop, container,
		scene.WithTiming(cfg.timing),
		scene.WithMeasurer(cfg.measurer),
		scene.WithColor(colorFn),
		scene.WithLogger(cfg.logger),
	)
	c.width, c.height = container.Size()
	c.scene.Resize(c.width, c.height)
	return c
}

// Loop returns the loop the cloud runs on.
func (c *Cloud) Loop() *loop.Loop { return c.loop }

// =============================================================================
// Public interface
// =============================================================================

// SetOptions replaces the options and relayouts. Options structurally equal
// to the current ones are ignored. MinFontSize and MaxFontSize are swapped
// when inverted.
func (c *Cloud) SetOptions(o Options) {
	if c.m.destroyed {
		return
	}
	o = o.Normalize()
	if cmp.Equal(c.options, o) {
		c.logger.Debug("options unchanged")
		return
	}
	c.options = o
	c.version++
	c.logger.Debug("options changed", "orientation", o.Orientation, "scale", o.Scale,
		"min", o.MinFontSize, "max", o.MaxFontSize)
	c.invalidate()
}

// Options returns the current normalized options.
func (c *Cloud) Options() Options { return c.options }

// SetData replaces the word set and relayouts. Words with empty text or a
// non-finite value are skipped.
func (c *Cloud) SetData(words []layout.Word) {
	if c.m.destroyed {
		return
	}
	kept := make([]layout.Word, 0, len(words))
	for _, w := range words {
		if err := werrors.ValidateWordText(w.RawText); err != nil {
			c.logger.Warn("word skipped", "err", werrors.UserMessage(err))
			continue
		}
		if err := werrors.ValidateWeight(w.RawText, w.Value); err != nil {
			c.logger.Warn("word skipped", "err", werrors.UserMessage(err))
			continue
		}
		kept = append(kept, w)
	}
	c.words = kept
	c.hasData = true
	c.version++
	c.logger.Debug("data changed", "words", len(kept), "skipped", len(words)-len(kept))
	c.invalidate()
}

// Resize reads the container size and rerenders. When the last cloud fits
// both the old and the new size, its status was COMPLETE and it reflects the
// latest data, the existing placements are reused and only recentred;
// otherwise a full layout runs. An unchanged size does nothing.
func (c *Cloud) Resize() {
	if c.m.destroyed {
		return
	}
	w, h := c.container.Size()
	if w == c.width && h == c.height {
		return
	}
	wasInside := c.width >= c.extentW && c.height >= c.extentH
	willBeInside := w >= c.extentW && h >= c.extentH
	c.width, c.height = w, h

	if !c.hasData {
		c.scene.Resize(w, h)
		return
	}
	keep := wasInside && willBeInside &&
		c.status == StatusComplete &&
		c.completed != nil && c.completed.Version == c.version &&
		!c.relayoutInFlight()

	c.logger.Debug("resize", "width", w, "height", h, "keepLayout", keep)
	if keep {
		job := c.completed.clone()
		job.ID = newJobID()
		job.Width, job.Height = w, h
		job.RefreshLayout = false
		c.submit(job)
		return
	}
	c.invalidate()
}

// relayoutInFlight reports whether a full layout is running or waiting to
// start. Its result supersedes the completed job, so resize must not reuse it.
func (c *Cloud) relayoutInFlight() bool {
	return (c.m.running != nil && c.m.running.RefreshLayout) ||
		(c.m.pending != nil && c.m.pending.RefreshLayout)
}

// Destroy stops all work and clears the scene. It is safe in every state;
// later calls to any method are ignored.
func (c *Cloud) Destroy() {
	if c.m.destroyed {
		return
	}
	c.logger.Debug("destroy", "phase", c.m.phase, "armed", c.m.armed, "pending", c.m.pending != nil)
	c.dispatch(event{kind: evDestroy})
	c.events = emitter{}
}

// Status reports whether the last measured cloud fits its viewport.
func (c *Cloud) Status() Status { return c.status }

// Completed returns the last fully reconciled job, or nil.
func (c *Cloud) Completed() *Job { return c.completed }

// Busy reports whether a job is armed, running or pending.
func (c *Cloud) Busy() bool { return !c.m.idle() }

// DebugInfo returns the completed placements and the current viewport size.
func (c *Cloud) DebugInfo() DebugInfo {
	info := DebugInfo{
		Positions: []DebugWord{},
		Size:      DebugSize{Width: c.width, Height: c.height},
		Status:    c.status,
	}
	if c.completed != nil {
		info.JobID = c.completed.ID
		info.Positions = debugWords(c.completed.Words)
	}
	return info
}

// Frame returns the scene's current frame.
func (c *Cloud) Frame() scene.Frame { return c.scene.Frame() }

// Activate hit-tests (x, y) in viewport coordinates and emits EventSelect
// with the word under it and interaction. It reports whether a word was hit.
func (c *Cloud) Activate(x, y float64, interaction any) bool {
	if c.m.destroyed {
		return false
	}
	w, ok := c.scene.HitTest(x, y)
	if !ok {
		return false
	}
	c.logger.Debug("select", "word", w.RawText)
	c.emit(Event{Kind: EventSelect, Word: w, Interaction: interaction})
	return true
}

// =============================================================================
// Scheduling
// =============================================================================

// invalidate submits a full relayout of the current words.
func (c *Cloud) invalidate() {
	if !c.hasData {
		return
	}
	mapper := layout.NewSizeMapper(c.words, c.options.Scale, c.options.MinFontSize, c.options.MaxFontSize)
	words := make([]layout.PlacedWord, len(c.words))
	for i, w := range c.words {
		size := max(1, mapper.Size(w.Value))
		words[i] = layout.PlacedWord{Word: w, Placement: layout.Unplaced(size, layout.Rotation(w.RawText, c.options.Orientation))}
	}
	c.submit(&Job{
		ID:            newJobID(),
		Words:         words,
		Width:         c.width,
		Height:        c.height,
		RefreshLayout: true,
		Options:       c.options,
		Version:       c.version,
	})
}

func (c *Cloud) submit(job *Job) {
	coalesced := c.m.pending != nil
	c.logger.Debug("job submitted", "job", job.ID, "words", len(job.Words),
		"refreshLayout", job.RefreshLayout, "coalesced", coalesced)
	observability.Cloud().OnJobSubmitted(c.ctx, job.ID, len(job.Words), job.RefreshLayout, coalesced)
	c.dispatch(event{kind: evSubmit, job: job})
}

func (c *Cloud) dispatch(ev event) {
	var effs []effect
	c.m, effs = c.m.step(ev)
	for _, e := range effs {
		c.apply(e)
	}
}

func (c *Cloud) apply(e effect) {
	switch e.kind {
	case effArm:
		c.armSeq++
		seq := c.armSeq
		c.loop.Post(func() {
			if seq == c.armSeq {
				c.dispatch(event{kind: evTick})
			}
		})
	case effDisarm:
		c.armSeq++
	case effPlace:
		c.place(e.job)
	case effReconcile:
		c.reconcile(e.job)
	case effClear:
		c.scene.Clear()
		if e.job != nil {
			c.scene.Resize(e.job.Width, e.job.Height)
		}
	case effMeasure:
		c.measure(e.job)
	case effComplete:
		c.complete(e.job)
	case effCoalesced:
		c.logger.Debug("job coalesced", "job", e.job.ID)
	case effDiscard:
		c.logger.Debug("stale layout discarded", "job", e.job.ID)
	case effCancel:
		c.cancel()
	}
}

// place runs the placement pass off the loop on a private copy of the words
// and posts the result back as evPlaced.
func (c *Cloud) place(job *Job) {
	words := layout.Words(job.Words)
	mapper := layout.NewSizeMapper(words, job.Options.Scale, job.Options.MinFontSize, job.Options.MaxFontSize)
	cfg := c.placement
	cfg.Width, cfg.Height = job.Width, job.Height
	cfg.Orientation = job.Options.Orientation
	cfg.Measurer = c.measurer
	ctx := c.ctx
	logger := c.logger

	c.logger.Debug("layout start", "job", job.ID, "words", len(words), "width", job.Width, "height", job.Height)
	observability.Cloud().OnLayoutStart(ctx, job.ID, len(words))

	c.loop.Go(func() func() {
		res, err := layout.Place(ctx, words, mapper.SizeFunc(), cfg)
		return func() {
			observability.Cloud().OnLayoutComplete(ctx, job.ID, res.Placed, res.Dropped, res.Elapsed, err)
			switch {
			case werrors.Is(err, werrors.ErrCodeNoPlacement):
				logger.Warn("no word could be placed", "job", job.ID, "words", len(words))
			case err != nil:
				logger.Debug("layout stopped", "job", job.ID, "err", err)
			default:
				logger.Debug("layout complete", "job", job.ID, "placed", res.Placed,
					"dropped", res.Dropped, "elapsed", res.Elapsed, "expired", res.Expired)
			}
			placed := *job
			placed.Words = res.Words
			if len(placed.Words) != len(job.Words) {
				placed.Words = job.Words
			}
			c.dispatch(event{kind: evPlaced, job: &placed})
		}
	})
}

func (c *Cloud) reconcile(job *Job) {
	c.reconcileStarted = c.loop.Now()
	diff := c.scene.Reconcile(job.Words, job.Width, job.Height,
		func() bool { return c.m.pending != nil },
		func(abandoned bool) {
			elapsed := c.loop.Now().Sub(c.reconcileStarted)
			observability.Cloud().OnReconcileComplete(c.ctx, job.ID, elapsed, abandoned)
			c.logger.Debug("reconcile done", "job", job.ID, "abandoned", abandoned, "elapsed", elapsed)
			c.dispatch(event{kind: evReconciled, abandoned: abandoned})
		},
	)
	observability.Cloud().OnReconcileStart(c.ctx, job.ID, diff.Entering, diff.Updating, diff.Exiting)
}

// measure updates status and the cloud extent from the scene bounds.
func (c *Cloud) measure(job *Job) {
	b := c.scene.Bounds()
	c.extentW, c.extentH = b.W, b.H
	if scene.Contained(b, job.Width, job.Height) {
		c.status = StatusComplete
	} else {
		c.status = StatusIncomplete
	}
}

func (c *Cloud) complete(job *Job) {
	c.completed = job
	c.logger.Debug("render complete", "job", job.ID, "words", len(job.Words), "status", c.status)
	observability.Cloud().OnRenderComplete(c.ctx, job.ID, c.status == StatusComplete)
	c.emit(Event{Kind: EventRenderComplete, JobID: job.ID, Status: c.status})
}

// Words returns a copy of the current input words.
func (c *Cloud) Words() []layout.Word {
	return slices.Clone(c.words)
}
