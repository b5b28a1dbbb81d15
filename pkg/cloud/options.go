package cloud

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/loop"
	"github.com/matzehuels/wordcloud/pkg/scene"
)

const (
	// DefaultMinFontSize is the smallest font size in pixels.
	DefaultMinFontSize = 18.0
	// DefaultMaxFontSize is the largest font size in pixels.
	DefaultMaxFontSize = 72.0
)

// Options are the visual options a host can change at runtime.
type Options struct {
	Orientation layout.Orientation `toml:"orientation" json:"orientation"`
	MinFontSize float64            `toml:"min_font_size" json:"minFontSize"`
	MaxFontSize float64            `toml:"max_font_size" json:"maxFontSize"`
	Scale       layout.Scale       `toml:"scale" json:"scale"`
}

// DefaultOptions returns single orientation, linear scale, 18–72px.
func DefaultOptions() Options {
	return Options{
		Orientation: layout.OrientationSingle,
		MinFontSize: DefaultMinFontSize,
		MaxFontSize: DefaultMaxFontSize,
		Scale:       layout.ScaleLinear,
	}
}

// Normalize returns o with finite font sizes and MinFontSize ≤ MaxFontSize.
// A NaN or infinite bound is replaced by its default.
func (o Options) Normalize() Options {
	if math.IsNaN(o.MinFontSize) || math.IsInf(o.MinFontSize, 0) {
		o.MinFontSize = DefaultMinFontSize
	}
	if math.IsNaN(o.MaxFontSize) || math.IsInf(o.MaxFontSize, 0) {
		o.MaxFontSize = DefaultMaxFontSize
	}
	if o.MinFontSize > o.MaxFontSize {
		o.MinFontSize, o.MaxFontSize = o.MaxFontSize, o.MinFontSize
	}
	return o
}

// =============================================================================
// Construction options
// =============================================================================

// Option configures a Cloud at construction.
type Option func(*config)

type config struct {
	logger    *log.Logger
	loop      *loop.Loop
	measurer  layout.Measurer
	timing    scene.Timing
	placement layout.Config
	ctx       context.Context
	options   Options
}

func defaultConfig() config {
	return config{
		timing:  scene.DefaultTiming(),
		ctx:     context.Background(),
		options: DefaultOptions(),
	}
}

// WithLogger sets the logger (default discards).
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithLoop runs the Cloud on l. Without it the Cloud creates a loop on the
// system clock, reachable through [Cloud.Loop], that the host must drive.
func WithLoop(l *loop.Loop) Option {
	return func(c *config) { c.loop = l }
}

// WithMeasurer sets the glyph measurer for placement and hit testing.
func WithMeasurer(m layout.Measurer) Option {
	return func(c *config) { c.measurer = m }
}

// WithTransitions sets move and exit durations.
func WithTransitions(move, exit time.Duration) Option {
	return func(c *config) {
		c.timing.Move = move
		c.timing.Exit = exit
	}
}

// WithFrameInterval sets the animation tick period.
func WithFrameInterval(d time.Duration) Option {
	return func(c *config) { c.timing.Frame = d }
}

// WithPlacement sets padding, budget and seed for placement passes.
// Viewport, orientation and measurer fields are ignored.
func WithPlacement(cfg layout.Config) Option {
	return func(c *config) { c.placement = cfg }
}

// WithContext sets the parent context for placement and hooks.
// Destroy cancels a child of it.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithOptions sets the initial options.
func WithOptions(o Options) Option {
	return func(c *config) { c.options = o.Normalize() }
}
