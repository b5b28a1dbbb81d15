package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	werrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/loop"
	"github.com/matzehuels/wordcloud/pkg/scene"
	"github.com/matzehuels/wordcloud/pkg/sink"
)

const (
	formatSVG  = "svg"
	formatJSON = "json"
	formatPDF  = "pdf"
	formatPNG  = "png"
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatSVG: true, formatJSON: true, formatPDF: true, formatPNG: true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return werrors.New(werrors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'json', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file path (or base path for multiple outputs)
	formats     []string // output formats: "svg", "pdf", "png", "json"
	width       float64  // viewport width in pixels
	height      float64  // viewport height in pixels
	orientation string   // "single", "right angled", "multiple"
	scale       string   // "linear", "log", "square root"
	minSize     float64  // smallest font size
	maxSize     float64  // largest font size
	seed        uint64   // placement seed
	budget      time.Duration
	background  string // page background for SVG/PDF
	title       string // document title
	pngScale    float64
	interactive bool // SVG hover styling
}

// renderCommand creates the render command for headless layout and export.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{pngScale: 2}

	cmd := &cobra.Command{
		Use:   "render [words.json|words.toml|-]",
		Short: "Lay out a word list and export it",
		Long: `Lay out a word list and export the settled cloud.

The word list is a JSON array of {"text", "display", "value", "meta"} objects
or a TOML file with [[words]] tables. Values are mapped to font sizes with the
configured scale; the biggest words are placed first.`,
		Example: `  # SVG with defaults
  wordcloud render words.json -o cloud.svg

  # Several formats, rotated words, log scale
  wordcloud render words.toml -f svg,pdf,json --orientation "right angled" --scale log -o out/cloud`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			cfg, err := loadConfig(c.resolveConfigPath())
			if err != nil {
				return err
			}
			if err := applyRenderFlags(cmd, &cfg, &opts); err != nil {
				return err
			}
			words, err := loadWords(args[0])
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), words, cfg, &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", defaultWidth, "viewport width")
	cmd.Flags().Float64Var(&opts.height, "height", defaultHeight, "viewport height")
	cmd.Flags().StringVar(&opts.orientation, "orientation", "", "word rotation: single, right angled, multiple")
	cmd.Flags().StringVar(&opts.scale, "scale", "", "value to size scale: linear, log, square root")
	cmd.Flags().Float64Var(&opts.minSize, "min-size", cloud.DefaultMinFontSize, "smallest font size")
	cmd.Flags().Float64Var(&opts.maxSize, "max-size", cloud.DefaultMaxFontSize, "largest font size")
	cmd.Flags().Uint64Var(&opts.seed, "seed", layout.DefaultSeed, "placement seed")
	cmd.Flags().DurationVar(&opts.budget, "budget", layout.DefaultBudget, "placement time budget")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (PNG defaults to white)")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", opts.pngScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "add hover highlighting to SVG output")
	_ = cmd.RegisterFlagCompletionFunc("orientation", orientationCompletion)
	_ = cmd.RegisterFlagCompletionFunc("scale", scaleCompletion)

	return cmd
}

// applyRenderFlags overrides config values with explicitly set flags.
func applyRenderFlags(cmd *cobra.Command, cfg *config, opts *renderOpts) error {
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Height = opts.height
	}
	if flags.Changed("orientation") {
		o, err := layout.ParseOrientation(opts.orientation)
		if err != nil {
			return err
		}
		cfg.Cloud.Orientation = o
	}
	if flags.Changed("scale") {
		s, err := layout.ParseScale(opts.scale)
		if err != nil {
			return err
		}
		cfg.Cloud.Scale = s
	}
	if flags.Changed("min-size") {
		cfg.Cloud.MinFontSize = opts.minSize
	}
	if flags.Changed("max-size") {
		cfg.Cloud.MaxFontSize = opts.maxSize
	}
	if flags.Changed("seed") {
		cfg.Layout.Seed = opts.seed
	}
	if flags.Changed("budget") {
		cfg.Layout.Budget = opts.budget
	}
	cfg.Cloud = cfg.Cloud.Normalize()
	return werrors.ValidateViewport(cfg.Width, cfg.Height)
}

// fixedContainer is a headless container of constant size. It only counts
// frames; the settled frame is read from the cloud.
type fixedContainer struct {
	width, height float64
	frames        int
}

func (c *fixedContainer) Size() (float64, float64) { return c.width, c.height }
func (c *fixedContainer) Draw(scene.Frame)         { c.frames++ }

// renderResult is a settled cloud ready for export.
type renderResult struct {
	frame   scene.Frame
	info    cloud.DebugInfo
	options cloud.Options
	frames  int
}

// layoutWords runs a cloud to completion on a virtual clock so transitions
// settle instantly.
func layoutWords(ctx context.Context, logger *log.Logger, words []layout.Word, cfg config) (renderResult, error) {
	l := loop.New(loop.WithClock(loop.NewVirtualClock(time.Unix(0, 0))))
	container := &fixedContainer{width: cfg.Width, height: cfg.Height}

	var measurer layout.Measurer = layout.EstimateMeasurer{}
	if fm, err := layout.NewFontMeasurer(); err == nil {
		measurer = fm
	} else {
		logger.Warn("font measurer unavailable, estimating glyph widths", "err", err)
	}

	opts := append(cfg.cloudOptions(),
		cloud.WithLoop(l),
		cloud.WithLogger(logger),
		cloud.WithMeasurer(measurer),
		cloud.WithContext(ctx),
	)
	wc := cloud.New(container, cfg.palette(), opts...)
	defer wc.Destroy()

	completed := false
	wc.Subscribe(cloud.EventRenderComplete, func(cloud.Event) { completed = true })
	wc.SetData(words)

	if err := l.Drain(ctx); err != nil {
		return renderResult{}, err
	}
	if !completed {
		return renderResult{}, werrors.New(werrors.ErrCodeInternal, "cloud did not complete")
	}
	return renderResult{
		frame:   wc.Frame(),
		info:    wc.DebugInfo(),
		options: wc.Options(),
		frames:  container.frames,
	}, nil
}

func (c *CLI) runRender(ctx context.Context, words []layout.Word, cfg config, opts *renderOpts, input string) error {
	logger := c.Logger
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d words...", len(words)))
	spinner.Start()
	res, err := layoutWords(ctx, logger, words, cfg)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	placed := 0
	for _, p := range res.info.Positions {
		if !math.IsNaN(p.X) {
			placed++
		}
	}
	prog.done(fmt.Sprintf("Placed %d of %d words", placed, len(res.info.Positions)))
	logger.Debug("frames drawn", "count", res.frames)

	paths, err := writeOutputs(res, opts, input)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		// The document went to stdout.
		return nil
	}
	printSuccess("Word cloud rendered")
	printStats(placed, len(res.info.Positions), res.info.Status)
	for _, p := range paths {
		printFile(p)
	}
	if res.info.Status == cloud.StatusIncomplete {
		printWarning("Some words did not fit; try a larger viewport or smaller font sizes")
	}
	return nil
}

// writeOutputs renders every requested format and writes it. With a single
// format and no output path the document goes to stdout.
func writeOutputs(res renderResult, opts *renderOpts, input string) ([]string, error) {
	if len(opts.formats) == 1 {
		data, err := renderFormat(res, opts.formats[0], opts)
		if err != nil {
			return nil, err
		}
		if err := writeFile(data, opts.output); err != nil {
			return nil, err
		}
		if opts.output == "" {
			return nil, nil
		}
		return []string{opts.output}, nil
	}

	base := basePath(opts.output, input)
	var paths []string
	for _, f := range opts.formats {
		data, err := renderFormat(res, f, opts)
		if err != nil {
			return paths, err
		}
		path := base + "." + f
		if err := writeFile(data, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderFormat(res renderResult, format string, opts *renderOpts) ([]byte, error) {
	switch format {
	case formatSVG:
		return sink.RenderSVG(res.frame, svgOptions(opts)...), nil
	case formatPDF:
		var pdfOpts []sink.PDFOption
		if opts.background != "" {
			pdfOpts = append(pdfOpts, sink.WithPDFBackground(opts.background))
		}
		if opts.title != "" {
			pdfOpts = append(pdfOpts, sink.WithPDFTitle(opts.title))
		}
		return sink.RenderPDF(res.frame, pdfOpts...)
	case formatPNG:
		return sink.RenderPNG(res.frame, sink.WithScale(opts.pngScale), sink.WithPNGSVGOptions(svgOptions(opts)...))
	case formatJSON:
		return sink.RenderJSON(res.info,
			sink.WithJSONFrame(res.frame),
			sink.WithJSONOptions(res.options),
			sink.WithJSONBuildInfo(),
		)
	}
	return nil, werrors.New(werrors.ErrCodeInvalidFormat, "invalid format: %s", format)
}

func svgOptions(opts *renderOpts) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.background != "" {
		out = append(out, sink.WithBackground(opts.background))
	}
	if opts.title != "" {
		out = append(out, sink.WithTitle(opts.title))
	}
	if opts.interactive {
		out = append(out, sink.WithInteraction())
	}
	return out
}

// basePath derives the output base path for multi-format output.
func basePath(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	if input == "-" {
		return "wordcloud"
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// writeFile writes data to path, or to stdout when path is empty.
func writeFile(data []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
