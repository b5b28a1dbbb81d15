package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/loop"
	"github.com/matzehuels/wordcloud/pkg/scene"
)

const (
	// watchChromeRows is the number of terminal rows used by the status bar.
	watchChromeRows = 2

	// watchFrameInterval is slower than a browser frame; terminals redraw whole screens.
	watchFrameInterval = 50 * time.Millisecond

	// Font sizes in the terminal are emphasis levels, not pixels.
	watchMinSize = 1.0
	watchMaxSize = 3.0
)

// watchCommand creates the watch command, a live terminal host for a cloud.
func (c *CLI) watchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [words.json|words.toml]",
		Short: "Show a word list as a live cloud in the terminal",
		Long: `Show a word list as a live cloud in the terminal.

The cloud follows the terminal size: growing the window recentres the words,
shrinking it below the cloud relays them out. Words animate between layouts.

Keys: o cycles orientation, s cycles scale, r reloads the word list,
click selects a word, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.resolveConfigPath())
			if err != nil {
				return err
			}
			words, err := loadWords(args[0])
			if err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), args[0], words, cfg)
		},
	}
	return cmd
}

// =============================================================================
// Terminal container
// =============================================================================

// cellMeasurer measures in terminal cells with one trailing blank column, so
// horizontally adjacent words never touch.
type cellMeasurer struct{}

func (cellMeasurer) Measure(text string, size float64) (float64, float64) {
	w, h := layout.CellMeasurer{}.Measure(text, size)
	return w + 1, h
}

// termContainer forwards frames to the bubbletea program. Its size is only
// touched on the loop goroutine.
type termContainer struct {
	cols, rows float64
	send       func(tea.Msg)
}

func (t *termContainer) Size() (float64, float64) { return t.cols, t.rows }

func (t *termContainer) Draw(f scene.Frame) {
	// Frames must not be retained past Draw.
	f.Nodes = append([]scene.NodeState(nil), f.Nodes...)
	t.send(frameMsg(f))
}

// =============================================================================
// Messages
// =============================================================================

type (
	frameMsg    scene.Frame
	selectedMsg string
	renderedMsg struct {
		status        cloud.Status
		placed, total int
	}
	reloadedMsg struct{ err error }
)

// =============================================================================
// Model
// =============================================================================

// watchModel is the bubbletea model. It never calls the cloud directly; all
// cloud calls are posted to the cloud's loop.
type watchModel struct {
	loop      *loop.Loop
	cloud     *cloud.Cloud
	container *termContainer
	path      string

	options  cloud.Options
	frame    scene.Frame
	status   cloud.Status
	placed   int
	total    int
	selected string
	err      error
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.loop.Post(m.cloud.Destroy)
			return m, tea.Quit
		case "o":
			m.options.Orientation = nextOrientation(m.options.Orientation)
			m.setOptions()
		case "s":
			m.options.Scale = nextScale(m.options.Scale)
			m.setOptions()
		case "r":
			return m, m.reload()
		}
	case tea.WindowSizeMsg:
		cols, rows := float64(msg.Width), float64(max(1, msg.Height-watchChromeRows))
		m.loop.Post(func() {
			m.container.cols, m.container.rows = cols, rows
			m.cloud.Resize()
		})
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			x, y := float64(msg.X)+0.5, float64(msg.Y)+0.5
			m.loop.Post(func() { m.cloud.Activate(x, y, "click") })
		}
	case frameMsg:
		m.frame = scene.Frame(msg)
	case selectedMsg:
		m.selected = string(msg)
	case renderedMsg:
		m.status, m.placed, m.total = msg.status, msg.placed, msg.total
	case reloadedMsg:
		m.err = msg.err
	}
	return m, nil
}

func (m watchModel) setOptions() {
	o := m.options
	m.loop.Post(func() { m.cloud.SetOptions(o) })
}

func (m watchModel) reload() tea.Cmd {
	path, l, wc := m.path, m.loop, m.cloud
	return func() tea.Msg {
		words, err := loadWords(path)
		if err != nil {
			return reloadedMsg{err: err}
		}
		l.Post(func() { wc.SetData(words) })
		return reloadedMsg{}
	}
}

func (m watchModel) View() string {
	var b strings.Builder
	for _, line := range gridLines(m.frame, int(m.frame.Width), int(m.frame.Height)) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(m.statusBar())
	b.WriteByte('\n')
	b.WriteString(StyleDim.Render("o orientation  s scale  r reload  click select  q quit"))
	return b.String()
}

func (m watchModel) statusBar() string {
	parts := []string{
		StyleTitle.Render(appName),
		StyleNumber.Render(fmt.Sprintf("%d/%d", m.placed, m.total)) + StyleDim.Render(" words"),
	}
	if m.status != "" {
		parts = append(parts, statusLabel(m.status))
	}
	parts = append(parts,
		StyleDim.Render(m.options.Orientation.String()),
		StyleDim.Render(m.options.Scale.String()),
	)
	if m.selected != "" {
		parts = append(parts, StyleSuccess.Render("▸ "+m.selected))
	}
	if m.err != nil {
		parts = append(parts, StyleWarning.Render(m.err.Error()))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func nextOrientation(o layout.Orientation) layout.Orientation {
	// Arbitrary angles do not render on a cell grid.
	if o == layout.OrientationSingle {
		return layout.OrientationRightAngled
	}
	return layout.OrientationSingle
}

func nextScale(s layout.Scale) layout.Scale {
	switch s {
	case layout.ScaleLinear:
		return layout.ScaleLog
	case layout.ScaleLog:
		return layout.ScaleSqrt
	}
	return layout.ScaleLinear
}

// =============================================================================
// Grid rendering
// =============================================================================

type gridCell struct {
	r     rune
	style *lipgloss.Style
	cont  bool // right half of a wide rune
}

// sizeStyle maps an emphasis level to a text style.
func sizeStyle(size float64, color string) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	switch {
	case size >= watchMaxSize:
		return s.Bold(true).Underline(true)
	case size > watchMinSize:
		return s.Bold(true)
	}
	return s
}

// gridLines rasterizes the visible words of f onto a cols×rows cell grid.
// Words rotated by 45° or more are drawn vertically.
func gridLines(f scene.Frame, cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	grid := make([][]gridCell, rows)
	for i := range grid {
		grid[i] = make([]gridCell, cols)
	}
	set := func(x, y int, r rune, st *lipgloss.Style) int {
		w := max(1, runewidth.RuneWidth(r))
		if y < 0 || y >= rows || x < 0 || x+w > cols {
			return w
		}
		grid[y][x] = gridCell{r: r, style: st}
		if w == 2 {
			grid[y][x+1] = gridCell{cont: true, style: st}
		}
		return w
	}

	for _, n := range f.Visible() {
		if n.Exiting {
			continue
		}
		st := sizeStyle(n.Size, n.Color)
		runes := []rune(n.Text)
		if math.Abs(n.Rotation) >= 45 {
			x := int(math.Round(n.X - 0.5))
			y := int(math.Round(n.Y - float64(len(runes))/2))
			for i, r := range runes {
				set(x, y+i, r, &st)
			}
			continue
		}
		x := int(math.Round(n.X - float64(runewidth.StringWidth(n.Text))/2))
		y := int(math.Round(n.Y - 0.5))
		for _, r := range runes {
			x += set(x, y, r, &st)
		}
	}

	lines := make([]string, rows)
	for i, row := range grid {
		var b strings.Builder
		for x := 0; x < len(row); {
			st := row[x].style
			var run strings.Builder
			for ; x < len(row) && row[x].style == st; x++ {
				switch {
				case row[x].cont:
				case row[x].r == 0:
					run.WriteByte(' ')
				default:
					run.WriteRune(row[x].r)
				}
			}
			if st == nil {
				b.WriteString(run.String())
			} else {
				b.WriteString(st.Render(run.String()))
			}
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

// =============================================================================
// Runner
// =============================================================================

func (c *CLI) runWatch(ctx context.Context, path string, words []layout.Word, cfg config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := loop.New()
	container := &termContainer{}

	opts := cfg.Cloud
	opts.MinFontSize, opts.MaxFontSize = watchMinSize, watchMaxSize
	if opts.Orientation == layout.OrientationMultiple {
		opts.Orientation = layout.OrientationRightAngled
	}
	placement := cfg.placement()
	placement.Padding = -1

	// The alternate screen owns the terminal; only verbose runs log.
	logger := log.NewWithOptions(io.Discard, log.Options{})
	if c.Logger.GetLevel() <= log.DebugLevel {
		logger = c.Logger
	}

	wc := cloud.New(container, cfg.palette(),
		cloud.WithLoop(l),
		cloud.WithLogger(logger),
		cloud.WithMeasurer(cellMeasurer{}),
		cloud.WithOptions(opts),
		cloud.WithPlacement(placement),
		cloud.WithTransitions(cfg.Transitions.Move, cfg.Transitions.Exit),
		cloud.WithFrameInterval(watchFrameInterval),
		cloud.WithContext(ctx),
	)

	model := watchModel{loop: l, cloud: wc, container: container, path: path, options: opts}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	container.send = p.Send

	wc.Subscribe(cloud.EventSelect, func(ev cloud.Event) {
		p.Send(selectedMsg(ev.Word.Label()))
	})
	wc.Subscribe(cloud.EventRenderComplete, func(ev cloud.Event) {
		info := wc.DebugInfo()
		placed := 0
		for _, w := range info.Positions {
			if !math.IsNaN(w.X) {
				placed++
			}
		}
		p.Send(renderedMsg{status: ev.Status, placed: placed, total: len(info.Positions)})
	})
	wc.SetData(words)

	loopDone := make(chan error, 1)
	go func() { loopDone <- l.Run(ctx) }()

	_, err := p.Run()
	cancel()
	<-loopDone
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
