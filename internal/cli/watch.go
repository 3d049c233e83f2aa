package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/internal/config"
	errs "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/mazefile"
	"github.com/matzehuels/mazegen/pkg/render/ascii"
)

const (
	fpsTarget = 60

	// refreshPerFrame cells are redrawn every frame even when clean, so the
	// whole picture is refreshed periodically.
	refreshPerFrame = 64
)

var (
	styleUnvisited = lipgloss.NewStyle().Background(lipgloss.Color("54"))
	styleCursor    = lipgloss.NewStyle().Background(colorCyan)
	styleStatus    = lipgloss.NewStyle().Foreground(colorGray)
)

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	input    string
	output   string
	width    int
	height   int
	steps    int
	seed     uint64
	seeded   bool
	generate bool
	legacy   bool
	compress bool
}

// watchCommand creates the watch command, an animated view of the generator.
func (c *CLI) watchCommand() *cobra.Command {
	var opts watchOpts

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Animate maze generation in the terminal",
		Long: `Show a maze in the terminal and, with --generate, carve it step by step.

Only cells that changed since the last frame are redrawn. When the window is
closed the generator runs to completion before the maze is saved to --output.

Keys: space pauses, + and - change the steps per frame, q quits.`,
		Example: `  mazegen watch -x 30 -y 15 --generate
  mazegen watch -i maze.bin
  mazegen watch --generate -s 16 -o maze.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := c.Config.Generate
			if !cmd.Flags().Changed("width") {
				opts.width = gen.Width
			}
			if !cmd.Flags().Changed("height") {
				opts.height = gen.Height
			}
			if !cmd.Flags().Changed("steps") {
				opts.steps = gen.Steps
			}
			if !cmd.Flags().Changed("legacy") {
				opts.legacy = gen.Legacy
			}
			opts.seeded = cmd.Flags().Changed("seed")
			if !opts.seeded && gen.Seed != nil {
				opts.seed, opts.seeded = *gen.Seed, true
			}
			opts.width = config.Clamp(opts.width, config.MinDimension, config.MaxDimension)
			opts.height = config.Clamp(opts.height, config.MinDimension, config.MaxDimension)
			opts.steps = config.Clamp(opts.steps, config.MinSteps, config.MaxSteps)
			return c.runWatch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "maze file to show instead of an empty grid")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "save the maze here on exit")
	cmd.Flags().IntVarP(&opts.width, "width", "x", 0, "maze width in cells (1-1024)")
	cmd.Flags().IntVarP(&opts.height, "height", "y", 0, "maze height in cells (1-1024)")
	cmd.Flags().IntVarP(&opts.steps, "steps", "s", 0, "generator steps per frame (1-1024)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for a reproducible maze")
	cmd.Flags().BoolVarP(&opts.generate, "generate", "g", false, "carve a maze starting at the top-left cell")
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "use the 2-byte legacy header for input and output")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "save a zstd-compressed container")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, opts watchOpts) error {
	logger := loggerFromContext(ctx)
	format := formatFor(opts.legacy)

	if opts.output != "" {
		if err := checkOutput(opts.output); err != nil {
			return err
		}
	}

	var g *maze.Grid
	var err error
	if opts.input != "" {
		g, err = loadMaze(opts.input, format)
		logger.Debug("loaded maze", "path", opts.input)
	} else {
		g, err = maze.New(opts.width, opts.height)
	}
	if err != nil {
		return err
	}

	var gen *maze.Generator
	if opts.generate {
		var genOpts []maze.GeneratorOption
		if opts.seeded {
			genOpts = append(genOpts, maze.WithSeed(opts.seed))
		}
		gen, err = maze.NewGenerator(g, maze.Point{}, genOpts...)
		if err != nil {
			return err
		}
		logger.Debug("generator ready", "seed", gen.Seed())
	}

	p := tea.NewProgram(newWatchModel(g, gen, opts.steps), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "watch")
	}

	if gen != nil {
		if err := gen.Run(ctx); err != nil {
			return err
		}
		printSuccess("Generated %dx%d maze", g.Width(), g.Height())
		printKeyValue("seed", fmt.Sprint(gen.Seed()))
	}

	if opts.output != "" {
		if err := saveMaze(opts.output, g, mazefile.Options{Format: format, Compress: opts.compress}); err != nil {
			return err
		}
		printFile(opts.output)
	}
	return nil
}

// =============================================================================
// watchModel - bubbletea model
// =============================================================================

type tickMsg time.Time

// watchModel draws a grid one frame at a time. Cell drawings are cached and
// only cells flagged dirty are redrawn.
type watchModel struct {
	grid   *maze.Grid
	gen    *maze.Generator
	steps  int
	boxes  [][3]string
	cursor int

	frame  time.Duration
	last   time.Time
	fps    float64
	paused bool

	// terminal size, zero until the first WindowSizeMsg
	width  int
	height int
}

func newWatchModel(g *maze.Grid, gen *maze.Generator, steps int) watchModel {
	m := watchModel{
		grid:  g,
		gen:   gen,
		steps: config.Clamp(steps, config.MinSteps, config.MaxSteps),
		boxes: make([][3]string, g.Len()),
		frame: time.Second / fpsTarget,
	}
	g.MarkAllDirty()
	m.redraw()
	return m
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "+", "=":
			m.steps = min(m.steps*2, config.MaxSteps)
		case "-", "_":
			m.steps = max(m.steps/2, config.MinSteps)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		now := time.Time(msg)
		m.measure(now)
		if !m.paused {
			m.advance()
		}
		m.refresh()
		m.redraw()
		return m, m.tick()
	}
	return m, nil
}

// measure updates the smoothed frame rate.
func (m *watchModel) measure(now time.Time) {
	if !m.last.IsZero() {
		if dt := now.Sub(m.last); dt > 0 {
			weight := min(1.0, 10.0/fpsTarget)
			m.fps = m.fps*(1-weight) + float64(time.Second)/float64(dt)*weight
		}
	}
	m.last = now
}

// advance runs the generator for one frame. The old and new cursor cells are
// flagged so the highlight moves.
func (m *watchModel) advance() {
	if m.gen == nil || !m.gen.HasNext() {
		return
	}
	prev, hadPrev := m.gen.Current()
	m.gen.RunSteps(m.steps)
	if hadPrev {
		m.grid.MarkDirty(prev.X, prev.Y)
	}
	if cur, ok := m.gen.Current(); ok {
		m.grid.MarkDirty(cur.X, cur.Y)
	}
}

// refresh flags the next refreshPerFrame cells in row-major order.
func (m *watchModel) refresh() {
	w, n := m.grid.Width(), m.grid.Len()
	for i := 0; i < refreshPerFrame && i < n; i++ {
		m.grid.MarkDirty(m.cursor%w, m.cursor/w)
		m.cursor = (m.cursor + 1) % n
	}
}

// redraw re-renders dirty cells and clears their flags. It returns the
// number of cells drawn.
func (m *watchModel) redraw() int {
	w := m.grid.Width()
	drawn := 0
	for y := 0; y < m.grid.Height(); y++ {
		for x := 0; x < w; x++ {
			if !m.grid.IsDirty(x, y) {
				continue
			}
			m.grid.ClearDirty(x, y)
			m.boxes[y*w+x] = ascii.Box(m.grid.Cell(x, y), m.interior(x, y))
			drawn++
		}
	}
	return drawn
}

func (m *watchModel) interior(x, y int) string {
	if m.gen != nil && m.gen.HasNext() {
		if cur, ok := m.gen.Current(); ok && cur.X == x && cur.Y == y {
			return styleCursor.Render("  ")
		}
	}
	if m.grid.Cell(x, y).Raw() == 0 {
		return styleUnvisited.Render("  ")
	}
	return "  "
}

func (m watchModel) View() string {
	cols, rows := m.grid.Width(), m.grid.Height()
	if m.width > 0 {
		cols = min(cols, max(1, m.width/4))
	}
	if m.height > 0 {
		rows = min(rows, max(1, (m.height-2)/3))
	}

	var b strings.Builder
	var lines [3]strings.Builder
	for y := 0; y < rows; y++ {
		for i := range lines {
			lines[i].Reset()
		}
		for x := 0; x < cols; x++ {
			box := m.boxes[y*m.grid.Width()+x]
			for i := range lines {
				lines[i].WriteString(box[i])
			}
		}
		for i := range lines {
			b.WriteString(lines[i].String())
			b.WriteByte('\n')
		}
	}
	b.WriteString(styleStatus.Render(m.status()))
	return b.String()
}

func (m watchModel) status() string {
	parts := []string{fmt.Sprintf("%dx%d", m.grid.Width(), m.grid.Height())}
	if m.gen != nil {
		parts = append(parts,
			fmt.Sprintf("%d/%d cells", m.gen.Visited(), m.grid.Len()),
			fmt.Sprintf("%d steps/frame", m.steps))
		switch {
		case m.gen.State() == maze.Done:
			parts = append(parts, "done")
		case m.paused:
			parts = append(parts, "paused")
		default:
			parts = append(parts, m.gen.State().String())
		}
	}
	parts = append(parts, fmt.Sprintf("%.1f fps", m.fps), "space pause  +/- speed  q quit")
	return strings.Join(parts, " · ")
}
