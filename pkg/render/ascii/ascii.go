// Package ascii prints mazes as plain text.
//
// Two layouts are available. [StyleBoxes] draws every cell as its own 4x3
// box, so shared walls appear twice:
//
//	+--++--+
//	|      |
//	+--++  +
//
// [StyleCompact] draws shared walls once and is half the size.
//
// The renderer only reads the grid through its query operations; it never
// touches dirty flags.
package ascii

import (
	"strings"

	"github.com/matzehuels/mazegen/pkg/maze"
)

// Style selects the text layout.
type Style int

const (
	// StyleBoxes draws one box per cell.
	StyleBoxes Style = iota
	// StyleCompact draws shared walls once.
	StyleCompact
)

// ParseStyle maps "boxes" or "compact" to a Style.
func ParseStyle(s string) (Style, bool) {
	switch s {
	case "", "boxes":
		return StyleBoxes, true
	case "compact":
		return StyleCompact, true
	}
	return 0, false
}

// Limits for printing a maze to a console in verbose mode.
const (
	MaxPrintWidth  = 12
	MaxPrintHeight = 20
)

// Fits reports whether g is small enough to print in verbose mode.
func Fits(g *maze.Grid) bool {
	return g.Width() <= MaxPrintWidth && g.Height() <= MaxPrintHeight
}

// Decorator rewrites the interior fragment of a cell, e.g. to color it.
type Decorator func(x, y int, fragment string) string

type options struct {
	style    Style
	path     map[maze.Point]bool
	decorate Decorator
}

// Option configures rendering.
type Option func(*options)

// WithStyle selects the layout. The default is [StyleBoxes].
func WithStyle(s Style) Option { return func(o *options) { o.style = s } }

// WithPath marks the given cells, typically a solution from [maze.Solve].
func WithPath(path []maze.Point) Option {
	return func(o *options) {
		o.path = make(map[maze.Point]bool, len(path))
		for _, p := range path {
			o.path[p] = true
		}
	}
}

// WithDecorator applies fn to every cell interior after path marking.
func WithDecorator(fn Decorator) Option { return func(o *options) { o.decorate = fn } }

// Render returns the text drawing of g, one line per text row, each ending
// in a newline.
func Render(g *maze.Grid, opts ...Option) string {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.style == StyleCompact {
		return renderCompact(g, &o)
	}
	return renderBoxes(g, &o)
}

func (o *options) interior(x, y int, width int) string {
	fill := " "
	if o.path[maze.Point{X: x, Y: y}] {
		fill = "*"
	}
	s := strings.Repeat(fill, width)
	if o.decorate != nil {
		s = o.decorate(x, y, s)
	}
	return s
}

// Box returns the three text lines of one cell in [StyleBoxes] layout.
// interior fills the two columns between the side walls and may carry
// terminal escapes.
func Box(c maze.Cell, interior string) [3]string {
	return [3]string{
		pick(c.Get(maze.North), "+  +", "+--+"),
		pick(c.Get(maze.West), " ", "|") + interior + pick(c.Get(maze.East), " ", "|"),
		pick(c.Get(maze.South), "+  +", "+--+"),
	}
}

func renderBoxes(g *maze.Grid, o *options) string {
	var b strings.Builder
	var rows [3]strings.Builder
	for y := 0; y < g.Height(); y++ {
		for i := range rows {
			rows[i].Reset()
		}
		for x := 0; x < g.Width(); x++ {
			box := Box(g.Cell(x, y), o.interior(x, y, 2))
			for i, line := range box {
				rows[i].WriteString(line)
			}
		}
		for i := range rows {
			b.WriteString(rows[i].String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderCompact(g *maze.Grid, o *options) string {
	var b strings.Builder
	b.WriteByte('+')
	for x := 0; x < g.Width(); x++ {
		b.WriteString(pick(g.Open(x, 0, maze.North), "   +", "---+"))
	}
	b.WriteByte('\n')

	for y := 0; y < g.Height(); y++ {
		b.WriteString(pick(g.Open(0, y, maze.West), " ", "|"))
		for x := 0; x < g.Width(); x++ {
			b.WriteString(o.interior(x, y, 3))
			b.WriteString(pick(g.Open(x, y, maze.East), " ", "|"))
		}
		b.WriteByte('\n')

		b.WriteByte('+')
		for x := 0; x < g.Width(); x++ {
			b.WriteString(pick(g.Open(x, y, maze.South), "   +", "---+"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func pick(open bool, ifOpen, ifWall string) string {
	if open {
		return ifOpen
	}
	return ifWall
}
