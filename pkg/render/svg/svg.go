// Package svg draws maze walls as scalable vector graphics.
package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/mazegen/pkg/maze"
)

const (
	defaultCellSize  = 20.0
	defaultWallWidth = 2.0
	defaultWall      = "#222222"
	defaultPath      = "#e4572e"
)

type Option func(*renderer)

type renderer struct {
	cellSize   float64
	wallWidth  float64
	wallColor  string
	pathColor  string
	background string
	path       []maze.Point
}

func WithCellSize(px float64) Option  { return func(r *renderer) { r.cellSize = px } }
func WithWallWidth(px float64) Option { return func(r *renderer) { r.wallWidth = px } }
func WithWallColor(c string) Option   { return func(r *renderer) { r.wallColor = c } }
func WithBackground(c string) Option  { return func(r *renderer) { r.background = c } }
func WithPath(p []maze.Point) Option  { return func(r *renderer) { r.path = p } }
func WithPathColor(c string) Option   { return func(r *renderer) { r.pathColor = c } }

// Render returns an SVG document of g. A wall is drawn between two cells
// unless the passage is open on both sides; the outer border is always drawn.
func Render(g *maze.Grid, opts ...Option) []byte {
	r := renderer{
		cellSize:  defaultCellSize,
		wallWidth: defaultWallWidth,
		wallColor: defaultWall,
		pathColor: defaultPath,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.cellSize <= 0 {
		r.cellSize = defaultCellSize
	}

	pad := r.wallWidth
	width := float64(g.Width())*r.cellSize + 2*pad
	height := float64(g.Height())*r.cellSize + 2*pad

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}

	r.renderPath(&buf, pad)
	r.renderWalls(&buf, g, pad)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) renderWalls(buf *bytes.Buffer, g *maze.Grid, pad float64) {
	fmt.Fprintf(buf, `  <g class="walls" stroke="%s" stroke-width="%.1f" stroke-linecap="square" fill="none">`+"\n",
		r.wallColor, r.wallWidth)

	s := r.cellSize
	w, h := float64(g.Width())*s, float64(g.Height())*s
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n", pad, pad, w, h)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := maze.Point{X: x, Y: y}
			x0, y0 := pad+float64(x)*s, pad+float64(y)*s
			if x < g.Width()-1 && !g.Passable(p, maze.East) {
				line(buf, x0+s, y0, x0+s, y0+s)
			}
			if y < g.Height()-1 && !g.Passable(p, maze.South) {
				line(buf, x0, y0+s, x0+s, y0+s)
			}
		}
	}
	buf.WriteString("  </g>\n")
}

func (r *renderer) renderPath(buf *bytes.Buffer, pad float64) {
	if len(r.path) == 0 {
		return
	}
	half := r.cellSize / 2
	fmt.Fprintf(buf, `  <polyline class="path" fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round" stroke-linecap="round" points="`,
		r.pathColor, r.cellSize/4)
	for i, p := range r.path {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.1f,%.1f", pad+float64(p.X)*r.cellSize+half, pad+float64(p.Y)*r.cellSize+half)
	}
	buf.WriteString(`"/>` + "\n")
}

func line(buf *bytes.Buffer, x1, y1, x2, y2 float64) {
	fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x1, y1, x2, y2)
}
