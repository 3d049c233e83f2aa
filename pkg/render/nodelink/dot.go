package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/render"
)

// Options configures passage graph rendering.
type Options struct {
	// Detailed labels each node with its coordinates and cell bits.
	// When false, nodes are unlabeled dots.
	Detailed bool
	// Path highlights the given cells and the passages between them.
	Path []maze.Point
}

// nodeSpacing is the distance in inches between adjacent cell nodes.
const nodeSpacing = 0.6

// ToDOT converts the passage graph of g to Graphviz DOT. Every cell becomes
// a node pinned at its grid position; every passage that is open on both
// sides becomes an undirected edge.
func ToDOT(g *maze.Grid, opts Options) string {
	onPath := make(map[maze.Point]bool, len(opts.Path))
	for _, p := range opts.Path {
		onPath[p] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	if opts.Detailed {
		buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=8, width=0.5, height=0.3, fixedsize=true];\n")
	} else {
		buf.WriteString("  node [shape=circle, style=filled, fillcolor=black, label=\"\", width=0.12, fixedsize=true];\n")
	}
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := maze.Point{X: x, Y: y}
			fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(p), fmtAttrs(g, p, onPath[p], opts.Detailed))
		}
	}

	buf.WriteString("\n")
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := maze.Point{X: x, Y: y}
			for _, d := range [...]maze.Direction{maze.East, maze.South} {
				if !g.Passable(p, d) {
					continue
				}
				q := p.Step(d)
				attrs := ""
				if onPath[p] && onPath[q] {
					attrs = " [color=red]"
				}
				fmt.Fprintf(&buf, "  %q -- %q%s;\n", nodeID(p), nodeID(q), attrs)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(p maze.Point) string {
	return strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

func fmtAttrs(g *maze.Grid, p maze.Point, highlight, detailed bool) string {
	// Graphviz y grows upward; grid y grows downward.
	attrs := fmt.Sprintf("pos=\"%.2f,%.2f!\"", float64(p.X)*nodeSpacing, float64(g.Height()-1-p.Y)*nodeSpacing)
	if detailed {
		attrs += fmt.Sprintf(", label=\"%s\\n%s\"", p, g.Cell(p.X, p.Y))
	}
	if highlight {
		if detailed {
			attrs += ", fillcolor=\"#ffd6d6\""
		} else {
			attrs += ", fillcolor=red"
		}
	}
	return attrs
}

// RenderSVG renders a DOT graph produced by [ToDOT] to SVG using Graphviz.
// Node positions are pinned, so the neato engine is used.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root tag, which carries pt units,
// with a plain one sized by the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
