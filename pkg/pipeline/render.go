package pipeline

import (
	"context"

	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/render"
	"github.com/matzehuels/mazegen/pkg/render/ascii"
	"github.com/matzehuels/mazegen/pkg/render/nodelink"
	"github.com/matzehuels/mazegen/pkg/render/svg"
)

// Render draws g without caching.
func Render(ctx context.Context, g *maze.Grid, opts RenderOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var path []maze.Point
	if opts.Solve {
		p, err := SolutionPath(g)
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch opts.Kind {
	case KindASCII:
		style, _ := ascii.ParseStyle(opts.Style)
		return []byte(ascii.Render(g, ascii.WithStyle(style), ascii.WithPath(path))), nil
	case KindSVG:
		return svg.Render(g, svg.WithPath(path)), nil
	case KindPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = 2.0
		}
		return render.ToPNG(ctx, svg.Render(g, svg.WithPath(path), svg.WithBackground("white")), scale)
	case KindPDF:
		return render.ToPDF(ctx, svg.Render(g, svg.WithPath(path)))
	case KindDOT:
		return []byte(nodelink.ToDOT(g, nodelink.Options{Path: path})), nil
	default: // KindNodelink
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{Path: path}))
	}
}

// SolutionPath returns the path from the top-left to the bottom-right cell.
func SolutionPath(g *maze.Grid) ([]maze.Point, error) {
	return maze.Solve(g, maze.Point{}, maze.Point{X: g.Width() - 1, Y: g.Height() - 1})
}
