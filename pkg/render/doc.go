// Package render turns maze grids into pictures.
//
// # Overview
//
// The renderers live in subpackages and only read a grid through its query
// operations:
//
//   - [ascii]: plain text, used by the CLI and the live watcher
//   - [svg]: vector wall drawing with an optional solution path
//   - [nodelink]: the passage graph as Graphviz DOT, laid out on the grid
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	out := svg.Render(g, svg.WithCellSize(20))
//	pdf, err := render.ToPDF(ctx, out)
//	png, err := render.ToPNG(ctx, out, 2.0) // 2x scale
//
// [ascii]: github.com/matzehuels/mazegen/pkg/render/ascii
// [svg]: github.com/matzehuels/mazegen/pkg/render/svg
// [nodelink]: github.com/matzehuels/mazegen/pkg/render/nodelink
package render
