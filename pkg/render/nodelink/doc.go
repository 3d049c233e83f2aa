// Package nodelink renders a maze as its passage graph.
//
// # Overview
//
// A perfect maze is a spanning tree of the grid graph. This package draws
// that tree directly: one node per cell, pinned at the cell's position, and
// one edge per open passage. Dead ends show up as leaves and the solution
// path can be highlighted.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Path: path})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
