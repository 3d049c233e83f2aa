// Package pkg provides the libraries behind mazegen.
//
// # Overview
//
// Mazegen carves perfect mazes (every cell reachable, exactly one path
// between any two cells) and stores them in a compact nibble-packed format.
// The pkg directory is organized as:
//
//  1. [maze] - Grid, cell bitfields, codec and the step-wise generator
//  2. [mazefile] - Files on disk: raw, zstd-compressed and JSON
//  3. [render] - Text, SVG, passage graph and PNG/PDF conversion
//  4. [pipeline] - Orchestration (generate, render) with caching
//  5. [cache], [store] - Cache backends and persistent maze records
//  6. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	width, height, seed
//	         ↓
//	    [maze] Generator (randomized depth-first search)
//	         ↓
//	    [maze] Grid.Encode
//	         ↓
//	    [mazefile] / [store] / [render]
//
// # Quick Start
//
//	g, _ := maze.New(20, 10)
//	gen, _ := maze.NewGenerator(g, maze.Point{}, maze.WithSeed(42))
//	_ = gen.Run(ctx)
//	fmt.Print(ascii.Render(g))
//	data, _ := g.Encode(maze.FormatCurrent)
package pkg
