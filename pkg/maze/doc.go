// Package maze provides the maze data model, its binary codec, and a
// step-at-a-time randomized depth-first-search generator.
//
// # Overview
//
// A maze is a rectangular [Grid] of [Cell] values. Each cell is a 4-bit
// connectivity field with one bit per compass [Direction]; a set bit means the
// passage in that direction is open, a clear bit means a wall. A freshly
// created grid is fully walled.
//
// # Generation
//
// [Generator] carves a perfect maze (a spanning tree of the grid graph) with
// an iterative backtracker. It is resumable: callers drive it with
// [Generator.HasNext] and [Generator.Step] so that rendering can be
// interleaved with generation, or stop early and keep a partial maze.
//
//	g, _ := maze.New(16, 16)
//	gen, _ := maze.NewGenerator(g, maze.Point{}, maze.WithSeed(42))
//	for gen.HasNext() {
//	    gen.Step()
//	}
//
// The neighbor shuffle is the only source of randomness. Inject a seeded
// source with [WithSeed] or [WithRand] for reproducible output.
//
// # Binary Format
//
// [Grid.Encode] and [Decode] implement the file format:
//
//	current: [width uint32 LE][height uint32 LE][nibbles...]
//	legacy:  [width uint8][height uint8][nibbles...]
//
// Cells are packed row-major, two per byte, the earlier cell in the high
// nibble. When the cell count is odd the final low nibble is zero. Within a
// nibble north is bit 3, east bit 2, south bit 1 and west bit 0.
//
// The header width is selected with a [Format] value passed to every call.
// The raw format carries no version tag, so encoder and decoder must agree.
//
// # Dirty Tracking
//
// Every grid keeps a per-cell dirty flag for incremental redraw. Decoding
// and construction mark all cells dirty; [Grid.Link] marks both endpoints.
// Dirty flags never affect connectivity.
//
// # Concurrency
//
// Grid and Generator are not safe for concurrent use. A grid is mutated by at
// most one generator at a time.
package maze
