package maze

import (
	"math"

	errs "github.com/matzehuels/mazegen/pkg/errors"
)

// MaxDimension is the largest width or height the current file header can
// hold.
const MaxDimension = math.MaxUint32

// Grid is a rectangular maze: width*height cells addressed row-major by
// y*width+x, plus a parallel dirty flag per cell.
//
// Coordinates passed to the accessors must lie inside the grid; out-of-range
// access is a programming error and panics with an OUT_OF_BOUNDS error.
type Grid struct {
	width  int
	height int
	cells  []Cell
	dirty  []bool
}

// New allocates a fully walled width x height grid with every cell dirty.
// It returns an INVALID_DIMENSIONS error if either dimension is not positive,
// exceeds [MaxDimension], or the cell count overflows int.
func New(width, height int) (*Grid, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return newGrid(width, height), nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return errs.New(errs.ErrCodeInvalidDimensions, "dimensions must be positive, got %dx%d", width, height)
	}
	if uint64(width) > MaxDimension || uint64(height) > MaxDimension {
		return errs.New(errs.ErrCodeInvalidDimensions, "dimensions %dx%d exceed %d", width, height, uint64(MaxDimension))
	}
	if width > math.MaxInt/height {
		return errs.New(errs.ErrCodeInvalidDimensions, "cell count of %dx%d overflows", width, height)
	}
	return nil
}

func newGrid(width, height int) *Grid {
	n := width * height
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, n),
		dirty:  make([]bool, n),
	}
	g.MarkAllDirty()
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(errs.New(errs.ErrCodeOutOfBounds, "cell (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Cell returns the cell at (x, y).
func (g *Grid) Cell(x, y int) Cell {
	return g.cells[g.index(x, y)]
}

// SetCell replaces the cell at (x, y) and marks it dirty. Symmetry with the
// neighbors is the caller's responsibility.
func (g *Grid) SetCell(x, y int, c Cell) {
	i := g.index(x, y)
	g.cells[i] = c
	g.dirty[i] = true
}

// Open reports whether the passage from (x, y) in direction d is open.
func (g *Grid) Open(x, y int, d Direction) bool {
	return g.Cell(x, y).Get(d)
}

// Passable reports whether p connects to its neighbor in direction d: the
// neighbor exists and both sides have the passage open.
func (g *Grid) Passable(p Point, d Direction) bool {
	q := p.Step(d)
	if !g.InBounds(p.X, p.Y) || !g.InBounds(q.X, q.Y) {
		return false
	}
	return g.Cell(p.X, p.Y).Get(d) && g.Cell(q.X, q.Y).Get(d.Opposite())
}

// Link opens the passage between two adjacent cells on both sides and marks
// both dirty. It returns OUT_OF_BOUNDS if either point is outside the grid
// and INVALID_INPUT if the points are not 4-adjacent.
func (g *Grid) Link(a, b Point) error {
	if !g.InBounds(a.X, a.Y) {
		return errs.New(errs.ErrCodeOutOfBounds, "cell %v outside %dx%d grid", a, g.width, g.height)
	}
	if !g.InBounds(b.X, b.Y) {
		return errs.New(errs.ErrCodeOutOfBounds, "cell %v outside %dx%d grid", b, g.width, g.height)
	}
	d, ok := a.DirectionTo(b)
	if !ok {
		return errs.New(errs.ErrCodeInvalidInput, "cells %v and %v are not adjacent", a, b)
	}
	g.link(a, b, d)
	return nil
}

// link carves a→b where b is a's neighbor in direction d.
func (g *Grid) link(a, b Point, d Direction) {
	ia, ib := a.Y*g.width+a.X, b.Y*g.width+b.X
	g.cells[ia].Set(d, true)
	g.cells[ib].Set(d.Opposite(), true)
	g.dirty[ia] = true
	g.dirty[ib] = true
}

// MarkDirty flags (x, y) for redraw.
func (g *Grid) MarkDirty(x, y int) {
	g.dirty[g.index(x, y)] = true
}

// ClearDirty clears the redraw flag of (x, y).
func (g *Grid) ClearDirty(x, y int) {
	g.dirty[g.index(x, y)] = false
}

// IsDirty reports whether (x, y) changed since its flag was last cleared.
func (g *Grid) IsDirty(x, y int) bool {
	return g.dirty[g.index(x, y)]
}

// MarkAllDirty flags every cell for redraw.
func (g *Grid) MarkAllDirty() {
	for i := range g.dirty {
		g.dirty[i] = true
	}
}

// DirtyCount returns the number of cells flagged for redraw.
func (g *Grid) DirtyCount() int {
	n := 0
	for _, d := range g.dirty {
		if d {
			n++
		}
	}
	return n
}

// Neighbors returns the in-bounds 4-neighbors of p in the order
// west, east, north, south.
func (g *Grid) Neighbors(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, d := range neighborOrder {
		q := p.Step(d)
		if g.InBounds(q.X, q.Y) {
			out = append(out, q)
		}
	}
	return out
}

// neighborOrder is (x-1,y), (x+1,y), (x,y-1), (x,y+1).
var neighborOrder = [4]Direction{West, East, North, South}

// Edges counts the undirected passages that are open on both sides.
func (g *Grid) Edges() int {
	n := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{X: x, Y: y}
			if g.Passable(p, East) {
				n++
			}
			if g.Passable(p, South) {
				n++
			}
		}
	}
	return n
}

// Consistent reports whether every open bit is mirrored by the neighbor and
// no passage leads off the grid.
func (g *Grid) Consistent() bool {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			for _, d := range Directions {
				if c.Get(d) && !g.Passable(Point{X: x, Y: y}, d) {
					return false
				}
			}
		}
	}
	return true
}

// Equal reports whether o has the same dimensions and cell bitfields.
// Dirty flags are not compared.
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i, c := range g.cells {
		if c.Raw() != o.cells[i].Raw() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy including dirty flags.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:  g.width,
		height: g.height,
		cells:  make([]Cell, len(g.cells)),
		dirty:  make([]bool, len(g.dirty)),
	}
	copy(c.cells, g.cells)
	copy(c.dirty, g.dirty)
	return c
}
