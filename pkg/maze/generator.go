package maze

import (
	"context"
	"math/rand/v2"

	errs "github.com/matzehuels/mazegen/pkg/errors"
)

// State is the lifecycle phase of a [Generator].
type State uint8

const (
	// Ready means the generator is seeded but has not visited a cell.
	Ready State = iota
	// Stepping means at least one cell was visited and work remains.
	Stepping
	// Done means the work stack is empty. There is no way back.
	Done
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Stepping:
		return "stepping"
	case Done:
		return "done"
	}
	return "unknown"
}

// frame is a work stack entry: a candidate cell and the cell it was reached
// from. The start entry has no origin.
type frame struct {
	cell      Point
	origin    Point
	hasOrigin bool
}

// Generator carves a perfect maze into a [Grid] with a randomized iterative
// depth-first search. It mutates the grid in place, one cell per [Step].
//
// The grid outlives the generator; the generator does not own it.
type Generator struct {
	grid    *Grid
	rng     *rand.Rand
	seed    uint64
	seeded  bool
	stack   []frame
	visited []bool
	scratch []Point

	visitedCount int
	carved       int
	steps        int
	current      Point
	hasCurrent   bool
}

// GeneratorOption configures a [Generator].
type GeneratorOption func(*Generator)

// WithSeed makes the neighbor shuffle reproducible.
func WithSeed(seed uint64) GeneratorOption {
	return func(gen *Generator) {
		gen.seed = seed
		gen.seeded = true
		gen.rng = nil
	}
}

// WithRand injects a random source directly. [Generator.Seed] then reports 0.
func WithRand(r *rand.Rand) GeneratorOption {
	return func(gen *Generator) {
		gen.rng = r
		gen.seeded = false
		gen.seed = 0
	}
}

// newRand derives the shuffle source from a seed.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// NewGenerator prepares a generator that starts carving at start.
// The grid is not touched until the first [Generator.Step].
//
// It returns an OUT_OF_BOUNDS error if start is outside g. Without
// [WithSeed] or [WithRand] a seed is drawn at random and exposed through
// [Generator.Seed] so the run can be repeated.
func NewGenerator(g *Grid, start Point, opts ...GeneratorOption) (*Generator, error) {
	if !g.InBounds(start.X, start.Y) {
		return nil, errs.New(errs.ErrCodeOutOfBounds, "start %v outside %dx%d grid", start, g.width, g.height)
	}

	gen := &Generator{
		grid:    g,
		visited: make([]bool, g.Len()),
		stack:   []frame{{cell: start}},
		scratch: make([]Point, 0, 4),
	}
	for _, opt := range opts {
		opt(gen)
	}
	if gen.rng == nil {
		if !gen.seeded {
			gen.seed = rand.Uint64()
			gen.seeded = true
		}
		gen.rng = newRand(gen.seed)
	}
	return gen, nil
}

// Grid returns the grid being carved.
func (gen *Generator) Grid() *Grid { return gen.grid }

// Seed returns the seed of the shuffle source, or 0 when the source was
// injected with [WithRand].
func (gen *Generator) Seed() uint64 { return gen.seed }

// HasNext reports whether the work stack is non-empty.
func (gen *Generator) HasNext() bool { return len(gen.stack) > 0 }

// State reports the lifecycle phase.
func (gen *Generator) State() State {
	switch {
	case len(gen.stack) == 0:
		return Done
	case gen.steps == 0:
		return Ready
	default:
		return Stepping
	}
}

// Visited returns the number of cells visited so far.
func (gen *Generator) Visited() int { return gen.visitedCount }

// Carved returns the number of passages opened so far.
func (gen *Generator) Carved() int { return gen.carved }

// Steps returns the number of Step calls that visited a cell.
func (gen *Generator) Steps() int { return gen.steps }

// Current returns the most recently visited cell.
func (gen *Generator) Current() (Point, bool) { return gen.current, gen.hasCurrent }

// Step advances the search by one cell.
//
// Entries whose cell is already visited are discarded until an unvisited
// candidate is found. The candidate is marked visited and, unless it is the
// start cell, linked to its origin on both sides with both cells marked
// dirty. Its unvisited in-bounds neighbors are shuffled and pushed with the
// candidate as origin.
//
// Step reports whether a cell was visited. At exhaustion it is a no-op.
func (gen *Generator) Step() bool {
	var top frame
	for {
		n := len(gen.stack)
		if n == 0 {
			return false
		}
		top = gen.stack[n-1]
		gen.stack = gen.stack[:n-1]
		if !gen.isVisited(top.cell) {
			break
		}
	}

	gen.visited[gen.grid.width*top.cell.Y+top.cell.X] = true
	gen.visitedCount++
	gen.steps++
	gen.current, gen.hasCurrent = top.cell, true

	if top.hasOrigin {
		d, _ := top.origin.DirectionTo(top.cell)
		gen.grid.link(top.origin, top.cell, d)
		gen.carved++
	}

	next := gen.scratch[:0]
	for _, d := range neighborOrder {
		q := top.cell.Step(d)
		if gen.grid.InBounds(q.X, q.Y) && !gen.isVisited(q) {
			next = append(next, q)
		}
	}
	gen.rng.Shuffle(len(next), func(i, j int) { next[i], next[j] = next[j], next[i] })
	for _, q := range next {
		gen.stack = append(gen.stack, frame{cell: q, origin: top.cell, hasOrigin: true})
	}
	return true
}

func (gen *Generator) isVisited(p Point) bool {
	return gen.visited[gen.grid.width*p.Y+p.X]
}

// runCheckInterval is the number of steps between context checks in Run.
const runCheckInterval = 4096

// Run steps until the generator is done or ctx is cancelled.
func (gen *Generator) Run(ctx context.Context) error {
	for i := 0; gen.HasNext(); i++ {
		if i%runCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		gen.Step()
	}
	return nil
}

// RunSteps performs at most n steps that visit a cell and returns how many
// were performed. It is the per-frame driver used by interactive displays.
func (gen *Generator) RunSteps(n int) int {
	done := 0
	for done < n && gen.Step() {
		done++
	}
	return done
}
