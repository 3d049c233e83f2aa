package maze

import (
	errs "github.com/matzehuels/mazegen/pkg/errors"
)

// Reachable returns the number of cells connected to from through passages
// that are open on both sides, from itself included.
func Reachable(g *Grid, from Point) int {
	if !g.InBounds(from.X, from.Y) {
		return 0
	}
	seen := make([]bool, g.Len())
	seen[from.Y*g.width+from.X] = true
	queue := []Point{from}
	count := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		count++
		for _, d := range Directions {
			if !g.Passable(p, d) {
				continue
			}
			q := p.Step(d)
			if i := q.Y*g.width + q.X; !seen[i] {
				seen[i] = true
				queue = append(queue, q)
			}
		}
	}
	return count
}

// Solve returns the shortest path of passages from one cell to another,
// both endpoints included. It returns OUT_OF_BOUNDS for points outside the
// grid and NOT_FOUND when to cannot be reached.
func Solve(g *Grid, from, to Point) ([]Point, error) {
	for _, p := range []Point{from, to} {
		if !g.InBounds(p.X, p.Y) {
			return nil, errs.New(errs.ErrCodeOutOfBounds, "cell %v outside %dx%d grid", p, g.width, g.height)
		}
	}

	prev := make([]int, g.Len())
	for i := range prev {
		prev[i] = -1
	}
	start, goal := from.Y*g.width+from.X, to.Y*g.width+to.X
	prev[start] = start
	queue := []Point{from}
	for len(queue) > 0 && prev[goal] < 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			if !g.Passable(p, d) {
				continue
			}
			q := p.Step(d)
			if i := q.Y*g.width + q.X; prev[i] < 0 {
				prev[i] = p.Y*g.width + p.X
				queue = append(queue, q)
			}
		}
	}
	if prev[goal] < 0 {
		return nil, errs.New(errs.ErrCodeNotFound, "no path from %v to %v", from, to)
	}

	var path []Point
	for i := goal; ; i = prev[i] {
		path = append(path, Point{X: i % g.width, Y: i / g.width})
		if i == start {
			break
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path, nil
}

// DeadEnds counts cells with exactly one open passage.
func DeadEnds(g *Grid) int {
	n := 0
	for _, c := range g.cells {
		if c.Passages() == 1 {
			n++
		}
	}
	return n
}

// Perfect reports whether g is a perfect maze: consistent passages that form
// a spanning tree over every cell.
func Perfect(g *Grid) bool {
	return g.Consistent() && g.Edges() == g.Len()-1 && Reachable(g, Point{}) == g.Len()
}
