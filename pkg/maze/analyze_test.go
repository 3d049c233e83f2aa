package maze

import (
	"testing"

	errs "github.com/matzehuels/mazegen/pkg/errors"
)

func TestSolveCorridor(t *testing.T) {
	g, _ := New(4, 1)
	for x := 0; x < 3; x++ {
		_ = g.Link(Point{x, 0}, Point{x + 1, 0})
	}

	path, err := Solve(g, Point{0, 0}, Point{3, 0})
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	want := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %v, want %v", i, path[i], want[i])
		}
	}

	self, err := Solve(g, Point{2, 0}, Point{2, 0})
	if err != nil || len(self) != 1 {
		t.Errorf("Solve to self = %v, %v; want single cell", self, err)
	}
}

func TestSolveUnreachable(t *testing.T) {
	g, _ := New(2, 2)
	if _, err := Solve(g, Point{0, 0}, Point{1, 1}); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Solve error = %v, want NOT_FOUND", err)
	}
	if _, err := Solve(g, Point{0, 0}, Point{2, 1}); !errs.Is(err, errs.ErrCodeOutOfBounds) {
		t.Errorf("Solve error = %v, want OUT_OF_BOUNDS", err)
	}
}

func TestSolveGeneratedMazeConnectsAllPairs(t *testing.T) {
	g, _ := generate(t, 6, 5, Point{}, 21)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			path, err := Solve(g, Point{}, Point{x, y})
			if err != nil {
				t.Fatalf("no path to (%d,%d): %v", x, y, err)
			}
			for i := 1; i < len(path); i++ {
				d, ok := path[i-1].DirectionTo(path[i])
				if !ok || !g.Passable(path[i-1], d) {
					t.Fatalf("path step %v -> %v is not a passage", path[i-1], path[i])
				}
			}
		}
	}
}

func TestDeadEnds(t *testing.T) {
	g, _ := New(3, 1)
	_ = g.Link(Point{0, 0}, Point{1, 0})
	_ = g.Link(Point{1, 0}, Point{2, 0})
	if got := DeadEnds(g); got != 2 {
		t.Errorf("DeadEnds = %d, want 2", got)
	}
}

func TestReachableIgnoresOneSidedPassages(t *testing.T) {
	g, _ := New(2, 1)
	var c Cell
	c.Set(East, true)
	g.SetCell(0, 0, c)
	if got := Reachable(g, Point{}); got != 1 {
		t.Errorf("Reachable = %d, want 1", got)
	}
	if Perfect(g) {
		t.Error("inconsistent grid reported perfect")
	}
}
