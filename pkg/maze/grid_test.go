package maze

import (
	"testing"

	errs "github.com/matzehuels/mazegen/pkg/errors"
)

func TestNewAllWalled(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 7}, {7, 1}, {3, 3}, {16, 9}}
	for _, sz := range sizes {
		g, err := New(sz[0], sz[1])
		if err != nil {
			t.Fatalf("New(%d, %d) error: %v", sz[0], sz[1], err)
		}
		if g.Len() != sz[0]*sz[1] {
			t.Errorf("Len() = %d, want %d", g.Len(), sz[0]*sz[1])
		}
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				for _, d := range Directions {
					if g.Open(x, y, d) {
						t.Fatalf("%dx%d: cell (%d,%d) open to %v", sz[0], sz[1], x, y, d)
					}
				}
				if !g.IsDirty(x, y) {
					t.Fatalf("%dx%d: cell (%d,%d) not dirty", sz[0], sz[1], x, y)
				}
			}
		}
	}
}

func TestNewInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 4},
		{"zero height", 4, 0},
		{"negative", -3, 4},
		{"over header", MaxDimension + 1, 1},
		{"product overflow", MaxDimension, MaxDimension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height)
			if !errs.Is(err, errs.ErrCodeInvalidDimensions) {
				t.Errorf("New(%d, %d) error = %v, want %s", tt.width, tt.height, err, errs.ErrCodeInvalidDimensions)
			}
		})
	}
}

func TestOutOfRangePanics(t *testing.T) {
	g, _ := New(2, 2)
	calls := map[string]func(){
		"Cell":       func() { g.Cell(2, 0) },
		"SetCell":    func() { g.SetCell(0, -1, 0) },
		"MarkDirty":  func() { g.MarkDirty(5, 5) },
		"ClearDirty": func() { g.ClearDirty(-1, 0) },
		"IsDirty":    func() { g.IsDirty(0, 2) },
	}
	for name, fn := range calls {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errs.Is(err, errs.ErrCodeOutOfBounds) {
					t.Errorf("recovered %v, want OUT_OF_BOUNDS error", r)
				}
			}()
			fn()
		})
	}
}

func TestLink(t *testing.T) {
	g, _ := New(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g.ClearDirty(x, y)
		}
	}

	if err := g.Link(Point{1, 1}, Point{2, 1}); err != nil {
		t.Fatalf("Link error: %v", err)
	}
	if !g.Open(1, 1, East) || !g.Open(2, 1, West) {
		t.Error("east/west passage not open on both sides")
	}
	if err := g.Link(Point{1, 1}, Point{1, 0}); err != nil {
		t.Fatalf("Link error: %v", err)
	}
	if !g.Open(1, 1, North) || !g.Open(1, 0, South) {
		t.Error("north/south passage not open on both sides")
	}
	if g.DirtyCount() != 3 {
		t.Errorf("DirtyCount() = %d, want 3", g.DirtyCount())
	}
	if g.Edges() != 2 {
		t.Errorf("Edges() = %d, want 2", g.Edges())
	}
	if !g.Consistent() {
		t.Error("grid should be consistent")
	}
}

func TestLinkErrors(t *testing.T) {
	g, _ := New(3, 3)
	if err := g.Link(Point{0, 0}, Point{3, 0}); !errs.Is(err, errs.ErrCodeOutOfBounds) {
		t.Errorf("out of range link error = %v, want OUT_OF_BOUNDS", err)
	}
	if err := g.Link(Point{0, 0}, Point{1, 1}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("diagonal link error = %v, want INVALID_INPUT", err)
	}
	if g.Edges() != 0 {
		t.Error("failed links must not mutate the grid")
	}
}

func TestDirtyFlags(t *testing.T) {
	g, _ := New(2, 1)
	g.ClearDirty(0, 0)
	if g.IsDirty(0, 0) {
		t.Error("ClearDirty did not clear")
	}
	if !g.IsDirty(1, 0) {
		t.Error("ClearDirty touched a neighbor")
	}
	g.MarkDirty(0, 0)
	if !g.IsDirty(0, 0) {
		t.Error("MarkDirty did not mark")
	}
	before := g.Cell(0, 0)
	g.ClearDirty(0, 0)
	if g.Cell(0, 0) != before {
		t.Error("dirty flags must not affect connectivity")
	}
}

func TestConsistentDetectsOneSidedPassage(t *testing.T) {
	g, _ := New(2, 1)
	var c Cell
	c.Set(East, true)
	g.SetCell(0, 0, c)
	if g.Consistent() {
		t.Error("one-sided passage should be inconsistent")
	}

	g2, _ := New(1, 1)
	c = 0
	c.Set(North, true)
	g2.SetCell(0, 0, c)
	if g2.Consistent() {
		t.Error("passage off the grid should be inconsistent")
	}
}

func TestNeighbors(t *testing.T) {
	g, _ := New(3, 3)
	tests := []struct {
		p    Point
		want []Point
	}{
		{Point{1, 1}, []Point{{0, 1}, {2, 1}, {1, 0}, {1, 2}}},
		{Point{0, 0}, []Point{{1, 0}, {0, 1}}},
		{Point{2, 2}, []Point{{1, 2}, {2, 1}}},
	}
	for _, tt := range tests {
		got := g.Neighbors(tt.p)
		if len(got) != len(tt.want) {
			t.Fatalf("Neighbors(%v) = %v, want %v", tt.p, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Neighbors(%v)[%d] = %v, want %v", tt.p, i, got[i], tt.want[i])
			}
		}
	}
}

func TestCloneAndEqual(t *testing.T) {
	g, _ := New(4, 2)
	_ = g.Link(Point{0, 0}, Point{1, 0})
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone should equal original")
	}
	_ = c.Link(Point{1, 0}, Point{1, 1})
	if g.Equal(c) {
		t.Error("mutating the clone changed equality")
	}
	if g.Edges() != 1 {
		t.Error("mutating the clone changed the original")
	}
	other, _ := New(2, 4)
	if g.Equal(other) {
		t.Error("different dimensions should not be equal")
	}
}
