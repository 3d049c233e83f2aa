package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/mazegen/pkg/maze"
)

func TestRenderWalls(t *testing.T) {
	g, _ := maze.New(2, 2)
	_ = g.Link(maze.Point{X: 0, Y: 0}, maze.Point{X: 1, Y: 0})

	out := string(Render(g, WithCellSize(10), WithWallWidth(1)))
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if !strings.Contains(out, `viewBox="0 0 22.0 22.0"`) {
		t.Errorf("unexpected viewBox:\n%s", out)
	}
	// Interior walls: east of (0,1), south of (0,0), south of (1,0).
	if got := strings.Count(out, "<line"); got != 3 {
		t.Errorf("interior walls = %d, want 3", got)
	}
	if strings.Contains(out, "polyline") {
		t.Error("path drawn without WithPath")
	}
}

func TestRenderPerfectMazeWallCount(t *testing.T) {
	g, _ := maze.New(6, 4)
	gen, _ := maze.NewGenerator(g, maze.Point{}, maze.WithSeed(3))
	for gen.HasNext() {
		gen.Step()
	}
	// Interior adjacencies minus carved passages.
	adj := (6-1)*4 + 6*(4-1)
	want := adj - (g.Len() - 1)
	if got := strings.Count(string(Render(g)), "<line"); got != want {
		t.Errorf("walls = %d, want %d", got, want)
	}
}

func TestRenderPath(t *testing.T) {
	g, _ := maze.New(2, 1)
	_ = g.Link(maze.Point{X: 0, Y: 0}, maze.Point{X: 1, Y: 0})
	path, err := maze.Solve(g, maze.Point{X: 0, Y: 0}, maze.Point{X: 1, Y: 0})
	if err != nil {
		t.Fatal(err)
	}
	out := string(Render(g, WithCellSize(10), WithWallWidth(1), WithPath(path), WithBackground("white")))
	if !strings.Contains(out, `points="6.0,6.0 16.0,6.0"`) {
		t.Errorf("path polyline missing:\n%s", out)
	}
	if !strings.Contains(out, `fill="white"`) {
		t.Error("background missing")
	}
}
