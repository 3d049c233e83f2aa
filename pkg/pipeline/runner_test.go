package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mazegen/pkg/cache"
	errs "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/observability"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil)
}

func seedPtr(s uint64) *uint64 { return &s }

func TestGenerate(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Generate(context.Background(), Options{Width: 8, Height: 6, Seed: seedPtr(1)})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !maze.Perfect(res.Grid) {
		t.Error("result is not a perfect maze")
	}
	if !res.Complete() {
		t.Error("result should be complete")
	}
	if res.Stats.Visited != 48 || res.Stats.Edges != 47 || res.Stats.Steps != 48 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Seed != 1 {
		t.Errorf("seed = %d, want 1", res.Seed)
	}
	want, _ := res.Grid.Encode(maze.FormatCurrent)
	if !bytes.Equal(res.Data, want) {
		t.Error("Data does not match the encoded grid")
	}
	if res.CacheHit {
		t.Error("first run should miss")
	}
}

func TestGenerateCaching(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Width: 7, Height: 5, Seed: seedPtr(99), Format: maze.FormatLegacy}

	first, err := r.Generate(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Generate(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second seeded run should hit the cache")
	}
	if !bytes.Equal(first.Data, second.Data) || !first.Grid.Equal(second.Grid) {
		t.Error("cached maze differs")
	}
	if second.Stats.Visited != 35 || second.Stats.Edges != 34 {
		t.Errorf("cached stats = %+v", second.Stats)
	}

	opts.Refresh = true
	third, err := r.Generate(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("refresh should bypass the cache")
	}
	if !bytes.Equal(first.Data, third.Data) {
		t.Error("same seed produced a different maze")
	}
}

func TestGenerateUnseededNotCached(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		res, err := r.Generate(ctx, Options{Width: 4, Height: 4})
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheHit {
			t.Fatal("unseeded run hit the cache")
		}
		// The drawn seed reproduces the maze.
		again, err := NewRunner(nil, nil, nil).Generate(ctx, Options{Width: 4, Height: 4, Seed: seedPtr(res.Seed)})
		if err != nil {
			t.Fatal(err)
		}
		if !again.Grid.Equal(res.Grid) {
			t.Error("reported seed does not reproduce the maze")
		}
	}
}

func TestGeneratePartial(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Generate(context.Background(), Options{Width: 10, Height: 10, Seed: seedPtr(5), MaxSteps: 30})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Visited != 30 || res.Stats.Edges != 29 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Complete() || maze.Perfect(res.Grid) {
		t.Error("partial maze reported as complete")
	}
}

func TestGenerateProgress(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	var reports [][2]int
	_, err := r.Generate(context.Background(), Options{
		Width:    100,
		Height:   100,
		Seed:     seedPtr(3),
		Progress: func(visited, total int) { reports = append(reports, [2]int{visited, total}) },
	})
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]int{{4096, 10000}, {8192, 10000}, {10000, 10000}}
	if len(reports) != len(want) {
		t.Fatalf("reports = %v, want %v", reports, want)
	}
	for i := range want {
		if reports[i] != want[i] {
			t.Errorf("report %d = %v, want %v", i, reports[i], want[i])
		}
	}
}

func TestGenerateInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Generate(context.Background(), Options{Width: -1, Height: 3})
	if !errs.Is(err, errs.ErrCodeInvalidDimensions) {
		t.Errorf("err = %v, want INVALID_DIMENSIONS", err)
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, nil, nil).Generate(ctx, Options{Width: 50, Height: 50})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	started, completed int
	steps              int
}

func (h *recordingHooks) OnGenerateStart(context.Context, int, int) { h.started++ }
func (h *recordingHooks) OnGenerateComplete(_ context.Context, _, _, steps int, _ time.Duration, _ error) {
	h.completed++
	h.steps = steps
}

func TestGenerateHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	defer observability.Reset()

	if _, err := NewRunner(nil, nil, nil).Generate(context.Background(), Options{Width: 3, Height: 3}); err != nil {
		t.Fatal(err)
	}
	if h.started != 1 || h.completed != 1 || h.steps != 9 {
		t.Errorf("hooks = %+v", h)
	}
}

func TestRunnerRender(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	res, err := r.Generate(ctx, Options{Width: 4, Height: 3, Seed: seedPtr(2)})
	if err != nil {
		t.Fatal(err)
	}

	out, hit, err := r.Render(ctx, res.Grid, RenderOptions{Kind: KindASCII, Solve: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if hit {
		t.Error("first render should miss")
	}
	if !strings.Contains(string(out), "**") {
		t.Errorf("solution not drawn:\n%s", out)
	}

	again, hit, err := r.Render(ctx, res.Grid, RenderOptions{Kind: KindASCII, Solve: true})
	if err != nil || !hit || !bytes.Equal(out, again) {
		t.Errorf("second render: hit %v err %v", hit, err)
	}

	dot, _, err := r.Render(ctx, res.Grid, RenderOptions{Kind: KindDOT})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(dot), " -- ") != 11 {
		t.Errorf("DOT should have 11 edges:\n%s", dot)
	}

	svgOut, _, err := r.Render(ctx, res.Grid, RenderOptions{Kind: KindSVG})
	if err != nil || !bytes.HasPrefix(svgOut, []byte("<svg")) {
		t.Errorf("svg render: err %v", err)
	}
}

func TestRenderSolveUnreachable(t *testing.T) {
	g, _ := maze.New(3, 3)
	_, err := Render(context.Background(), g, RenderOptions{Kind: KindSVG, Solve: true})
	if !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
