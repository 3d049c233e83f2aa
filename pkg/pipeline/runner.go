package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mazegen/pkg/cache"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/observability"
)

// Runner encapsulates generation and rendering with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// MazeTTL overrides TTLMaze for cached mazes when positive.
	MazeTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Generate carves a maze. Seeded runs are answered from the cache when
// possible; unseeded runs always generate and are never cached.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var cacheKey string
	if opts.Seeded() {
		cacheKey = r.Keyer.MazeKey(opts.MazeKeyOpts())
		if !opts.Refresh {
			if res, ok := r.cachedMaze(ctx, cacheKey, opts); ok {
				return res, nil
			}
		}
	}

	res, err := r.generate(ctx, opts)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if err := r.Cache.Set(ctx, cacheKey, res.Data, r.mazeTTL()); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "maze", len(res.Data))
		}
	}
	return res, nil
}

func (r *Runner) mazeTTL() time.Duration {
	if r.MazeTTL > 0 {
		return r.MazeTTL
	}
	return TTLMaze
}

func (r *Runner) cachedMaze(ctx context.Context, key string, opts Options) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "maze")
		return nil, false
	}
	g, err := maze.Decode(data, opts.Format)
	if err != nil {
		// A corrupt entry is regenerated and overwritten.
		r.Logger.Debug("discarding cached maze", "error", err)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "maze")

	// Carved passages form a tree over the visited cells.
	edges := g.Edges()
	r.Logger.Debug("maze cache hit", "width", g.Width(), "height", g.Height())
	return &Result{
		Grid:     g,
		Data:     data,
		Seed:     *opts.Seed,
		Stats:    Stats{Steps: edges + 1, Visited: edges + 1, Edges: edges},
		CacheHit: true,
	}, true
}

func (r *Runner) generate(ctx context.Context, opts Options) (res *Result, err error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Width, opts.Height)

	var steps int
	defer func() {
		hooks.OnGenerateComplete(ctx, opts.Width, opts.Height, steps, time.Since(start), err)
	}()

	g, err := maze.New(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	var genOpts []maze.GeneratorOption
	if opts.Seeded() {
		genOpts = append(genOpts, maze.WithSeed(*opts.Seed))
	}
	gen, err := maze.NewGenerator(g, opts.Start, genOpts...)
	if err != nil {
		return nil, err
	}

	if opts.MaxSteps > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		gen.RunSteps(opts.MaxSteps)
	} else if err := runWithProgress(ctx, gen, g.Len(), opts.Progress); err != nil {
		return nil, err
	}
	steps = gen.Steps()

	data, err := g.Encode(opts.Format)
	if err != nil {
		return nil, err
	}

	res = &Result{
		Grid: g,
		Data: data,
		Seed: gen.Seed(),
		Stats: Stats{
			Steps:    gen.Steps(),
			Visited:  gen.Visited(),
			Edges:    gen.Carved(),
			Duration: time.Since(start),
		},
	}
	r.Logger.Info("generated maze",
		"width", opts.Width,
		"height", opts.Height,
		"seed", res.Seed,
		"steps", res.Stats.Steps,
		"duration", res.Stats.Duration)
	return res, nil
}

// ProgressInterval is the number of visited cells between progress reports.
const ProgressInterval = 4096

func runWithProgress(ctx context.Context, gen *maze.Generator, total int, report func(visited, total int)) error {
	if report == nil {
		return gen.Run(ctx)
	}
	for gen.HasNext() {
		if err := ctx.Err(); err != nil {
			return err
		}
		gen.RunSteps(ProgressInterval)
		report(gen.Visited(), total)
	}
	return nil
}

// Render draws g, consulting the cache first. It reports whether the output
// came from the cache.
func (r *Runner) Render(ctx context.Context, g *maze.Grid, opts RenderOptions) ([]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	raw, err := g.Encode(maze.FormatCurrent)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.RenderKey(cache.Hash(raw), opts.keyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Kind)
	out, err := Render(ctx, g, opts)
	hooks.OnRenderComplete(ctx, opts.Kind, len(out), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, out, TTLRender); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(out))
	}
	r.Logger.Debug("rendered maze", "kind", opts.Kind, "bytes", len(out), "duration", time.Since(start))
	return out, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
