// Package pipeline provides the generate → encode → render flow shared by the
// CLI and the HTTP API.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Generate: carve a maze with the randomized depth-first search and
//     encode it in the requested header format
//  2. Render: draw a grid as ASCII, SVG, PNG, PDF or a passage graph
//
// Both stages are cached. A generated maze is cached only when its seed is
// fixed, since only then is the output a function of the options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	seed := uint64(42)
//	result, err := runner.Generate(ctx, pipeline.Options{Width: 20, Height: 10, Seed: &seed})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg, _, err := runner.Render(ctx, result.Grid, pipeline.RenderOptions{Kind: pipeline.KindSVG})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mazegen/pkg/cache"
	errs "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default number of columns.
	DefaultWidth = 10

	// DefaultHeight is the default number of rows.
	DefaultHeight = 10

	// MaxDimension bounds width and height accepted from users. The grid
	// itself supports far larger mazes.
	MaxDimension = 1024

	// LegacyMaxDimension is the largest width or height the legacy header holds.
	LegacyMaxDimension = 255

	// TTLMaze is how long a generated maze stays cached.
	TTLMaze = 7 * 24 * time.Hour

	// TTLRender is how long a rendering stays cached.
	TTLRender = 24 * time.Hour
)

// Render kinds.
const (
	KindASCII    = "ascii"
	KindSVG      = "svg"
	KindPNG      = "png"
	KindPDF      = "pdf"
	KindDOT      = "dot"
	KindNodelink = "nodelink"
)

// ValidKinds is the set of supported render kinds.
var ValidKinds = map[string]bool{
	KindASCII:    true,
	KindSVG:      true,
	KindPNG:      true,
	KindPDF:      true,
	KindDOT:      true,
	KindNodelink: true,
}

// ValidateKind checks that a render kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid render kind: %q (must be one of: ascii, svg, png, pdf, dot, nodelink)", kind)
	}
	return nil
}

// =============================================================================
// Options - Generation Configuration
// =============================================================================

// Options contains all configuration for generating one maze.
// This struct supports JSON serialization for API requests.
type Options struct {
	Width  int         `json:"width,omitempty"`
	Height int         `json:"height,omitempty"`
	Start  maze.Point  `json:"start"`
	Seed   *uint64     `json:"seed,omitempty"` // nil draws a random seed
	Format maze.Format `json:"-"`

	// MaxSteps stops after this many visited cells, leaving a partial maze.
	// Zero runs to completion.
	MaxSteps int `json:"max_steps,omitempty"`

	// Refresh bypasses the cache lookup but still stores the result.
	Refresh bool `json:"refresh,omitempty"`

	// Progress, when set, is called with the visited and total cell counts
	// after every batch of ProgressInterval visits. The last call reports the
	// final count.
	Progress func(visited, total int) `json:"-"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills in zero dimensions and the logger.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks dimensions, start position, format and step limit.
func (o *Options) Validate() error {
	if err := errs.ValidateDimensions(o.Width, o.Height, MaxDimension); err != nil {
		return err
	}
	if o.Start.X < 0 || o.Start.X >= o.Width || o.Start.Y < 0 || o.Start.Y >= o.Height {
		return errs.New(errs.ErrCodeOutOfBounds, "start %v outside %dx%d grid", o.Start, o.Width, o.Height)
	}
	if maze.HeaderSize(o.Format) == 0 {
		return errs.New(errs.ErrCodeInvalidFormat, "unknown maze format %d", o.Format)
	}
	if o.Format == maze.FormatLegacy && (o.Width > LegacyMaxDimension || o.Height > LegacyMaxDimension) {
		return errs.New(errs.ErrCodeInvalidDimensions, "legacy format holds at most %dx%d, got %dx%d",
			LegacyMaxDimension, LegacyMaxDimension, o.Width, o.Height)
	}
	if o.MaxSteps < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max steps must not be negative, got %d", o.MaxSteps)
	}
	return nil
}

// Seeded reports whether the run is reproducible.
func (o *Options) Seeded() bool { return o.Seed != nil }

// MazeKeyOpts returns cache key options. Only meaningful when Seeded.
func (o *Options) MazeKeyOpts() cache.MazeKeyOpts {
	k := cache.MazeKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		StartX: o.Start.X,
		StartY: o.Start.Y,
		Format: o.Format.String(),
		Steps:  o.MaxSteps,
	}
	if o.Seed != nil {
		k.Seed = *o.Seed
	}
	return k
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a generation run.
type Result struct {
	// Grid is the carved maze.
	Grid *maze.Grid

	// Data is Grid encoded in the requested format.
	Data []byte

	// Seed reproduces the run with the same options.
	Seed uint64

	// Stats contains counts and timing.
	Stats Stats

	// CacheHit reports whether Data came from the cache.
	CacheHit bool
}

// Stats contains generation statistics.
type Stats struct {
	Steps    int
	Visited  int
	Edges    int
	Duration time.Duration
}

// Complete reports whether every cell was visited.
func (r *Result) Complete() bool {
	return r.Stats.Visited == r.Grid.Len()
}

// RenderOptions selects how a grid is drawn.
type RenderOptions struct {
	Kind  string  `json:"kind"`
	Style string  `json:"style,omitempty"` // ascii layout: boxes or compact
	Solve bool    `json:"solve,omitempty"`
	Scale float64 `json:"scale,omitempty"` // png only
}

// Validate checks the kind and ascii style.
func (o *RenderOptions) Validate() error {
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.Kind == KindASCII {
		switch o.Style {
		case "", "boxes", "compact":
		default:
			return errs.New(errs.ErrCodeInvalidInput, "invalid ascii style: %q (must be boxes or compact)", o.Style)
		}
	}
	return nil
}

func (o *RenderOptions) keyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{Kind: o.Kind, Style: o.Style, Solve: o.Solve, Scale: o.Scale}
}
