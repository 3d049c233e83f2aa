package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/internal/config"
	"github.com/matzehuels/mazegen/pkg/buildinfo"
	"github.com/matzehuels/mazegen/pkg/cache"
	errs "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/observability"
	"github.com/matzehuels/mazegen/pkg/pipeline"
	"github.com/matzehuels/mazegen/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and built-in
// settings. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level. At debug level pipeline and cache
// events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := newLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetServerHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Mazegen carves perfect mazes",
		Long:         `Mazegen generates perfect mazes with a randomized depth-first search, stores them in a compact nibble-packed format and renders them as text, SVG, PNG, PDF or a passage graph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mazegen/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ns := c.Config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), ns+":")
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.MazeTTL = c.Config.Cache.TTL.Duration
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.Prefix)
		if err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "addr", cfg.RedisAddr, "error", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	}
	if cfg.Dir == "" {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(cfg.Dir)
}

// newStore opens the configured maze store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	cfg := c.Config.Store
	if cfg.Backend == config.BackendMongo {
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
	}
	return store.NewFileStore(cfg.Dir)
}

// =============================================================================
// Flag Helpers
// =============================================================================

// formatFor maps the --legacy switch to a codec format.
func formatFor(legacy bool) maze.Format {
	if legacy {
		return maze.FormatLegacy
	}
	return maze.FormatCurrent
}

// parsePoint parses "x,y".
func parsePoint(s string) (maze.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return maze.Point{}, errs.New(errs.ErrCodeInvalidInput, "invalid point %q (want x,y)", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return maze.Point{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid x in %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return maze.Point{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid y in %q", s)
	}
	return maze.Point{X: x, Y: y}, nil
}
