package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/internal/config"
	"github.com/matzehuels/mazegen/pkg/cache"
	errs "github.com/matzehuels/mazegen/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the maze and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached mazes and renderings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if c.Config.Cache.Backend == config.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}

			var ch cache.Cache
			var err error
			if c.Config.Cache.Backend == config.BackendRedis {
				ch, err = cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr, c.Config.Cache.Prefix)
			} else {
				ch, err = c.newCache(ctx, false)
			}
			if err != nil {
				return err
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				return errs.New(errs.ErrCodeUnsupported, "cache backend %q cannot be cleared", c.Config.Cache.Backend)
			}
			if err := clearer.Clear(ctx); err != nil {
				return err
			}

			printSuccess("Cache cleared")
			printDetail("Location: %s", cacheLocation(c.Config.Cache))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(cacheLocation(c.Config.Cache))
			return nil
		},
	}
}

// cacheLocation describes the configured cache: a directory for the file
// backend, a redis URL otherwise.
func cacheLocation(cfg config.CacheConfig) string {
	switch cfg.Backend {
	case config.BackendRedis:
		return "redis://" + cfg.RedisAddr + "/" + cfg.Prefix + "*"
	case config.BackendNone:
		return "(disabled)"
	}
	return cfg.Dir
}
