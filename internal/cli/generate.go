package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/internal/config"
	"github.com/matzehuels/mazegen/pkg/mazefile"
	"github.com/matzehuels/mazegen/pkg/pipeline"
	"github.com/matzehuels/mazegen/pkg/render/ascii"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	width    int
	height   int
	seed     uint64
	seeded   bool
	start    string
	output   string
	legacy   bool
	compress bool
	print    bool
	noCache  bool
	refresh  bool
	maxSteps int
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Carve a new maze",
		Long: `Carve a perfect maze and optionally save it.

Sizes are clamped to 1..1024. A seed makes the maze reproducible and lets it
be served from the cache on later runs. Files ending in .json are written as
JSON documents; anything else uses the binary format.`,
		Example: `  mazegen generate -x 20 -y 10 --print
  mazegen generate --seed 42 -o maze.bin
  mazegen generate -x 200 -y 200 --legacy --compress -o big.mzgz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyGenerateDefaults(cmd, &opts)
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "x", 0, "maze width in cells (1-1024)")
	cmd.Flags().IntVarP(&opts.height, "height", "y", 0, "maze height in cells (1-1024)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for a reproducible maze")
	cmd.Flags().StringVar(&opts.start, "start", "0,0", "start cell as x,y")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "use the 2-byte legacy header (max 255x255)")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "write a zstd-compressed container")
	cmd.Flags().BoolVar(&opts.print, "print", false, "print the maze as text")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if cached")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", 0, "stop after visiting this many cells (partial maze)")

	return cmd
}

// applyGenerateDefaults fills unset flags from the config file and clamps
// sizes.
func (c *CLI) applyGenerateDefaults(cmd *cobra.Command, opts *generateOpts) {
	gen := c.Config.Generate
	if !cmd.Flags().Changed("width") {
		opts.width = gen.Width
	}
	if !cmd.Flags().Changed("height") {
		opts.height = gen.Height
	}
	if !cmd.Flags().Changed("legacy") {
		opts.legacy = gen.Legacy
	}
	opts.seeded = cmd.Flags().Changed("seed")
	if !opts.seeded && gen.Seed != nil {
		opts.seed, opts.seeded = *gen.Seed, true
	}
	opts.width = config.Clamp(opts.width, config.MinDimension, config.MaxDimension)
	opts.height = config.Clamp(opts.height, config.MinDimension, config.MaxDimension)
}

func (c *CLI) runGenerate(ctx context.Context, opts generateOpts) error {
	logger := loggerFromContext(ctx)

	start, err := parsePoint(opts.start)
	if err != nil {
		return err
	}
	if opts.output != "" {
		if err := checkOutput(opts.output); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Width:    opts.width,
		Height:   opts.height,
		Start:    start,
		Format:   formatFor(opts.legacy),
		MaxSteps: opts.maxSteps,
		Refresh:  opts.refresh,
		Logger:   logger,
	}
	if opts.seeded {
		seed := opts.seed
		popts.Seed = &seed
	}
	logger.Debug("generate", "width", opts.width, "height", opts.height, "start", start, "format", popts.Format)

	spin := newSpinner(ctx, os.Stderr, "Carving...")
	popts.Progress = spin.Progress
	spin.Start()
	res, err := runner.Generate(ctx, popts)
	spin.Stop()
	if err != nil {
		return err
	}

	printSuccess("Generated %dx%d maze", res.Grid.Width(), res.Grid.Height())
	printStats(res.Stats, res.Complete(), res.CacheHit)
	printKeyValue("seed", strconv.FormatUint(res.Seed, 10))
	if !res.CacheHit {
		printKeyValue("compute", res.Stats.Duration.String())
	}

	if opts.print {
		if ascii.Fits(res.Grid) {
			fmt.Print(ascii.Render(res.Grid))
		} else {
			printWarning("Too big to draw (limit %dx%d)", ascii.MaxPrintWidth, ascii.MaxPrintHeight)
		}
	}

	if opts.output == "" {
		printNextStep("Save it", fmt.Sprintf("%s generate -x %d -y %d --seed %d -o maze.bin",
			appName, opts.width, opts.height, res.Seed))
		return nil
	}

	prog := newProgress(logger)
	if err := saveMaze(opts.output, res.Grid, mazefile.Options{Format: popts.Format, Compress: opts.compress}); err != nil {
		return err
	}
	prog.done("Saved " + opts.output)
	printFile(opts.output)
	return nil
}
