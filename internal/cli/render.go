package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file path; derived from the input when empty
	kind    string  // output kind: ascii, svg, png, pdf, dot, nodelink
	style   string  // text layout for ascii
	solve   bool    // overlay the solution path
	scale   float64 // PNG scale factor
	legacy  bool    // raw input uses the legacy header
	noCache bool    // disable the render cache
}

// renderCommand creates the render command for drawing a saved maze.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a saved maze to SVG, PNG, PDF or DOT",
		Long: `Render a saved maze.

Kinds:
  svg       walls as SVG lines (default)
  png, pdf  the SVG converted with rsvg-convert
  ascii     text drawing
  dot       passage graph in Graphviz DOT
  nodelink  passage graph laid out by Graphviz as SVG`,
		Example: `  mazegen render maze.bin
  mazegen render maze.bin -f png --solve -o maze.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateKind(opts.kind); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the kind's extension)")
	cmd.Flags().StringVarP(&opts.kind, "format", "f", pipeline.KindSVG, "output kind: ascii, svg, png, pdf, dot, nodelink")
	cmd.Flags().StringVar(&opts.style, "style", "", "text layout for ascii: boxes, compact")
	cmd.Flags().BoolVar(&opts.solve, "solve", false, "mark the path from the top-left to the bottom-right cell")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "read raw files with the 2-byte legacy header")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	g, err := loadMaze(input, formatFor(opts.legacy || c.Config.Generate.Legacy))
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = outputPath(input, opts.kind)
	}
	if err := checkOutput(output); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinner(ctx, os.Stderr, "Rendering "+opts.kind+"...")
	spin.Start()
	data, hit, err := runner.Render(ctx, g, pipeline.RenderOptions{
		Kind:  opts.kind,
		Style: opts.style,
		Solve: opts.solve,
		Scale: opts.scale,
	})
	spin.Stop()
	if err != nil {
		return err
	}
	logger.Debug("rendered", "kind", opts.kind, "bytes", len(data), "cached", hit)

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "write %s", output)
	}
	printSuccess("Rendered %s", opts.kind)
	printFile(output)
	return nil
}

// outputPath derives an output file name from the input and kind.
func outputPath(input, kind string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + extensionFor(kind)
}

func extensionFor(kind string) string {
	switch kind {
	case pipeline.KindASCII:
		return "txt"
	case pipeline.KindNodelink:
		return "graph.svg"
	}
	return kind
}
