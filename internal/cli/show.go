package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/pipeline"
	"github.com/matzehuels/mazegen/pkg/render/ascii"
)

// showCommand creates the show command, which prints a saved maze as text.
func (c *CLI) showCommand() *cobra.Command {
	var (
		style  string
		solve  bool
		legacy bool
	)

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print a saved maze as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok := ascii.ParseStyle(style)
			if !ok {
				return errs.New(errs.ErrCodeInvalidInput, "invalid style: %s (must be 'boxes' or 'compact')", style)
			}
			g, err := loadMaze(args[0], formatFor(legacy || c.Config.Generate.Legacy))
			if err != nil {
				return err
			}

			opts := []ascii.Option{ascii.WithStyle(st)}
			if solve {
				path, err := pipeline.SolutionPath(g)
				if err != nil {
					return err
				}
				opts = append(opts, ascii.WithPath(path))
			}
			fmt.Print(ascii.Render(g, opts...))
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "boxes", "text layout: boxes, compact")
	cmd.Flags().BoolVar(&solve, "solve", false, "mark the path from the top-left to the bottom-right cell")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "read raw files with the 2-byte legacy header")

	return cmd
}

// infoCommand creates the info command, which summarizes a saved maze.
func (c *CLI) infoCommand() *cobra.Command {
	var legacy bool

	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Describe a saved maze",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0], formatFor(legacy || c.Config.Generate.Legacy))
		},
	}

	cmd.Flags().BoolVar(&legacy, "legacy", false, "read raw files with the 2-byte legacy header")
	return cmd
}

func (c *CLI) runInfo(ctx context.Context, path string, f maze.Format) error {
	g, err := loadMaze(path, f)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("loaded maze", "path", path, "width", g.Width(), "height", g.Height())

	printInfo("%s", StyleTitle.Render(path))
	printKeyValue("size", fmt.Sprintf("%dx%d", g.Width(), g.Height()))
	printKeyValue("cells", strconv.Itoa(g.Len()))
	printKeyValue("passages", strconv.Itoa(g.Edges()))
	printKeyValue("dead ends", strconv.Itoa(maze.DeadEnds(g)))
	printKeyValue("reachable", strconv.Itoa(maze.Reachable(g, maze.Point{})))

	switch {
	case maze.Perfect(g):
		printKeyValue("shape", StyleSuccess.Render("perfect"))
		if path, err := pipeline.SolutionPath(g); err == nil {
			printKeyValue("solution", strconv.Itoa(len(path))+" cells")
		}
	case !g.Consistent():
		printKeyValue("shape", StyleWarning.Render("inconsistent"))
	default:
		printKeyValue("shape", StyleWarning.Render("partial"))
	}
	return nil
}
