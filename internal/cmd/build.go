package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/astrildev/cli/internal/output"
	"github.com/astrildev/cli/internal/pipeline"
)

// NewBuildCmd creates the build command.
func NewBuildCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "build [path]",
		Short: "Build the project into its output directory",
		Long: `Build a project: render pages, copy assets, and run integrations.

Arguments:
  path    Path to the project root (default: current directory)

Examples:
  # Build the project in the current directory
  astrild build

  # Build a specific project with verbose output
  astrild build ./my-site --verbose`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c.Context(), rootArg(args), flags)
		},
	}
}

// runBuild executes one pipeline run with a spinner around the render.
func runBuild(ctx context.Context, root string, flags *GlobalFlags) error {
	p := pipeline.New(output.Logger)

	var result *pipeline.Result
	action := func() error {
		var err error
		result, err = p.Run(ctx, pipeline.Options{
			Root:       root,
			ConfigFile: flags.ConfigFile,
		})
		return err
	}

	if err := output.RunWithSpinner(ctx, action, output.WithTitle("Building...")); err != nil {
		return NewExitError(err, ExitBuildError)
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf("built to %s", output.StyleNoun.Render(result.Paths.OutDir))))
	output.Println(output.FormatSummary(result.Stats.Pages, result.Stats.Assets, result.Stats.Elapsed.Round(time.Millisecond).String()))
	return nil
}
