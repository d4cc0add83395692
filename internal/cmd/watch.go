package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/astrildev/cli/internal/output"
	"github.com/astrildev/cli/internal/pipeline"
	"github.com/astrildev/cli/internal/watch"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd(flags *GlobalFlags) *cobra.Command {
	var debounceFlag time.Duration

	c := &cobra.Command{
		Use:   "watch [path]",
		Short: "Rebuild the project when sources change",
		Long: `Watch the source directory and rebuild on every change.

Stops on Ctrl-C.

Examples:
  # Watch the project in the current directory
  astrild watch

  # Watch with a longer settle period
  astrild watch --debounce 500ms`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runWatch(c.Context(), rootArg(args), flags, debounceFlag)
		},
	}

	c.Flags().DurationVar(&debounceFlag, "debounce", watch.DefaultDebounce,
		"settle period before a change triggers a rebuild")
	return c
}

// runWatch performs an initial build, then rebuilds on source changes until
// interrupted.
func runWatch(ctx context.Context, root string, flags *GlobalFlags, debounce time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(output.Logger)
	opts := pipeline.Options{Root: root, ConfigFile: flags.ConfigFile}

	rebuild := func(ctx context.Context) error {
		result, err := p.Run(ctx, opts)
		if err != nil {
			return err
		}
		output.Info("rebuilt",
			"pages", result.Stats.Pages,
			"assets", result.Stats.Assets,
			"elapsed", result.Stats.Elapsed.Round(time.Millisecond).String(),
		)
		return nil
	}

	// Initial build; also resolves the source directory to watch.
	result, err := p.Run(ctx, opts)
	if err != nil {
		return NewExitError(err, ExitBuildError)
	}
	output.Info("built",
		"pages", result.Stats.Pages,
		"assets", result.Stats.Assets,
	)

	w, err := watch.New(watch.Options{Dir: result.Paths.SrcDir, Debounce: debounce}, output.Logger)
	if err != nil {
		return NewExitError(fmt.Errorf("starting watcher: %w", err), ExitGeneralError)
	}
	defer w.Close()

	output.Println(output.StyleAction.Render("watching") + " " + output.StyleNoun.Render(result.Paths.SrcDir))

	if err := w.Run(ctx, rebuild); err != nil && !errors.Is(err, context.Canceled) {
		return NewExitError(err, ExitGeneralError)
	}

	output.Info("watch stopped")
	return nil
}
