// Package cmd provides command implementations for the astrild CLI.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/astrildev/cli/internal/output"
	"github.com/astrildev/cli/internal/version"
)

// GlobalFlags holds CLI-wide flags resolved during PersistentPreRunE and
// passed explicitly into every sub-command constructor.
type GlobalFlags struct {
	// ConfigFile is the --config override for astrild.yaml.
	ConfigFile string

	// Verbose enables debug logging.
	Verbose bool
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	flags := &GlobalFlags{}

	rootCmd := &cobra.Command{
		Use:   "astrild",
		Short: "Static site build pipeline for Astro projects",
		Long: `astrild builds static sites from markdown sources.

It provides commands to:
  - Build a project into its output directory
  - Watch sources and rebuild on change
  - Scaffold a new project

Every successful build also deposits a build-info.json artifact at the
output root describing what was built and when.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			output.SetupLogging(flags.Verbose)

			info := version.GetInfo()
			output.Debug("astrild started", "version", info.Version)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "path to config file (default: <root>/astrild.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "increase output verbosity")

	rootCmd.AddCommand(NewBuildCmd(flags))
	rootCmd.AddCommand(NewWatchCmd(flags))
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// rootArg returns the project root from positional args, defaulting to ".".
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
