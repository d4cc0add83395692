package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astrildev/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show CLI version information",
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.GetInfo().String())
			return nil
		},
	}
}
