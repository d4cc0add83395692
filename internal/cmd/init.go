package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/astrildev/cli/internal/config"
	"github.com/astrildev/cli/internal/output"
)

const starterPage = `---
title: Welcome
---
This site was scaffolded by astrild.

Edit src/pages/index.md to get started.
`

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	var yesFlag bool

	c := &cobra.Command{
		Use:   "init [path]",
		Short: "Scaffold a new project",
		Long: `Create astrild.yaml and a starter page in the given directory.

Prompts for the output mode and the canonical site URL. Use --yes to accept
defaults without prompting.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInit(rootArg(args), yesFlag)
		},
	}

	c.Flags().BoolVarP(&yesFlag, "yes", "y", false, "accept defaults without prompting")
	return c
}

// runInit scaffolds a project at root.
func runInit(root string, yes bool) error {
	configFile := filepath.Join(root, config.ConfigFileName)

	exists, err := config.ConfigFileExists(configFile)
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}
	if exists {
		return NewExitError(fmt.Errorf("%s already exists", configFile), ExitConfigError)
	}

	cfg := config.DefaultConfig()
	if !yes {
		if err := promptConfig(cfg); err != nil {
			return NewExitError(err, ExitGeneralError)
		}
	}

	if err := writeScaffold(root, cfg); err != nil {
		return NewExitError(err, ExitGeneralError)
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf("project scaffolded in %s", output.StyleNoun.Render(root))))
	return nil
}

// promptConfig fills in the output mode and site URL interactively.
func promptConfig(cfg *config.Project) error {
	modeSelect := promptui.Select{
		Label: "Output mode",
		Items: []string{config.OutputStatic, config.OutputHybrid, config.OutputServer},
	}
	_, mode, err := modeSelect.Run()
	if err != nil {
		return fmt.Errorf("selecting output mode: %w", err)
	}
	cfg.Output = mode

	sitePrompt := promptui.Prompt{
		Label: "Site URL (optional)",
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			u, err := url.Parse(s)
			if err != nil || !u.IsAbs() {
				return fmt.Errorf("must be an absolute URL")
			}
			return nil
		},
	}
	site, err := sitePrompt.Run()
	if err != nil {
		return fmt.Errorf("reading site URL: %w", err)
	}
	cfg.Site = strings.TrimSpace(site)

	return nil
}

// writeScaffold writes astrild.yaml and the starter source tree.
func writeScaffold(root string, cfg *config.Project) error {
	pagesDir := filepath.Join(root, cfg.SrcDir, "pages")
	if err := os.MkdirAll(pagesDir, 0o755); err != nil {
		return fmt.Errorf("creating source tree: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "output: %s\n", cfg.Output)
	if cfg.Site != "" {
		fmt.Fprintf(&sb, "site: %s\n", cfg.Site)
	}
	fmt.Fprintf(&sb, "srcDir: %s\n", cfg.SrcDir)
	fmt.Fprintf(&sb, "outDir: %s\n", cfg.OutDir)

	configFile := filepath.Join(root, config.ConfigFileName)
	if err := os.WriteFile(configFile, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", config.ConfigFileName, err)
	}

	indexPage := filepath.Join(pagesDir, "index.md")
	if err := os.WriteFile(indexPage, []byte(starterPage), 0o644); err != nil {
		return fmt.Errorf("writing starter page: %w", err)
	}

	return nil
}
