// Package pipeline orchestrates one build invocation end to end.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/astrildev/cli/internal/build"
	"github.com/astrildev/cli/internal/buildinfo"
	"github.com/astrildev/cli/internal/config"
	"github.com/astrildev/cli/internal/fsurl"
	"github.com/astrildev/cli/internal/integration"
)

// Options configures one pipeline run.
type Options struct {
	// Root is the project root directory.
	Root string

	// ConfigFile overrides the config file path. Empty means
	// <root>/astrild.yaml.
	ConfigFile string
}

// Result reports a completed pipeline run.
type Result struct {
	// Config is the resolved project configuration.
	Config *config.Project

	// Paths is the resolved project layout.
	Paths *config.Paths

	// Stats summarizes the rendered output.
	Stats *build.Stats
}

// Pipeline runs builds. Integrations are constructed fresh for every run so
// that per-build hook state never leaks across invocations.
type Pipeline struct {
	logger *log.Logger
}

// New creates a pipeline logging through the given logger.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// Run executes one build:
//
//  1. resolve and validate the project configuration;
//  2. dispatch the configuration hook to all integrations;
//  3. render pages and copy assets into the output directory;
//  4. dispatch the completion hook with the output location.
//
// Hooks run only around a successful render; a build error returns before
// the completion hook fires.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	cfg, paths, err := p.resolve(opts)
	if err != nil {
		return nil, err
	}

	dispatcher := integration.NewDispatcher(p.logger, p.builtins(cfg)...)
	dispatcher.ConfigSetup(cfg)

	builder := build.New(build.Options{
		SrcDir: paths.SrcDir,
		OutDir: paths.OutDir,
		Mode:   cfg.Output,
		Site:   cfg.Site,
	}, p.logger)

	stats, err := builder.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}

	dispatcher.BuildDone(integration.DoneContext{Dir: fsurl.ToURL(paths.OutDir)})

	return &Result{Config: cfg, Paths: paths, Stats: stats}, nil
}

// resolve loads the project config and computes the filesystem layout.
func (p *Pipeline) resolve(opts Options) (*config.Project, *config.Paths, error) {
	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = filepath.Join(opts.Root, config.ConfigFileName)
	}

	cfg, err := config.NewLoader().LoadWithDefaults(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading project config: %w", err)
	}

	paths, err := config.ResolvePaths(opts.Root, cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, paths, nil
}

// builtins constructs the built-in integrations enabled by the config.
func (p *Pipeline) builtins(cfg *config.Project) []integration.Integration {
	var ins []integration.Integration
	if cfg.Integrations.BuildInfoEnabled() {
		ins = append(ins, buildinfo.New(p.logger))
	}
	return ins
}
