// Package integration defines the build lifecycle hook contract.
//
// The pipeline drives integrations through exactly two hooks per build:
// ConfigSetup during configuration resolution, and BuildDone after every
// output artifact is finalized on disk. Hooks run sequentially, in
// registration order, on the build goroutine; setup always precedes done.
package integration

import (
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/astrildev/cli/internal/config"
)

// DoneContext carries what a BuildDone hook may know about the finished build.
type DoneContext struct {
	// Dir is the resolved build output directory as a file:// URL.
	// Integrations must not write outside it beyond their own named artifacts.
	Dir *url.URL
}

// Integration is a build lifecycle plugin.
type Integration interface {
	// Name identifies the integration in diagnostics.
	Name() string

	// ConfigSetup runs during configuration resolution, before any output
	// exists. The config must not be mutated.
	ConfigSetup(cfg *config.Project) error

	// BuildDone runs once after the build output is finalized.
	BuildDone(ctx DoneContext) error
}

// Dispatcher invokes hooks across a set of integrations. An erroring hook is
// logged and skipped; it never aborts the host build.
type Dispatcher struct {
	integrations []Integration
	logger       *log.Logger
}

// NewDispatcher creates a dispatcher over the given integrations.
func NewDispatcher(logger *log.Logger, integrations ...Integration) *Dispatcher {
	return &Dispatcher{
		integrations: integrations,
		logger:       logger,
	}
}

// ConfigSetup dispatches the configuration hook to every integration.
func (d *Dispatcher) ConfigSetup(cfg *config.Project) {
	for _, in := range d.integrations {
		if err := in.ConfigSetup(cfg); err != nil {
			d.logger.Warn("integration setup hook failed", "integration", in.Name(), "error", err)
		}
	}
}

// BuildDone dispatches the completion hook to every integration.
func (d *Dispatcher) BuildDone(ctx DoneContext) {
	for _, in := range d.integrations {
		if err := in.BuildDone(ctx); err != nil {
			d.logger.Warn("integration done hook failed", "integration", in.Name(), "error", err)
		}
	}
}
