// Package config provides project configuration loading and management.
package config

import (
	"fmt"
	"net/url"
)

// Output modes declared in astrild.yaml.
const (
	// OutputStatic prerenders every page at build time.
	OutputStatic = "static"

	// OutputHybrid prerenders by default with per-page opt-out.
	OutputHybrid = "hybrid"

	// OutputServer renders on demand; the build still produces the asset tree.
	OutputServer = "server"
)

// IntegrationsConfig toggles built-in integrations.
type IntegrationsConfig struct {
	// BuildInfo controls the build-info artifact integration.
	// Default: enabled.
	BuildInfo *bool `json:"buildInfo,omitempty"`
}

// BuildInfoEnabled reports whether the build-info integration should run.
func (c IntegrationsConfig) BuildInfoEnabled() bool {
	return c.BuildInfo == nil || *c.BuildInfo
}

// Project represents the astrild project configuration.
// Loaded from astrild.yaml at the project root.
type Project struct {
	// Output is the declared build output mode: static, hybrid, or server.
	// Env: ASTRILD_OUTPUT. Empty means the project declares no mode.
	Output string `json:"output,omitempty"`

	// Site is the canonical absolute URL of the deployed site.
	// Env: ASTRILD_SITE. Optional.
	Site string `json:"site,omitempty"`

	// SrcDir is the source directory, relative to the project root.
	// Env: ASTRILD_SRCDIR, Default: "src"
	SrcDir string `json:"srcDir,omitempty"`

	// OutDir is the build output directory, relative to the project root.
	// Env: ASTRILD_OUTDIR, Default: "dist"
	OutDir string `json:"outDir,omitempty"`

	// Integrations toggles built-in integrations.
	Integrations IntegrationsConfig `json:"integrations"`
}

// WithDefaults returns a copy of the config with defaults applied.
func (p *Project) WithDefaults() *Project {
	out := *p
	if out.SrcDir == "" {
		out.SrcDir = "src"
	}
	if out.OutDir == "" {
		out.OutDir = "dist"
	}
	return &out
}

// Validate checks the declared fields. An absent output mode is valid (the
// project simply declares none); an unknown mode is a configuration error.
func (p *Project) Validate() error {
	switch p.Output {
	case "", OutputStatic, OutputHybrid, OutputServer:
	default:
		return fmt.Errorf("invalid output mode %q (valid: static, hybrid, server)", p.Output)
	}

	if p.Site != "" {
		u, err := url.Parse(p.Site)
		if err != nil {
			return fmt.Errorf("invalid site URL %q: %w", p.Site, err)
		}
		if !u.IsAbs() {
			return fmt.Errorf("site URL %q must be absolute", p.Site)
		}
	}

	return nil
}

// DefaultConfig returns a Project with all default values populated.
// Used by `astrild init` to generate the initial config file.
func DefaultConfig() *Project {
	return &Project{
		Output: OutputStatic,
		SrcDir: "src",
		OutDir: "dist",
	}
}
