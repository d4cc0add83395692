package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Paths contains the resolved filesystem layout of one project.
type Paths struct {
	// Root is the absolute project root directory.
	Root string

	// ConfigFile is the absolute path to astrild.yaml.
	ConfigFile string

	// SrcDir is the absolute source directory.
	SrcDir string

	// OutDir is the absolute build output directory.
	OutDir string
}

// ResolvePaths resolves the project layout for a root directory and config.
// Relative srcDir/outDir values are joined to the root; absolute values are
// kept as-is.
func ResolvePaths(root string, cfg *Project) (*Paths, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	return &Paths{
		Root:       absRoot,
		ConfigFile: filepath.Join(absRoot, ConfigFileName),
		SrcDir:     joinIfRelative(absRoot, cfg.SrcDir),
		OutDir:     joinIfRelative(absRoot, cfg.OutDir),
	}, nil
}

func joinIfRelative(root, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~/")), nil
}
