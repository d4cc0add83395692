// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory,
// creating parent directories as needed, and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// Project scaffolds a minimal project in a temp dir: astrild.yaml with the
// given content plus a single index page. Returns the project root.
func Project(t *testing.T, configContent string) string {
	t.Helper()
	root := t.TempDir()
	WriteFile(t, root, "astrild.yaml", configContent)
	WriteFile(t, root, filepath.Join("src", "pages", "index.md"), "---\ntitle: Home\n---\nHello.\n")
	return root
}
