package build

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrildev/cli/internal/output"
	"github.com/astrildev/cli/internal/testutil"
)

func newTestBuilder(t *testing.T, srcDir, outDir string) *Builder {
	t.Helper()
	return New(Options{SrcDir: srcDir, OutDir: outDir}, output.NewLogger(io.Discard, log.InfoLevel))
}

func TestRun(t *testing.T) {
	t.Run("renders pages and copies assets", func(t *testing.T) {
		srcDir := t.TempDir()
		outDir := filepath.Join(t.TempDir(), "dist")

		testutil.WriteFile(t, srcDir, "pages/index.md", "---\ntitle: Home\n---\nWelcome home.\n")
		testutil.WriteFile(t, srcDir, "pages/blog/first.md", "First post.\n")
		testutil.WriteFile(t, srcDir, "public/robots.txt", "User-agent: *\n")

		stats, err := newTestBuilder(t, srcDir, outDir).Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, stats.Pages)
		assert.Equal(t, 1, stats.Assets)

		index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
		require.NoError(t, err)
		assert.Contains(t, string(index), "<title>Home</title>")
		assert.Contains(t, string(index), "<p>Welcome home.</p>")

		assert.FileExists(t, filepath.Join(outDir, "blog", "first", "index.html"))
		assert.FileExists(t, filepath.Join(outDir, "robots.txt"))
	})

	t.Run("skips drafts", func(t *testing.T) {
		srcDir := t.TempDir()
		outDir := filepath.Join(t.TempDir(), "dist")

		testutil.WriteFile(t, srcDir, "pages/index.md", "Hello.\n")
		testutil.WriteFile(t, srcDir, "pages/wip.md", "---\ndraft: true\n---\nNot yet.\n")

		stats, err := newTestBuilder(t, srcDir, outDir).Run(context.Background())
		require.NoError(t, err)

		assert.NoFileExists(t, filepath.Join(outDir, "wip", "index.html"))
		assert.FileExists(t, filepath.Join(outDir, "index.html"))
		assert.Equal(t, 1, stats.Pages)
	})

	t.Run("escapes page content", func(t *testing.T) {
		srcDir := t.TempDir()
		outDir := filepath.Join(t.TempDir(), "dist")

		testutil.WriteFile(t, srcDir, "pages/index.md", "<script>alert(1)</script>\n")

		_, err := newTestBuilder(t, srcDir, outDir).Run(context.Background())
		require.NoError(t, err)

		html, err := os.ReadFile(filepath.Join(outDir, "index.html"))
		require.NoError(t, err)
		assert.NotContains(t, string(html), "<script>")
	})

	t.Run("adds canonical link when site is set", func(t *testing.T) {
		srcDir := t.TempDir()
		outDir := filepath.Join(t.TempDir(), "dist")
		testutil.WriteFile(t, srcDir, "pages/about.md", "About us.\n")

		b := New(Options{SrcDir: srcDir, OutDir: outDir, Site: "https://example.com/"},
			output.NewLogger(io.Discard, log.InfoLevel))
		_, err := b.Run(context.Background())
		require.NoError(t, err)

		html, err := os.ReadFile(filepath.Join(outDir, "about", "index.html"))
		require.NoError(t, err)
		assert.Contains(t, string(html), `<link rel="canonical" href="https://example.com/about">`)
	})

	t.Run("fails without pages directory", func(t *testing.T) {
		srcDir := t.TempDir()
		outDir := filepath.Join(t.TempDir(), "dist")

		_, err := newTestBuilder(t, srcDir, outDir).Run(context.Background())
		assert.ErrorContains(t, err, "pages directory")
	})

	t.Run("logs a status line per page and asset", func(t *testing.T) {
		srcDir := t.TempDir()
		outDir := filepath.Join(t.TempDir(), "dist")

		testutil.WriteFile(t, srcDir, "pages/blog/first.md", "First post.\n")
		testutil.WriteFile(t, srcDir, "public/robots.txt", "User-agent: *\n")

		var buf bytes.Buffer
		b := New(Options{SrcDir: srcDir, OutDir: outDir}, output.NewLogger(&buf, log.DebugLevel))
		_, err := b.Run(context.Background())
		require.NoError(t, err)

		logs := buf.String()
		assert.Contains(t, logs, "/blog/first")
		assert.Contains(t, logs, output.StatusRendered)
		assert.Contains(t, logs, "/robots.txt")
		assert.Contains(t, logs, output.StatusCopied)
	})

	t.Run("logs a failed status line for a broken page", func(t *testing.T) {
		srcDir := t.TempDir()
		outDir := filepath.Join(t.TempDir(), "dist")

		testutil.WriteFile(t, srcDir, "pages/broken.md", "---\ntitle: Broken\nNo closing fence.\n")

		var buf bytes.Buffer
		b := New(Options{SrcDir: srcDir, OutDir: outDir}, output.NewLogger(&buf, log.InfoLevel))
		_, err := b.Run(context.Background())
		require.Error(t, err)

		logs := buf.String()
		assert.Contains(t, logs, "/broken")
		assert.Contains(t, logs, output.StatusFailed)
	})

	t.Run("stops on canceled context", func(t *testing.T) {
		srcDir := t.TempDir()
		outDir := filepath.Join(t.TempDir(), "dist")
		testutil.WriteFile(t, srcDir, "pages/index.md", "Hello.\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestBuilder(t, srcDir, outDir).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRouteFor(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"index.md", "/"},
		{"about.md", "/about"},
		{"blog/first.md", "/blog/first"},
		{"blog/index.md", "/blog"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, routeFor(tt.rel), "rel %q", tt.rel)
	}
}

func TestOutputPathFor(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"index.md", "index.html"},
		{"about.md", "about/index.html"},
		{"blog/first.md", "blog/first/index.html"},
		{"blog/index.md", "blog/index.html"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, outputPathFor(tt.rel), "rel %q", tt.rel)
	}
}
