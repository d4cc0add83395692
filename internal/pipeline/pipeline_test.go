package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrildev/cli/internal/buildinfo"
	"github.com/astrildev/cli/internal/output"
	"github.com/astrildev/cli/internal/testutil"
)

func newTestPipeline() *Pipeline {
	return New(output.NewLogger(io.Discard, log.InfoLevel))
}

func TestRun(t *testing.T) {
	t.Run("builds and deposits metadata", func(t *testing.T) {
		root := testutil.Project(t, "output: static\nsite: https://example.com\n")

		result, err := newTestPipeline().Run(context.Background(), Options{Root: root})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Stats.Pages)
		assert.FileExists(t, filepath.Join(result.Paths.OutDir, "index.html"))

		data, err := os.ReadFile(filepath.Join(result.Paths.OutDir, buildinfo.ArtifactName))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, "astro", m["framework"])
		assert.Equal(t, "static", m["output"])
		assert.Equal(t, "https://example.com", m["site"])
		assert.NotEmpty(t, m["builtAt"])
	})

	t.Run("project without declared mode or site", func(t *testing.T) {
		root := testutil.Project(t, "")

		result, err := newTestPipeline().Run(context.Background(), Options{Root: root})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(result.Paths.OutDir, buildinfo.ArtifactName))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, "unknown", m["output"])
		assert.Nil(t, m["site"])
	})

	t.Run("metadata integration can be disabled", func(t *testing.T) {
		root := testutil.Project(t, "integrations:\n  buildInfo: false\n")

		result, err := newTestPipeline().Run(context.Background(), Options{Root: root})
		require.NoError(t, err)

		assert.FileExists(t, filepath.Join(result.Paths.OutDir, "index.html"))
		assert.NoFileExists(t, filepath.Join(result.Paths.OutDir, buildinfo.ArtifactName))
	})

	t.Run("no hooks after a failed build", func(t *testing.T) {
		// Project with a config but no pages directory: the render fails and
		// the completion hook must not have produced an artifact.
		root := t.TempDir()
		testutil.WriteFile(t, root, "astrild.yaml", "output: static\n")

		_, err := newTestPipeline().Run(context.Background(), Options{Root: root})
		require.Error(t, err)

		assert.NoFileExists(t, filepath.Join(root, "dist", buildinfo.ArtifactName))
	})

	t.Run("invalid config fails before building", func(t *testing.T) {
		root := testutil.Project(t, "output: nonsense\n")

		_, err := newTestPipeline().Run(context.Background(), Options{Root: root})
		assert.ErrorContains(t, err, "invalid output mode")
	})

	t.Run("artifact reflects the most recent build", func(t *testing.T) {
		root := testutil.Project(t, "output: static\n")
		p := newTestPipeline()

		_, err := p.Run(context.Background(), Options{Root: root})
		require.NoError(t, err)

		// Reconfigure and rebuild; the artifact is fully overwritten.
		testutil.WriteFile(t, root, "astrild.yaml", "output: server\nsite: https://v2.example\n")
		result, err := p.Run(context.Background(), Options{Root: root})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(result.Paths.OutDir, buildinfo.ArtifactName))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, "server", m["output"])
		assert.Equal(t, "https://v2.example", m["site"])
		assert.Len(t, m, 4)
	})
}
