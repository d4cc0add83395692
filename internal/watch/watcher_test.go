package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrildev/cli/internal/output"
	"github.com/astrildev/cli/internal/testutil"
)

func TestWatcherTriggersOnChange(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "pages/index.md", "Hello.\n")

	w, err := New(Options{Dir: dir, Debounce: 50 * time.Millisecond},
		output.NewLogger(io.Discard, log.InfoLevel))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	triggered := make(chan struct{}, 1)
	go func() {
		_ = w.Run(ctx, func(context.Context) error {
			select {
			case triggered <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Give the run loop a moment to start, then touch a watched file.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages", "index.md"), []byte("Changed.\n"), 0o644))

	select {
	case <-triggered:
	case <-ctx.Done():
		t.Fatal("watcher did not trigger a rebuild")
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	dir := t.TempDir()

	w, err := New(Options{Dir: dir}, output.NewLogger(io.Discard, log.InfoLevel))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = w.Run(ctx, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatcherDefaults(t *testing.T) {
	dir := t.TempDir()

	w, err := New(Options{Dir: dir}, output.NewLogger(io.Discard, log.InfoLevel))
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, DefaultDebounce, w.opts.Debounce)
}
