// Package watch rebuilds the project when source files change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces rapid editor save bursts into one rebuild.
const DefaultDebounce = 200 * time.Millisecond

// defaultIgnoreDirs are directory names never watched.
var defaultIgnoreDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
}

// Options configures a watcher.
type Options struct {
	// Dir is the root directory to watch recursively.
	Dir string

	// Debounce is the quiet period before a change triggers the callback.
	// Zero means DefaultDebounce.
	Debounce time.Duration
}

// Watcher watches a source tree and invokes a callback after changes settle.
type Watcher struct {
	fsw    *fsnotify.Watcher
	opts   Options
	logger *log.Logger
}

// New creates a watcher over opts.Dir and all its subdirectories.
func New(opts Options, logger *log.Logger) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{fsw: fsw, opts: opts, logger: logger}
	if err := w.addRecursive(opts.Dir); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run blocks, invoking onChange after each debounced batch of events, until
// the context is canceled. Callback errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
			if debounce == nil {
				debounce = time.NewTimer(w.opts.Debounce)
				fire = debounce.C
			} else {
				debounce.Reset(w.opts.Debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-fire:
			debounce = nil
			fire = nil
			if err := onChange(ctx); err != nil {
				w.logger.Error("rebuild failed", "error", err)
			}
		}
	}
}

// handleEvent keeps the recursive watch in sync with new directories.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	w.logger.Debug("source changed", "path", event.Name, "op", event.Op.String())

	if event.Op.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() && !defaultIgnoreDirs[filepath.Base(event.Name)] {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("watching new directory failed", "dir", event.Name, "error", err)
			}
		}
	}
}

// addRecursive watches dir and every non-ignored subdirectory.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if defaultIgnoreDirs[d.Name()] && p != dir {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
}
