package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the configuration file on disk and reports changes.
//
// Warden's configuration is immutable once loaded: rule tables and the
// magic-word catalog are shared read-only by concurrent validation calls,
// so swapping them at runtime is not supported. The watcher exists for
// operators — when the file changes it logs a notice and invokes the
// optional callback so a supervisor can schedule a restart.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewWatcher creates a watcher for the configuration file at path.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsw,
		path:     filepath.Clean(path),
		debounce: 500 * time.Millisecond,
		logger:   slog.Default().With("component", "config.watcher"),
		stopCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until the context is cancelled or Stop is called, reporting
// every change to the configuration file. onChange may be nil.
//
// The parent directory is watched rather than the file itself so that
// editors which replace the file (rename-over-write) are still observed.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	w.logger.Info("watching configuration file", "path", w.path)

	var lastChange time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			// Debounce editor write storms
			if time.Since(lastChange) < w.debounce {
				continue
			}
			lastChange = time.Now()

			w.logger.Warn("configuration file changed on disk; restart required to apply",
				"path", w.path,
				"op", event.Op.String(),
			)
			if onChange != nil {
				onChange()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("configuration watch error", "error", err)
		}
	}
}

// Stop terminates the watch loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		close(w.stopCh)
	}
	return w.watcher.Close()
}
