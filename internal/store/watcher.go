package store

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reindexes an FSStore when its content tree changes on disk.
// It is a dev-mode convenience: production deployments treat content as
// immutable and never run one.
type Watcher struct {
	store    *FSStore
	logger   *slog.Logger
	debounce time.Duration
}

// NewWatcher creates a watcher for the given store.
func NewWatcher(store *FSStore, logger *slog.Logger) *Watcher {
	return &Watcher{
		store:    store,
		logger:   logger,
		debounce: 300 * time.Millisecond,
	}
}

// Run watches the store's content root until ctx is cancelled.
// Rapid event bursts (editor save storms) are coalesced into one reload.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := w.addRecursive(watcher, w.store.root); err != nil {
		return err
	}

	w.logger.Info("content watcher started", "root", w.store.root)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("content watcher stopped")
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// New directories must be added to the watch set before the
			// debounce window closes, or their files go unnoticed.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(watcher, event.Name)
				}
			}
			pending = time.After(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("content watcher error", "error", err)

		case <-pending:
			pending = nil
			if err := w.store.Reload(ctx); err != nil {
				// A broken edit must not kill the watcher: keep serving
				// the previous snapshot and report the compile failure.
				w.logger.Error("content reload failed", "error", err)
				continue
			}
			w.logger.Info("content reloaded")
		}
	}
}

// relevant filters events down to source files and directory changes.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	// Directory create/remove always matters; for files only sources do.
	if strings.Contains(name, ".") && !strings.HasSuffix(name, sourceExtension) {
		return false
	}
	return true
}

// addRecursive registers dir and every subdirectory with the watcher.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Transient races with deletes are fine
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				w.logger.Warn("failed to watch directory", "path", path, "error", err)
			}
		}
		return nil
	})
}
