package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/citewise/internal/logger"
)

// Watcher reloads a ConfigStore when its file changes on disk.
// The parent directory is watched so editors that save via rename are seen.
type Watcher struct {
	store    *ConfigStore
	onChange func()
	fsw      *fsnotify.Watcher
}

// NewWatcher creates a watcher for store. onChange runs after each
// successful reload and may be nil.
func NewWatcher(store *ConfigStore, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(store.Path())); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}
	return &Watcher{store: store, onChange: onChange, fsw: fsw}, nil
}

// Run processes events until ctx is cancelled. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(ev) && w.onChange != nil {
				w.onChange()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher: %v", err)
		}
	}
}

// handleEvent reloads the store for writes to the config file and
// reports whether it did.
func (w *Watcher) handleEvent(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(w.store.Path()) {
		return false
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	if err := w.store.Load(); err != nil {
		logger.Warn("Reloading %s: %v", w.store.Path(), err)
		return false
	}
	logger.Debug("Reloaded %s", w.store.Path())
	return true
}
