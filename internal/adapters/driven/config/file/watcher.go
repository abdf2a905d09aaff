package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/closet-cli/internal/logger"
)

// Watcher reloads a ConfigStore whenever its file changes on disk.
//
// The config directory is watched rather than the file itself, since editors
// commonly replace files by renaming a temporary copy over them.
type Watcher struct {
	store    *ConfigStore
	onChange func()
}

// NewWatcher creates a watcher for store. onChange runs on the watcher
// goroutine after every successful reload.
func NewWatcher(store *ConfigStore, onChange func()) *Watcher {
	return &Watcher{store: store, onChange: onChange}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.store.Dir()); err != nil {
		return fmt.Errorf("watch %s: %w", w.store.Dir(), err)
	}

	target := filepath.Clean(w.store.Path())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("config change detected: %s %s", ev.Op, ev.Name)
			if err := w.store.Load(); err != nil {
				logger.Warn("reload config: %v", err)
				continue
			}
			if w.onChange != nil {
				w.onChange()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}
