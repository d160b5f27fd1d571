package filesystem

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
	"github.com/custodia-labs/captionsearch/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// Watcher reports file changes in a directory using fsnotify.
type Watcher struct{}

// NewWatcher creates a directory watcher.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch blocks until ctx is cancelled, calling onChange for every file
// created, written, removed or renamed directly inside dir.
func (w *Watcher) Watch(ctx context.Context, dir string, onChange func(path string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, changed := handleFsEvent(event); changed {
				onChange(path)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// handleFsEvent filters an fsnotify event down to a content change.
// Chmod-only events and hidden files are ignored. The watched directory
// itself may live under a hidden parent.
func handleFsEvent(event fsnotify.Event) (string, bool) {
	if isHidden(filepath.Base(event.Name)) {
		return "", false
	}
	if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return event.Name, true
	}
	return "", false
}
