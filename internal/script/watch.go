package script

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports writes to a single script file.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
}

// NewWatcher starts watching path. Events are buffered until Run is called.
func NewWatcher(path string) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory; editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", absPath, err)
	}
	return &Watcher{watcher: watcher, path: absPath}, nil
}

// Run calls onChange after each write or re-creation of the file, until ctx
// is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if absPath, _ := filepath.Abs(event.Name); absPath == w.path {
				onChange()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("script watcher error", "error", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
