// Package watch provides an fsnotify-based change watcher for files the
// editor has open locally. A change event triggers fingerprint
// re-verification; it never blocks editing.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
	"github.com/tabtrace-labs/tabtrace-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// Watcher reports writes to watched files. Directories are watched
// rather than files so that editors which replace-by-rename are still
// observed.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan driven.ChangeEvent

	mu      sync.Mutex
	watched map[string]struct{} // absolute file paths
	dirs    map[string]struct{} // directories added to fs
	closed  bool
}

// NewWatcher creates a change watcher. Callers must Close it.
func NewWatcher() (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fs:      fs,
		events:  make(chan driven.ChangeEvent, 16),
		watched: make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch begins watching a file path.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("watcher is closed")
	}

	dir := filepath.Dir(abs)
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.watched[abs] = struct{}{}
	return nil
}

// Events returns the channel carrying change events.
func (w *Watcher) Events() <-chan driven.ChangeEvent {
	return w.events
}

// Close stops all watches and closes the events channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	// loop drains fs.Events until fs closes it, then closes w.events.
	return w.fs.Close()
}

// loop forwards relevant fsnotify events as change events.
func (w *Watcher) loop() {
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			// Drop rather than block when the consumer lags.
			select {
			case w.events <- driven.ChangeEvent{Path: event.Name}:
			default:
				logger.Debug("dropping change event for %s", event.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error: %v", err)
		}
	}
}

// relevant reports whether an fsnotify event concerns a watched file's
// content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.watched[abs]
	return ok
}
