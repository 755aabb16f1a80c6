// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch re-validates docspec files as they change on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docspec-io/docspec/internal/discovery"
	"github.com/docspec-io/docspec/internal/logger"
)

// Event is emitted when a watched docspec file changes.
type Event struct {
	// Path is the changed docspec file.
	Path string
}

// Watcher watches the directories containing docspec files and emits a
// debounced Event per changed docspec.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	// Debouncing: collect changed paths before emitting.
	pendingMu sync.Mutex
	pending   map[string]bool

	events chan Event
}

// New creates a Watcher. debounce <= 0 selects a 100ms default.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	return &Watcher{
		watcher:  fsw,
		debounce: debounce,
		pending:  make(map[string]bool),
		events:   make(chan Event, 64),
	}, nil
}

// Events returns the channel of debounced change events. The channel is
// closed when Run returns, so consumers can simply range over it.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Add registers the parent directories of the given docspec files. Watching
// directories rather than files survives the rename-based writes editors and
// our own atomic writer perform.
func (w *Watcher) Add(files []string) error {
	dirs := make(map[string]bool)
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		logger.Debug("watching %s", dir)
	}
	return nil
}

// Run processes filesystem events until ctx is cancelled. It emits one Event
// per changed docspec file after the debounce window closes, and closes the
// event channel on return. Run is the only sender; call it at most once.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !discovery.IsDocspec(ev.Name) {
				continue
			}
			w.pendingMu.Lock()
			w.pending[ev.Name] = true
			w.pendingMu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Debug("watch error: %v", err)
		case <-ticker.C:
			w.flush()
		}
	}
}

// flush emits pending paths in no particular order.
func (w *Watcher) flush() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()

	for _, p := range paths {
		select {
		case w.events <- Event{Path: p}:
		default:
			// Drop rather than block; the next write re-queues it.
		}
	}
}

// Close releases the underlying OS watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
