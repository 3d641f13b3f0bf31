// Package watcher marks the vector index stale when knowledge base
// files change on disk outside the upload path.
package watcher

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/formpilot/formpilot/internal/logger"
)

// Watcher observes the knowledge directory and invokes a callback on
// any change that affects document content. The callback typically
// marks the index stale so the next rebuild picks the change up.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dir      string
	onChange func()
}

// New creates a watcher over dir. onChange fires once per relevant
// filesystem event; it must be safe for concurrent use.
func New(dir string, onChange func()) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("watcher: onChange callback is required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		fsw:      fsw,
		dir:      dir,
		onChange: onChange,
	}, nil
}

// Run processes filesystem events until the context is cancelled or the
// underlying watcher closes. It blocks; run it in its own goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) ||
				event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				logger.Debug("Knowledge directory changed: %s", event)
				w.onChange()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
