// Package watcher re-runs work when a file changes on disk.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls back once per burst of changes to a file
type Watcher struct {
	debounce time.Duration
	// OnError receives errors reported by the underlying notifier. When nil
	// they are printed to stderr.
	OnError func(error)
}

// New creates a watcher that waits for debounce of quiet before calling back
func New(debounce time.Duration) *Watcher {
	return &Watcher{debounce: debounce}
}

// Watch blocks until ctx is done, calling fn with the absolute path each
// time path is written or recreated. fn runs on the calling goroutine, so
// events arriving while it runs are coalesced into the next call.
func (w *Watcher) Watch(ctx context.Context, path string, fn func(string)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	// Editors often save by renaming a temp file over the original, which
	// drops a watch on the file itself.
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			fn(absPath)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) reportError(err error) {
	if w.OnError != nil {
		w.OnError(err)
		return
	}
	fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
}
