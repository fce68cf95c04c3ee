// Package watch re-reads a ciphertext file whenever it changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit for a single save.
const DefaultDebounce = 150 * time.Millisecond

// Handler receives the full file contents after each change.
type Handler func(text string)

// Watcher follows a single file. The parent directory is watched so that
// editors replacing the file by rename are still seen.
type Watcher struct {
	path     string
	handle   Handler
	debounce time.Duration
	onError  func(error)
}

// New creates a Watcher for path.
func New(path string, handle Handler) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("watch path is empty")
	}
	if handle == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return &Watcher{
		path:     abs,
		handle:   handle,
		debounce: DefaultDebounce,
		onError: func(err error) {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		},
	}, nil
}

// SetDebounce changes the quiet period before a change is handled.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// SetErrorHandler replaces the default stderr reporting of read and watch errors.
func (w *Watcher) SetErrorHandler(fn func(error)) {
	if fn != nil {
		w.onError = fn
	}
}

// Run handles the current contents (if the file exists) and then every
// subsequent write until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if cerr := fw.Close(); cerr != nil {
			// Best-effort watcher close.
			_ = cerr
		}
	}()
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	if _, err := os.Stat(w.path); err == nil {
		w.emit()
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.onError(err)
		case <-timer.C:
			w.emit()
		}
	}
}

func (w *Watcher) emit() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			w.onError(fmt.Errorf("failed to read %s: %w", w.path, err))
		}
		return
	}
	w.handle(string(data))
}
