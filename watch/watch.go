// Package watch reloads a panel background image when its file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/panelbg"
)

// DefaultDelay coalesces the burst of events an editor or wallpaper tool
// produces while rewriting a file.
const DefaultDelay = 150 * time.Millisecond

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("watch: watcher closed")

// ImageWatcher calls a function when one file is written, created, renamed
// or removed. It watches the parent directory, so files replaced by rename
// are still seen.
//
// The callback runs on the goroutine calling Run. A State is not safe for
// concurrent use, so the callback should hand the reload to the event loop
// rather than call State.ReloadImage directly.
type ImageWatcher struct {
	watcher  *fsnotify.Watcher
	onChange func()

	// Delay is the quiet period after the last event before onChange runs.
	Delay time.Duration

	mu   sync.Mutex
	path string
	dir  string
}

// New starts watching path.
func New(path string, onChange func()) (*ImageWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &ImageWatcher{watcher: fw, onChange: onChange, Delay: DefaultDelay}
	if err := w.SetPath(path); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Path returns the watched file.
func (w *ImageWatcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// SetPath switches to another file.
func (w *ImageWatcher) SetPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if dir != w.dir {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch: %s: %w", dir, err)
		}
		if w.dir != "" {
			_ = w.watcher.Remove(w.dir)
		}
		w.dir = dir
	}
	w.path = abs
	return nil
}

func (w *ImageWatcher) matches(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return name == w.Path()
}

// Run delivers change notifications until ctx is done or Close is called.
func (w *ImageWatcher) Run(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return ErrClosed
			}
			if !w.matches(ev) {
				continue
			}
			panelbg.Logger().Debug("watch: image changed", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.Delay)
			} else {
				timer.Reset(w.Delay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return ErrClosed
			}
			panelbg.Logger().Warn("watch: file watcher", "err", err)
		}
	}
}

// Close stops watching. A running Run returns ErrClosed.
func (w *ImageWatcher) Close() error {
	return w.watcher.Close()
}
