// Package watcher monitors a single runbook file for changes so the viewer
// can recompile it in place. Events are debounced: editors often produce a
// burst of writes (or a remove/rename pair) for one logical save.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/runbook-sh/runbook/internal/debug"
)

// DefaultDebounce is how long the watcher waits after the last write
// before reporting a change.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to one file over a channel.
type Watcher struct {
	path     string
	debounce time.Duration

	fsw      *fsnotify.Watcher
	changeCh chan struct{}
	done     chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a watcher for path. The containing directory is watched
// rather than the file itself, which survives atomic replace-on-save.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		debounce: DefaultDebounce,
		changeCh: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}
	w.fsw = fsw

	go w.loop()
	return w, nil
}

// Changed returns a channel that receives after the file changed on disk.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Stop stops the watcher. The change channel is left open; a goroutine
// blocked on it is cleaned up at process exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}
	close(w.done)
	w.fsw.Close()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) loop() {
	target := filepath.Base(w.path)

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debug.Logf("watcher: %s %s", event.Op, event.Name)
			w.trigger()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			debug.Logf("watcher error: %v", err)
		}
	}
}

// trigger arms (or re-arms) the debounce timer.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
		case w.changeCh <- struct{}{}:
		default:
		}
	})
}
