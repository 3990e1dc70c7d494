package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Loader watches a profile-set document on disk and reloads it on change,
// debouncing rapid successive writes (editors often write-then-rename).
// Grounded on the directory-watch + debounce pattern used for hot-reloading
// JSON-backed configuration elsewhere in this stack.
type Loader struct {
	path string

	mu      sync.RWMutex
	current *Set

	watcher  *fsnotify.Watcher
	done     chan struct{}
	onChange []func(*Set)
}

func NewLoader(path string) *Loader {
	return &Loader{path: path, done: make(chan struct{})}
}

// Load reads the document synchronously and stores it as current.
func (l *Loader) Load() *Set {
	s := Load(l.path)
	l.mu.Lock()
	l.current = s
	l.mu.Unlock()
	return s
}

// Current returns the most recently loaded Set.
func (l *Loader) Current() *Set {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked (from the watch goroutine) whenever
// a reload succeeds.
func (l *Loader) OnChange(cb func(*Set)) {
	l.onChange = append(l.onChange, cb)
}

// Watch starts watching the directory containing path for changes and
// reloads on write/create events, debounced by 100ms.
func (l *Loader) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	l.watcher = w

	dir := filepath.Dir(l.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return err
	}

	go l.watchLoop()
	return nil
}

func (l *Loader) watchLoop() {
	var debounce *time.Timer
	const delay = 100 * time.Millisecond

	for {
		select {
		case <-l.done:
			return
		case ev, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != filepath.Base(l.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(delay, l.reload)
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("config watcher error")
		}
	}
}

func (l *Loader) reload() {
	s := Load(l.path)
	if !s.IsLoaded {
		return
	}
	l.mu.Lock()
	l.current = s
	l.mu.Unlock()
	for _, cb := range l.onChange {
		cb(s)
	}
}

// Close stops the watch goroutine and releases the fsnotify watcher.
func (l *Loader) Close() error {
	close(l.done)
	if l.watcher != nil {
		return l.watcher.Close()
	}
	return nil
}
