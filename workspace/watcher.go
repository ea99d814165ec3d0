package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// ChangeFunc receives the re-parsed file after path changed, or nil when path
// was removed.
type ChangeFunc func(path string, f *File)

// Watcher re-parses grammar files of a Workspace when they change on disk.
// The workspace must be backed by the OS filesystem.
type Watcher struct {
	ws       *Workspace
	watcher  *fsnotify.Watcher
	debounce *debouncer

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewWatcher(ws *Workspace) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{
		ws:       ws,
		watcher:  watcher,
		debounce: newDebouncer(ws.cfg.Debounce),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, calling onChange
// once per burst of events on a grammar file. After ctx is cancelled Watch
// may be called again; after Stop it may not.
func (w *Watcher) Watch(ctx context.Context, onChange ChangeFunc) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(doneCh)
	}()

	if err := w.addDirectory(w.ws.root); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.ws.root, err)
	}
	log.Infof("watching %s (debounce %s)", w.ws.root, w.ws.cfg.Debounce)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stopCh:
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(event, onChange)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Errorf("watch: %v", err)
		}
	}
}

// Stop ends Watch and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	stopCh, doneCh := w.stopCh, w.doneCh
	w.running = false
	w.mu.Unlock()

	if running {
		close(stopCh)
		<-doneCh
	}
	w.debounce.stop()
	return w.watcher.Close()
}

func (w *Watcher) handle(event fsnotify.Event, onChange ChangeFunc) {
	if event.Op == fsnotify.Chmod || w.ws.skipHidden(event.Name) {
		return
	}
	if event.Has(fsnotify.Create) {
		if info, err := w.ws.fs.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addDirectory(event.Name); err != nil {
				log.Warningf("watch %s: %v", event.Name, err)
			}
			return
		}
	}
	if !w.ws.Matches(event.Name) {
		return
	}
	log.Debugf("%s: %s", event.Name, event.Op)

	path := event.Name
	w.debounce.trigger(path, func() {
		if err := w.ws.ScanFile(path); err != nil {
			w.ws.RemoveFile(path)
			onChange(path, nil)
			return
		}
		onChange(path, w.ws.GetFile(path))
	})
}

func (w *Watcher) addDirectory(dir string) error {
	return afero.Walk(w.ws.fs, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && w.ws.skipHidden(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		log.Debugf("watching directory %s", path)
		return nil
	})
}

// debouncer runs the latest callback for a key once no new trigger for that
// key arrived within the interval.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		timers:   make(map[string]*time.Timer),
	}
}

func (d *debouncer) trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		if d.stopped || d.timers[key] != t {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
	d.timers[key] = t
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
