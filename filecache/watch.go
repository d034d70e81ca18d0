package filecache

import (
	"log/slog"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// watcher follows every cached path and reports changes back to the cache.
type watcher struct {
	fs     *fsnotify.Watcher
	cache  *Cache
	logger *slog.Logger

	mu    sync.Mutex
	paths map[string]struct{}
}

func newWatcher(c *Cache) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &watcher{
		fs:     fsw,
		cache:  c,
		logger: c.logger,
		paths:  make(map[string]struct{}),
	}, nil
}

func (w *watcher) add(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[path]; ok {
		return
	}
	if err := w.fs.Add(path); err != nil {
		w.logger.Debug("filecache: watch", "path", path, "err", err)
		return
	}
	w.paths[path] = struct{}{}
}

// forget stops following path. The kernel drops watches on removed files
// on its own, so a failed Remove is expected and ignored.
func (w *watcher) forget(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[path]; !ok {
		return
	}
	delete(w.paths, path)
	_ = w.fs.Remove(path)
}

func (w *watcher) run(wg *sync.WaitGroup, stop <-chan struct{}) {
	defer wg.Done()

	for {
		select {
		case <-stop:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.logger.Debug("filecache: event", "op", event.Op, "name", event.Name)

			switch {
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				w.forget(event.Name)
				w.cache.invalidate(event.Name)
			case event.Has(fsnotify.Write):
				w.cache.refresh(event.Name)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("filecache: watcher error", "err", err)
		}
	}
}

func (w *watcher) close() error {
	return w.fs.Close()
}
