// Package filecache caches text file contents in an observable cache.
// Misses block on a bounded, retried disk read; concurrent misses for the
// same path share one read. A Cache is safe for concurrent use.
package filecache

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	obscache "github.com/goelayush89/go-obscache"
	"github.com/goelayush89/go-obscache/clock"
)

type Cache struct {
	cfg     Config
	data    obscache.Cache[string, string]
	loader  *retryLoader
	clock   clock.Clock
	logger  *slog.Logger
	watcher *watcher

	mu        sync.Mutex
	listeners []obscache.Listener[string, string]
	sums      map[string]uint64
	closed    bool

	stopCh      chan struct{}
	cancelLoads context.CancelFunc
	wg          sync.WaitGroup
}

type options struct {
	clock     clock.Clock
	logger    *slog.Logger
	loader    Loader
	listeners []obscache.Listener[string, string]
}

type Option func(*options)

func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithLoader replaces the disk reader, mostly for tests.
func WithLoader(l Loader) Option {
	return func(o *options) { o.loader = l }
}

func WithListener(l obscache.Listener[string, string]) Option {
	return func(o *options) { o.listeners = append(o.listeners, l) }
}

func New(cfg Config, opts ...Option) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{
		clock:  clock.Real(),
		logger: slog.New(slog.DiscardHandler),
		loader: DiskLoader{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	inner, err := obscache.New[string, string](cfg.Cache, obscache.WithClock[string, string](o.clock))
	if err != nil {
		return nil, err
	}

	loadCtx, cancelLoads := context.WithCancel(context.Background())
	c := &Cache{
		cfg:   cfg,
		data:  obscache.Synchronized(inner),
		clock: o.clock,
		loader: &retryLoader{
			source:   o.loader,
			attempts: cfg.MaxAttempts,
			backoff:  cfg.RetryBackoff,
			logger:   o.logger,
			done:     loadCtx,
		},
		logger:      o.logger,
		sums:        make(map[string]uint64),
		stopCh:      make(chan struct{}),
		cancelLoads: cancelLoads,
	}
	for _, l := range o.listeners {
		c.AddListener(l)
	}

	if cfg.Watch {
		w, err := newWatcher(c)
		if err != nil {
			cancelLoads()
			return nil, fmt.Errorf("start file watcher: %w", err)
		}
		c.watcher = w
		c.wg.Add(1)
		go w.run(&c.wg, c.stopCh)
	}

	if cfg.CleanupInterval > 0 {
		c.wg.Add(1)
		go c.cleanupLoop()
	}

	return c, nil
}

// NewWithCapacity builds a cache holding at most capacity files, evicted
// by strategy.
func NewWithCapacity(strategy obscache.Strategy, capacity int, opts ...Option) (*Cache, error) {
	cfg := DefaultConfig()
	cfg.Cache = obscache.Config{Strategy: strategy, Capacity: capacity}
	return New(cfg, opts...)
}

// NewWithExpiration builds a cache dropping files not read or written for
// longer than ttl.
func NewWithExpiration(ttl time.Duration, opts ...Option) (*Cache, error) {
	cfg := DefaultConfig()
	cfg.Cache = obscache.Config{Strategy: obscache.StrategyExpire, ExpireAfter: ttl}
	return New(cfg, opts...)
}

// Get returns the contents of path, reading the file on a miss. A caller
// whose ctx ends stops waiting; the read itself carries on for any other
// caller sharing it.
func (c *Cache) Get(ctx context.Context, path string) (string, error) {
	if c.isClosed() {
		return "", ErrClosed
	}
	path = filepath.Clean(path)

	if contents, ok := c.data.Get(path); ok {
		return contents, nil
	}

	contents, err := c.loader.Load(ctx, path)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	c.store(path, contents)
	return contents, nil
}

// Put stores contents for path without touching the disk.
func (c *Cache) Put(path, contents string) error {
	if c.isClosed() {
		return ErrClosed
	}
	c.store(filepath.Clean(path), contents)
	return nil
}

func (c *Cache) Remove(path string) (string, bool) {
	path = filepath.Clean(path)
	c.mu.Lock()
	c.untrack(path)
	c.mu.Unlock()
	return c.data.Remove(path)
}

func (c *Cache) Len() int {
	return c.data.Len()
}

// Fingerprint returns the xxhash64 digest of the cached contents of path.
// Paths evicted from the cache have none.
func (c *Cache) Fingerprint(path string) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sum, ok := c.sums[filepath.Clean(path)]
	return sum, ok
}

// AddListener subscribes l to hits, misses and puts. Listeners are called
// in the order they were added, with the cache locked, and must not call
// back into c.
func (c *Cache) AddListener(l obscache.Listener[string, string]) {
	if l == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listeners = append(c.listeners, l)
	c.data.SetListener(obscache.NewBroadcast(c.listeners...))
}

// Preload reads every path into the cache, at most PreloadConcurrency at
// a time. It returns the first error.
func (c *Cache) Preload(ctx context.Context, paths ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.PreloadConcurrency)

	for _, path := range paths {
		g.Go(func() error {
			_, err := c.Get(ctx, path)
			return err
		})
	}
	return g.Wait()
}

// Close stops the sweeper and the watcher. It is safe to call twice.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stopCh)
	c.cancelLoads()
	var err error
	if c.watcher != nil {
		err = c.watcher.close()
	}
	c.wg.Wait()
	return err
}

func (c *Cache) store(path, contents string) {
	c.data.Put(path, contents)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sums[path] = xxhash.Sum64String(contents)
	if c.watcher != nil {
		c.watcher.add(path)
	}
	// The put may have evicted other paths through the stale policy.
	c.pruneEvicted()
}

// pruneEvicted drops the digest and watch of every path the inner cache
// no longer holds. c.mu must be held.
func (c *Cache) pruneEvicted() {
	if len(c.sums) <= c.data.Len() {
		return
	}
	for path := range c.sums {
		if !c.data.Contains(path) {
			c.untrack(path)
		}
	}
}

// untrack forgets the digest and watch of path. c.mu must be held.
func (c *Cache) untrack(path string) {
	delete(c.sums, path)
	if c.watcher != nil {
		c.watcher.forget(path)
	}
}

// refresh drops path when its contents on disk no longer match what was
// cached. Unchanged contents, such as a touch, keep the entry.
func (c *Cache) refresh(path string) {
	contents, err := c.loader.source.Load(context.Background(), path)
	if err != nil {
		c.invalidate(path)
		return
	}

	c.mu.Lock()
	old, known := c.sums[path]
	c.mu.Unlock()

	if known && old == xxhash.Sum64String(contents) {
		c.logger.Debug("filecache: contents unchanged", "path", path)
		return
	}
	c.invalidate(path)
}

func (c *Cache) invalidate(path string) {
	c.logger.Debug("filecache: invalidate", "path", path)
	c.Remove(path)
}

func (c *Cache) cleanupLoop() {
	defer c.wg.Done()

	ticker := c.clock.NewTicker(c.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C():
			if n := c.data.ClearStale(); n > 0 {
				c.mu.Lock()
				c.pruneEvicted()
				c.mu.Unlock()
				c.logger.Debug("filecache: swept stale entries", "count", n)
			}
		}
	}
}

func (c *Cache) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
