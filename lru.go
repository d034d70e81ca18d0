package obscache

import "github.com/goelayush89/go-obscache/storage"

// LRU evicts the least recently used entry first. Every Get or Put of a
// present key moves it to the front; the eldest entry is at the back.
// Get, Put and Remove are O(1).
type LRU[K comparable, V any] struct {
	observers[K, V]
	entries *storage.List[K, V]
}

// NewLRU returns an empty LRU cache that keeps everything until a stale
// policy is set.
func NewLRU[K comparable, V any](opts ...Option[K, V]) *LRU[K, V] {
	return &LRU[K, V]{
		observers: newObservers(newSettings(opts)),
		entries:   storage.NewList[K, V](),
	}
}

// Get returns the value for key and makes it the most recently used entry.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	value, ok := c.entries.Load(key)
	if !ok {
		c.listener.OnMiss(key)
		return value, false
	}

	c.listener.OnHit(key)
	c.entries.MoveToFront(key)
	return value, true
}

// Put stores value under key and makes it the most recently used entry.
// The stale policy sees the entry already in place.
func (c *LRU[K, V]) Put(key K, value V) {
	c.store(key, value)
	c.ClearStale()
	c.listener.OnPut(key, value)
}

// Contains reports whether key is cached without emitting an event or
// changing its position.
func (c *LRU[K, V]) Contains(key K) bool {
	return c.entries.Contains(key)
}

func (c *LRU[K, V]) Remove(key K) (V, bool) {
	return c.entries.Remove(key)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.entries.Len()
}

func (c *LRU[K, V]) IsEmpty() bool {
	return c.entries.Len() == 0
}

func (c *LRU[K, V]) Clear() {
	c.entries.Clear()
}

// Eldest returns the least recently used entry.
func (c *LRU[K, V]) Eldest() (Pair[K, V], bool) {
	return c.entries.Back()
}

func (c *LRU[K, V]) ClearStale() int {
	return clearStale[K, V](c, c.policy)
}

// Keys returns keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	return c.entries.Keys()
}

// store places the entry at the front without a stale pass or event.
func (c *LRU[K, V]) store(key K, value V) {
	if c.entries.Store(key, value) {
		c.entries.MoveToFront(key)
	} else {
		c.entries.PushFront(key, value)
	}
}

// touch marks key as most recently used without emitting an event.
func (c *LRU[K, V]) touch(key K) bool {
	return c.entries.MoveToFront(key)
}

var _ Cache[string, int] = (*LRU[string, int])(nil)
