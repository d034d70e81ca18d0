package obscache

import "github.com/goelayush89/go-obscache/storage"

// FIFO evicts in insertion order. Reads never reorder, and updating a
// present key keeps its original place.
type FIFO[K comparable, V any] struct {
	observers[K, V]
	entries *storage.List[K, V]
}

// NewFIFO returns an empty FIFO cache that keeps everything until a stale
// policy is set.
func NewFIFO[K comparable, V any](opts ...Option[K, V]) *FIFO[K, V] {
	return &FIFO[K, V]{
		observers: newObservers(newSettings(opts)),
		entries:   storage.NewList[K, V](),
	}
}

func (c *FIFO[K, V]) Get(key K) (V, bool) {
	value, ok := c.entries.Load(key)
	if ok {
		c.listener.OnHit(key)
	} else {
		c.listener.OnMiss(key)
	}
	return value, ok
}

func (c *FIFO[K, V]) Put(key K, value V) {
	if !c.entries.Store(key, value) {
		c.entries.PushFront(key, value)
	}

	c.ClearStale()
	c.listener.OnPut(key, value)
}

// Contains reports whether key is cached without emitting an event.
func (c *FIFO[K, V]) Contains(key K) bool {
	return c.entries.Contains(key)
}

func (c *FIFO[K, V]) Remove(key K) (V, bool) {
	return c.entries.Remove(key)
}

func (c *FIFO[K, V]) Len() int {
	return c.entries.Len()
}

func (c *FIFO[K, V]) IsEmpty() bool {
	return c.entries.Len() == 0
}

func (c *FIFO[K, V]) Clear() {
	c.entries.Clear()
}

// Eldest returns the earliest inserted entry still present.
func (c *FIFO[K, V]) Eldest() (Pair[K, V], bool) {
	return c.entries.Back()
}

func (c *FIFO[K, V]) ClearStale() int {
	return clearStale[K, V](c, c.policy)
}

// Keys returns keys from newest to eldest insertion.
func (c *FIFO[K, V]) Keys() []K {
	return c.entries.Keys()
}

var _ Cache[string, int] = (*FIFO[string, int])(nil)
