package obscache

import "sync"

// Synchronized wraps c so every call holds one mutex. Listener callbacks
// run with the mutex held and must not call back into the same cache.
func Synchronized[K comparable, V any](c Cache[K, V]) Cache[K, V] {
	return &lockedCache[K, V]{c: c}
}

type lockedCache[K comparable, V any] struct {
	mu sync.Mutex
	c  Cache[K, V]
}

func (l *lockedCache[K, V]) Get(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Get(key)
}

func (l *lockedCache[K, V]) Put(key K, value V) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.Put(key, value)
}

func (l *lockedCache[K, V]) Contains(key K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Contains(key)
}

func (l *lockedCache[K, V]) Remove(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Remove(key)
}

func (l *lockedCache[K, V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Len()
}

func (l *lockedCache[K, V]) IsEmpty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.IsEmpty()
}

func (l *lockedCache[K, V]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.Clear()
}

func (l *lockedCache[K, V]) Eldest() (Pair[K, V], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Eldest()
}

func (l *lockedCache[K, V]) ClearStale() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.ClearStale()
}

func (l *lockedCache[K, V]) SetStalePolicy(policy StalePolicy[K, V]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.SetStalePolicy(policy)
}

func (l *lockedCache[K, V]) SetListener(listener Listener[K, V]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.SetListener(listener)
}
