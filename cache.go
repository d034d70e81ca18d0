package obscache

import (
	"github.com/goelayush89/go-obscache/clock"
	"github.com/goelayush89/go-obscache/eviction"
	"github.com/goelayush89/go-obscache/storage"
)

// Pair is a cached key with its value.
type Pair[K comparable, V any] = storage.Pair[K, V]

// StalePolicy decides whether the eldest entry should be evicted.
type StalePolicy[K comparable, V any] = eviction.Policy[K, V]

// Cache is the capability set shared by every cache variant.
//
// No implementation is safe for concurrent use. Callers that share a cache
// between goroutines must serialize access themselves, for instance with
// Synchronized.
type Cache[K comparable, V any] interface {
	// Get returns the value for key, emitting OnHit or OnMiss.
	Get(key K) (V, bool)
	// Put inserts or updates key, runs a stale pass, then emits OnPut.
	Put(key K, value V)
	// Contains reports whether key is present. It emits no event and
	// leaves the eviction order alone.
	Contains(key K) bool
	// Remove deletes key and returns its value. It emits no event.
	Remove(key K) (V, bool)
	Len() int
	IsEmpty() bool
	// Clear drops every entry. It emits no event.
	Clear()
	// Eldest returns the entry the stale policy is asked about next.
	Eldest() (Pair[K, V], bool)
	// ClearStale evicts eldest entries while the stale policy agrees and
	// returns how many were evicted.
	ClearStale() int
	SetStalePolicy(policy StalePolicy[K, V])
	SetListener(listener Listener[K, V])
}

// observers holds the policy and listener attached to a cache. A nil
// policy keeps everything and a nil listener drops every event.
type observers[K comparable, V any] struct {
	policy   StalePolicy[K, V]
	listener Listener[K, V]
}

func newObservers[K comparable, V any](s settings[K, V]) observers[K, V] {
	o := observers[K, V]{}
	o.SetStalePolicy(nil)
	o.SetListener(s.listener)
	return o
}

// SetStalePolicy replaces the current policy.
func (o *observers[K, V]) SetStalePolicy(policy StalePolicy[K, V]) {
	if policy == nil {
		policy = eviction.Never[K, V]{}
	}
	o.policy = policy
}

// SetListener replaces the current listener.
func (o *observers[K, V]) SetListener(listener Listener[K, V]) {
	if listener == nil {
		listener = NopListener[K, V]{}
	}
	o.listener = listener
}

type evictable[K comparable, V any] interface {
	Eldest() (Pair[K, V], bool)
	Remove(key K) (V, bool)
}

// clearStale removes the eldest entry of c for as long as policy says it is
// stale. Each round either shrinks c or stops, so the loop terminates as
// long as the policy does not add entries.
func clearStale[K comparable, V any](c evictable[K, V], policy StalePolicy[K, V]) int {
	evicted := 0
	for {
		eldest, ok := c.Eldest()
		if !ok || !policy.ShouldEvict(&eldest) {
			return evicted
		}
		c.Remove(eldest.Key)
		evicted++
	}
}

type settings[K comparable, V any] struct {
	clock    clock.Clock
	listener Listener[K, V]
}

func newSettings[K comparable, V any](opts []Option[K, V]) settings[K, V] {
	s := settings[K, V]{clock: clock.Real()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

type Option[K comparable, V any] func(*settings[K, V])

// WithClock sets the time source used for entry timestamps.
func WithClock[K comparable, V any](c clock.Clock) Option[K, V] {
	return func(s *settings[K, V]) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithListener attaches a listener at construction.
func WithListener[K comparable, V any](l Listener[K, V]) Option[K, V] {
	return func(s *settings[K, V]) { s.listener = l }
}
