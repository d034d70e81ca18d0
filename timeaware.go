package obscache

import (
	"time"

	"github.com/goelayush89/go-obscache/clock"
	"github.com/goelayush89/go-obscache/eviction"
	"github.com/goelayush89/go-obscache/storage"
)

// TimeAware is an LRU cache that also records when each key was last
// read or written, so stale policies can judge entries by age.
//
// Because every touch both refreshes the timestamp and moves the key to
// the front, the eldest entry is always the one touched longest ago.
// A key's timestamp is refreshed before any stale pass that could judge
// it, so a key that was just written or read is never evicted by an age
// policy with a non-negative limit.
type TimeAware[K comparable, V any] struct {
	lru    *LRU[K, V]
	stamps *storage.Stamps[K]
	clock  clock.Clock
	policy StalePolicy[K, V]
}

// NewTimeAware returns an empty cache stamped by the clock from opts. It
// keeps everything until SetExpirePolicy or SetStalePolicy is called.
func NewTimeAware[K comparable, V any](opts ...Option[K, V]) *TimeAware[K, V] {
	s := newSettings(opts)
	return &TimeAware[K, V]{
		lru:    NewLRU(WithListener(s.listener)),
		stamps: storage.NewStamps[K](),
		clock:  s.clock,
		policy: eviction.Never[K, V]{},
	}
}

// Put stores the entry, stamps it with the current time and runs a stale
// pass against the fresh stamp. OnPut is emitted last, once expired
// entries are gone.
func (c *TimeAware[K, V]) Put(key K, value V) {
	c.lru.store(key, value)
	c.stamps.Touch(key, c.clock.Now())
	c.ClearStale()
	c.lru.listener.OnPut(key, value)
}

// Get refreshes the key's stamp when it is present, runs a stale pass and
// then reads through the LRU, which emits the hit or miss.
func (c *TimeAware[K, V]) Get(key K) (V, bool) {
	if c.lru.touch(key) {
		c.stamps.Touch(key, c.clock.Now())
	}
	if !c.IsEmpty() {
		c.ClearStale()
	}
	return c.lru.Get(key)
}

// Contains reports whether key is cached. It neither refreshes the
// stamp nor emits an event.
func (c *TimeAware[K, V]) Contains(key K) bool {
	return c.lru.Contains(key)
}

func (c *TimeAware[K, V]) Remove(key K) (V, bool) {
	c.stamps.Forget(key)
	return c.lru.Remove(key)
}

func (c *TimeAware[K, V]) Len() int {
	return c.lru.Len()
}

func (c *TimeAware[K, V]) IsEmpty() bool {
	return c.lru.IsEmpty()
}

func (c *TimeAware[K, V]) Clear() {
	c.lru.Clear()
	c.stamps.Clear()
}

func (c *TimeAware[K, V]) Eldest() (Pair[K, V], bool) {
	return c.lru.Eldest()
}

func (c *TimeAware[K, V]) ClearStale() int {
	return clearStale[K, V](c, c.policy)
}

func (c *TimeAware[K, V]) SetStalePolicy(policy StalePolicy[K, V]) {
	if policy == nil {
		policy = eviction.Never[K, V]{}
	}
	c.policy = policy
}

func (c *TimeAware[K, V]) SetListener(listener Listener[K, V]) {
	c.lru.SetListener(listener)
}

// Timestamp returns when key was last read or written.
func (c *TimeAware[K, V]) Timestamp(key K) (time.Time, bool) {
	return c.stamps.Load(key)
}

// SetExpirePolicy installs a policy evicting entries not touched for
// strictly longer than ttl. It replaces any previous policy.
func (c *TimeAware[K, V]) SetExpirePolicy(ttl time.Duration) {
	c.SetStalePolicy(eviction.Expire[K, V](c.age, ttl))
}

// Keys returns keys from most to least recently touched.
func (c *TimeAware[K, V]) Keys() []K {
	return c.lru.Keys()
}

func (c *TimeAware[K, V]) age(key K) (time.Duration, bool) {
	return c.stamps.Age(key, c.clock.Now())
}

var _ Cache[string, int] = (*TimeAware[string, int])(nil)
