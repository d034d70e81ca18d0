package eviction

import (
	"time"

	"github.com/goelayush89/go-obscache/storage"
)

// Policy decides whether the eldest entry of a cache is stale. Caches ask
// repeatedly, evicting the eldest entry each time, until the policy
// declines or the cache is empty.
//
// Implementations must not modify the cache they judge, and must return
// false for a nil entry.
type Policy[K comparable, V any] interface {
	ShouldEvict(eldest *storage.Pair[K, V]) bool
}

type PolicyFunc[K comparable, V any] func(eldest *storage.Pair[K, V]) bool

func (f PolicyFunc[K, V]) ShouldEvict(eldest *storage.Pair[K, V]) bool {
	return f(eldest)
}

// Never keeps every entry.
type Never[K comparable, V any] struct{}

func (Never[K, V]) ShouldEvict(*storage.Pair[K, V]) bool { return false }

// Capacity evicts while size reports more than max entries.
func Capacity[K comparable, V any](size func() int, max int) Policy[K, V] {
	return PolicyFunc[K, V](func(eldest *storage.Pair[K, V]) bool {
		return eldest != nil && size() > max
	})
}

// AgeFunc reports how long ago key was last touched, or false when the key
// has no recorded touch.
type AgeFunc[K comparable] func(key K) (time.Duration, bool)

// Expire evicts the eldest entry once it is strictly older than ttl. An
// entry aged exactly ttl is kept, and so is one with no recorded age.
func Expire[K comparable, V any](age AgeFunc[K], ttl time.Duration) Policy[K, V] {
	return PolicyFunc[K, V](func(eldest *storage.Pair[K, V]) bool {
		if eldest == nil {
			return false
		}
		d, ok := age(eldest.Key)
		if !ok {
			return false
		}
		return d > ttl
	})
}

var (
	_ Policy[string, int] = Never[string, int]{}
	_ Policy[string, int] = PolicyFunc[string, int](nil)
)
