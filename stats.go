package obscache

import (
	"slices"
	"sort"
	"sync/atomic"
)

// Stats counts hits, misses and puts across all keys. The zero value is
// ready to use and safe to read from other goroutines.
type Stats[K comparable, V any] struct {
	hits   atomic.Uint64
	misses atomic.Uint64
	puts   atomic.Uint64
}

type StatsSnapshot struct {
	Hits    uint64
	Misses  uint64
	Puts    uint64
	HitRate float64
}

func (s *Stats[K, V]) OnHit(K)    { s.hits.Add(1) }
func (s *Stats[K, V]) OnMiss(K)   { s.misses.Add(1) }
func (s *Stats[K, V]) OnPut(K, V) { s.puts.Add(1) }

func (s *Stats[K, V]) Hits() uint64   { return s.hits.Load() }
func (s *Stats[K, V]) Misses() uint64 { return s.misses.Load() }
func (s *Stats[K, V]) Puts() uint64   { return s.puts.Load() }

func (s *Stats[K, V]) Snapshot() StatsSnapshot {
	hits := s.hits.Load()
	misses := s.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return StatsSnapshot{
		Hits:    hits,
		Misses:  misses,
		Puts:    s.puts.Load(),
		HitRate: hitRate,
	}
}

func (s *Stats[K, V]) Reset() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.puts.Store(0)
}

// KeyStats counts hits, misses and puts per key. The zero value is ready
// to use. Like the caches it observes, it is not safe for concurrent use.
type KeyStats[K comparable, V any] struct {
	hits   tally[K]
	misses tally[K]
	puts   tally[K]
}

func (s *KeyStats[K, V]) OnHit(key K)      { s.hits.add(key) }
func (s *KeyStats[K, V]) OnMiss(key K)     { s.misses.add(key) }
func (s *KeyStats[K, V]) OnPut(key K, _ V) { s.puts.add(key) }

// Hits returns the hit count of key, zero if it was never hit.
func (s *KeyStats[K, V]) Hits(key K) int   { return s.hits.counts[key] }
func (s *KeyStats[K, V]) Misses(key K) int { return s.misses.counts[key] }
func (s *KeyStats[K, V]) Puts(key K) int   { return s.puts.counts[key] }

// TopHits returns up to n keys ordered by descending hit count. Keys with
// equal counts keep the order in which they were first hit.
func (s *KeyStats[K, V]) TopHits(n int) []K   { return s.hits.top(n) }
func (s *KeyStats[K, V]) TopMisses(n int) []K { return s.misses.top(n) }
func (s *KeyStats[K, V]) TopPuts(n int) []K   { return s.puts.top(n) }

type tally[K comparable] struct {
	counts map[K]int
	order  []K
}

func (t *tally[K]) add(key K) {
	if t.counts == nil {
		t.counts = make(map[K]int)
	}
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

func (t *tally[K]) top(n int) []K {
	if n <= 0 || len(t.order) == 0 {
		return nil
	}
	keys := slices.Clone(t.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	return keys[:min(n, len(keys))]
}

var (
	_ Listener[string, int] = (*Stats[string, int])(nil)
	_ Listener[string, int] = (*KeyStats[string, int])(nil)
)
