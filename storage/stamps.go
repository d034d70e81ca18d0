package storage

import "time"

// Stamps records the instant each key was last touched.
type Stamps[K comparable] struct {
	at map[K]time.Time
}

func NewStamps[K comparable]() *Stamps[K] {
	return &Stamps[K]{at: make(map[K]time.Time)}
}

func (s *Stamps[K]) Touch(key K, now time.Time) {
	s.at[key] = now
}

func (s *Stamps[K]) Load(key K) (time.Time, bool) {
	t, ok := s.at[key]
	return t, ok
}

// Age reports how long ago key was touched, relative to now.
func (s *Stamps[K]) Age(key K, now time.Time) (time.Duration, bool) {
	t, ok := s.at[key]
	if !ok {
		return 0, false
	}
	return now.Sub(t), true
}

func (s *Stamps[K]) Forget(key K) bool {
	_, existed := s.at[key]
	delete(s.at, key)
	return existed
}

func (s *Stamps[K]) Len() int {
	return len(s.at)
}

func (s *Stamps[K]) Clear() {
	s.at = make(map[K]time.Time)
}
