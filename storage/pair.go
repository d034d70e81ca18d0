package storage

// Pair is a key with its current value. The key never changes once the
// pair is stored; the value is replaced in place on update.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}
