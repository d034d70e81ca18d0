package obscache

// Broadcast forwards every event to its listeners in the order they were
// added. It does not isolate listeners from each other: a panic in one
// stops delivery to the rest and reaches the cache caller. Wrap a listener
// yourself if it needs isolation.
type Broadcast[K comparable, V any] struct {
	listeners []Listener[K, V]
}

func NewBroadcast[K comparable, V any](listeners ...Listener[K, V]) *Broadcast[K, V] {
	b := &Broadcast[K, V]{}
	for _, l := range listeners {
		b.AddListener(l)
	}
	return b
}

// AddListener appends l to the delivery order. Nil listeners are ignored.
func (b *Broadcast[K, V]) AddListener(l Listener[K, V]) {
	if l == nil {
		return
	}
	b.listeners = append(b.listeners, l)
}

func (b *Broadcast[K, V]) Len() int {
	return len(b.listeners)
}

func (b *Broadcast[K, V]) OnHit(key K) {
	for _, l := range b.listeners {
		l.OnHit(key)
	}
}

func (b *Broadcast[K, V]) OnMiss(key K) {
	for _, l := range b.listeners {
		l.OnMiss(key)
	}
}

func (b *Broadcast[K, V]) OnPut(key K, value V) {
	for _, l := range b.listeners {
		l.OnPut(key, value)
	}
}

var _ Listener[string, int] = (*Broadcast[string, int])(nil)
