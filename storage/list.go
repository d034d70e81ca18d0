package storage

// none marks an absent link.
const none = -1

type node[K comparable, V any] struct {
	pair Pair[K, V]
	prev int
	next int
}

// List is a key index over a doubly-linked sequence of pairs. Nodes live
// in an arena and link to each other by slot number, so the list owns
// every node and the index only records slots.
//
// The first node is the most recently placed one and the last node is the
// eldest. Every operation is O(1); nothing walks the sequence except Keys.
//
// List is not safe for concurrent use.
type List[K comparable, V any] struct {
	nodes []node[K, V]
	free  []int
	index map[K]int
	first int
	last  int
}

func NewList[K comparable, V any]() *List[K, V] {
	return &List[K, V]{
		index: make(map[K]int),
		first: none,
		last:  none,
	}
}

func (l *List[K, V]) Len() int {
	return len(l.index)
}

func (l *List[K, V]) Contains(key K) bool {
	_, ok := l.index[key]
	return ok
}

// Load returns the value stored for key without changing its position.
func (l *List[K, V]) Load(key K) (V, bool) {
	slot, ok := l.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return l.nodes[slot].pair.Value, true
}

// Store replaces the value of an existing key in place. It reports false
// and does nothing when the key is absent.
func (l *List[K, V]) Store(key K, value V) bool {
	slot, ok := l.index[key]
	if !ok {
		return false
	}
	l.nodes[slot].pair.Value = value
	return true
}

// PushFront inserts a new key as the first node. Callers must check
// Contains first; pushing a present key would orphan its old node.
func (l *List[K, V]) PushFront(key K, value V) {
	slot := l.alloc(Pair[K, V]{Key: key, Value: value})
	l.linkFront(slot)
	l.index[key] = slot
}

// MoveToFront relocates key to the first position. It is a no-op when the
// key is already first and reports false when the key is absent.
func (l *List[K, V]) MoveToFront(key K) bool {
	slot, ok := l.index[key]
	if !ok {
		return false
	}
	if slot == l.first {
		return true
	}
	l.unlink(slot)
	l.linkFront(slot)
	return true
}

// Remove detaches key from the sequence and the index and returns its value.
func (l *List[K, V]) Remove(key K) (V, bool) {
	slot, ok := l.index[key]
	if !ok {
		var zero V
		return zero, false
	}

	value := l.nodes[slot].pair.Value
	l.unlink(slot)
	l.nodes[slot] = node[K, V]{prev: none, next: none}
	l.free = append(l.free, slot)
	delete(l.index, key)

	return value, true
}

// Front returns the first pair.
func (l *List[K, V]) Front() (Pair[K, V], bool) {
	if l.first == none {
		return Pair[K, V]{}, false
	}
	return l.nodes[l.first].pair, true
}

// Back returns the eldest pair.
func (l *List[K, V]) Back() (Pair[K, V], bool) {
	if l.last == none {
		return Pair[K, V]{}, false
	}
	return l.nodes[l.last].pair, true
}

// Keys returns every key from first to last.
func (l *List[K, V]) Keys() []K {
	keys := make([]K, 0, len(l.index))
	for slot := l.first; slot != none; slot = l.nodes[slot].next {
		keys = append(keys, l.nodes[slot].pair.Key)
	}
	return keys
}

func (l *List[K, V]) Clear() {
	l.nodes = nil
	l.free = nil
	l.index = make(map[K]int)
	l.first = none
	l.last = none
}

func (l *List[K, V]) alloc(p Pair[K, V]) int {
	n := node[K, V]{pair: p, prev: none, next: none}
	if k := len(l.free); k > 0 {
		slot := l.free[k-1]
		l.free = l.free[:k-1]
		l.nodes[slot] = n
		return slot
	}
	l.nodes = append(l.nodes, n)
	return len(l.nodes) - 1
}

func (l *List[K, V]) linkFront(slot int) {
	n := &l.nodes[slot]
	n.prev = none
	n.next = l.first
	if l.first != none {
		l.nodes[l.first].prev = slot
	}
	l.first = slot
	if l.last == none {
		l.last = slot
	}
}

// unlink rewires the neighbours of slot around it, fixing first and last
// when slot sits at either end.
func (l *List[K, V]) unlink(slot int) {
	n := &l.nodes[slot]
	if n.prev != none {
		l.nodes[n.prev].next = n.next
	} else {
		l.first = n.next
	}
	if n.next != none {
		l.nodes[n.next].prev = n.prev
	} else {
		l.last = n.prev
	}
	n.prev = none
	n.next = none
}
