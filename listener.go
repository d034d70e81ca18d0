package obscache

// Listener observes cache activity. Caches call OnHit and OnMiss from Get
// and OnPut from Put; Remove and Clear are silent.
//
// Callbacks run synchronously on the caller's goroutine. A panic in a
// callback propagates out of the Get or Put that triggered it.
type Listener[K comparable, V any] interface {
	OnHit(key K)
	OnMiss(key K)
	OnPut(key K, value V)
}

// NopListener ignores every event.
type NopListener[K comparable, V any] struct{}

func (NopListener[K, V]) OnHit(K)    {}
func (NopListener[K, V]) OnMiss(K)   {}
func (NopListener[K, V]) OnPut(K, V) {}

// Hooks adapts plain functions to a Listener. Nil fields are skipped.
type Hooks[K comparable, V any] struct {
	Hit  func(key K)
	Miss func(key K)
	Put  func(key K, value V)
}

func (h Hooks[K, V]) OnHit(key K) {
	if h.Hit != nil {
		h.Hit(key)
	}
}

func (h Hooks[K, V]) OnMiss(key K) {
	if h.Miss != nil {
		h.Miss(key)
	}
}

func (h Hooks[K, V]) OnPut(key K, value V) {
	if h.Put != nil {
		h.Put(key, value)
	}
}

var (
	_ Listener[string, int] = NopListener[string, int]{}
	_ Listener[string, int] = Hooks[string, int]{}
)
