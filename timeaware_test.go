package obscache

import (
	"testing"
	"time"

	"github.com/goelayush89/go-obscache/clock"
	"github.com/goelayush89/go-obscache/eviction"
)

func newTestTimeAware(t *testing.T, ttl time.Duration) (*TimeAware[string, int], *clock.Mock) {
	t.Helper()
	mockClock := clock.NewMock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewTimeAware(WithClock[string, int](mockClock))
	c.SetExpirePolicy(ttl)
	return c, mockClock
}

func TestTimeAware_ExpiredEntryEvictedOnPut(t *testing.T) {
	c, mockClock := newTestTimeAware(t, 100*time.Millisecond)

	c.Put("a", 1)
	mockClock.Advance(150 * time.Millisecond)
	c.Put("b", 2)

	if c.Len() != 1 {
		t.Fatalf("expected only b to remain, got %v", c.Keys())
	}
	if _, ok := c.Timestamp("a"); ok {
		t.Fatal("expected a's timestamp to be dropped with it")
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected a to be expired")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatal("expected b to be present")
	}
}

func TestTimeAware_GetRefreshesTimestamp(t *testing.T) {
	c, mockClock := newTestTimeAware(t, 100*time.Millisecond)

	c.Put("a", 1)
	mockClock.Advance(50 * time.Millisecond)

	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a after 50ms")
	}

	mockClock.Advance(80 * time.Millisecond)

	if n := c.ClearStale(); n != 0 {
		t.Fatalf("expected nothing stale 80ms after refresh, evicted %d", n)
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to survive 130ms total with a refresh at 50ms")
	}
}

func TestTimeAware_ExactlyTTLIsNotStale(t *testing.T) {
	c, mockClock := newTestTimeAware(t, 100*time.Millisecond)

	c.Put("a", 1)
	mockClock.Advance(100 * time.Millisecond)

	if n := c.ClearStale(); n != 0 {
		t.Fatalf("expected entry aged exactly ttl to stay, evicted %d", n)
	}

	mockClock.Advance(time.Millisecond)
	if n := c.ClearStale(); n != 1 {
		t.Fatalf("expected entry to expire just past ttl, evicted %d", n)
	}
}

func TestTimeAware_PutRefreshesBeforeEviction(t *testing.T) {
	c, mockClock := newTestTimeAware(t, 100*time.Millisecond)

	c.Put("a", 1)
	mockClock.Advance(500 * time.Millisecond)

	// a is long expired but has not been swept; rewriting it must keep it.
	c.Put("a", 2)

	v, ok := c.Get("a")
	if !ok || v != 2 {
		t.Fatalf("expected rewritten a=2, got %d (ok=%v)", v, ok)
	}
}

func TestTimeAware_EvictsOnlyExpiredPrefix(t *testing.T) {
	c, mockClock := newTestTimeAware(t, 100*time.Millisecond)

	c.Put("a", 1)
	mockClock.Advance(40 * time.Millisecond)
	c.Put("b", 2)
	mockClock.Advance(40 * time.Millisecond)
	c.Put("c", 3)
	mockClock.Advance(40 * time.Millisecond) // a=120ms, b=80ms, c=40ms

	if n := c.ClearStale(); n != 1 {
		t.Fatalf("expected one eviction, got %d", n)
	}
	mustEqualKeys(t, c.Keys(), []string{"c", "b"})
}

func TestTimeAware_GetMissingKeyAddsNoTimestamp(t *testing.T) {
	c, _ := newTestTimeAware(t, time.Second)

	c.Get("ghost")

	if _, ok := c.Timestamp("ghost"); ok {
		t.Fatal("expected no timestamp for a key never stored")
	}
}

func TestTimeAware_RemoveDropsTimestamp(t *testing.T) {
	c, _ := newTestTimeAware(t, time.Second)
	c.Put("a", 1)

	if _, ok := c.Timestamp("a"); !ok {
		t.Fatal("expected a timestamp after put")
	}

	if v, ok := c.Remove("a"); !ok || v != 1 {
		t.Fatalf("expected 1,true got %d,%v", v, ok)
	}
	if _, ok := c.Timestamp("a"); ok {
		t.Fatal("expected timestamp removed with the key")
	}
}

func TestTimeAware_ClearDropsTimestamps(t *testing.T) {
	c, _ := newTestTimeAware(t, time.Second)
	c.Put("a", 1)
	c.Put("b", 2)

	c.Clear()

	if !c.IsEmpty() {
		t.Fatal("expected empty cache")
	}
	if _, ok := c.Eldest(); ok {
		t.Fatal("expected no eldest")
	}
	if _, ok := c.Timestamp("a"); ok {
		t.Fatal("expected timestamps cleared")
	}
}

func TestTimeAware_ListenerSeesEvents(t *testing.T) {
	var events []string
	c, _ := newTestTimeAware(t, time.Second)
	c.SetListener(recorder{name: "r", events: &events})

	c.Put("a", 1)
	c.Get("a")
	c.Get("b")

	mustEqualKeys(t, events, []string{"r:put:a=1", "r:hit:a", "r:miss:b"})
}

func TestTimeAware_ReplacingPolicy(t *testing.T) {
	c, mockClock := newTestTimeAware(t, 100*time.Millisecond)
	c.SetStalePolicy(eviction.Capacity[string, int](c.Len, 2))

	c.Put("a", 1)
	mockClock.Advance(time.Hour)
	c.Put("b", 2)

	// The expire policy was replaced, so age alone evicts nothing.
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}

	c.Put("c", 3)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected capacity policy to evict a")
	}
}

func TestTimeAware_OnPutSeesExpiredEntriesGone(t *testing.T) {
	c, mockClock := newTestTimeAware(t, 100*time.Millisecond)
	c.Put("a", 1)
	mockClock.Advance(150 * time.Millisecond)

	lenAtPut := -1
	aAtPut := true
	c.SetListener(Hooks[string, int]{
		Put: func(key string, _ int) {
			lenAtPut = c.Len()
			aAtPut = c.Contains("a")
		},
	})
	c.Put("b", 2)

	if lenAtPut != 1 || aAtPut {
		t.Fatalf("expected a evicted before OnPut(b), saw len=%d a present=%v", lenAtPut, aAtPut)
	}
}

func TestTimeAware_PutEmitsOneEvent(t *testing.T) {
	c, _ := newTestTimeAware(t, time.Second)
	var events []string
	c.SetListener(recorder{name: "r", events: &events})

	c.Put("a", 1)
	c.Put("a", 2)

	if len(events) != 2 || events[0] != "r:put:a=1" || events[1] != "r:put:a=2" {
		t.Fatalf("unexpected events %v", events)
	}
}

func TestTimeAware_ContainsLeavesStampAlone(t *testing.T) {
	c, mockClock := newTestTimeAware(t, 100*time.Millisecond)
	c.Put("a", 1)
	mockClock.Advance(150 * time.Millisecond)

	if !c.Contains("a") {
		t.Fatal("expected unswept a to be reported present")
	}
	if n := c.ClearStale(); n != 1 {
		t.Fatalf("expected Contains not to refresh a, evicted %d", n)
	}
}
