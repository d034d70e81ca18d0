package obscache

import (
	"testing"

	"github.com/goelayush89/go-obscache/eviction"
)

func TestFIFO_GetDoesNotReorder(t *testing.T) {
	c := NewFIFO[string, int]()
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	c.Get("a")

	eldest, ok := c.Eldest()
	if !ok || eldest.Key != "a" {
		t.Fatalf("expected eldest a, got %v", eldest)
	}
	mustEqualKeys(t, c.Keys(), []string{"c", "b", "a"})
}

func TestFIFO_UpdateKeepsPlace(t *testing.T) {
	c := NewFIFO[string, int]()
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10)

	mustEqualKeys(t, c.Keys(), []string{"b", "a"})
	if v, _ := c.Get("a"); v != 10 {
		t.Fatalf("expected 10, got %d", v)
	}
}

func TestFIFO_CapacityEvictsEarliestInserted(t *testing.T) {
	c := NewFIFO[string, int]()
	c.SetStalePolicy(eviction.Capacity[string, int](c.Len, 2))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Put("c", 3)

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected a to be evicted despite the read")
	}
}

func TestFIFO_RemoveAndClear(t *testing.T) {
	c := NewFIFO[string, int]()
	c.Put("a", 1)
	c.Put("b", 2)

	if v, ok := c.Remove("a"); !ok || v != 1 {
		t.Fatalf("expected 1,true got %d,%v", v, ok)
	}
	eldest, _ := c.Eldest()
	if eldest.Key != "b" {
		t.Fatalf("expected eldest b, got %v", eldest)
	}

	c.Clear()
	if !c.IsEmpty() {
		t.Fatal("expected empty after clear")
	}
	if _, ok := c.Eldest(); ok {
		t.Fatal("expected no eldest after clear")
	}
}

func TestFIFO_Events(t *testing.T) {
	var events []string
	c := NewFIFO[string, int]()
	c.SetListener(recorder{name: "r", events: &events})

	c.Put("a", 1)
	c.Get("a")
	c.Get("z")
	c.Remove("a")

	mustEqualKeys(t, events, []string{"r:put:a=1", "r:hit:a", "r:miss:z"})
}
