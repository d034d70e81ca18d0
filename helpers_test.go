package obscache

import (
	"fmt"
	"testing"
)

// recorder logs every event it sees, prefixed with its name.
type recorder struct {
	name   string
	events *[]string
}

func (r recorder) OnHit(key string)  { *r.events = append(*r.events, r.name+":hit:"+key) }
func (r recorder) OnMiss(key string) { *r.events = append(*r.events, r.name+":miss:"+key) }
func (r recorder) OnPut(key string, value int) {
	*r.events = append(*r.events, fmt.Sprintf("%s:put:%s=%d", r.name, key, value))
}

func mustEqualKeys(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected keys %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected keys %v, got %v", want, got)
		}
	}
}
