package clock

import (
	"testing"
	"time"
)

func TestMock_AdvanceMovesNow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMock(start)

	m.Advance(150 * time.Millisecond)

	if got := m.Since(start); got != 150*time.Millisecond {
		t.Fatalf("expected 150ms, got %v", got)
	}
}

func TestMock_TickerFiresOnDeadline(t *testing.T) {
	m := NewMock(time.Now())
	tk := m.NewTicker(time.Second)
	defer tk.Stop()

	m.Advance(500 * time.Millisecond)
	select {
	case <-tk.C():
		t.Fatal("ticker fired before its deadline")
	default:
	}

	m.Advance(500 * time.Millisecond)
	select {
	case <-tk.C():
	default:
		t.Fatal("expected a tick at the deadline")
	}
}

func TestMock_StoppedTickerStaysQuiet(t *testing.T) {
	m := NewMock(time.Now())
	tk := m.NewTicker(time.Second)
	tk.Stop()

	m.Advance(2 * time.Second)
	select {
	case <-tk.C():
		t.Fatal("stopped ticker fired")
	default:
	}
}
