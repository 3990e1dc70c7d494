package timer

import (
	"testing"

	"github.com/pqrs-org/karabiner-go-core/internal/clock"
)

func TestAsyncInvokeFiresInOrderWithTieBreakByInsertion(t *testing.T) {
	s := New()
	client := s.MakeClientID()
	var fired []string

	s.Enqueue(client, clock.AbsoluteTime(100), func(clock.AbsoluteTime) { fired = append(fired, "a") })
	s.Enqueue(client, clock.AbsoluteTime(50), func(clock.AbsoluteTime) { fired = append(fired, "b") })
	s.Enqueue(client, clock.AbsoluteTime(50), func(clock.AbsoluteTime) { fired = append(fired, "c") })

	s.AsyncInvoke(clock.AbsoluteTime(200))

	if len(fired) != 3 || fired[0] != "b" || fired[1] != "c" || fired[2] != "a" {
		t.Fatalf("expected [b c a], got %v", fired)
	}
}

func TestAsyncInvokeOnlyFiresDueEntries(t *testing.T) {
	s := New()
	client := s.MakeClientID()
	fired := 0
	s.Enqueue(client, clock.AbsoluteTime(1000), func(clock.AbsoluteTime) { fired++ })

	s.AsyncInvoke(clock.AbsoluteTime(500))
	if fired != 0 {
		t.Fatalf("entry fired before its deadline")
	}
	if !s.Pending(client) {
		t.Fatalf("entry should still be pending")
	}

	s.AsyncInvoke(clock.AbsoluteTime(1000))
	if fired != 1 {
		t.Fatalf("expected entry to fire once deadline reached, got %d fires", fired)
	}
}

func TestAsyncEraseCancelsAllEntriesForClient(t *testing.T) {
	s := New()
	client := s.MakeClientID()
	other := s.MakeClientID()
	fired := 0
	s.Enqueue(client, clock.AbsoluteTime(10), func(clock.AbsoluteTime) { fired++ })
	s.Enqueue(client, clock.AbsoluteTime(20), func(clock.AbsoluteTime) { fired++ })
	s.Enqueue(other, clock.AbsoluteTime(10), func(clock.AbsoluteTime) { fired++ })

	done := false
	s.AsyncErase(client, func() { done = true })

	if !done {
		t.Fatalf("expected done callback to run synchronously")
	}
	s.AsyncInvoke(clock.AbsoluteTime(100))
	if fired != 1 {
		t.Fatalf("expected only the other client's entry to fire, got %d fires", fired)
	}
}

func TestNextDeadlineReturnsEarliestPending(t *testing.T) {
	s := New()
	client := s.MakeClientID()
	s.Enqueue(client, clock.AbsoluteTime(500), nil)
	s.Enqueue(client, clock.AbsoluteTime(100), nil)

	d, ok := s.NextDeadline()
	if !ok || d != clock.AbsoluteTime(100) {
		t.Fatalf("expected earliest deadline 100, got %d (ok=%v)", d, ok)
	}
}
