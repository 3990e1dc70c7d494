package clock

import "testing"

func TestMillisecondRoundTrip(t *testing.T) {
	for _, ms := range []int{0, 1, 50, 500, 1000, 60000} {
		d := FromMilliseconds(ms)
		got := d.Milliseconds()
		if got != int64(ms) {
			t.Errorf("FromMilliseconds(%d).Milliseconds() = %d", ms, got)
		}
	}
}

func TestFakeClockAdvance(t *testing.T) {
	f := NewFake(0)
	start := f.Now()
	f.Advance(FromMilliseconds(30))
	if start.Sub(f.Now()).Milliseconds() != -30 {
		t.Fatalf("expected 30ms advance, got %dms", f.Now().Sub(start).Milliseconds())
	}
}

func TestSystemSourceIsMonotonic(t *testing.T) {
	var s SystemSource
	a := s.Now()
	b := s.Now()
	if b.Before(a) {
		t.Fatalf("clock went backwards: %d then %d", a, b)
	}
}
