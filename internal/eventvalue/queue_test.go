package eventvalue

import (
	"testing"

	"github.com/pqrs-org/karabiner-go-core/internal/clock"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue()
	a := NewQueuedEvent(1, clock.AbsoluteTime(0), NewMomentarySwitch(NewKeyCode(hidtaxonomy.KeyCodeA), SwitchEventTypeKeyDown))
	b := NewQueuedEvent(1, clock.AbsoluteTime(10), NewMomentarySwitch(NewKeyCode(hidtaxonomy.KeyCodeB), SwitchEventTypeKeyDown))

	q.EmplaceBack(a)
	q.EmplaceBack(b)

	if q.Size() != 2 {
		t.Fatalf("expected size 2, got %d", q.Size())
	}
	front, ok := q.Front()
	if !ok || !front.Equal(a) {
		t.Fatalf("expected front to equal a, got %+v", front)
	}
	q.EraseFront()
	front, ok = q.Front()
	if !ok || !front.Equal(b) {
		t.Fatalf("expected front to equal b after erase, got %+v", front)
	}
	q.EraseFront()
	if !q.Empty() {
		t.Fatalf("expected queue empty after erasing both events")
	}
}

func TestAnchorEventIsInvalid(t *testing.T) {
	e := NewAnchorEvent(1, clock.AbsoluteTime(100))
	if e.Valid {
		t.Fatalf("anchor event must not be valid")
	}
	if e.TimeStampType != TimeStampAnchor {
		t.Fatalf("anchor event must carry TimeStampAnchor")
	}
}

func TestTimeStampDelayAccumulates(t *testing.T) {
	q := NewQueue()
	q.IncreaseTimeStampDelay(clock.FromMilliseconds(5))
	q.IncreaseTimeStampDelay(clock.FromMilliseconds(7))
	if q.TimeStampDelay().Milliseconds() != 12 {
		t.Fatalf("expected accumulated delay of 12ms, got %dms", q.TimeStampDelay().Milliseconds())
	}
}

func TestPointingButtonManagerTracksPerDevice(t *testing.T) {
	var m PointingButtonManager
	m.Update(1, hidtaxonomy.PointingButtonButton1, true)
	m.Update(2, hidtaxonomy.PointingButtonButton2, true)

	if !m.Bitmask(1).Pressed(hidtaxonomy.PointingButtonButton1) {
		t.Fatalf("expected button1 pressed on device 1")
	}
	if m.Bitmask(1).Pressed(hidtaxonomy.PointingButtonButton2) {
		t.Fatalf("device 1 must not see device 2's button")
	}

	m.ReleaseAll(1)
	if m.Bitmask(1) != 0 {
		t.Fatalf("expected device 1 cleared after ReleaseAll")
	}
	if !m.Bitmask(2).Pressed(hidtaxonomy.PointingButtonButton2) {
		t.Fatalf("device 2 must be unaffected by device 1's ReleaseAll")
	}
}

func TestVariableSetDefaultsToZero(t *testing.T) {
	var v VariableSet
	if v.Get("unset") != 0 {
		t.Fatalf("unset variable must default to 0")
	}
	v.Set("foo", 3)
	if v.Get("foo") != 3 {
		t.Fatalf("expected foo == 3")
	}
	snap := v.Snapshot()
	snap["foo"] = 99
	if v.Get("foo") != 3 {
		t.Fatalf("Snapshot must be a copy, mutating it must not affect VariableSet")
	}
}
