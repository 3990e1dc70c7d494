package deviceobserver

import (
	"testing"

	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
)

func TestStubDeliversInjectedEvents(t *testing.T) {
	s := NewStub()
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	qe := eventvalue.NewAnchorEvent(eventvalue.DeviceID(1), 0)
	s.Inject(qe)

	got := <-s.Events()
	if !got.Equal(qe) {
		t.Fatalf("expected %+v, got %+v", qe, got)
	}
}

func TestStubFiresLifecycleSignalsToRegisteredCallbacks(t *testing.T) {
	s := NewStub()
	var grabbed, ungrabbed eventvalue.DeviceID
	s.OnDeviceGrabbed(func(id eventvalue.DeviceID) { grabbed = id })
	s.OnDeviceUngrabbed(func(id eventvalue.DeviceID) { ungrabbed = id })

	s.FireDeviceGrabbed(eventvalue.DeviceID(7))
	s.FireDeviceUngrabbed(eventvalue.DeviceID(9))

	if grabbed != 7 || ungrabbed != 9 {
		t.Fatalf("expected grabbed=7 ungrabbed=9, got grabbed=%v ungrabbed=%v", grabbed, ungrabbed)
	}
}
