package virtualhid

import "testing"

func TestStubRecordsPostedReports(t *testing.T) {
	s := NewStub()
	if err := s.AsyncPostKeyboardInputReport(KeyboardInputReport{Modifier: 0x02}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.KeyboardReports) != 1 || s.KeyboardReports[0].Modifier != 0x02 {
		t.Fatalf("expected recorded report, got %+v", s.KeyboardReports)
	}
}

func TestStubFiresSignalsToRegisteredCallbacks(t *testing.T) {
	s := NewStub()
	connected := false
	ready := false
	s.OnClientConnected(func() { connected = true })
	s.OnVirtualHIDKeyboardReady(func() { ready = true })

	s.FireClientConnected()
	s.FireKeyboardReady()

	if !connected || !ready {
		t.Fatalf("expected both signals to fire, connected=%v ready=%v", connected, ready)
	}
}
