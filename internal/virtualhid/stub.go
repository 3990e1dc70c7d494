package virtualhid

import "sync"

// Stub is an in-process Client used by tests and by callers that have not
// wired a real OS-level virtual HID service yet. It records every posted
// report and lets a test fire the three signals on demand; a real
// implementation would emit them from the underlying OS driver's callbacks
// instead.
type Stub struct {
	mu sync.Mutex

	KeyboardReports []KeyboardInputReport
	PointingReports []PointingInputReport

	keyboardInitialized bool
	pointingInitialized bool

	connected       []func()
	disconnected    []func()
	keyboardReady   []func()
}

func NewStub() *Stub { return &Stub{} }

func (s *Stub) InitializeVirtualHIDKeyboard(KeyboardProperties) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyboardInitialized = true
	return nil
}

func (s *Stub) InitializeVirtualHIDPointing() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointingInitialized = true
	return nil
}

func (s *Stub) AsyncPostKeyboardInputReport(report KeyboardInputReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.KeyboardReports = append(s.KeyboardReports, report)
	return nil
}

func (s *Stub) AsyncPostPointingInputReport(report PointingInputReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PointingReports = append(s.PointingReports, report)
	return nil
}

func (s *Stub) OnClientConnected(cb func())        { s.connected = append(s.connected, cb) }
func (s *Stub) OnClientDisconnected(cb func())      { s.disconnected = append(s.disconnected, cb) }
func (s *Stub) OnVirtualHIDKeyboardReady(cb func()) { s.keyboardReady = append(s.keyboardReady, cb) }

// FireClientConnected, FireClientDisconnected, and FireKeyboardReady let
// tests simulate the underlying service's signal emission.
func (s *Stub) FireClientConnected() {
	for _, cb := range s.connected {
		cb()
	}
}

func (s *Stub) FireClientDisconnected() {
	for _, cb := range s.disconnected {
		cb()
	}
}

func (s *Stub) FireKeyboardReady() {
	for _, cb := range s.keyboardReady {
		cb()
	}
}

var _ Client = (*Stub)(nil)
