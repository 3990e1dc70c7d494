package deviceobserver

import (
	"sync"

	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
)

// Stub is an in-process Source used by tests and by callers that have not
// wired a real OS-level device grabber yet. A caller injects events with
// Inject; a real implementation would push decoded HID reports here
// instead.
type Stub struct {
	mu      sync.Mutex
	events  chan eventvalue.QueuedEvent
	grabbed []func(eventvalue.DeviceID)
	ungrab  []func(eventvalue.DeviceID)
	started bool
}

func NewStub() *Stub {
	return &Stub{events: make(chan eventvalue.QueuedEvent, 256)}
}

func (s *Stub) Events() <-chan eventvalue.QueuedEvent { return s.events }

func (s *Stub) OnDeviceGrabbed(cb func(eventvalue.DeviceID))   { s.grabbed = append(s.grabbed, cb) }
func (s *Stub) OnDeviceUngrabbed(cb func(eventvalue.DeviceID)) { s.ungrab = append(s.ungrab, cb) }

func (s *Stub) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	return nil
}

func (s *Stub) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	s.started = false
	close(s.events)
	return nil
}

// Inject enqueues qe as if it had arrived from a grabbed device. It blocks
// if the internal buffer is full.
func (s *Stub) Inject(qe eventvalue.QueuedEvent) {
	s.events <- qe
}

// FireDeviceGrabbed and FireDeviceUngrabbed let a caller simulate the
// underlying grabber's device lifecycle signals.
func (s *Stub) FireDeviceGrabbed(id eventvalue.DeviceID) {
	for _, cb := range s.grabbed {
		cb(id)
	}
}

func (s *Stub) FireDeviceUngrabbed(id eventvalue.DeviceID) {
	for _, cb := range s.ungrab {
		cb(id)
	}
}

var _ Source = (*Stub)(nil)
