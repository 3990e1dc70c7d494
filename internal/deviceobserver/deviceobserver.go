// Package deviceobserver is the opaque "grabbed keyboard/pointing device"
// capability the core's entry point depends on. Exclusively grabbing raw
// HID devices and translating their reports into queued events is an
// OS-level privilege the core treats as an external collaborator (§1
// non-goals, same footing as the virtual HID client of C9); the real
// implementation behind this interface is never built here.
package deviceobserver

import "github.com/pqrs-org/karabiner-go-core/internal/eventvalue"

// Source is the capability surface grabberd's main loop depends on: a
// stream of already-decoded queued events (device grab/ungrab, key and
// pointing-button transitions, set_variable) arriving on Events, plus two
// device lifecycle signals (grabbed and ungrabbed).
type Source interface {
	Events() <-chan eventvalue.QueuedEvent

	OnDeviceGrabbed(cb func(eventvalue.DeviceID))
	OnDeviceUngrabbed(cb func(eventvalue.DeviceID))

	Start() error
	Stop() error
}
