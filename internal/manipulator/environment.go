// Package manipulator is the manipulator rule engine of §4.4 (C4): it
// evaluates a profile's manipulators against an input event queue and
// produces HID reports, shell commands, and input-source selects on the
// C5 post-event dispatch queue.
package manipulator

import "github.com/pqrs-org/karabiner-go-core/internal/config"

// Environment is the externally-observed state a manipulator's conditions
// are evaluated against: the frontmost application, the originating
// device's identity, the active input source, and keyboard type.
// Obtaining these from the host OS is outside this module's scope (§1);
// callers refresh an Environment and hand it to the Engine before each
// HandleInputEvent call.
type Environment struct {
	FrontmostBundleID string
	FrontmostFilePath string

	DeviceIdentifiers config.DeviceIdentifiers
	DeviceDescription string

	InputSourceLanguage string
	InputSourceID       string
	InputModeID         string

	KeyboardType string
}
