// Package postevent is the post-event dispatch queue of §4.5: it serialises
// manipulator output into a time-ordered stream of HID reports and side
// effects, applies the 5ms inter-event spacing rule, and drains the queue
// against the virtual HID client (C9) and the IPC sender (C8).
package postevent

import (
	"github.com/pqrs-org/karabiner-go-core/internal/clock"
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/virtualhid"
)

// Kind discriminates the seven queue entry types of §4.5.
type Kind int

const (
	KindKeyboardInput Kind = iota
	KindConsumerInput
	KindAppleVendorTopCaseInput
	KindAppleVendorKeyboardInput
	KindPointingInput
	KindShellCommand
	KindSelectInputSource
)

// AdjustmentClass tells adjustTimeStamp which rule applies to an entry
// being inserted (§4.5).
type AdjustmentClass int

const (
	// ClassKeyDownOrModifierKeyUp is floored to last+wait if it arrives too
	// soon after the previous entry.
	ClassKeyDownOrModifierKeyUp AdjustmentClass = iota
	// ClassKeyUpNonModifier is not inflated when it immediately follows
	// another key_up on a non-modifier, but still never decreases.
	ClassKeyUpNonModifier
	// ClassSingle is never inflated.
	ClassSingle
	// ClassUnadjusted (shell_command, select_input_source) is inserted
	// exactly as given, with no clamping at all (§4.5).
	ClassUnadjusted
)

// Entry is one queued post-event (§4.5's "Event types in the queue").
type Entry struct {
	Kind      Kind
	Timestamp clock.AbsoluteTime

	Keyboard          virtualhid.KeyboardInputReport
	Pointing          virtualhid.PointingInputReport
	ShellCommand      string
	SelectInputSource []eventvalue.InputSourceSpecifier
}
