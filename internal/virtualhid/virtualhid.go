// Package virtualhid is the opaque "virtual HID device" capability wrapper
// of §4.9. The core only depends on this interface and its three signals;
// the real OS-level driver/service behind it is an external collaborator
// (§1 non-goals) and is never implemented here.
package virtualhid

import "github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"

// KeyboardReportKind discriminates the keyboard input report variant being
// posted (§4.9's "typed async_post_keyboard_input_report(variant)").
type KeyboardReportKind int

const (
	KeyboardReportKeyboard KeyboardReportKind = iota
	KeyboardReportConsumer
	KeyboardReportAppleVendorTopCase
	KeyboardReportAppleVendorKeyboard
)

// KeyboardInputReport is one posted HID report for the keyboard interface.
type KeyboardInputReport struct {
	Kind     KeyboardReportKind
	Modifier uint8
	Keys     []uint8 // raw 8-bit usages currently pressed on this page
}

// PointingInputReport is one posted HID report for the pointing interface.
type PointingInputReport struct {
	Buttons         hidtaxonomy.PointingButtonBitmask
	X               int8
	Y               int8
	VerticalWheel   int8
	HorizontalWheel int8
}

// KeyboardProperties configures initialize_virtual_hid_keyboard (§4.9).
type KeyboardProperties struct {
	CountryCode              int
	CapsLockDelayMilliseconds int
}

// Client is the capability surface of §4.9. The core treats it as opaque:
// C5 posts reports through it and reacts to its three signals.
type Client interface {
	InitializeVirtualHIDKeyboard(props KeyboardProperties) error
	InitializeVirtualHIDPointing() error
	AsyncPostKeyboardInputReport(report KeyboardInputReport) error
	AsyncPostPointingInputReport(report PointingInputReport) error

	OnClientConnected(cb func())
	OnClientDisconnected(cb func())
	OnVirtualHIDKeyboardReady(cb func())
}
