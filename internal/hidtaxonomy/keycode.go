package hidtaxonomy

// KeyCode is a keyboard-or-keypad usage (UsagePageKeyboardOrKeypad).
type KeyCode uint32

// A representative subset of the USB HID keyboard usage table; large enough
// to exercise every code path in the manipulator examples of spec.md §8
// (caps_lock, escape, spacebar, delete_or_backspace, return_or_enter, the
// modifier keys, j/k, and the F-keys used by fn_function_keys).
const (
	KeyCodeA                  KeyCode = 0x04
	KeyCodeB                  KeyCode = 0x05
	KeyCodeJ                  KeyCode = 0x0d
	KeyCodeK                  KeyCode = 0x0e
	KeyCodeR                  KeyCode = 0x15
	KeyCodeW                  KeyCode = 0x1a
	KeyCode1                  KeyCode = 0x1e
	KeyCodeReturnOrEnter      KeyCode = 0x28
	KeyCodeEscape             KeyCode = 0x29
	KeyCodeDeleteOrBackspace  KeyCode = 0x2a
	KeyCodeTab                KeyCode = 0x2b
	KeyCodeSpacebar           KeyCode = 0x2c
	KeyCodeCapsLock           KeyCode = 0x39
	KeyCodeF1                 KeyCode = 0x3a
	KeyCodeF2                 KeyCode = 0x3b
	KeyCodeF3                 KeyCode = 0x3c
	KeyCodeF4                 KeyCode = 0x3d
	KeyCodeF5                 KeyCode = 0x3e
	KeyCodeF6                 KeyCode = 0x3f
	KeyCodeF7                 KeyCode = 0x40
	KeyCodeF8                 KeyCode = 0x41
	KeyCodeF9                 KeyCode = 0x42
	KeyCodeF10                KeyCode = 0x43
	KeyCodeF11                KeyCode = 0x44
	KeyCodeF12                KeyCode = 0x45
	KeyCodeRightArrow         KeyCode = 0x4f
	KeyCodeLeftArrow          KeyCode = 0x50
	KeyCodeDownArrow          KeyCode = 0x51
	KeyCodeUpArrow            KeyCode = 0x52
	KeyCodeLeftControl        KeyCode = 0xe0
	KeyCodeLeftShift          KeyCode = 0xe1
	KeyCodeLeftOption         KeyCode = 0xe2 // aka left_alt
	KeyCodeLeftCommand        KeyCode = 0xe3 // aka left_gui
	KeyCodeRightControl       KeyCode = 0xe4
	KeyCodeRightShift         KeyCode = 0xe5
	KeyCodeRightOption        KeyCode = 0xe6
	KeyCodeRightCommand       KeyCode = 0xe7

	// VendorSpecific range used by the fn key (not a real USB HID usage;
	// Karabiner-Elements models it as a synthetic key_code so it can
	// participate in from/to definitions like every other key).
	KeyCodeFn KeyCode = 0x1000000
)

var keyCodePrimary = []nameEntry{
	{"a", uint32(KeyCodeA)},
	{"b", uint32(KeyCodeB)},
	{"j", uint32(KeyCodeJ)},
	{"k", uint32(KeyCodeK)},
	{"r", uint32(KeyCodeR)},
	{"w", uint32(KeyCodeW)},
	{"1", uint32(KeyCode1)},
	{"return_or_enter", uint32(KeyCodeReturnOrEnter)},
	{"escape", uint32(KeyCodeEscape)},
	{"delete_or_backspace", uint32(KeyCodeDeleteOrBackspace)},
	{"tab", uint32(KeyCodeTab)},
	{"spacebar", uint32(KeyCodeSpacebar)},
	{"caps_lock", uint32(KeyCodeCapsLock)},
	{"f1", uint32(KeyCodeF1)},
	{"f2", uint32(KeyCodeF2)},
	{"f3", uint32(KeyCodeF3)},
	{"f4", uint32(KeyCodeF4)},
	{"f5", uint32(KeyCodeF5)},
	{"f6", uint32(KeyCodeF6)},
	{"f7", uint32(KeyCodeF7)},
	{"f8", uint32(KeyCodeF8)},
	{"f9", uint32(KeyCodeF9)},
	{"f10", uint32(KeyCodeF10)},
	{"f11", uint32(KeyCodeF11)},
	{"f12", uint32(KeyCodeF12)},
	{"right_arrow", uint32(KeyCodeRightArrow)},
	{"left_arrow", uint32(KeyCodeLeftArrow)},
	{"down_arrow", uint32(KeyCodeDownArrow)},
	{"up_arrow", uint32(KeyCodeUpArrow)},
	{"left_control", uint32(KeyCodeLeftControl)},
	{"left_shift", uint32(KeyCodeLeftShift)},
	{"left_option", uint32(KeyCodeLeftOption)},
	{"left_command", uint32(KeyCodeLeftCommand)},
	{"right_control", uint32(KeyCodeRightControl)},
	{"right_shift", uint32(KeyCodeRightShift)},
	{"right_option", uint32(KeyCodeRightOption)},
	{"right_command", uint32(KeyCodeRightCommand)},
	{"fn", uint32(KeyCodeFn)},
}

// Aliases accepted on input but never emitted (the canonical name always
// wins on output, per §4.1).
var keyCodeAliases = []nameEntry{
	{"keyboard_left_alt", uint32(KeyCodeLeftOption)},
	{"keyboard_left_gui", uint32(KeyCodeLeftCommand)},
	{"keyboard_right_alt", uint32(KeyCodeRightOption)},
	{"keyboard_right_gui", uint32(KeyCodeRightCommand)},
	{"left_alt", uint32(KeyCodeLeftOption)},
	{"left_gui", uint32(KeyCodeLeftCommand)},
	{"right_alt", uint32(KeyCodeRightOption)},
	{"right_gui", uint32(KeyCodeRightCommand)},
	{"enter", uint32(KeyCodeReturnOrEnter)},
	{"backspace", uint32(KeyCodeDeleteOrBackspace)},
	{"space", uint32(KeyCodeSpacebar)},
}

var keyCodeTable = buildLookup(keyCodePrimary, keyCodeAliases)

// KeyCodeName returns the canonical name of a key code.
func KeyCodeName(k KeyCode) string { return keyCodeTable.NameOf(uint32(k)) }

// ParseKeyCode resolves a name (canonical or alias) to a KeyCode.
func ParseKeyCode(name string) (KeyCode, bool) {
	c, ok := keyCodeTable.CodeOf(name)
	return KeyCode(c), ok
}

// UsagePair projects a KeyCode to its canonical HID usage pair. The fn key
// has no real USB HID usage; Karabiner-Elements keeps it in the vendor-top-
// case usage page internally. We mirror that by mapping it into the apple
// vendor top-case page rather than the standard keyboard page.
func (k KeyCode) UsagePair() UsagePair {
	if k == KeyCodeFn {
		return UsagePair{Page: UsagePageAppleVendorTopCase, Usage: Usage(AppleVendorTopCaseKeyCodeFn)}
	}
	return UsagePair{Page: UsagePageKeyboardOrKeypad, Usage: Usage(k)}
}
