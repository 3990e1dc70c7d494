package hidtaxonomy

// ModifierFlag is the closed enumeration of §3 "Modifier flag".
type ModifierFlag int

const (
	ModifierFlagNone ModifierFlag = iota
	ModifierFlagCapsLock
	ModifierFlagLeftControl
	ModifierFlagLeftShift
	ModifierFlagLeftOption
	ModifierFlagLeftCommand
	ModifierFlagRightControl
	ModifierFlagRightShift
	ModifierFlagRightOption
	ModifierFlagRightCommand
	ModifierFlagFn
)

func (f ModifierFlag) String() string {
	switch f {
	case ModifierFlagCapsLock:
		return "caps_lock"
	case ModifierFlagLeftControl:
		return "left_control"
	case ModifierFlagLeftShift:
		return "left_shift"
	case ModifierFlagLeftOption:
		return "left_option"
	case ModifierFlagLeftCommand:
		return "left_command"
	case ModifierFlagRightControl:
		return "right_control"
	case ModifierFlagRightShift:
		return "right_shift"
	case ModifierFlagRightOption:
		return "right_option"
	case ModifierFlagRightCommand:
		return "right_command"
	case ModifierFlagFn:
		return "fn"
	default:
		return "none"
	}
}

// keyCodeToModifier maps the eight modifier key codes plus caps_lock/fn to
// their ModifierFlag. Every other key code is ModifierFlagNone.
var keyCodeToModifier = map[KeyCode]ModifierFlag{
	KeyCodeCapsLock:     ModifierFlagCapsLock,
	KeyCodeLeftControl:  ModifierFlagLeftControl,
	KeyCodeLeftShift:    ModifierFlagLeftShift,
	KeyCodeLeftOption:   ModifierFlagLeftOption,
	KeyCodeLeftCommand:  ModifierFlagLeftCommand,
	KeyCodeRightControl: ModifierFlagRightControl,
	KeyCodeRightShift:   ModifierFlagRightShift,
	KeyCodeRightOption:  ModifierFlagRightOption,
	KeyCodeRightCommand: ModifierFlagRightCommand,
	KeyCodeFn:           ModifierFlagFn,
}

// MakeModifierFlag returns the modifier flag for a (usage_page, usage) pair,
// or ModifierFlagNone if it isn't a modifier.
func MakeModifierFlag(u UsagePair) ModifierFlag {
	if u.Page == UsagePageKeyboardOrKeypad {
		if f, ok := keyCodeToModifier[KeyCode(u.Usage)]; ok {
			return f
		}
	}
	if u.Page == UsagePageAppleVendorTopCase && u.Usage == Usage(AppleVendorTopCaseKeyCodeFn) {
		return ModifierFlagFn
	}
	return ModifierFlagNone
}

// reportModifierBit maps the eight non-caps, non-fn modifiers to their bit
// position in a standard 8-bit keyboard HID report modifier byte.
var reportModifierBit = map[ModifierFlag]uint8{
	ModifierFlagLeftControl:  0,
	ModifierFlagLeftShift:    1,
	ModifierFlagLeftOption:   2,
	ModifierFlagLeftCommand:  3,
	ModifierFlagRightControl: 4,
	ModifierFlagRightShift:   5,
	ModifierFlagRightOption:  6,
	ModifierFlagRightCommand: 7,
}

// MakeHIDReportModifier projects a modifier flag to its report-modifier bit
// (1<<bit), or 0 if the flag has no report bit (caps_lock, fn, none).
func MakeHIDReportModifier(f ModifierFlag) uint8 {
	if bit, ok := reportModifierBit[f]; ok {
		return 1 << bit
	}
	return 0
}

// IsModifier reports whether a usage pair corresponds to a modifier key.
func IsModifier(u UsagePair) bool {
	return MakeModifierFlag(u) != ModifierFlagNone
}
