package hidtaxonomy

// AppleVendorKeyboardKeyCode is a usage on the Apple-vendor keyboard usage
// page (spotlight, dashboard, function and launchpad keys found only on
// Apple keyboards).
type AppleVendorKeyboardKeyCode uint32

const (
	AppleVendorKeyboardKeyCodeSpotlight   AppleVendorKeyboardKeyCode = 0x01
	AppleVendorKeyboardKeyCodeDashboard   AppleVendorKeyboardKeyCode = 0x02
	AppleVendorKeyboardKeyCodeFunction    AppleVendorKeyboardKeyCode = 0x03
	AppleVendorKeyboardKeyCodeLaunchpad   AppleVendorKeyboardKeyCode = 0x04
)

var appleVendorKeyboardPrimary = []nameEntry{
	{"spotlight", uint32(AppleVendorKeyboardKeyCodeSpotlight)},
	{"dashboard", uint32(AppleVendorKeyboardKeyCodeDashboard)},
	{"function", uint32(AppleVendorKeyboardKeyCodeFunction)},
	{"launchpad", uint32(AppleVendorKeyboardKeyCodeLaunchpad)},
}

var appleVendorKeyboardTable = buildLookup(appleVendorKeyboardPrimary, nil)

func AppleVendorKeyboardKeyCodeName(c AppleVendorKeyboardKeyCode) string {
	return appleVendorKeyboardTable.NameOf(uint32(c))
}

func ParseAppleVendorKeyboardKeyCode(name string) (AppleVendorKeyboardKeyCode, bool) {
	c, ok := appleVendorKeyboardTable.CodeOf(name)
	return AppleVendorKeyboardKeyCode(c), ok
}

func (c AppleVendorKeyboardKeyCode) UsagePair() UsagePair {
	return UsagePair{Page: UsagePageAppleVendorKeyboard, Usage: Usage(c)}
}

// AppleVendorTopCaseKeyCode is a usage on the Apple-vendor top-case usage
// page (the fn key and the brightness keys on the keyboard's top case).
type AppleVendorTopCaseKeyCode uint32

const (
	AppleVendorTopCaseKeyCodeKeyboardFn          AppleVendorTopCaseKeyCode = 0x03
	AppleVendorTopCaseKeyCodeBrightnessUp        AppleVendorTopCaseKeyCode = 0x04
	AppleVendorTopCaseKeyCodeBrightnessDown       AppleVendorTopCaseKeyCode = 0x05
	AppleVendorTopCaseKeyCodeIlluminationUp       AppleVendorTopCaseKeyCode = 0x07
	AppleVendorTopCaseKeyCodeIlluminationDown     AppleVendorTopCaseKeyCode = 0x08
	AppleVendorTopCaseKeyCodeFn                   AppleVendorTopCaseKeyCode = 0x03
)

var appleVendorTopCasePrimary = []nameEntry{
	{"keyboard_fn", uint32(AppleVendorTopCaseKeyCodeKeyboardFn)},
	{"brightness_up", uint32(AppleVendorTopCaseKeyCodeBrightnessUp)},
	{"brightness_down", uint32(AppleVendorTopCaseKeyCodeBrightnessDown)},
	{"illumination_up", uint32(AppleVendorTopCaseKeyCodeIlluminationUp)},
	{"illumination_down", uint32(AppleVendorTopCaseKeyCodeIlluminationDown)},
}

var appleVendorTopCaseTable = buildLookup(appleVendorTopCasePrimary, nil)

func AppleVendorTopCaseKeyCodeName(c AppleVendorTopCaseKeyCode) string {
	return appleVendorTopCaseTable.NameOf(uint32(c))
}

func ParseAppleVendorTopCaseKeyCode(name string) (AppleVendorTopCaseKeyCode, bool) {
	c, ok := appleVendorTopCaseTable.CodeOf(name)
	return AppleVendorTopCaseKeyCode(c), ok
}

func (c AppleVendorTopCaseKeyCode) UsagePair() UsagePair {
	return UsagePair{Page: UsagePageAppleVendorTopCase, Usage: Usage(c)}
}
