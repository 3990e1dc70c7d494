package hidtaxonomy

// PointingButton is a usage on UsagePageButton (mouse buttons).
type PointingButton uint32

const (
	PointingButtonButton1 PointingButton = 1 // left
	PointingButtonButton2 PointingButton = 2 // right
	PointingButtonButton3 PointingButton = 3 // middle
	PointingButtonButton4 PointingButton = 4
	PointingButtonButton5 PointingButton = 5
)

var pointingButtonPrimary = []nameEntry{
	{"button1", uint32(PointingButtonButton1)},
	{"button2", uint32(PointingButtonButton2)},
	{"button3", uint32(PointingButtonButton3)},
	{"button4", uint32(PointingButtonButton4)},
	{"button5", uint32(PointingButtonButton5)},
}

var pointingButtonAliases = []nameEntry{
	{"left", uint32(PointingButtonButton1)},
	{"right", uint32(PointingButtonButton2)},
	{"middle", uint32(PointingButtonButton3)},
}

var pointingButtonTable = buildLookup(pointingButtonPrimary, pointingButtonAliases)

func PointingButtonName(b PointingButton) string { return pointingButtonTable.NameOf(uint32(b)) }

func ParsePointingButton(name string) (PointingButton, bool) {
	c, ok := pointingButtonTable.CodeOf(name)
	return PointingButton(c), ok
}

func (b PointingButton) UsagePair() UsagePair {
	return UsagePair{Page: UsagePageButton, Usage: Usage(b)}
}

// PointingButtonBitmask is a 32-bit bitmap of currently-held pointing
// buttons, used by the pointing-button manager (§3, "Event queue").
type PointingButtonBitmask uint32

func (m PointingButtonBitmask) Pressed(b PointingButton) bool {
	return m&(1<<uint(b-1)) != 0
}

func (m PointingButtonBitmask) Set(b PointingButton, down bool) PointingButtonBitmask {
	bit := PointingButtonBitmask(1 << uint(b-1))
	if down {
		return m | bit
	}
	return m &^ bit
}
