package hidtaxonomy

// ConsumerKeyCode is a usage on UsagePageConsumer (media keys, brightness,
// etc).
type ConsumerKeyCode uint32

const (
	ConsumerKeyCodeVolumeIncrement         ConsumerKeyCode = 0xe9
	ConsumerKeyCodeVolumeDecrement         ConsumerKeyCode = 0xea
	ConsumerKeyCodeMute                    ConsumerKeyCode = 0xe2
	ConsumerKeyCodePlayOrPause             ConsumerKeyCode = 0xcd
	ConsumerKeyCodeFastForward              ConsumerKeyCode = 0xb3
	ConsumerKeyCodeRewind                   ConsumerKeyCode = 0xb4
	ConsumerKeyCodeScanNextTrack            ConsumerKeyCode = 0xb5
	ConsumerKeyCodeScanPreviousTrack        ConsumerKeyCode = 0xb6
	ConsumerKeyCodeDisplayBrightnessIncrement ConsumerKeyCode = 0x6f
	ConsumerKeyCodeDisplayBrightnessDecrement ConsumerKeyCode = 0x70
)

var consumerPrimary = []nameEntry{
	{"volume_increment", uint32(ConsumerKeyCodeVolumeIncrement)},
	{"volume_decrement", uint32(ConsumerKeyCodeVolumeDecrement)},
	{"mute", uint32(ConsumerKeyCodeMute)},
	{"play_or_pause", uint32(ConsumerKeyCodePlayOrPause)},
	{"fastforward", uint32(ConsumerKeyCodeFastForward)},
	{"rewind", uint32(ConsumerKeyCodeRewind)},
	{"scan_next_track", uint32(ConsumerKeyCodeScanNextTrack)},
	{"scan_previous_track", uint32(ConsumerKeyCodeScanPreviousTrack)},
	{"display_brightness_increment", uint32(ConsumerKeyCodeDisplayBrightnessIncrement)},
	{"display_brightness_decrement", uint32(ConsumerKeyCodeDisplayBrightnessDecrement)},
}

var consumerAliases = []nameEntry{
	{"volume_up", uint32(ConsumerKeyCodeVolumeIncrement)},
	{"volume_down", uint32(ConsumerKeyCodeVolumeDecrement)},
	{"brightness_up", uint32(ConsumerKeyCodeDisplayBrightnessIncrement)},
	{"brightness_down", uint32(ConsumerKeyCodeDisplayBrightnessDecrement)},
}

var consumerTable = buildLookup(consumerPrimary, consumerAliases)

func ConsumerKeyCodeName(c ConsumerKeyCode) string { return consumerTable.NameOf(uint32(c)) }

func ParseConsumerKeyCode(name string) (ConsumerKeyCode, bool) {
	c, ok := consumerTable.CodeOf(name)
	return ConsumerKeyCode(c), ok
}

func (c ConsumerKeyCode) UsagePair() UsagePair {
	return UsagePair{Page: UsagePageConsumer, Usage: Usage(c)}
}
