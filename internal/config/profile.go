package config

import "github.com/pqrs-org/karabiner-go-core/internal/eventvalue"

// ModificationPair is a from/to event-definition pair, the shape shared by
// simple_modifications and fn_function_keys entries (§6).
type ModificationPair struct {
	From eventvalue.EventDefinition `json:"from"`
	To   eventvalue.EventDefinition `json:"to"`
}

// DeviceIdentifiers keys a per-device override (§3).
type DeviceIdentifiers struct {
	VendorID        int  `json:"vendor_id"`
	ProductID       int  `json:"product_id"`
	IsKeyboard      bool `json:"is_keyboard"`
	IsPointingDevice bool `json:"is_pointing_device"`
}

// DeviceOverride is a profile's per-device configuration block (§3).
type DeviceOverride struct {
	Identifiers                    DeviceIdentifiers  `json:"identifiers"`
	Ignore                         bool               `json:"ignore"`
	DisableBuiltInKeyboardIfExists bool               `json:"disable_built_in_keyboard_if_exists"`
	ManipulateCapsLockLed          bool               `json:"manipulate_caps_lock_led"`
	SimpleModifications            []ModificationPair `json:"simple_modifications"`
	FnFunctionKeys                 []ModificationPair `json:"fn_function_keys"`
}

// VirtualHIDKeyboardSettings is the profile's virtual-HID-keyboard block
// (§3): country code and mouse-key xy scale.
type VirtualHIDKeyboardSettings struct {
	CountryCode      int `json:"country_code"`
	MouseKeyXYScale  int `json:"mouse_key_xy_scale"`
}

// ProfileParameters is the profile-level "delay before open device" knob
// (§3), distinct from a complex-modification rule's Parameters.
type ProfileParameters struct {
	DelayMillisecondsBeforeOpenDevice int `json:"delay_milliseconds_before_open_device"`
}

// ComplexModificationsBlock holds a profile's complex-modification rules
// plus the block-level parameter overrides (§4.3).
type ComplexModificationsBlock struct {
	Rules      []ComplexModificationRule `json:"rules"`
	Parameters Parameters                `json:"parameters"`
}

// Profile is the snapshot described in §3. The mutators below modify the
// profile in place through a pointer receiver; the Set that owns a slice
// of Profiles is what gets written on save (see set.go).
type Profile struct {
	Name                string                    `json:"name"`
	Selected            bool                      `json:"selected"`
	SimpleModifications []ModificationPair        `json:"-"`
	FnFunctionKeys      []ModificationPair        `json:"-"`
	ComplexModifications ComplexModificationsBlock `json:"complex_modifications"`
	Devices             []DeviceOverride          `json:"devices"`
	VirtualHIDKeyboard  VirtualHIDKeyboardSettings `json:"virtual_hid_keyboard"`
	ProfileParameters   ProfileParameters          `json:"parameters"`
}

// DefaultFnFunctionKeys is the stock F1-F12 -> consumer/display mapping
// pre-populated on a new profile (§6: "pre-populated with the default
// mapping listed in the source's default_fn_function_keys").
func DefaultFnFunctionKeys() []ModificationPair {
	return []ModificationPair{
		fnPair(keyF1, consumerDisplayBrightnessDecrement()),
		fnPair(keyF2, consumerDisplayBrightnessIncrement()),
		fnPair(keyF3, none()),
		fnPair(keyF4, none()),
		fnPair(keyF5, none()),
		fnPair(keyF6, none()),
		fnPair(keyF7, consumerRewind()),
		fnPair(keyF8, consumerPlayOrPause()),
		fnPair(keyF9, consumerFastForward()),
		fnPair(keyF10, consumerMute()),
		fnPair(keyF11, consumerVolumeDecrement()),
		fnPair(keyF12, consumerVolumeIncrement()),
	}
}

// NewProfile returns a profile named name with the stock defaults: not
// selected, the default Fn mapping, no device overrides, country code 0
// and a 1x mouse-key scale (§6).
func NewProfile(name string) Profile {
	return Profile{
		Name:           name,
		FnFunctionKeys: DefaultFnFunctionKeys(),
		VirtualHIDKeyboard: VirtualHIDKeyboardSettings{
			CountryCode:     0,
			MouseKeyXYScale: 1,
		},
	}
}

// PushBackSimpleModification appends a pair (§4.3 "push_back").
func (p *Profile) PushBackSimpleModification(pair ModificationPair) {
	p.SimpleModifications = append(p.SimpleModifications, pair)
}

// EraseSimpleModification removes the entry at index i (§4.3 "erase").
func (p *Profile) EraseSimpleModification(i int) bool {
	if i < 0 || i >= len(p.SimpleModifications) {
		return false
	}
	p.SimpleModifications = append(p.SimpleModifications[:i], p.SimpleModifications[i+1:]...)
	return true
}

// SwapSimpleModifications exchanges the entries at i and j (§4.3 "swap").
func (p *Profile) SwapSimpleModifications(i, j int) bool {
	if i < 0 || j < 0 || i >= len(p.SimpleModifications) || j >= len(p.SimpleModifications) {
		return false
	}
	p.SimpleModifications[i], p.SimpleModifications[j] = p.SimpleModifications[j], p.SimpleModifications[i]
	return true
}

// ReplaceSimpleModificationPair replaces the entry at index i wholesale
// (§4.3 "replace pair").
func (p *Profile) ReplaceSimpleModificationPair(i int, pair ModificationPair) bool {
	if i < 0 || i >= len(p.SimpleModifications) {
		return false
	}
	p.SimpleModifications[i] = pair
	return true
}

// ReplaceSimpleModificationFrom replaces only the "from" half of the entry
// at index i, keeping "to" (§4.3 "replace-second-by-first" is the mirror
// operation exposed as ReplaceSimpleModificationTo below).
func (p *Profile) ReplaceSimpleModificationFrom(i int, from eventvalue.EventDefinition) bool {
	if i < 0 || i >= len(p.SimpleModifications) {
		return false
	}
	p.SimpleModifications[i].From = from
	return true
}

func (p *Profile) ReplaceSimpleModificationTo(i int, to eventvalue.EventDefinition) bool {
	if i < 0 || i >= len(p.SimpleModifications) {
		return false
	}
	p.SimpleModifications[i].To = to
	return true
}

// ReplaceFnFunctionKey replaces the first fn_function_keys entry whose
// "from" matches key, leaving the fixed-size, ordered list otherwise
// untouched (§4.3: "replacing by key replaces the matching first element").
func (p *Profile) ReplaceFnFunctionKey(key eventvalue.EventDefinition, to eventvalue.EventDefinition) bool {
	for i := range p.FnFunctionKeys {
		if p.FnFunctionKeys[i].From.KeyDownUpValuedEvent == key.KeyDownUpValuedEvent {
			p.FnFunctionKeys[i].To = to
			return true
		}
	}
	return false
}

// deviceIndex locates an override by identifiers, or -1.
func (p *Profile) deviceIndex(id DeviceIdentifiers) int {
	for i := range p.Devices {
		if p.Devices[i].Identifiers == id {
			return i
		}
	}
	return -1
}

// Device returns the override for id, or the zero value if none has been
// set yet (§4.3: "per-device get/set creates a new device entry only on
// first set for a previously unseen identifier" — Device itself does not
// create one; SetDevice does).
func (p *Profile) Device(id DeviceIdentifiers) (DeviceOverride, bool) {
	i := p.deviceIndex(id)
	if i < 0 {
		return DeviceOverride{}, false
	}
	return p.Devices[i], true
}

// SetDevice applies mutate to the override for id, creating a new entry
// first if id has never been seen.
func (p *Profile) SetDevice(id DeviceIdentifiers, mutate func(*DeviceOverride)) {
	i := p.deviceIndex(id)
	if i < 0 {
		p.Devices = append(p.Devices, DeviceOverride{Identifiers: id})
		i = len(p.Devices) - 1
	}
	mutate(&p.Devices[i])
}
