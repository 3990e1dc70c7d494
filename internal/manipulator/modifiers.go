package manipulator

import (
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
)

var modifierNames = map[string]hidtaxonomy.ModifierFlag{
	"caps_lock":     hidtaxonomy.ModifierFlagCapsLock,
	"left_control":  hidtaxonomy.ModifierFlagLeftControl,
	"left_shift":    hidtaxonomy.ModifierFlagLeftShift,
	"left_option":   hidtaxonomy.ModifierFlagLeftOption,
	"left_command":  hidtaxonomy.ModifierFlagLeftCommand,
	"right_control": hidtaxonomy.ModifierFlagRightControl,
	"right_shift":   hidtaxonomy.ModifierFlagRightShift,
	"right_option":  hidtaxonomy.ModifierFlagRightOption,
	"right_command": hidtaxonomy.ModifierFlagRightCommand,
	"fn":            hidtaxonomy.ModifierFlagFn,
}

func parseModifierName(name string) (hidtaxonomy.ModifierFlag, bool) {
	f, ok := modifierNames[name]
	return f, ok
}

// heldModifiers is the per-device physical modifier state tracked on the
// input side of the engine: the set of modifier flags currently pressed on
// the incoming event stream, independent of what C5 has assembled for
// output (§3's "currently-held state").
type heldModifiers struct {
	byDevice map[eventvalue.DeviceID]map[hidtaxonomy.ModifierFlag]bool
}

func newHeldModifiers() *heldModifiers {
	return &heldModifiers{byDevice: make(map[eventvalue.DeviceID]map[hidtaxonomy.ModifierFlag]bool)}
}

func (h *heldModifiers) set(d eventvalue.DeviceID, f hidtaxonomy.ModifierFlag, down bool) {
	m, ok := h.byDevice[d]
	if !ok {
		m = make(map[hidtaxonomy.ModifierFlag]bool)
		h.byDevice[d] = m
	}
	if down {
		m[f] = true
	} else {
		delete(m, f)
	}
}

func (h *heldModifiers) isHeld(d eventvalue.DeviceID, f hidtaxonomy.ModifierFlag) bool {
	return h.byDevice[d][f]
}

// held returns the set of currently-pressed modifier flags for a device.
func (h *heldModifiers) held(d eventvalue.DeviceID) map[hidtaxonomy.ModifierFlag]bool {
	return h.byDevice[d]
}

func (h *heldModifiers) releaseAll(d eventvalue.DeviceID) {
	delete(h.byDevice, d)
}
