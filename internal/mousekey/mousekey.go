// Package mousekey implements the periodic mouse-key accumulation of §4.6:
// active (device_id, mouse_key) entries are summed every tick and fed
// through sub-unit count converters so continuous desired velocities
// become integer HID pointing deltas without rounding bias.
package mousekey

import "github.com/pqrs-org/karabiner-go-core/internal/eventvalue"

// TickInterval is the fixed per-tick period of §4.6.
const TickInterval = 20 // milliseconds

// CountConverterThreshold is the sub-unit accumulation threshold of §4.6.
const CountConverterThreshold = 128

// MouseKey is one rule's momentary contribution: x/y/wheel deltas plus a
// speed multiplier (§3's mouse_key to-event).
type MouseKey struct {
	X               int
	Y               int
	VerticalWheel   int
	HorizontalWheel int
	SpeedMultiplier int
}

func (m MouseKey) IsZero() bool {
	return m.X == 0 && m.Y == 0 && m.VerticalWheel == 0 && m.HorizontalWheel == 0
}

func (m MouseKey) add(o MouseKey) MouseKey {
	speed := m.SpeedMultiplier
	if speed == 0 {
		speed = 1
	}
	if o.SpeedMultiplier != 0 {
		speed *= o.SpeedMultiplier
	}
	return MouseKey{
		X:               m.X + o.X,
		Y:               m.Y + o.Y,
		VerticalWheel:   m.VerticalWheel + o.VerticalWheel,
		HorizontalWheel: m.HorizontalWheel + o.HorizontalWheel,
		SpeedMultiplier: speed,
	}
}

// entry is one active (device_id, mouse_key) pair.
type entry struct {
	deviceID eventvalue.DeviceID
	key      MouseKey
}

// countConverter accumulates a continuous signed value and emits integer
// steps once the accumulator crosses CountConverterThreshold, keeping the
// remainder (§4.6).
type countConverter struct {
	threshold int
	counter   int
}

func newCountConverter() *countConverter {
	return &countConverter{threshold: CountConverterThreshold}
}

// Update adds value to the internal counter and returns the floor-divided
// integer step, keeping the remainder for the next call.
func (c *countConverter) Update(value int) int {
	c.counter += value
	step := c.counter / c.threshold
	if c.counter%c.threshold < 0 {
		step--
	}
	c.counter -= step * c.threshold
	return step
}

func (c *countConverter) Reset() {
	c.counter = 0
}

// SwipeScrollDirection selects whether wheel components are inverted
// (§4.6's swipe_scroll_direction preference).
type SwipeScrollDirection int

const (
	SwipeScrollDirectionNormal SwipeScrollDirection = iota
	SwipeScrollDirectionInverted
)

// PointingOutput is the deltas handed to C5 for one tick, prior to the
// current pointing-button bitmap being attached.
type PointingOutput struct {
	X               int
	Y               int
	VerticalWheel   int
	HorizontalWheel int
}

// Handler holds the active mouse-key entries and their converters (§4.6).
type Handler struct {
	entries   []entry
	x, y      *countConverter
	vwheel    *countConverter
	hwheel    *countConverter
	lastTotal MouseKey
	hasLast   bool
	Direction SwipeScrollDirection
}

func New() *Handler {
	return &Handler{
		x:      newCountConverter(),
		y:      newCountConverter(),
		vwheel: newCountConverter(),
		hwheel: newCountConverter(),
	}
}

// PushBack adds (deviceID, key), deduplicating on equality then appending
// (§4.6).
func (h *Handler) PushBack(deviceID eventvalue.DeviceID, key MouseKey) {
	for _, e := range h.entries {
		if e.deviceID == deviceID && e.key == key {
			return
		}
	}
	h.entries = append(h.entries, entry{deviceID: deviceID, key: key})
}

// Erase removes the first entry equal to (deviceID, key).
func (h *Handler) Erase(deviceID eventvalue.DeviceID, key MouseKey) {
	for i, e := range h.entries {
		if e.deviceID == deviceID && e.key == key {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return
		}
	}
}

// EraseAllFor removes every entry for deviceID (used on device_ungrabbed /
// device_keys_and_pointing_buttons_are_released).
func (h *Handler) EraseAllFor(deviceID eventvalue.DeviceID) {
	kept := h.entries[:0]
	for _, e := range h.entries {
		if e.deviceID != deviceID {
			kept = append(kept, e)
		}
	}
	h.entries = kept
}

// Active reports whether any entry is present (§4.6).
func (h *Handler) Active() bool { return len(h.entries) > 0 }

func (h *Handler) total() MouseKey {
	var total MouseKey
	for _, e := range h.entries {
		total = total.add(e.key)
	}
	if h.Direction == SwipeScrollDirectionInverted {
		total.VerticalWheel = -total.VerticalWheel
		total.HorizontalWheel = -total.HorizontalWheel
	}
	return total
}

// Tick computes one 20ms tick's output per §4.6's per-tick computation. ok
// is false when the handler became/was inactive (total is zero), in which
// case no pointing_input event should be posted and accumulators are
// cleared.
func (h *Handler) Tick() (PointingOutput, bool) {
	total := h.total()
	if total.IsZero() {
		h.x.Reset()
		h.y.Reset()
		h.vwheel.Reset()
		h.hwheel.Reset()
		h.hasLast = false
		return PointingOutput{}, false
	}

	if h.hasLast && total != h.lastTotal {
		h.x.Reset()
		h.y.Reset()
		h.vwheel.Reset()
		h.hwheel.Reset()
	}
	h.lastTotal = total
	h.hasLast = true

	speed := total.SpeedMultiplier
	if speed == 0 {
		speed = 1
	}

	out := PointingOutput{
		X:               h.x.Update(total.X * speed),
		Y:               h.y.Update(total.Y * speed),
		VerticalWheel:   h.vwheel.Update(total.VerticalWheel * speed),
		HorizontalWheel: h.hwheel.Update(total.HorizontalWheel * speed),
	}
	return out, true
}
