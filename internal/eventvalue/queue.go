package eventvalue

import (
	"github.com/pqrs-org/karabiner-go-core/internal/clock"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
)

// DeviceID identifies the physical (or virtual) device a queued event
// originated from.
type DeviceID uint64

// TimeStampType distinguishes an "actual" delivered event from an "anchor"
// event that exists only to carry a timestamp (§3 "Queued event").
type TimeStampType int

const (
	TimeStampActual TimeStampType = iota
	TimeStampAnchor
)

// QueuedEvent is the (device_id, timestamp, event_value, original_event_value,
// event_time_stamp_type, valid, lazy) tuple of §3.
type QueuedEvent struct {
	DeviceID       DeviceID
	TimeStamp      clock.AbsoluteTime
	Value          EventValue
	OriginalValue  EventValue
	TimeStampType  TimeStampType
	Valid          bool
	Lazy           bool
}

func NewQueuedEvent(deviceID DeviceID, ts clock.AbsoluteTime, v EventValue) QueuedEvent {
	return QueuedEvent{
		DeviceID:      deviceID,
		TimeStamp:     ts,
		Value:         v,
		OriginalValue: v,
		TimeStampType: TimeStampActual,
		Valid:         true,
	}
}

// NewAnchorEvent creates an anchor event: it carries a timestamp but is
// never delivered (Valid is false and TimeStampType is TimeStampAnchor).
func NewAnchorEvent(deviceID DeviceID, ts clock.AbsoluteTime) QueuedEvent {
	return QueuedEvent{
		DeviceID:      deviceID,
		TimeStamp:     ts,
		TimeStampType: TimeStampAnchor,
		Valid:         false,
	}
}

// Equal is structural equality of device_id, timestamp, and the event_value
// payload (§4.2).
func (q QueuedEvent) Equal(o QueuedEvent) bool {
	return q.DeviceID == o.DeviceID && q.TimeStamp == o.TimeStamp && q.Value.Equal(o.Value)
}

// KeyOrButton extracts the momentary-switch event and its direction from a
// queued event, if it carries one.
func (q QueuedEvent) KeyOrButton() (KeyDownUpValuedEvent, SwitchEventType, bool) {
	return q.Value.MomentarySwitch()
}

// Queue is the input/output event queue of §3: an ordered sequence of
// queued events plus the mutable state the manipulator engine and
// post-event queue thread through it (pointing-button manager, variable
// set, time-stamp delay).
type Queue struct {
	events []QueuedEvent

	Buttons       PointingButtonManager
	Variables     VariableSet
	timeStampDelay clock.Duration
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) EmplaceBack(e QueuedEvent) {
	q.events = append(q.events, e)
}

func (q *Queue) EraseFront() {
	if len(q.events) == 0 {
		return
	}
	q.events = q.events[1:]
}

func (q *Queue) Front() (QueuedEvent, bool) {
	if len(q.events) == 0 {
		return QueuedEvent{}, false
	}
	return q.events[0], true
}

func (q *Queue) Size() int { return len(q.events) }

func (q *Queue) Empty() bool { return len(q.events) == 0 }

// At returns the i'th queued event (0 == front) without consuming it.
func (q *Queue) At(i int) (QueuedEvent, bool) {
	if i < 0 || i >= len(q.events) {
		return QueuedEvent{}, false
	}
	return q.events[i], true
}

// TimeStampDelay is the accumulating offset applied to future timestamps
// when a manipulator inserts synthetic events (§3).
func (q *Queue) TimeStampDelay() clock.Duration { return q.timeStampDelay }

func (q *Queue) IncreaseTimeStampDelay(d clock.Duration) {
	q.timeStampDelay += d
}

// PointingButtonManager is the per-device bitmap of currently-held pointing
// buttons described in §3 ("Event queue").
type PointingButtonManager struct {
	byDevice map[DeviceID]hidtaxonomy.PointingButtonBitmask
}

func (m *PointingButtonManager) ensure() {
	if m.byDevice == nil {
		m.byDevice = make(map[DeviceID]hidtaxonomy.PointingButtonBitmask)
	}
}

func (m *PointingButtonManager) Update(d DeviceID, b hidtaxonomy.PointingButton, down bool) {
	m.ensure()
	m.byDevice[d] = m.byDevice[d].Set(b, down)
}

func (m *PointingButtonManager) Bitmask(d DeviceID) hidtaxonomy.PointingButtonBitmask {
	m.ensure()
	return m.byDevice[d]
}

// ReleaseAll clears all pressed buttons for a device (used when the device
// is ungrabbed or its keys-and-pointing-buttons-are-released event fires).
func (m *PointingButtonManager) ReleaseAll(d DeviceID) {
	m.ensure()
	m.byDevice[d] = 0
}

// VariableSet is the process-scoped name->integer mapping of §3, mutated
// only by set_variable to-events and read by variable conditions.
type VariableSet struct {
	values map[string]int
}

func (v *VariableSet) ensure() {
	if v.values == nil {
		v.values = make(map[string]int)
	}
}

func (v *VariableSet) Set(name string, value int) {
	v.ensure()
	v.values[name] = value
}

func (v *VariableSet) Get(name string) int {
	v.ensure()
	return v.values[name]
}

// Snapshot returns an immutable copy for handing to a manipulator's
// condition-evaluation environment.
func (v *VariableSet) Snapshot() map[string]int {
	v.ensure()
	out := make(map[string]int, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}
