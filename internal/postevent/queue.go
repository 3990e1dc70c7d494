package postevent

import (
	"fmt"

	"github.com/pqrs-org/karabiner-go-core/internal/clock"
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
	"github.com/pqrs-org/karabiner-go-core/internal/virtualhid"
)

// Wait is the 5ms inter-event spacing floor of §4.5.
const Wait = 5 * clock.Duration(1_000_000) // 5ms in nanosecond ticks

// Sender is the set of collaborators the drain loop dispatches to: HID
// reports go to the virtual HID client (C9); shell commands and
// input-source selects go to the per-user helper over IPC (C8). Errors
// from either are logged and discarded (§4.5).
type Sender interface {
	PostKeyboardReport(virtualhid.KeyboardInputReport) error
	PostPointingReport(virtualhid.PointingInputReport) error
	SendShellCommand(string) error
	SendSelectInputSource([]eventvalue.InputSourceSpecifier) error
}

// Queue is the post-event dispatch queue of §4.5.
type Queue struct {
	entries []Entry

	lastEventTimeStamp clock.AbsoluteTime
	haveLast           bool
	lastWasNonModKeyUp bool

	Assembler *Assembler
	Repeats   *RepeatDetector
}

func NewQueue() *Queue {
	return &Queue{
		Assembler: NewAssembler(),
		Repeats:   NewRepeatDetector(),
	}
}

// adjustTimeStamp applies §4.5's floor/skip rules and returns the
// timestamp actually used, updating the queue's last-event bookkeeping.
//
// The only exemption from the 5ms floor is a non-modifier key_up that
// immediately follows another non-modifier key_up (§4.5, rule 2); a
// non-modifier key_up that follows anything else — in particular, the
// key_down of the very same key — still floors (§8's "key_down followed
// immediately by a key_up of the same key_code" property).
func (q *Queue) adjustTimeStamp(ts clock.AbsoluteTime, class AdjustmentClass) clock.AbsoluteTime {
	if class == ClassUnadjusted {
		return ts
	}

	adjusted := ts
	if q.haveLast && adjusted.Before(q.lastEventTimeStamp) {
		adjusted = q.lastEventTimeStamp
	}

	skip := class == ClassSingle || (class == ClassKeyUpNonModifier && q.haveLast && q.lastWasNonModKeyUp)
	if !skip && q.haveLast {
		floor := q.lastEventTimeStamp.Add(Wait)
		if adjusted.Before(floor) {
			adjusted = floor
		}
	}

	q.lastEventTimeStamp = adjusted
	q.haveLast = true
	q.lastWasNonModKeyUp = class == ClassKeyUpNonModifier
	return adjusted
}

func (q *Queue) push(e Entry, class AdjustmentClass) {
	e.Timestamp = q.adjustTimeStamp(e.Timestamp, class)
	q.entries = append(q.entries, e)
}

// EmplaceBackKeyEvent is §4.5's emplace_back_key_event: it mutates the
// relevant report accumulator and enqueues a snapshot at the (adjusted)
// timestamp.
func (q *Queue) EmplaceBackKeyEvent(u hidtaxonomy.UsagePair, eventType eventvalue.SwitchEventType, ts clock.AbsoluteTime) {
	q.Repeats.Observe(u, eventType)

	report, kind, ok := q.Assembler.EmplaceKeyEvent(u, eventType)
	if !ok {
		return
	}
	class := AdjustmentClassFor(u, eventType)
	q.push(Entry{Kind: kind, Keyboard: report, Timestamp: ts}, class)
}

// EmplaceBackPointingInput enqueues a pointing_input event. Pointing events
// follow the same key_down-class flooring as other non-single events would
// if they carried a press/release direction; in practice the mouse-key
// handler (C6) emits one per active tick, so ClassSingle (no inflation) is
// correct here — ticks are already spaced by their own 20ms cadence.
func (q *Queue) EmplaceBackPointingInput(report virtualhid.PointingInputReport, ts clock.AbsoluteTime) {
	q.push(Entry{Kind: KindPointingInput, Pointing: report, Timestamp: ts}, ClassSingle)
}

// EmplaceBackShellCommand and EmplaceBackSelectInputSource insert without
// any timestamp adjustment (§4.5).
func (q *Queue) EmplaceBackShellCommand(cmd string, ts clock.AbsoluteTime) {
	q.push(Entry{Kind: KindShellCommand, ShellCommand: cmd, Timestamp: ts}, ClassUnadjusted)
}

func (q *Queue) EmplaceBackSelectInputSource(specs []eventvalue.InputSourceSpecifier, ts clock.AbsoluteTime) {
	q.push(Entry{Kind: KindSelectInputSource, SelectInputSource: specs, Timestamp: ts}, ClassUnadjusted)
}

func (q *Queue) Front() (Entry, bool) {
	if len(q.entries) == 0 {
		return Entry{}, false
	}
	return q.entries[0], true
}

func (q *Queue) PopFront() {
	if len(q.entries) == 0 {
		return
	}
	q.entries = q.entries[1:]
}

func (q *Queue) Empty() bool { return len(q.entries) == 0 }
func (q *Queue) Size() int   { return len(q.entries) }

// DrainCap is the 3s cap of §4.5's async_post_events, limiting damage from
// timestamps inadvertently far in the future.
const DrainCap = clock.Duration(3_000_000_000)

// Dispatch sends e to the appropriate collaborator via sender, logging and
// discarding errors (§4.5: "Log and discard IPC errors").
func Dispatch(e Entry, sender Sender, onError func(error)) {
	var err error
	switch e.Kind {
	case KindKeyboardInput, KindConsumerInput, KindAppleVendorTopCaseInput, KindAppleVendorKeyboardInput:
		err = sender.PostKeyboardReport(e.Keyboard)
	case KindPointingInput:
		err = sender.PostPointingReport(e.Pointing)
	case KindShellCommand:
		err = sender.SendShellCommand(e.ShellCommand)
	case KindSelectInputSource:
		err = sender.SendSelectInputSource(e.SelectInputSource)
	default:
		err = fmt.Errorf("postevent: unknown entry kind %d", e.Kind)
	}
	if err != nil && onError != nil {
		onError(err)
	}
}

// AsyncPostEvents is §4.5's drain loop. It dispatches every entry whose
// timestamp has arrived; when the queue head is still in the future it
// returns the duration the caller should wait (capped at DrainCap) before
// calling AsyncPostEvents again — callers typically schedule this via the
// manipulator timer (C7).
func (q *Queue) AsyncPostEvents(now clock.AbsoluteTime, sender Sender, onError func(error)) (wait clock.Duration, done bool) {
	for {
		front, ok := q.Front()
		if !ok {
			return 0, true
		}
		if front.Timestamp.After(now) {
			d := front.Timestamp.Sub(now)
			if d > DrainCap {
				d = DrainCap
			}
			return d, false
		}
		Dispatch(front, sender, onError)
		q.PopFront()
	}
}
