package manipulator

import (
	"github.com/pqrs-org/karabiner-go-core/internal/clock"
	"github.com/pqrs-org/karabiner-go-core/internal/config"
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/timer"
)

// simultaneousKey identifies one manipulator's pending-match bookkeeping on
// one device; a manipulator can have at most one pending group in flight per
// device at a time (§4.4's "simultaneous bookkeeping").
type simultaneousKey struct {
	manipulatorIndex int
	device           eventvalue.DeviceID
}

// simultaneousPending tracks a simultaneous from clause's constituents seen
// so far, in arrival order, while the match is still incomplete.
type simultaneousPending struct {
	indices     []int
	timerClient timer.ClientID
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// simultaneousOrderSatisfied checks a completed group's arrival-index order
// against the from clause's key_down_order (§3).
func simultaneousOrderSatisfied(order config.KeyOrder, indices []int) bool {
	switch order {
	case config.KeyOrderStrict:
		for i := 1; i < len(indices); i++ {
			if indices[i] <= indices[i-1] {
				return false
			}
		}
		return true
	case config.KeyOrderStrictInverse:
		for i := 1; i < len(indices); i++ {
			if indices[i] >= indices[i-1] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// handleSimultaneousKeyDown advances (or starts) the pending-match
// bookkeeping for one simultaneous-from manipulator given a key_down event.
// It returns false when the event doesn't match any unseen constituent of
// this manipulator, so the caller can try the next one.
func (e *Engine) handleSimultaneousKeyDown(i int, man *config.Manipulator, qe eventvalue.QueuedEvent, key eventvalue.KeyDownUpValuedEvent, now clock.AbsoluteTime) bool {
	k := simultaneousKey{manipulatorIndex: i, device: qe.DeviceID}
	p := e.pending[k]

	idx := -1
	for j, ev := range man.From.Events {
		if ev.KeyDownUpValuedEvent != key {
			continue
		}
		if p != nil && containsInt(p.indices, j) {
			continue
		}
		idx = j
		break
	}
	if idx == -1 {
		return false
	}

	if p == nil {
		p = &simultaneousPending{}
		e.pending[k] = p
		threshold := man.Parameters.Value(config.ParamSimultaneousThresholdMilliseconds, e.rules.blockParams[i])
		client := e.Timer.MakeClientID()
		p.timerClient = client
		manIndex, device := i, qe.DeviceID
		e.Timer.Enqueue(client, now.Add(clock.FromMilliseconds(threshold)), func(fireAt clock.AbsoluteTime) {
			e.releaseSimultaneousPending(manIndex, device, fireAt)
		})
	}
	p.indices = append(p.indices, idx)

	if len(p.indices) < len(man.From.Events) {
		return true
	}

	if !simultaneousOrderSatisfied(man.From.Options.KeyDownOrder, p.indices) || !e.modifiersSatisfied(man.From.Modifiers, key, qe.DeviceID) {
		e.releaseSimultaneousPending(i, qe.DeviceID, now)
		return true
	}

	e.Timer.AsyncErase(p.timerClient, nil)
	delete(e.pending, k)
	e.startSimultaneousManipulation(i, man, qe.DeviceID, now)
	return true
}

// releaseSimultaneousPending drops an incomplete group and re-emits its
// constituents as unmanipulated passthrough key_downs at emitAt (§4.4: "if
// not satisfied by then, release the pending events back to the output
// queue as unmanipulated"; §8: emitted at the threshold deadline, not each
// constituent's original arrival time).
func (e *Engine) releaseSimultaneousPending(manipulatorIndex int, device eventvalue.DeviceID, emitAt clock.AbsoluteTime) {
	k := simultaneousKey{manipulatorIndex: manipulatorIndex, device: device}
	p, ok := e.pending[k]
	if !ok {
		return
	}
	delete(e.pending, k)
	e.Timer.AsyncErase(p.timerClient, nil)

	man := &e.rules.manipulators[manipulatorIndex]
	for _, idx := range p.indices {
		u, ok := man.From.Events[idx].UsagePair()
		if !ok {
			continue
		}
		e.Output.EmplaceBackKeyEvent(u, eventvalue.SwitchEventTypeKeyDown, emitAt)
	}
}

// startSimultaneousManipulation begins a matched simultaneous-from
// manipulation, mirroring startManipulation's single-event counterpart.
func (e *Engine) startSimultaneousManipulation(index int, man *config.Manipulator, device eventvalue.DeviceID, now clock.AbsoluteTime) {
	m := &manipulation{manipulatorIndex: index, device: device}
	m.simultaneousEvents = make([]eventvalue.KeyDownUpValuedEvent, len(man.From.Events))
	m.simultaneousRemaining = make(map[int]bool, len(man.From.Events))
	for idx, ev := range man.From.Events {
		m.simultaneousEvents[idx] = ev.KeyDownUpValuedEvent
		m.simultaneousRemaining[idx] = true
	}
	m.simultaneousKeyUpWhen = man.From.Options.KeyUpWhen

	e.releaseMandatoryModifiers(man.From.Modifiers, device, m, now)
	e.armManipulation(m, index, man, device, now)
}

// simultaneousRelease marks one constituent of a matched simultaneous
// manipulation as released and reports whether the whole match should now
// terminate, per key_up_when (§3): "any" terminates on the first release,
// "all" (also the default) waits for every constituent to be released.
func (e *Engine) simultaneousRelease(m *manipulation, key eventvalue.KeyDownUpValuedEvent) bool {
	for idx, ev := range m.simultaneousEvents {
		if ev == key {
			delete(m.simultaneousRemaining, idx)
			break
		}
	}
	if m.simultaneousKeyUpWhen == config.KeyUpWhenAny {
		return true
	}
	return len(m.simultaneousRemaining) == 0
}
