package manipulator

import (
	"github.com/rs/zerolog"

	"github.com/pqrs-org/karabiner-go-core/internal/clock"
	"github.com/pqrs-org/karabiner-go-core/internal/config"
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
	"github.com/pqrs-org/karabiner-go-core/internal/klog"
	"github.com/pqrs-org/karabiner-go-core/internal/mousekey"
	"github.com/pqrs-org/karabiner-go-core/internal/postevent"
	"github.com/pqrs-org/karabiner-go-core/internal/timer"
)

// Evaluator runs a named software_function to-event (§3). The embedded
// ECMAScript engine the original implementation used to run these is a
// non-goal; callers supply whatever host-level action the name identifies.
type Evaluator interface {
	Call(name string) error
}

// toEventState is one momentary-switch to-event the engine is currently
// holding down on behalf of an in-flight manipulation: its usage and the
// temporary modifiers pressed to bracket it (§4.4: "wrap each with
// temporary modifier presses/releases ... bracketing the key_down and
// key_up of the to event").
type toEventState struct {
	usage         hidtaxonomy.UsagePair
	tempModifiers []hidtaxonomy.ModifierFlag
}

// manipulation is one in-flight key-down match (§4.4's
// "manipulated_original_events" entry).
type manipulation struct {
	manipulatorIndex int
	device           eventvalue.DeviceID
	fromEvent        eventvalue.KeyDownUpValuedEvent // zero value when simultaneousEvents is set

	simultaneousEvents    []eventvalue.KeyDownUpValuedEvent
	simultaneousRemaining map[int]bool
	simultaneousKeyUpWhen config.KeyUpWhen

	heldToEvents      []toEventState
	releasedModifiers []hidtaxonomy.ModifierFlag
	mouseKeyEntries   []mousekey.MouseKey

	hasAlone         bool
	aloneTime        clock.AbsoluteTime
	aloneIntervening int

	hasHeldDownTimer bool
	heldDownTimer    timer.ClientID

	hasDelayedTimer bool
	delayedTimer    timer.ClientID
	delayedCanceled bool
}

// Engine is the manipulator rule engine of §4.4 (C4).
type Engine struct {
	rules *ruleSet

	Queue     *eventvalue.Queue
	Output    *postevent.Queue
	Timer     *timer.Scheduler
	Mouse     *mousekey.Handler
	Env       Environment
	Evaluator Evaluator

	held *heldModifiers
	log  zerolog.Logger

	manipulations []*manipulation
	pending       map[simultaneousKey]*simultaneousPending
}

func NewEngine(rs *ruleSet, q *eventvalue.Queue, out *postevent.Queue, sched *timer.Scheduler, mouse *mousekey.Handler, env Environment) *Engine {
	return &Engine{
		rules:   rs,
		Queue:   q,
		Output:  out,
		Timer:   sched,
		Mouse:   mouse,
		Env:     env,
		held:    newHeldModifiers(),
		log:     klog.New("manipulator"),
		pending: make(map[simultaneousKey]*simultaneousPending),
	}
}

// SetEnvironment refreshes the condition-evaluation snapshot (§4.4's
// conditions operate against externally-observed state).
func (e *Engine) SetEnvironment(env Environment) { e.Env = env }

// SetRuleSet swaps in a freshly built rule set, e.g. after a config reload
// (§7's "configuration_monitor" hot-reload). In-flight manipulations
// matched against the old rule set are left to finish on their own terms;
// only evaluation of new key_down events uses the new rules.
func (e *Engine) SetRuleSet(rs *ruleSet) { e.rules = rs }

// Tick advances the engine's timer scheduler, firing any due
// to_if_held_down / to_delayed_action callbacks.
func (e *Engine) Tick(now clock.AbsoluteTime) { e.Timer.AsyncInvoke(now) }

// HandleInputEvent is the per-popped-input-event entry point of §4.4.
func (e *Engine) HandleInputEvent(qe eventvalue.QueuedEvent, now clock.AbsoluteTime) {
	switch qe.Value.Kind() {
	case eventvalue.KindDeviceUngrabbed:
		e.terminateDevice(qe.DeviceID, now)
		e.held.releaseAll(qe.DeviceID)
		e.Queue.Buttons.ReleaseAll(qe.DeviceID)
		return
	case eventvalue.KindDeviceKeysAndPointingButtonsAreReleased:
		e.terminateAll(now)
		e.held.releaseAll(qe.DeviceID)
		e.Queue.Buttons.ReleaseAll(qe.DeviceID)
		return
	case eventvalue.KindSetVariable:
		name, val, _ := qe.Value.SetVariable()
		e.Queue.Variables.Set(name, val)
		return
	}

	key, dir, ok := qe.KeyOrButton()
	if !ok {
		return
	}

	u, hasUsage := key.UsagePair()
	isModifier := hasUsage && hidtaxonomy.IsModifier(u)
	isButton := key.Kind == eventvalue.SwitchKindPointingButton

	if isModifier {
		flag := hidtaxonomy.MakeModifierFlag(u)
		e.held.set(qe.DeviceID, flag, dir == eventvalue.SwitchEventTypeKeyDown)
	}
	if isButton {
		b := hidtaxonomy.PointingButton(key.Code)
		e.Queue.Buttons.Update(qe.DeviceID, b, dir == eventvalue.SwitchEventTypeKeyDown)
	}

	// Step 2: a key_up of an already-matched from-event is always captured
	// by the manipulator that matched it, regardless of conditions.
	if dir == eventvalue.SwitchEventTypeKeyUp {
		if m := e.findInFlight(qe.DeviceID, key); m != nil {
			if m.simultaneousEvents != nil && !e.simultaneousRelease(m, key) {
				return
			}
			e.bumpAloneCountersExcept(m)
			e.finishManipulation(m, now)
			return
		}
	}

	consumed := false
	if dir == eventvalue.SwitchEventTypeKeyDown {
		for i := range e.rules.manipulators {
			man := &e.rules.manipulators[i]
			if !EvaluateConditions(man.Conditions, e.Env, &e.Queue.Variables, false) {
				continue
			}
			if man.From.Simultaneous {
				if e.handleSimultaneousKeyDown(i, man, qe, key, now) {
					consumed = true
					break
				}
				continue
			}
			if !e.matchesSingleFrom(man.From, key, qe.DeviceID) {
				continue
			}
			e.startManipulation(i, man, qe, key, now)
			consumed = true
			break
		}
	}

	if !consumed {
		e.bumpAloneCountersExcept(nil)
		e.emitPassthrough(qe, key, dir, now)
	}
}

func (e *Engine) findInFlight(device eventvalue.DeviceID, key eventvalue.KeyDownUpValuedEvent) *manipulation {
	for _, m := range e.manipulations {
		if m.device != device {
			continue
		}
		if m.simultaneousEvents != nil {
			for _, se := range m.simultaneousEvents {
				if se == key {
					return m
				}
			}
			continue
		}
		if m.fromEvent == key {
			return m
		}
	}
	return nil
}

func (e *Engine) matchesSingleFrom(from config.FromEvent, key eventvalue.KeyDownUpValuedEvent, device eventvalue.DeviceID) bool {
	if len(from.Events) != 1 {
		return false
	}
	if from.Events[0].KeyDownUpValuedEvent != key {
		return false
	}
	return e.modifiersSatisfied(from.Modifiers, key, device)
}

// modifiersSatisfied implements §4.4 step 3's single-event-from modifier
// rule: all mandatory modifiers must be held; every other held
// modifier-like key must be the triggering key itself, in optional, or
// covered by optional:["any"].
func (e *Engine) modifiersSatisfied(mods config.ModifiersDefinition, triggering eventvalue.KeyDownUpValuedEvent, device eventvalue.DeviceID) bool {
	for _, name := range mods.Mandatory {
		flag, ok := parseModifierName(name)
		if !ok {
			continue
		}
		if !e.held.isHeld(device, flag) {
			return false
		}
	}
	if mods.OptionalAcceptsAny() {
		return true
	}

	allowed := make(map[hidtaxonomy.ModifierFlag]bool)
	for _, name := range mods.Mandatory {
		if f, ok := parseModifierName(name); ok {
			allowed[f] = true
		}
	}
	for _, name := range mods.Optional {
		if f, ok := parseModifierName(name); ok {
			allowed[f] = true
		}
	}
	triggeringFlag := triggering.ModifierFlag()

	for flag := range e.held.held(device) {
		if flag == triggeringFlag {
			continue
		}
		if !allowed[flag] {
			return false
		}
	}
	return true
}

// bumpAloneCountersExcept increments every OTHER in-flight manipulation's
// intervening-event counter — called when m itself is the event being
// handled (its own key-up, or an unrelated passthrough event, doesn't count
// as "unrelated" against itself). Pass nil when the event being handled
// belongs to no in-flight manipulation.
func (e *Engine) bumpAloneCountersExcept(m *manipulation) {
	for _, other := range e.manipulations {
		if other == m {
			continue
		}
		if other.hasAlone {
			other.aloneIntervening++
		}
	}
}
