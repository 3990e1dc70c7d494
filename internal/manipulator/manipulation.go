package manipulator

import (
	"github.com/pqrs-org/karabiner-go-core/internal/clock"
	"github.com/pqrs-org/karabiner-go-core/internal/config"
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
	"github.com/pqrs-org/karabiner-go-core/internal/mousekey"
	"github.com/pqrs-org/karabiner-go-core/internal/virtualhid"
)

// emitPassthrough posts an unmanipulated event straight to the output
// queue: a momentary switch as the equivalent keyboard/consumer/apple
// vendor report, a pointing button as a pointing_input report reflecting
// the button manager's current bitmask.
func (e *Engine) emitPassthrough(qe eventvalue.QueuedEvent, key eventvalue.KeyDownUpValuedEvent, dir eventvalue.SwitchEventType, now clock.AbsoluteTime) {
	if key.Kind == eventvalue.SwitchKindPointingButton {
		e.emitButtonReport(qe.DeviceID, now)
		return
	}
	u, ok := key.UsagePair()
	if !ok {
		return
	}
	e.Output.EmplaceBackKeyEvent(u, dir, now)
}

func (e *Engine) emitButtonReport(device eventvalue.DeviceID, now clock.AbsoluteTime) {
	report := virtualhid.PointingInputReport{Buttons: e.Queue.Buttons.Bitmask(device)}
	e.Output.EmplaceBackPointingInput(report, now)
}

// startManipulation implements §4.4 step 4, the key_down match branch.
func (e *Engine) startManipulation(index int, man *config.Manipulator, qe eventvalue.QueuedEvent, key eventvalue.KeyDownUpValuedEvent, now clock.AbsoluteTime) {
	m := &manipulation{manipulatorIndex: index, device: qe.DeviceID, fromEvent: key}
	e.releaseMandatoryModifiers(man.From.Modifiers, qe.DeviceID, m, now)
	e.armManipulation(m, index, man, qe.DeviceID, now)
}

// releaseMandatoryModifiers releases every currently-held mandatory modifier
// of a from clause and records it on m for re-assertion at termination
// (shared by single-event and simultaneous from matches).
func (e *Engine) releaseMandatoryModifiers(mods config.ModifiersDefinition, device eventvalue.DeviceID, m *manipulation, now clock.AbsoluteTime) {
	for _, name := range mods.Mandatory {
		flag, ok := parseModifierName(name)
		if !ok {
			continue
		}
		if e.held.isHeld(device, flag) {
			e.releaseModifier(flag, now)
			m.releasedModifiers = append(m.releasedModifiers, flag)
		}
	}
}

// armManipulation posts the to events and schedules the to_if_held_down /
// to_if_alone / to_delayed_action bookkeeping common to both single-event
// and simultaneous matches (§4.4 step 4).
func (e *Engine) armManipulation(m *manipulation, index int, man *config.Manipulator, device eventvalue.DeviceID, now clock.AbsoluteTime) {
	e.postToEvents(m, man.To, device, now, true)

	fallback := e.rules.blockParams[index]

	if len(man.ToIfHeldDown) > 0 {
		threshold := man.Parameters.Value(config.ParamToIfHeldDownThresholdMilliseconds, fallback)
		client := e.Timer.MakeClientID()
		m.hasHeldDownTimer = true
		m.heldDownTimer = client
		events := man.ToIfHeldDown
		e.Timer.Enqueue(client, now.Add(clock.FromMilliseconds(threshold)), func(fireAt clock.AbsoluteTime) {
			e.postToEvents(nil, events, device, fireAt, false)
		})
	}

	if len(man.ToIfAlone) > 0 {
		m.hasAlone = true
		m.aloneTime = now
	}

	if man.ToDelayedAction != nil {
		delay := man.Parameters.Value(config.ParamToDelayedActionDelayMilliseconds, fallback)
		client := e.Timer.MakeClientID()
		m.hasDelayedTimer = true
		m.delayedTimer = client
		invoke := man.ToDelayedAction.ToInvoke
		e.Timer.Enqueue(client, now.Add(clock.FromMilliseconds(delay)), func(fireAt clock.AbsoluteTime) {
			if m.delayedCanceled {
				return
			}
			e.postToEvents(nil, invoke, device, fireAt, false)
		})
	}

	e.manipulations = append(e.manipulations, m)
}

// releaseModifier posts a synthetic key_up for a currently-held modifier
// (§4.4 step 4: "release mandatory modifiers that were held"); the
// input-side held-modifier state is left unchanged.
func (e *Engine) releaseModifier(flag hidtaxonomy.ModifierFlag, now clock.AbsoluteTime) {
	u, ok := usagePairForModifier(flag)
	if !ok {
		return
	}
	e.Output.EmplaceBackKeyEvent(u, eventvalue.SwitchEventTypeKeyUp, now)
}

func (e *Engine) reassertModifier(flag hidtaxonomy.ModifierFlag, now clock.AbsoluteTime) {
	u, ok := usagePairForModifier(flag)
	if !ok {
		return
	}
	e.Output.EmplaceBackKeyEvent(u, eventvalue.SwitchEventTypeKeyDown, now)
}

var modifierKeyCodes = map[hidtaxonomy.ModifierFlag]hidtaxonomy.KeyCode{
	hidtaxonomy.ModifierFlagCapsLock:     hidtaxonomy.KeyCodeCapsLock,
	hidtaxonomy.ModifierFlagLeftControl:  hidtaxonomy.KeyCodeLeftControl,
	hidtaxonomy.ModifierFlagLeftShift:    hidtaxonomy.KeyCodeLeftShift,
	hidtaxonomy.ModifierFlagLeftOption:   hidtaxonomy.KeyCodeLeftOption,
	hidtaxonomy.ModifierFlagLeftCommand:  hidtaxonomy.KeyCodeLeftCommand,
	hidtaxonomy.ModifierFlagRightControl: hidtaxonomy.KeyCodeRightControl,
	hidtaxonomy.ModifierFlagRightShift:   hidtaxonomy.KeyCodeRightShift,
	hidtaxonomy.ModifierFlagRightOption:  hidtaxonomy.KeyCodeRightOption,
	hidtaxonomy.ModifierFlagRightCommand: hidtaxonomy.KeyCodeRightCommand,
	hidtaxonomy.ModifierFlagFn:           hidtaxonomy.KeyCodeFn,
}

func usagePairForModifier(flag hidtaxonomy.ModifierFlag) (hidtaxonomy.UsagePair, bool) {
	code, ok := modifierKeyCodes[flag]
	if !ok {
		return hidtaxonomy.UsagePair{}, false
	}
	return code.UsagePair(), true
}

// postToEvents posts a to-event list in order (§4.4 step 4 / to_if_alone /
// to_after_key_up / delayed-action invoke). When m is non-nil and
// hold==true, momentary-switch to-events are held down (recorded in m for
// later release by finishManipulation); otherwise they are tapped
// immediately (key_down followed by key_up at the same timestamp), which
// is correct for to_if_alone/to_after_key_up/held-down/delayed-action
// events that are never reversed by this manipulation's own key-up branch.
func (e *Engine) postToEvents(m *manipulation, events []config.ToEvent, device eventvalue.DeviceID, now clock.AbsoluteTime, hold bool) {
	for _, to := range events {
		switch to.Kind {
		case config.ToEventSetVariable:
			e.Queue.Variables.Set(to.VariableName, to.VariableValue)
		case config.ToEventShellCommand:
			e.Output.EmplaceBackShellCommand(to.ShellCommand, now)
		case config.ToEventSelectInputSource:
			e.Output.EmplaceBackSelectInputSource(to.SelectInputSource, now)
		case config.ToEventMouseKey:
			mk := mousekey.MouseKey{
				X:               to.MouseKey.X,
				Y:               to.MouseKey.Y,
				VerticalWheel:   to.MouseKey.VerticalWheel,
				HorizontalWheel: to.MouseKey.HorizontalWheel,
				SpeedMultiplier: to.MouseKey.Speed,
			}
			if e.Mouse != nil {
				e.Mouse.PushBack(device, mk)
			}
			if m != nil {
				m.mouseKeyEntries = append(m.mouseKeyEntries, mk)
			}
		case config.ToEventSoftwareFunction:
			if e.Evaluator != nil {
				if err := e.Evaluator.Call(to.SoftwareFunctionName); err != nil {
					e.log.Warn().Err(err).Str("function", to.SoftwareFunctionName).Msg("software_function failed")
				}
			}
		case config.ToEventMomentarySwitch:
			u, ok := to.MomentarySwitch.UsagePair()
			if !ok {
				continue
			}
			var temp []hidtaxonomy.ModifierFlag
			for _, name := range to.Modifiers.Mandatory {
				if flag, ok := parseModifierName(name); ok && !e.held.isHeld(device, flag) {
					e.reassertModifier(flag, now)
					temp = append(temp, flag)
				}
			}
			if hold && m != nil {
				e.Output.EmplaceBackKeyEvent(u, eventvalue.SwitchEventTypeKeyDown, now)
				m.heldToEvents = append(m.heldToEvents, toEventState{usage: u, tempModifiers: temp})
			} else {
				e.Output.EmplaceBackKeyEvent(u, eventvalue.SwitchEventTypeKeyDown, now)
				e.Output.EmplaceBackKeyEvent(u, eventvalue.SwitchEventTypeKeyUp, now)
				for _, flag := range temp {
					e.releaseModifier(flag, now)
				}
			}
		}
		// sticky_modifier has no HID projection in this core: it is a
		// live-config-editing concept (the preferences UI lets a user latch
		// a modifier's state) with no meaning outside that editor, which is
		// itself a non-goal, so it is intentionally not dispatched here.
	}
}

// finishManipulation implements §4.4 step 5, the key-up branch.
func (e *Engine) finishManipulation(m *manipulation, now clock.AbsoluteTime) {
	if m.hasHeldDownTimer {
		e.Timer.AsyncErase(m.heldDownTimer, nil)
	}
	if m.hasDelayedTimer {
		m.delayedCanceled = true
		e.Timer.AsyncErase(m.delayedTimer, nil)
	}
	if e.Mouse != nil {
		for _, mk := range m.mouseKeyEntries {
			e.Mouse.Erase(m.device, mk)
		}
	}

	for i := len(m.heldToEvents) - 1; i >= 0; i-- {
		te := m.heldToEvents[i]
		e.Output.EmplaceBackKeyEvent(te.usage, eventvalue.SwitchEventTypeKeyUp, now)
		for _, flag := range te.tempModifiers {
			e.releaseModifier(flag, now)
		}
	}

	for _, flag := range m.releasedModifiers {
		e.reassertModifier(flag, now)
	}

	man := &e.rules.manipulators[m.manipulatorIndex]
	fallback := e.rules.blockParams[m.manipulatorIndex]

	if len(man.ToIfAlone) > 0 {
		timeout := man.Parameters.Value(config.ParamToIfAloneTimeoutMilliseconds, fallback)
		elapsed := now.Sub(m.aloneTime).Milliseconds()
		if elapsed <= int64(timeout) && m.aloneIntervening == 0 {
			e.postToEvents(nil, man.ToIfAlone, m.device, now, false)
		}
	}
	if len(man.ToAfterKeyUp) > 0 {
		e.postToEvents(nil, man.ToAfterKeyUp, m.device, now, false)
	}
	if m.simultaneousEvents != nil && len(man.From.Options.ToAfterKeyUp) > 0 {
		e.postToEvents(nil, man.From.Options.ToAfterKeyUp, m.device, now, false)
	}

	e.removeManipulation(m)
}

func (e *Engine) removeManipulation(m *manipulation) {
	for i, other := range e.manipulations {
		if other == m {
			e.manipulations = append(e.manipulations[:i], e.manipulations[i+1:]...)
			return
		}
	}
}

// terminateDevice finishes every in-flight manipulation whose from-event
// originated on device D (§4.4, device_ungrabbed), and discards any
// incomplete simultaneous-match bookkeeping for that device without
// re-emitting it (the device is gone; there is nothing to deliver it to).
func (e *Engine) terminateDevice(device eventvalue.DeviceID, now clock.AbsoluteTime) {
	for _, m := range e.snapshotManipulations() {
		if m.device == device {
			e.finishManipulation(m, now)
		}
	}
	e.discardPendingForDevice(device)
}

// terminateAll finishes every in-flight manipulation
// (device_keys_and_pointing_buttons_are_released).
func (e *Engine) terminateAll(now clock.AbsoluteTime) {
	for _, m := range e.snapshotManipulations() {
		e.finishManipulation(m, now)
	}
	for k, p := range e.pending {
		e.Timer.AsyncErase(p.timerClient, nil)
		delete(e.pending, k)
	}
}

func (e *Engine) discardPendingForDevice(device eventvalue.DeviceID) {
	for k, p := range e.pending {
		if k.device != device {
			continue
		}
		e.Timer.AsyncErase(p.timerClient, nil)
		delete(e.pending, k)
	}
}

func (e *Engine) snapshotManipulations() []*manipulation {
	out := make([]*manipulation, len(e.manipulations))
	copy(out, e.manipulations)
	return out
}
