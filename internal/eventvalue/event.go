package eventvalue

import "fmt"

// Kind discriminates the EventValue tagged sum type of §3.
type Kind int

const (
	KindMomentarySwitch Kind = iota
	KindPointingMotion
	KindShellCommand
	KindSelectInputSource
	KindSetVariable
	KindDeviceKeysAndPointingButtonsAreReleased
	KindDeviceUngrabbed
	KindCapsLockStateChanged
	KindPointingDeviceEventFromEventTap
	KindFrontmostApplicationChanged
)

// InputSourceSpecifier is a triple of optional regexes (§3).
type InputSourceSpecifier struct {
	LanguageRegex    *string `json:"language,omitempty"`
	InputSourceIDRegex *string `json:"input_source_id,omitempty"`
	InputModeIDRegex *string `json:"input_mode_id,omitempty"`
}

// PointingMotion holds the four integer deltas of a pointing-motion event.
type PointingMotion struct {
	X               int `json:"x"`
	Y               int `json:"y"`
	VerticalWheel   int `json:"vertical_wheel"`
	HorizontalWheel int `json:"horizontal_wheel"`
}

func (m PointingMotion) IsZero() bool {
	return m.X == 0 && m.Y == 0 && m.VerticalWheel == 0 && m.HorizontalWheel == 0
}

func (m PointingMotion) Add(o PointingMotion) PointingMotion {
	return PointingMotion{
		X:               m.X + o.X,
		Y:               m.Y + o.Y,
		VerticalWheel:   m.VerticalWheel + o.VerticalWheel,
		HorizontalWheel: m.HorizontalWheel + o.HorizontalWheel,
	}
}

// EventValue is the tagged variant described in §3 "Event value". Only the
// fields relevant to Kind are meaningful; constructors below are the only
// supported way to build one so callers can't leave a value in an
// inconsistent state.
type EventValue struct {
	kind Kind

	momentarySwitch     KeyDownUpValuedEvent
	momentarySwitchType SwitchEventType

	pointingMotion PointingMotion

	shellCommand string

	inputSources []InputSourceSpecifier

	variableName  string
	variableValue int

	frontmostBundleID string
	frontmostFilePath string

	capsLockOn bool
}

// SwitchEventType is the event_type of a momentary_switch event.
type SwitchEventType int

const (
	SwitchEventTypeKeyDown SwitchEventType = iota
	SwitchEventTypeKeyUp
	SwitchEventTypeSingle
)

func (t SwitchEventType) String() string {
	switch t {
	case SwitchEventTypeKeyDown:
		return "key_down"
	case SwitchEventTypeKeyUp:
		return "key_up"
	default:
		return "single"
	}
}

func (v EventValue) Kind() Kind { return v.kind }

func NewMomentarySwitch(e KeyDownUpValuedEvent, t SwitchEventType) EventValue {
	return EventValue{kind: KindMomentarySwitch, momentarySwitch: e, momentarySwitchType: t}
}

func (v EventValue) MomentarySwitch() (KeyDownUpValuedEvent, SwitchEventType, bool) {
	if v.kind != KindMomentarySwitch {
		return KeyDownUpValuedEvent{}, 0, false
	}
	return v.momentarySwitch, v.momentarySwitchType, true
}

func NewPointingMotion(m PointingMotion) EventValue {
	return EventValue{kind: KindPointingMotion, pointingMotion: m}
}

func (v EventValue) PointingMotion() (PointingMotion, bool) {
	if v.kind != KindPointingMotion {
		return PointingMotion{}, false
	}
	return v.pointingMotion, true
}

func NewShellCommand(cmd string) EventValue {
	return EventValue{kind: KindShellCommand, shellCommand: cmd}
}

func (v EventValue) ShellCommand() (string, bool) {
	if v.kind != KindShellCommand {
		return "", false
	}
	return v.shellCommand, true
}

func NewSelectInputSource(specs []InputSourceSpecifier) EventValue {
	return EventValue{kind: KindSelectInputSource, inputSources: specs}
}

func (v EventValue) SelectInputSource() ([]InputSourceSpecifier, bool) {
	if v.kind != KindSelectInputSource {
		return nil, false
	}
	return v.inputSources, true
}

func NewSetVariable(name string, value int) EventValue {
	return EventValue{kind: KindSetVariable, variableName: name, variableValue: value}
}

func (v EventValue) SetVariable() (string, int, bool) {
	if v.kind != KindSetVariable {
		return "", 0, false
	}
	return v.variableName, v.variableValue, true
}

func NewDeviceKeysAndPointingButtonsAreReleased() EventValue {
	return EventValue{kind: KindDeviceKeysAndPointingButtonsAreReleased}
}

func NewDeviceUngrabbed() EventValue {
	return EventValue{kind: KindDeviceUngrabbed}
}

func NewCapsLockStateChanged(on bool) EventValue {
	return EventValue{kind: KindCapsLockStateChanged, capsLockOn: on}
}

func (v EventValue) CapsLockStateChanged() (bool, bool) {
	if v.kind != KindCapsLockStateChanged {
		return false, false
	}
	return v.capsLockOn, true
}

func NewPointingDeviceEventFromEventTap() EventValue {
	return EventValue{kind: KindPointingDeviceEventFromEventTap}
}

func NewFrontmostApplicationChanged(bundleID, filePath string) EventValue {
	return EventValue{kind: KindFrontmostApplicationChanged, frontmostBundleID: bundleID, frontmostFilePath: filePath}
}

func (v EventValue) FrontmostApplicationChanged() (bundleID, filePath string, ok bool) {
	if v.kind != KindFrontmostApplicationChanged {
		return "", "", false
	}
	return v.frontmostBundleID, v.frontmostFilePath, true
}

// Equal is structural equality of the variant payload, used by queued-event
// comparison (§4.2: "Event comparison uses structural equality of the
// variant payload plus device_id and timestamp").
func (v EventValue) Equal(o EventValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindMomentarySwitch:
		return v.momentarySwitch == o.momentarySwitch && v.momentarySwitchType == o.momentarySwitchType
	case KindPointingMotion:
		return v.pointingMotion == o.pointingMotion
	case KindShellCommand:
		return v.shellCommand == o.shellCommand
	case KindSetVariable:
		return v.variableName == o.variableName && v.variableValue == o.variableValue
	case KindCapsLockStateChanged:
		return v.capsLockOn == o.capsLockOn
	case KindFrontmostApplicationChanged:
		return v.frontmostBundleID == o.frontmostBundleID && v.frontmostFilePath == o.frontmostFilePath
	case KindSelectInputSource:
		if len(v.inputSources) != len(o.inputSources) {
			return false
		}
		for i := range v.inputSources {
			if v.inputSources[i] != o.inputSources[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (v EventValue) String() string {
	switch v.kind {
	case KindMomentarySwitch:
		return fmt.Sprintf("momentary_switch(%s,%s)", v.momentarySwitch, v.momentarySwitchType)
	case KindPointingMotion:
		return fmt.Sprintf("pointing_motion(%+v)", v.pointingMotion)
	case KindShellCommand:
		return fmt.Sprintf("shell_command(%q)", v.shellCommand)
	case KindSelectInputSource:
		return "select_input_source"
	case KindSetVariable:
		return fmt.Sprintf("set_variable(%s=%d)", v.variableName, v.variableValue)
	case KindDeviceKeysAndPointingButtonsAreReleased:
		return "device_keys_and_pointing_buttons_are_released"
	case KindDeviceUngrabbed:
		return "device_ungrabbed"
	case KindCapsLockStateChanged:
		return fmt.Sprintf("caps_lock_state_changed(%v)", v.capsLockOn)
	case KindPointingDeviceEventFromEventTap:
		return "pointing_device_event_from_event_tap"
	case KindFrontmostApplicationChanged:
		return fmt.Sprintf("frontmost_application_changed(%s)", v.frontmostBundleID)
	default:
		return "unknown"
	}
}
