package config

import "github.com/pqrs-org/karabiner-go-core/internal/eventvalue"

// ComplexModificationRule is a description plus an ordered list of
// manipulator definitions (§3).
type ComplexModificationRule struct {
	Description  string        `json:"description"`
	Manipulators []Manipulator `json:"manipulators"`
}

// KeyOrder is the key_down_order / key_up_order of a simultaneous from
// clause (§3).
type KeyOrder string

const (
	KeyOrderInsensitive  KeyOrder = "insensitive"
	KeyOrderStrict       KeyOrder = "strict"
	KeyOrderStrictInverse KeyOrder = "strict_inverse"
)

// KeyUpWhen is the simultaneous from clause's key_up_when (§3).
type KeyUpWhen string

const (
	KeyUpWhenAny KeyUpWhen = "any"
	KeyUpWhenAll KeyUpWhen = "all"
)

// ModifiersDefinition is the mandatory/optional modifier spec attached to a
// from clause (§3). "any" in Optional matches any currently-pressed
// modifier-like key.
type ModifiersDefinition struct {
	Mandatory []string `json:"mandatory,omitempty"`
	Optional  []string `json:"optional,omitempty"`
}

func (m ModifiersDefinition) OptionalAcceptsAny() bool {
	for _, o := range m.Optional {
		if o == "any" {
			return true
		}
	}
	return false
}

// SimultaneousOptions configures a simultaneous from clause (§3).
type SimultaneousOptions struct {
	KeyDownOrder KeyOrder                     `json:"key_down_order,omitempty"`
	KeyUpOrder   KeyOrder                     `json:"key_up_order,omitempty"`
	KeyUpWhen    KeyUpWhen                    `json:"key_up_when,omitempty"`
	ToAfterKeyUp []ToEvent                    `json:"to_after_key_up,omitempty"`
}

// FromEvent is either a single momentary-switch event or a simultaneous
// group (§3). Exactly one of Events (len==1, non-simultaneous) or a
// Simultaneous-flagged multi-event group is populated; Simultaneous is true
// when the rule author wrote a "simultaneous" key in the from clause.
type FromEvent struct {
	Events       []eventvalue.EventDefinition `json:"-"`
	Modifiers    ModifiersDefinition          `json:"modifiers,omitempty"`
	Simultaneous bool                         `json:"-"`
	Options      SimultaneousOptions          `json:"-"`
}

// ToEventKind discriminates the variants a to-clause entry may hold (§3's
// "to event definition").
type ToEventKind int

const (
	ToEventMomentarySwitch ToEventKind = iota
	ToEventShellCommand
	ToEventSelectInputSource
	ToEventSetVariable
	ToEventMouseKey
	ToEventStickyModifier
	ToEventSoftwareFunction
)

// MouseKeyTo holds the speed-multiplier/direction payload of a mouse_key
// to-event, fed to the mouse-key handler (C6).
type MouseKeyTo struct {
	X              int `json:"x,omitempty"`
	Y              int `json:"y,omitempty"`
	VerticalWheel  int `json:"vertical_wheel,omitempty"`
	HorizontalWheel int `json:"horizontal_wheel,omitempty"`
	Speed          int `json:"speed_multiplier,omitempty"`
}

// ToEvent is one entry of a to/to_if_alone/to_if_held_down/... list (§3).
type ToEvent struct {
	Kind                ToEventKind
	MomentarySwitch     eventvalue.EventDefinition
	Modifiers           ModifiersDefinition
	ShellCommand        string
	SelectInputSource   []eventvalue.InputSourceSpecifier
	VariableName        string
	VariableValue       int
	MouseKey            MouseKeyTo
	StickyModifierName  string
	SoftwareFunctionName string
	Lazy                bool
	Repeat              bool
	HoldDownMilliseconds int
}

// DelayedActionEvents is the to_delayed_action payload: events to invoke on
// timeout, and events to post if canceled (§3).
type DelayedActionEvents struct {
	ToInvoke   []ToEvent `json:"to_invoke,omitempty"`
	ToCanceled []ToEvent `json:"to_canceled,omitempty"`
}

// ConditionType enumerates the condition kinds of §4.4.
type ConditionType string

const (
	ConditionFrontmostApplicationIf     ConditionType = "frontmost_application_if"
	ConditionFrontmostApplicationUnless ConditionType = "frontmost_application_unless"
	ConditionDeviceIf                   ConditionType = "device_if"
	ConditionDeviceUnless               ConditionType = "device_unless"
	ConditionVariableIf                 ConditionType = "variable_if"
	ConditionInputSourceIf              ConditionType = "input_source_if"
	ConditionInputSourceUnless          ConditionType = "input_source_unless"
	ConditionKeyboardTypeIf             ConditionType = "keyboard_type_if"
	ConditionEventChangedIf             ConditionType = "event_changed_if"
)

// Condition is a single conjunctive, short-circuiting gate on a manipulator
// (§4.4).
type Condition struct {
	Type                 ConditionType
	BundleIdentifiers    []string
	FilePaths            []string
	Identifiers          []DeviceIdentifiers
	Descriptions         []string
	VariableName         string
	VariableValue        int
	InputSources         []eventvalue.InputSourceSpecifier
	KeyboardTypes        []string
}

// Manipulator is a single from/to rule (§3). Type is always "basic" for
// this core (§3: "basic is the only one specified here").
type Manipulator struct {
	Type               string
	From               FromEvent
	To                 []ToEvent
	ToIfAlone          []ToEvent
	ToIfHeldDown       []ToEvent
	ToAfterKeyUp       []ToEvent
	ToIfCanceled       []ToEvent
	ToDelayedAction    *DelayedActionEvents
	Conditions         []Condition
	Parameters         Parameters
}
