package config

import (
	"encoding/json"
	"fmt"

	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
)

// toEventJSON is the wire shape of one to/to_if_alone/... list entry: a
// discriminated object layered on top of the EventDefinition discriminators
// plus the non-switch to-event kinds (§3, §6).
type toEventJSON struct {
	eventvalue.EventDefinition
	Modifiers            *ModifiersDefinition              `json:"modifiers,omitempty"`
	ShellCommand         *string                            `json:"shell_command,omitempty"`
	SelectInputSource    []eventvalue.InputSourceSpecifier `json:"select_input_source,omitempty"`
	SetVariable          *struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	} `json:"set_variable,omitempty"`
	MouseKey             *MouseKeyTo `json:"mouse_key,omitempty"`
	StickyModifier       *string     `json:"sticky_modifier,omitempty"`
	SoftwareFunction     *string     `json:"software_function,omitempty"`
	Lazy                 bool        `json:"lazy,omitempty"`
	Repeat               bool        `json:"repeat,omitempty"`
	HoldDownMilliseconds int         `json:"hold_down_milliseconds,omitempty"`
}

func (t ToEvent) MarshalJSON() ([]byte, error) {
	var w toEventJSON
	w.Lazy = t.Lazy
	w.Repeat = t.Repeat
	w.HoldDownMilliseconds = t.HoldDownMilliseconds
	switch t.Kind {
	case ToEventMomentarySwitch:
		w.EventDefinition = t.MomentarySwitch
		if len(t.Modifiers.Mandatory) > 0 || len(t.Modifiers.Optional) > 0 {
			m := t.Modifiers
			w.Modifiers = &m
		}
	case ToEventShellCommand:
		w.ShellCommand = &t.ShellCommand
	case ToEventSelectInputSource:
		w.SelectInputSource = t.SelectInputSource
	case ToEventSetVariable:
		w.SetVariable = &struct {
			Name  string `json:"name"`
			Value int    `json:"value"`
		}{t.VariableName, t.VariableValue}
	case ToEventMouseKey:
		w.MouseKey = &t.MouseKey
	case ToEventStickyModifier:
		w.StickyModifier = &t.StickyModifierName
	case ToEventSoftwareFunction:
		w.SoftwareFunction = &t.SoftwareFunctionName
	}
	return json.Marshal(w)
}

func (t *ToEvent) UnmarshalJSON(data []byte) error {
	var w toEventJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.Lazy = w.Lazy
	t.Repeat = w.Repeat
	t.HoldDownMilliseconds = w.HoldDownMilliseconds
	switch {
	case w.ShellCommand != nil:
		t.Kind = ToEventShellCommand
		t.ShellCommand = *w.ShellCommand
	case w.SelectInputSource != nil:
		t.Kind = ToEventSelectInputSource
		t.SelectInputSource = w.SelectInputSource
	case w.SetVariable != nil:
		t.Kind = ToEventSetVariable
		t.VariableName = w.SetVariable.Name
		t.VariableValue = w.SetVariable.Value
	case w.MouseKey != nil:
		t.Kind = ToEventMouseKey
		t.MouseKey = *w.MouseKey
	case w.StickyModifier != nil:
		t.Kind = ToEventStickyModifier
		t.StickyModifierName = *w.StickyModifier
	case w.SoftwareFunction != nil:
		t.Kind = ToEventSoftwareFunction
		t.SoftwareFunctionName = *w.SoftwareFunction
	case !w.EventDefinition.IsNone():
		t.Kind = ToEventMomentarySwitch
		t.MomentarySwitch = w.EventDefinition
		if w.Modifiers != nil {
			t.Modifiers = *w.Modifiers
		}
	default:
		return fmt.Errorf("config: to-event entry has no recognised discriminator")
	}
	return nil
}

// fromEventJSON mirrors FromEvent's two shapes: a single event_definition
// (plus modifiers), or {"simultaneous": [...], "simultaneous_options": {...}}.
type fromEventJSON struct {
	eventvalue.EventDefinition
	Modifiers           ModifiersDefinition          `json:"modifiers,omitempty"`
	Simultaneous        []eventvalue.EventDefinition `json:"simultaneous,omitempty"`
	SimultaneousOptions *SimultaneousOptions         `json:"simultaneous_options,omitempty"`
}

func (f FromEvent) MarshalJSON() ([]byte, error) {
	w := fromEventJSON{Modifiers: f.Modifiers}
	if f.Simultaneous {
		w.Simultaneous = f.Events
		w.SimultaneousOptions = &f.Options
	} else if len(f.Events) == 1 {
		w.EventDefinition = f.Events[0]
	}
	return json.Marshal(w)
}

func (f *FromEvent) UnmarshalJSON(data []byte) error {
	var w fromEventJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	f.Modifiers = w.Modifiers
	if len(w.Simultaneous) > 0 {
		f.Simultaneous = true
		f.Events = w.Simultaneous
		if w.SimultaneousOptions != nil {
			f.Options = *w.SimultaneousOptions
		}
		return nil
	}
	f.Simultaneous = false
	f.Events = []eventvalue.EventDefinition{w.EventDefinition}
	return nil
}

// conditionJSON is the wire shape of one condition object (§4.4).
type conditionJSON struct {
	Type               ConditionType             `json:"type"`
	BundleIdentifiers  []string                  `json:"bundle_identifiers,omitempty"`
	FilePaths          []string                  `json:"file_paths,omitempty"`
	Identifiers        []DeviceIdentifiers       `json:"identifiers,omitempty"`
	Descriptions       []string                  `json:"descriptions,omitempty"`
	Name               string                    `json:"name,omitempty"`
	Value              int                       `json:"value,omitempty"`
	InputSources       []eventvalue.InputSourceSpecifier `json:"input_sources,omitempty"`
	KeyboardTypes      []string                  `json:"keyboard_types,omitempty"`
}

func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionJSON{
		Type:              c.Type,
		BundleIdentifiers: c.BundleIdentifiers,
		FilePaths:         c.FilePaths,
		Identifiers:       c.Identifiers,
		Descriptions:      c.Descriptions,
		Name:              c.VariableName,
		Value:             c.VariableValue,
		InputSources:      c.InputSources,
		KeyboardTypes:     c.KeyboardTypes,
	})
}

func (c *Condition) UnmarshalJSON(data []byte) error {
	var w conditionJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.Type = w.Type
	c.BundleIdentifiers = w.BundleIdentifiers
	c.FilePaths = w.FilePaths
	c.Identifiers = w.Identifiers
	c.Descriptions = w.Descriptions
	c.VariableName = w.Name
	c.VariableValue = w.Value
	c.InputSources = w.InputSources
	c.KeyboardTypes = w.KeyboardTypes
	return nil
}

// manipulatorJSON is the wire shape of one manipulator (§3).
type manipulatorJSON struct {
	Type            string               `json:"type"`
	From            FromEvent            `json:"from"`
	To              []ToEvent            `json:"to,omitempty"`
	ToIfAlone       []ToEvent            `json:"to_if_alone,omitempty"`
	ToIfHeldDown    []ToEvent            `json:"to_if_held_down,omitempty"`
	ToAfterKeyUp    []ToEvent            `json:"to_after_key_up,omitempty"`
	ToIfCanceled    []ToEvent            `json:"to_if_canceled,omitempty"`
	ToDelayedAction *DelayedActionEvents `json:"to_delayed_action,omitempty"`
	Conditions      []Condition          `json:"conditions,omitempty"`
	Parameters      Parameters           `json:"parameters,omitempty"`
}

func (m Manipulator) MarshalJSON() ([]byte, error) {
	typ := m.Type
	if typ == "" {
		typ = "basic"
	}
	return json.Marshal(manipulatorJSON{
		Type: typ, From: m.From, To: m.To, ToIfAlone: m.ToIfAlone,
		ToIfHeldDown: m.ToIfHeldDown, ToAfterKeyUp: m.ToAfterKeyUp,
		ToIfCanceled: m.ToIfCanceled, ToDelayedAction: m.ToDelayedAction,
		Conditions: m.Conditions, Parameters: m.Parameters,
	})
}

func (m *Manipulator) UnmarshalJSON(data []byte) error {
	var w manipulatorJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type == "" {
		w.Type = "basic"
	}
	*m = Manipulator{
		Type: w.Type, From: w.From, To: w.To, ToIfAlone: w.ToIfAlone,
		ToIfHeldDown: w.ToIfHeldDown, ToAfterKeyUp: w.ToAfterKeyUp,
		ToIfCanceled: w.ToIfCanceled, ToDelayedAction: w.ToDelayedAction,
		Conditions: w.Conditions, Parameters: w.Parameters,
	}
	return nil
}
