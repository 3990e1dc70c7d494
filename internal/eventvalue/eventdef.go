package eventvalue

// EventDefinition is the JSON-facing shape used by simple_modifications,
// fn_function_keys, and complex-modification from/to clauses: a
// discriminated object holding one of the C1 usage variants. It embeds
// KeyDownUpValuedEvent's own MarshalJSON/UnmarshalJSON, so the
// {"key_code": "..."} / {"pointing_button": "..."} wire shape is shared
// verbatim between simple and complex modifications (§4.3, §6).
type EventDefinition struct {
	KeyDownUpValuedEvent
}

func (d EventDefinition) IsNone() bool { return d.Kind == SwitchKindNone }
