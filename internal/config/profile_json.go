package config

import (
	"encoding/json"
	"fmt"

	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
)

// profileJSON is Profile's wire shape. simple_modifications and
// fn_function_keys are decoded by hand in UnmarshalJSON because
// simple_modifications accepts two historical shapes (§4.3).
type profileJSON struct {
	Name                 string                     `json:"name"`
	Selected             bool                       `json:"selected"`
	SimpleModifications  json.RawMessage            `json:"simple_modifications,omitempty"`
	FnFunctionKeys       json.RawMessage            `json:"fn_function_keys,omitempty"`
	ComplexModifications ComplexModificationsBlock  `json:"complex_modifications"`
	Devices              []DeviceOverride           `json:"devices,omitempty"`
	VirtualHIDKeyboard   VirtualHIDKeyboardSettings `json:"virtual_hid_keyboard"`
	Parameters           ProfileParameters          `json:"parameters"`
}

func (p Profile) MarshalJSON() ([]byte, error) {
	simple, err := json.Marshal(p.SimpleModifications)
	if err != nil {
		return nil, err
	}
	fn, err := json.Marshal(p.FnFunctionKeys)
	if err != nil {
		return nil, err
	}
	return json.Marshal(profileJSON{
		Name: p.Name, Selected: p.Selected,
		SimpleModifications: simple, FnFunctionKeys: fn,
		ComplexModifications: p.ComplexModifications,
		Devices:               p.Devices,
		VirtualHIDKeyboard:    p.VirtualHIDKeyboard,
		Parameters:            p.ProfileParameters,
	})
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var w profileJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.Name = w.Name
	p.Selected = w.Selected
	p.ComplexModifications = w.ComplexModifications
	p.Devices = w.Devices
	p.VirtualHIDKeyboard = w.VirtualHIDKeyboard
	p.ProfileParameters = w.Parameters

	simple, err := decodeSimpleModifications(w.SimpleModifications)
	if err != nil {
		return fmt.Errorf("config: simple_modifications: %w", err)
	}
	p.SimpleModifications = simple

	if len(w.FnFunctionKeys) > 0 {
		fn, err := decodeSimpleModifications(w.FnFunctionKeys)
		if err != nil {
			return fmt.Errorf("config: fn_function_keys: %w", err)
		}
		p.FnFunctionKeys = fn
	} else {
		p.FnFunctionKeys = DefaultFnFunctionKeys()
	}
	return nil
}

// decodeSimpleModifications accepts either the legacy string->string object
// format (both sides are bare key_code names) or the current array of
// {from, to} objects with full event-definition discriminators (§4.3).
func decodeSimpleModifications(raw json.RawMessage) ([]ModificationPair, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var asArray []ModificationPair
	if err := json.Unmarshal(raw, &asArray); err == nil {
		return asArray, nil
	}

	var legacy map[string]string
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("neither legacy object nor current array format: %w", err)
	}
	pairs := make([]ModificationPair, 0, len(legacy))
	for from, to := range legacy {
		fromCode, ok := hidtaxonomy.ParseKeyCode(from)
		if !ok {
			continue
		}
		toCode, ok := hidtaxonomy.ParseKeyCode(to)
		if !ok {
			continue
		}
		pairs = append(pairs, ModificationPair{
			From: eventvalue.EventDefinition{KeyDownUpValuedEvent: eventvalue.NewKeyCode(fromCode)},
			To:   eventvalue.EventDefinition{KeyDownUpValuedEvent: eventvalue.NewKeyCode(toCode)},
		})
	}
	return pairs, nil
}
