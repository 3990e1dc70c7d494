// Package eventvalue owns the tagged event-value types of §3 (C2): the
// disjoint key_down_up_valued_event variant, the event_value sum type, and
// the queued_event / event_queue that carries them through the pipeline.
package eventvalue

import (
	"encoding/json"
	"fmt"

	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
)

// SwitchEventKind is the discriminator of a KeyDownUpValuedEvent.
type SwitchEventKind int

const (
	SwitchKindNone SwitchEventKind = iota
	SwitchKindKeyCode
	SwitchKindConsumerKeyCode
	SwitchKindAppleVendorKeyboardKeyCode
	SwitchKindAppleVendorTopCaseKeyCode
	SwitchKindPointingButton
)

// KeyDownUpValuedEvent is the disjoint tagged value of §3: it holds exactly
// one of a key-code, consumer-key-code, apple-vendor-keyboard-key-code,
// apple-vendor-top-case-key-code, pointing-button, or "none".
type KeyDownUpValuedEvent struct {
	Kind  SwitchEventKind
	Code  uint32
}

func NewKeyCode(k hidtaxonomy.KeyCode) KeyDownUpValuedEvent {
	return KeyDownUpValuedEvent{Kind: SwitchKindKeyCode, Code: uint32(k)}
}
func NewConsumerKeyCode(k hidtaxonomy.ConsumerKeyCode) KeyDownUpValuedEvent {
	return KeyDownUpValuedEvent{Kind: SwitchKindConsumerKeyCode, Code: uint32(k)}
}
func NewAppleVendorKeyboardKeyCode(k hidtaxonomy.AppleVendorKeyboardKeyCode) KeyDownUpValuedEvent {
	return KeyDownUpValuedEvent{Kind: SwitchKindAppleVendorKeyboardKeyCode, Code: uint32(k)}
}
func NewAppleVendorTopCaseKeyCode(k hidtaxonomy.AppleVendorTopCaseKeyCode) KeyDownUpValuedEvent {
	return KeyDownUpValuedEvent{Kind: SwitchKindAppleVendorTopCaseKeyCode, Code: uint32(k)}
}
func NewPointingButton(b hidtaxonomy.PointingButton) KeyDownUpValuedEvent {
	return KeyDownUpValuedEvent{Kind: SwitchKindPointingButton, Code: uint32(b)}
}

// UsagePair returns the canonical (usage_page, usage) projection of this
// event. "none" has no projection; ok is false.
func (e KeyDownUpValuedEvent) UsagePair() (hidtaxonomy.UsagePair, bool) {
	switch e.Kind {
	case SwitchKindKeyCode:
		return hidtaxonomy.KeyCode(e.Code).UsagePair(), true
	case SwitchKindConsumerKeyCode:
		return hidtaxonomy.ConsumerKeyCode(e.Code).UsagePair(), true
	case SwitchKindAppleVendorKeyboardKeyCode:
		return hidtaxonomy.AppleVendorKeyboardKeyCode(e.Code).UsagePair(), true
	case SwitchKindAppleVendorTopCaseKeyCode:
		return hidtaxonomy.AppleVendorTopCaseKeyCode(e.Code).UsagePair(), true
	case SwitchKindPointingButton:
		return hidtaxonomy.PointingButton(e.Code).UsagePair(), true
	default:
		return hidtaxonomy.UsagePair{}, false
	}
}

// IsModifier reports whether this event corresponds to a modifier key.
func (e KeyDownUpValuedEvent) IsModifier() bool {
	u, ok := e.UsagePair()
	return ok && hidtaxonomy.IsModifier(u)
}

// ModifierFlag returns the modifier flag this event projects to, or
// hidtaxonomy.ModifierFlagNone.
func (e KeyDownUpValuedEvent) ModifierFlag() hidtaxonomy.ModifierFlag {
	u, ok := e.UsagePair()
	if !ok {
		return hidtaxonomy.ModifierFlagNone
	}
	return hidtaxonomy.MakeModifierFlag(u)
}

func (e KeyDownUpValuedEvent) String() string {
	switch e.Kind {
	case SwitchKindKeyCode:
		return "key_code:" + hidtaxonomy.KeyCodeName(hidtaxonomy.KeyCode(e.Code))
	case SwitchKindConsumerKeyCode:
		return "consumer_key_code:" + hidtaxonomy.ConsumerKeyCodeName(hidtaxonomy.ConsumerKeyCode(e.Code))
	case SwitchKindAppleVendorKeyboardKeyCode:
		return "apple_vendor_keyboard_key_code:" + hidtaxonomy.AppleVendorKeyboardKeyCodeName(hidtaxonomy.AppleVendorKeyboardKeyCode(e.Code))
	case SwitchKindAppleVendorTopCaseKeyCode:
		return "apple_vendor_top_case_key_code:" + hidtaxonomy.AppleVendorTopCaseKeyCodeName(hidtaxonomy.AppleVendorTopCaseKeyCode(e.Code))
	case SwitchKindPointingButton:
		return "pointing_button:" + hidtaxonomy.PointingButtonName(hidtaxonomy.PointingButton(e.Code))
	default:
		return "none"
	}
}

// keyDownUpValuedEventJSON is the discriminated-object wire form, e.g.
// {"key_code": "escape"} or {"pointing_button": "button1"}.
type keyDownUpValuedEventJSON struct {
	KeyCode                    *string `json:"key_code,omitempty"`
	ConsumerKeyCode            *string `json:"consumer_key_code,omitempty"`
	AppleVendorKeyboardKeyCode *string `json:"apple_vendor_keyboard_key_code,omitempty"`
	AppleVendorTopCaseKeyCode  *string `json:"apple_vendor_top_case_key_code,omitempty"`
	PointingButton             *string `json:"pointing_button,omitempty"`
}

func (e KeyDownUpValuedEvent) MarshalJSON() ([]byte, error) {
	var w keyDownUpValuedEventJSON
	switch e.Kind {
	case SwitchKindKeyCode:
		n := hidtaxonomy.KeyCodeName(hidtaxonomy.KeyCode(e.Code))
		w.KeyCode = &n
	case SwitchKindConsumerKeyCode:
		n := hidtaxonomy.ConsumerKeyCodeName(hidtaxonomy.ConsumerKeyCode(e.Code))
		w.ConsumerKeyCode = &n
	case SwitchKindAppleVendorKeyboardKeyCode:
		n := hidtaxonomy.AppleVendorKeyboardKeyCodeName(hidtaxonomy.AppleVendorKeyboardKeyCode(e.Code))
		w.AppleVendorKeyboardKeyCode = &n
	case SwitchKindAppleVendorTopCaseKeyCode:
		n := hidtaxonomy.AppleVendorTopCaseKeyCodeName(hidtaxonomy.AppleVendorTopCaseKeyCode(e.Code))
		w.AppleVendorTopCaseKeyCode = &n
	case SwitchKindPointingButton:
		n := hidtaxonomy.PointingButtonName(hidtaxonomy.PointingButton(e.Code))
		w.PointingButton = &n
	}
	return json.Marshal(w)
}

func (e *KeyDownUpValuedEvent) UnmarshalJSON(data []byte) error {
	var w keyDownUpValuedEventJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.KeyCode != nil:
		c, ok := hidtaxonomy.ParseKeyCode(*w.KeyCode)
		if !ok {
			return fmt.Errorf("eventvalue: unknown key_code %q", *w.KeyCode)
		}
		*e = NewKeyCode(c)
	case w.ConsumerKeyCode != nil:
		c, ok := hidtaxonomy.ParseConsumerKeyCode(*w.ConsumerKeyCode)
		if !ok {
			return fmt.Errorf("eventvalue: unknown consumer_key_code %q", *w.ConsumerKeyCode)
		}
		*e = NewConsumerKeyCode(c)
	case w.AppleVendorKeyboardKeyCode != nil:
		c, ok := hidtaxonomy.ParseAppleVendorKeyboardKeyCode(*w.AppleVendorKeyboardKeyCode)
		if !ok {
			return fmt.Errorf("eventvalue: unknown apple_vendor_keyboard_key_code %q", *w.AppleVendorKeyboardKeyCode)
		}
		*e = NewAppleVendorKeyboardKeyCode(c)
	case w.AppleVendorTopCaseKeyCode != nil:
		c, ok := hidtaxonomy.ParseAppleVendorTopCaseKeyCode(*w.AppleVendorTopCaseKeyCode)
		if !ok {
			return fmt.Errorf("eventvalue: unknown apple_vendor_top_case_key_code %q", *w.AppleVendorTopCaseKeyCode)
		}
		*e = NewAppleVendorTopCaseKeyCode(c)
	case w.PointingButton != nil:
		c, ok := hidtaxonomy.ParsePointingButton(*w.PointingButton)
		if !ok {
			return fmt.Errorf("eventvalue: unknown pointing_button %q", *w.PointingButton)
		}
		*e = NewPointingButton(c)
	default:
		*e = KeyDownUpValuedEvent{Kind: SwitchKindNone}
	}
	return nil
}
