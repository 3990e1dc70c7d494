package postevent

import (
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
	"github.com/pqrs-org/karabiner-go-core/internal/virtualhid"
)

// reportState is the mutable per-report-kind accumulator described in
// §4.5's "Report assembly": a modifier byte (only meaningful for the
// keyboard-interface kinds) and a set of currently-pressed raw 8-bit
// usages on that page.
type reportState struct {
	modifier uint8
	pressed  map[uint8]bool
}

func newReportState() *reportState {
	return &reportState{pressed: make(map[uint8]bool)}
}

func (s *reportState) snapshotKeys() []uint8 {
	keys := make([]uint8, 0, len(s.pressed))
	for u, down := range s.pressed {
		if down {
			keys = append(keys, u)
		}
	}
	return keys
}

// Assembler holds the four keyboard-interface accumulators of §4.5 and
// produces a snapshot KeyboardInputReport on each emplace.
type Assembler struct {
	keyboard       *reportState
	consumer       *reportState
	appleVendorTop *reportState
	appleVendorKbd *reportState
}

func NewAssembler() *Assembler {
	return &Assembler{
		keyboard:       newReportState(),
		consumer:       newReportState(),
		appleVendorTop: newReportState(),
		appleVendorKbd: newReportState(),
	}
}

func (a *Assembler) stateFor(page hidtaxonomy.UsagePage) (*reportState, virtualhid.KeyboardReportKind, bool) {
	switch page {
	case hidtaxonomy.UsagePageKeyboardOrKeypad:
		return a.keyboard, virtualhid.KeyboardReportKeyboard, true
	case hidtaxonomy.UsagePageConsumer:
		return a.consumer, virtualhid.KeyboardReportConsumer, true
	case hidtaxonomy.UsagePageAppleVendorTopCase:
		return a.appleVendorTop, virtualhid.KeyboardReportAppleVendorTopCase, true
	case hidtaxonomy.UsagePageAppleVendorKeyboard:
		return a.appleVendorKbd, virtualhid.KeyboardReportAppleVendorKeyboard, true
	default:
		return nil, 0, false
	}
}

// EmplaceKeyEvent mutates the accumulator for u's usage page per §4.5's
// emplace_back_key_event and returns a snapshot of the resulting report
// plus the queue Kind it belongs in. ok is false for a "none" event (no
// usage pair) or an unrecognised page.
func (a *Assembler) EmplaceKeyEvent(u hidtaxonomy.UsagePair, eventType eventvalue.SwitchEventType) (virtualhid.KeyboardInputReport, Kind, bool) {
	state, reportKind, ok := a.stateFor(u.Page)
	if !ok {
		return virtualhid.KeyboardInputReport{}, 0, false
	}

	raw := uint8(u.Usage)
	if hidtaxonomy.IsModifier(u) {
		bit := hidtaxonomy.MakeHIDReportModifier(hidtaxonomy.MakeModifierFlag(u))
		switch eventType {
		case eventvalue.SwitchEventTypeKeyDown:
			state.modifier |= bit
		case eventvalue.SwitchEventTypeKeyUp:
			state.modifier &^= bit
		}
	} else {
		switch eventType {
		case eventvalue.SwitchEventTypeKeyDown:
			state.pressed[raw] = true
		case eventvalue.SwitchEventTypeKeyUp:
			delete(state.pressed, raw)
		case eventvalue.SwitchEventTypeSingle:
			// momentary; reflected in the emitted snapshot but not held.
		}
	}

	report := virtualhid.KeyboardInputReport{
		Kind:     reportKind,
		Modifier: state.modifier,
		Keys:     state.snapshotKeys(),
	}
	kind := queueKindFor(reportKind)
	return report, kind, true
}

func queueKindFor(k virtualhid.KeyboardReportKind) Kind {
	switch k {
	case virtualhid.KeyboardReportKeyboard:
		return KindKeyboardInput
	case virtualhid.KeyboardReportConsumer:
		return KindConsumerInput
	case virtualhid.KeyboardReportAppleVendorTopCase:
		return KindAppleVendorTopCaseInput
	default:
		return KindAppleVendorKeyboardInput
	}
}

// AdjustmentClassFor derives the §4.5 adjustment class for a key event: a
// key_down or a modifier key_up floors to the spacing rule; a non-modifier
// key_up floors too unless it directly follows another non-modifier key_up
// (see adjustTimeStamp); "single" events never inflate.
func AdjustmentClassFor(u hidtaxonomy.UsagePair, eventType eventvalue.SwitchEventType) AdjustmentClass {
	if eventType == eventvalue.SwitchEventTypeSingle {
		return ClassSingle
	}
	isModifier := hidtaxonomy.IsModifier(u)
	if eventType == eventvalue.SwitchEventTypeKeyDown || isModifier {
		return ClassKeyDownOrModifierKeyUp
	}
	return ClassKeyUpNonModifier
}
