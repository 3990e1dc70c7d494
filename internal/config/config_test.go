package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampParameterValue(t *testing.T) {
	assert.Equal(t, 0, ClampParameterValue(ParamSimultaneousThresholdMilliseconds, -5))
	assert.Equal(t, 1000, ClampParameterValue(ParamSimultaneousThresholdMilliseconds, 5000))
	assert.Equal(t, 50, ClampParameterValue(ParamSimultaneousThresholdMilliseconds, 50))
	assert.Equal(t, 1, ClampParameterValue(ParamMouseMotionToScrollSpeed, 0))
}

func TestParametersValueFallsThroughChain(t *testing.T) {
	rule := Parameters{ParamToIfAloneTimeoutMilliseconds: 1500}
	block := Parameters{ParamToIfAloneTimeoutMilliseconds: 2000, ParamSimultaneousThresholdMilliseconds: 10}

	assert.Equal(t, 1500, rule.Value(ParamToIfAloneTimeoutMilliseconds, block))
	assert.Equal(t, 10, Parameters{}.Value(ParamSimultaneousThresholdMilliseconds, block))
	assert.Equal(t, 500, Parameters{}.Value(ParamToIfHeldDownThresholdMilliseconds, nil))
}

func TestMinMaxParameterValue(t *testing.T) {
	sets := []Parameters{
		{ParamSimultaneousThresholdMilliseconds: 30},
		{ParamSimultaneousThresholdMilliseconds: 80},
		{ParamToIfAloneTimeoutMilliseconds: 900},
	}
	min, max, found := MinMaxParameterValue(ParamSimultaneousThresholdMilliseconds, sets...)
	require.True(t, found)
	assert.Equal(t, 30, min)
	assert.Equal(t, 80, max)

	_, _, found = MinMaxParameterValue(ParamMouseMotionToScrollSpeed, sets...)
	assert.False(t, found)
}

func TestLegacySimpleModificationsDecode(t *testing.T) {
	raw := []byte(`{"caps_lock":"delete_or_backspace"}`)
	pairs, err := decodeSimpleModifications(raw)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	u, ok := pairs[0].From.UsagePair()
	require.True(t, ok)
	assert.Equal(t, hidtaxonomy.UsagePageKeyboardOrKeypad, u.Page)
}

func TestCurrentSimpleModificationsDecode(t *testing.T) {
	raw := []byte(`[{"from":{"key_code":"caps_lock"},"to":{"key_code":"left_control"}}]`)
	pairs, err := decodeSimpleModifications(raw)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, eventvalue.NewKeyCode(hidtaxonomy.KeyCodeLeftControl), pairs[0].To.KeyDownUpValuedEvent)
}

func TestProfileFnFunctionKeyReplace(t *testing.T) {
	p := NewProfile("test")
	key := eventvalue.EventDefinition{KeyDownUpValuedEvent: eventvalue.NewKeyCode(hidtaxonomy.KeyCodeF1)}
	to := eventvalue.EventDefinition{KeyDownUpValuedEvent: eventvalue.NewKeyCode(hidtaxonomy.KeyCodeEscape)}
	ok := p.ReplaceFnFunctionKey(key, to)
	require.True(t, ok)
	assert.Equal(t, to.KeyDownUpValuedEvent, p.FnFunctionKeys[0].To.KeyDownUpValuedEvent)
	assert.Len(t, p.FnFunctionKeys, 12)
}

func TestProfileDeviceOverrideCreatesOnFirstSet(t *testing.T) {
	p := NewProfile("test")
	id := DeviceIdentifiers{VendorID: 1452, ProductID: 834, IsKeyboard: true}

	_, ok := p.Device(id)
	assert.False(t, ok)

	p.SetDevice(id, func(d *DeviceOverride) { d.Ignore = true })
	assert.Len(t, p.Devices, 1)

	dev, ok := p.Device(id)
	require.True(t, ok)
	assert.True(t, dev.Ignore)

	p.SetDevice(id, func(d *DeviceOverride) { d.ManipulateCapsLockLed = true })
	assert.Len(t, p.Devices, 1, "second set on the same identifier must not create a new entry")
}

func TestSimpleModificationMutators(t *testing.T) {
	p := NewProfile("test")
	a := ModificationPair{From: eventvalue.EventDefinition{KeyDownUpValuedEvent: eventvalue.NewKeyCode(hidtaxonomy.KeyCodeA)}}
	b := ModificationPair{From: eventvalue.EventDefinition{KeyDownUpValuedEvent: eventvalue.NewKeyCode(hidtaxonomy.KeyCodeB)}}
	p.PushBackSimpleModification(a)
	p.PushBackSimpleModification(b)
	require.True(t, p.SwapSimpleModifications(0, 1))
	assert.Equal(t, b, p.SimpleModifications[0])
	require.True(t, p.EraseSimpleModification(0))
	assert.Len(t, p.SimpleModifications, 1)
	assert.Equal(t, a, p.SimpleModifications[0])
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.False(t, s.IsLoaded)
	assert.Len(t, s.Profiles, 1)
}

func TestLoadInvalidJSONFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "karabiner.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	s := Load(path)
	assert.False(t, s.IsLoaded)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "karabiner.json")

	s := DefaultSet()
	s.Profiles[0].PushBackSimpleModification(ModificationPair{
		From: eventvalue.EventDefinition{KeyDownUpValuedEvent: eventvalue.NewKeyCode(hidtaxonomy.KeyCodeCapsLock)},
		To:   eventvalue.EventDefinition{KeyDownUpValuedEvent: eventvalue.NewKeyCode(hidtaxonomy.KeyCodeEscape)},
	})
	require.NoError(t, Save(s, path))

	loaded := Load(path)
	require.True(t, loaded.IsLoaded)
	require.Len(t, loaded.Profiles, 1)
	require.Len(t, loaded.Profiles[0].SimpleModifications, 1)
	assert.Equal(t, hidtaxonomy.KeyCodeEscape,
		hidtaxonomy.KeyCode(loaded.Profiles[0].SimpleModifications[0].To.Code))
}

func TestValidateDocumentRejectsWrongShape(t *testing.T) {
	err := ValidateDocument([]byte(`{"profiles": "not-an-array"}`))
	assert.Error(t, err)
}

func TestSelectProfileExclusive(t *testing.T) {
	s := &Set{Profiles: []Profile{NewProfile("a"), NewProfile("b")}}
	s.Profiles[0].Selected = true
	require.True(t, s.SelectProfile("b"))
	assert.False(t, s.Profiles[0].Selected)
	assert.True(t, s.Profiles[1].Selected)
}

func TestManipulatorJSONRoundTrip(t *testing.T) {
	m := Manipulator{
		Type: "basic",
		From: FromEvent{Events: []eventvalue.EventDefinition{
			{KeyDownUpValuedEvent: eventvalue.NewKeyCode(hidtaxonomy.KeyCodeRightCommand)},
		}},
		To: []ToEvent{{Kind: ToEventMomentarySwitch, MomentarySwitch: eventvalue.EventDefinition{
			KeyDownUpValuedEvent: eventvalue.NewKeyCode(hidtaxonomy.KeyCodeRightCommand),
		}}},
		ToIfAlone: []ToEvent{{Kind: ToEventMomentarySwitch, MomentarySwitch: eventvalue.EventDefinition{
			KeyDownUpValuedEvent: eventvalue.NewKeyCode(hidtaxonomy.KeyCodeReturnOrEnter),
		}}},
		Parameters: Parameters{ParamToIfAloneTimeoutMilliseconds: 1000},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Manipulator
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m.From.Events[0].KeyDownUpValuedEvent, decoded.From.Events[0].KeyDownUpValuedEvent)
	require.Len(t, decoded.ToIfAlone, 1)
	assert.Equal(t, hidtaxonomy.KeyCodeReturnOrEnter, hidtaxonomy.KeyCode(decoded.ToIfAlone[0].MomentarySwitch.Code))
	assert.Equal(t, 1000, decoded.Parameters[ParamToIfAloneTimeoutMilliseconds])
}
