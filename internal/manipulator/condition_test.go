package manipulator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pqrs-org/karabiner-go-core/internal/config"
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
)

func TestEvaluateConditionsFrontmostApplication(t *testing.T) {
	env := Environment{FrontmostBundleID: "com.apple.Terminal"}
	var vars eventvalue.VariableSet

	ifCond := []config.Condition{{Type: config.ConditionFrontmostApplicationIf, BundleIdentifiers: []string{"^com\\.apple\\.Terminal$"}}}
	assert.True(t, EvaluateConditions(ifCond, env, &vars, false))

	unlessCond := []config.Condition{{Type: config.ConditionFrontmostApplicationUnless, BundleIdentifiers: []string{"^com\\.apple\\.Terminal$"}}}
	assert.False(t, EvaluateConditions(unlessCond, env, &vars, false))

	other := Environment{FrontmostBundleID: "com.apple.Safari"}
	assert.False(t, EvaluateConditions(ifCond, other, &vars, false))
	assert.True(t, EvaluateConditions(unlessCond, other, &vars, false))
}

func TestEvaluateConditionsDevice(t *testing.T) {
	env := Environment{DeviceIdentifiers: config.DeviceIdentifiers{VendorID: 1452, ProductID: 834, IsKeyboard: true}}
	var vars eventvalue.VariableSet

	matching := []config.Condition{{Type: config.ConditionDeviceIf, Identifiers: []config.DeviceIdentifiers{{VendorID: 1452, ProductID: 834}}}}
	assert.True(t, EvaluateConditions(matching, env, &vars, false))

	nonMatching := []config.Condition{{Type: config.ConditionDeviceIf, Identifiers: []config.DeviceIdentifiers{{VendorID: 99, ProductID: 99}}}}
	assert.False(t, EvaluateConditions(nonMatching, env, &vars, false))

	unless := []config.Condition{{Type: config.ConditionDeviceUnless, Identifiers: []config.DeviceIdentifiers{{VendorID: 1452, ProductID: 834}}}}
	assert.False(t, EvaluateConditions(unless, env, &vars, false))
}

func TestEvaluateConditionsVariable(t *testing.T) {
	env := Environment{}
	var vars eventvalue.VariableSet
	vars.Set("mode1", 1)

	matches := []config.Condition{{Type: config.ConditionVariableIf, VariableName: "mode1", VariableValue: 1}}
	assert.True(t, EvaluateConditions(matches, env, &vars, false))

	mismatch := []config.Condition{{Type: config.ConditionVariableIf, VariableName: "mode1", VariableValue: 0}}
	assert.False(t, EvaluateConditions(mismatch, env, &vars, false))

	unset := []config.Condition{{Type: config.ConditionVariableIf, VariableName: "mode2", VariableValue: 0}}
	assert.True(t, EvaluateConditions(unset, env, &vars, false))
}

func TestEvaluateConditionsInputSource(t *testing.T) {
	env := Environment{InputSourceLanguage: "en", InputSourceID: "com.apple.keylayout.US"}
	var vars eventvalue.VariableSet

	lang := "^en$"
	ifCond := []config.Condition{{Type: config.ConditionInputSourceIf, InputSources: []eventvalue.InputSourceSpecifier{{LanguageRegex: &lang}}}}
	assert.True(t, EvaluateConditions(ifCond, env, &vars, false))

	other := "^fr$"
	unlessCond := []config.Condition{{Type: config.ConditionInputSourceUnless, InputSources: []eventvalue.InputSourceSpecifier{{LanguageRegex: &other}}}}
	assert.True(t, EvaluateConditions(unlessCond, env, &vars, false))
}

func TestEvaluateConditionsKeyboardTypeAndEventChanged(t *testing.T) {
	env := Environment{KeyboardType: "ansi"}
	var vars eventvalue.VariableSet

	kt := []config.Condition{{Type: config.ConditionKeyboardTypeIf, KeyboardTypes: []string{"ansi"}}}
	assert.True(t, EvaluateConditions(kt, env, &vars, false))

	ktMiss := []config.Condition{{Type: config.ConditionKeyboardTypeIf, KeyboardTypes: []string{"iso"}}}
	assert.False(t, EvaluateConditions(ktMiss, env, &vars, false))

	ec := []config.Condition{{Type: config.ConditionEventChangedIf}}
	assert.True(t, EvaluateConditions(ec, env, &vars, true))
	assert.False(t, EvaluateConditions(ec, env, &vars, false))
}

func TestEvaluateConditionsShortCircuit(t *testing.T) {
	env := Environment{FrontmostBundleID: "com.apple.Terminal"}
	var vars eventvalue.VariableSet
	vars.Set("mode1", 1)

	cs := []config.Condition{
		{Type: config.ConditionFrontmostApplicationIf, BundleIdentifiers: []string{"^com\\.apple\\.Terminal$"}},
		{Type: config.ConditionVariableIf, VariableName: "mode1", VariableValue: 0},
	}
	assert.False(t, EvaluateConditions(cs, env, &vars, false))
}
