package manipulator

import (
	"regexp"

	"github.com/pqrs-org/karabiner-go-core/internal/config"
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
)

func matchesAny(patterns []string, s string) bool {
	for _, p := range patterns {
		if re, err := regexp.Compile(p); err == nil && re.MatchString(s) {
			return true
		}
	}
	return false
}

func regexMatches(pattern, s string) bool {
	re, err := regexp.Compile(pattern)
	return err == nil && re.MatchString(s)
}

func matchesInputSource(specs []eventvalue.InputSourceSpecifier, language, id, mode string) bool {
	if len(specs) == 0 {
		return false
	}
	for _, s := range specs {
		if s.LanguageRegex != nil && !regexMatches(*s.LanguageRegex, language) {
			continue
		}
		if s.InputSourceIDRegex != nil && !regexMatches(*s.InputSourceIDRegex, id) {
			continue
		}
		if s.InputModeIDRegex != nil && !regexMatches(*s.InputModeIDRegex, mode) {
			continue
		}
		return true
	}
	return false
}

func deviceMatches(ids []config.DeviceIdentifiers, descriptions []string, env Environment) bool {
	for _, id := range ids {
		if id.VendorID != 0 && id.VendorID != env.DeviceIdentifiers.VendorID {
			continue
		}
		if id.ProductID != 0 && id.ProductID != env.DeviceIdentifiers.ProductID {
			continue
		}
		if id.IsKeyboard && !env.DeviceIdentifiers.IsKeyboard {
			continue
		}
		if id.IsPointingDevice && !env.DeviceIdentifiers.IsPointingDevice {
			continue
		}
		return true
	}
	return matchesAny(descriptions, env.DeviceDescription)
}

// EvaluateConditions reports whether every condition in cs is satisfied.
// Conditions are conjunctive and short-circuit on the first failure (§4.4).
func EvaluateConditions(cs []config.Condition, env Environment, vars *eventvalue.VariableSet, eventChanged bool) bool {
	for _, c := range cs {
		if !evaluateCondition(c, env, vars, eventChanged) {
			return false
		}
	}
	return true
}

func evaluateCondition(c config.Condition, env Environment, vars *eventvalue.VariableSet, eventChanged bool) bool {
	switch c.Type {
	case config.ConditionFrontmostApplicationIf:
		return matchesAny(c.BundleIdentifiers, env.FrontmostBundleID) || matchesAny(c.FilePaths, env.FrontmostFilePath)
	case config.ConditionFrontmostApplicationUnless:
		return !(matchesAny(c.BundleIdentifiers, env.FrontmostBundleID) || matchesAny(c.FilePaths, env.FrontmostFilePath))
	case config.ConditionDeviceIf:
		return deviceMatches(c.Identifiers, c.Descriptions, env)
	case config.ConditionDeviceUnless:
		return !deviceMatches(c.Identifiers, c.Descriptions, env)
	case config.ConditionVariableIf:
		return vars.Get(c.VariableName) == c.VariableValue
	case config.ConditionInputSourceIf:
		return matchesInputSource(c.InputSources, env.InputSourceLanguage, env.InputSourceID, env.InputModeID)
	case config.ConditionInputSourceUnless:
		return !matchesInputSource(c.InputSources, env.InputSourceLanguage, env.InputSourceID, env.InputModeID)
	case config.ConditionKeyboardTypeIf:
		for _, t := range c.KeyboardTypes {
			if t == env.KeyboardType {
				return true
			}
		}
		return false
	case config.ConditionEventChangedIf:
		return eventChanged
	default:
		return true
	}
}
