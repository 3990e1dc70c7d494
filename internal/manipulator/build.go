package manipulator

import (
	"github.com/pqrs-org/karabiner-go-core/internal/config"
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
)

// asManipulator turns a simple_modifications / fn_function_keys entry into
// the basic manipulator it is semantically equivalent to: an unconditional
// one-event-in, one-event-out rewrite with no modifier requirements.
func asManipulator(pair config.ModificationPair) config.Manipulator {
	return config.Manipulator{
		Type: "basic",
		From: config.FromEvent{Events: []eventvalue.EventDefinition{pair.From}},
		To: []config.ToEvent{{
			Kind:            config.ToEventMomentarySwitch,
			MomentarySwitch: pair.To,
		}},
	}
}

// ruleSet is a flattened, evaluation-ordered view of a profile: one entry
// per manipulator plus the complex-modification block's Parameters it
// falls back to (nil for manipulators derived from simple modifications,
// which have no enclosing block).
type ruleSet struct {
	manipulators []config.Manipulator
	blockParams  []config.Parameters
}

// BuildRuleSet flattens a profile's simple modifications, fn-function-key
// overrides, and complex-modification rules into the single ordered list
// the engine evaluates per input event (§4.3, §4.4). Simple modifications
// are evaluated first, matching the real pipeline's "simple rewrites apply
// before complex rules" ordering.
func BuildRuleSet(p *config.Profile) *ruleSet {
	rs := &ruleSet{}
	for _, pair := range p.SimpleModifications {
		rs.manipulators = append(rs.manipulators, asManipulator(pair))
		rs.blockParams = append(rs.blockParams, nil)
	}
	for _, pair := range p.FnFunctionKeys {
		rs.manipulators = append(rs.manipulators, asManipulator(pair))
		rs.blockParams = append(rs.blockParams, nil)
	}
	blockParams := p.ComplexModifications.Parameters
	for _, rule := range p.ComplexModifications.Rules {
		for _, m := range rule.Manipulators {
			rs.manipulators = append(rs.manipulators, m)
			rs.blockParams = append(rs.blockParams, blockParams)
		}
	}
	return rs
}
