package manipulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pqrs-org/karabiner-go-core/internal/config"
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
)

func eventDef(k hidtaxonomy.KeyCode) eventvalue.EventDefinition {
	return eventvalue.EventDefinition{KeyDownUpValuedEvent: eventvalue.NewKeyCode(k)}
}

func TestBuildRuleSetOrdering(t *testing.T) {
	p := config.NewProfile("test")
	p.SimpleModifications = []config.ModificationPair{
		{From: eventDef(hidtaxonomy.KeyCodeA), To: eventDef(hidtaxonomy.KeyCodeB)},
	}
	p.FnFunctionKeys = p.FnFunctionKeys[:1]
	p.FnFunctionKeys[0] = config.ModificationPair{From: eventDef(hidtaxonomy.KeyCodeR), To: eventDef(hidtaxonomy.KeyCodeW)}

	blockParams := config.Parameters{config.ParamToIfAloneTimeoutMilliseconds: 250}
	p.ComplexModifications = config.ComplexModificationsBlock{
		Parameters: blockParams,
		Rules: []config.ComplexModificationRule{
			{
				Description: "swap escape and caps lock",
				Manipulators: []config.Manipulator{
					basicManipulator(hidtaxonomy.KeyCodeEscape, hidtaxonomy.KeyCodeCapsLock),
				},
			},
		},
	}

	rs := BuildRuleSet(&p)
	require.Len(t, rs.manipulators, 3)

	assert.Equal(t, eventDef(hidtaxonomy.KeyCodeA).KeyDownUpValuedEvent, rs.manipulators[0].From.Events[0].KeyDownUpValuedEvent)
	assert.Nil(t, rs.blockParams[0])

	assert.Equal(t, eventDef(hidtaxonomy.KeyCodeR).KeyDownUpValuedEvent, rs.manipulators[1].From.Events[0].KeyDownUpValuedEvent)
	assert.Nil(t, rs.blockParams[1])

	assert.Equal(t, eventDef(hidtaxonomy.KeyCodeEscape).KeyDownUpValuedEvent, rs.manipulators[2].From.Events[0].KeyDownUpValuedEvent)
	assert.Equal(t, config.Parameters(blockParams), rs.blockParams[2])
}

func TestBuildRuleSetEmptyProfile(t *testing.T) {
	p := config.Profile{}
	rs := BuildRuleSet(&p)
	assert.Empty(t, rs.manipulators)
	assert.Empty(t, rs.blockParams)
}
