package config

import (
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
)

var (
	keyF1  = hidtaxonomy.KeyCodeF1
	keyF2  = hidtaxonomy.KeyCodeF2
	keyF3  = hidtaxonomy.KeyCodeF3
	keyF4  = hidtaxonomy.KeyCodeF4
	keyF5  = hidtaxonomy.KeyCodeF5
	keyF6  = hidtaxonomy.KeyCodeF6
	keyF7  = hidtaxonomy.KeyCodeF7
	keyF8  = hidtaxonomy.KeyCodeF8
	keyF9  = hidtaxonomy.KeyCodeF9
	keyF10 = hidtaxonomy.KeyCodeF10
	keyF11 = hidtaxonomy.KeyCodeF11
	keyF12 = hidtaxonomy.KeyCodeF12
)

func fnPair(key hidtaxonomy.KeyCode, to eventvalue.EventDefinition) ModificationPair {
	return ModificationPair{
		From: eventvalue.EventDefinition{KeyDownUpValuedEvent: eventvalue.NewKeyCode(key)},
		To:   to,
	}
}

func none() eventvalue.EventDefinition {
	return eventvalue.EventDefinition{}
}

func consumer(k hidtaxonomy.ConsumerKeyCode) eventvalue.EventDefinition {
	return eventvalue.EventDefinition{KeyDownUpValuedEvent: eventvalue.NewConsumerKeyCode(k)}
}

func consumerDisplayBrightnessDecrement() eventvalue.EventDefinition {
	return consumer(hidtaxonomy.ConsumerKeyCodeDisplayBrightnessDecrement)
}
func consumerDisplayBrightnessIncrement() eventvalue.EventDefinition {
	return consumer(hidtaxonomy.ConsumerKeyCodeDisplayBrightnessIncrement)
}
func consumerRewind() eventvalue.EventDefinition      { return consumer(hidtaxonomy.ConsumerKeyCodeRewind) }
func consumerPlayOrPause() eventvalue.EventDefinition { return consumer(hidtaxonomy.ConsumerKeyCodePlayOrPause) }
func consumerFastForward() eventvalue.EventDefinition { return consumer(hidtaxonomy.ConsumerKeyCodeFastForward) }
func consumerMute() eventvalue.EventDefinition        { return consumer(hidtaxonomy.ConsumerKeyCodeMute) }
func consumerVolumeDecrement() eventvalue.EventDefinition {
	return consumer(hidtaxonomy.ConsumerKeyCodeVolumeDecrement)
}
func consumerVolumeIncrement() eventvalue.EventDefinition {
	return consumer(hidtaxonomy.ConsumerKeyCodeVolumeIncrement)
}
