package manipulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pqrs-org/karabiner-go-core/internal/clock"
	"github.com/pqrs-org/karabiner-go-core/internal/config"
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
)

func TestToIfHeldDownFiresAfterThreshold(t *testing.T) {
	man := basicManipulator(hidtaxonomy.KeyCodeA, hidtaxonomy.KeyCodeB)
	man.ToIfHeldDown = []config.ToEvent{{Kind: config.ToEventMomentarySwitch, MomentarySwitch: momentary(hidtaxonomy.KeyCodeW)}}
	man.Parameters = config.Parameters{config.ParamToIfHeldDownThresholdMilliseconds: 100}
	rs := &ruleSet{manipulators: []config.Manipulator{man}, blockParams: []config.Parameters{nil}}
	eng, out := newTestEngine(rs)

	eng.HandleInputEvent(keyDown(hidtaxonomy.KeyCodeA, 0), 0)
	entries := popAll(t, out)
	require.Len(t, entries, 1)
	assert.True(t, keyPressed(entries[0], hidtaxonomy.KeyCodeB))

	held := clock.AbsoluteTime(clock.FromMilliseconds(100))
	eng.Tick(held)
	entries = popAll(t, out)
	require.Len(t, entries, 2)
	assert.True(t, keyPressed(entries[0], hidtaxonomy.KeyCodeW))
	assert.False(t, keyPressed(entries[1], hidtaxonomy.KeyCodeW))
}

func TestToIfHeldDownCanceledByEarlyKeyUp(t *testing.T) {
	man := basicManipulator(hidtaxonomy.KeyCodeA, hidtaxonomy.KeyCodeB)
	man.ToIfHeldDown = []config.ToEvent{{Kind: config.ToEventMomentarySwitch, MomentarySwitch: momentary(hidtaxonomy.KeyCodeW)}}
	man.Parameters = config.Parameters{config.ParamToIfHeldDownThresholdMilliseconds: 100}
	rs := &ruleSet{manipulators: []config.Manipulator{man}, blockParams: []config.Parameters{nil}}
	eng, out := newTestEngine(rs)

	eng.HandleInputEvent(keyDown(hidtaxonomy.KeyCodeA, 0), 0)
	t50 := clock.AbsoluteTime(clock.FromMilliseconds(50))
	eng.HandleInputEvent(keyUp(hidtaxonomy.KeyCodeA, t50), t50)
	popAll(t, out)

	eng.Tick(clock.AbsoluteTime(clock.FromMilliseconds(100)))
	entries := popAll(t, out)
	assert.Empty(t, entries)
}

func TestToDelayedActionFiresAfterDelay(t *testing.T) {
	man := basicManipulator(hidtaxonomy.KeyCodeA, hidtaxonomy.KeyCodeB)
	man.ToDelayedAction = &config.DelayedActionEvents{
		ToInvoke: []config.ToEvent{{Kind: config.ToEventMomentarySwitch, MomentarySwitch: momentary(hidtaxonomy.KeyCodeW)}},
	}
	man.Parameters = config.Parameters{config.ParamToDelayedActionDelayMilliseconds: 100}
	rs := &ruleSet{manipulators: []config.Manipulator{man}, blockParams: []config.Parameters{nil}}
	eng, out := newTestEngine(rs)

	eng.HandleInputEvent(keyDown(hidtaxonomy.KeyCodeA, 0), 0)
	popAll(t, out)

	eng.Tick(clock.AbsoluteTime(clock.FromMilliseconds(100)))
	entries := popAll(t, out)
	require.Len(t, entries, 2)
	assert.True(t, keyPressed(entries[0], hidtaxonomy.KeyCodeW))
	assert.False(t, keyPressed(entries[1], hidtaxonomy.KeyCodeW))
}

func TestToDelayedActionCanceledByKeyUp(t *testing.T) {
	man := basicManipulator(hidtaxonomy.KeyCodeA, hidtaxonomy.KeyCodeB)
	man.ToDelayedAction = &config.DelayedActionEvents{
		ToInvoke: []config.ToEvent{{Kind: config.ToEventMomentarySwitch, MomentarySwitch: momentary(hidtaxonomy.KeyCodeW)}},
	}
	man.Parameters = config.Parameters{config.ParamToDelayedActionDelayMilliseconds: 100}
	rs := &ruleSet{manipulators: []config.Manipulator{man}, blockParams: []config.Parameters{nil}}
	eng, out := newTestEngine(rs)

	eng.HandleInputEvent(keyDown(hidtaxonomy.KeyCodeA, 0), 0)
	t50 := clock.AbsoluteTime(clock.FromMilliseconds(50))
	eng.HandleInputEvent(keyUp(hidtaxonomy.KeyCodeA, t50), t50)
	popAll(t, out)

	eng.Tick(clock.AbsoluteTime(clock.FromMilliseconds(100)))
	entries := popAll(t, out)
	assert.Empty(t, entries)
}

func TestSimultaneousKeyDownOrderStrictViolationReleasesUnmanipulated(t *testing.T) {
	man := config.Manipulator{
		Type: "basic",
		From: config.FromEvent{
			Events:       []eventvalue.EventDefinition{momentary(hidtaxonomy.KeyCodeJ), momentary(hidtaxonomy.KeyCodeK)},
			Simultaneous: true,
			Options:      config.SimultaneousOptions{KeyDownOrder: config.KeyOrderStrict},
		},
		To: []config.ToEvent{{Kind: config.ToEventMomentarySwitch, MomentarySwitch: momentary(hidtaxonomy.KeyCodeEscape)}},
	}
	rs := &ruleSet{manipulators: []config.Manipulator{man}, blockParams: []config.Parameters{nil}}
	eng, out := newTestEngine(rs)

	t0 := clock.AbsoluteTime(0)
	t10 := clock.AbsoluteTime(clock.FromMilliseconds(10))
	eng.HandleInputEvent(keyDown(hidtaxonomy.KeyCodeK, t0), t0)
	eng.HandleInputEvent(keyDown(hidtaxonomy.KeyCodeJ, t10), t10)

	entries := popAll(t, out)
	require.Len(t, entries, 2)
	assert.True(t, keyPressed(entries[0], hidtaxonomy.KeyCodeK))
	assert.Equal(t, t10, entries[0].Timestamp)
	assert.True(t, keyPressed(entries[1], hidtaxonomy.KeyCodeJ))
	// The second key_down is floored 5ms after the first by the post-event queue.
	assert.Equal(t, t10.Add(clock.FromMilliseconds(5)), entries[1].Timestamp)
	for _, e := range entries {
		assert.False(t, keyPressed(e, hidtaxonomy.KeyCodeEscape))
	}
}
