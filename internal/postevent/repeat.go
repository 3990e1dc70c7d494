package postevent

import (
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/hidtaxonomy"
)

// RepeatDetector tracks, per (page, usage), whether a key is currently held
// so callers that need to suppress conflicting events can ask "is this key
// currently repeating" (§4.5: "updated in parallel so that C5 can answer
// ... for callers that need to suppress conflicting events"). A key_down
// observed while already held is a repeat; a key_up clears held state.
type RepeatDetector struct {
	held map[hidtaxonomy.UsagePair]bool
}

func NewRepeatDetector() *RepeatDetector {
	return &RepeatDetector{held: make(map[hidtaxonomy.UsagePair]bool)}
}

// Observe updates held-state for u and returns whether this key_down is a
// repeat (the key was already held).
func (r *RepeatDetector) Observe(u hidtaxonomy.UsagePair, eventType eventvalue.SwitchEventType) (isRepeat bool) {
	switch eventType {
	case eventvalue.SwitchEventTypeKeyDown:
		isRepeat = r.held[u]
		r.held[u] = true
	case eventvalue.SwitchEventTypeKeyUp:
		delete(r.held, u)
	}
	return isRepeat
}

// IsRepeating reports the last-known held state for u without mutating it.
func (r *RepeatDetector) IsRepeating(u hidtaxonomy.UsagePair) bool {
	return r.held[u]
}
