// Package timer is the cooperative, single-threaded scheduler of §4.7: a
// monotonic deadline queue keyed by opaque client ids, polled by
// async_invoke rather than driven by per-entry goroutines, so that C4/C5/C6
// can each own one without fighting over a shared mutex.
package timer

import "github.com/pqrs-org/karabiner-go-core/internal/clock"

// ClientID is the opaque handle returned by MakeClientID. Multiple
// scheduled entries may share a client id; AsyncErase cancels all of them
// at once.
type ClientID uint64

// entry is one scheduled callback.
type entry struct {
	client   ClientID
	when     clock.AbsoluteTime
	seq      uint64
	callback func(clock.AbsoluteTime)
}

// Scheduler is the cooperative scheduler of §4.7. It is not safe for
// concurrent use from multiple goroutines without external
// synchronization, matching the "each dispatcher owns its own scheduler"
// model of §5.
type Scheduler struct {
	entries  []entry
	nextID   ClientID
	nextSeq  uint64
}

func New() *Scheduler {
	return &Scheduler{}
}

// MakeClientID allocates a fresh opaque client id.
func (s *Scheduler) MakeClientID() ClientID {
	s.nextID++
	return s.nextID
}

// Enqueue schedules callback to fire at or after when. Multiple entries for
// the same client id are allowed (§4.7).
func (s *Scheduler) Enqueue(client ClientID, when clock.AbsoluteTime, callback func(clock.AbsoluteTime)) {
	s.entries = append(s.entries, entry{client: client, when: when, seq: s.nextSeq, callback: callback})
	s.nextSeq++
}

// AsyncErase removes every entry for client, then invokes doneCallback on
// the same scheduler "thread" (i.e. synchronously, from the caller of
// AsyncErase — this scheduler has no thread of its own). Cancellation is
// guaranteed to take effect before doneCallback is observed to run, since
// removal happens first and is unconditional (§5 "Cancellation").
func (s *Scheduler) AsyncErase(client ClientID, doneCallback func()) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.client != client {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	if doneCallback != nil {
		doneCallback()
	}
}

// Pending reports whether client has any outstanding scheduled entries.
func (s *Scheduler) Pending(client ClientID) bool {
	for _, e := range s.entries {
		if e.client == client {
			return true
		}
	}
	return false
}

// AsyncInvoke fires every entry whose deadline has passed (when <= now), in
// non-decreasing deadline order with ties broken by insertion order (§4.7).
// Fired entries are removed; entries whose deadline is still in the future
// remain queued.
func (s *Scheduler) AsyncInvoke(now clock.AbsoluteTime) {
	var due, pending []entry
	for _, e := range s.entries {
		if e.when.After(now) {
			pending = append(pending, e)
		} else {
			due = append(due, e)
		}
	}
	s.entries = pending

	sortDue(due)
	for _, e := range due {
		e.callback(now)
	}
}

// NextDeadline returns the earliest pending deadline, if any, so a caller's
// own event loop can compute how long to sleep before the next AsyncInvoke.
func (s *Scheduler) NextDeadline() (clock.AbsoluteTime, bool) {
	var (
		best  clock.AbsoluteTime
		found bool
	)
	for _, e := range s.entries {
		if !found || e.when.Before(best) {
			best, found = e.when, true
		}
	}
	return best, found
}

// sortDue performs a stable sort by (when, seq); a manual insertion sort is
// sufficient since the due set is small and this avoids importing sort for
// a handful of comparisons per tick in the common case, but falls back
// correctly for larger bursts too.
func sortDue(es []entry) {
	for i := 1; i < len(es); i++ {
		for j := i; j > 0 && less(es[j], es[j-1]); j-- {
			es[j], es[j-1] = es[j-1], es[j]
		}
	}
}

func less(a, b entry) bool {
	if a.when != b.when {
		return a.when.Before(b.when)
	}
	return a.seq < b.seq
}
