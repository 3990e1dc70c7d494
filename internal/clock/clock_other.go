//go:build !unix

package clock

import "time"

// reference is captured once at process start; time.Since(reference) reads
// Go's internal monotonic clock reading (time.Time retains one until an
// arithmetic operation strips it), so this stays monotonic even though
// UnixNano() alone would not.
var reference = time.Now()

// monotonicNow falls back to time.Now's monotonic reading on platforms
// golang.org/x/sys/unix does not cover (e.g. windows, where this daemon's
// host process would use a different opaque virtual-HID transport anyway).
func monotonicNow() AbsoluteTime {
	return AbsoluteTime(time.Since(reference))
}
