//go:build !unix

package ipc

import (
	"errors"
	"net"
)

// sendBufferSize has no portable non-unix implementation; callers treat
// the returned error as "size unknown, don't pre-check" rather than
// failing.
func sendBufferSize(conn *net.UnixConn) (int, error) {
	return 0, errors.New("ipc: sendBufferSize unsupported on this platform")
}
