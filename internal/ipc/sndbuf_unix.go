//go:build unix

package ipc

import (
	"net"

	"golang.org/x/sys/unix"
)

// sendBufferSize reads the kernel send-buffer size (SO_SNDBUF) of conn's
// underlying socket, the same value macOS enforces the persistent
// no_buffer_space error against for an oversized datagram (§4.8). A client
// uses this to reject an over-large payload before ever attempting the
// write, rather than discovering it only after a failed send.
func sendBufferSize(conn *net.UnixConn) (int, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return 0, err
	}
	var size int
	var sockErr error
	err = raw.Control(func(fd uintptr) {
		size, sockErr = unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF)
	})
	if err != nil {
		return 0, err
	}
	return size, sockErr
}
