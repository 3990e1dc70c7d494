// Package ipc is the local datagram IPC of §4.8 (C8): two Unix-domain
// datagram-socket endpoints, a Server and a Client, exchanging framed
// payloads with a shared back-pressure and reconnect policy.
package ipc

import "fmt"

// FrameType is the single leading byte every datagram begins with (§4.8).
type FrameType byte

const (
	// FrameHeartbeat doubles as the server's connectivity probe
	// ("server_check") and the client's periodic liveness announcement.
	FrameHeartbeat FrameType = 0x00
	// FrameUserData carries an application-layer payload, dispatched to
	// the receiver's Received callback.
	FrameUserData FrameType = 0x01
	// FrameResponse carries a reply to a previously received user_data
	// frame.
	FrameResponse FrameType = 0x02
)

func (t FrameType) String() string {
	switch t {
	case FrameHeartbeat:
		return "heartbeat"
	case FrameUserData:
		return "user_data"
	case FrameResponse:
		return "response"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(t))
	}
}

// Encode prepends t to payload, producing one complete datagram. The
// returned slice is newly allocated; payload is not retained.
func Encode(t FrameType, payload []byte) []byte {
	out := make([]byte, 1+len(payload))
	out[0] = byte(t)
	copy(out[1:], payload)
	return out
}

// Decode splits a received datagram into its type byte and payload. An
// empty datagram is invalid: every frame carries at least the type byte.
func Decode(datagram []byte) (FrameType, []byte, error) {
	if len(datagram) == 0 {
		return 0, nil, fmt.Errorf("ipc: empty datagram")
	}
	return FrameType(datagram[0]), datagram[1:], nil
}

// heartbeatPayload and parseHeartbeatPayload encode the "next expected
// heartbeat deadline in milliseconds" (0 means no deadline) carried by a
// client's periodic heartbeat frame, big-endian uint32.
func heartbeatPayload(deadlineMilliseconds uint32) []byte {
	return []byte{
		byte(deadlineMilliseconds >> 24),
		byte(deadlineMilliseconds >> 16),
		byte(deadlineMilliseconds >> 8),
		byte(deadlineMilliseconds),
	}
}

func parseHeartbeatPayload(payload []byte) (uint32, bool) {
	if len(payload) != 4 {
		return 0, false
	}
	return uint32(payload[0])<<24 | uint32(payload[1])<<16 | uint32(payload[2])<<8 | uint32(payload[3]), true
}
