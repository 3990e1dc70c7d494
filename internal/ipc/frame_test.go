package ipc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	frame := Encode(FrameUserData, []byte("hello"))
	require.Equal(t, byte(0x01), frame[0])

	typ, payload, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, FrameUserData, typ)
	assert.Equal(t, []byte("hello"), payload)
}

func TestDecodeEmptyDatagramErrors(t *testing.T) {
	_, _, err := Decode(nil)
	assert.Error(t, err)
}

func TestDecodeEmptyPayloadOK(t *testing.T) {
	frame := Encode(FrameHeartbeat, nil)
	typ, payload, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, FrameHeartbeat, typ)
	assert.Empty(t, payload)
}

func TestHeartbeatPayloadRoundTrip(t *testing.T) {
	for _, deadline := range []uint32{0, 1, 500, 1 << 20, 0xFFFFFFFF} {
		payload := heartbeatPayload(deadline)
		got, ok := parseHeartbeatPayload(payload)
		require.True(t, ok)
		assert.Equal(t, deadline, got)
	}
}

func TestParseHeartbeatPayloadRejectsWrongLength(t *testing.T) {
	_, ok := parseHeartbeatPayload([]byte{1, 2, 3})
	assert.False(t, ok)

	_, ok = parseHeartbeatPayload(nil)
	assert.False(t, ok)
}

func TestFrameTypeString(t *testing.T) {
	assert.Equal(t, "heartbeat", FrameHeartbeat.String())
	assert.Equal(t, "user_data", FrameUserData.String())
	assert.Equal(t, "response", FrameResponse.String())
	assert.Contains(t, FrameType(0x7f).String(), "unknown")
}
