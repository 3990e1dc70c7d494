package ipc

import (
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func socketPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func TestServerReceivesClientUserData(t *testing.T) {
	serverPath := socketPath(t, "server.sock")

	var mu sync.Mutex
	var got []byte
	var sender net.Addr
	received := make(chan struct{}, 1)

	srv := NewServer(serverPath)
	srv.Received = func(payload []byte, addr net.Addr) {
		mu.Lock()
		got = payload
		sender = addr
		mu.Unlock()
		received <- struct{}{}
	}
	require.NoError(t, srv.Start())
	defer srv.Close()

	cli := NewClient(serverPath)
	cli.BindPath = socketPath(t, "client.sock")
	cli.HeartbeatInterval = 0
	cli.SelfPingInterval = 0
	require.NoError(t, cli.Connect())
	defer cli.Close()

	processed := make(chan error, 1)
	cli.Send([]byte("hello"), func(err error) { processed <- err })

	select {
	case err := <-processed:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("entry was never processed")
	}

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("server never received the frame")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []byte("hello"), got)
	require.NotNil(t, sender)
}

func TestClientReceivesServerResponse(t *testing.T) {
	serverPath := socketPath(t, "server.sock")

	srv := NewServer(serverPath)
	srv.Received = func(payload []byte, addr net.Addr) {
		srv.SendResponse([]byte("ack:"+string(payload)), addr, nil)
	}
	require.NoError(t, srv.Start())
	defer srv.Close()

	cli := NewClient(serverPath)
	cli.BindPath = socketPath(t, "client.sock")
	cli.HeartbeatInterval = 0
	cli.SelfPingInterval = 0

	responded := make(chan []byte, 1)
	cli.Responded = func(payload []byte) { responded <- payload }
	require.NoError(t, cli.Connect())
	defer cli.Close()

	cli.Send([]byte("ping"), nil)

	select {
	case payload := <-responded:
		require.Equal(t, []byte("ack:ping"), payload)
	case <-time.After(2 * time.Second):
		t.Fatal("client never got a response")
	}
}

func TestServerHeartbeatDeadlineExceededFires(t *testing.T) {
	serverPath := socketPath(t, "server.sock")

	srv := NewServer(serverPath)
	srv.HeartbeatSweepInterval = 20 * time.Millisecond
	exceeded := make(chan struct{}, 1)
	srv.HeartbeatDeadlineExceeded = func(net.Addr) { exceeded <- struct{}{} }
	require.NoError(t, srv.Start())
	defer srv.Close()

	cli := NewClient(serverPath)
	cli.BindPath = socketPath(t, "client.sock")
	cli.HeartbeatInterval = 10 * time.Millisecond
	cli.HeartbeatDeadlineMilliseconds = 30
	cli.SelfPingInterval = 0
	require.NoError(t, cli.Connect())

	// One heartbeat announces a 30ms deadline; stop renewing it by closing
	// the client's heartbeat loop outright.
	time.Sleep(50 * time.Millisecond)
	cli.Close()

	select {
	case <-exceeded:
	case <-time.After(2 * time.Second):
		t.Fatal("heartbeat deadline never fired")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	serverPath := socketPath(t, "server.sock")

	srv := NewServer(serverPath)
	require.NoError(t, srv.Start())
	require.NoError(t, srv.Close())
	require.NoError(t, srv.Close())

	cli := NewClient(serverPath + "-gone")
	cli.ReconnectInterval = 0
	_ = cli.Connect() // expected to fail; server path doesn't exist
	require.NoError(t, cli.Close())
	require.NoError(t, cli.Close())
}

func TestProcessedFiresExactlyOnceOnDisconnect(t *testing.T) {
	serverPath := socketPath(t, "server.sock")

	srv := NewServer(serverPath)
	require.NoError(t, srv.Start())

	cli := NewClient(serverPath)
	cli.HeartbeatInterval = 0
	cli.SelfPingInterval = 0
	cli.ReconnectInterval = 0
	require.NoError(t, cli.Connect())

	var callCount int
	var mu sync.Mutex
	done := make(chan struct{}, 1)
	cli.Send([]byte("x"), func(err error) {
		mu.Lock()
		callCount++
		mu.Unlock()
		done <- struct{}{}
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("entry was never processed")
	}

	srv.Close()
	cli.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 1, callCount)
}
