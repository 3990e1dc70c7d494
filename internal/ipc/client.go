package ipc

import (
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pqrs-org/karabiner-go-core/internal/klog"
)

// DefaultReconnectInterval is how long the client waits before retrying a
// failed connect (§4.8 "clients have an optional reconnect interval").
const DefaultReconnectInterval = 1 * time.Second

// DefaultHeartbeatInterval is how often a connected client announces
// itself with a heartbeat frame.
const DefaultHeartbeatInterval = 1 * time.Second

// DefaultSelfPingInterval is how often a client with its own bound socket
// pings itself as a liveness self-check (§4.8).
const DefaultSelfPingInterval = 1 * time.Second

// Client is the §4.8 client role: connects to a server's Unix datagram
// socket path, optionally binds its own path for bidirectional traffic,
// queues outgoing user_data, and periodically announces a heartbeat
// carrying its next-expected-heartbeat deadline. All callbacks fire on the
// client's own goroutine (its dispatcher, per §5), never concurrently with
// each other.
type Client struct {
	ServerPath string
	// BindPath, if set, gives this client its own datagram socket
	// (enabling the server to address replies to it, and enabling the
	// self-ping liveness check below).
	BindPath string

	ReconnectInterval             time.Duration
	HeartbeatInterval             time.Duration
	HeartbeatDeadlineMilliseconds int
	SelfPingInterval              time.Duration

	// Connected fires once a connect attempt succeeds.
	Connected func()
	// ConnectFailed fires when a connect attempt fails; a reconnect is
	// scheduled after ReconnectInterval when that interval is positive.
	ConnectFailed func(error)
	// Disconnected fires when a previously connected client loses its
	// connection (read error, self-ping failure, or a send-side "other"
	// error); a reconnect is scheduled after ReconnectInterval when that
	// interval is positive.
	Disconnected func()
	// Received fires once per user_data frame from the server.
	Received func(payload []byte)
	// Responded fires once per response frame from the server.
	Responded func(payload []byte)

	log zerolog.Logger

	mu        sync.Mutex
	conn      *net.UnixConn
	connected bool
	closing   bool

	queue     *sendQueue
	stop      chan struct{}
	closeOnce sync.Once
}

// NewClient returns a Client targeting serverPath, with defaults filled
// in. Call Connect to dial.
func NewClient(serverPath string) *Client {
	return &Client{
		ServerPath:        serverPath,
		ReconnectInterval: DefaultReconnectInterval,
		HeartbeatInterval: DefaultHeartbeatInterval,
		SelfPingInterval:  DefaultSelfPingInterval,
		log:               klog.New("ipc.client"),
		queue:             newSendQueue(),
		stop:              make(chan struct{}),
	}
}

// Connect dials the server. On success it launches the read, write, and
// (if configured) heartbeat and self-ping loops. On failure it fires
// ConnectFailed and schedules a retry after ReconnectInterval.
func (c *Client) Connect() error {
	raddr := &net.UnixAddr{Name: c.ServerPath, Net: "unixgram"}
	var laddr *net.UnixAddr
	if c.BindPath != "" {
		laddr = &net.UnixAddr{Name: c.BindPath, Net: "unixgram"}
	}

	conn, err := net.DialUnix("unixgram", laddr, raddr)
	if err != nil {
		c.log.Warn().Err(err).Str("server", c.ServerPath).Msg("connect failed")
		if c.ConnectFailed != nil {
			c.ConnectFailed(err)
		}
		c.scheduleReconnect()
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.closing = false
	c.mu.Unlock()

	if c.Connected != nil {
		c.Connected()
	}

	go c.readLoop(conn)
	go c.writeLoop(conn)
	if c.HeartbeatInterval > 0 {
		go c.heartbeatLoop()
	}
	if c.BindPath != "" && c.SelfPingInterval > 0 {
		go c.selfPingLoop()
	}
	return nil
}

func (c *Client) scheduleReconnect() {
	if c.ReconnectInterval <= 0 {
		return
	}
	time.AfterFunc(c.ReconnectInterval, func() {
		c.mu.Lock()
		closing := c.closing
		c.mu.Unlock()
		if closing {
			return
		}
		c.Connect()
	})
}

func (c *Client) readLoop(conn *net.UnixConn) {
	buf := make([]byte, maxDatagramSize)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			c.handleDisconnect()
			return
		}
		frameType, payload, err := Decode(buf[:n])
		if err != nil {
			c.log.Warn().Err(err).Msg("malformed datagram")
			continue
		}
		switch frameType {
		case FrameUserData:
			if c.Received != nil {
				c.Received(append([]byte(nil), payload...))
			}
		case FrameResponse:
			if c.Responded != nil {
				c.Responded(append([]byte(nil), payload...))
			}
		case FrameHeartbeat:
			// A server_check probe from the server side; no application
			// action is defined for a client receiving one (§4.8).
		}
	}
}

func (c *Client) handleDisconnect() {
	c.mu.Lock()
	wasConnected := c.connected
	closing := c.closing
	c.connected = false
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	c.queue.drop(net.ErrClosed)

	if !wasConnected {
		return
	}
	if c.Disconnected != nil {
		c.Disconnected()
	}
	if !closing {
		c.scheduleReconnect()
	}
}

func (c *Client) heartbeatLoop() {
	ticker := time.NewTicker(c.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			payload := heartbeatPayload(uint32(c.HeartbeatDeadlineMilliseconds))
			c.queue.push(Entry{Payload: Encode(FrameHeartbeat, payload)})
		}
	}
}

// selfPingLoop periodically writes a tiny heartbeat frame to the client's
// own bound socket as a liveness self-check: a local peer-to-self
// datagram failing means the client's own socket is no longer usable,
// which is treated the same as a connection failure (§4.8).
func (c *Client) selfPingLoop() {
	ticker := time.NewTicker(c.SelfPingInterval)
	defer ticker.Stop()
	addr := &net.UnixAddr{Name: c.BindPath, Net: "unixgram"}
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			conn, err := net.DialUnix("unixgram", nil, addr)
			if err != nil {
				c.log.Warn().Err(err).Msg("self-ping failed")
				c.handleDisconnect()
				return
			}
			_, err = conn.Write(Encode(FrameHeartbeat, heartbeatPayload(0)))
			conn.Close()
			if err != nil {
				c.log.Warn().Err(err).Msg("self-ping failed")
				c.handleDisconnect()
				return
			}
		}
	}
}

// Send queues a user_data frame; processed, if non-nil, is invoked
// exactly once once the entry has left the queue by any path. A frame
// already larger than the kernel's send buffer is dropped immediately
// (§4.8's message_size policy) rather than queued for a write guaranteed
// to fail.
func (c *Client) Send(payload []byte, processed func(error)) {
	frame := Encode(FrameUserData, payload)

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn != nil {
		if limit, err := sendBufferSize(conn); err == nil && len(frame) > limit {
			c.log.Warn().Int("size", len(frame)).Int("limit", limit).Msg("dropping oversized datagram")
			if processed != nil {
				processed(errMessageSizeExceeded)
			}
			return
		}
	}

	c.queue.push(Entry{Payload: frame, Processed: processed})
}

func (c *Client) writeLoop(conn *net.UnixConn) {
	for {
		e, ok := c.queue.pop()
		if !ok {
			select {
			case <-c.stop:
				return
			case <-c.queue.notify:
			}
			continue
		}
		if c.sendEntry(conn, e, 0) {
			return
		}
	}
}

// sendEntry writes e, retrying per the back-pressure policy. It returns
// true when the write loop should stop because the connection was torn
// down.
func (c *Client) sendEntry(conn *net.UnixConn, e Entry, attempt int) bool {
	n, err := conn.Write(e.Payload)
	if err == nil {
		e.markProcessed(nil)
		return false
	}

	switch decide(err, n, attempt, true) {
	case outcomeRetry:
		time.Sleep(100 * time.Millisecond)
		return c.sendEntry(conn, e, attempt+1)
	case outcomeDrop:
		c.log.Warn().Err(err).Msg("dropping outgoing datagram")
		e.markProcessed(err)
		return false
	case outcomeDisconnect:
		e.markProcessed(err)
		c.handleDisconnect()
		return true
	}
	return false
}

// Close disconnects and stops all background loops. Safe to call more
// than once.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closing = true
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	c.closeOnce.Do(func() { close(c.stop) })
	c.queue.drop(net.ErrClosed)

	if conn == nil {
		return nil
	}
	return conn.Close()
}
