package ipc

import (
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pqrs-org/karabiner-go-core/internal/clock"
	"github.com/pqrs-org/karabiner-go-core/internal/klog"
)

// maxDatagramSize bounds a single read; local IPC payloads are small HID
// report / shell-command / select-input-source encodings, never anywhere
// near this.
const maxDatagramSize = 64 * 1024

// DefaultRebindInterval is how long the server waits before retrying a
// failed bind (§4.8 "servers have a symmetric auto-rebind").
const DefaultRebindInterval = 1 * time.Second

// DefaultHeartbeatSweepInterval is how often the server checks declared
// client heartbeat deadlines against the clock.
const DefaultHeartbeatSweepInterval = 500 * time.Millisecond

// heartbeatState tracks one client's self-reported "next expected
// heartbeat deadline."
type heartbeatState struct {
	deadline    clock.AbsoluteTime
	hasDeadline bool
}

// Server is the §4.8 server role: binds a Unix datagram socket path,
// optionally watches a per-client heartbeat deadline, and surfaces
// received user_data frames plus lifecycle signals via the Bound/
// BindFailed/Closed/Received/HeartbeatDeadlineExceeded callbacks. All
// callbacks fire on the server's own goroutine (its dispatcher, per §5),
// never concurrently with each other.
type Server struct {
	Path                   string
	RebindInterval         time.Duration
	HeartbeatSweepInterval time.Duration
	Clock                  clock.Source

	// Bound fires once the socket is successfully bound and the read
	// loop has started.
	Bound func()
	// BindFailed fires when a bind attempt fails; the server retries
	// after RebindInterval regardless.
	BindFailed func(error)
	// Closed fires when the read loop exits, whether via Close or a
	// socket-level read error.
	Closed func()
	// Received fires once per user_data frame, with the sender's
	// address for an eventual SendResponse.
	Received func(payload []byte, sender net.Addr)
	// HeartbeatDeadlineExceeded fires once when a client that declared a
	// non-zero heartbeat deadline fails to renew it in time; the
	// client's bookkeeping entry is dropped on firing.
	HeartbeatDeadlineExceeded func(sender net.Addr)

	log zerolog.Logger

	mu         sync.Mutex
	conn       *net.UnixConn
	heartbeats map[string]heartbeatState
	closing    bool

	queue     *sendQueue
	stop      chan struct{}
	closeOnce sync.Once
}

// NewServer returns a Server bound to path, with defaults filled in. Call
// Start to bind.
func NewServer(path string) *Server {
	return &Server{
		Path:                   path,
		RebindInterval:         DefaultRebindInterval,
		HeartbeatSweepInterval: DefaultHeartbeatSweepInterval,
		Clock:                  clock.SystemSource{},
		log:                    klog.New("ipc.server"),
		heartbeats:             make(map[string]heartbeatState),
		queue:                  newSendQueue(),
		stop:                   make(chan struct{}),
	}
}

// Start binds the socket and, on success, launches the read loop and
// heartbeat sweep goroutines. On failure it fires BindFailed and schedules
// a retry after RebindInterval; Start itself still returns the error so a
// caller doing a synchronous first bind can observe it immediately.
func (s *Server) Start() error {
	addr := &net.UnixAddr{Name: s.Path, Net: "unixgram"}
	conn, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		os.Remove(s.Path)
		conn, err = net.ListenUnixgram("unixgram", addr)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.Path).Msg("bind failed")
		if s.BindFailed != nil {
			s.BindFailed(err)
		}
		s.scheduleRebind()
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.closing = false
	s.mu.Unlock()

	if s.Bound != nil {
		s.Bound()
	}
	go s.readLoop(conn)
	go s.writeLoop(conn)
	go s.heartbeatSweepLoop()
	return nil
}

func (s *Server) scheduleRebind() {
	time.AfterFunc(s.RebindInterval, func() {
		s.mu.Lock()
		closing := s.closing
		s.mu.Unlock()
		if closing {
			return
		}
		s.Start()
	})
}

func (s *Server) readLoop(conn *net.UnixConn) {
	buf := make([]byte, maxDatagramSize)
	for {
		n, sender, err := conn.ReadFromUnix(buf)
		if err != nil {
			s.handleClosed()
			return
		}
		frameType, payload, err := Decode(buf[:n])
		if err != nil {
			s.log.Warn().Err(err).Msg("malformed datagram")
			continue
		}
		switch frameType {
		case FrameHeartbeat:
			s.recordHeartbeat(sender, payload)
		case FrameUserData:
			if s.Received != nil {
				s.Received(append([]byte(nil), payload...), sender)
			}
		case FrameResponse:
			// A response addressed to the server has no defined meaning
			// in this protocol's server role; ignore it (§4.8: "the
			// receiver ... handles the other types internally").
		}
	}
}

func (s *Server) handleClosed() {
	s.mu.Lock()
	closing := s.closing
	s.mu.Unlock()
	if s.Closed != nil {
		s.Closed()
	}
	if !closing {
		s.scheduleRebind()
	}
}

func (s *Server) recordHeartbeat(sender net.Addr, payload []byte) {
	deadlineMs, ok := parseHeartbeatPayload(payload)
	if !ok {
		return
	}
	key := sender.String()
	s.mu.Lock()
	if deadlineMs == 0 {
		delete(s.heartbeats, key)
	} else {
		s.heartbeats[key] = heartbeatState{
			deadline:    s.Clock.Now().Add(clock.FromMilliseconds(int(deadlineMs))),
			hasDeadline: true,
		}
	}
	s.mu.Unlock()
}

func (s *Server) heartbeatSweepLoop() {
	ticker := time.NewTicker(s.HeartbeatSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweepHeartbeats()
		}
	}
}

func (s *Server) sweepHeartbeats() {
	now := s.Clock.Now()
	var expired []net.Addr

	s.mu.Lock()
	for key, hb := range s.heartbeats {
		if hb.hasDeadline && now.After(hb.deadline) {
			delete(s.heartbeats, key)
			expired = append(expired, &net.UnixAddr{Name: key, Net: "unixgram"})
		}
	}
	s.mu.Unlock()

	for _, addr := range expired {
		if s.HeartbeatDeadlineExceeded != nil {
			s.HeartbeatDeadlineExceeded(addr)
		}
	}
}

// SendResponse queues a response frame addressed to sender; processed, if
// non-nil, is invoked exactly once once the entry has left the queue.
func (s *Server) SendResponse(payload []byte, sender net.Addr, processed func(error)) {
	s.queue.push(Entry{Payload: Encode(FrameResponse, payload), Addr: sender, Processed: processed})
}

func (s *Server) writeLoop(conn *net.UnixConn) {
	for {
		e, ok := s.queue.pop()
		if !ok {
			select {
			case <-s.stop:
				return
			case <-s.queue.notify:
			}
			continue
		}
		s.sendEntry(conn, e, 0)
	}
}

func (s *Server) sendEntry(conn *net.UnixConn, e Entry, attempt int) {
	unixAddr, _ := e.Addr.(*net.UnixAddr)
	n, err := conn.WriteToUnix(e.Payload, unixAddr)
	if err == nil {
		e.markProcessed(nil)
		return
	}

	switch decide(err, n, attempt, false) {
	case outcomeRetry:
		time.AfterFunc(100*time.Millisecond, func() { s.sendEntry(conn, e, attempt+1) })
	case outcomeDrop:
		s.log.Warn().Err(err).Msg("dropping outgoing datagram")
		e.markProcessed(err)
	case outcomeDisconnect:
		// Servers drop and continue rather than tearing down the whole
		// socket for one bad peer (§4.8).
		s.log.Warn().Err(err).Msg("send error, dropping entry")
		e.markProcessed(err)
	}
}

// Close unbinds the socket and removes the socket file. Safe to call more
// than once.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closing = true
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	s.closeOnce.Do(func() { close(s.stop) })
	s.queue.drop(net.ErrClosed)

	if conn == nil {
		return nil
	}
	err := conn.Close()
	os.Remove(s.Path)
	return err
}
