package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/xid"
)

// Client owns at most one live WebSocket connection to the dashboard
// stream and fans decoded messages out to registered listeners.
//
// Connect returns before the handshake completes; callers observe
// progress through Status. The client never reconnects on its own —
// after a drop the status returns to idle and a new Connect is the
// caller's move.
type Client struct {
	cfg     Config
	logger  *slog.Logger
	session string

	// Connection state. gen invalidates in-flight dials and stale
	// read loops when the handle is dropped.
	mu     sync.Mutex
	conn   *websocket.Conn
	status Status
	gen    uint64

	// Write serialization
	writeMu sync.Mutex

	// Listener registry, in registration order.
	lmu       sync.Mutex
	listeners []*listenerEntry
}

type listenerEntry struct {
	fn      Listener
	removed bool // guarded by Client.lmu
}

// NewClient creates a stream client. If cfg.AutoConnect is set, one
// Connect is issued immediately.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	def := DefaultConfig()
	if cfg.HandshakeTimeout == 0 {
		cfg.HandshakeTimeout = def.HandshakeTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	session := xid.New().String()
	c := &Client{
		cfg:     cfg,
		logger:  logger.With("session", session),
		session: session,
	}

	if cfg.AutoConnect {
		c.Connect(context.Background())
	}

	return c
}

// Session returns the client's session ID, used for log correlation.
func (c *Client) Session() string {
	return c.session
}

// Status returns the current connection summary.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Connect starts a connection attempt. It is a no-op while a connection
// is open or opening, returns immediately, and never fails to the
// caller: resolution and dial errors surface through Status.
func (c *Client) Connect(ctx context.Context) {
	c.mu.Lock()
	if c.status.State != StateIdle {
		c.mu.Unlock()
		return
	}

	target, err := ResolveEndpoint(c.cfg.Endpoint, c.cfg.Origin)
	if err != nil {
		c.status = Status{State: StateIdle, Err: err.Error()}
		c.mu.Unlock()
		c.logger.Warn("endpoint resolution failed", "error", err)
		return
	}

	c.status = Status{State: StateConnecting}
	gen := c.gen
	c.mu.Unlock()

	go c.dial(ctx, target, gen)
}

// Disconnect drops the connection handle immediately and requests the
// transport close. The status is idle as soon as Disconnect returns,
// even though the close handshake may still be in flight. Calling it
// with no active connection is a no-op.
func (c *Client) Disconnect() {
	c.mu.Lock()
	if c.conn == nil && c.status.State == StateIdle {
		c.mu.Unlock()
		return
	}
	conn := c.conn
	c.gen++
	c.conn = nil
	c.status = Status{State: StateIdle}
	c.mu.Unlock()

	if conn != nil {
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		conn.Close()
	}

	c.logger.Debug("websocket disconnected")
}

// Close tears the client down. Safe to call whether or not a connection
// was ever opened; registered listeners stay registered but go inert.
func (c *Client) Close() {
	c.Disconnect()
}

// Send writes a text frame to the connection.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	conn := c.conn
	connected := c.status.State == StateConnected
	c.mu.Unlock()

	if !connected || conn == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// OnMessage registers a listener and returns its unsubscribe. The
// unsubscribe removes exactly that listener and is idempotent.
func (c *Client) OnMessage(fn Listener) func() {
	e := &listenerEntry{fn: fn}

	c.lmu.Lock()
	c.listeners = append(c.listeners, e)
	c.lmu.Unlock()

	return func() {
		c.lmu.Lock()
		defer c.lmu.Unlock()
		if e.removed {
			return
		}
		e.removed = true
		for i, cur := range c.listeners {
			if cur == e {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				break
			}
		}
	}
}

// dial completes a connection attempt started by Connect.
func (c *Client) dial(ctx context.Context, target string, gen uint64) {
	dialer := websocket.Dialer{
		HandshakeTimeout: c.cfg.HandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, target, nil)

	c.mu.Lock()
	if c.gen != gen {
		// Disconnected while dialing; the attempt no longer owns anything.
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	if err != nil {
		c.status = Status{State: StateIdle, Err: err.Error()}
		c.mu.Unlock()
		c.logger.Warn("websocket dial failed", "url", target, "error", err)
		return
	}
	c.conn = conn
	c.status = Status{State: StateConnected}
	c.mu.Unlock()

	c.logger.Debug("websocket connected", "url", target)

	go c.readLoop(conn, gen)
	if c.cfg.PingInterval > 0 {
		go c.pingLoop(conn, gen)
	}
}

// readLoop reads frames and dispatches them until the connection ends.
func (c *Client) readLoop(conn *websocket.Conn, gen uint64) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.connectionEnded(conn, gen, err)
			return
		}
		c.dispatch(decodePayload(data))
	}
}

// connectionEnded handles the error/close tail of a connection's life.
// A transport failure leaves an advisory in Status.Err; the close that
// follows returns the status to idle and clears it.
func (c *Client) connectionEnded(conn *websocket.Conn, gen uint64, err error) {
	c.mu.Lock()
	if c.gen != gen {
		// Disconnect already dropped this handle.
		c.mu.Unlock()
		return
	}
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		c.status.Err = errTransport
		c.logger.Warn("websocket transport error", "error", err)
	}
	c.mu.Unlock()

	conn.Close()

	c.mu.Lock()
	if c.gen == gen {
		c.gen++
		c.conn = nil
		c.status = Status{State: StateIdle}
	}
	c.mu.Unlock()
}

// pingLoop sends keepalive pings until the connection is dropped.
func (c *Client) pingLoop(conn *websocket.Conn, gen uint64) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		live := c.gen == gen
		c.mu.Unlock()
		if !live {
			return
		}

		deadline := time.Now().Add(c.cfg.WriteTimeout)
		if err := conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline); err != nil {
			c.logger.Debug("failed to send ping", "error", err)
			return
		}
	}
}

// dispatch invokes every registered listener once, in registration
// order. A listener that panics does not stop the rest.
func (c *Client) dispatch(payload any) {
	c.lmu.Lock()
	snapshot := make([]*listenerEntry, len(c.listeners))
	copy(snapshot, c.listeners)
	c.lmu.Unlock()

	for _, e := range snapshot {
		c.lmu.Lock()
		skip := e.removed
		c.lmu.Unlock()
		if skip {
			continue
		}
		c.invoke(e.fn, payload)
	}
}

func (c *Client) invoke(fn Listener, payload any) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("listener panicked", "panic", r)
		}
	}()
	fn(payload)
}

// decodePayload parses a frame as JSON, falling back to the raw string.
func decodePayload(data []byte) any {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}
