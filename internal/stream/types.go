package stream

import (
	"errors"
	"time"
)

// Errors
var (
	ErrNotConnected = errors.New("not connected")
)

// errTransport is the advisory recorded in Status.Err when the transport
// reports a failure. The close that follows clears it.
const errTransport = "websocket connection error"

// State describes where a client is in its connection lifecycle.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "idle"
	}
}

// Status is the externally observable connection summary. Err holds the
// most recent failure message, or "" when there is none. A close always
// resets Err, so it only describes the connection currently being
// attempted or held.
type Status struct {
	State State
	Err   string
}

// Listener receives one decoded message payload per inbound frame.
// Payloads are the result of JSON decoding; frames that fail to decode
// are delivered as the raw string.
type Listener func(payload any)

// Config configures a stream client.
type Config struct {
	Endpoint         string        // ws(s) URL, or a path resolved against Origin
	Origin           string        // dashboard origin (e.g. https://app.folio.dev)
	AutoConnect      bool          // issue one Connect at construction
	HandshakeTimeout time.Duration // dial handshake deadline
	WriteTimeout     time.Duration // write deadline for sends
	PingInterval     time.Duration // keepalive ping interval (0 = disabled)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     5 * time.Second,
		PingInterval:     30 * time.Second,
	}
}
