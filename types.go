// Package conmsg provides connection-oriented messaging sockets: a uniform,
// message oriented socket API over multiple underlying transports (tcp, tls,
// unix domain, websocket, in-process). Messages keep their boundaries across
// every transport, sockets can run blocking or non-blocking, and each socket
// exposes a pollable descriptor for integration with a caller's event loop.
package conmsg

import (
	"github.com/conmsg/conmsg/attr"
	"github.com/conmsg/conmsg/transport"
)

// MaxMsgSize is the maximum single message payload in bytes. Larger
// payloads must be fragmented by the application.
const MaxMsgSize = transport.MaxMsgSize

// Condition is a bitmask of readiness conditions a caller can await.
type Condition int

// readiness conditions
const (
	// Receivable indicates Receive is expected to make progress.
	Receivable Condition = 1 << 0
	// Sendable indicates Send is expected to make progress.
	Sendable Condition = 1 << 1
	// Acceptable indicates Accept is expected to make progress.
	Acceptable Condition = 1 << 2
)

// Flag is a bitmask of Connect flags.
type Flag int

// connect flags
const (
	// NonBlock makes the socket non-blocking from creation: Connect
	// returns immediately and the handshake completes in the background,
	// driven by Finish and the readiness descriptor.
	NonBlock Flag = 1 << 0
)

type (
	// Socket is the capability set shared by every socket variant.
	// A socket is owned by one logical owner; mutating operations are
	// not safe to call concurrently from multiple goroutines.
	Socket interface {
		// Close releases all resources held by the socket. The socket
		// is permanently invalid afterwards; closing an already closed
		// socket is a usage error and fails with ErrClosed.
		Close() error

		// Finish drives an outstanding establishment step to
		// completion. On a non-blocking socket it fails with
		// ErrWouldBlock until no further driving is needed.
		Finish() error

		// SetBlocking selects whether Send/Receive/Accept/Finish block
		// until able to proceed or fail with ErrWouldBlock.
		SetBlocking(blocking bool) error

		// IsBlocking reflects the current mode.
		IsBlocking() bool

		// Await registers interest in a combination of readiness
		// conditions. Re-awaiting the identical mask is a no-op.
		// Conditions not applicable to the socket variant are invalid.
		Await(cond Condition) error

		// Fd returns a pollable descriptor which is readable while an
		// awaited condition holds. It is stable for the socket's
		// lifetime and invalid the instant the socket is closed.
		Fd() (int, error)

		// GetAttr retrieves a named attribute. Values may change
		// between calls as the connection evolves.
		GetAttr(name string) (attr.Value, error)

		// ReadAttr retrieves a named attribute into buf, returning its
		// type and encoded length. It fails with ErrOverflow when the
		// value exceeds the buffer, never truncating.
		ReadAttr(name string, buf []byte) (attr.Type, int, error)
	}

	// Conn is an established connection socket. Send and Receive move
	// whole messages in FIFO order.
	Conn interface {
		Socket

		// Send transmits one message of at most MaxMsgSize bytes. The
		// message is either sent whole or not at all; partial sends are
		// never exposed.
		Send(msg []byte) error

		// Receive returns exactly one previously sent message. A zero
		// length result means the peer performed an orderly shutdown.
		Receive() ([]byte, error)

		LocalAddr() string
		RemoteAddr() string
	}

	// Server is a listening socket producing Conns. It never transfers
	// messages itself.
	Server interface {
		Socket

		// Accept returns the next inbound connection as an independent
		// Conn with default (blocking) mode.
		Accept() (Conn, error)

		Addr() string
	}
)
