package transport

import (
	"github.com/conmsg/conmsg/options"
)

type (
	// Conn is an established, message oriented transport connection.
	// Send and Recv move whole messages; stream transports impose
	// framing underneath so boundaries survive.
	Conn interface {
		Transport() Transport

		Send(msg []byte) error
		Recv() ([]byte, error)

		Close() error

		LocalAddr() string
		RemoteAddr() string
	}

	// Dialer performs an active open.
	Dialer interface {
		Dial() (Conn, error)
	}

	// Listener performs a passive open.
	Listener interface {
		Listen() error
		Accept() (Conn, error)
		Close() error
		Addr() string
	}

	// Transport is one scheme's driver.
	Transport interface {
		Scheme() string
		NewDialer(locator string, opts options.Options) (Dialer, error)
		NewListener(locator string, opts options.Options) (Listener, error)
	}
)

// MaxMsgSize is the maximum single message payload in bytes. The frame
// header is a 16-bit length, so the framing itself cannot carry more.
const MaxMsgSize = 65535
