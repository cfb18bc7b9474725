// Package errs defines the error values used across conmsg. Every failing
// operation yields an errno style numeric code plus a human readable text;
// the code is the machine checkable signal, the text is for humans.
package errs

import (
	"errors"
	"fmt"
	"syscall"
)

// Error is an errno coded error value.
type Error struct {
	Code int
	Text string

	cause error
}

// New creates an Error with the given code and text.
func New(code int, text string) *Error {
	return &Error{Code: code, Text: text}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Text, e.cause.Error())
	}
	return e.Text
}

// Errno returns the numeric code.
func (e *Error) Errno() int {
	return e.Code
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is the same coded error. Wrapped variants
// created by Wrap compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Text == t.Text
}

// Wrap attaches a transport level cause to a sentinel, preserving the
// sentinel's code and text for errors.Is checks.
func Wrap(sentinel *Error, cause error) *Error {
	if cause == nil {
		return sentinel
	}
	return &Error{Code: sentinel.Code, Text: sentinel.Text, cause: cause}
}

// numeric codes, errno values
const (
	ENOENT          = 2
	EIO             = 5
	EBADF           = 9
	EAGAIN          = 11
	EINVAL          = 22
	EPROTO          = 71
	EOVERFLOW       = 75
	EMSGSIZE        = 90
	EPROTONOSUPPORT = 93
	EOPNOTSUPP      = 95
	EADDRINUSE      = 98
	ECONNRESET      = 104
	ECONNREFUSED    = 111
)

// errors
var (
	ErrWouldBlock   = New(EAGAIN, "operation would block")
	ErrClosed       = New(EBADF, "socket is closed")
	ErrInvalid      = New(EINVAL, "invalid argument")
	ErrBadAddr      = New(EINVAL, "invalid address")
	ErrMsgTooLong   = New(EMSGSIZE, "message is too long")
	ErrBadMsg       = New(EPROTO, "malformed message")
	ErrIO           = New(EIO, "i/o error")
	ErrNoAttr       = New(ENOENT, "no such attribute")
	ErrOverflow     = New(EOVERFLOW, "value too large for buffer")
	ErrBadTransport = New(EPROTONOSUPPORT, "invalid or unsupported transport")
	ErrNotSupported = New(EOPNOTSUPP, "operation not supported")
	ErrAddrInUse    = New(EADDRINUSE, "address already in use")
	ErrConnRefused  = New(ECONNREFUSED, "connection refused")
	ErrConnReset    = New(ECONNRESET, "connection reset")
	ErrTLSNoConfig  = New(EINVAL, "missing TLS configuration")
	ErrTLSNoCert    = New(EINVAL, "missing TLS certificates")
)

// IsWouldBlock reports whether err is the transient would-block condition.
func IsWouldBlock(err error) bool {
	return errors.Is(err, ErrWouldBlock)
}

// FromOS maps an operating system or net error onto a coded sentinel,
// keeping the original as the cause. Already coded errors pass through.
func FromOS(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return Wrap(ErrConnRefused, err)
	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.EPIPE):
		return Wrap(ErrConnReset, err)
	case errors.Is(err, syscall.EADDRINUSE):
		return Wrap(ErrAddrInUse, err)
	default:
		return Wrap(ErrIO, err)
	}
}
