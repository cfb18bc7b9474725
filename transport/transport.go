// Package transport defines the driver boundary between conmsg sockets and
// the underlying transports, plus the scheme registry used to resolve
// addresses of the form "<scheme>:<locator>".
package transport

import (
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/conmsg/conmsg/errs"
)

var transports = xsync.NewMapOf[string, Transport]()

// Register registers a transport driver globally, after which it is
// available to all sockets. It overrides any driver previously registered
// for the same scheme. Built-in drivers register themselves from init, see
// the transport/all package.
func Register(t Transport) {
	transports.Store(t.Scheme(), t)
}

// Get looks up the driver for a scheme, nil if none is registered.
func Get(scheme string) Transport {
	t, _ := transports.Load(scheme)
	return t
}

// ParseAddress splits an address into scheme and locator. The locator
// grammar is scheme specific; this only enforces the outer shape.
func ParseAddress(addr string) (scheme, locator string, err error) {
	i := strings.IndexByte(addr, ':')
	if i <= 0 || i == len(addr)-1 {
		err = errs.ErrBadAddr
		return
	}
	return addr[:i], addr[i+1:], nil
}

// FromAddr resolves the driver and locator for an address. Unknown schemes
// are rejected here, synchronously, before any driver work happens.
func FromAddr(addr string) (Transport, string, error) {
	scheme, locator, err := ParseAddress(addr)
	if err != nil {
		return nil, "", err
	}
	t := Get(scheme)
	if t == nil {
		return nil, "", errs.ErrBadTransport
	}
	return t, locator, nil
}

// FormatAddress renders a transport level address in scheme:locator form.
func FormatAddress(t Transport, locator string) string {
	return t.Scheme() + ":" + locator
}
