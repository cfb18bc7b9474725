//go:build !windows

// Package ux implements the ux transport on top of UNIX domain sockets.
// Addresses look like "ux:/run/app/ctl.sock".
package ux

import (
	"net"
	"os"

	"github.com/conmsg/conmsg/errs"
	"github.com/conmsg/conmsg/options"
	"github.com/conmsg/conmsg/transport"
)

type (
	dialer struct {
		addr *net.UnixAddr
	}

	listener struct {
		addr     *net.UnixAddr
		listener *net.UnixListener
	}
)

func (d *dialer) Dial() (transport.Conn, error) {
	conn, err := net.DialUnix("unix", nil, d.addr)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(transport.ErrConnRefused, err)
		}
		return nil, err
	}
	return transport.NewConn(Transport, conn)
}

func (l *listener) Listen() error {
	// remove a stale socket file left by a previous owner
	path := l.addr.String()
	if stat, err := os.Stat(path); err == nil {
		if stat.Mode()&os.ModeSocket == 0 {
			return errs.ErrAddrInUse
		}
		if err := os.Remove(path); err != nil {
			return errs.ErrAddrInUse
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	listener, err := net.ListenUnix("unix", l.addr)
	if err != nil {
		return err
	}
	l.listener = listener
	return nil
}

func (l *listener) Accept() (transport.Conn, error) {
	if l.listener == nil {
		return nil, transport.ErrNotListening
	}
	conn, err := l.listener.AcceptUnix()
	if err != nil {
		return nil, err
	}
	return transport.NewConn(Transport, conn)
}

func (l *listener) Addr() string {
	return transport.FormatAddress(Transport, l.addr.String())
}

func (l *listener) Close() error {
	if l.listener == nil {
		return nil
	}
	return l.listener.Close()
}

// NewDialer implements the Transport NewDialer method.
func (t uxTran) NewDialer(locator string, opts options.Options) (transport.Dialer, error) {
	addr, err := net.ResolveUnixAddr("unix", locator)
	if err != nil {
		return nil, errs.Wrap(errs.ErrBadAddr, err)
	}
	return &dialer{addr: addr}, nil
}

// NewListener implements the Transport NewListener method.
func (t uxTran) NewListener(locator string, opts options.Options) (transport.Listener, error) {
	addr, err := net.ResolveUnixAddr("unix", locator)
	if err != nil {
		return nil, errs.Wrap(errs.ErrBadAddr, err)
	}
	return &listener{addr: addr}, nil
}
