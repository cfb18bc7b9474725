//go:build windows

// Package ux implements the ux transport on top of Windows Named Pipes.
// The locator maps to `\\.\pipe\<locator>`.
package ux

import (
	"net"

	"github.com/Microsoft/go-winio"

	"github.com/conmsg/conmsg/options"
	"github.com/conmsg/conmsg/transport"
)

type (
	dialer struct {
		path string
	}

	listener struct {
		path     string
		cfg      *winio.PipeConfig
		listener net.Listener
	}
)

func pipePath(locator string) string {
	return `\\.\pipe\` + locator
}

func (d *dialer) Dial() (transport.Conn, error) {
	conn, err := winio.DialPipe(pipePath(d.path), nil)
	if err != nil {
		return nil, err
	}
	return transport.NewConn(Transport, conn)
}

func (l *listener) Listen() error {
	listener, err := winio.ListenPipe(pipePath(l.path), l.cfg)
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
	conn, err := l.listener.Accept()
	if err != nil {
		return nil, err
	}
	return transport.NewConn(Transport, conn)
}

func (l *listener) Addr() string {
	return transport.FormatAddress(Transport, l.path)
}

func (l *listener) Close() error {
	if l.listener == nil {
		return nil
	}
	return l.listener.Close()
}

// NewDialer implements the Transport NewDialer method.
func (t uxTran) NewDialer(locator string, opts options.Options) (transport.Dialer, error) {
	return &dialer{path: locator}, nil
}

// NewListener implements the Transport NewListener method.
func (t uxTran) NewListener(locator string, opts options.Options) (transport.Listener, error) {
	if opts == nil {
		opts = options.NewOptions()
	}
	cfg := &winio.PipeConfig{}
	if val, ok := opts.GetOption(OptionSecurityDescriptor); ok {
		cfg.SecurityDescriptor = OptionSecurityDescriptor.Value(val)
	}
	if val, ok := opts.GetOption(OptionInputBufferSize); ok {
		cfg.InputBufferSize = int32(OptionInputBufferSize.Value(val))
	}
	if val, ok := opts.GetOption(OptionOutputBufferSize); ok {
		cfg.OutputBufferSize = int32(OptionOutputBufferSize.Value(val))
	}
	return &listener{path: locator, cfg: cfg}, nil
}
