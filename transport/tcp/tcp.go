// Package tcp implements the tcp transport. Importing it registers the
// driver; addresses look like "tcp:192.0.2.1:4711".
package tcp

import (
	"net"

	"github.com/conmsg/conmsg/errs"
	"github.com/conmsg/conmsg/options"
	"github.com/conmsg/conmsg/transport"
)

type tcpTran string

// Transport is the transport.Transport for TCP.
const Transport = tcpTran("tcp")

func init() {
	transport.Register(Transport)
}

// Scheme implements the Transport Scheme method.
func (t tcpTran) Scheme() string {
	return string(t)
}

func configTCP(conn *net.TCPConn, opts options.Options) error {
	if val, ok := opts.GetOption(OptionNoDelay); ok {
		if err := conn.SetNoDelay(OptionNoDelay.Value(val)); err != nil {
			return err
		}
	}
	if val, ok := opts.GetOption(OptionKeepAlive); ok {
		if err := conn.SetKeepAlive(OptionKeepAlive.Value(val)); err != nil {
			return err
		}
	}
	if val, ok := opts.GetOption(OptionKeepAliveTime); ok {
		if err := conn.SetKeepAlivePeriod(OptionKeepAliveTime.Value(val)); err != nil {
			return err
		}
	}
	return nil
}

type dialer struct {
	opts options.Options
	addr *net.TCPAddr
}

func (d *dialer) Dial() (transport.Conn, error) {
	conn, err := net.DialTCP("tcp", nil, d.addr)
	if err != nil {
		return nil, err
	}
	if err = configTCP(conn, d.opts); err != nil {
		conn.Close()
		return nil, err
	}
	return newConn(conn, d.opts)
}

type listener struct {
	opts     options.Options
	addr     *net.TCPAddr
	listener *net.TCPListener
}

func (l *listener) Listen() (err error) {
	l.listener, err = net.ListenTCP("tcp", l.addr)
	return
}

func (l *listener) Accept() (transport.Conn, error) {
	if l.listener == nil {
		return nil, transport.ErrNotListening
	}
	conn, err := l.listener.AcceptTCP()
	if err != nil {
		return nil, err
	}
	if err = configTCP(conn, l.opts); err != nil {
		conn.Close()
		return nil, err
	}
	return newConn(conn, l.opts)
}

func (l *listener) Addr() string {
	if l.listener != nil {
		return transport.FormatAddress(Transport, l.listener.Addr().String())
	}
	return transport.FormatAddress(Transport, l.addr.String())
}

func (l *listener) Close() error {
	if l.listener == nil {
		return nil
	}
	return l.listener.Close()
}

func resolve(locator string) (*net.TCPAddr, error) {
	addr, err := net.ResolveTCPAddr("tcp", locator)
	if err != nil {
		return nil, errs.Wrap(errs.ErrBadAddr, err)
	}
	return addr, nil
}

func newDefaultOptions(opts options.Options) options.Options {
	def := options.NewOptions().
		WithOption(OptionNoDelay, true).
		WithOption(OptionKeepAlive, true)
	if opts != nil {
		for opt, val := range opts.OptionValues() {
			def.SetOption(opt, val)
		}
	}
	return def
}

// NewDialer implements the Transport NewDialer method.
func (t tcpTran) NewDialer(locator string, opts options.Options) (transport.Dialer, error) {
	addr, err := resolve(locator)
	if err != nil {
		return nil, err
	}
	return &dialer{opts: newDefaultOptions(opts), addr: addr}, nil
}

// NewListener implements the Transport NewListener method.
func (t tcpTran) NewListener(locator string, opts options.Options) (transport.Listener, error) {
	addr, err := resolve(locator)
	if err != nil {
		return nil, err
	}
	return &listener{opts: newDefaultOptions(opts), addr: addr}, nil
}
