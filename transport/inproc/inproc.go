// Package inproc implements the in-process transport on top of net.Pipe,
// with a process wide listener registry keyed by name. Addresses look like
// "inproc:some-name". Dialing a name nobody listens on is refused.
package inproc

import (
	"net"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/conmsg/conmsg/errs"
	"github.com/conmsg/conmsg/options"
	"github.com/conmsg/conmsg/transport"
)

type inprocTran string

// Transport is the transport.Transport for in-process connections.
const Transport = inprocTran("inproc")

func init() {
	transport.Register(Transport)
}

// Scheme implements the Transport Scheme method.
func (t inprocTran) Scheme() string {
	return string(t)
}

var listeners = xsync.NewMapOf[string, *listener]()

type (
	addr string

	// pipeConn gives net.Pipe ends the listener's name as their address.
	pipeConn struct {
		net.Conn
		name addr
	}

	dialer struct {
		name string
	}

	listener struct {
		name    string
		pending chan net.Conn

		closeOnce sync.Once
		closedq   chan struct{}
	}
)

func (a addr) Network() string {
	return string(Transport)
}

func (a addr) String() string {
	return string(a)
}

func (p *pipeConn) LocalAddr() net.Addr {
	return p.name
}

func (p *pipeConn) RemoteAddr() net.Addr {
	return p.name
}

func (d *dialer) Dial() (transport.Conn, error) {
	l, ok := listeners.Load(d.name)
	if !ok {
		return nil, transport.ErrConnRefused
	}

	cp, sp := net.Pipe()
	select {
	case l.pending <- &pipeConn{Conn: sp, name: addr(d.name)}:
		return transport.NewConn(Transport, &pipeConn{Conn: cp, name: addr(d.name)})
	case <-l.closedq:
		cp.Close()
		sp.Close()
		return nil, transport.ErrConnRefused
	}
}

func (l *listener) Listen() error {
	if _, loaded := listeners.LoadOrStore(l.name, l); loaded {
		return errs.ErrAddrInUse
	}
	return nil
}

func (l *listener) Accept() (transport.Conn, error) {
	select {
	case conn := <-l.pending:
		return transport.NewConn(Transport, conn)
	case <-l.closedq:
		return nil, errs.ErrClosed
	}
}

func (l *listener) Addr() string {
	return transport.FormatAddress(Transport, l.name)
}

func (l *listener) Close() error {
	l.closeOnce.Do(func() {
		listeners.Compute(l.name, func(cur *listener, loaded bool) (*listener, bool) {
			// only unregister ourselves, a newer listener may own the name
			if loaded && cur != l {
				return cur, false
			}
			return nil, true
		})
		close(l.closedq)
		// tear down connection attempts that were queued but never accepted
		for {
			select {
			case conn := <-l.pending:
				conn.Close()
			default:
				return
			}
		}
	})
	return nil
}

// NewDialer implements the Transport NewDialer method.
func (t inprocTran) NewDialer(locator string, opts options.Options) (transport.Dialer, error) {
	return &dialer{name: locator}, nil
}

// NewListener implements the Transport NewListener method.
func (t inprocTran) NewListener(locator string, opts options.Options) (transport.Listener, error) {
	backlog := defaultBacklog
	if opts != nil {
		backlog = OptionBacklog.Value(opts.GetOptionDefault(OptionBacklog, defaultBacklog))
	}
	return &listener{
		name:    locator,
		pending: make(chan net.Conn, backlog),
		closedq: make(chan struct{}),
	}, nil
}

const defaultBacklog = 16
