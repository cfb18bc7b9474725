// Package ws implements the ws transport on top of websockets. Addresses
// look like "ws:host:port" or "ws:host:port/path". Websocket messages carry
// boundaries natively, so the driver skips the stream framing layer.
package ws

import (
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/conmsg/conmsg/errs"
	"github.com/conmsg/conmsg/options"
	"github.com/conmsg/conmsg/transport"
)

type wsTran string

// Transport is the transport.Transport for websockets.
const Transport = wsTran("ws")

func init() {
	transport.Register(Transport)
}

// Scheme implements the Transport Scheme method.
func (t wsTran) Scheme() string {
	return string(t)
}

const subprotocol = "conmsg.binary"

// splitLocator separates "host:port[/path]" into its network and HTTP parts.
func splitLocator(locator string) (hostport, path string) {
	if i := strings.IndexByte(locator, '/'); i >= 0 {
		return locator[:i], locator[i:]
	}
	return locator, "/"
}

type wsConn struct {
	c    *websocket.Conn
	path string

	sendLock sync.Mutex

	sync.Mutex
	closed bool
}

func newConn(c *websocket.Conn, path string) *wsConn {
	c.SetReadLimit(transport.MaxMsgSize)
	return &wsConn{c: c, path: path}
}

func (conn *wsConn) Transport() transport.Transport {
	return Transport
}

func (conn *wsConn) Send(msg []byte) error {
	if len(msg) > transport.MaxMsgSize {
		return errs.ErrMsgTooLong
	}
	conn.sendLock.Lock()
	err := conn.c.WriteMessage(websocket.BinaryMessage, msg)
	conn.sendLock.Unlock()
	return err
}

func (conn *wsConn) Recv() ([]byte, error) {
	for {
		mt, msg, err := conn.c.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				// orderly peer shutdown
				return nil, io.EOF
			}
			return nil, err
		}
		if mt != websocket.BinaryMessage {
			continue
		}
		return msg, nil
	}
}

func (conn *wsConn) Close() error {
	conn.Lock()
	defer conn.Unlock()
	if conn.closed {
		return nil
	}
	conn.closed = true

	// tell the peer this is an orderly shutdown, then drop the stream
	conn.sendLock.Lock()
	conn.c.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.sendLock.Unlock()
	return conn.c.Close()
}

func (conn *wsConn) LocalAddr() string {
	return transport.FormatAddress(Transport, conn.c.LocalAddr().String()+conn.path)
}

func (conn *wsConn) RemoteAddr() string {
	return transport.FormatAddress(Transport, conn.c.RemoteAddr().String()+conn.path)
}

type dialer struct {
	url  *url.URL
	path string
	opts options.Options
}

func (d *dialer) Dial() (transport.Conn, error) {
	wd := &websocket.Dialer{
		Subprotocols: []string{subprotocol},
	}
	if val, ok := d.opts.GetOption(OptionReadBufferSize); ok {
		wd.ReadBufferSize = OptionReadBufferSize.Value(val)
	}
	if val, ok := d.opts.GetOption(OptionWriteBufferSize); ok {
		wd.WriteBufferSize = OptionWriteBufferSize.Value(val)
	}

	c, _, err := wd.Dial(d.url.String(), nil)
	if err != nil {
		return nil, err
	}
	return newConn(c, d.path), nil
}

type listener struct {
	hostport string
	path     string
	upgrader websocket.Upgrader
	listener net.Listener
	htsvr    *http.Server
	pending  chan *wsConn

	closeOnce sync.Once
	closedq   chan struct{}
}

// ServeHTTP upgrades inbound requests and queues them for Accept.
func (l *listener) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	select {
	case l.pending <- newConn(c, l.path):
	case <-l.closedq:
		c.Close()
	}
}

func (l *listener) Listen() (err error) {
	if l.listener, err = net.Listen("tcp", l.hostport); err != nil {
		return
	}
	mux := http.NewServeMux()
	mux.Handle(l.path, l)
	l.htsvr = &http.Server{Handler: mux}
	go l.htsvr.Serve(l.listener)
	return nil
}

func (l *listener) Accept() (transport.Conn, error) {
	if l.listener == nil {
		return nil, transport.ErrNotListening
	}
	select {
	case conn := <-l.pending:
		return conn, nil
	case <-l.closedq:
		return nil, errs.ErrClosed
	}
}

func (l *listener) Addr() string {
	if l.listener != nil {
		return transport.FormatAddress(Transport, l.listener.Addr().String()+l.path)
	}
	return transport.FormatAddress(Transport, l.hostport+l.path)
}

func (l *listener) Close() error {
	l.closeOnce.Do(func() {
		close(l.closedq)
		if l.htsvr != nil {
			l.htsvr.Close()
		}
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

func noCheckOrigin(r *http.Request) bool {
	return true
}

// NewDialer implements the Transport NewDialer method.
func (t wsTran) NewDialer(locator string, opts options.Options) (transport.Dialer, error) {
	hostport, path := splitLocator(locator)
	u, err := url.Parse("ws://" + hostport + path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrBadAddr, err)
	}
	if opts == nil {
		opts = options.NewOptions()
	}
	return &dialer{url: u, path: path, opts: opts}, nil
}

// NewListener implements the Transport NewListener method.
func (t wsTran) NewListener(locator string, opts options.Options) (transport.Listener, error) {
	hostport, path := splitLocator(locator)
	if _, err := net.ResolveTCPAddr("tcp", hostport); err != nil {
		return nil, errs.Wrap(errs.ErrBadAddr, err)
	}
	if opts == nil {
		opts = options.NewOptions()
	}

	l := &listener{
		hostport: hostport,
		path:     path,
		pending:  make(chan *wsConn, OptionPendingSize.Value(opts.GetOptionDefault(OptionPendingSize, 16))),
		closedq:  make(chan struct{}),
	}
	l.upgrader = websocket.Upgrader{
		Subprotocols: []string{subprotocol},
		CheckOrigin:  noCheckOrigin,
	}
	if val, ok := opts.GetOption(OptionReadBufferSize); ok {
		l.upgrader.ReadBufferSize = OptionReadBufferSize.Value(val)
	}
	if val, ok := opts.GetOption(OptionWriteBufferSize); ok {
		l.upgrader.WriteBufferSize = OptionWriteBufferSize.Value(val)
	}
	if val, ok := opts.GetOption(OptionOriginChecker); ok {
		if f, ok := OptionOriginChecker.Value(val).(func(*http.Request) bool); ok {
			l.upgrader.CheckOrigin = f
		}
	}
	return l, nil
}
