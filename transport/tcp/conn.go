package tcp

import (
	"net"

	"github.com/conmsg/conmsg/attr"
	"github.com/conmsg/conmsg/errs"
	"github.com/conmsg/conmsg/options"
	"github.com/conmsg/conmsg/transport"
)

// tcpConn adds tcp attributes on top of the framed connection.
type tcpConn struct {
	transport.Conn

	nc   *net.TCPConn
	opts options.Options
}

func newConn(nc *net.TCPConn, opts options.Options) (transport.Conn, error) {
	c, err := transport.NewConn(Transport, nc)
	if err != nil {
		nc.Close()
		return nil, err
	}
	return &tcpConn{Conn: c, nc: nc, opts: opts}, nil
}

// GetAttr implements attr.Source.
func (c *tcpConn) GetAttr(name string) (attr.Value, error) {
	switch name {
	case "tcp.nodelay":
		return attr.Bool(OptionNoDelay.Value(c.opts.GetOptionDefault(OptionNoDelay, true))), nil
	case "tcp.keepalive":
		return attr.Bool(OptionKeepAlive.Value(c.opts.GetOptionDefault(OptionKeepAlive, true))), nil
	case "tcp.rtt":
		return c.rttAttr()
	}
	return attr.Value{}, errs.ErrNoAttr
}
