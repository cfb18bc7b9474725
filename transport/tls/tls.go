// Package tls implements the tls transport: TLS over TCP with the same
// message framing as the tcp driver. Addresses look like "tls:host:port".
// The listener side needs a certificate, supplied either as a *tls.Config
// via OptionTLSConfig or as cert/key files.
package tls

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"os"

	"github.com/conmsg/conmsg/attr"
	"github.com/conmsg/conmsg/errs"
	"github.com/conmsg/conmsg/options"
	"github.com/conmsg/conmsg/transport"
)

type tlsTran string

// Transport is the transport.Transport for TLS.
const Transport = tlsTran("tls")

func init() {
	transport.Register(Transport)
}

// Scheme implements the Transport Scheme method.
func (t tlsTran) Scheme() string {
	return string(t)
}

func dialerConfig(opts options.Options) (*tls.Config, error) {
	if val, ok := opts.GetOption(OptionTLSConfig); ok {
		if cfg, ok := OptionTLSConfig.Value(val).(*tls.Config); ok && cfg != nil {
			return cfg, nil
		}
		return nil, errs.ErrTLSNoConfig
	}

	cfg := &tls.Config{}
	if val, ok := opts.GetOption(OptionInsecureSkipVerify); ok {
		cfg.InsecureSkipVerify = OptionInsecureSkipVerify.Value(val)
	}
	if val, ok := opts.GetOption(OptionServerName); ok {
		cfg.ServerName = OptionServerName.Value(val)
	}
	if val, ok := opts.GetOption(OptionCAFile); ok {
		pem, err := os.ReadFile(OptionCAFile.Value(val))
		if err != nil {
			return nil, err
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, errs.ErrTLSNoCert
		}
		cfg.RootCAs = pool
	}
	return cfg, nil
}

func listenerConfig(opts options.Options) (*tls.Config, error) {
	if val, ok := opts.GetOption(OptionTLSConfig); ok {
		cfg, ok := OptionTLSConfig.Value(val).(*tls.Config)
		if !ok || cfg == nil {
			return nil, errs.ErrTLSNoConfig
		}
		if len(cfg.Certificates) == 0 && cfg.GetCertificate == nil {
			return nil, errs.ErrTLSNoCert
		}
		return cfg, nil
	}

	certFile, haveCert := opts.GetOption(OptionCertFile)
	keyFile, haveKey := opts.GetOption(OptionKeyFile)
	if !haveCert || !haveKey {
		return nil, errs.ErrTLSNoCert
	}
	cert, err := tls.LoadX509KeyPair(OptionCertFile.Value(certFile), OptionKeyFile.Value(keyFile))
	if err != nil {
		return nil, err
	}
	return &tls.Config{Certificates: []tls.Certificate{cert}}, nil
}

type dialer struct {
	locator string
	cfg     *tls.Config
}

func (d *dialer) Dial() (transport.Conn, error) {
	// tls.Dial runs the handshake before returning, so a handshake
	// failure surfaces here, not on first send.
	conn, err := tls.Dial("tcp", d.locator, d.cfg)
	if err != nil {
		return nil, err
	}
	return newConn(conn)
}

type listener struct {
	locator  string
	cfg      *tls.Config
	listener net.Listener
}

func (l *listener) Listen() (err error) {
	l.listener, err = net.Listen("tcp", l.locator)
	return
}

func (l *listener) Accept() (transport.Conn, error) {
	if l.listener == nil {
		return nil, transport.ErrNotListening
	}
	nc, err := l.listener.Accept()
	if err != nil {
		return nil, err
	}
	conn := tls.Server(nc, l.cfg)
	if err = conn.Handshake(); err != nil {
		conn.Close()
		return nil, err
	}
	return newConn(conn)
}

func (l *listener) Addr() string {
	if l.listener != nil {
		return transport.FormatAddress(Transport, l.listener.Addr().String())
	}
	return transport.FormatAddress(Transport, l.locator)
}

func (l *listener) Close() error {
	if l.listener == nil {
		return nil
	}
	return l.listener.Close()
}

// NewDialer implements the Transport NewDialer method.
func (t tlsTran) NewDialer(locator string, opts options.Options) (transport.Dialer, error) {
	if _, err := net.ResolveTCPAddr("tcp", locator); err != nil {
		return nil, errs.Wrap(errs.ErrBadAddr, err)
	}
	if opts == nil {
		opts = options.NewOptions()
	}
	cfg, err := dialerConfig(opts)
	if err != nil {
		return nil, err
	}
	return &dialer{locator: locator, cfg: cfg}, nil
}

// NewListener implements the Transport NewListener method.
func (t tlsTran) NewListener(locator string, opts options.Options) (transport.Listener, error) {
	if _, err := net.ResolveTCPAddr("tcp", locator); err != nil {
		return nil, errs.Wrap(errs.ErrBadAddr, err)
	}
	if opts == nil {
		opts = options.NewOptions()
	}
	cfg, err := listenerConfig(opts)
	if err != nil {
		return nil, err
	}
	return &listener{locator: locator, cfg: cfg}, nil
}

// tlsConn adds negotiated-session attributes on top of the framed connection.
type tlsConn struct {
	transport.Conn

	nc *tls.Conn
}

func newConn(nc *tls.Conn) (transport.Conn, error) {
	c, err := transport.NewConn(Transport, nc)
	if err != nil {
		nc.Close()
		return nil, err
	}
	return &tlsConn{Conn: c, nc: nc}, nil
}

// GetAttr implements attr.Source.
func (c *tlsConn) GetAttr(name string) (attr.Value, error) {
	state := c.nc.ConnectionState()
	switch name {
	case "tls.version":
		return attr.Str(tls.VersionName(state.Version)), nil
	case "tls.cipher":
		return attr.Str(tls.CipherSuiteName(state.CipherSuite)), nil
	}
	return attr.Value{}, errs.ErrNoAttr
}
