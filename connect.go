package conmsg

import (
	log "github.com/sirupsen/logrus"

	"github.com/conmsg/conmsg/errs"
	"github.com/conmsg/conmsg/options"
	"github.com/conmsg/conmsg/transport"
)

// Connect performs an active open to a transport address of the form
// "<scheme>:<locator>", for example "tcp:192.0.2.1:4711" or
// "ux:/run/app.sock". With the NonBlock flag the socket is returned
// immediately in non-blocking mode while establishment continues in the
// background; drive it with Finish and the readiness descriptor.
func Connect(addr string, flags Flag) (Conn, error) {
	return ConnectOptions(addr, flags, nil)
}

// ConnectOptions is Connect with transport and queue options.
func ConnectOptions(addr string, flags Flag, ovs options.OptionValues) (Conn, error) {
	t, locator, err := transport.FromAddr(addr)
	if err != nil {
		return nil, err
	}
	opts := options.NewOptionsWithValues(ovs)

	d, err := t.NewDialer(locator, opts)
	if err != nil {
		return nil, err
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithField("domain", "socket").
			WithField("address", addr).
			WithField("nonblock", flags&NonBlock != 0).
			Debug("connect")
	}

	s, err := newConnSocket(t.Scheme(), opts)
	if err != nil {
		return nil, err
	}

	if flags&NonBlock != 0 {
		s.Lock()
		s.blocking = false
		s.state = statePending
		s.dialDone = make(chan struct{})
		s.Unlock()
		go s.dialAsync(d)
		return s, nil
	}

	tc, err := d.Dial()
	if err != nil {
		s.nfy.close()
		return nil, errs.FromOS(err)
	}
	s.Lock()
	s.startLocked(tc)
	s.updateLocked()
	s.Unlock()

	statConnsDialed.Inc()
	return s, nil
}

// Listen performs a passive open, binding and listening according to the
// address's transport semantics.
func Listen(addr string) (Server, error) {
	return ListenOptions(addr, nil)
}

// ListenOptions is Listen with transport and queue options.
func ListenOptions(addr string, ovs options.OptionValues) (Server, error) {
	t, locator, err := transport.FromAddr(addr)
	if err != nil {
		return nil, err
	}
	opts := options.NewOptionsWithValues(ovs)

	l, err := t.NewListener(locator, opts)
	if err != nil {
		return nil, err
	}
	if err = l.Listen(); err != nil {
		return nil, errs.FromOS(err)
	}

	s, err := newServerSocket(t.Scheme(), l, opts)
	if err != nil {
		l.Close()
		return nil, err
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithField("domain", "socket").
			WithField("address", s.Addr()).
			Debug("listen")
	}
	return s, nil
}
