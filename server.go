package conmsg

import (
	log "github.com/sirupsen/logrus"

	"github.com/conmsg/conmsg/errs"
	"github.com/conmsg/conmsg/options"
	"github.com/conmsg/conmsg/transport"
)

// serverSocket is the listening socket. Established inbound connections
// are pumped into a bounded queue; Accept wraps them into independent
// connection sockets with default blocking mode.
type serverSocket struct {
	*socketBase

	l transport.Listener

	acceptq      chan transport.Conn
	acceptErr    error
	acceptClosed bool

	closedq chan struct{}
}

func newServerSocket(scheme string, l transport.Listener, opts options.Options) (*serverSocket, error) {
	base, err := newSocketBase(scheme, Acceptable)
	if err != nil {
		return nil, err
	}

	size := defaultAcceptQueueSize
	if opts != nil {
		size = OptionAcceptQueueSize.Value(opts.GetOptionDefault(OptionAcceptQueueSize, size))
	}

	s := &serverSocket{
		socketBase: base,
		l:          l,
		acceptq:    make(chan transport.Conn, size),
		closedq:    make(chan struct{}),
	}
	s.ready = s.readyConditions
	s.state = stateReady
	go s.acceptPump()
	return s, nil
}

func (s *serverSocket) acceptPump() {
	for {
		tc, err := s.l.Accept()
		if err != nil {
			s.Lock()
			if s.state == stateClosed {
				s.Unlock()
				return
			}
			s.acceptErr = errs.FromOS(err)
			s.acceptClosed = true
			s.Unlock()
			close(s.acceptq)
			s.update()
			return
		}

		select {
		case s.acceptq <- tc:
			s.update()
		case <-s.closedq:
			tc.Close()
			return
		}
	}
}

func (s *serverSocket) Accept() (Conn, error) {
	s.Lock()
	if s.state == stateClosed {
		s.Unlock()
		return nil, errs.ErrClosed
	}
	blocking := s.blocking
	s.Unlock()

	var (
		tc transport.Conn
		ok bool
	)
	if blocking {
		select {
		case tc, ok = <-s.acceptq:
		case <-s.closedq:
			return nil, errs.ErrClosed
		}
	} else {
		select {
		case tc, ok = <-s.acceptq:
		case <-s.closedq:
			return nil, errs.ErrClosed
		default:
			return nil, errs.ErrWouldBlock
		}
	}
	if !ok {
		s.Lock()
		err := s.acceptErr
		s.Unlock()
		if err == nil {
			err = errs.ErrClosed
		}
		return nil, err
	}
	s.update()

	// the accepted socket is fully independent: own notifier, own
	// queues, default blocking mode
	c, err := newConnSocket(s.scheme, nil)
	if err != nil {
		tc.Close()
		return nil, err
	}
	c.Lock()
	c.startLocked(tc)
	c.Unlock()

	statConnsAccepted.Inc()
	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithField("domain", "socket").
			WithField("scheme", s.scheme).
			WithField("remoteAddress", tc.RemoteAddr()).
			Debug("accept")
	}
	return c, nil
}

// readyConditions is called with the base lock held.
func (s *serverSocket) readyConditions() Condition {
	if s.state != stateReady {
		return 0
	}
	if s.acceptClosed || len(s.acceptq) > 0 {
		return Acceptable
	}
	return 0
}

// Finish has nothing to drive on a server socket; listening completes
// synchronously in Listen.
func (s *serverSocket) Finish() error {
	s.Lock()
	defer s.Unlock()
	if s.state == stateClosed {
		return errs.ErrClosed
	}
	return nil
}

func (s *serverSocket) Close() error {
	s.Lock()
	if s.state == stateClosed {
		s.Unlock()
		return errs.ErrClosed
	}
	s.state = stateClosed
	s.Unlock()

	close(s.closedq)
	s.l.Close()

	// tear down inbound attempts that were queued but never accepted
drain:
	for {
		select {
		case tc, ok := <-s.acceptq:
			if !ok {
				break drain
			}
			tc.Close()
		default:
			break drain
		}
	}
	s.nfy.close()

	statSocketsClosed.Inc()
	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithField("domain", "socket").
			WithField("scheme", s.scheme).
			WithField("address", s.l.Addr()).
			Debug("close server")
	}
	return nil
}

func (s *serverSocket) Addr() string {
	return s.l.Addr()
}
