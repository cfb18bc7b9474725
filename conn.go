package conmsg

import (
	"errors"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/conmsg/conmsg/bytespool"
	"github.com/conmsg/conmsg/errs"
	"github.com/conmsg/conmsg/options"
	"github.com/conmsg/conmsg/transport"
)

// closeFlushTimeout bounds how long Close waits for queued sends to reach
// the transport before the connection is torn down.
const closeFlushTimeout = 5 * time.Second

// connSocket is the connection socket. All sends pass through one bounded
// queue drained by a single writer goroutine, so FIFO order and whole
// message delivery hold in both blocking and non-blocking mode; receives
// are pumped into a bounded queue which backpressures the transport when
// full.
type connSocket struct {
	*socketBase

	tc transport.Conn

	// establishment of a non-blocking connect
	dialDone chan struct{}
	dialErr  error

	recvq      chan []byte
	recvEOF    bool
	recvErr    error
	recvClosed bool

	sendq    chan []byte
	sendErr  error
	sendDone chan struct{}

	closedq chan struct{}
	started bool
}

func newConnSocket(scheme string, opts options.Options) (*connSocket, error) {
	base, err := newSocketBase(scheme, Receivable|Sendable)
	if err != nil {
		return nil, err
	}

	sendSize := defaultSendQueueSize
	recvSize := defaultRecvQueueSize
	if opts != nil {
		sendSize = OptionSendQueueSize.Value(opts.GetOptionDefault(OptionSendQueueSize, sendSize))
		recvSize = OptionRecvQueueSize.Value(opts.GetOptionDefault(OptionRecvQueueSize, recvSize))
	}

	s := &connSocket{
		socketBase: base,
		recvq:      make(chan []byte, recvSize),
		sendq:      make(chan []byte, sendSize),
		sendDone:   make(chan struct{}),
		closedq:    make(chan struct{}),
	}
	s.ready = s.readyConditions
	return s, nil
}

// startLocked transitions to ready and spawns the pumps. Callers hold the
// base lock.
func (s *connSocket) startLocked(tc transport.Conn) {
	s.tc = tc
	s.state = stateReady
	s.started = true
	go s.sendPump()
	go s.recvPump()
}

// dialAsync completes a non-blocking connect in the background.
func (s *connSocket) dialAsync(d transport.Dialer) {
	tc, err := d.Dial()

	s.Lock()
	if s.state == stateClosed {
		s.Unlock()
		if err == nil {
			tc.Close()
		}
		close(s.dialDone)
		return
	}
	if err != nil {
		s.dialErr = errs.FromOS(err)
		s.state = stateReady
	} else {
		s.startLocked(tc)
		statConnsDialed.Inc()
	}
	s.updateLocked()
	s.Unlock()
	close(s.dialDone)

	if log.IsLevelEnabled(log.DebugLevel) {
		e := log.WithField("domain", "socket").
			WithField("scheme", s.scheme)
		if err != nil {
			e.WithError(err).Debug("connect failed")
		} else {
			e.WithField("remoteAddress", tc.RemoteAddr()).Debug("connected")
		}
	}
}

// waitEstablished resolves the pending state: blocking sockets wait for
// the background dial, non-blocking sockets fail with ErrWouldBlock.
func (s *connSocket) waitEstablished() error {
	for {
		s.Lock()
		switch s.state {
		case stateClosed:
			s.Unlock()
			return errs.ErrClosed
		case statePending:
			blocking, dd := s.blocking, s.dialDone
			s.Unlock()
			if !blocking {
				return errs.ErrWouldBlock
			}
			<-dd
		default:
			err := s.dialErr
			s.Unlock()
			return err
		}
	}
}

func (s *connSocket) Send(msg []byte) error {
	if err := s.waitEstablished(); err != nil {
		return err
	}
	if len(msg) == 0 {
		// zero length receives mean orderly shutdown, so zero length
		// sends are a usage error
		return errs.ErrInvalid
	}
	if len(msg) > MaxMsgSize {
		return errs.ErrMsgTooLong
	}

	s.Lock()
	if s.state == stateClosed {
		s.Unlock()
		return errs.ErrClosed
	}
	if s.sendErr != nil {
		err := s.sendErr
		s.Unlock()
		return err
	}
	blocking := s.blocking
	s.Unlock()

	// the caller may reuse msg as soon as Send returns
	buf := bytespool.Alloc(len(msg))
	copy(buf, msg)

	if blocking {
		select {
		case s.sendq <- buf:
		case <-s.closedq:
			bytespool.Free(buf)
			return errs.ErrClosed
		}
	} else {
		select {
		case s.sendq <- buf:
		case <-s.closedq:
			bytespool.Free(buf)
			return errs.ErrClosed
		default:
			bytespool.Free(buf)
			return errs.ErrWouldBlock
		}
	}

	statMsgsSent.Inc()
	statBytesSent.Add(len(msg))
	s.update()
	return nil
}

func (s *connSocket) Receive() ([]byte, error) {
	if err := s.waitEstablished(); err != nil {
		return nil, err
	}

	s.Lock()
	if s.state == stateClosed {
		s.Unlock()
		return nil, errs.ErrClosed
	}
	blocking := s.blocking
	s.Unlock()

	var (
		msg []byte
		ok  bool
	)
	if blocking {
		select {
		case msg, ok = <-s.recvq:
		case <-s.closedq:
			return nil, errs.ErrClosed
		}
	} else {
		select {
		case msg, ok = <-s.recvq:
		case <-s.closedq:
			return nil, errs.ErrClosed
		default:
			return nil, errs.ErrWouldBlock
		}
	}
	if !ok {
		return s.recvResult()
	}

	statMsgsReceived.Inc()
	statBytesReceived.Add(len(msg))
	s.update()
	return msg, nil
}

// recvResult reports why the receive side terminated: a zero length
// message for an orderly peer shutdown, the fault otherwise.
func (s *connSocket) recvResult() ([]byte, error) {
	s.Lock()
	defer s.Unlock()
	if s.recvEOF {
		return []byte{}, nil
	}
	if s.recvErr != nil {
		return nil, s.recvErr
	}
	return nil, errs.ErrClosed
}

func (s *connSocket) recvPump() {
	for {
		msg, err := s.tc.Recv()
		if err != nil {
			s.Lock()
			if errors.Is(err, io.EOF) {
				s.recvEOF = true
			} else {
				s.recvErr = errs.FromOS(err)
			}
			s.recvClosed = true
			s.Unlock()
			close(s.recvq)
			s.update()
			return
		}

		select {
		case s.recvq <- msg:
			s.update()
		case <-s.closedq:
			return
		}
	}
}

func (s *connSocket) sendPump() {
	defer close(s.sendDone)
	for {
		select {
		case msg := <-s.sendq:
			s.sendOne(msg)
		case <-s.closedq:
			// flush what was queued before the close
			for {
				select {
				case msg := <-s.sendq:
					s.sendOne(msg)
				default:
					return
				}
			}
		}
	}
}

func (s *connSocket) sendOne(msg []byte) {
	s.Lock()
	failed := s.sendErr != nil
	s.Unlock()

	if !failed {
		if err := s.tc.Send(msg); err != nil {
			s.Lock()
			s.sendErr = errs.FromOS(err)
			s.Unlock()
		}
	}
	bytespool.Free(msg)
	s.update()
}

// readyConditions is called with the base lock held.
func (s *connSocket) readyConditions() Condition {
	if s.state != stateReady {
		return 0
	}
	if s.dialErr != nil {
		// the fault surfaces without blocking on either operation
		return Receivable | Sendable
	}
	var c Condition
	if s.recvClosed || len(s.recvq) > 0 {
		c |= Receivable
	}
	if s.sendErr != nil || len(s.sendq) < cap(s.sendq) {
		c |= Sendable
	}
	return c
}

func (s *connSocket) Finish() error {
	s.Lock()
	if s.state == stateClosed {
		s.Unlock()
		return errs.ErrClosed
	}
	if s.state != statePending {
		err := s.dialErr
		s.Unlock()
		return err
	}
	blocking, dd := s.blocking, s.dialDone
	s.Unlock()

	if !blocking {
		select {
		case <-dd:
		default:
			return errs.ErrWouldBlock
		}
	} else {
		<-dd
	}

	s.Lock()
	defer s.Unlock()
	if s.state == stateClosed {
		return errs.ErrClosed
	}
	return s.dialErr
}

func (s *connSocket) Close() error {
	s.Lock()
	if s.state == stateClosed {
		s.Unlock()
		return errs.ErrClosed
	}
	s.state = stateClosed
	started := s.started
	s.Unlock()

	close(s.closedq)
	if started {
		select {
		case <-s.sendDone:
		case <-time.After(closeFlushTimeout):
		}
		s.tc.Close()
	}
	s.nfy.close()

	statSocketsClosed.Inc()
	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithField("domain", "socket").
			WithField("scheme", s.scheme).
			Debug("close connection")
	}
	return nil
}

func (s *connSocket) LocalAddr() string {
	s.Lock()
	defer s.Unlock()
	if s.tc == nil {
		return ""
	}
	return s.tc.LocalAddr()
}

func (s *connSocket) RemoteAddr() string {
	s.Lock()
	defer s.Unlock()
	if s.tc == nil {
		return ""
	}
	return s.tc.RemoteAddr()
}
