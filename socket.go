package conmsg

import (
	"sync"

	"github.com/conmsg/conmsg/attr"
	"github.com/conmsg/conmsg/errs"
)

type socketState int

// socket lifecycle: creating -> (non-blocking connect) pending -> ready ->
// closed. closed is terminal and absorbing.
const (
	stateCreating socketState = iota
	statePending
	stateReady
	stateClosed
)

// socketBase carries the capability set shared by connection and server
// sockets: lifecycle state, blocking mode, the cached readiness
// subscription and the pollable notifier.
type socketBase struct {
	sync.Mutex
	state    socketState
	blocking bool
	cond     Condition // last awaited mask
	valid    Condition // conditions this variant accepts
	scheme   string
	nfy      *notifier

	// ready reports which conditions currently hold; called with the
	// base lock held.
	ready func() Condition
}

func newSocketBase(scheme string, valid Condition) (*socketBase, error) {
	nfy, err := newNotifier()
	if err != nil {
		return nil, err
	}
	return &socketBase{
		state:    stateCreating,
		blocking: true,
		valid:    valid,
		scheme:   scheme,
		nfy:      nfy,
	}, nil
}

func (s *socketBase) SetBlocking(blocking bool) error {
	s.Lock()
	defer s.Unlock()
	if s.state == stateClosed {
		return errs.ErrClosed
	}
	s.blocking = blocking
	return nil
}

func (s *socketBase) IsBlocking() bool {
	s.Lock()
	defer s.Unlock()
	return s.blocking
}

func (s *socketBase) Fd() (int, error) {
	s.Lock()
	defer s.Unlock()
	if s.state == stateClosed {
		return -1, errs.ErrClosed
	}
	return s.nfy.fd()
}

// Await records the caller's readiness interest. The mask is cached;
// re-awaiting the identical mask performs no work.
func (s *socketBase) Await(cond Condition) error {
	s.Lock()
	defer s.Unlock()
	if s.state == stateClosed {
		return errs.ErrClosed
	}
	if cond&^s.valid != 0 || cond < 0 {
		return errs.ErrInvalid
	}
	if cond == s.cond {
		return nil
	}
	s.cond = cond
	s.updateLocked()
	return nil
}

// update re-evaluates readiness and arms or drains the notifier.
func (s *socketBase) update() {
	s.Lock()
	s.updateLocked()
	s.Unlock()
}

func (s *socketBase) updateLocked() {
	if s.state == stateClosed {
		return
	}
	s.nfy.set(s.cond&s.ready() != 0)
}

// readAttrInto encodes an attribute into a caller supplied buffer.
func readAttrInto(get func(string) (attr.Value, error), name string, buf []byte) (attr.Type, int, error) {
	v, err := get(name)
	if err != nil {
		return 0, 0, err
	}
	n, err := v.Encode(buf)
	if err != nil {
		return 0, 0, err
	}
	return v.Type(), n, nil
}
