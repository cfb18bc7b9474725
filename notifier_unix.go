//go:build !windows

package conmsg

import (
	"golang.org/x/sys/unix"
)

// notifier exposes a socket's readiness as a pollable descriptor. The read
// end of a non-blocking pipe is handed to the caller; it is kept readable
// exactly while the awaited condition holds (level triggered), by arming
// the pipe with a byte and draining it again.
type notifier struct {
	r, w  int
	armed bool
}

func newNotifier() (*notifier, error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return nil, err
	}
	unix.SetNonblock(p[0], true)
	unix.SetNonblock(p[1], true)
	return &notifier{r: p[0], w: p[1]}, nil
}

func (n *notifier) fd() (int, error) {
	return n.r, nil
}

// set arms or drains the pipe. The owning socket's lock serializes calls.
func (n *notifier) set(ready bool) {
	if ready == n.armed {
		return
	}
	if ready {
		one := [1]byte{1}
		unix.Write(n.w, one[:])
	} else {
		var buf [8]byte
		for {
			c, err := unix.Read(n.r, buf[:])
			if c <= 0 || err != nil {
				break
			}
		}
	}
	n.armed = ready
}

func (n *notifier) close() {
	unix.Close(n.r)
	unix.Close(n.w)
}
