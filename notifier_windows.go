//go:build windows

package conmsg

import (
	"github.com/conmsg/conmsg/errs"
)

// Windows has no pollable pipe pair to hand out; readiness polling is not
// supported there and Fd fails with ErrNotSupported. Blocking and
// non-blocking socket operation works as on other platforms.
type notifier struct {
	armed bool
}

func newNotifier() (*notifier, error) {
	return &notifier{}, nil
}

func (n *notifier) fd() (int, error) {
	return -1, errs.ErrNotSupported
}

func (n *notifier) set(ready bool) {
	n.armed = ready
}

func (n *notifier) close() {
}
