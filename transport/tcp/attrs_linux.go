//go:build linux

package tcp

import (
	"golang.org/x/sys/unix"

	"github.com/conmsg/conmsg/attr"
	"github.com/conmsg/conmsg/errs"
)

// rttAttr reads the kernel's smoothed round-trip time estimate, in
// microseconds, via TCP_INFO. The value changes as the connection evolves.
func (c *tcpConn) rttAttr() (attr.Value, error) {
	raw, err := c.nc.SyscallConn()
	if err != nil {
		return attr.Value{}, errs.Wrap(errs.ErrNoAttr, err)
	}

	var (
		info    *unix.TCPInfo
		sockErr error
	)
	err = raw.Control(func(fd uintptr) {
		info, sockErr = unix.GetsockoptTCPInfo(int(fd), unix.IPPROTO_TCP, unix.TCP_INFO)
	})
	if err != nil {
		return attr.Value{}, errs.Wrap(errs.ErrNoAttr, err)
	}
	if sockErr != nil {
		return attr.Value{}, errs.Wrap(errs.ErrNoAttr, sockErr)
	}
	return attr.Int64(int64(info.Rtt)), nil
}
