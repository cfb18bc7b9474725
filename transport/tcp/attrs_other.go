//go:build !linux

package tcp

import (
	"github.com/conmsg/conmsg/attr"
	"github.com/conmsg/conmsg/errs"
)

func (c *tcpConn) rttAttr() (attr.Value, error) {
	return attr.Value{}, errs.ErrNoAttr
}
