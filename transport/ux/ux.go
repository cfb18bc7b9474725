package ux

import (
	"github.com/conmsg/conmsg/transport"
)

type uxTran string

// Transport is the transport.Transport for UNIX domain sockets
// (named pipes on windows).
const Transport = uxTran("ux")

func init() {
	transport.Register(Transport)
}

// Scheme implements the Transport Scheme method.
func (t uxTran) Scheme() string {
	return string(t)
}
