package conmsg

import (
	"github.com/conmsg/conmsg/attr"
	"github.com/conmsg/conmsg/errs"
)

// Core attribute names. Transport drivers add their own, for example
// "tcp.rtt" or "tls.cipher".
const (
	AttrType       = "sock.type"
	AttrTransport  = "sock.transport"
	AttrBlocking   = "sock.blocking"
	AttrMaxMsgSize = "sock.max_msg_size"
	AttrLocalAddr  = "sock.local_addr"
	AttrRemoteAddr = "sock.remote_addr"
	AttrAddr       = "sock.addr"
)

func (s *connSocket) GetAttr(name string) (attr.Value, error) {
	s.Lock()
	defer s.Unlock()
	if s.state == stateClosed {
		return attr.Value{}, errs.ErrClosed
	}

	switch name {
	case AttrType:
		return attr.Str("connection"), nil
	case AttrTransport:
		return attr.Str(s.scheme), nil
	case AttrBlocking:
		return attr.Bool(s.blocking), nil
	case AttrMaxMsgSize:
		return attr.Int64(MaxMsgSize), nil
	case AttrLocalAddr:
		if s.tc == nil {
			return attr.Value{}, errs.ErrNoAttr
		}
		return attr.Str(s.tc.LocalAddr()), nil
	case AttrRemoteAddr:
		if s.tc == nil {
			return attr.Value{}, errs.ErrNoAttr
		}
		return attr.Str(s.tc.RemoteAddr()), nil
	}

	if s.tc != nil {
		if src, ok := s.tc.(attr.Source); ok {
			return src.GetAttr(name)
		}
	}
	return attr.Value{}, errs.ErrNoAttr
}

func (s *connSocket) ReadAttr(name string, buf []byte) (attr.Type, int, error) {
	return readAttrInto(s.GetAttr, name, buf)
}

func (s *serverSocket) GetAttr(name string) (attr.Value, error) {
	s.Lock()
	defer s.Unlock()
	if s.state == stateClosed {
		return attr.Value{}, errs.ErrClosed
	}

	switch name {
	case AttrType:
		return attr.Str("server"), nil
	case AttrTransport:
		return attr.Str(s.scheme), nil
	case AttrBlocking:
		return attr.Bool(s.blocking), nil
	case AttrMaxMsgSize:
		return attr.Int64(MaxMsgSize), nil
	case AttrAddr:
		return attr.Str(s.l.Addr()), nil
	}

	if src, ok := s.l.(attr.Source); ok {
		return src.GetAttr(name)
	}
	return attr.Value{}, errs.ErrNoAttr
}

func (s *serverSocket) ReadAttr(name string, buf []byte) (attr.Type, int, error) {
	return readAttrInto(s.GetAttr, name, buf)
}
