package transport

import (
	"encoding/binary"
	"io"
	"net"
	"sync"

	"github.com/conmsg/conmsg/bytespool"
	"github.com/conmsg/conmsg/errs"
)

// conn adapts a stream oriented net.Conn into a message oriented Conn.
// Each message travels as a 16-bit big endian length followed by the
// payload, so boundaries from Send survive to the peer's Recv.
type conn struct {
	transport Transport
	c         net.Conn

	sendLock sync.Mutex

	sync.Mutex
	closed bool
}

// NewConn wraps a stream connection with message framing.
func NewConn(t Transport, c net.Conn) (Conn, error) {
	return &conn{transport: t, c: c}, nil
}

func (conn *conn) Transport() Transport {
	return conn.transport
}

// Send writes one framed message. The header comes from bytespool and the
// payload is written with a vectored write, no intermediate copy.
func (conn *conn) Send(msg []byte) error {
	if len(msg) > MaxMsgSize {
		return errs.ErrMsgTooLong
	}

	hdr := bytespool.Alloc(2)
	binary.BigEndian.PutUint16(hdr, uint16(len(msg)))
	buffs := net.Buffers{hdr, msg}

	conn.sendLock.Lock()
	_, err := buffs.WriteTo(conn.c)
	conn.sendLock.Unlock()
	bytespool.Free(hdr)

	return err
}

// Recv reads one framed message. io.EOF between frames means the peer
// performed an orderly shutdown; EOF inside a frame is a protocol fault.
func (conn *conn) Recv() ([]byte, error) {
	var hdr [2]byte

	if _, err := io.ReadFull(conn.c, hdr[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, errs.Wrap(errs.ErrBadMsg, err)
		}
		return nil, err
	}
	sz := binary.BigEndian.Uint16(hdr[:])
	if sz == 0 {
		// zero length frames are never sent, see Socket.Send
		return nil, errs.ErrBadMsg
	}

	msg := make([]byte, sz)
	if _, err := io.ReadFull(conn.c, msg); err != nil {
		return nil, errs.Wrap(errs.ErrBadMsg, err)
	}
	return msg, nil
}

func (conn *conn) Close() error {
	conn.Lock()
	defer conn.Unlock()
	if conn.closed {
		return nil
	}
	conn.closed = true

	return conn.c.Close()
}

func (conn *conn) LocalAddr() string {
	return FormatAddress(conn.transport, conn.c.LocalAddr().String())
}

func (conn *conn) RemoteAddr() string {
	return FormatAddress(conn.transport, conn.c.RemoteAddr().String())
}
