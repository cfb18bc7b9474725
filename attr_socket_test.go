package conmsg_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/conmsg/conmsg"
	"github.com/conmsg/conmsg/attr"
	"github.com/conmsg/conmsg/errs"
)

func TestCoreAttrs(t *testing.T) {
	srv, dialed, _ := preparePair(t, "tcp:127.0.0.1:0", nil)

	v, err := dialed.GetAttr(conmsg.AttrType)
	if err != nil {
		t.Fatalf("sock.type: %s", err)
	}
	if s, _ := v.Str(); s != "connection" {
		t.Errorf("sock.type: %q", s)
	}

	if v, err = srv.GetAttr(conmsg.AttrType); err != nil {
		t.Fatalf("server sock.type: %s", err)
	}
	if s, _ := v.Str(); s != "server" {
		t.Errorf("server sock.type: %q", s)
	}

	if v, err = dialed.GetAttr(conmsg.AttrTransport); err != nil {
		t.Fatalf("sock.transport: %s", err)
	}
	if s, _ := v.Str(); s != "tcp" {
		t.Errorf("sock.transport: %q", s)
	}

	if v, err = dialed.GetAttr(conmsg.AttrMaxMsgSize); err != nil {
		t.Fatalf("sock.max_msg_size: %s", err)
	}
	if n, _ := v.Int64(); n != conmsg.MaxMsgSize {
		t.Errorf("sock.max_msg_size: %d", n)
	}

	for _, name := range []string{conmsg.AttrLocalAddr, conmsg.AttrRemoteAddr} {
		if v, err = dialed.GetAttr(name); err != nil {
			t.Fatalf("%s: %s", name, err)
		}
		if s, _ := v.Str(); !strings.HasPrefix(s, "tcp:") {
			t.Errorf("%s: %q", name, s)
		}
	}

	if v, err = srv.GetAttr(conmsg.AttrAddr); err != nil {
		t.Fatalf("sock.addr: %s", err)
	}
	if s, _ := v.Str(); s != srv.Addr() {
		t.Errorf("sock.addr: %q != %q", s, srv.Addr())
	}
}

func TestBlockingAttr(t *testing.T) {
	_, dialed, _ := preparePair(t, "inproc:"+t.Name(), nil)

	v, err := dialed.GetAttr(conmsg.AttrBlocking)
	if err != nil {
		t.Fatalf("sock.blocking: %s", err)
	}
	if b, _ := v.Bool(); !b {
		t.Error("fresh socket not blocking")
	}

	if err = dialed.SetBlocking(false); err != nil {
		t.Fatalf("setblocking: %s", err)
	}
	if v, err = dialed.GetAttr(conmsg.AttrBlocking); err != nil {
		t.Fatalf("sock.blocking: %s", err)
	}
	if b, _ := v.Bool(); b {
		t.Error("attribute does not track mode changes")
	}
}

func TestDriverAttrs(t *testing.T) {
	_, dialed, _ := preparePair(t, "tcp:127.0.0.1:0", nil)

	v, err := dialed.GetAttr("tcp.nodelay")
	if err != nil {
		t.Fatalf("tcp.nodelay: %s", err)
	}
	if v.Type() != attr.TypeBool {
		t.Errorf("tcp.nodelay type: %s", v.Type())
	}
	if b, _ := v.Bool(); !b {
		t.Error("nodelay not enabled by default")
	}

	if v, err = dialed.GetAttr("tcp.keepalive"); err != nil {
		t.Fatalf("tcp.keepalive: %s", err)
	}
	if v.Type() != attr.TypeBool {
		t.Errorf("tcp.keepalive type: %s", v.Type())
	}
}

func TestUnknownAttr(t *testing.T) {
	srv, dialed, _ := preparePair(t, "tcp:127.0.0.1:0", nil)

	if _, err := dialed.GetAttr("no.such.attr"); !errors.Is(err, errs.ErrNoAttr) {
		t.Errorf("unknown name: %v", err)
	}
	// driver attributes of another transport do not exist here
	if _, err := dialed.GetAttr("tls.version"); !errors.Is(err, errs.ErrNoAttr) {
		t.Errorf("foreign driver attribute: %v", err)
	}
	if _, err := srv.GetAttr("tcp.nodelay"); !errors.Is(err, errs.ErrNoAttr) {
		t.Errorf("connection attribute on server: %v", err)
	}
}

func TestReadAttr(t *testing.T) {
	_, dialed, _ := preparePair(t, "tcp:127.0.0.1:0", nil)

	// a bool fits in a single byte
	buf := make([]byte, 1)
	typ, n, err := dialed.ReadAttr(conmsg.AttrBlocking, buf)
	if err != nil {
		t.Fatalf("read sock.blocking: %s", err)
	}
	if typ != attr.TypeBool || n != 1 || buf[0] != 1 {
		t.Errorf("sock.blocking: type %s, %d bytes, value %d", typ, n, buf[0])
	}

	// a string longer than the buffer must not be truncated
	addr := dialed.LocalAddr()
	short := make([]byte, len(addr)-1)
	if _, _, err = dialed.ReadAttr(conmsg.AttrLocalAddr, short); !errors.Is(err, errs.ErrOverflow) {
		t.Errorf("short buffer: %v", err)
	}

	full := make([]byte, 128)
	typ, n, err = dialed.ReadAttr(conmsg.AttrLocalAddr, full)
	if err != nil {
		t.Fatalf("read sock.local_addr: %s", err)
	}
	if typ != attr.TypeStr || string(full[:n]) != addr {
		t.Errorf("sock.local_addr: type %s, %q", typ, full[:n])
	}

	if _, _, err = dialed.ReadAttr("no.such.attr", full); !errors.Is(err, errs.ErrNoAttr) {
		t.Errorf("unknown name: %v", err)
	}
}
