package conmsg_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/conmsg/conmsg"
	"github.com/conmsg/conmsg/options"
	_ "github.com/conmsg/conmsg/transport/all"
)

var testTransports = []struct {
	name       string
	listenAddr func(t *testing.T) string
}{
	{"inproc", func(t *testing.T) string {
		return "inproc:" + strings.ReplaceAll(t.Name(), "/", ".")
	}},
	{"tcp", func(t *testing.T) string {
		return "tcp:127.0.0.1:0"
	}},
	{"ux", func(t *testing.T) string {
		return "ux:" + filepath.Join(t.TempDir(), "conmsg.sock")
	}},
	{"ws", func(t *testing.T) string {
		return "ws:127.0.0.1:0/conmsg"
	}},
}

var testSizes = []struct {
	name string
	sz   int
}{
	{"1B", 1},
	{"128B", 128},
	{"4KB", 4 * 1024},
	{"64KB", conmsg.MaxMsgSize},
}

// preparePair listens, dials the bound address and accepts, yielding both
// ends of one established connection.
func preparePair(t *testing.T, addr string, ovs options.OptionValues) (srv conmsg.Server, dialed, accepted conmsg.Conn) {
	t.Helper()

	srv, err := conmsg.ListenOptions(addr, ovs)
	if err != nil {
		t.Fatalf("listen %s: %s", addr, err)
	}
	t.Cleanup(func() { srv.Close() })

	if dialed, err = conmsg.ConnectOptions(srv.Addr(), 0, ovs); err != nil {
		t.Fatalf("connect %s: %s", srv.Addr(), err)
	}
	t.Cleanup(func() { dialed.Close() })

	if accepted, err = srv.Accept(); err != nil {
		t.Fatalf("accept: %s", err)
	}
	t.Cleanup(func() { accepted.Close() })
	return
}

func genContent(sz int) []byte {
	content := make([]byte, sz)
	for i := range content {
		content[i] = byte(i * 7)
	}
	return content
}
