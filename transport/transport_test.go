package transport

import (
	"errors"
	"testing"

	"github.com/conmsg/conmsg/errs"
	"github.com/conmsg/conmsg/options"
)

type fakeTran string

func (t fakeTran) Scheme() string {
	return string(t)
}

func (t fakeTran) NewDialer(locator string, opts options.Options) (Dialer, error) {
	return nil, errs.ErrNotSupported
}

func (t fakeTran) NewListener(locator string, opts options.Options) (Listener, error) {
	return nil, errs.ErrNotSupported
}

func TestRegistry(t *testing.T) {
	if Get("fake") != nil {
		t.Fatal("unregistered scheme resolved")
	}

	tran := fakeTran("fake")
	Register(tran)
	if Get("fake") != tran {
		t.Fatal("registered scheme did not resolve")
	}

	tr, locator, err := FromAddr("fake:somewhere")
	if err != nil {
		t.Fatalf("fromaddr: %s", err)
	}
	if tr != tran || locator != "somewhere" {
		t.Fatalf("fromaddr: %v, %q", tr, locator)
	}

	if _, _, err = FromAddr("missing:somewhere"); !errors.Is(err, errs.ErrBadTransport) {
		t.Fatalf("unknown scheme: %v", err)
	}
}

func TestParseAddress(t *testing.T) {
	good := []struct {
		addr    string
		scheme  string
		locator string
	}{
		{"tcp:192.0.2.1:4711", "tcp", "192.0.2.1:4711"},
		{"ux:/run/app.sock", "ux", "/run/app.sock"},
		{"inproc:name", "inproc", "name"},
		{"ws:host:80/path", "ws", "host:80/path"},
	}
	for _, c := range good {
		scheme, locator, err := ParseAddress(c.addr)
		if err != nil {
			t.Errorf("%q: %s", c.addr, err)
			continue
		}
		if scheme != c.scheme || locator != c.locator {
			t.Errorf("%q: %q, %q", c.addr, scheme, locator)
		}
	}

	for _, addr := range []string{"", "tcp", "tcp:", ":locator", ":"} {
		if _, _, err := ParseAddress(addr); !errors.Is(err, errs.ErrBadAddr) {
			t.Errorf("%q: %v", addr, err)
		}
	}
}

func TestFormatAddress(t *testing.T) {
	if s := FormatAddress(fakeTran("fake"), "loc"); s != "fake:loc" {
		t.Fatalf("format: %q", s)
	}
}
