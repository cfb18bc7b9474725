package attr

import (
	"bytes"
	"errors"
	"testing"

	"github.com/conmsg/conmsg/errs"
)

func TestValueAccessors(t *testing.T) {
	v := Bool(true)
	if v.Type() != TypeBool {
		t.Errorf("type: %s", v.Type())
	}
	if b, err := v.Bool(); err != nil || !b {
		t.Errorf("bool: %t, %v", b, err)
	}
	if _, err := v.Int64(); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("int64 from bool: %v", err)
	}
	if _, err := v.Str(); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("str from bool: %v", err)
	}

	v = Int64(-4711)
	if n, err := v.Int64(); err != nil || n != -4711 {
		t.Errorf("int64: %d, %v", n, err)
	}
	if _, err := v.Bool(); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("bool from int64: %v", err)
	}

	v = Str("hello")
	if s, err := v.Str(); err != nil || s != "hello" {
		t.Errorf("str: %q, %v", s, err)
	}

	v = Bin([]byte{1, 2, 3})
	if b, err := v.Bin(); err != nil || !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Errorf("bin: %v, %v", b, err)
	}

	// the zero value is no type at all
	var zero Value
	if _, err := zero.Bool(); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("zero value bool: %v", err)
	}
}

func TestEncode(t *testing.T) {
	buf := make([]byte, 16)

	n, err := Bool(true).Encode(buf)
	if err != nil || n != 1 || buf[0] != 1 {
		t.Errorf("bool: %d, %v, %v", n, err, buf[0])
	}
	n, err = Bool(false).Encode(buf)
	if err != nil || n != 1 || buf[0] != 0 {
		t.Errorf("bool false: %d, %v, %v", n, err, buf[0])
	}

	n, err = Int64(0x0102030405060708).Encode(buf)
	if err != nil || n != 8 {
		t.Fatalf("int64: %d, %v", n, err)
	}
	if !bytes.Equal(buf[:8], []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("int64 encoding: %v", buf[:8])
	}

	n, err = Str("abc").Encode(buf)
	if err != nil || n != 3 || string(buf[:3]) != "abc" {
		t.Errorf("str: %d, %v", n, err)
	}

	var zero Value
	if _, err = zero.Encode(buf); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("zero value: %v", err)
	}
}

func TestEncodeOverflow(t *testing.T) {
	// too small buffers fail whole, nothing is written
	cases := []struct {
		v  Value
		sz int
	}{
		{Bool(true), 0},
		{Int64(1), 7},
		{Str("hello"), 4},
		{Bin(make([]byte, 10)), 9},
	}
	for _, c := range cases {
		buf := make([]byte, c.sz)
		if _, err := c.v.Encode(buf); !errors.Is(err, errs.ErrOverflow) {
			t.Errorf("%s into %d bytes: %v", c.v.Type(), c.sz, err)
		}
	}

	// an exactly sized buffer is fine
	buf := make([]byte, 5)
	if n, err := Str("hello").Encode(buf); err != nil || n != 5 {
		t.Errorf("exact fit: %d, %v", n, err)
	}
}

func TestDecode(t *testing.T) {
	cases := []Value{
		Bool(true),
		Bool(false),
		Int64(-1),
		Int64(1 << 40),
		Str("tcp:1.2.3.4:5"),
		Bin([]byte{0, 255, 127}),
	}
	buf := make([]byte, 64)
	for _, want := range cases {
		n, err := want.Encode(buf)
		if err != nil {
			t.Fatalf("encode %s: %s", want.Type(), err)
		}
		got, err := Decode(want.Type(), buf[:n])
		if err != nil {
			t.Fatalf("decode %s: %s", want.Type(), err)
		}
		if got.String() != want.String() || got.Type() != want.Type() {
			t.Errorf("round trip %s: %s != %s", want.Type(), got, want)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	if _, err := Decode(Type(0), []byte{1}); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("unknown tag: %v", err)
	}
	if _, err := Decode(Type(5), []byte{1}); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("out of range tag: %v", err)
	}
	if _, err := Decode(TypeBool, []byte{1, 0}); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("bool with 2 bytes: %v", err)
	}
	if _, err := Decode(TypeInt64, []byte{1, 2, 3}); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("short int64: %v", err)
	}
}
