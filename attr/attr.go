// Package attr models socket attributes: named, typed values produced by the
// socket core and the transport drivers. The four kinds form a closed tagged
// union; decoding rejects unknown tags instead of guessing a layout.
package attr

import (
	"encoding/binary"
	"fmt"

	"github.com/conmsg/conmsg/errs"
)

// Type tags an attribute value.
type Type int

// attribute types
const (
	TypeBool  Type = 1
	TypeInt64 Type = 2
	TypeStr   Type = 3
	TypeBin   Type = 4
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt64:
		return "int64"
	case TypeStr:
		return "str"
	case TypeBin:
		return "bin"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Value is one attribute value. The zero Value is invalid.
type Value struct {
	typ Type
	b   bool
	i   int64
	s   string
	bin []byte
}

// Bool creates a boolean Value.
func Bool(v bool) Value {
	return Value{typ: TypeBool, b: v}
}

// Int64 creates an integer Value.
func Int64(v int64) Value {
	return Value{typ: TypeInt64, i: v}
}

// Str creates a UTF-8 string Value.
func Str(v string) Value {
	return Value{typ: TypeStr, s: v}
}

// Bin creates an opaque binary Value. The bytes are not copied.
func Bin(v []byte) Value {
	return Value{typ: TypeBin, bin: v}
}

// Type returns the value's type tag.
func (v Value) Type() Type {
	return v.typ
}

// Bool returns the boolean payload, failing if the value is not a bool.
func (v Value) Bool() (bool, error) {
	if v.typ != TypeBool {
		return false, errs.ErrInvalid
	}
	return v.b, nil
}

// Int64 returns the integer payload, failing if the value is not an int64.
func (v Value) Int64() (int64, error) {
	if v.typ != TypeInt64 {
		return 0, errs.ErrInvalid
	}
	return v.i, nil
}

// Str returns the string payload, failing if the value is not a str.
func (v Value) Str() (string, error) {
	if v.typ != TypeStr {
		return "", errs.ErrInvalid
	}
	return v.s, nil
}

// Bin returns the binary payload, failing if the value is not a bin.
func (v Value) Bin() ([]byte, error) {
	if v.typ != TypeBin {
		return nil, errs.ErrInvalid
	}
	return v.bin, nil
}

func (v Value) String() string {
	switch v.typ {
	case TypeBool:
		return fmt.Sprintf("%t", v.b)
	case TypeInt64:
		return fmt.Sprintf("%d", v.i)
	case TypeStr:
		return v.s
	case TypeBin:
		return fmt.Sprintf("%x", v.bin)
	default:
		return "<invalid>"
	}
}

// size returns the encoded payload size in bytes.
func (v Value) size() int {
	switch v.typ {
	case TypeBool:
		return 1
	case TypeInt64:
		return 8
	case TypeStr:
		return len(v.s)
	case TypeBin:
		return len(v.bin)
	default:
		return 0
	}
}

// Encode writes the value payload into buf and returns the number of bytes
// written. bool is one byte, int64 is 8 bytes big endian, str is the UTF-8
// bytes, bin is the raw bytes. If the payload exceeds len(buf) no bytes are
// written and ErrOverflow is returned; values are never truncated.
func (v Value) Encode(buf []byte) (int, error) {
	if v.typ < TypeBool || v.typ > TypeBin {
		return 0, errs.ErrInvalid
	}
	sz := v.size()
	if sz > len(buf) {
		return 0, errs.ErrOverflow
	}
	switch v.typ {
	case TypeBool:
		if v.b {
			buf[0] = 1
		} else {
			buf[0] = 0
		}
	case TypeInt64:
		binary.BigEndian.PutUint64(buf, uint64(v.i))
	case TypeStr:
		copy(buf, v.s)
	case TypeBin:
		copy(buf, v.bin)
	}
	return sz, nil
}

// Decode interprets buf as a payload of the given type. Unknown tags and
// malformed payload lengths are decode errors, never misread bytes.
func Decode(t Type, buf []byte) (Value, error) {
	switch t {
	case TypeBool:
		if len(buf) != 1 {
			return Value{}, errs.ErrInvalid
		}
		return Bool(buf[0] != 0), nil
	case TypeInt64:
		if len(buf) != 8 {
			return Value{}, errs.ErrInvalid
		}
		return Int64(int64(binary.BigEndian.Uint64(buf))), nil
	case TypeStr:
		return Str(string(buf)), nil
	case TypeBin:
		b := make([]byte, len(buf))
		copy(b, buf)
		return Bin(b), nil
	default:
		return Value{}, errs.ErrInvalid
	}
}

// Source is implemented by transport connections and listeners that expose
// attributes of their own (for example "tcp.rtt"). GetAttr fails with
// ErrNoAttr for names the source does not know.
type Source interface {
	GetAttr(name string) (Value, error)
}
