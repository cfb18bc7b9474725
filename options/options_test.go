package options

import (
	"testing"
	"time"
)

var (
	optBool = NewBoolOption("test.bool")
	optInt  = NewIntOption("test.int")
	optDur  = NewTimeDurationOption("test.duration")
	optStr  = NewStringOption("test.string")
	optAny  = NewAnyOption("test.any")
)

func TestSetGet(t *testing.T) {
	opts := NewOptions()

	if _, ok := opts.GetOption(optInt); ok {
		t.Fatal("unset option present")
	}
	if v := opts.GetOptionDefault(optInt, 42); optInt.Value(v) != 42 {
		t.Fatalf("default: %v", v)
	}

	if err := opts.SetOption(optInt, 7); err != nil {
		t.Fatalf("set: %s", err)
	}
	v, ok := opts.GetOption(optInt)
	if !ok || optInt.Value(v) != 7 {
		t.Fatalf("get: %v, %t", v, ok)
	}
	if v = opts.GetOptionDefault(optInt, 42); optInt.Value(v) != 7 {
		t.Fatalf("default after set: %v", v)
	}
}

func TestValidation(t *testing.T) {
	opts := NewOptions()

	if err := opts.SetOption(optBool, "yes"); err != ErrInvalidOptionValue {
		t.Errorf("bool option with string: %v", err)
	}
	if err := opts.SetOption(optInt, int64(1)); err != ErrInvalidOptionValue {
		t.Errorf("int option with int64: %v", err)
	}
	if err := opts.SetOption(optDur, 100); err != ErrInvalidOptionValue {
		t.Errorf("duration option with int: %v", err)
	}
	if err := opts.SetOption(optStr, nil); err != ErrInvalidOptionValue {
		t.Errorf("string option with nil: %v", err)
	}
	if err := opts.SetOption(optDur, time.Second); err != nil {
		t.Errorf("duration option: %s", err)
	}
	// any options accept everything
	if err := opts.SetOption(optAny, struct{}{}); err != nil {
		t.Errorf("any option: %s", err)
	}
}

func TestWithOption(t *testing.T) {
	opts := NewOptions().
		WithOption(optInt, 1).
		WithOption(optStr, "x")

	if v, ok := opts.GetOption(optInt); !ok || optInt.Value(v) != 1 {
		t.Fatalf("int: %v, %t", v, ok)
	}
	if v, ok := opts.GetOption(optStr); !ok || optStr.Value(v) != "x" {
		t.Fatalf("str: %v, %t", v, ok)
	}
}

func TestOptionValues(t *testing.T) {
	opts := NewOptionsWithValues(OptionValues{
		optInt: 3,
		optStr: "y",
	})
	if v, ok := opts.GetOption(optInt); !ok || optInt.Value(v) != 3 {
		t.Fatalf("int: %v, %t", v, ok)
	}

	ovs := opts.OptionValues()
	if len(ovs) != 2 || ovs[optStr] != "y" {
		t.Fatalf("values: %v", ovs)
	}
	// the snapshot is a copy
	ovs[optInt] = 99
	if v, _ := opts.GetOption(optInt); optInt.Value(v) != 3 {
		t.Fatal("snapshot aliases the option set")
	}
}
