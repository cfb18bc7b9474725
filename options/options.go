// Package options provides typed option descriptors and an option container
// used to configure sockets and transport drivers.
package options

import (
	"errors"
	"sync"
	"time"
)

type (
	// Options is an option set.
	Options interface {
		SetOption(opt Option, val interface{}) error
		WithOption(opt Option, val interface{}) Options
		GetOption(opt Option) (val interface{}, ok bool)
		GetOptionDefault(opt Option, def interface{}) (val interface{})
		OptionValues() OptionValues
	}

	// Option is an option item.
	Option interface {
		Name() interface{}
		Validate(val interface{}) error
	}

	// OptionValues is a literal option/value mapping, convenient for
	// one-shot configuration at dial/listen time.
	OptionValues map[Option]interface{}

	options struct {
		sync.RWMutex
		opts map[Option]interface{}
	}

	baseOption struct {
		name interface{}
	}
)

// errors
var (
	ErrInvalidOptionValue = errors.New("invalid option value")
)

// NewOptions creates an empty option set.
func NewOptions() Options {
	return &options{opts: make(map[Option]interface{})}
}

// NewOptionsWithValues creates an option set from an OptionValues literal.
func NewOptionsWithValues(ovs OptionValues) Options {
	o := &options{opts: make(map[Option]interface{}, len(ovs))}
	for opt, val := range ovs {
		o.opts[opt] = val
	}
	return o
}

func (o *options) SetOption(opt Option, val interface{}) error {
	if err := opt.Validate(val); err != nil {
		return err
	}
	o.Lock()
	o.opts[opt] = val
	o.Unlock()
	return nil
}

func (o *options) WithOption(opt Option, val interface{}) Options {
	o.SetOption(opt, val)
	return o
}

func (o *options) GetOption(opt Option) (val interface{}, ok bool) {
	o.RLock()
	val, ok = o.opts[opt]
	o.RUnlock()
	return
}

func (o *options) GetOptionDefault(opt Option, def interface{}) (val interface{}) {
	var ok bool
	if val, ok = o.GetOption(opt); !ok {
		val = def
	}
	return
}

func (o *options) OptionValues() OptionValues {
	o.RLock()
	defer o.RUnlock()

	res := make(OptionValues, len(o.opts))
	for opt, val := range o.opts {
		res[opt] = val
	}
	return res
}

func (o *baseOption) Name() interface{} {
	return o.name
}

type (
	// BoolOption is an option with a bool value.
	BoolOption interface {
		Option
		Value(val interface{}) bool
	}

	boolOption struct {
		baseOption
	}

	// IntOption is an option with an int value.
	IntOption interface {
		Option
		Value(val interface{}) int
	}

	intOption struct {
		baseOption
	}

	// TimeDurationOption is an option with a time duration value.
	TimeDurationOption interface {
		Option
		Value(val interface{}) time.Duration
	}

	timeDurationOption struct {
		baseOption
	}

	// StringOption is an option with a string value.
	StringOption interface {
		Option
		Value(val interface{}) string
	}

	stringOption struct {
		baseOption
	}

	// AnyOption is an option with an arbitrary value.
	AnyOption interface {
		Option
		Value(val interface{}) interface{}
	}

	anyOption struct {
		baseOption
	}
)

// NewBoolOption creates a bool option.
func NewBoolOption(name interface{}) BoolOption {
	return &boolOption{baseOption{name}}
}

func (o *boolOption) Validate(val interface{}) error {
	if _, ok := val.(bool); !ok {
		return ErrInvalidOptionValue
	}
	return nil
}

func (o *boolOption) Value(val interface{}) bool {
	return val.(bool)
}

// NewIntOption creates an int option.
func NewIntOption(name interface{}) IntOption {
	return &intOption{baseOption{name}}
}

func (o *intOption) Validate(val interface{}) error {
	if _, ok := val.(int); !ok {
		return ErrInvalidOptionValue
	}
	return nil
}

func (o *intOption) Value(val interface{}) int {
	return val.(int)
}

// NewTimeDurationOption creates a time duration option.
func NewTimeDurationOption(name interface{}) TimeDurationOption {
	return &timeDurationOption{baseOption{name}}
}

func (o *timeDurationOption) Validate(val interface{}) error {
	if _, ok := val.(time.Duration); !ok {
		return ErrInvalidOptionValue
	}
	return nil
}

func (o *timeDurationOption) Value(val interface{}) time.Duration {
	return val.(time.Duration)
}

// NewStringOption creates a string option.
func NewStringOption(name interface{}) StringOption {
	return &stringOption{baseOption{name}}
}

func (o *stringOption) Validate(val interface{}) error {
	if _, ok := val.(string); !ok {
		return ErrInvalidOptionValue
	}
	return nil
}

func (o *stringOption) Value(val interface{}) string {
	return val.(string)
}

// NewAnyOption creates an option holding an arbitrary value.
func NewAnyOption(name interface{}) AnyOption {
	return &anyOption{baseOption{name}}
}

func (o *anyOption) Validate(val interface{}) error {
	return nil
}

func (o *anyOption) Value(val interface{}) interface{} {
	return val
}
