package inproc

import (
	"github.com/conmsg/conmsg/options"
)

type optionName int

const (
	optionNameBacklog optionName = iota
)

// Options
var (
	// OptionBacklog bounds how many dialed connections may wait for
	// Accept before further dials block. Default 16.
	OptionBacklog = options.NewIntOption(optionNameBacklog)
)
