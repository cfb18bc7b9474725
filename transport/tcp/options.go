package tcp

import (
	"github.com/conmsg/conmsg/options"
)

type optionName int

const (
	optionNameNoDelay optionName = iota
	optionNameKeepAlive
	optionNameKeepAliveTime
)

// Options
var (
	// OptionNoDelay disables Nagle's algorithm. Default true.
	OptionNoDelay = options.NewBoolOption(optionNameNoDelay)
	// OptionKeepAlive enables TCP keep-alive probes. Default true.
	OptionKeepAlive = options.NewBoolOption(optionNameKeepAlive)
	// OptionKeepAliveTime sets the keep-alive period.
	OptionKeepAliveTime = options.NewTimeDurationOption(optionNameKeepAliveTime)
)
