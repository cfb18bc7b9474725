package conmsg

import (
	"github.com/conmsg/conmsg/options"
)

type optionName int

const (
	optionNameSendQueueSize optionName = iota
	optionNameRecvQueueSize
	optionNameAcceptQueueSize
)

// Options
var (
	// OptionSendQueueSize bounds messages buffered for sending. A full
	// queue makes Send block, or fail with ErrWouldBlock. Default 64.
	OptionSendQueueSize = options.NewIntOption(optionNameSendQueueSize)
	// OptionRecvQueueSize bounds received messages buffered for
	// Receive before backpressure reaches the transport. Default 64.
	OptionRecvQueueSize = options.NewIntOption(optionNameRecvQueueSize)
	// OptionAcceptQueueSize bounds established inbound connections
	// waiting for Accept. Default 8.
	OptionAcceptQueueSize = options.NewIntOption(optionNameAcceptQueueSize)
)

const (
	defaultSendQueueSize   = 64
	defaultRecvQueueSize   = 64
	defaultAcceptQueueSize = 8
)
