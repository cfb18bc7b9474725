package ws

import (
	"github.com/conmsg/conmsg/options"
)

type optionName int

const (
	optionNameReadBufferSize optionName = iota
	optionNameWriteBufferSize
	optionNameOriginChecker
	optionNamePendingSize
)

// Options
var (
	OptionReadBufferSize  = options.NewIntOption(optionNameReadBufferSize)
	OptionWriteBufferSize = options.NewIntOption(optionNameWriteBufferSize)
	// OptionOriginChecker holds a func(*http.Request) bool used to vet
	// upgrade requests. Default accepts every origin.
	OptionOriginChecker = options.NewAnyOption(optionNameOriginChecker)
	// OptionPendingSize bounds upgraded connections waiting for Accept.
	OptionPendingSize = options.NewIntOption(optionNamePendingSize)
)
