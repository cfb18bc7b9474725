//go:build windows

package ux

import (
	"github.com/conmsg/conmsg/options"
)

type optionName int

const (
	optionNameSecurityDescriptor optionName = iota
	optionNameInputBufferSize
	optionNameOutputBufferSize
)

// Options
var (
	// OptionSecurityDescriptor is a Windows security descriptor in SDDL
	// form, applied to the listener's pipe before Listen.
	OptionSecurityDescriptor = options.NewStringOption(optionNameSecurityDescriptor)
	// OptionInputBufferSize is the named pipe input buffer size in bytes.
	OptionInputBufferSize = options.NewIntOption(optionNameInputBufferSize)
	// OptionOutputBufferSize is the named pipe output buffer size in bytes.
	OptionOutputBufferSize = options.NewIntOption(optionNameOutputBufferSize)
)
