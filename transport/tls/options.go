package tls

import (
	"github.com/conmsg/conmsg/options"
)

type optionName int

const (
	optionNameTLSConfig optionName = iota
	optionNameCertFile
	optionNameKeyFile
	optionNameCAFile
	optionNameInsecureSkipVerify
	optionNameServerName
)

// Options
var (
	// OptionTLSConfig supplies a complete *tls.Config. When set it wins
	// over the file based options below.
	OptionTLSConfig = options.NewAnyOption(optionNameTLSConfig)
	// OptionCertFile and OptionKeyFile name a PEM certificate/key pair.
	// Required on listeners unless OptionTLSConfig carries a certificate.
	OptionCertFile = options.NewStringOption(optionNameCertFile)
	OptionKeyFile  = options.NewStringOption(optionNameKeyFile)
	// OptionCAFile names a PEM bundle used to verify the peer.
	OptionCAFile = options.NewStringOption(optionNameCAFile)
	// OptionInsecureSkipVerify disables server certificate verification.
	OptionInsecureSkipVerify = options.NewBoolOption(optionNameInsecureSkipVerify)
	// OptionServerName overrides the SNI server name.
	OptionServerName = options.NewStringOption(optionNameServerName)
)
