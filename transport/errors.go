package transport

import (
	"github.com/conmsg/conmsg/errs"
)

// errors
var (
	ErrConnRefused  = errs.ErrConnRefused
	ErrNotListening = errs.New(errs.EINVAL, "not listening")
)
