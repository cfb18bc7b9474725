// Package all registers every built-in transport driver. Import it for its
// side effects:
//
//	import _ "github.com/conmsg/conmsg/transport/all"
package all

import (
	_ "github.com/conmsg/conmsg/transport/inproc"
	_ "github.com/conmsg/conmsg/transport/tcp"
	_ "github.com/conmsg/conmsg/transport/tls"
	_ "github.com/conmsg/conmsg/transport/ux"
	_ "github.com/conmsg/conmsg/transport/ws"
)
