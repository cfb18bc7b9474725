package conmsg

import (
	"github.com/VictoriaMetrics/metrics"
)

// process wide counters, exposable via metrics.WritePrometheus
var (
	statConnsDialed   = metrics.NewCounter(`conmsg_connections_dialed_total`)
	statConnsAccepted = metrics.NewCounter(`conmsg_connections_accepted_total`)
	statSocketsClosed = metrics.NewCounter(`conmsg_sockets_closed_total`)
	statMsgsSent      = metrics.NewCounter(`conmsg_messages_sent_total`)
	statMsgsReceived  = metrics.NewCounter(`conmsg_messages_received_total`)
	statBytesSent     = metrics.NewCounter(`conmsg_bytes_sent_total`)
	statBytesReceived = metrics.NewCounter(`conmsg_bytes_received_total`)
)
