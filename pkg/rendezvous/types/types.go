// Package types holds the wire-level and table-level data shapes shared
// across the coordinator: the endpoint triple, the two request kinds, and
// the small set of interfaces (Logger, Clock) the core package depends on
// without owning their construction.
package types

import "fmt"

// RequestType distinguishes the two request kinds a peer can send.
type RequestType uint32

const (
	// AskInfo is sent by a client asking for a server's private mapping.
	AskInfo RequestType = iota
	// PostInfo is sent by a server registering its public port.
	PostInfo
)

func (t RequestType) String() string {
	switch t {
	case AskInfo:
		return "ASK_INFO"
	case PostInfo:
		return "POST_INFO"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint32(t))
	}
}

// Endpoint is the (ip, private_port, public_port) triple carried on the
// wire. IP holds the IPv4 address as a uint32 whose big-endian bytes are
// the four address octets (127.0.0.1 is 0x7f000001); the ports hold plain
// port numbers. The wire codec lays all three out in network byte order.
type Endpoint struct {
	IP          uint32
	PrivatePort uint16
	PublicPort  uint16
}

// NotFoundSentinel is the PrivatePort value used to signal "no such
// registration" on an ASK miss.
const NotFoundSentinel uint16 = 0

// Request is the 12-byte frame a peer sends: a type tag plus an Endpoint.
// For POST_INFO only Entry.PublicPort is meaningful; for ASK_INFO,
// Entry.IP and Entry.PublicPort identify the desired server.
type Request struct {
	Type  RequestType
	Entry Endpoint
}

// Logger is the leveled logging surface every coordinator component takes
// as a dependency. Concrete implementations live in internal/logging.
type Logger interface {
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

// Clock exposes a single monotonic now-in-seconds reading, used by the
// registration table to stamp and check entry deadlines. Abstracted so
// tests can control time without sleeping.
type Clock interface {
	NowSeconds() int64
}
