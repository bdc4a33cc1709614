package core

import (
	"net"

	"github.com/jabolina/rendezvous/pkg/rendezvous/types"
)

// source describes where a request came from and how to reply to it: the
// peer address as observed by recvfrom(2)/accept(3), the UDP socket to send
// datagrams on, and, if the request arrived over a stream, the connection
// to reply on instead.
type source struct {
	peerIP     uint32
	peerPort   uint16
	peerAddr   *net.UDPAddr // nil when the request arrived over a stream
	streamConn net.Conn     // nil when the request arrived over the datagram socket
	streamID   int          // the arena ID for streamConn, noStreamID otherwise
}

func (s source) isStream() bool { return s.streamConn != nil }

// Dispatcher implements the two request handlers, POST and ASK. It owns no
// goroutines of its own: the reactor calls it once per decoded request, so
// all table mutation stays on the reactor's single thread.
type Dispatcher struct {
	table *Table
	arena *handleArena
	udp   *net.UDPConn
	log   types.Logger
}

// NewDispatcher builds a Dispatcher bound to the given table and UDP
// socket. udp is used both to reply to datagram-originated requests and, on
// an ASK hit against a datagram-registered server, to send that server's
// notification; receiving on it is the reactor's job.
func NewDispatcher(table *Table, arena *handleArena, udp *net.UDPConn, log types.Logger) *Dispatcher {
	return &Dispatcher{table: table, arena: arena, udp: udp, log: log}
}

// Dispatch decodes req's type and routes it to the POST or ASK handler. now
// is the reactor's current clock reading, threaded through so every
// mutation within a single dispatch call sees a consistent time.
func (d *Dispatcher) Dispatch(req types.Request, src source, now int64) {
	switch req.Type {
	case types.PostInfo:
		d.handlePost(req, src, now)
	case types.AskInfo:
		d.handleAsk(req, src, now)
	default:
		d.log.Warnf("dropping request with unknown type tag %d from %s", req.Type, d.describe(src))
	}
}

// handlePost handles a POST_INFO request: the coordinator observes the
// sender's source IP and port, builds an endpoint from them plus the
// advertised public port, and upserts it into the table. No reply is sent.
func (d *Dispatcher) handlePost(req types.Request, src source, now int64) {
	ep := types.Endpoint{
		IP:          src.peerIP,
		PrivatePort: src.peerPort,
		PublicPort:  req.Entry.PublicPort,
	}
	streamID := noStreamID
	if src.isStream() {
		streamID = src.streamID
	}
	d.table.Upsert(src.peerIP, ep, streamID, now)
}

// handleAsk handles an ASK_INFO request: look up the requested (ip, public_port).
// On a miss, reply with the sentinel. On a hit, notify the server over its
// own channel (stream if present, else UDP) and reply to the asker with
// the matched private_port, then consume the entry so a second ASK for the
// same key sees a miss until the server re-POSTs.
func (d *Dispatcher) handleAsk(req types.Request, src source, now int64) {
	requestedIP := req.Entry.IP
	requestedPort := req.Entry.PublicPort

	matched, streamID, ok := d.table.Lookup(requestedIP, requestedPort, now)
	if !ok {
		miss := types.Endpoint{
			IP:          req.Entry.IP,
			PrivatePort: types.NotFoundSentinel,
			PublicPort:  req.Entry.PublicPort,
		}
		d.reply(src, miss)
		return
	}

	serverNotice := types.Endpoint{
		IP:          src.peerIP,
		PrivatePort: src.peerPort,
		PublicPort:  0,
	}
	d.notifyServer(matched, streamID, serverNotice)

	clientReply := types.Endpoint{
		IP:          req.Entry.IP,
		PrivatePort: matched.PrivatePort,
		PublicPort:  req.Entry.PublicPort,
	}
	d.reply(src, clientReply)

	d.table.ConsumeStream(requestedIP, requestedPort)
}

// notifyServer sends the asker's endpoint to the matched server over the
// channel the server registered on: its stream handle if it has one, else
// the shared datagram socket. Failures are logged and otherwise ignored;
// the peer will retransmit.
func (d *Dispatcher) notifyServer(matched types.Endpoint, streamID int, notice types.Endpoint) {
	frame := notice.Encode()
	if conn := d.arena.get(streamID); conn != nil {
		if _, err := conn.Write(frame[:]); err != nil {
			d.log.Warnf("failed notifying server over stream: %v", err)
		}
		return
	}

	addr := &net.UDPAddr{IP: uint32ToIP(matched.IP), Port: int(portToHost(matched.PrivatePort))}
	if _, err := d.udp.WriteToUDP(frame[:], addr); err != nil {
		d.log.Warnf("failed notifying server over udp: %v", err)
	}
}

// reply sends an Endpoint back to the peer over the channel it arrived on.
func (d *Dispatcher) reply(src source, ep types.Endpoint) {
	frame := ep.Encode()
	if src.isStream() {
		if _, err := src.streamConn.Write(frame[:]); err != nil {
			d.log.Warnf("failed replying over stream: %v", err)
		}
		return
	}
	if _, err := d.udp.WriteToUDP(frame[:], src.peerAddr); err != nil {
		d.log.Warnf("failed replying over udp: %v", err)
	}
}

func (d *Dispatcher) describe(src source) string {
	if src.isStream() {
		return "stream:" + src.streamConn.RemoteAddr().String()
	}
	if src.peerAddr != nil {
		return "udp:" + src.peerAddr.String()
	}
	return "unknown"
}
