package core

import (
	"context"
	"net"
	"time"

	"github.com/jabolina/rendezvous/pkg/rendezvous/types"
	"github.com/jabolina/rendezvous/pkg/rendezvous/wire"
)

// Reactor is the single-threaded event loop that drives the coordinator.
// It is the only goroutine that ever calls into Table or Dispatcher, so
// neither of those types needs its own locking. The reactor's
// single-threadedness is the lock.
type Reactor struct {
	udp         *net.UDPConn
	slot        *slot
	dispatcher  *Dispatcher
	clock       types.Clock
	recvTimeout time.Duration
	log         types.Logger
}

// NewReactor builds a Reactor polling udp with the given receive timeout
// (1ms by default, short enough to bound stream latency to a single digit
// number of milliseconds regardless of datagram load).
func NewReactor(udp *net.UDPConn, slot *slot, dispatcher *Dispatcher, clock types.Clock, recvTimeout time.Duration, log types.Logger) *Reactor {
	return &Reactor{udp: udp, slot: slot, dispatcher: dispatcher, clock: clock, recvTimeout: recvTimeout, log: log}
}

// Run drives the loop until ctx is cancelled. Each tick: try a bounded
// datagram read; if nothing arrived, check the pending-stream slot; if
// neither produced a request, loop again. The reactor only ever exits on
// loss of its own primary socket (or context cancellation). Every other
// failure is local to one request and only reported via log.
func (r *Reactor) Run(ctx context.Context) {
	buf := make([]byte, wire.RequestSize+1)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		r.udp.SetReadDeadline(time.Now().Add(r.recvTimeout))
		n, addr, err := r.udp.ReadFromUDP(buf)
		if err == nil {
			r.handleDatagram(buf[:n], addr)
			continue
		}

		if isTimeout(err) {
			if data, ok := r.slot.tryRecv(); ok {
				r.handleStream(data)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
		r.log.Errorf("fatal datagram receive error, reactor stopping: %v", err)
		return
	}
}

func (r *Reactor) handleDatagram(b []byte, addr *net.UDPAddr) {
	if len(b) != wire.RequestSize {
		r.log.Warnf("dropping %d-byte datagram from %s, want %d", len(b), addr, wire.RequestSize)
		return
	}
	req, err := types.DecodeRequest(b)
	if err != nil {
		r.log.Warnf("dropping malformed datagram from %s: %v", addr, err)
		return
	}

	src := source{
		peerIP:   ipToUint32(addr.IP),
		peerPort: hostPortToNetwork(addr.Port),
		peerAddr: addr,
		streamID: noStreamID,
	}
	r.dispatcher.Dispatch(req, src, r.clock.NowSeconds())
}

func (r *Reactor) handleStream(data pendingStream) {
	if data.byteCount != wire.RequestSize {
		r.log.Warnf("dropping %d-byte stream frame, want %d", data.byteCount, wire.RequestSize)
		return
	}

	tcpAddr, _ := data.peer.(*net.TCPAddr)
	var ip net.IP
	var port int
	if tcpAddr != nil {
		ip = tcpAddr.IP
		port = tcpAddr.Port
	}

	conn := r.dispatcher.arena.get(data.streamID)
	src := source{
		peerIP:     ipToUint32(ip),
		peerPort:   hostPortToNetwork(port),
		streamConn: conn,
		streamID:   data.streamID,
	}
	r.dispatcher.Dispatch(data.request, src, r.clock.NowSeconds())
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}
