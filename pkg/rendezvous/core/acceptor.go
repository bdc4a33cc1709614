package core

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/jabolina/rendezvous/pkg/rendezvous/types"
	"github.com/jabolina/rendezvous/pkg/rendezvous/wire"
)

// Acceptor perpetually accepts incoming stream connections on the
// service's TCP listener and spawns a per-connection reader for each one.
// listen(2) must already have happened: the caller passes in a net.Listener
// that is already bound and listening, and the accept loop never re-enters
// listen() itself.
type Acceptor struct {
	listener net.Listener
	slot     *slot
	arena    *handleArena
	invoker  Invoker
	log      types.Logger
}

// NewAcceptor builds an Acceptor over an already-listening net.Listener.
func NewAcceptor(listener net.Listener, slot *slot, arena *handleArena, invoker Invoker, log types.Logger) *Acceptor {
	return &Acceptor{listener: listener, slot: slot, arena: arena, invoker: invoker, log: log}
}

// Run accepts connections until ctx is cancelled or the listener fails.
// accept(3) failures are transient: logged, slept off, retried. A failure
// from the listener itself closing (which happens when ctx cancellation
// triggers a Close elsewhere) ends the loop quietly.
func (a *Acceptor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, err := a.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			a.log.Warnf("stream accept failed: %v", err)
			time.Sleep(time.Millisecond)
			continue
		}

		a.invoker.Spawn(func() {
			newStreamReader(conn, a.slot, a.arena, a.log).run()
		})
	}
}

// streamReader is spawned once per accepted connection. It blocks on
// exactly one fixed-size read, then loops trying to deposit the decoded
// request into the shared slot until it succeeds.
type streamReader struct {
	conn  net.Conn
	slot  *slot
	arena *handleArena
	log   types.Logger
}

func newStreamReader(conn net.Conn, slot *slot, arena *handleArena, log types.Logger) *streamReader {
	return &streamReader{conn: conn, slot: slot, arena: arena, log: log}
}

func (r *streamReader) run() {
	buf := make([]byte, wire.RequestSize)
	n, err := io.ReadFull(r.conn, buf)
	if err != nil {
		r.log.Warnf("short or failed stream read from %s: %v", r.conn.RemoteAddr(), err)
		r.conn.Close()
		return
	}

	req, err := types.DecodeRequest(buf[:n])
	if err != nil {
		r.log.Warnf("malformed stream request from %s: %v", r.conn.RemoteAddr(), err)
		r.conn.Close()
		return
	}

	streamID := r.arena.store(r.conn)
	data := pendingStream{
		peer:      r.conn.RemoteAddr(),
		streamID:  streamID,
		request:   req,
		byteCount: n,
	}

	for !r.slot.trySend(data) {
		// Busy-wait for the reactor to drain the slot. A reader that loses
		// the race keeps its request and simply waits for the next drain.
	}
}
