// Package core implements the coordinator: the registration table, the
// dual-transport listening pipeline, the main reactor, the request
// dispatcher, and the concurrency primitives that tie them together.
// Everything else in the repository exists to configure, log for, or
// exercise this package.
package core

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jabolina/rendezvous/pkg/rendezvous/types"
)

// Options configures a Coordinator: everything the caller can reasonably
// want to change about the runtime lives here, while the pieces that are
// always constructed fresh (the table, the arena, the slot) are the
// Coordinator's own business.
type Options struct {
	Port        int
	Cap         int
	TTLSeconds  int64
	RecvTimeout time.Duration
	Logger      types.Logger
	Clock       types.Clock
	Invoker     Invoker
}

// Coordinator owns every long-lived piece of the service: the registration
// table, the stream handle arena, the pending-stream slot, the UDP socket,
// the TCP listener, and the reactor/acceptor goroutines that drive them.
// Constructed once at startup and injected into its reactor and acceptor,
// rather than relying on process-wide globals.
type Coordinator struct {
	opts     Options
	table    *Table
	arena    *handleArena
	slot     *slot
	udp      *net.UDPConn
	tcp      net.Listener
	reactor  *Reactor
	acceptor *Acceptor
	cancel   context.CancelFunc
}

// New binds the UDP and TCP sockets on opts.Port and wires up the table,
// dispatcher, reactor, and acceptor. Socket creation, bind, and setsockopt
// failures are fatal initialization errors returned to the caller. New
// never logs-and-exits itself, leaving that decision to main().
func New(opts Options) (*Coordinator, error) {
	if opts.Logger == nil {
		return nil, fmt.Errorf("rendezvous: Options.Logger is required")
	}
	if opts.Clock == nil {
		opts.Clock = types.NewMonotonicClock()
	}
	if opts.Invoker == nil {
		opts.Invoker = NewInvoker()
	}
	if opts.Cap <= 0 {
		opts.Cap = 5
	}
	if opts.TTLSeconds <= 0 {
		opts.TTLSeconds = 30
	}
	if opts.RecvTimeout <= 0 {
		opts.RecvTimeout = time.Millisecond
	}

	udpAddr := &net.UDPAddr{Port: opts.Port}
	udpConn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("rendezvous: failed binding udp socket: %w", err)
	}

	tcpListener, err := listenTCPReusable(opts.Port)
	if err != nil {
		udpConn.Close()
		return nil, fmt.Errorf("rendezvous: failed binding tcp socket: %w", err)
	}

	arena := newHandleArena()
	table := NewTable(opts.Cap, opts.TTLSeconds, arena, opts.Logger)
	dispatcher := NewDispatcher(table, arena, udpConn, opts.Logger)
	pendingSlot := newSlot()
	reactor := NewReactor(udpConn, pendingSlot, dispatcher, opts.Clock, opts.RecvTimeout, opts.Logger)
	acceptor := NewAcceptor(tcpListener, pendingSlot, arena, opts.Invoker, opts.Logger)

	return &Coordinator{
		opts:     opts,
		table:    table,
		arena:    arena,
		slot:     pendingSlot,
		udp:      udpConn,
		tcp:      tcpListener,
		reactor:  reactor,
		acceptor: acceptor,
	}, nil
}

// Start spawns the acceptor in the background and runs the reactor loop on
// the calling goroutine, returning when the coordinator is stopped or the
// reactor's own socket fails fatally: one long-lived loop the caller
// blocks on, one spawned in the background.
func (c *Coordinator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.opts.Invoker.Spawn(func() {
		c.acceptor.Run(ctx)
	})
	c.reactor.Run(ctx)
}

// Stop cancels the acceptor and reactor loops and releases the sockets.
func (c *Coordinator) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.udp.Close()
	c.tcp.Close()
}

// Addr returns the bound UDP address, mainly useful in tests that bind to
// port 0 and need to discover the actual ephemeral port.
func (c *Coordinator) Addr() net.Addr {
	return c.udp.LocalAddr()
}

// TableLen exposes the per-IP registration count for tests verifying the
// cap on entries kept per IP.
func (c *Coordinator) TableLen(ip uint32) int {
	return c.table.Len(ip)
}
