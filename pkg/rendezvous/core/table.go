package core

import (
	"github.com/jabolina/rendezvous/pkg/rendezvous/types"
)

// entry is one record in the registration table: a deadline, an optional
// stream handle ID (noStreamID if the entry came in over the datagram
// socket), and the endpoint it describes.
type entry struct {
	deadline int64
	streamID int
	endpoint types.Endpoint
}

// Table is the per-coordinator registration table: a mapping from a
// server's observed public IP to an ordered (FIFO) sequence of entries.
// Only the reactor goroutine is expected to call Upsert/Lookup/
// ConsumeStream. The single mutator is enforced by construction, not by
// a mutex, so Table does no internal locking of its own.
type Table struct {
	cap   int
	ttl   int64
	arena *handleArena
	log   types.Logger
	byIP  map[uint32][]*entry
}

// NewTable builds a Table with the given per-IP cap and TTL in seconds.
func NewTable(cap int, ttlSeconds int64, arena *handleArena, log types.Logger) *Table {
	return &Table{
		cap:   cap,
		ttl:   ttlSeconds,
		arena: arena,
		log:   log,
		byIP:  make(map[uint32][]*entry),
	}
}

// Upsert implements the POST path: locate an entry in table[ip] whose
// PublicPort matches, refresh it in place, or append a new one (evicting
// the oldest on overflow). streamID is noStreamID when the POST arrived
// over the datagram socket.
func (t *Table) Upsert(ip uint32, ep types.Endpoint, streamID int, now int64) {
	entries := t.byIP[ip]
	for _, e := range entries {
		if e.endpoint.PublicPort == ep.PublicPort {
			wasLive := now <= e.deadline
			oldStream := e.streamID
			e.deadline = now + t.ttl
			e.endpoint = ep
			e.streamID = streamID
			if oldStream != streamID {
				t.arena.close(oldStream)
			}
			if !wasLive {
				t.log.Infof("POST refreshed expired entry ip=%d public_port=%d", ip, ep.PublicPort)
			}
			return
		}
	}

	if len(entries) >= t.cap {
		evicted := entries[0]
		t.arena.close(evicted.streamID)
		entries = entries[1:]
		t.log.Debugf("evicted oldest registration for ip=%d at cap %d", ip, t.cap)
	}

	t.log.Infof("POST ip=%d public_port=%d", ip, ep.PublicPort)
	entries = append(entries, &entry{
		deadline: now + t.ttl,
		streamID: streamID,
		endpoint: ep,
	})
	t.byIP[ip] = entries
}

// Lookup implements the ASK path: scan table[ip] in insertion order,
// skipping stale entries, and return the first live match on publicPort.
func (t *Table) Lookup(ip uint32, publicPort uint16, now int64) (types.Endpoint, int, bool) {
	for _, e := range t.byIP[ip] {
		if e.deadline < now {
			continue
		}
		if e.endpoint.PublicPort == publicPort {
			return e.endpoint, e.streamID, true
		}
	}
	return types.Endpoint{}, noStreamID, false
}

// ConsumeStream forces the matched entry's deadline into the past so a
// subsequent lookup treats it as stale, implementing at-most-once server
// notification per POSTed entry, and releases its stream handle (if any)
// now that the server notification has been sent along it. It must be
// called with the same (ip, publicPort) pair Lookup was just called with.
//
// The deadline is set to -1 rather than 0: NowSeconds never returns a
// negative value, so this guarantees staleness even immediately after
// startup, when "now" itself may still read 0.
func (t *Table) ConsumeStream(ip uint32, publicPort uint16) {
	for _, e := range t.byIP[ip] {
		if e.endpoint.PublicPort == publicPort {
			e.deadline = -1
			t.arena.close(e.streamID)
			e.streamID = noStreamID
			return
		}
	}
}

// Len reports the number of entries (live or stale) currently tracked for
// ip, used by tests to verify the per-IP cap.
func (t *Table) Len(ip uint32) int {
	return len(t.byIP[ip])
}
