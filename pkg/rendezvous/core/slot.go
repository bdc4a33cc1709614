package core

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/jabolina/rendezvous/pkg/rendezvous/types"
)

// pendingStream is the tuple a stream reader hands the reactor: the peer
// address as observed by accept(3), the handle ID the reactor can use to
// reply (and the dispatcher can hand off to an ASK hit), the decoded
// request, and the byte count actually read (so a short read is visible to
// the reactor the same way a mismatched UDP datagram size is).
type pendingStream struct {
	peer      net.Addr
	streamID  int
	request   types.Request
	byteCount int
}

// slot is a capacity-1 bounded handoff from the many stream reader
// goroutines to the one reactor goroutine: a mutex guarding the data plus
// an atomic "full" flag the reactor can poll without ever taking the lock
// on its fast path.
type slot struct {
	mu   sync.Mutex
	full int32
	data pendingStream
}

func newSlot() *slot {
	return &slot{}
}

// trySend deposits data if the slot is empty. It returns false without
// blocking if the slot is already full; callers (stream readers) retry.
func (s *slot) trySend(data pendingStream) bool {
	if atomic.LoadInt32(&s.full) != 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if atomic.LoadInt32(&s.full) != 0 {
		return false
	}
	s.data = data
	atomic.StoreInt32(&s.full, 1)
	return true
}

// tryRecv drains the slot if it is full. The reactor is the only caller and
// never holds the mutex on the fast "empty" path.
func (s *slot) tryRecv() (pendingStream, bool) {
	if atomic.LoadInt32(&s.full) == 0 {
		return pendingStream{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if atomic.LoadInt32(&s.full) == 0 {
		return pendingStream{}, false
	}
	data := s.data
	s.data = pendingStream{}
	atomic.StoreInt32(&s.full, 0)
	return data, true
}
