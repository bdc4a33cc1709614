package core

import (
	"sync"
	"testing"

	"github.com/jabolina/rendezvous/pkg/rendezvous/types"
)

func TestSlotTrySendRecvRoundTrip(t *testing.T) {
	s := newSlot()
	data := pendingStream{streamID: 7, request: types.Request{Type: types.PostInfo}}

	if !s.trySend(data) {
		t.Fatalf("trySend on empty slot should succeed")
	}
	got, ok := s.tryRecv()
	if !ok {
		t.Fatalf("tryRecv after trySend should succeed")
	}
	if got.streamID != 7 {
		t.Fatalf("streamID = %d, want 7", got.streamID)
	}
}

func TestSlotTrySendFailsWhenFull(t *testing.T) {
	s := newSlot()
	if !s.trySend(pendingStream{streamID: 1}) {
		t.Fatalf("first trySend should succeed")
	}
	if s.trySend(pendingStream{streamID: 2}) {
		t.Fatalf("second trySend on a full slot should fail")
	}
}

func TestSlotTryRecvFailsWhenEmpty(t *testing.T) {
	s := newSlot()
	if _, ok := s.tryRecv(); ok {
		t.Fatalf("tryRecv on an empty slot should fail")
	}
}

// many producers hammering trySend concurrently while a single consumer
// drains must never lose or duplicate a handoff.
func TestSlotConcurrentProducersSingleConsumer(t *testing.T) {
	s := newSlot()
	const n = 200

	var wg sync.WaitGroup
	seen := make(chan int, n)
	done := make(chan struct{})

	go func() {
		count := 0
		for count < n {
			if data, ok := s.tryRecv(); ok {
				seen <- data.streamID
				count++
			}
		}
		close(done)
	}()

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for !s.trySend(pendingStream{streamID: id}) {
			}
		}(i)
	}
	wg.Wait()
	<-done
	close(seen)

	got := make(map[int]bool)
	for id := range seen {
		if got[id] {
			t.Fatalf("streamID %d delivered more than once", id)
		}
		got[id] = true
	}
	if len(got) != n {
		t.Fatalf("delivered %d distinct handoffs, want %d", len(got), n)
	}
}
