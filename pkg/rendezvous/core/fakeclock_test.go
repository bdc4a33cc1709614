package core

import "sync/atomic"

// fakeClock lets tests control "now" deterministically instead of sleeping
// through a 30 second TTL.
type fakeClock struct {
	now int64
}

func (c *fakeClock) NowSeconds() int64 {
	return atomic.LoadInt64(&c.now)
}

func (c *fakeClock) Set(v int64) {
	atomic.StoreInt64(&c.now, v)
}

func (c *fakeClock) Advance(delta int64) {
	atomic.AddInt64(&c.now, delta)
}
