package types

import "time"

// MonotonicClock reads time.Now() through the monotonic clock reading Go
// already carries on time.Time, truncated to whole seconds. It is the
// production Clock; tests use a fake that can be advanced deterministically.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock creates a clock whose NowSeconds is relative to the
// moment it was constructed, so values stay small and readable in logs.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (c *MonotonicClock) NowSeconds() int64 {
	return int64(time.Since(c.start).Seconds())
}
