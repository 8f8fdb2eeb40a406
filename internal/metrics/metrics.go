package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Latency keeps a running total so callers can report a mean.
type Latency struct {
	count Counter
	nanos uint64
}

func (l *Latency) Observe(d time.Duration) {
	l.count.Inc()
	atomic.AddUint64(&l.nanos, uint64(d))
}

func (l *Latency) Mean() time.Duration {
	n := l.count.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(atomic.LoadUint64(&l.nanos) / n)
}

// APIStats counts outcomes of calls to the remote API.
type APIStats struct {
	Requests  Counter
	Failures  Counter
	Conflicts Counter
	Throttled Counter
	Latency   Latency
}

// Snapshot is a point-in-time copy of APIStats.
type Snapshot struct {
	Requests    uint64
	Failures    uint64
	Conflicts   uint64
	Throttled   uint64
	MeanLatency time.Duration
}

func (s *APIStats) Snapshot() Snapshot {
	return Snapshot{
		Requests:    s.Requests.Load(),
		Failures:    s.Failures.Load(),
		Conflicts:   s.Conflicts.Load(),
		Throttled:   s.Throttled.Load(),
		MeanLatency: s.Latency.Mean(),
	}
}
