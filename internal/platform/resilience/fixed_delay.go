package resilience

import (
	"context"
	"sync"
	"time"
)

// FixedDelayLimiter spaces successive calls by a fixed interval. It backs
// self-throttled loops against upstream rate limits; a zero or negative
// delay disables waiting so tests run without wall-clock sleeps.
type FixedDelayLimiter struct {
	delay time.Duration

	mu   sync.Mutex
	last time.Time
}

func NewFixedDelayLimiter(delay time.Duration) *FixedDelayLimiter {
	return &FixedDelayLimiter{delay: delay}
}

// Wait blocks until the configured interval since the previous Wait has
// elapsed or the context is cancelled. The first call never blocks.
func (l *FixedDelayLimiter) Wait(ctx context.Context) error {
	if l == nil || l.delay <= 0 {
		return ctx.Err()
	}

	l.mu.Lock()
	now := time.Now()
	wait := l.delay - now.Sub(l.last)
	if wait <= 0 {
		l.last = now
		l.mu.Unlock()
		return ctx.Err()
	}
	l.last = now.Add(wait)
	l.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
