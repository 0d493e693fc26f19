// Package ratelimit throttles order submissions per originating address.
// The default limiter is process-local and in-memory: a cheap abuse
// deterrent, not a durable or distributed guarantee. A Redis-backed
// implementation of the same interface exists for multi-instance setups.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter reports whether one more request from key is allowed inside the
// current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type bucket struct {
	windowStart time.Time
	count       int
}

// MemoryLimiter is a fixed-window counter keyed by address. Stale keys are
// swept once the map grows past a threshold.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*bucket

	now func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

const sweepThreshold = 1024

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if len(l.buckets) > sweepThreshold {
		for k, b := range l.buckets {
			if now.Sub(b.windowStart) >= l.window {
				delete(l.buckets, k)
			}
		}
	}

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) >= l.window {
		l.buckets[key] = &bucket{windowStart: now, count: 1}
		return l.limit >= 1, nil
	}

	if b.count >= l.limit {
		return false, nil
	}
	b.count++
	return true, nil
}
