package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	l := NewMemoryLimiter(10, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d inside the window", i+1)
	}

	ok, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok, "11th request in the same window")

	// a different address is unaffected
	ok, _ = l.Allow(ctx, "5.6.7.8")
	assert.True(t, ok)

	// window elapses, the next request goes through
	now = now.Add(time.Minute)
	ok, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLimiterConcurrentIncrementsNeverExceedLimit(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(10, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := l.Allow(ctx, "1.2.3.4")
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowed)
}

func TestMemoryLimiterSweepsStaleBuckets(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	l := NewMemoryLimiter(10, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < sweepThreshold+10; i++ {
		_, err := l.Allow(ctx, string(rune(i))+"-addr")
		require.NoError(t, err)
	}
	require.Greater(t, len(l.buckets), sweepThreshold)

	now = now.Add(2 * time.Minute)
	_, err := l.Allow(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, 1, len(l.buckets))
}
