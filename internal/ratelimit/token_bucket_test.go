package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketLimiterAllowsWithinBurst(t *testing.T) {
	l := NewTokenBucketLimiter(1, 3)
	defer func() { _ = l.Close() }()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		result, err := l.Allow(ctx, "client-1")
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d within burst should be allowed", i)
		assert.Equal(t, 3, result.Limit)
	}
}

func TestTokenBucketLimiterDeniesBeyondBurst(t *testing.T) {
	l := NewTokenBucketLimiter(0.001, 1)
	defer func() { _ = l.Close() }()

	ctx := context.Background()

	result, err := l.Allow(ctx, "client-1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = l.Allow(ctx, "client-1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Positive(t, result.RetryAfter)
}

func TestTokenBucketLimiterIsolatesKeys(t *testing.T) {
	l := NewTokenBucketLimiter(0.001, 1)
	defer func() { _ = l.Close() }()

	ctx := context.Background()

	result, err := l.Allow(ctx, "client-1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	// A different key has its own bucket.
	result, err = l.Allow(ctx, "client-2")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestTokenBucketLimiterContextCancelled(t *testing.T) {
	l := NewTokenBucketLimiter(1, 1)
	defer func() { _ = l.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Allow(ctx, "client-1")
	assert.Error(t, err)
}

func TestTokenBucketLimiterEvictStale(t *testing.T) {
	l := NewTokenBucketLimiter(1, 1, WithEntryTTL(time.Millisecond))
	defer func() { _ = l.Close() }()

	_, err := l.Allow(context.Background(), "client-1")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	l.evictStale(time.Millisecond)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.entries)
}

func TestTokenBucketLimiterCloseIdempotent(t *testing.T) {
	l := NewTokenBucketLimiter(1, 1)

	assert.NoError(t, l.Close())
	assert.NoError(t, l.Close())
}

func TestNoopLimiter(t *testing.T) {
	l := NewNoopLimiter()

	result, err := l.Allow(context.Background(), "any")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
