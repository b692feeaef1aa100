package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/vyrodovalexey/avclassify/internal/observability"
)

// Ensure TokenBucketLimiter implements io.Closer for proper resource cleanup.
var _ io.Closer = (*TokenBucketLimiter)(nil)

// Cleanup configuration defaults.
const (
	// DefaultEntryTTL is the default TTL for per-key limiter entries.
	DefaultEntryTTL = 10 * time.Minute

	// MinCleanupInterval is the minimum interval for cleanup runs.
	MinCleanupInterval = 10 * time.Second

	// MaxCleanupInterval is the maximum interval for cleanup runs.
	MaxCleanupInterval = time.Minute
)

// entry holds a per-key limiter and its last access time for TTL-based
// cleanup.
type entry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// TokenBucketLimiter implements token bucket rate limiting with one bucket
// per key. A background goroutine evicts keys that have not been seen within
// the entry TTL. Call Close() when done to stop the cleanup goroutine.
type TokenBucketLimiter struct {
	rps      float64
	burst    int
	entryTTL time.Duration
	logger   observability.Logger

	mu      sync.Mutex
	entries map[string]*entry

	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// TokenBucketOption is a functional option for the token bucket limiter.
type TokenBucketOption func(*TokenBucketLimiter)

// WithLogger sets the logger.
func WithLogger(logger observability.Logger) TokenBucketOption {
	return func(l *TokenBucketLimiter) {
		l.logger = logger
	}
}

// WithEntryTTL sets the TTL for per-key entries.
func WithEntryTTL(ttl time.Duration) TokenBucketOption {
	return func(l *TokenBucketLimiter) {
		l.entryTTL = ttl
	}
}

// NewTokenBucketLimiter creates a new token bucket rate limiter allowing
// rps requests per second per key with the given burst. It starts a
// background cleanup goroutine to prevent stale keys from accumulating.
func NewTokenBucketLimiter(rps float64, burst int, opts ...TokenBucketOption) *TokenBucketLimiter {
	l := &TokenBucketLimiter{
		rps:         rps,
		burst:       burst,
		entryTTL:    DefaultEntryTTL,
		logger:      observability.NopLogger(),
		entries:     make(map[string]*entry),
		stopCleanup: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(l)
	}

	go l.cleanupLoop()

	return l
}

// Allow implements Limiter.
func (l *TokenBucketLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lim := l.limiterFor(key)

	// Reserve instead of Allow so the denial carries a retry hint.
	r := lim.Reserve()
	if !r.OK() {
		return &Result{
			Allowed:    false,
			Limit:      l.burst,
			RetryAfter: time.Second,
		}, nil
	}

	delay := r.Delay()
	if delay > 0 {
		r.Cancel()
		return &Result{
			Allowed:    false,
			Limit:      l.burst,
			RetryAfter: delay,
		}, nil
	}

	remaining := int(lim.Tokens())
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   true,
		Limit:     l.burst,
		Remaining: remaining,
	}, nil
}

// limiterFor returns the per-key limiter, creating it on first use.
// A single critical section covers lookup and lastAccess update.
func (l *TokenBucketLimiter) limiterFor(key string) *rate.Limiter {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.entries[key] = e
	}
	e.lastAccess = now

	return e.limiter
}

// cleanupLoop periodically evicts entries older than the TTL.
func (l *TokenBucketLimiter) cleanupLoop() {
	interval := l.entryTTL / 2
	if interval > MaxCleanupInterval {
		interval = MaxCleanupInterval
	}
	if interval < MinCleanupInterval {
		interval = MinCleanupInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictStale(l.entryTTL)
		case <-l.stopCleanup:
			return
		}
	}
}

// evictStale removes entries that have not been accessed within maxAge.
func (l *TokenBucketLimiter) evictStale(maxAge time.Duration) {
	now := time.Now()

	l.mu.Lock()
	removed := 0
	for key, e := range l.entries {
		if now.Sub(e.lastAccess) > maxAge {
			delete(l.entries, key)
			removed++
		}
	}
	remaining := len(l.entries)
	l.mu.Unlock()

	if removed > 0 {
		l.logger.Debug("evicted stale rate limiter entries",
			observability.Int("removed", removed),
			observability.Int("remaining", remaining),
		)
	}
}

// Close implements io.Closer. It stops the background cleanup goroutine
// and is safe to call multiple times.
func (l *TokenBucketLimiter) Close() error {
	l.closeOnce.Do(func() {
		close(l.stopCleanup)
	})
	return nil
}
