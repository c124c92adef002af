package service

import (
	"context"
	"sync"
	"time"
)

// LoginLimiter throttles admin sign-in attempts per client key with a token
// bucket. Buckets idle for longer than idleTTL are pruned by Prune.
type LoginLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens per second
	capacity float64
	now      func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

const idleTTL = 10 * time.Minute

// NewLoginLimiter allows burst attempts per key, refilled at rate per second.
func NewLoginLimiter(rate, burst float64, opts ...StoreOption) *LoginLimiter {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &LoginLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: burst,
		now:      o.now,
	}
}

// Allow consumes one token for key and reports whether one was available.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, last: now}
		l.buckets[key] = b
	}

	b.tokens = min(b.tokens+now.Sub(b.last).Seconds()*l.rate, l.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Prune drops buckets that have not been touched for idleTTL and returns how
// many remain.
func (l *LoginLimiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idleTTL)
	for key, b := range l.buckets {
		if b.last.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
	return len(l.buckets)
}

// Run prunes periodically until ctx is done.
func (l *LoginLimiter) Run(ctx context.Context, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Prune()
		}
	}
}
