package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether another hit for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// MemoryLimiter is a per-process sliding window limiter.
type MemoryLimiter struct {
	mu      sync.Mutex
	limits  map[string][]time.Time
	window  time.Duration
	maxHits int
	now     func() time.Time
}

func NewLimiter(window time.Duration, maxHits int) *MemoryLimiter {
	return &MemoryLimiter{
		limits:  make(map[string][]time.Time),
		window:  window,
		maxHits: maxHits,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)

	// Clean old entries
	if hits, exists := l.limits[key]; exists {
		valid := hits[:0]
		for _, hit := range hits {
			if hit.After(windowStart) {
				valid = append(valid, hit)
			}
		}
		if len(valid) == 0 {
			delete(l.limits, key)
		} else {
			l.limits[key] = valid
		}
	}

	// Check current count
	if len(l.limits[key]) >= l.maxHits {
		return false
	}

	// Add new hit
	l.limits[key] = append(l.limits[key], now)
	return true
}
