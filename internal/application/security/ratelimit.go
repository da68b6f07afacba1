package security

import (
	"strings"
	"sync"
	"time"
)

const (
	rateLimitWindow = time.Hour
	maxAttempts     = 5
)

type rateLimitEntry struct {
	attempts int
	first    time.Time
}

// RateLimiter throttles auth attempts per identifier (normalized email or
// client IP). Fixed window, in-memory; counters vanish on restart, which is
// acceptable for a login throttle.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]rateLimitEntry
	now     func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		entries: map[string]rateLimitEntry{},
		now:     time.Now,
	}
}

// NewRateLimiterWithClock is useful for tests.
func NewRateLimiterWithClock(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{entries: map[string]rateLimitEntry{}, now: now}
}

// Allow records an attempt and reports whether it is within the limit.
func (l *RateLimiter) Allow(identifier string) bool {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return false
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[id]
	if !ok || now.Sub(e.first) > rateLimitWindow {
		l.entries[id] = rateLimitEntry{attempts: 1, first: now}
		return true
	}

	if e.attempts >= maxAttempts {
		return false
	}

	e.attempts++
	l.entries[id] = e
	return true
}

// Reset clears the counter for identifier (e.g., after a successful sign-in).
func (l *RateLimiter) Reset(identifier string) {
	l.mu.Lock()
	delete(l.entries, strings.TrimSpace(identifier))
	l.mu.Unlock()
}
