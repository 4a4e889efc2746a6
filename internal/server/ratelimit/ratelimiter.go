// Package ratelimit provides fixed-window request limiting per API key.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks request counts in fixed windows per key. The limit and
// window are uniform across keys, set at construction from service
// configuration.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	limits map[string]*bucket
}

type bucket struct {
	count     int
	windowEnd time.Time
}

// NewLimiter creates a limiter allowing limit requests per key in each
// window.
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		limits: make(map[string]*bucket),
	}
}

// Allow returns true if the request is within the key's current window
// budget.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	win := l.limits[key]
	if win == nil || now.After(win.windowEnd) {
		l.limits[key] = &bucket{
			count:     1,
			windowEnd: now.Add(l.window),
		}
		return true
	}

	if win.count < l.limit {
		win.count++
		return true
	}

	return false
}

// StartCleanup periodically evicts stale windows to limit memory usage.
func (l *Limiter) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			l.mu.Lock()
			now := time.Now()
			for key, win := range l.limits {
				if now.After(win.windowEnd.Add(5 * time.Minute)) {
					delete(l.limits, key)
				}
			}
			l.mu.Unlock()
		}
	}()
}
