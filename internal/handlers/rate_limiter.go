package handlers

import (
	"strings"
	"sync"
	"time"
)

// uploadLimiter throttles conversion uploads per client. A nil limiter
// admits everything.
type uploadLimiter interface {
	Allow(client string) bool
}

// windowedUploadLimiter counts uploads per client over a fixed window.
// Conversions are short-lived and stateless, so an in-memory counter is
// enough; restarting the server resets the windows.
type windowedUploadLimiter struct {
	limit   int
	window  time.Duration
	clock   func() time.Time
	mu      sync.Mutex
	windows map[string]uploadWindow
}

type uploadWindow struct {
	count int
	reset time.Time
}

func newUploadLimiter(limit int, window time.Duration, clock func() time.Time) uploadLimiter {
	if limit <= 0 || window <= 0 {
		return nil
	}
	if clock == nil {
		clock = time.Now
	}
	return &windowedUploadLimiter{
		limit:   limit,
		window:  window,
		clock:   clock,
		windows: make(map[string]uploadWindow),
	}
}

func (l *windowedUploadLimiter) Allow(client string) bool {
	if l == nil {
		return true
	}
	// Clients behind NAT or a proxy without a resolvable address share one
	// bucket.
	client = strings.TrimSpace(client)
	if client == "" {
		client = "unknown-client"
	}
	now := l.clock()
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[client]
	if !ok || now.After(w.reset) {
		l.windows[client] = uploadWindow{count: 1, reset: now.Add(l.window)}
		l.pruneLocked(now)
		return true
	}

	if w.count >= l.limit {
		return false
	}
	w.count++
	l.windows[client] = w
	return true
}

func (l *windowedUploadLimiter) pruneLocked(now time.Time) {
	for client, w := range l.windows {
		if now.After(w.reset) {
			delete(l.windows, client)
		}
	}
}
