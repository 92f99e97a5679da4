package server

import (
	"sync"
	"time"
)

// rateLimiter bounds how often a single client may render documents.
// Windows are fixed: the first request opens a window, requests beyond
// the limit inside it are rejected, and a request after the window
// elapses opens a fresh one.
type rateLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	windows map[string]*clientWindow
	sweepAt time.Time
}

type clientWindow struct {
	openedAt time.Time
	count    int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*clientWindow),
	}
}

// Allow reports whether the client identified by key may proceed. Expired
// windows are swept at most once per window so the map does not keep one
// entry per client IP forever.
func (r *rateLimiter) Allow(key string) bool {
	if key == "" {
		return false
	}

	now := time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()

	if now.After(r.sweepAt) {
		for k, w := range r.windows {
			if now.Sub(w.openedAt) > r.window {
				delete(r.windows, k)
			}
		}
		r.sweepAt = now.Add(r.window)
	}

	w := r.windows[key]
	if w == nil || now.Sub(w.openedAt) > r.window {
		w = &clientWindow{openedAt: now}
		r.windows[key] = w
	}

	if w.count >= r.limit {
		return false
	}

	w.count++
	return true
}
