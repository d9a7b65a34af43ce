package staticpub

import (
	"sync"
	"time"
)

// LoginLimiter rate-limits admin login attempts per client IP using a fixed
// window: each IP gets max attempts per window, then resets.
type LoginLimiter struct {
	mu      sync.Mutex
	windows map[string]*attemptWindow
	max     int
	window  time.Duration
}

type attemptWindow struct {
	start time.Time
	count int
}

// NewLoginLimiter creates a LoginLimiter that allows max attempts per window
// and prunes idle IPs in the background.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		windows: make(map[string]*attemptWindow),
		max:     max,
		window:  window,
	}
	go l.prune()
	return l
}

func (l *LoginLimiter) prune() {
	ticker := time.NewTicker(l.window)
	for now := range ticker.C {
		l.mu.Lock()
		for ip, w := range l.windows {
			if now.Sub(w.start) >= l.window {
				delete(l.windows, ip)
			}
		}
		l.mu.Unlock()
	}
}

// Allow reports whether the IP is under the limit and records the attempt.
func (l *LoginLimiter) Allow(ip string) bool {
	if !l.Check(ip) {
		return false
	}
	l.Record(ip)
	return true
}

// Check reports whether the IP is under the limit without recording an
// attempt. Call Record separately on failed logins.
func (l *LoginLimiter) Check(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.windows[ip]
	if !ok || time.Since(w.start) >= l.window {
		return true
	}
	return w.count < l.max
}

// Record registers a login attempt for the given IP.
func (l *LoginLimiter) Record(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.windows[ip]
	if !ok || time.Since(w.start) >= l.window {
		l.windows[ip] = &attemptWindow{start: time.Now(), count: 1}
		return
	}
	w.count++
}
