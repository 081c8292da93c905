package ratelimit

import "time"

// SetNow replaces the limiter clock.
func (l *Limiter) SetNow(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}
