// internal/auth/lockout.go
package auth

import (
	"sync"
	"time"
)

const (
	// lockoutThreshold is the number of consecutive failures that trips
	// the lock.
	lockoutThreshold = 3
	// LockoutDuration is how long a tripped session stays locked.
	LockoutDuration = 60 * time.Minute
)

// Lockout tracks consecutive failed logins per browser session. The state
// is session-local: it is keyed by the caller's session identifier (a
// pre-login cookie), not by account, so a fresh session starts clean and
// locking one browser does not lock the account elsewhere.
type Lockout struct {
	mu      sync.Mutex
	entries map[string]*lockoutEntry
	nowFn   func() time.Time
}

type lockoutEntry struct {
	failures int
	until    time.Time
}

func NewLockout() *Lockout {
	return &Lockout{
		entries: make(map[string]*lockoutEntry),
		nowFn:   time.Now,
	}
}

// LockedUntil reports whether the session is currently locked and, if so,
// when the lock expires. An expired lock is cleared on the way out.
func (l *Lockout) LockedUntil(sessionID string) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[sessionID]
	if !ok {
		return time.Time{}, false
	}
	if e.until.IsZero() {
		return time.Time{}, false
	}
	if l.nowFn().After(e.until) {
		delete(l.entries, sessionID)
		return time.Time{}, false
	}
	return e.until, true
}

// RecordFailure counts one failed attempt; the third consecutive failure
// locks the session for LockoutDuration.
func (l *Lockout) RecordFailure(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[sessionID]
	if !ok {
		e = &lockoutEntry{}
		l.entries[sessionID] = e
	}
	e.failures++
	if e.failures >= lockoutThreshold {
		e.until = l.nowFn().Add(LockoutDuration)
	}
}

// RecordSuccess clears the failure counter for the session.
func (l *Lockout) RecordSuccess(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, sessionID)
}
