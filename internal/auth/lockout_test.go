package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThreeFailuresLockTheSession(t *testing.T) {
	l := NewLockout()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	l.nowFn = func() time.Time { return now }

	const sid = "session-1"
	l.RecordFailure(sid)
	l.RecordFailure(sid)
	if _, locked := l.LockedUntil(sid); locked {
		t.Fatal("locked after only two failures")
	}

	l.RecordFailure(sid)
	until, locked := l.LockedUntil(sid)
	assert.True(t, locked, "third failure must lock, even for a later correct password")
	assert.Equal(t, now.Add(LockoutDuration), until)

	// Another session is unaffected.
	_, locked = l.LockedUntil("session-2")
	assert.False(t, locked)
}

func TestSuccessBeforeThirdFailureResetsCounter(t *testing.T) {
	l := NewLockout()

	const sid = "session-1"
	l.RecordFailure(sid)
	l.RecordFailure(sid)
	l.RecordSuccess(sid)

	l.RecordFailure(sid)
	l.RecordFailure(sid)
	_, locked := l.LockedUntil(sid)
	assert.False(t, locked, "counter must restart after a successful login")
}

func TestLockExpires(t *testing.T) {
	l := NewLockout()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	l.nowFn = func() time.Time { return now }

	const sid = "session-1"
	for i := 0; i < 3; i++ {
		l.RecordFailure(sid)
	}
	_, locked := l.LockedUntil(sid)
	assert.True(t, locked)

	now = now.Add(LockoutDuration + time.Minute)
	_, locked = l.LockedUntil(sid)
	assert.False(t, locked, "lock clears after expiry")
}
