package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
)

func newChatForTest(t *testing.T) *ChatRepo {
	t.Helper()
	r, err := newChatRepo(context.Background(), newTestStore(t))
	require.NoError(t, err)
	return r
}

func TestDirectThreadIDIsSymmetric(t *testing.T) {
	assert.Equal(t,
		DirectThreadID("a@x.com", "b@x.com"),
		DirectThreadID("b@x.com", "a@x.com"))
	assert.Equal(t,
		DirectThreadID("A@X.com", "b@x.com"),
		DirectThreadID("b@x.com", "a@x.com"),
		"casing must not change the thread")
	assert.NotEqual(t,
		DirectThreadID("a@x.com", "b@x.com"),
		DirectThreadID("a@x.com", "c@x.com"))
}

func TestPostRejectsEmptyMessages(t *testing.T) {
	ctx := context.Background()
	r := newChatForTest(t)

	_, err := r.Post(ctx, BroadcastChannelID, "   \t  ", doc)
	assert.ErrorIs(t, err, models.ErrEmptyMessage)
}

func TestDirectThreadMembership(t *testing.T) {
	ctx := context.Background()
	r := newChatForTest(t)
	threadID := DirectThreadID(doc.Email, lab1.Email)

	_, err := r.Post(ctx, threadID, "hello", doc)
	require.NoError(t, err)

	_, err = r.Post(ctx, threadID, "intruding", lab2)
	assert.ErrorIs(t, err, models.ErrNotAuthorized)

	assert.True(t, r.CanRead(threadID, doc.Email))
	assert.True(t, r.CanRead(threadID, lab1.Email))
	assert.False(t, r.CanRead(threadID, lab2.Email))
	assert.True(t, r.CanRead(BroadcastChannelID, lab2.Email))
}

func TestThreadOrderingIsStable(t *testing.T) {
	ctx := context.Background()
	r := newChatForTest(t)

	// Freeze the clock so every message carries the same timestamp; the
	// returned order must then be insertion order.
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	r.nowFn = func() time.Time { return fixed }

	for _, text := range []string{"first", "second", "third"} {
		_, err := r.Post(ctx, BroadcastChannelID, text, doc)
		require.NoError(t, err)
	}

	msgs := r.Thread(ctx, BroadcastChannelID)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Text)
	assert.Equal(t, "second", msgs[1].Text)
	assert.Equal(t, "third", msgs[2].Text)
}

func TestBothParticipantsSeeTheSameLog(t *testing.T) {
	ctx := context.Background()
	r := newChatForTest(t)

	a := models.Account{Email: "a@x.com", Name: "A", Role: models.RoleDoctor, Active: true}
	b := models.Account{Email: "b@x.com", Name: "B", Role: models.RoleResearcher, Active: true}

	idFromA := DirectThreadID(a.Email, b.Email)
	idFromB := DirectThreadID(b.Email, a.Email)
	require.Equal(t, idFromA, idFromB)

	_, err := r.Post(ctx, idFromA, "hi b", a)
	require.NoError(t, err)
	_, err = r.Post(ctx, idFromB, "hi a", b)
	require.NoError(t, err)

	logA := r.Thread(ctx, idFromA)
	logB := r.Thread(ctx, idFromB)
	require.Equal(t, logA, logB)
	require.Len(t, logA, 2)
	assert.Equal(t, "hi b", logA[0].Text)
	assert.Equal(t, a.Email, logA[0].User.Email, "author snapshot frozen at send time")
	assert.Equal(t, models.RoleDoctor, logA[0].User.Role)

	// Both see the thread in their channel listing; outsiders do not.
	assert.Contains(t, r.Threads(ctx, a.Email), idFromA)
	assert.Contains(t, r.Threads(ctx, b.Email), idFromA)
	assert.NotContains(t, r.Threads(ctx, "c@x.com"), idFromA)
}

func TestChatSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	r, err := newChatRepo(ctx, store)
	require.NoError(t, err)
	// Fixed clock: time.Date carries no monotonic reading, so in-memory
	// timestamps compare equal to their JSON round-tripped form.
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	r.nowFn = func() time.Time { return fixed }
	_, err = r.Post(ctx, BroadcastChannelID, "hello all", admin)
	require.NoError(t, err)
	threadID := DirectThreadID(admin.Email, doc.Email)
	_, err = r.Post(ctx, threadID, "hello doc", admin)
	require.NoError(t, err)

	reloaded, err := newChatRepo(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, r.Thread(ctx, BroadcastChannelID), reloaded.Thread(ctx, BroadcastChannelID))
	assert.Equal(t, r.Thread(ctx, threadID), reloaded.Thread(ctx, threadID))
	assert.Contains(t, reloaded.Threads(ctx, doc.Email), threadID)
}
