package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	got, err := s.Load(ctx, BucketTasks)
	require.NoError(t, err)
	assert.Nil(t, got, "unknown bucket loads as nil")

	require.NoError(t, s.Save(ctx, BucketTasks, []byte(`[{"id":"t1"}]`)))
	require.NoError(t, s.Save(ctx, BucketAccounts, []byte(`[]`)))

	got, err = s.Load(ctx, BucketTasks)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"t1"}]`, string(got))

	// Second save upserts rather than duplicating the row.
	require.NoError(t, s.Save(ctx, BucketTasks, []byte(`[]`)))
	got, err = s.Load(ctx, BucketTasks)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got))
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, BucketChat, []byte(`{"channels":[]}`)))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx, BucketChat)
	require.NoError(t, err)
	assert.JSONEq(t, `{"channels":[]}`, string(got))
}
