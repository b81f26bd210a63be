package state

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(mr.Addr())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	got, err := store.Load(ctx, BucketEvents)
	require.NoError(t, err)
	assert.Nil(t, got, "missing bucket loads as nil, not an error")

	payload := []byte(`[{"id":"e1"}]`)
	require.NoError(t, store.Save(ctx, BucketEvents, payload))

	got, err = store.Load(ctx, BucketEvents)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Keys are namespaced so the server can be shared.
	assert.True(t, mr.Exists("genomerx:state:"+BucketEvents))
}
