package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/state"
)

// A stored payload that no longer decodes must hydrate as the empty
// default, whether it is syntactically broken or valid JSON with a
// wrong-typed field. The latter fails mid-unmarshal, so hydration must
// not let partially decoded entries leak into the live collection.
func TestMalformedBucketsHydrateEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, state.BucketTasks,
		[]byte(`[{"id":"ghost","title":"partial","assignee":"lab1@x.com","createdAt":"not-a-time"}]`)))
	require.NoError(t, store.Save(ctx, state.BucketAccounts, []byte(`{not json`)))
	require.NoError(t, store.Save(ctx, state.BucketEvents, []byte(`{"an":"object"}`)))
	require.NoError(t, store.Save(ctx, state.BucketChat, []byte(`[{"channels":1}]`)))
	require.NoError(t, store.Save(ctx, state.BucketAnnotations, []byte(`[1,2,3]`)))
	require.NoError(t, store.Save(ctx, state.BucketPrefs, []byte(`"dark"`)))

	r, err := New(ctx, store)
	require.NoError(t, err, "malformed payloads never fail startup")

	assert.Empty(t, r.Tasks.List(ctx, admin, TaskFilter{}), "no ghost task from a partial decode")
	assert.Empty(t, r.Accounts.List(ctx))
	assert.Empty(t, r.Calendar.List(ctx))
	assert.Empty(t, r.Chat.Thread(ctx, BroadcastChannelID))
	assert.Equal(t, "", r.Accounts.GetTheme(ctx, "doc@x.com"))
	got := r.Annotations.Get(ctx, "sample.fasta|2025-03-01")
	assert.Empty(t, got.Notes)
	assert.Empty(t, got.Tags)

	// The discarded bucket stays usable: the next mutation starts from
	// the empty default and persists cleanly.
	created, err := r.Tasks.Create(ctx, admin, models.Task{Title: "Sequence QC", Assignee: lab1.Email})
	require.NoError(t, err)
	listed := r.Tasks.List(ctx, admin, TaskFilter{})
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}
