package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
)

func TestAnnotationGetDefault(t *testing.T) {
	ctx := context.Background()
	r, err := newAnnotationsRepo(ctx, newTestStore(t))
	require.NoError(t, err)

	key := models.AnnotationKey("sample.fasta", "2025-03-01")
	entry := r.Get(ctx, key)
	assert.Equal(t, key, entry.Key)
	assert.Empty(t, entry.Notes)
	assert.Empty(t, entry.Tags)
}

func TestTagNormalization(t *testing.T) {
	ctx := context.Background()
	r, err := newAnnotationsRepo(ctx, newTestStore(t))
	require.NoError(t, err)

	key := models.AnnotationKey("sample.fasta", "2025-03-01")
	entry, err := r.Save(ctx, key, "interesting strain", []string{"a", " a", "b ", "  "})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, entry.Tags, "dedup + trim + drop-empty")

	// Case-preserving: MDR and mdr are distinct tags.
	entry, err = r.Save(ctx, key, "", []string{"MDR", "mdr"})
	require.NoError(t, err)
	assert.Equal(t, []string{"MDR", "mdr"}, entry.Tags)
}

func TestSaveReplacesAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	r, err := newAnnotationsRepo(ctx, store)
	require.NoError(t, err)

	key := models.AnnotationKey("sample.fasta", "2025-03-01")
	_, err = r.Save(ctx, key, "v1", []string{"x"})
	require.NoError(t, err)
	_, err = r.Save(ctx, key, "v2", []string{"y"})
	require.NoError(t, err)

	got := r.Get(ctx, key)
	assert.Equal(t, "v2", got.Notes)
	assert.Equal(t, []string{"y"}, got.Tags)

	again, err := r.Save(ctx, key, "v2", []string{"y"})
	require.NoError(t, err)
	assert.Equal(t, got, again)

	// One entry per key, preserved across reload.
	reloaded, err := newAnnotationsRepo(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, got, reloaded.Get(ctx, key))
}
