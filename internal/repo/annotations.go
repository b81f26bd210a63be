// internal/repo/annotations.go
package repo

import (
	"context"
	"strings"
	"sync"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/state"
)

// AnnotationsRepo keys notes and tags by the composite (fileName, date)
// identifier of a prediction artifact. One entry per key; a save replaces
// the whole entry.
type AnnotationsRepo struct {
	mu      sync.RWMutex
	store   state.Store
	entries map[string]models.AnnotationEntry
}

func newAnnotationsRepo(ctx context.Context, store state.Store) (*AnnotationsRepo, error) {
	r := &AnnotationsRepo{store: store, entries: map[string]models.AnnotationEntry{}}
	if err := hydrate(ctx, store, state.BucketAnnotations, &r.entries); err != nil {
		return nil, err
	}
	if r.entries == nil {
		r.entries = map[string]models.AnnotationEntry{}
	}
	return r, nil
}

// Get returns the entry for the key, or an empty default. It never fails.
func (r *AnnotationsRepo) Get(ctx context.Context, key string) models.AnnotationEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[key]; ok {
		e.Tags = append([]string(nil), e.Tags...)
		return e
	}
	return models.AnnotationEntry{Key: key, Tags: []string{}}
}

// Save normalizes the tags and replaces the entry atomically. Repeating
// an identical save is a no-op in effect.
func (r *AnnotationsRepo) Save(ctx context.Context, key, notes string, tags []string) (models.AnnotationEntry, error) {
	entry := models.AnnotationEntry{Key: key, Notes: notes, Tags: NormalizeTags(tags)}

	r.mu.Lock()
	defer r.mu.Unlock()
	next := make(map[string]models.AnnotationEntry, len(r.entries)+1)
	for k, v := range r.entries {
		next[k] = v
	}
	next[key] = entry
	if err := persist(ctx, r.store, state.BucketAnnotations, next); err != nil {
		return models.AnnotationEntry{}, err
	}
	r.entries = next
	return entry, nil
}

// NormalizeTags trims, drops empties, and de-duplicates case-preserving,
// keeping first occurrence order.
func NormalizeTags(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
