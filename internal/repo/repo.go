// internal/repo/repo.go
package repo

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/state"
)

// Repo bundles the per-entity repositories. Each repository owns its
// collection exclusively: the only way to mutate a collection is through
// that repository's operations, and every successful mutation writes the
// whole collection back to its bucket in the state store.
type Repo struct {
	Accounts    *AccountsRepo
	Tasks       *TasksRepo
	Calendar    *CalendarRepo
	Chat        *ChatRepo
	Annotations *AnnotationsRepo
}

// New hydrates all repositories from the store. Missing or malformed
// buckets hydrate as empty collections; hydration never fails the startup
// for bad payloads, only for store access errors.
func New(ctx context.Context, store state.Store) (*Repo, error) {
	accounts, err := newAccountsRepo(ctx, store)
	if err != nil {
		return nil, err
	}
	tasks, err := newTasksRepo(ctx, store)
	if err != nil {
		return nil, err
	}
	calendar, err := newCalendarRepo(ctx, store)
	if err != nil {
		return nil, err
	}
	chat, err := newChatRepo(ctx, store)
	if err != nil {
		return nil, err
	}
	annotations, err := newAnnotationsRepo(ctx, store)
	if err != nil {
		return nil, err
	}
	return &Repo{
		Accounts:    accounts,
		Tasks:       tasks,
		Calendar:    calendar,
		Chat:        chat,
		Annotations: annotations,
	}, nil
}

// hydrate loads one bucket into out. A nil payload leaves out at its zero
// value; a malformed payload is logged and discarded. Decoding goes
// through a temporary so a payload that fails mid-unmarshal (wrong-typed
// field) cannot leave partially decoded entries in the live collection.
func hydrate[T any](ctx context.Context, store state.Store, bucket string, out *T) error {
	payload, err := store.Load(ctx, bucket)
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	var decoded T
	if err := json.Unmarshal(payload, &decoded); err != nil {
		slog.WarnContext(ctx, "discarding malformed bucket", "bucket", bucket, "err", err)
		return nil
	}
	*out = decoded
	return nil
}

// persist serializes the full collection and writes it back. The snapshot
// passed in must already be a detached copy so the store never sees a
// structure that a later mutation could change mid-write.
func persist(ctx context.Context, store state.Store, bucket string, snapshot any) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, bucket, payload); err != nil {
		slog.ErrorContext(ctx, "persist failed", "bucket", bucket, "err", err)
		return err
	}
	return nil
}
