// internal/repo/tasks.go
package repo

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/state"
)

// TasksRepo is the shared task board. Visibility is role-keyed: Lab Staff
// sees only its own assignments, everyone else sees the full board.
// Mutations check the same capability functions the handlers use, so an
// unauthorized call is rejected even when it skips the view layer.
type TasksRepo struct {
	mu    sync.RWMutex
	store state.Store
	tasks []models.Task
	nowFn func() time.Time
}

func newTasksRepo(ctx context.Context, store state.Store) (*TasksRepo, error) {
	r := &TasksRepo{store: store, nowFn: time.Now}
	if err := hydrate(ctx, store, state.BucketTasks, &r.tasks); err != nil {
		return nil, err
	}
	return r, nil
}

// TaskFilter narrows a listing after role visibility has been applied.
type TaskFilter struct {
	Assignee string
	Status   models.TaskStatus
}

// List returns the tasks visible to forAccount, filtered. Creation order
// is preserved.
func (r *TasksRepo) List(ctx context.Context, forAccount models.Account, filter TaskFilter) []models.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Task, 0, len(r.tasks))
	assignee := normalizeEmail(filter.Assignee)
	for _, t := range r.tasks {
		if !models.CanSeeAllTasks(forAccount.Role) && t.Assignee != forAccount.Email {
			continue
		}
		if assignee != "" && t.Assignee != assignee {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Get returns one task regardless of role visibility; callers that care
// about visibility go through List.
func (r *TasksRepo) Get(ctx context.Context, id string) (models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, models.ErrNotFound
}

// Create validates and appends a new task with a fresh id.
func (r *TasksRepo) Create(ctx context.Context, actor models.Account, t models.Task) (models.Task, error) {
	if !models.CanCreateTask(actor.Role) {
		return models.Task{}, models.ErrNotAuthorized
	}
	t.Title = strings.TrimSpace(t.Title)
	t.Assignee = normalizeEmail(t.Assignee)
	if t.Title == "" || t.Assignee == "" {
		return models.Task{}, models.ErrValidation
	}
	if t.Due != "" {
		if _, err := time.Parse(models.DateLayout, t.Due); err != nil {
			return models.Task{}, models.ErrValidation
		}
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	now := r.nowFn()
	t.ID = uuid.NewString()
	t.CreatedBy = actor.Email
	t.CreatedAt = now
	t.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	next := append(append([]models.Task(nil), r.tasks...), t)
	if err := persist(ctx, r.store, state.BucketTasks, next); err != nil {
		return models.Task{}, err
	}
	r.tasks = next
	slog.DebugContext(ctx, "task created", "task_id", t.ID, "assignee", t.Assignee, "created_by", t.CreatedBy)
	return t, nil
}

// TaskPatch carries the fields a full edit may change; nil fields are
// left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Assignee    *string
	Priority    *models.TaskPriority
	Due         *string
	Status      *models.TaskStatus
}

// Update applies a full edit. Permitted for the creator or an Admin.
func (r *TasksRepo) Update(ctx context.Context, actor models.Account, id string, patch TaskPatch) (models.Task, error) {
	return r.mutate(ctx, id, func(t *models.Task) error {
		if !models.CanManageTask(actor, *t) {
			return models.ErrNotAuthorized
		}
		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return models.ErrValidation
			}
			t.Title = title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Assignee != nil {
			assignee := normalizeEmail(*patch.Assignee)
			if assignee == "" {
				return models.ErrValidation
			}
			t.Assignee = assignee
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.Due != nil {
			if *patch.Due != "" {
				if _, err := time.Parse(models.DateLayout, *patch.Due); err != nil {
					return models.ErrValidation
				}
			}
			t.Due = *patch.Due
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		return nil
	})
}

// SetStatus is the assignee's self-service path; creators and Admins may
// use it too. Statuses are freely settable in either direction.
func (r *TasksRepo) SetStatus(ctx context.Context, actor models.Account, id string, status models.TaskStatus) (models.Task, error) {
	return r.mutate(ctx, id, func(t *models.Task) error {
		if !models.CanSetTaskStatus(actor, *t) {
			return models.ErrNotAuthorized
		}
		t.Status = status
		return nil
	})
}

// Delete removes the task. Same permission rule as Update.
func (r *TasksRepo) Delete(ctx context.Context, actor models.Account, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tasks {
		if t.ID != id {
			continue
		}
		if !models.CanManageTask(actor, t) {
			return models.ErrNotAuthorized
		}
		next := make([]models.Task, 0, len(r.tasks)-1)
		next = append(next, r.tasks[:i]...)
		next = append(next, r.tasks[i+1:]...)
		if err := persist(ctx, r.store, state.BucketTasks, next); err != nil {
			return err
		}
		r.tasks = next
		slog.DebugContext(ctx, "task deleted", "task_id", id, "actor", actor.Email)
		return nil
	}
	return models.ErrNotFound
}

func (r *TasksRepo) mutate(ctx context.Context, id string, fn func(*models.Task) error) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := append([]models.Task(nil), r.tasks...)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		if err := fn(&next[i]); err != nil {
			return models.Task{}, err
		}
		next[i].UpdatedAt = r.nowFn()
		if err := persist(ctx, r.store, state.BucketTasks, next); err != nil {
			return models.Task{}, err
		}
		r.tasks = next
		return next[i], nil
	}
	return models.Task{}, models.ErrNotFound
}
