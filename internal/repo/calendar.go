// internal/repo/calendar.go
package repo

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/state"
)

// CalendarRepo holds the shared events. Access is gated at the page level
// by the calendar allow-list; inside the gate any permitted role may edit
// any event, there is no per-event creator restriction.
type CalendarRepo struct {
	mu     sync.RWMutex
	store  state.Store
	events []models.CalendarEvent
	nowFn  func() time.Time
}

func newCalendarRepo(ctx context.Context, store state.Store) (*CalendarRepo, error) {
	r := &CalendarRepo{store: store, nowFn: time.Now}
	if err := hydrate(ctx, store, state.BucketEvents, &r.events); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns all events, creation order preserved.
func (r *CalendarRepo) List(ctx context.Context) []models.CalendarEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.CalendarEvent(nil), r.events...)
}

// Create validates and appends a new event. Title and date are required;
// attendees are stored as a de-duplicated set.
func (r *CalendarRepo) Create(ctx context.Context, actor models.Account, e models.CalendarEvent) (models.CalendarEvent, error) {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" || e.Date == "" {
		return models.CalendarEvent{}, models.ErrValidation
	}
	if _, err := time.Parse(models.DateLayout, e.Date); err != nil {
		return models.CalendarEvent{}, models.ErrValidation
	}
	now := r.nowFn()
	e.ID = uuid.NewString()
	e.Attendees = dedupeEmails(e.Attendees)
	e.CreatedBy = actor.Email
	e.CreatedAt = now
	e.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	next := append(append([]models.CalendarEvent(nil), r.events...), e)
	if err := persist(ctx, r.store, state.BucketEvents, next); err != nil {
		return models.CalendarEvent{}, err
	}
	r.events = next
	slog.DebugContext(ctx, "event created", "event_id", e.ID, "date", e.Date)
	return e, nil
}

// EventPatch carries the fields an edit may change; nil fields are left
// untouched.
type EventPatch struct {
	Title       *string
	Date        *string
	TimeStart   *string
	TimeEnd     *string
	Location    *string
	Attendees   *[]string
	Description *string
}

func (r *CalendarRepo) Update(ctx context.Context, id string, patch EventPatch) (models.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := append([]models.CalendarEvent(nil), r.events...)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		e := &next[i]
		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return models.CalendarEvent{}, models.ErrValidation
			}
			e.Title = title
		}
		if patch.Date != nil {
			if _, err := time.Parse(models.DateLayout, *patch.Date); err != nil {
				return models.CalendarEvent{}, models.ErrValidation
			}
			e.Date = *patch.Date
		}
		if patch.TimeStart != nil {
			e.TimeStart = *patch.TimeStart
		}
		if patch.TimeEnd != nil {
			e.TimeEnd = *patch.TimeEnd
		}
		if patch.Location != nil {
			e.Location = *patch.Location
		}
		if patch.Attendees != nil {
			e.Attendees = dedupeEmails(*patch.Attendees)
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		e.UpdatedAt = r.nowFn()
		if err := persist(ctx, r.store, state.BucketEvents, next); err != nil {
			return models.CalendarEvent{}, err
		}
		r.events = next
		return next[i], nil
	}
	return models.CalendarEvent{}, models.ErrNotFound
}

func (r *CalendarRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.events {
		if e.ID != id {
			continue
		}
		next := make([]models.CalendarEvent, 0, len(r.events)-1)
		next = append(next, r.events[:i]...)
		next = append(next, r.events[i+1:]...)
		if err := persist(ctx, r.store, state.BucketEvents, next); err != nil {
			return err
		}
		r.events = next
		return nil
	}
	return models.ErrNotFound
}

// GridCell is one day slot of the month view.
type GridCell struct {
	Date    string                 `json:"date"`
	InMonth bool                   `json:"inMonth"`
	Events  []models.CalendarEvent `json:"events"`
}

// MonthGrid produces the fixed 6×7 grid for the month containing cursor.
// The grid starts on the Sunday on or before the first of the month, so
// it always spans complete weeks and always has exactly 42 cells.
func (r *CalendarRepo) MonthGrid(ctx context.Context, cursor time.Time) []GridCell {
	first := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, cursor.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	r.mu.RLock()
	byDate := make(map[string][]models.CalendarEvent, len(r.events))
	for _, e := range r.events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	r.mu.RUnlock()

	cells := make([]GridCell, 0, 42)
	for i := 0; i < 42; i++ {
		day := start.AddDate(0, 0, i)
		date := day.Format(models.DateLayout)
		cells = append(cells, GridCell{
			Date:    date,
			InMonth: day.Month() == first.Month(),
			Events:  byDate[date],
		})
	}
	return cells
}

// Upcoming returns events dated on or after from, ascending by date,
// truncated to limit. Ties on the same date keep creation order.
func (r *CalendarRepo) Upcoming(ctx context.Context, from time.Time, limit int) []models.CalendarEvent {
	cutoff := from.Format(models.DateLayout)
	r.mu.RLock()
	out := make([]models.CalendarEvent, 0, len(r.events))
	for _, e := range r.events {
		if e.Date >= cutoff {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// dedupeEmails lower-cases, trims, and de-duplicates keeping first
// occurrence order.
func dedupeEmails(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		e := normalizeEmail(s)
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
