// internal/handlers/calendar/calendar.go
package calendar

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/auth"
	httpserver "github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/http"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/repo"
)

// The calendar routes are mounted behind the CanUseCalendar gate:
// Lab Staff never reaches these handlers.

type Handler struct {
	calendar *repo.CalendarRepo
}

func New(calendar *repo.CalendarRepo) *Handler {
	return &Handler{calendar: calendar}
}

// List handles GET /api/v1/calendar/events. With ?from= it becomes the
// upcoming listing, ascending by date and truncated to ?limit=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		httpserver.JSON(w, http.StatusOK, h.calendar.List(r.Context()))
		return
	}
	from, err := time.Parse(models.DateLayout, fromStr)
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid from date"})
		return
	}
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if limit, err = strconv.Atoi(l); err != nil || limit < 0 {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
	}
	httpserver.JSON(w, http.StatusOK, h.calendar.Upcoming(r.Context(), from, limit))
}

// Grid handles GET /api/v1/calendar/grid?cursor=YYYY-MM-DD.
func (h *Handler) Grid(w http.ResponseWriter, r *http.Request) {
	cursor := time.Now()
	if c := r.URL.Query().Get("cursor"); c != "" {
		parsed, err := time.Parse(models.DateLayout, c)
		if err != nil {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid cursor date"})
			return
		}
		cursor = parsed
	}
	httpserver.JSON(w, http.StatusOK, h.calendar.MonthGrid(r.Context(), cursor))
}

type eventBody struct {
	Title       *string   `json:"title"`
	Date        *string   `json:"date"`
	TimeStart   *string   `json:"timeStart"`
	TimeEnd     *string   `json:"timeEnd"`
	Location    *string   `json:"location"`
	Attendees   *[]string `json:"attendees"`
	Description *string   `json:"description"`
}

// Create handles POST /api/v1/calendar/events.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	var b eventBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	e := models.CalendarEvent{}
	if b.Title != nil {
		e.Title = *b.Title
	}
	if b.Date != nil {
		e.Date = *b.Date
	}
	if b.TimeStart != nil {
		e.TimeStart = *b.TimeStart
	}
	if b.TimeEnd != nil {
		e.TimeEnd = *b.TimeEnd
	}
	if b.Location != nil {
		e.Location = *b.Location
	}
	if b.Attendees != nil {
		e.Attendees = *b.Attendees
	}
	if b.Description != nil {
		e.Description = *b.Description
	}
	created, err := h.calendar.Create(r.Context(), *account, e)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/v1/calendar/events/{eventID}. Any calendar-
// eligible role may edit any event.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var b eventBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	patch := repo.EventPatch{
		Title:       b.Title,
		Date:        b.Date,
		TimeStart:   b.TimeStart,
		TimeEnd:     b.TimeEnd,
		Location:    b.Location,
		Attendees:   b.Attendees,
		Description: b.Description,
	}
	updated, err := h.calendar.Update(r.Context(), chi.URLParam(r, "eventID"), patch)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/calendar/events/{eventID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.calendar.Delete(r.Context(), chi.URLParam(r, "eventID")); err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}
