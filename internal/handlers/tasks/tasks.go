// internal/handlers/tasks/tasks.go
package tasks

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/auth"
	httpserver "github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/http"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/repo"
)

type Handler struct {
	tasks    *repo.TasksRepo
	accounts *repo.AccountsRepo
}

func New(tasks *repo.TasksRepo, accounts *repo.AccountsRepo) *Handler {
	return &Handler{tasks: tasks, accounts: accounts}
}

// List handles GET /api/v1/tasks with optional assignee/status filters.
// Role visibility is applied first, inside the repository.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	filter := repo.TaskFilter{Assignee: r.URL.Query().Get("assignee")}
	if s := r.URL.Query().Get("status"); s != "" {
		status, err := models.ParseTaskStatus(s)
		if err != nil {
			httpserver.Error(w, err)
			return
		}
		filter.Status = status
	}
	httpserver.JSON(w, http.StatusOK, h.tasks.List(r.Context(), *account, filter))
}

type taskBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Priority    string `json:"priority"`
	Due         string `json:"due"`
	Status      string `json:"status"`
}

// Create handles POST /api/v1/tasks. The assignee must resolve to an
// active Lab Staff account; that rule lives here at the creation entry
// point, not in the store.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	var b taskBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	assignee, err := h.accounts.Get(r.Context(), b.Assignee)
	if err != nil || !assignee.Active || assignee.Role != models.RoleLabStaff {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "assignee must be an active Lab Staff account"})
		return
	}
	t := models.Task{
		Title:       b.Title,
		Description: b.Description,
		Assignee:    assignee.Email,
		Due:         b.Due,
	}
	if b.Priority != "" {
		if t.Priority, err = models.ParseTaskPriority(b.Priority); err != nil {
			httpserver.Error(w, err)
			return
		}
	}
	if b.Status != "" {
		if t.Status, err = models.ParseTaskStatus(b.Status); err != nil {
			httpserver.Error(w, err)
			return
		}
	}
	created, err := h.tasks.Create(r.Context(), *account, t)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/v1/tasks/{taskID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	var b struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Assignee    *string `json:"assignee"`
		Priority    *string `json:"priority"`
		Due         *string `json:"due"`
		Status      *string `json:"status"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	patch := repo.TaskPatch{
		Title:       b.Title,
		Description: b.Description,
		Assignee:    b.Assignee,
		Due:         b.Due,
	}
	if b.Priority != nil {
		priority, err := models.ParseTaskPriority(*b.Priority)
		if err != nil {
			httpserver.Error(w, err)
			return
		}
		patch.Priority = &priority
	}
	if b.Status != nil {
		status, err := models.ParseTaskStatus(*b.Status)
		if err != nil {
			httpserver.Error(w, err)
			return
		}
		patch.Status = &status
	}
	updated, err := h.tasks.Update(r.Context(), *account, chi.URLParam(r, "taskID"), patch)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, updated)
}

// SetStatus handles PATCH /api/v1/tasks/{taskID}/status, the assignee's
// self-service path.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	var b struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	status, err := models.ParseTaskStatus(b.Status)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	updated, err := h.tasks.SetStatus(r.Context(), *account, chi.URLParam(r, "taskID"), status)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/tasks/{taskID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	if err := h.tasks.Delete(r.Context(), *account, chi.URLParam(r, "taskID")); err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}
