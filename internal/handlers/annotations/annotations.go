// internal/handlers/annotations/annotations.go
package annotations

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	httpserver "github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/http"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/repo"
)

type Handler struct {
	annotations *repo.AnnotationsRepo
}

func New(annotations *repo.AnnotationsRepo) *Handler {
	return &Handler{annotations: annotations}
}

// Get handles GET /api/v1/annotations/{key}. Unknown keys return an
// empty entry, never an error.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	httpserver.JSON(w, http.StatusOK, h.annotations.Get(r.Context(), chi.URLParam(r, "key")))
}

// Put handles PUT /api/v1/annotations/{key}: replace the whole entry.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	var b struct {
		Notes string   `json:"notes"`
		Tags  []string `json:"tags"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	entry, err := h.annotations.Save(r.Context(), chi.URLParam(r, "key"), b.Notes, b.Tags)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, entry)
}
