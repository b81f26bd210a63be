// internal/handlers/predictions/predictions.go
package predictions

import (
	"net/http"
	"strconv"

	httpserver "github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/http"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/predict"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/repo"
)

type Handler struct {
	client  *predict.Client
	history *repo.HistoryCache
}

func New(client *predict.Client, history *repo.HistoryCache) *Handler {
	return &Handler{client: client, history: history}
}

// Predict handles POST /api/v1/predict: one multipart file forwarded to
// the AMR backend. On success the result lands in the session history
// cache; on any failure nothing is cached and the caller's state is
// untouched — the collaboration stores are never part of this path.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	// Cap the whole request body so an oversized upload is cut off at
	// the wire instead of spooling to disk; the per-file limit is
	// enforced below.
	r.Body = http.MaxBytesReader(w, r.Body, predict.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(predict.MaxUploadSize + 1<<20); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "missing file"})
		return
	}
	defer file.Close()

	result, err := h.client.Predict(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	h.history.Add(result)
	httpserver.JSON(w, http.StatusOK, result)
}

// History handles GET /api/v1/history?limit=N: fetches the backend
// listing and seeds the session cache with it.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := 25
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}
	predictions, err := h.client.History(r.Context(), limit)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	h.history.Seed(predictions)
	httpserver.JSON(w, http.StatusOK, predictions)
}

// Dashboard handles GET /api/v1/dashboard: aggregates over the session
// history cache.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	httpserver.JSON(w, http.StatusOK, h.history.Stats())
}
