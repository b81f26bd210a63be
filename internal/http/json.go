// internal/http/json.go
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/predict"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps the domain error taxonomy onto HTTP statuses and writes an
// {"error": ...} body. No error is fatal: the store is always left in its
// last-known-good state by the layer below.
func Error(w http.ResponseWriter, err error) {
	var netErr *predict.NetworkError
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrWeakPassword),
		errors.Is(err, models.ErrPasswordMismatch),
		errors.Is(err, models.ErrWrongCurrentPassword),
		errors.Is(err, models.ErrEmptyMessage),
		errors.Is(err, models.ErrInvalidFormat),
		errors.Is(err, models.ErrFileTooLarge):
		JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrAccountDeactivated):
		JSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrNotAuthorized):
		JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, models.ErrNotFound):
		JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrUploadInFlight):
		JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrLockedOut):
		JSON(w, http.StatusTooManyRequests, map[string]string{"error": err.Error()})
	case errors.As(err, &netErr):
		JSON(w, http.StatusBadGateway, map[string]string{"error": netErr.Error()})
	default:
		JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
