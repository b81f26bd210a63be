package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID echoes the caller's X-Request-ID, minting a fresh uuid when
// none is supplied, so every response can be correlated with client-side
// logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}
