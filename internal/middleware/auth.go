// internal/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/auth"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/repo"
)

// RequireAuth authenticates using the session cookie, loads the account
// by the session email, and injects both into the request context. A
// deactivated account loses access the moment its next request arrives.
func RequireAuth(accounts *repo.AccountsRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			s := auth.ReadSession(req)
			if s == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			account, err := accounts.Get(req.Context(), s.Email)
			if err != nil || !account.Active {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := auth.WithSession(req.Context(), s)
			ctx = auth.WithAccount(ctx, &account)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// RequireCapability is the page-level gate: the authenticated account's
// role must pass the capability check or the request stops with 403
// before any store is queried.
func RequireCapability(allowed func(models.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			account, ok := auth.AccountFromContext(req.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !allowed(account.Role) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
