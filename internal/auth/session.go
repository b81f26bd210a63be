// internal/auth/session.go
package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
)

// SessionTTL is how long a login cookie stays valid.
const SessionTTL = 8 * time.Hour

const sessionCookie = "session"

type ctxKeyAccount struct{}
type ctxKeySession struct{}

// NewSession mints a session for the given account email.
func NewSession(email string) models.Session {
	return models.Session{
		ID:     uuid.NewString(),
		Email:  email,
		Expiry: time.Now().Add(SessionTTL),
	}
}

func SetSessionCookie(w http.ResponseWriter, s models.Session) {
	b, _ := json.Marshal(s)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    base64.RawStdEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.Expiry,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// ReadSession decodes and validates the session cookie; nil when absent,
// malformed, or expired.
func ReadSession(r *http.Request) *models.Session {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	b, err := base64.RawStdEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var s models.Session
	if json.Unmarshal(b, &s) != nil {
		return nil
	}
	if s.Expiry.Before(time.Now()) {
		return nil
	}
	return &s
}

func WithAccount(ctx context.Context, a *models.Account) context.Context {
	return context.WithValue(ctx, ctxKeyAccount{}, a)
}

func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	a, ok := ctx.Value(ctxKeyAccount{}).(*models.Account)
	return a, ok
}

func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession{}, s)
}

func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(ctxKeySession{}).(*models.Session)
	return s, ok
}
