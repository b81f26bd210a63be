// internal/handlers/accounts/accounts.go
package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/auth"
	httpserver "github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/http"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/repo"
)

// loginStateCookie identifies the browser session for the pre-login
// lockout counter. It is set on the first login attempt, not at login
// success, so repeated failures in one session share one counter.
const loginStateCookie = "login_state"

type Handler struct {
	accounts *repo.AccountsRepo
	lockout  *auth.Lockout
}

func New(accounts *repo.AccountsRepo, lockout *auth.Lockout) *Handler {
	return &Handler{accounts: accounts, lockout: lockout}
}

// publicAccount strips the stored secret from API responses.
type publicAccount struct {
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
	Active bool        `json:"active"`
}

func public(a models.Account) publicAccount {
	return publicAccount{Email: a.Email, Name: a.Name, Role: a.Role, Active: a.Active}
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var b struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	role, err := models.ParseRole(b.Role)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	account, err := h.accounts.Register(r.Context(), b.Name, b.Email, b.Password, role)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusCreated, public(account))
}

// Login handles POST /auth/login. Three consecutive failures lock this
// browser session for 60 minutes, correct password or not.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var b struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	stateID := h.loginStateID(w, r)
	if until, locked := h.lockout.LockedUntil(stateID); locked {
		minutes := int(time.Until(until).Minutes()) + 1
		httpserver.Error(w, fmt.Errorf("%w, try again in %d minutes", models.ErrLockedOut, minutes))
		return
	}

	account, err := h.accounts.Authenticate(r.Context(), b.Email, b.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			h.lockout.RecordFailure(stateID)
		}
		httpserver.Error(w, err)
		return
	}
	h.lockout.RecordSuccess(stateID)

	sess := auth.NewSession(account.Email)
	auth.SetSessionCookie(w, sess)
	httpserver.JSON(w, http.StatusOK, public(account))
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	httpserver.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me handles GET /auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	httpserver.JSON(w, http.StatusOK, public(*account))
}

// UpdateProfile handles PUT /auth/profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	var b struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	updated, err := h.accounts.UpdateProfile(r.Context(), account.Email, b.Name)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, public(updated))
}

// ChangePassword handles POST /auth/change-password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	var b struct {
		Current string `json:"current"`
		New     string `json:"new"`
		Confirm string `json:"confirm"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := h.accounts.ChangePassword(r.Context(), account.Email, b.Current, b.New, b.Confirm); err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetTheme handles GET /theme.
func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	theme := h.accounts.GetTheme(r.Context(), account.Email)
	httpserver.JSON(w, http.StatusOK, map[string]string{"theme": theme})
}

// SetTheme handles PUT /theme.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	var b struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := h.accounts.SetTheme(r.Context(), account.Email, b.Theme); err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]string{"theme": b.Theme})
}

// List handles GET /api/v1/accounts (Admin).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all := h.accounts.List(r.Context())
	out := make([]publicAccount, 0, len(all))
	for _, a := range all {
		out = append(out, public(a))
	}
	httpserver.JSON(w, http.StatusOK, out)
}

// ResetPassword handles POST /api/v1/accounts/{email}/reset-password (Admin).
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := h.accounts.ResetPassword(r.Context(), email); err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// SetActive handles PUT /api/v1/accounts/{email}/active (Admin).
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	var b struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := h.accounts.SetActive(r.Context(), email, b.Active); err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) loginStateID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(loginStateCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     loginStateCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
