// internal/repo/identity.go
package repo

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/auth"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/state"
)

// AccountsRepo is the identity store. Accounts are keyed by lower-cased
// email and are never hard-deleted; deactivation only removes login
// eligibility.
type AccountsRepo struct {
	mu       sync.RWMutex
	store    state.Store
	accounts []models.Account
	prefs    map[string]string // email → theme preference
}

func newAccountsRepo(ctx context.Context, store state.Store) (*AccountsRepo, error) {
	r := &AccountsRepo{store: store, prefs: map[string]string{}}
	if err := hydrate(ctx, store, state.BucketAccounts, &r.accounts); err != nil {
		return nil, err
	}
	if err := hydrate(ctx, store, state.BucketPrefs, &r.prefs); err != nil {
		return nil, err
	}
	if r.prefs == nil {
		r.prefs = map[string]string{}
	}
	return r, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new active account. The email is the identity key;
// registering an existing email fails regardless of casing.
func (r *AccountsRepo) Register(ctx context.Context, name, email, password string, role models.Role) (models.Account, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") || strings.TrimSpace(name) == "" {
		return models.Account{}, models.ErrValidation
	}
	if len(password) < auth.MinPasswordLength {
		return models.Account{}, models.ErrWeakPassword
	}
	phc, err := auth.HashPassword(password)
	if err != nil {
		return models.Account{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return models.Account{}, models.ErrDuplicateEmail
		}
	}
	account := models.Account{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: phc,
		Role:         role,
		Active:       true,
	}
	next := append(append([]models.Account(nil), r.accounts...), account)
	if err := persist(ctx, r.store, state.BucketAccounts, next); err != nil {
		return models.Account{}, err
	}
	r.accounts = next
	slog.DebugContext(ctx, "account registered", "email", email, "role", string(role))
	return account, nil
}

// Authenticate resolves the matching active account. The session-local
// lockout is enforced by the caller, not here.
func (r *AccountsRepo) Authenticate(ctx context.Context, email, password string) (models.Account, error) {
	email = normalizeEmail(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Email != email {
			continue
		}
		if !auth.VerifyPassword(password, a.PasswordHash) {
			return models.Account{}, models.ErrInvalidCredentials
		}
		if !a.Active {
			return models.Account{}, models.ErrAccountDeactivated
		}
		return a, nil
	}
	return models.Account{}, models.ErrInvalidCredentials
}

// Get returns the account for the given email.
func (r *AccountsRepo) Get(ctx context.Context, email string) (models.Account, error) {
	email = normalizeEmail(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return models.Account{}, models.ErrNotFound
}

// List returns all accounts, registration order preserved.
func (r *AccountsRepo) List(ctx context.Context) []models.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Account(nil), r.accounts...)
}

// UpdateProfile changes the display name.
func (r *AccountsRepo) UpdateProfile(ctx context.Context, email, newName string) (models.Account, error) {
	if strings.TrimSpace(newName) == "" {
		return models.Account{}, models.ErrValidation
	}
	return r.mutate(ctx, email, func(a *models.Account) error {
		a.Name = strings.TrimSpace(newName)
		return nil
	})
}

// ChangePassword overwrites the stored secret after checking the current
// one and the confirmation.
func (r *AccountsRepo) ChangePassword(ctx context.Context, email, current, newPassword, confirm string) error {
	if newPassword != confirm {
		return models.ErrPasswordMismatch
	}
	if len(newPassword) < auth.MinPasswordLength {
		return models.ErrWeakPassword
	}
	phc, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = r.mutate(ctx, email, func(a *models.Account) error {
		if !auth.VerifyPassword(current, a.PasswordHash) {
			return models.ErrWrongCurrentPassword
		}
		a.PasswordHash = phc
		return nil
	})
	return err
}

// ResetPassword deterministically sets the account secret to the fixed
// recovery value. Admin-only; the caller gates the role.
func (r *AccountsRepo) ResetPassword(ctx context.Context, email string) error {
	phc, err := auth.HashPassword(auth.RecoveryPassword)
	if err != nil {
		return err
	}
	_, err = r.mutate(ctx, email, func(a *models.Account) error {
		a.PasswordHash = phc
		return nil
	})
	if err == nil {
		slog.DebugContext(ctx, "password reset", "email", normalizeEmail(email))
	}
	return err
}

// SetActive toggles login eligibility. Admin-only; the caller gates the
// role.
func (r *AccountsRepo) SetActive(ctx context.Context, email string, active bool) error {
	_, err := r.mutate(ctx, email, func(a *models.Account) error {
		a.Active = active
		return nil
	})
	return err
}

// Seed creates the first Admin when the store is empty.
func (r *AccountsRepo) Seed(ctx context.Context, name, email, password string) error {
	r.mu.RLock()
	empty := len(r.accounts) == 0
	r.mu.RUnlock()
	if !empty || email == "" {
		return nil
	}
	_, err := r.Register(ctx, name, email, password, models.RoleAdmin)
	return err
}

// GetTheme returns the stored theme preference, empty when unset.
func (r *AccountsRepo) GetTheme(ctx context.Context, email string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.prefs[normalizeEmail(email)]
}

// SetTheme stores the per-account theme preference.
func (r *AccountsRepo) SetTheme(ctx context.Context, email, theme string) error {
	email = normalizeEmail(email)
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make(map[string]string, len(r.prefs)+1)
	for k, v := range r.prefs {
		next[k] = v
	}
	next[email] = theme
	if err := persist(ctx, r.store, state.BucketPrefs, next); err != nil {
		return err
	}
	r.prefs = next
	return nil
}

// mutate applies fn to a copy of the matching account and swaps in a new
// collection on success.
func (r *AccountsRepo) mutate(ctx context.Context, email string, fn func(*models.Account) error) (models.Account, error) {
	email = normalizeEmail(email)
	r.mu.Lock()
	defer r.mu.Unlock()
	next := append([]models.Account(nil), r.accounts...)
	for i := range next {
		if next[i].Email != email {
			continue
		}
		if err := fn(&next[i]); err != nil {
			return models.Account{}, err
		}
		if err := persist(ctx, r.store, state.BucketAccounts, next); err != nil {
			return models.Account{}, err
		}
		r.accounts = next
		return next[i], nil
	}
	return models.Account{}, models.ErrNotFound
}
