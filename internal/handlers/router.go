// internal/handlers/router.go
package handlers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/auth"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/handlers/accounts"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/handlers/annotations"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/handlers/calendar"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/handlers/chat"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/handlers/predictions"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/handlers/tasks"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/middleware"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/predict"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/repo"
)

// RegisterRoutes mounts the full API surface. Page-level role gates live
// here: the calendar group is closed to Lab Staff and the accounts group
// to everyone but Admin, both before any store is queried.
func RegisterRoutes(mux *chi.Mux, r *repo.Repo, lockout *auth.Lockout, client *predict.Client, history *repo.HistoryCache) {
	ah := accounts.New(r.Accounts, lockout)
	th := tasks.New(r.Tasks, r.Accounts)
	ch := calendar.New(r.Calendar)
	mh := chat.New(r.Chat, r.Accounts)
	nh := annotations.New(r.Annotations)
	ph := predictions.New(client, history)

	// Public auth surface
	mux.Post("/auth/register", ah.Register)
	mux.Post("/auth/login", ah.Login)
	mux.Post("/auth/logout", ah.Logout)

	// Authenticated profile surface
	mux.Group(func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r.Accounts))
		sr.Get("/auth/me", ah.Me)
		sr.Put("/auth/profile", ah.UpdateProfile)
		sr.Post("/auth/change-password", ah.ChangePassword)
		sr.Get("/theme", ah.GetTheme)
		sr.Put("/theme", ah.SetTheme)
	})

	mux.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.RequireAuth(r.Accounts))

		api.Route("/accounts", func(sr chi.Router) {
			sr.Use(middleware.RequireCapability(models.CanAdministrate))
			sr.Get("/", ah.List)
			sr.Post("/{email}/reset-password", ah.ResetPassword)
			sr.Put("/{email}/active", ah.SetActive)
		})

		api.Route("/tasks", func(sr chi.Router) {
			sr.Get("/", th.List)
			sr.Post("/", th.Create)
			sr.Put("/{taskID}", th.Update)
			sr.Patch("/{taskID}/status", th.SetStatus)
			sr.Delete("/{taskID}", th.Delete)
		})

		api.Route("/calendar", func(sr chi.Router) {
			sr.Use(middleware.RequireCapability(models.CanUseCalendar))
			sr.Get("/events", ch.List)
			sr.Get("/grid", ch.Grid)
			sr.Post("/events", ch.Create)
			sr.Put("/events/{eventID}", ch.Update)
			sr.Delete("/events/{eventID}", ch.Delete)
		})

		api.Route("/chat", func(sr chi.Router) {
			sr.Get("/threads", mh.Threads)
			sr.Get("/threads/{threadID}", mh.Thread)
			sr.Post("/threads/{threadID}", mh.Post)
			sr.Post("/direct", mh.Direct)
		})

		api.Route("/annotations", func(sr chi.Router) {
			sr.Get("/{key}", nh.Get)
			sr.Put("/{key}", nh.Put)
		})

		api.Post("/predict", ph.Predict)
		api.Get("/history", ph.History)
		api.Get("/dashboard", ph.Dashboard)
	})
}
