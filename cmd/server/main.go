// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	mux_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/auth"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/config"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/handlers"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/middleware"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/predict"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/repo"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/state"
)

func main() {
	// --- Load config (config.yaml + env overrides) ---
	cfg := config.Load()

	// --- Open the state store ---
	ctx := context.Background()
	store, err := state.Open(state.Options{
		Driver:      state.Driver(cfg.Storage.Driver),
		DataDir:     cfg.Storage.DataDir,
		SQLitePath:  cfg.Storage.SQLitePath,
		PostgresDSN: cfg.Storage.PostgresDSN,
		RedisAddr:   cfg.Storage.RedisAddr,
	})
	if err != nil {
		log.Fatalf("state store error: %v", err)
	}
	defer store.Close()

	// --- Hydrate repositories ---
	r, err := repo.New(ctx, store)
	if err != nil {
		log.Fatalf("repo hydrate error: %v", err)
	}
	if err := r.Accounts.Seed(ctx, cfg.Seed.AdminName, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
		log.Fatalf("seed admin error: %v", err)
	}

	lockout := auth.NewLockout()
	client := predict.NewClient(cfg.Predictor.URL)
	history := repo.NewHistoryCache()

	// --- Router ---
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(mux_middleware.Logger)

	// --- CORS middleware ---
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000", "http://127.0.0.1:5173", "http://127.0.0.1:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handlers.RegisterRoutes(mux, r, lockout, client, history)

	// Health root
	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ok":true,"service":"GenomeRx Collaboration Core"}`))
	})

	// --- Start server ---
	addr := cfg.ListenAddr
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	log.Printf("listening on %s (storage=%s predictor=%s)", addr, cfg.Storage.Driver, cfg.Predictor.URL)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
