package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/noah-isme/userdir/internal/app"
	"github.com/noah-isme/userdir/internal/platform/db"
	"github.com/noah-isme/userdir/internal/userapi"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping users api startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadAPIConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.LogFormat)

	var store userapi.Store
	if cfg.PGDSN == "" {
		logger.Info("using in-memory users store")
		store = userapi.NewMemoryStore()
	} else {
		pool, err := db.New(ctx, cfg.PGDSN, db.Options{})
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		pgStore := userapi.NewPostgresStore(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			logger.Error("ensure schema", slog.Any("error", err))
			os.Exit(1)
		}
		store = pgStore
	}

	if cfg.Seed {
		n, err := userapi.Seed(ctx, store, userapi.SampleUsers())
		if err != nil {
			logger.Error("seed users", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("seeded users", slog.Int("count", n))
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.RequestID, chimw.Recoverer, chimw.Logger)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	userapi.NewHandler(logger, store).MountRoutes(r)

	server := &http.Server{
		Addr:         cfg.APIAddr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if err := app.Serve(ctx, logger, server); err != nil {
		logger.Error("http server", slog.Any("error", err))
		os.Exit(1)
	}
}
