package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/noah-isme/userdir/internal/app"
	"github.com/noah-isme/userdir/internal/banner"
	"github.com/noah-isme/userdir/internal/directory"
	"github.com/noah-isme/userdir/internal/observability"
	"github.com/noah-isme/userdir/internal/pages"
	"github.com/noah-isme/userdir/internal/platform/cache"
	"github.com/noah-isme/userdir/internal/shared"
	"github.com/noah-isme/userdir/internal/users"
	"github.com/noah-isme/userdir/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.LogFormat)

	redisClient, err := cache.New(ctx, cfg.RedisAddr, 0)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "userdir_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine(view.Site{Title: cfg.AppTitle})
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	notifications := banner.NewStore()
	backend := users.NewClient(cfg.BackendURL,
		users.WithTimeout(cfg.BackendTimeout),
		users.WithObserver(metrics),
	)
	controller := directory.NewController(backend, notifications, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		DirectoryHandler: directory.NewHandler(logger, controller, notifications, templates, csrfManager),
		PagesHandler:     pages.NewHandler(logger, notifications, templates, csrfManager),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	logger.Info("loading users", slog.String("backend", cfg.BackendURL))
	err = app.Serve(ctx, logger, server, func(ctx context.Context) error {
		controller.Activate(ctx)
		return nil
	})
	if err != nil {
		logger.Error("http server", slog.Any("error", err))
		os.Exit(1)
	}
}
