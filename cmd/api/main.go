// Package main is the entry point for the Ranger API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/treejer/ranger/backend/internal/config"
	"github.com/treejer/ranger/backend/internal/geocode"
	"github.com/treejer/ranger/backend/internal/handler"
	"github.com/treejer/ranger/backend/internal/middleware"
	"github.com/treejer/ranger/backend/internal/repo"
	"github.com/treejer/ranger/backend/internal/service"
	"github.com/treejer/ranger/backend/internal/treedoc"
	"github.com/treejer/ranger/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		sqlDB := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(context.Background(), sqlDB)
		_ = sqlDB.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", applied)
	}

	// --- Services ---------------------------------------------------------
	geocoder, err := geocode.New(cfg.MapboxToken, geocode.WithBaseURL(cfg.MapboxBaseURL))
	if err != nil {
		slog.Error("invalid geocoding configuration", "error", err)
		os.Exit(1)
	}
	if cfg.MapboxToken == "" {
		slog.Warn("MAPBOX_TOKEN not set; area-name lookups will return 503")
	}

	treeRepo := repo.NewTreeRepo(pool)
	srv := handler.NewServer(handler.Services{
		Trees:       service.NewTreeService(treeRepo),
		Submissions: service.NewSubmissionService(treeRepo, repo.NewSubmissionRepo(pool), treedoc.New(), cfg.IPFSDownloadURL),
		OfflineMaps: service.NewOfflineMapService(repo.NewOfflineMapRepo(pool), geocoder),
		Additional:  service.NewAdditionalDataService(repo.NewAdditionalDataRepo(pool)),
		Export:      service.NewExportService(treeRepo),
	})

	var protect []func(http.Handler) http.Handler
	if cfg.JWTSecret != "" {
		protect = append(protect, middleware.NewBearerAuth([]byte(cfg.JWTSecret)))
	} else {
		slog.Warn("JWT_SECRET not set; API routes are unauthenticated")
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srv.Handler(protect...))

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
