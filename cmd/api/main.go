package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/strikeball/platform/internal/handler"
	"github.com/strikeball/platform/internal/infra"
	"github.com/strikeball/platform/internal/repository"
	"github.com/strikeball/platform/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil {
		return fmt.Errorf("parse session TTL: %w", err)
	}

	// Connect to Postgres
	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Event producer
	producer := infra.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaEnabled, logger)
	defer producer.Close()

	// Repositories
	userRepo := repository.NewUserRepository()
	sessionRepo := repository.NewSessionRepository()
	teamRepo := repository.NewTeamRepository()
	matchRepo := repository.NewMatchRepository()

	// Avatar storage
	avatarStore := infra.NewAvatarStore(cfg.AvatarDir, cfg.AvatarBaseURL)

	// Services
	authSvc := service.NewAuthService(pool, userRepo, sessionRepo, sessionTTL)
	adminSvc := service.NewAdminService(pool, userRepo, teamRepo, matchRepo, producer, logger)
	matchSvc := service.NewMatchService(pool, matchRepo)
	avatarSvc := service.NewAvatarService(pool, userRepo, avatarStore)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	adminHandler := handler.NewAdminHandler(authSvc, adminSvc)
	matchesHandler := handler.NewMatchesHandler(authSvc, matchSvc)
	avatarHandler := handler.NewAvatarHandler(authSvc, avatarSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORSWithOrigins(cfg.CORSAllowedOrigins))
	r.MethodNotAllowed(handler.MethodNotAllowed)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Uploaded avatars
	r.Handle(cfg.AvatarBaseURL+"/*", http.StripPrefix(cfg.AvatarBaseURL+"/",
		http.FileServer(http.Dir(avatarStore.Dir()))))

	// API endpoints (JSON responses only)
	r.Group(func(r chi.Router) {
		r.Use(handler.JSONContentType)

		r.Get("/auth", authHandler.Current)
		r.Post("/auth", authHandler.Dispatch)

		r.Get("/admin", adminHandler.Data)
		r.Post("/admin", adminHandler.Dispatch)

		r.Get("/matches", matchesHandler.List)
		r.Post("/matches", matchesHandler.Dispatch)

		r.Post("/avatar", avatarHandler.Upload)
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	// Shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
