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

	"github.com/pitchside/platform/internal/app"
	"github.com/pitchside/platform/internal/auth"
	"github.com/pitchside/platform/internal/infra"
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

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	// Postgres
	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Redis (match timers)
	rdb, err := infra.NewRedisClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()
	logger.Info("connected to redis")

	// JWT
	coachExpiry, err := time.ParseDuration(cfg.JWTCoachExpiry)
	if err != nil {
		return fmt.Errorf("parse coach JWT expiry: %w", err)
	}
	directorExpiry, err := time.ParseDuration(cfg.JWTDirectorExpiry)
	if err != nil {
		return fmt.Errorf("parse director JWT expiry: %w", err)
	}
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, coachExpiry, directorExpiry)

	// Live fanout. Single-instance deployments notify the hub directly;
	// with Kafka enabled the relay delivers everyone's events instead.
	hub := infra.NewLiveHub(logger)
	defer hub.Shutdown(context.Background())

	deps := app.RouterDeps{
		BaseCtx:            ctx,
		Pool:               pool,
		Redis:              rdb,
		JWTMgr:             jwtMgr,
		Hub:                hub,
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}

	if cfg.KafkaEnabled {
		relay := infra.NewLiveRelay(cfg, hub, logger)
		relay.Start(ctx)
		defer relay.Close()
	} else {
		deps.Notifier = hub
	}

	r := app.NewRouter(deps)

	addr := fmt.Sprintf(":%d", cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
