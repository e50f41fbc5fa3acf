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

	"github.com/GoSim-25-26J-441/sample-tracking-overview/config"
	httpapi "github.com/GoSim-25-26J-441/sample-tracking-overview/internal/api/http"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/auth"
	authmw "github.com/GoSim-25-26J-441/sample-tracking-overview/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/bootstrap"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/repository"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/session"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/ui"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := bootstrap.NewLogger(os.Stdout, cfg.App.Environment, cfg.LogLevel())
	slog.SetDefault(logger)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := repository.EnsureSchema(ctx, sqlDB); err != nil {
			return err
		}
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	var verifier authmw.TokenVerifier
	if cfg.Firebase.CredentialsPath != "" {
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			return err
		}
		verifier = client
		logger.Info("firebase auth enabled")
	} else {
		logger.Warn("firebase credentials not set, trusting X-User-Id header")
	}

	workers := ui.NewWorkers(cfg.Sessions.Workers, logger)
	registry := session.NewRegistry(bootstrap.ViewBuilder(bootstrap.TrackingStores{
		Projects:      repository.NewProjectRepository(sqlDB),
		Samples:       repository.NewSampleRepository(sqlDB),
		Manifests:     repository.NewManifestProvider(pool),
		Subscriptions: repository.NewSubscriptionRepository(rdb),
	}), session.Options{
		QueueSize: cfg.Sessions.QueueSize,
		Workers:   workers,
		Logger:    logger,
	})

	reaper := session.NewReaper(registry, cfg.Sessions.IdleTTL, cfg.Sessions.ReapSchedule, logger)
	if err := reaper.Start(); err != nil {
		return err
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.Name,
		Version:        cfg.App.Version,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Health: httpapi.HealthDeps{
			DB: pool,
			Redis: httpapi.PingFunc(func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}),
			Sessions: registry.Len,
		},
		Sessions:       registry,
		Verifier:       verifier,
		AccessTimeout:  cfg.Sessions.AccessTimeout,
		RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	reaper.Stop()
	registry.CloseAll()
	workers.Wait()
	return err
}
