package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpadapter "adtrack/internal/adapter/http"
	"adtrack/internal/adapter/memory"
	"adtrack/internal/adapter/postgres"
	"adtrack/internal/adapter/redis"
	"adtrack/internal/adapter/usecase"
	"adtrack/internal/config"
	"adtrack/internal/core/port"
	"adtrack/internal/db"
	"adtrack/internal/metrics"
)

// main is the entry point of the tracking service. It loads configuration,
// opens the configured campaign store, optionally runs migrations and seeds
// demo data, then serves HTTP until a termination signal arrives.
func main() {
	exitCode := 1
	defer func() {
		os.Exit(exitCode)
	}()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}
	logger := cfg.Log.New(os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var repo port.CampaignRepository
	switch cfg.Storage.Driver {
	case "memory":
		logger.Warn("using in-memory campaign store, data is lost on restart")
		repo = memory.NewCampaignRepository()
	case "postgres":
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
				return
			}
			logger.Info("migrations applied successfully")
		}

		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			logger.Error("database connection error", slog.Any("error", err))
			return
		}
		defer pool.Close()
		repo = postgres.NewCampaignRepository(pool)
	default:
		logger.Error("unknown storage driver", slog.String("driver", cfg.Storage.Driver))
		return
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	opts := []usecase.Option{usecase.WithRecorder(m)}
	if cfg.Redis.Enabled() {
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			logger.Error("redis connection error", slog.Any("error", err))
			return
		}
		defer client.Close()
		opts = append(opts, usecase.WithDeliveryStore(redis.NewDeliveryStore(client, cfg.Redis.DeliveryTTL)))
		logger.Info("webhook redelivery check enabled", slog.String("redis", cfg.Redis.Addr))
	} else if cfg.Storage.Driver == "memory" {
		opts = append(opts, usecase.WithDeliveryStore(memory.NewDeliveryStore(cfg.Redis.DeliveryTTL)))
		logger.Info("webhook redelivery check enabled", slog.String("store", "memory"))
	}

	svc := usecase.NewTrackingUseCase(repo, usecase.Settings{
		BaseURL:          cfg.Tracking.BaseURL,
		CorrelationParam: cfg.Tracking.CorrelationParam,
		ClickTimeout:     cfg.Tracking.ClickTimeout,
	}, logger, opts...)

	if cfg.Psql.Seed {
		if err = db.Seed(ctx, svc); err != nil {
			logger.Error("seed error", slog.Any("error", err))
			return
		}
		logger.Info("demo campaigns seeded")
	}

	if cfg.Tracking.WebhookSecret == "" {
		logger.Warn("order webhook signatures are not verified, set TRACKING_WEBHOOK_SECRET to enable")
	}
	handler := httpadapter.NewHandler(svc, logger, httpadapter.Options{
		WebhookSecret: cfg.Tracking.WebhookSecret,
		Metrics:       m.Handler(),
	})
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
		logger.Error("server error", slog.Any("error", err))
		return
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
	defer stop()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		return
	}
	logger.Info("server gracefully stopped")
	exitCode = 0
}
