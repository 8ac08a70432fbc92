package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/eventbroker/nats"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/repository/postgres"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/storage"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/storage/minio"
	"github.com/BhagyaUdayangani/S3-Service/internal/config"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/service/reconcile"

	"github.com/cenkalti/backoff/v4"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize database
	dbCtx, dbCancel := context.WithTimeout(ctx, 5*time.Second)
	db, err := postgres.Open(dbCtx, cfg.Database)
	dbCancel()
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("db connection established")

	minioAdapter, err := minio.NewAdapter(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to init object storage", "error", err)
		os.Exit(1)
	}
	logger.Info("object storage initialized")

	// deletes here run outside a request, so they get a longer retry window
	objectStorage := storage.NewRetryingStorage(minioAdapter, func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = 30 * time.Second
		return b
	})

	reconcileService := reconcile.NewReconcileService(objectStorage, postgres.NewSQLUploadRecordRepository(db), logger)

	// Initialize NATS consumer
	natsConsumer, err := nats.NewNATSConsumer(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to create NATS consumer", "error", err)
		os.Exit(1)
	}
	logger.Info("NATS consumer initialized")

	if err := natsConsumer.Subscribe(ctx, reconcileService); err != nil {
		logger.Error("failed to subscribe to NATS", "error", err)
		_ = natsConsumer.Close()
		os.Exit(1)
	}
	logger.Info("NATS subscription active", "subject", cfg.NATS.RemovalSubject)

	// Wait for termination signal
	<-ctx.Done()
	logger.Info("gracefully shutting down reconciler")

	// Close stops the iterator and waits for the in-flight message
	if err := natsConsumer.Close(); err != nil {
		logger.Error("failed to close NATS consumer during shutdown", "error", err)
	}

	logger.Info("reconciler shutdown complete")
}
