package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/eventbroker/nats"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/handlers/http/chi"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/handlers/http/chi/auth"
	mediahandler "github.com/BhagyaUdayangani/S3-Service/internal/adapters/handlers/http/chi/v1/media"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/imageservice"
	metrics "github.com/BhagyaUdayangani/S3-Service/internal/adapters/metrics/prometheus"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/moderation/rekognition"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/repository/postgres"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/storage"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/storage/minio"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/transcoder/ffmpeg"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/userservice"
	"github.com/BhagyaUdayangani/S3-Service/internal/config"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/port"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/service/cleanup"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/service/media"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/service/moderation"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/service/quota"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

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

	//storage
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to init object storage", "error", err)
		os.Exit(1)
	}
	objectStorage := storage.NewRetryingStorage(minioAdapter, nil)

	//moderation
	detector, err := rekognition.NewAdapter(ctx, cfg.Moderation, logger)
	if err != nil {
		logger.Error("failed to init moderation client", "error", err)
		os.Exit(1)
	}
	gateway := moderation.NewModerationGateway(detector, minioAdapter.Bucket(), cfg.Moderation, logger)

	//broker
	publisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to create NATS publisher", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close NATS publisher", "error", err)
		}
	}()

	//metrics
	observer, err := metrics.NewObserver("", prometheus.DefaultRegisterer)
	if err != nil {
		logger.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	//collaborators
	userClient := userservice.NewClient(nil, cfg.Quota, logger)
	imageClient := imageservice.NewClient(nil, cfg.ImageService, minioAdapter.Bucket(), cfg.Storage.PublicBaseURL, logger)

	mediaService := media.NewMediaService(media.Dependencies{
		Storage:     objectStorage,
		Moderation:  gateway,
		Quota:       quota.NewQuotaGuard(userClient, cfg.Quota, cfg.Moderation, logger),
		Transcoder:  ffmpeg.NewExecutor(cfg.Transcoding, logger),
		Derivatives: imageClient,
		Publisher:   publisher,
		Records:     postgres.NewSQLUploadRecordRepository(db),
		Observer:    observer,
	}, cfg.Env.TempDir, logger)

	cleanupService := cleanup.NewCleanupService(cfg.Env.TempDir, cfg.Cleanup.MaxAge, logger)

	//http
	mediaHandler := mediahandler.NewMediaHandlerV1(mediaService, imageClient, cfg.Server.MaxUploadSize, logger)

	router := chi.NewRouter(logger, mediaHandler, chi.RouterOptions{
		Env:            cfg.Env.Env,
		RequestTimeout: cfg.Server.RequestTimeout,
		Authenticate:   auth.Middleware(cfg.Auth.JWTSecret, logger, mediahandler.WriteUnauthorized(logger)),
		Metrics:        promhttp.Handler(),
	})
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	// init cleanup task
	wg.Add(1)
	go func() {
		defer wg.Done()
		initCleanupTask(ctx, cleanupService, cfg.Cleanup.Every, logger)
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initCleanupTask(ctx context.Context, service port.CleanupService, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("cleanup task initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			if _, err := service.CleanupStaleWorkspaces(ctx, time.Now()); err != nil {
				logger.Error("failed to cleanup stale workspaces", "error", err)
			}
		case <-ctx.Done():
			logger.Info("cleanup task stopped")
			return
		}
	}
}
