package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/time/rate"

	"github.com/tagreel/videos-ms-go/internal/config"
	"github.com/tagreel/videos-ms-go/internal/db"
	workerHandler "github.com/tagreel/videos-ms-go/internal/handler/worker"
	"github.com/tagreel/videos-ms-go/internal/logger"
	"github.com/tagreel/videos-ms-go/internal/notifier"
	"github.com/tagreel/videos-ms-go/internal/platform"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/repository/mariadb"
	"github.com/tagreel/videos-ms-go/internal/storage"
	"github.com/tagreel/videos-ms-go/internal/task"
	uploadjobSvc "github.com/tagreel/videos-ms-go/internal/usecase/uploadjob"
	"github.com/tagreel/videos-ms-go/internal/vault"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)

	jobRepo := mariadb.NewUploadJobRepository(database.DB)
	shopRepo := mariadb.NewShopRepository(database.DB)

	decrypter, err := vault.NewKMSDecrypter(ctx, cfg.AWSRegion)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize KMS decrypter: %v", err)
		os.Exit(1)
	}
	uploader := platform.NewYouTubeUploader(cfg.PlatformClientID, cfg.PlatformClientSecret)
	mailer, err := notifier.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize mailer: %v", err)
		os.Exit(1)
	}

	processSvc := uploadjobSvc.NewUploadProcessor(jobRepo, shopRepo, decrypter, strg, uploader, mailer, cfg.VideosBucket)

	// the platform API meters uploads per minute; throttle before each attempt
	limiter := rate.NewLimiter(rate.Limit(float64(cfg.WorkerRatePerMin)/60.0), cfg.WorkerRatePerMin)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeVideoUpload, func(ctx context.Context, t *asynq.Task) error {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		return workerHandler.UploadVideoHandler(ctx, t, processSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency:    cfg.WorkerConcurrency,
		RetryDelayFunc: task.RetryDelay,
	})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish in-flight uploads
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
