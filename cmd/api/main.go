package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tagreel/videos-ms-go/internal/auth"
	"github.com/tagreel/videos-ms-go/internal/cache"
	"github.com/tagreel/videos-ms-go/internal/config"
	"github.com/tagreel/videos-ms-go/internal/db"
	"github.com/tagreel/videos-ms-go/internal/handler"
	"github.com/tagreel/videos-ms-go/internal/handler/api"
	"github.com/tagreel/videos-ms-go/internal/logger"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/repository/mariadb"
	"github.com/tagreel/videos-ms-go/internal/storage"
	"github.com/tagreel/videos-ms-go/internal/task"
	shopSvcPkg "github.com/tagreel/videos-ms-go/internal/usecase/shop"
	uploadjobSvc "github.com/tagreel/videos-ms-go/internal/usecase/uploadjob"
	videoSvc "github.com/tagreel/videos-ms-go/internal/usecase/video"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	authenticator := initAuthenticator(ctx, cfg)
	r := initRouter(ctx)

	strg := initStorage(ctx, cfg)
	initBucket(ctx, strg, cfg.VideosBucket)

	videoRepo := mariadb.NewVideoRepository(database.DB)
	auditRepo := mariadb.NewAuditRepository(database.DB)
	jobRepo := mariadb.NewUploadJobRepository(database.DB)
	shopRepo := mariadb.NewShopRepository(database.DB)
	orgRepo := mariadb.NewOrganizationRepository(database.DB)

	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured — caching and upload queueing are disabled")
	}

	withAuth := api.WithAuth(authenticator)

	intentSvc := videoSvc.NewIntentIssuer(videoRepo, strg, cfg.VideosBucket, cfg.UploadURLExpiry)
	r.With(withAuth).
		Post("/videos/upload_intent", api.UploadIntentHandler(intentSvc))

	listSvc := videoSvc.NewVideoLister(videoRepo)
	r.With(withAuth).
		Get("/videos", api.ListVideosHandler(listSvc))

	detailSvc := videoSvc.NewVideoDetailGetter(videoRepo, strg, cfg.VideosBucket, cfg.DownloadURLExpiry)
	r.With(withAuth, api.WithVideoID()).
		Get("/videos/{id}", api.GetVideoHandler(detailSvc))

	deleteSvc := videoSvc.NewVideoDeleter(videoRepo, auditRepo, ca, strg, cfg.VideosBucket, cfg.DeletionGraceWindow)
	r.With(withAuth, api.WithVideoID()).
		Delete("/videos/{id}", api.DeleteVideoHandler(deleteSvc))

	// anonymous watch endpoint, no auth
	publicSvc := videoSvc.NewPublicDetailGetter(videoRepo, ca, strg, cfg.VideosBucket, cfg.DownloadURLExpiry)
	r.With(api.WithVideoID()).
		Get("/videos/{id}/detail", api.PublicDetailHandler(publicSvc))

	enqueueSvc := uploadjobSvc.NewUploadEnqueuer(jobRepo, shopRepo, dispatcher)
	r.With(withAuth).
		Post("/uploads", api.EnqueueUploadHandler(enqueueSvc))

	statusSvc := uploadjobSvc.NewUploadStatusGetter(jobRepo, shopRepo)
	r.With(withAuth).
		Get("/uploads/{id}", api.GetUploadHandler(statusSvc))

	shopSvc := shopSvcPkg.NewShopCreator(shopRepo, orgRepo)
	r.With(withAuth).
		Post("/shops", api.CreateShopHandler(shopSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initAuthenticator(ctx context.Context, cfg *config.Settings) auth.Authenticator {
	if cfg.AuthMode == "static" {
		a, err := auth.NewStaticAuthenticator(cfg.StaticPrincipal)
		if err != nil {
			logger.Errorf(ctx, "❌  Invalid static principal: %v", err)
			os.Exit(1)
		}
		logger.Warn(ctx, "⚠️  Static authentication enabled — do not use in production")
		return a
	}

	a, err := auth.NewJWTAuthenticator(cfg.JWTPublicKey)
	if err != nil {
		logger.Errorf(ctx, "❌  Invalid JWT public key: %v", err)
		os.Exit(1)
	}
	return a
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.NotFound(handler.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBucket(ctx context.Context, strg port.Storage, bucket string) {
	if err := strg.InitBucket(bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", bucket, err)
		os.Exit(1)
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
