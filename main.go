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
	"time"

	"inkwell-cms/cache"
	"inkwell-cms/config"
	"inkwell-cms/converter"
	"inkwell-cms/handlers"
	"inkwell-cms/logger"
	"inkwell-cms/middleware"
	"inkwell-cms/repositories"
	"inkwell-cms/services"
	"inkwell-cms/staging"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg := config.MustLoad(configPath)

	log := logger.New(logger.Config{
		Format:      cfg.Log.Format,
		Environment: cfg.Log.Environment,
		Level:       cfg.Log.Level,
	})
	slog.SetDefault(log)
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db := config.InitDB(cfg.Database)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)

	previews := newPreviewStore(cfg.Redis, log)

	stager := staging.New(cfg.Staging.Root, cfg.Server.MaxUploadBytes, log)
	if n, err := stager.Sweep(time.Hour); err != nil {
		log.Warn("staging sweep failed", "error", err)
	} else if n > 0 {
		log.Info("removed stale staging directories", "count", n)
	}

	sanitizer := converter.NewSanitizer()

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWT)
	articleService := services.NewArticleService(articleRepo, previews, sanitizer, log)
	ingestService := services.NewIngestService(stager, converter.NewRegistry(), sanitizer, previews, log)
	userService := services.NewUserService(userRepo, log)
	exportService := services.NewExportService(articleService)

	uploadLimiter := middleware.NewKeyedRateLimiter(cfg.RateLimit.UploadsPerMinute, cfg.RateLimit.Burst)

	router := handlers.SetupRouter(handlers.RouterDeps{
		AuthService:    authService,
		ArticleService: articleService,
		IngestService:  ingestService,
		UserService:    userService,
		ExportService:  exportService,
		UploadLimiter:  uploadLimiter,
		Logger:         log,
		AllowOrigins:   cfg.Server.AllowOrigins,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go housekeeping(ctx, stager, uploadLimiter, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

// newPreviewStore uses redis when an address is configured, otherwise a
// process-local store.
func newPreviewStore(cfg config.RedisConfig, log *slog.Logger) cache.PreviewStore {
	if cfg.Addr == "" {
		log.Info("redis not configured, keeping previews in memory")
		return cache.NewMemoryPreviewStore(cfg.PreviewTTL)
	}
	client, err := cache.NewRedisClient(cfg, log)
	if err != nil {
		log.Warn("redis unavailable, keeping previews in memory", "error", err)
		return cache.NewMemoryPreviewStore(cfg.PreviewTTL)
	}
	return cache.NewRedisPreviewStore(client, cfg.PreviewTTL)
}

func housekeeping(ctx context.Context, stager *staging.Stager, limiter *middleware.KeyedRateLimiter, log *slog.Logger) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := stager.Sweep(time.Hour); err != nil {
				log.Warn("staging sweep failed", "error", err)
			}
			limiter.Prune()
		}
	}
}
