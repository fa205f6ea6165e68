// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduafri/internal/cache"
	"eduafri/internal/config"
	"eduafri/internal/handlers"
	"eduafri/internal/jobs"
	"eduafri/internal/logging"
	"eduafri/internal/observability"
	"eduafri/internal/offline"
	"eduafri/internal/policy"
	"eduafri/internal/repository"
	"eduafri/internal/service"

	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	log.Println("Log Config Loading...")

	// Configを読み込み
	configDir := os.Getenv("CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := &config.Cfg

	// === 設定に基づいて slog ロガーを初期化 ===
	logger, closeLogger := logging.Setup(cfg, os.Stderr)
	defer closeLogger()
	log.Println("Log Config Loaded...")

	slog.Info("Application starting...", slog.String("version", config.AppVersion), slog.String("env", cfg.App.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitOTel(ctx, logger, cfg.App, cfg.Otel)
	if err != nil {
		slog.Error("Error initializing tracing", slog.Any("error", err))
		os.Exit(1)
	}

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(cfg.Database.URL, cfg.App.Env, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}

	// Redis は任意。無効ならキャッシュなし + プロセス内の失効リスト
	var rdb *goredis.Client
	contentCache := cache.NewNopCache()
	revocations := cache.NewMemoryRevocationStore()
	if cfg.Redis.Enabled {
		rdb, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			slog.Error("Error connecting to redis", slog.Any("error", err))
			os.Exit(1)
		}
		contentCache = cache.NewRedisCache(rdb, "eduafri")
		revocations = cache.NewRedisRevocationStore(rdb)
		slog.Info("Redis connected", slog.String("addr", cfg.Redis.Addr))
	}

	mailer, err := service.NewMailer(cfg)
	if err != nil {
		slog.Error("Error initializing mailer", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Dependency Injection
	contentRepo := repository.NewGormContentRepository()
	questionRepo := repository.NewGormQuestionRepository()
	languageRepo := repository.NewGormLanguageRepository()
	profileRepo := repository.NewGormProfileRepository()
	identityRepo := repository.NewGormIdentityRepository()
	progressRepo := repository.NewGormProgressRepository()
	downloadRepo := repository.NewGormDownloadRepository()
	quizResultRepo := repository.NewGormQuizResultRepository()

	authService := service.NewAuthService(db, identityRepo, profileRepo, languageRepo, revocations, mailer, cfg)
	contentService := service.NewContentService(db, contentRepo, questionRepo, languageRepo, contentCache, cfg.Cache.ContentTTL)
	quizService := service.NewQuizService(db, contentRepo, questionRepo, quizResultRepo)
	progressService := service.NewProgressService(db, contentRepo, progressRepo)
	profileService := service.NewProfileService(db, profileRepo, languageRepo)
	downloadService := service.NewDownloadService(db, contentRepo, downloadRepo, service.NewSizeTable(cfg.Download))
	dashboardService := service.NewDashboardService(db, profileRepo, progressRepo, downloadRepo, quizResultRepo)

	authorizer := policy.NewProfileAuthorizer(db, profileRepo)

	h := handlers.Handlers{
		Auth:      handlers.NewAuthHandler(authService, profileService, handlers.CookieSettingsFromConfig(cfg)),
		Content:   handlers.NewContentHandler(contentService, logger),
		Progress:  handlers.NewProgressHandler(progressService),
		Quiz:      handlers.NewQuizHandler(quizService),
		Download:  handlers.NewDownloadHandler(downloadService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Admin:     handlers.NewAdminHandler(contentService, quizService, profileService),
		Page:      handlers.NewPageHandler(contentService, quizService, downloadService, profileService, dashboardService),
		Offline:   offline.NewHandler(cfg.Auth.AnonKey),
		Health:    handlers.HealthHandler(db),
	}

	// 4. Setup Router
	router := handlers.NewRouter(handlers.RouterConfig{
		Config:   cfg,
		Logger:   logger,
		Sessions: authService,
		Admins:   authorizer,
	}, h)

	// 定期ジョブ
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler, err = jobs.NewScheduler(cfg.Jobs, cfg.Download.RetentionDays, contentService, downloadService, logger)
		if err != nil {
			slog.Error("Error initializing job scheduler", slog.Any("error", err))
			os.Exit(1)
		}
		scheduler.Start()
	}

	// 5. Start Server
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      otelhttp.NewHandler(router, cfg.App.Name),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful Shutdown
	exitCode := 0
	select {
	case <-ctx.Done():
		slog.Info("Shutting down server...")
	case err := <-serverErr:
		slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("Error shutting down tracer provider", slog.Any("error", err))
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("Error closing redis client", slog.Any("error", err))
		}
	}
	if err := repository.CloseDB(db); err != nil {
		slog.Error("Error closing database connection", slog.Any("error", err))
	} else {
		slog.Info("Database connection closed.")
	}

	log.Println("Server exiting")
	if exitCode != 0 {
		closeLogger()
		os.Exit(exitCode)
	}
}
