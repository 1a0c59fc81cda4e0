package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"logsearch_backend/internal/app/router"
	"logsearch_backend/internal/config"
	authadapters "logsearch_backend/internal/feature/auth/adapters"
	authhandler "logsearch_backend/internal/feature/auth/transport/handler"
	authusecase "logsearch_backend/internal/feature/auth/usecase"
	dashboardadapters "logsearch_backend/internal/feature/dashboard/adapters"
	dashboardhandler "logsearch_backend/internal/feature/dashboard/transport/handler"
	dashboardusecase "logsearch_backend/internal/feature/dashboard/usecase"
	healthhandler "logsearch_backend/internal/feature/health/transport/handler"
	searchadapters "logsearch_backend/internal/feature/search/adapters"
	searchhandler "logsearch_backend/internal/feature/search/transport/handler"
	searchusecase "logsearch_backend/internal/feature/search/usecase"
	uploadadapters "logsearch_backend/internal/feature/upload/adapters"
	uploadhandler "logsearch_backend/internal/feature/upload/transport/handler"
	uploadusecase "logsearch_backend/internal/feature/upload/usecase"
	"logsearch_backend/internal/platform/elastic"
	"logsearch_backend/internal/platform/mongodb"
	"logsearch_backend/internal/platform/redisdb"
	"logsearch_backend/internal/platform/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded, using process environment")
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.FromEnv()
	ctx := context.Background()

	// Backing services. The app starts even when a backend is down; the
	// clients reconnect lazily and the affected features degrade.
	mongo := mongodb.NewClient(cfg)
	connectWithRetry(ctx, cfg, "mongodb", mongo.Connect)
	defer mongo.Close(ctx)

	redis := redisdb.NewClient(cfg)
	connectWithRetry(ctx, cfg, "redis", redis.Connect)
	defer redis.Close()

	es := elastic.NewClient(cfg)
	connectWithRetry(ctx, cfg, "elasticsearch", es.Connect)

	if err := os.MkdirAll(cfg.UploadFolder, 0o755); err != nil {
		slog.Error("upload folder not writable", "path", cfg.UploadFolder, "error", err)
	}

	// Repository
	userRepo := authadapters.NewUserMongo(mongo)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		slog.Warn("user indexes not ensured", "error", err)
	}
	fileRepo := uploadadapters.NewFileMongo(mongo)
	historyRepo := searchadapters.NewHistoryMongo(mongo)
	esEngine := searchadapters.NewEsSearchEngine(es, cfg.ElasticsearchIndex)
	cachedEngine := searchadapters.NewCachingSearchEngine(esEngine, redis, searchadapters.DefaultSearchCacheTTL)
	esStats := dashboardadapters.NewEsStats(es, cfg.ElasticsearchIndex)

	sessions := session.NewStore(redis, "session", cfg.SessionTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo)
	searchUC := searchusecase.NewSearchUsecase(cachedEngine, historyRepo)
	uploadUC := uploadusecase.NewUploadUsecase(fileRepo)
	dashboardUC := dashboardusecase.NewDashboardUsecase(esStats, fileRepo)

	// Handler
	handlers := router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC, sessions),
		Dashboard: dashboardhandler.NewDashboardHandler(dashboardUC, sessions),
		Search:    searchhandler.NewSearchHandler(searchUC),
		Upload:    uploadhandler.NewUploadHandler(uploadUC, cfg),
		Health: healthhandler.NewHealthHandler(map[string]healthhandler.Checker{
			"mongodb":       mongo,
			"redis":         redis,
			"elasticsearch": es,
		}),
	}

	r := router.NewRouter(handlers, sessions, cfg)

	slog.Info("server starting", "addr", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// connectWithRetry attempts the initial connection, waiting RetryDelay
// between attempts. Failure is logged, not fatal.
func connectWithRetry(ctx context.Context, cfg config.Config, name string, connect func(context.Context) bool) {
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if connect(ctx) {
			return
		}
		if attempt < cfg.MaxRetries {
			slog.Warn("connection attempt failed, retrying",
				"service", name, "attempt", attempt, "delay", cfg.RetryDelay)
			time.Sleep(cfg.RetryDelay)
		}
	}
	slog.Error("service unreachable at startup, continuing degraded", "service", name)
}
