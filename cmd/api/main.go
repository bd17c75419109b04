// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Yomira Press HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL and Redis.
//  4. Run database migrations.
//  5. Wire domain services and HTTP handlers.
//  6. Start the HTTP server and the session janitor, then wait for a signal.
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

	"github.com/taibuivan/yomira-press/internal/api"
	"github.com/taibuivan/yomira-press/internal/core/author"
	"github.com/taibuivan/yomira-press/internal/core/chapter"
	"github.com/taibuivan/yomira-press/internal/core/comic"
	"github.com/taibuivan/yomira-press/internal/core/genre"
	"github.com/taibuivan/yomira-press/internal/imgur"
	"github.com/taibuivan/yomira-press/internal/platform/config"
	"github.com/taibuivan/yomira-press/internal/platform/constants"
	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	"github.com/taibuivan/yomira-press/internal/platform/migration"
	pgstore "github.com/taibuivan/yomira-press/internal/platform/postgres"
	redisstore "github.com/taibuivan/yomira-press/internal/platform/redis"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/site/layout"
	"github.com/taibuivan/yomira-press/internal/site/merch"
	"github.com/taibuivan/yomira-press/internal/site/text"
	"github.com/taibuivan/yomira-press/internal/social/comment"
	"github.com/taibuivan/yomira-press/internal/social/rating"
	"github.com/taibuivan/yomira-press/internal/users/account"
	"github.com/taibuivan/yomira-press/internal/users/auth"
)

// sessionPurgeInterval is how often expired sessions are deleted.
const sessionPurgeInterval = time.Hour

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("imgur_base_url", cfg.Imgur.BaseURL),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Storage ────────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.PoolOptions{MaxConns: cfg.DatabaseMaxConns}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	sessionRepository := auth.NewSessionRepository(pool)
	authService := auth.NewService(auth.NewUserRepository(pool), sessionRepository, tokens, log)
	accountService := account.NewService(account.NewRepository(pool), sessionRepository, log)

	importer := imgur.NewImporter(imgur.NewHTTPFetcher(imgur.Options{
		BaseURL:    cfg.Imgur.BaseURL,
		UserAgent:  cfg.Imgur.UserAgent,
		Timeout:    cfg.Imgur.Timeout,
		MaxRetries: cfg.Imgur.MaxRetries,
		Logger:     log,
	}), log)

	chapterService := chapter.NewService(
		chapter.NewPostgresRepository(pool),
		chapter.NewRedisImportLock(rdb),
		importer,
		cfg.ImportLockTTL,
		log,
	)

	importThrottle := middleware.NewImportThrottle()

	textRepository := text.NewCachedRepository(text.NewPostgresRepository(pool), rdb, constants.SiteTextCacheTTL, log)

	checks := api.HealthDependencies{}
	checks.Add("postgres", func(ctx context.Context) error { return pgstore.Ping(ctx, pool) })
	checks.Add("redis", func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) })
	liveness, readiness := api.NewHealthHandlers(checks, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Domains: []api.RouteRegistrar{
			auth.NewHandler(authService, !cfg.IsDevelopment()),
			account.NewHandler(accountService),
			comic.NewHandler(comic.NewService(comic.NewPostgresRepository(pool), log)),
			chapter.NewHandler(chapterService, importThrottle),
			author.NewHandler(author.NewService(author.NewPostgresRepository(pool), log)),
			genre.NewHandler(genre.NewService(genre.NewPostgresRepository(pool), log)),
			imgur.NewHandler(importer, importThrottle),
			rating.NewHandler(rating.NewService(rating.NewPostgresRepository(pool), log)),
			comment.NewHandler(comment.NewService(comment.NewPostgresRepository(pool), log)),
			merch.NewHandler(merch.NewService(merch.NewPostgresRepository(pool), log)),
			layout.NewHandler(layout.NewService(layout.NewPostgresRepository(pool), log)),
			text.NewHandler(text.NewService(textRepository, log)),
		},
	}

	// ── 6. Run ────────────────────────────────────────────────────────────
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(cfg, log, tokens, handlers)

	go purgeSessions(appCtx, authService, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_failed", slog.Any("error", err))
	}

	appCancel()

	log.Info("shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// purgeSessions deletes expired sessions until ctx is cancelled.
func purgeSessions(ctx context.Context, service *auth.Service, log *slog.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := service.PurgeExpiredSessions(ctx); err != nil {
				log.Warn("session_purge_failed", slog.Any("error", err))
			}
		case <-ctx.Done():
			return
		}
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// It is limited to startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure", slog.String("step", step), slog.Any("error", err))
		os.Exit(1)
	}
}
