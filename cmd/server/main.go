package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/Get2Core/fs-project/internal/app/di"
	"github.com/Get2Core/fs-project/internal/app/router"
	directoryhandler "github.com/Get2Core/fs-project/internal/feature/directory/transport/handler"
	directoryusecase "github.com/Get2Core/fs-project/internal/feature/directory/usecase"
	explainhandler "github.com/Get2Core/fs-project/internal/feature/explain/transport/handler"
	explainusecase "github.com/Get2Core/fs-project/internal/feature/explain/usecase"
	financialshandler "github.com/Get2Core/fs-project/internal/feature/financials/transport/handler"
	financialsusecase "github.com/Get2Core/fs-project/internal/feature/financials/usecase"
	"github.com/Get2Core/fs-project/internal/platform/externalapi/opendart"
	"github.com/Get2Core/fs-project/internal/platform/http/handler"
	jwtmw "github.com/Get2Core/fs-project/internal/platform/jwt"
	"github.com/Get2Core/fs-project/internal/platform/metrics"
	infraredis "github.com/Get2Core/fs-project/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// ディレクトリストア
	path := di.DirectoryPath("")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.Error("failed to create directory store dir", "path", path, "error", err)
		os.Exit(1)
	}
	dir, err := di.NewDirectory(path, m)
	if err != nil {
		slog.Error("failed to open directory store", "path", path, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := dir.Close(); err != nil {
			slog.Error("failed to close directory store", "error", err)
		}
	}()
	if err := dir.Reload(ctx); err != nil {
		slog.Warn("directory store not loaded. Run `directory fetch` or the rebuild endpoint.", "path", path, "error", err)
	}
	go func() {
		if err := dir.Watch(ctx); err != nil {
			slog.Error("directory watcher stopped", "error", err)
		}
	}()

	// Redis
	checks := map[string]handler.ReadyCheck{
		"directory": func(ctx context.Context) error {
			_, err := dir.Stats(ctx)
			return err
		},
	}
	var rdb *redisv9.Client
	if cfg := infraredis.LoadConfig(); cfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// 外部API
	dart := di.NewOpenDARTClient()
	if !dart.Configured() {
		slog.Warn("OPENDART_API_KEY is not set. Financial statements and rebuild are disabled.")
	}
	gen := di.NewTextGenerator(ctx)

	// Usecase
	buildUC := directoryusecase.NewBuildUsecase(dir, m)
	searchUC := directoryusecase.NewSearchUsecase(dir)
	adminUC := directoryusecase.NewAdminUsecase(dir, buildUC, opendart.NewCorpCodeSource(dart))
	statementUC := financialsusecase.NewStatementUsecase(di.NewAccountFetcher(rdb, dart))
	explainUC := explainusecase.NewExplainUsecase(gen)

	// Handler
	directoryH := directoryhandler.NewDirectoryHandler(searchUC, adminUC, directoryhandler.Integrations{
		OpenDART: dart.Configured(),
		Gemini:   gen != nil,
	})
	statementH := financialshandler.NewStatementHandler(statementUC)
	explainH := explainhandler.NewExplainHandler(explainUC)

	// ルータ生成
	r := router.NewRouter(m, checks, directoryH, statementH, explainH)

	// JWT_SECRETチェック（管理者エンドポイントは使えなくなる）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		slog.Warn("JWT_SECRET is not set. Admin endpoints will reject all requests.")
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", addr, "directory", path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
