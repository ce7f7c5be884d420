// Package main はIMS加入者データサービスのHTTPフロントエンドのエントリーポイント。
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/oyaguma3/ims-hss-frontend-poc/internal/config"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/handler"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/hss"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/orchestrator"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/server"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/store"
)

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	initLogger(cfg)

	slog.Info("starting hss-frontend",
		"listen_addr", cfg.ListenAddr,
		"log_level", cfg.LogLevel,
		"hss_configured", cfg.HSSConfigured,
		"query_cache_av", cfg.QueryCacheAV,
	)

	// 3. キャッシュストア接続
	cacheClient, err := store.NewClient(cfg)
	if err != nil {
		slog.Error("failed to connect to cache store",
			"event_id", "CACHE_CONN_ERR",
			"addr", cfg.CacheAddr,
			"error", err,
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	cache := store.NewGateway(cacheClient)

	slog.Info("cache store connected", "addr", cfg.CacheAddr)

	// 4. HSSゲートウェイ接続（構成時のみ）
	var gw hss.Gateway
	if cfg.HSSConfigured {
		hssClient, err := hss.NewClient(cfg)
		if err != nil {
			slog.Error("failed to connect to hss",
				"event_id", "HSS_CONN_ERR",
				"addr", cfg.HSSAddr,
				"error", err,
			)
			os.Exit(1)
		}
		defer hssClient.Close()
		gw = hssClient

		slog.Info("hss connected", "addr", cfg.HSSAddr, "dest_realm", cfg.DestRealm)
	}

	// 5. オーケストレーター
	orc := orchestrator.New(cfg, cache, gw)

	// 6. ハンドラー
	h := handler.New(orc, cfg)

	// 7. サーバー起動
	srv := server.New(cfg, h)
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// 8. シグナル待機 → Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}

// initLogger はロガーを初期化する。
func initLogger(cfg *config.Config) {
	level := slog.LevelInfo
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h).With("app", "hss-frontend")
	slog.SetDefault(logger)
}
