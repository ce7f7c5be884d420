// Package store は加入者キャッシュへの型付き操作を提供する。
package store

import (
	"context"
	"errors"
	"net"

	"github.com/oyaguma3/ims-hss-frontend-poc/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewClient は新しいキャッシュストアクライアントを生成する。
// 接続確認のためPINGを実行し、失敗した場合はエラーを返す。
func NewClient(cfg *config.Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.CacheConnectTimeout)
	defer cancel()

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.CacheAddr,
		Password:     cfg.CachePassword,
		DB:           cfg.CacheDB,
		DialTimeout:  config.CacheConnectTimeout,
		ReadTimeout:  config.CacheReadTimeout,
		WriteTimeout: config.CacheWriteTimeout,
		PoolSize:     config.CachePoolSize,
		MinIdleConns: config.CacheMinIdleConns,
	})

	// 接続確認
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// isConnectionError は接続関連のエラーかどうかを判定する。
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	return errors.Is(err, context.Canceled)
}
