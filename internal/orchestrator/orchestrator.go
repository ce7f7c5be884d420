package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oyaguma3/ims-hss-frontend-poc/internal/config"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/hss"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/store"
	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/logging"
)

// Orchestrator は要求ごとの状態機械を駆動する。
// バックエンドクライアントはプロセス全体で共有され、要求ごとの状態は
// 各フローのタスク値が排他的に所有する。
type Orchestrator struct {
	cfg   *config.Config
	cache store.Gateway
	hss   hss.Gateway
	ids   *logging.IdentityFields
	now   func() time.Time

	asyncWG sync.WaitGroup
}

// New は新しいOrchestratorを生成する。
// HSSが構成されていない場合、gwはnilでよい。
func New(cfg *config.Config, cache store.Gateway, gw hss.Gateway) *Orchestrator {
	return &Orchestrator{
		cfg:   cfg,
		cache: cache,
		hss:   gw,
		ids:   logging.NewIdentityFields(cfg.LogMaskIdentity),
		now:   time.Now,
	}
}

// timestamp はキャッシュ書き込みに付与するマイクロ秒タイムスタンプを返す。
func (o *Orchestrator) timestamp() int64 {
	return o.now().UnixMicro()
}

// async は応答をブロックしないキャッシュ書き込みを実行する。
// 失敗はログに記録して破棄し、HTTP応答には影響させない。
func (o *Orchestrator) async(event string, fn func(ctx context.Context) error) {
	o.asyncWG.Add(1)
	go func() {
		defer o.asyncWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), config.AsyncWriteTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			slog.Warn("fire-and-forget cache write failed",
				"event_id", event,
				"error", err.Error(),
			)
		}
	}()
}
