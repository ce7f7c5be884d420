package config

import "time"

// サーバー運用定数
const (
	// ShutdownTimeout はGraceful Shutdownの待機時間
	ShutdownTimeout = 10 * time.Second
)

// キャッシュストア接続定数
const (
	CacheConnectTimeout = 3 * time.Second
	CacheReadTimeout    = 2 * time.Second
	CacheWriteTimeout   = 2 * time.Second
	CachePoolSize       = 10
	CacheMinIdleConns   = 2

	// AsyncWriteTimeout は応答をブロックしない書き込みの打ち切り時間
	AsyncWriteTimeout = 5 * time.Second
)

// Diameterクライアント定数
const (
	DiameterProductName      = "ims-hss-frontend"
	DiameterVendorID         = 10415
	DiameterWatchdogInterval = 30 * time.Second

	// Circuit Breaker設定
	CBName             = "hss"
	CBMaxRequests      = 1
	CBInterval         = 60 * time.Second
	CBTimeout          = 15 * time.Second
	CBFailureThreshold = 5
)
