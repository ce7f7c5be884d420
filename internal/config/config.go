// Package config は環境変数から設定を読み込む。
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config はHSSフロントエンドの設定を保持する。
type Config struct {
	// サーバー設定
	ListenAddr      string `envconfig:"LISTEN_ADDR" default:":8888"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskIdentity bool   `envconfig:"LOG_MASK_IDENTITY" default:"true"`
	GinMode         string `envconfig:"GIN_MODE" default:"release"`

	// HSS設定
	HSSConfigured bool `envconfig:"HSS_CONFIGURED" default:"true"`

	// HSS接続先アドレス（host:port形式）
	HSSAddr string `envconfig:"HSS_ADDR" default:"localhost:3868"`

	// Diameter交換1回あたりのタイムアウト
	HSSRequestTimeout time.Duration `envconfig:"HSS_REQUEST_TIMEOUT" default:"200ms"`

	// HSS再登録間隔。キャッシュレコードのTTLはこの2倍で書き込まれ、
	// 残TTLがこの値を下回った再登録はHSSへ通知される。
	HSSReregistrationTime time.Duration `envconfig:"HSS_REREGISTRATION_TIME" default:"30m"`

	// 秘密識別子→公開識別子の対応を機会的にキャッシュする際のTTL。0で無効。
	IMPUCacheTTL time.Duration `envconfig:"IMPU_CACHE_TTL" default:"0"`

	// 認証スキームのワイヤ名
	SchemeDigest  string `envconfig:"SCHEME_DIGEST" default:"SIP Digest"`
	SchemeAKA     string `envconfig:"SCHEME_AKA" default:"Digest-AKAv1-MD5"`
	SchemeUnknown string `envconfig:"SCHEME_UNKNOWN" default:"Unknown"`

	// 認証ベクター要求でキャッシュを先に参照するかどうか
	QueryCacheAV bool `envconfig:"QUERY_CACHE_AV" default:"false"`

	// Diameterルーティング
	DestRealm   string `envconfig:"DEST_REALM" default:""`
	DestHost    string `envconfig:"DEST_HOST" default:""`
	ServerName  string `envconfig:"SERVER_NAME" default:""`
	OriginHost  string `envconfig:"ORIGIN_HOST" default:"hss-frontend.example.com"`
	OriginRealm string `envconfig:"ORIGIN_REALM" default:"example.com"`

	// キャッシュストア設定
	CacheAddr     string `envconfig:"CACHE_ADDR" default:"localhost:6379"`
	CachePassword string `envconfig:"CACHE_PASSWORD" default:""`
	CacheDB       int    `envconfig:"CACHE_DB" default:"0"`
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate は設定値の整合性を検証する。
func (c *Config) Validate() error {
	if c.ServerName == "" {
		return fmt.Errorf("SERVER_NAME must be set")
	}
	if c.HSSConfigured {
		if c.DestRealm == "" {
			return fmt.Errorf("DEST_REALM must be set when HSS_CONFIGURED is true")
		}
		if c.HSSReregistrationTime <= 0 {
			return fmt.Errorf("HSS_REREGISTRATION_TIME must be positive when HSS_CONFIGURED is true")
		}
	}
	return nil
}

// RecordTTL はキャッシュレコードに設定するTTLを返す。
// HSSが存在しない場合は0（無期限）を返す。自ノードがマスターであるため。
func (c *Config) RecordTTL() time.Duration {
	if !c.HSSConfigured {
		return 0
	}
	return 2 * c.HSSReregistrationTime
}
