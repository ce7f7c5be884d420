package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SERVER_NAME", "sip:scscf.example.com:5054")
	t.Setenv("DEST_REALM", "example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":8888" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":8888")
	}
	if !cfg.HSSConfigured {
		t.Error("HSSConfigured = false, want true")
	}
	if cfg.HSSRequestTimeout != 200*time.Millisecond {
		t.Errorf("HSSRequestTimeout = %v, want 200ms", cfg.HSSRequestTimeout)
	}
	if cfg.HSSReregistrationTime != 30*time.Minute {
		t.Errorf("HSSReregistrationTime = %v, want 30m", cfg.HSSReregistrationTime)
	}
	if cfg.IMPUCacheTTL != 0 {
		t.Errorf("IMPUCacheTTL = %v, want 0", cfg.IMPUCacheTTL)
	}
	if cfg.SchemeDigest != "SIP Digest" {
		t.Errorf("SchemeDigest = %q, want %q", cfg.SchemeDigest, "SIP Digest")
	}
	if cfg.QueryCacheAV {
		t.Error("QueryCacheAV = true, want false")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HSS_CONFIGURED", "false")
	t.Setenv("QUERY_CACHE_AV", "true")
	t.Setenv("IMPU_CACHE_TTL", "1h")
	t.Setenv("HSS_REREGISTRATION_TIME", "10m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HSSConfigured {
		t.Error("HSSConfigured = true, want false")
	}
	if !cfg.QueryCacheAV {
		t.Error("QueryCacheAV = false, want true")
	}
	if cfg.IMPUCacheTTL != time.Hour {
		t.Errorf("IMPUCacheTTL = %v, want 1h", cfg.IMPUCacheTTL)
	}
}

func TestValidateMissingServerName(t *testing.T) {
	cfg := &Config{HSSConfigured: false}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing SERVER_NAME, got nil")
	}
}

func TestValidateMissingDestRealm(t *testing.T) {
	cfg := &Config{
		HSSConfigured:         true,
		ServerName:            "sip:scscf.example.com:5054",
		HSSReregistrationTime: time.Minute,
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing DEST_REALM, got nil")
	}
}

func TestRecordTTL(t *testing.T) {
	cfg := &Config{HSSConfigured: true, HSSReregistrationTime: 30 * time.Minute}
	if got := cfg.RecordTTL(); got != time.Hour {
		t.Errorf("RecordTTL = %v, want 1h", got)
	}

	cfg.HSSConfigured = false
	if got := cfg.RecordTTL(); got != 0 {
		t.Errorf("RecordTTL = %v, want 0 without HSS", got)
	}
}
