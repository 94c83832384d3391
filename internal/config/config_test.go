package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Engine.Ayanamsa != "lahiri" {
		t.Errorf("expected Ayanamsa=lahiri, got %s", cfg.Engine.Ayanamsa)
	}
	if cfg.Engine.NodeModel != "mean" {
		t.Errorf("expected NodeModel=mean, got %s", cfg.Engine.NodeModel)
	}
	if len(cfg.Engine.Factors) != 0 {
		t.Errorf("expected empty Factors, got %v", cfg.Engine.Factors)
	}
	if !cfg.NavamsaYogaRerun() {
		t.Error("expected navamsa yoga re-run by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("CLICKHOUSE_DSN", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Engine.Ayanamsa != "lahiri" {
		t.Errorf("expected defaults for a missing file, got %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("CLICKHOUSE_DSN", "")
	t.Setenv("REDIS_URL", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `engine:
  ayanamsa: lahiri
  factors: [9, 10]
  navamsa_yogas: false
cache:
  redis_url: redis://localhost:6379/0
  ttl: 1h
storage:
  postgres_dsn: postgres://localhost:5432/kundali
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Engine.Factors) != 2 || cfg.Engine.Factors[0] != 9 || cfg.Engine.Factors[1] != 10 {
		t.Errorf("expected Factors=[9 10], got %v", cfg.Engine.Factors)
	}
	if cfg.NavamsaYogaRerun() {
		t.Error("expected navamsa yoga re-run disabled")
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("unexpected RedisURL: %s", cfg.Cache.RedisURL)
	}
	if got := cfg.CacheTTL(); got != time.Hour {
		t.Errorf("expected TTL 1h, got %v", got)
	}
	if cfg.Storage.PostgresDSN != "postgres://localhost:5432/kundali" {
		t.Errorf("unexpected PostgresDSN: %s", cfg.Storage.PostgresDSN)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://env-host:5432/kundali")
	t.Setenv("CLICKHOUSE_DSN", "clickhouse://env-host:9000/kundali")
	t.Setenv("REDIS_URL", "redis://env-host:6379/1")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.PostgresDSN != "postgres://env-host:5432/kundali" {
		t.Errorf("expected env override for PostgresDSN, got %s", cfg.Storage.PostgresDSN)
	}
	if cfg.Storage.ClickhouseDSN != "clickhouse://env-host:9000/kundali" {
		t.Errorf("expected env override for ClickhouseDSN, got %s", cfg.Storage.ClickhouseDSN)
	}
	if cfg.Cache.RedisURL != "redis://env-host:6379/1" {
		t.Errorf("expected env override for RedisURL, got %s", cfg.Cache.RedisURL)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.NodeModel = "true"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unsupported node model")
	}

	cfg = DefaultConfig()
	cfg.Engine.Factors = []int{9, 1}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for factor below 2")
	}

	cfg = DefaultConfig()
	cfg.Cache.TTL = "soon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unparseable ttl")
	}
}

func TestCacheTTL_Fallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.TTL = "not-a-duration"
	if got := cfg.CacheTTL(); got != 24*time.Hour {
		t.Errorf("expected 24h fallback, got %v", got)
	}
}
