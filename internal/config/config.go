// Package config loads the harness configuration: engine policies and
// collaborator endpoints. The pure computation packages never read it;
// the mains translate it into engine options and store constructors.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all kundali harness configuration.
type Config struct {
	// Engine policies
	Engine EngineConfig `yaml:"engine"`

	// Result cache
	Cache CacheConfig `yaml:"cache"`

	// Persistence endpoints
	Storage StorageConfig `yaml:"storage"`
}

// EngineConfig selects computation policies.
type EngineConfig struct {
	Ayanamsa     string `yaml:"ayanamsa"`      // ayanamsa model; unknown names resolve to lahiri
	NodeModel    string `yaml:"node_model"`    // mean is the only supported model
	Factors      []int  `yaml:"factors"`       // divisional factors; empty selects the engine default set
	NavamsaYogas *bool  `yaml:"navamsa_yogas"` // re-run yoga detection on the navamsa; default true
}

// CacheConfig configures the chart result cache.
type CacheConfig struct {
	RedisURL string `yaml:"redis_url"` // empty selects the in-process cache
	TTL      string `yaml:"ttl"`       // redis entry lifetime, e.g. "24h"
}

// StorageConfig configures the persistence backends.
type StorageConfig struct {
	PostgresDSN   string `yaml:"postgres_dsn"`
	ClickhouseDSN string `yaml:"clickhouse_dsn"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Ayanamsa:  "lahiri",
			NodeModel: "mean",
		},
		Cache: CacheConfig{
			TTL: "24h",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment variables override the storage endpoints either
// way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides for the
// collaborator endpoints.
func (c *Config) applyEnvOverrides() {
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		c.Storage.PostgresDSN = dsn
	}
	if dsn := os.Getenv("CLICKHOUSE_DSN"); dsn != "" {
		c.Storage.ClickhouseDSN = dsn
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		c.Cache.RedisURL = url
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Engine.NodeModel != "" && c.Engine.NodeModel != "mean" {
		return fmt.Errorf("unsupported node model %q: the analytic ephemeris computes mean nodes", c.Engine.NodeModel)
	}
	for _, f := range c.Engine.Factors {
		if f < 2 {
			return fmt.Errorf("invalid division factor %d", f)
		}
	}
	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return fmt.Errorf("invalid cache ttl %q: %w", c.Cache.TTL, err)
		}
	}
	return nil
}

// CacheTTL returns the redis entry lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// NavamsaYogaRerun reports whether yoga detection re-runs on the
// navamsa. Unset means yes.
func (c *Config) NavamsaYogaRerun() bool {
	if c.Engine.NavamsaYogas == nil {
		return true
	}
	return *c.Engine.NavamsaYogas
}
