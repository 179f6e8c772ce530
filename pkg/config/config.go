// Package config loads the rnaimport configuration file.
//
// The file is TOML and every key is optional:
//
//	[cache]
//	backend = "redis"      # file, redis or none
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//	redis_db = 0
//
//	[resolver]
//	tolerance = 12.0
//
//	[import]
//	duplicate_policy = "keep"   # keep or replace
//
//	[server]
//	addr = ":8080"
//
// A missing file yields [Default]. Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/rnaimport/pkg/pipeline"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultAddr is the HTTP listen address.
const DefaultAddr = ":8080"

// Config is the parsed configuration file.
type Config struct {
	Cache    CacheConfig    `toml:"cache"`
	Resolver ResolverConfig `toml:"resolver"`
	Import   ImportConfig   `toml:"import"`
	Server   ServerConfig   `toml:"server"`
}

// CacheConfig selects and configures the import cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

// ResolverConfig configures the reference geometric resolver.
type ResolverConfig struct {
	Tolerance float64 `toml:"tolerance"`
}

// ImportConfig holds import defaults.
type ImportConfig struct {
	DuplicatePolicy string `toml:"duplicate_policy"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration decoded from a TOML string such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache:    CacheConfig{Backend: BackendFile, TTL: Duration{7 * 24 * time.Hour}},
		Resolver: ResolverConfig{Tolerance: pipeline.DefaultTolerance},
		Import:   ImportConfig{DuplicatePolicy: pipeline.DefaultPolicy},
		Server:   ServerConfig{Addr: DefaultAddr},
	}
}

// Path returns the default config file location,
// $XDG_CONFIG_HOME/rnaimport/config.toml or ~/.config/rnaimport/config.toml.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "rnaimport", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rnaimport", "config.toml"), nil
}

// Load reads path over [Default]. An empty path means [Path]; a missing
// default file is not an error, a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML data over [Default] and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend: unknown backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if t := c.Resolver.Tolerance; t <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("resolver.tolerance must be a positive finite number, got %g", c.Resolver.Tolerance)
	}
	if err := pipeline.ValidatePolicy(c.Import.DuplicatePolicy); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}

// PipelineOptions returns import options seeded from the configuration.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		DuplicatePolicy: c.Import.DuplicatePolicy,
		Tolerance:       c.Resolver.Tolerance,
	}
}
