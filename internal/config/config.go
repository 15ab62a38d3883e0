// Package config loads levelgen's CLI and server configuration.
//
// Values come from four layers, later ones winning:
//
//  1. built-in defaults
//  2. a YAML file (levelgen.yaml in the working directory, or --config)
//  3. LEVELGEN_* environment variables
//  4. command-line flags that were explicitly set
//
// Nested keys use a double underscore in the environment, so
// LEVELGEN_REDIS__ADDR sets redis.addr.
package config

import (
	"time"

	"github.com/matzehuels/levelgen/pkg/cache"
	apperrors "github.com/matzehuels/levelgen/pkg/errors"
)

// Defaults.
const (
	DefaultServerAddr   = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 60 * time.Second
	DefaultMaxBodyBytes = 1 << 20
	DefaultRedisPrefix  = "levelgen:"
)

// Config is the merged configuration.
type Config struct {
	// Blueprints is the directory searched by the interactive picker and
	// served by the API.
	Blueprints string `koanf:"blueprints"`

	Width       int    `koanf:"width"`
	Height      int    `koanf:"height"`
	Seed        uint64 `koanf:"seed"`
	MaxAttempts int    `koanf:"max_attempts"`
	Color       bool   `koanf:"color"`

	NoCache  bool   `koanf:"no_cache"`
	CacheDir string `koanf:"cache_dir"`

	Redis  RedisConfig  `koanf:"redis"`
	Server ServerConfig `koanf:"server"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// RedisConfig selects the shared level cache. An empty Addr keeps the
// file cache.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`
}

// ServerConfig configures `levelgen serve`.
type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	MaxBodyBytes int64         `koanf:"max_body_bytes"`
}

// CacheConfig converts the redis section for pkg/cache.
func (r RedisConfig) CacheConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
		Prefix:   r.Prefix,
	}
}

// Validate checks values that the loaders cannot.
func (c *Config) Validate() error {
	// Zero leaves the size to the blueprint.
	for _, d := range []int{c.Width, c.Height} {
		if d < 0 || d > apperrors.MaxDimension {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "size %dx%d outside 0..%d", c.Width, c.Height, apperrors.MaxDimension)
		}
	}
	if c.MaxAttempts < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "max_attempts cannot be negative, got %d", c.MaxAttempts)
	}
	if c.Redis.DB < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "redis.db cannot be negative, got %d", c.Redis.DB)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "server.max_body_bytes must be positive")
	}
	return nil
}
