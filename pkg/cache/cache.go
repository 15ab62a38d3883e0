// Package cache stores finished levels so that a repeated request for the
// same blueprint, size and seed skips generation.
//
// Generation is deterministic: a blueprint, its options and a seed always
// produce the same grid. The cache key covers all three, so entries never go
// stale and TTLs only bound storage.
//
// Backends:
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing
package cache

import (
	"context"
	"fmt"
	"time"
)

// LevelTTL is how long a generated level stays cached.
const LevelTTL = 7 * 24 * time.Hour

// Cache is a byte store keyed by strings.
type Cache interface {
	// Get returns the stored data and true, or false on a miss. Expired
	// and corrupt entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// BlueprintKey identifies a parsed blueprint by the hash of its source.
	BlueprintKey(blueprintHash string) string
	// LevelKey identifies a level generated from a blueprint with opts.
	LevelKey(blueprintHash string, opts LevelKeyOpts) string
}

// LevelKeyOpts holds the generation options that change the output.
type LevelKeyOpts struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Seed        uint64 `json:"seed"`
	MaxAttempts int    `json:"max_attempts"`
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) BlueprintKey(blueprintHash string) string {
	return fmt.Sprintf("blueprint:%s", blueprintHash)
}

func (DefaultKeyer) LevelKey(blueprintHash string, opts LevelKeyOpts) string {
	return hashKey("level", blueprintHash, opts)
}
