// Package observability provides hooks for metrics and tracing.
//
// Hooks keep instrumentation out of the libraries: the pipeline, the cache
// layer and the HTTP server emit events through the registered hooks, and
// main decides what backend, if any, receives them. The defaults do
// nothing.
//
// # Usage
//
//	func main() {
//	    observability.SetGenerationHooks(&promHooks{})
//	    // ... run application
//	}
//
// Libraries emit events:
//
//	observability.Generation().OnAttempt(ctx, attempt, seed, ok, elapsed)
package observability

import (
	"context"
	"sync"
	"time"
)

// GenerationHooks receives events from level generation.
type GenerationHooks interface {
	OnGenerateStart(ctx context.Context, blueprint string, width, height int, seed uint64)
	// OnAttempt reports one run of the generator tree.
	OnAttempt(ctx context.Context, attempt int, seed uint64, ok bool, duration time.Duration)
	OnGenerateComplete(ctx context.Context, attempts int, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives events from the HTTP API.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopGenerationHooks ignores every event.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnGenerateStart(context.Context, string, int, int, uint64)     {}
func (NoopGenerationHooks) OnAttempt(context.Context, int, uint64, bool, time.Duration)   {}
func (NoopGenerationHooks) OnGenerateComplete(context.Context, int, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks ignores every event.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	generationHooks GenerationHooks = NoopGenerationHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	serverHooks     ServerHooks     = NoopServerHooks{}
	hooksMu         sync.RWMutex
)

// SetGenerationHooks registers generation hooks. Nil is ignored.
func SetGenerationHooks(h GenerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generationHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServerHooks registers HTTP server hooks. Nil is ignored.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Generation returns the registered generation hooks.
func Generation() GenerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Server returns the registered HTTP server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generationHooks = NoopGenerationHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}
