package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/levelgen/pkg/blueprint"
	"github.com/matzehuels/levelgen/pkg/cache"
	apperrors "github.com/matzehuels/levelgen/pkg/errors"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/layout"
	"github.com/matzehuels/levelgen/pkg/level"
	"github.com/matzehuels/levelgen/pkg/observability"
	"github.com/matzehuels/levelgen/pkg/rng"
)

// Runner generates levels with caching.
//
// The Runner holds no per-run state, so one Runner can serve concurrent
// requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses DefaultKeyer and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Generate runs bp until a pass succeeds or opts.MaxAttempts passes have
// failed, then renders the requested formats.
//
// Errors carry a code from pkg/errors: INVALID_INPUT for bad options,
// INVALID_GENERATOR when the tree holds a configuration error, and
// GENERATION_FAILED when every attempt failed. A cancelled ctx returns
// ctx.Err().
func (r *Runner) Generate(ctx context.Context, bp *blueprint.Blueprint, opts Options) (*Result, error) {
	if bp == nil || bp.Root == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidBlueprint, "blueprint has no generator")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(bp); err != nil {
		return nil, err
	}
	logger := opts.Logger.With("blueprint", bp.Name, "seed", opts.Seed)

	start := time.Now()
	hooks := observability.Generation()
	hooks.OnGenerateStart(ctx, bp.Name, opts.Width, opts.Height, opts.Seed)

	res := &Result{
		RunID:     uuid.New(),
		Blueprint: bp.Name,
		Palette:   bp.Palette.Merge(opts.Palette),
		Seed:      opts.Seed,
	}

	key := r.levelKey(bp, opts)
	if key != "" && !opts.Refresh {
		if l, ok := r.lookup(ctx, key); ok {
			g, err := l.Grid()
			if err == nil {
				res.Grid = g
				res.AttemptSeed = l.Seed
				res.CacheHit = true
				logger.Debug("level cache hit", "key", key)
			}
		}
	}

	if !res.CacheHit {
		g, attempts, seed, err := r.run(ctx, bp.Root, opts, logger)
		res.Attempts = attempts
		if err != nil {
			hooks.OnGenerateComplete(ctx, attempts, time.Since(start), err)
			logger.Debug("generation failed", "attempts", attempts, "err", err)
			return nil, err
		}
		res.Grid = g
		res.AttemptSeed = seed
		r.store(ctx, key, res)
	}

	res.Duration = time.Since(start)
	hooks.OnGenerateComplete(ctx, res.Attempts, res.Duration, nil)

	if len(opts.Formats) > 0 {
		artifacts, err := Render(res, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		res.Artifacts = artifacts
	}

	logger.Info("generated level",
		"size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"attempts", res.Attempts,
		"cached", res.CacheHit,
		"duration", res.Duration)
	return res, nil
}

// run is the attempt loop. It returns the number of attempts made and the
// seed of the successful one.
func (r *Runner) run(ctx context.Context, root layout.Generator, opts Options, logger *log.Logger) (*grid.Grid, int, uint64, error) {
	hooks := observability.Generation()
	g := grid.NewSized(opts.Width, opts.Height)
	for attempt := range opts.MaxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, attempt, 0, err
		}
		seed := opts.Seed + uint64(attempt)
		g.Reset()

		start := time.Now()
		ok, err := makeLevel(root, g, rng.New(seed))
		d := time.Since(start)
		hooks.OnAttempt(ctx, attempt+1, seed, ok, d)
		if err != nil {
			return nil, attempt + 1, seed, err
		}
		if ok {
			logger.Debug("attempt succeeded", "attempt", attempt+1, "attempt_seed", seed, "duration", d)
			return g, attempt + 1, seed, nil
		}
		logger.Debug("attempt failed", "attempt", attempt+1, "attempt_seed", seed, "duration", d)
	}
	return nil, opts.MaxAttempts, 0, apperrors.New(apperrors.ErrCodeGenerationFailed,
		"no valid level after %d attempts", opts.MaxAttempts)
}

// makeLevel runs one pass. Configuration errors that slipped past
// validation surface as INVALID_GENERATOR; any other panic is a bug and
// propagates.
func makeLevel(root layout.Generator, g *grid.Grid, r *rng.Rand) (ok bool, err error) {
	defer func() {
		if v := recover(); v != nil {
			ce, isConfig := v.(*layout.ConfigError)
			if !isConfig {
				panic(v)
			}
			err = apperrors.Wrap(apperrors.ErrCodeInvalidGenerator, ce, "generator")
		}
	}()
	return root.Make(g.Canvas(), r), nil
}

// levelKey is empty for blueprints built in code, which have no source to
// hash.
func (r *Runner) levelKey(bp *blueprint.Blueprint, opts Options) string {
	if len(bp.Source) == 0 {
		return ""
	}
	return r.Keyer.LevelKey(cache.Hash(bp.Source), opts.LevelKeyOpts())
}

func (r *Runner) lookup(ctx context.Context, key string) (*level.Level, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, "level")
		return nil, false
	}
	l, err := level.Read(bytes.NewReader(data))
	if err != nil {
		hooks.OnCacheMiss(ctx, "level")
		return nil, false
	}
	hooks.OnCacheHit(ctx, "level")
	return l, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	if key == "" {
		return
	}
	l := level.FromGrid(res.Grid)
	l.Blueprint = res.Blueprint
	l.Seed = res.AttemptSeed
	var buf bytes.Buffer
	if err := level.Write(l, &buf); err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.LevelTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "level", buf.Len())
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
