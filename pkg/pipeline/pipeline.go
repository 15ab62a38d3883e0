// Package pipeline turns blueprints into finished levels.
//
// A [Runner] wraps the generator tree of a blueprint with everything the
// core leaves out: retries, seeds, cancellation, caching, logging and
// rendering. The CLI and the HTTP server both go through it so that a
// blueprint, size and seed produce the same level everywhere.
//
// # Attempts
//
// Generation is a single pass of the root generator over a fresh grid.
// A pass can fail (a room that does not fit, doors that cannot be joined),
// in which case the grid is reset and the tree runs again with the next
// seed. Attempt n (counting from zero) uses Seed+n, so any level can be
// reproduced from the base seed alone.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Generate(ctx, bp, pipeline.Options{
//	    Seed:    7,
//	    Formats: []string{pipeline.FormatASCII},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(string(res.Artifacts[pipeline.FormatASCII]))
package pipeline

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/levelgen/pkg/blueprint"
	"github.com/matzehuels/levelgen/pkg/cache"
	apperrors "github.com/matzehuels/levelgen/pkg/errors"
	"github.com/matzehuels/levelgen/pkg/grid"
	"github.com/matzehuels/levelgen/pkg/level"
)

const (
	// DefaultWidth and DefaultHeight size levels whose blueprint and
	// options leave the size open.
	DefaultWidth  = 80
	DefaultHeight = 40

	// DefaultMaxAttempts bounds the retries of a failing tree.
	DefaultMaxAttempts = 50
)

// Output formats.
const (
	FormatASCII = "ascii"
	FormatJSON  = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatASCII, FormatJSON}

// Options configures a generation run.
// This struct doubles as the JSON body of API requests.
type Options struct {
	// Width and Height default to the blueprint's size, then to
	// DefaultWidth and DefaultHeight.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	// Seed is the seed of the first attempt. Zero draws a random seed,
	// reported back in Result.Seed.
	Seed        uint64 `json:"seed,omitempty"`
	MaxAttempts int    `json:"max_attempts,omitempty"`
	// Refresh skips the cache lookup. The new level still replaces the
	// cached one.
	Refresh bool `json:"refresh,omitempty"`

	Formats []string `json:"formats,omitempty"`
	// Palette entries override the blueprint's.
	Palette level.Palette `json:"palette,omitempty"`
	// Color enables ANSI colours in ascii output.
	Color bool `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// SetDefaults fills unset fields, taking the size from bp when it has
// one. bp may be nil.
func (o *Options) SetDefaults(bp *blueprint.Blueprint) {
	if bp != nil && o.Width == 0 {
		o.Width = bp.Width
	}
	if bp != nil && o.Height == 0 {
		o.Height = bp.Height
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	for o.Seed == 0 {
		o.Seed = rand.Uint64()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options after SetDefaults.
func (o *Options) Validate() error {
	if err := apperrors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.MaxAttempts < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "max_attempts must be positive, got %d", o.MaxAttempts)
	}
	for _, f := range o.Formats {
		if err := apperrors.ValidateFormat(f, Formats...); err != nil {
			return err
		}
	}
	for tok, g := range o.Palette {
		if err := g.Validate(); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "palette entry %q", tok)
		}
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates. Calling it again
// is a no-op.
func (o *Options) ValidateAndSetDefaults(bp *blueprint.Blueprint) error {
	if o.validated {
		return nil
	}
	o.SetDefaults(bp)
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// LevelKeyOpts returns the options that identify a cached level.
func (o *Options) LevelKeyOpts() cache.LevelKeyOpts {
	return cache.LevelKeyOpts{
		Width:       o.Width,
		Height:      o.Height,
		Seed:        o.Seed,
		MaxAttempts: o.MaxAttempts,
	}
}

// Result is the outcome of a successful run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID     uuid.UUID
	Blueprint string
	Grid      *grid.Grid
	Palette   level.Palette

	// Seed is the base seed; AttemptSeed produced the level.
	Seed        uint64
	AttemptSeed uint64
	// Attempts is the number of passes run. Zero on a cache hit.
	Attempts int
	Duration time.Duration
	CacheHit bool

	// Artifacts holds rendered output keyed by format.
	Artifacts map[string][]byte
}

// Level returns the serialisable form of the result.
func (r *Result) Level() *level.Level {
	l := level.FromGrid(r.Grid)
	l.Blueprint = r.Blueprint
	l.Seed = r.AttemptSeed
	l.Palette = r.Palette
	return l
}
