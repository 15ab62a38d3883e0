// Package cli implements the levelgen command-line interface.
//
// # Commands
//
//   - generate: run a blueprint and print or export the level
//   - tree: draw a blueprint's generator tree as DOT or SVG
//   - validate: check blueprint files without generating
//   - serve: expose generation over HTTP
//   - cache: inspect and clear the level cache
//
// Configuration is merged from defaults, levelgen.yaml, LEVELGEN_*
// environment variables and flags, in that order (see internal/config).
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes one line per failed attempt. Loggers travel in the command's
// context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with short timestamps ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Validated 3 blueprints (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
