package server

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/levelgen/pkg/blueprint"
	apperrors "github.com/matzehuels/levelgen/pkg/errors"
)

// reloadDelay debounces bursts of file events.
var reloadDelay = 100 * time.Millisecond

// Registry holds the blueprints of a directory, keyed by their path
// relative to it with forward slashes ("dungeons/crypt.toml").
type Registry struct {
	dir    string
	logger *log.Logger

	// reloadMu serializes whole reloads so an older scan never
	// replaces a newer one.
	reloadMu sync.Mutex

	mu         sync.RWMutex
	blueprints map[string]*blueprint.Blueprint
	broken     map[string]error
}

// NewRegistry loads every blueprint under dir. Files that fail to parse
// are recorded and reported by Get rather than failing the load.
func NewRegistry(dir string, logger *log.Logger) (*Registry, error) {
	r := &Registry{dir: dir, logger: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload rescans the directory.
func (r *Registry) Reload() error {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	bps := map[string]*blueprint.Blueprint{}
	broken := map[string]error{}
	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !blueprint.IsBlueprintFile(path) {
			return nil
		}
		rel, err := filepath.Rel(r.dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		bp, err := blueprint.Load(path)
		if err != nil {
			r.logger.Warn("skipping blueprint", "name", name, "err", err)
			broken[name] = err
			return nil
		}
		bps[name] = bp
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "scan %s", r.dir)
	}

	r.mu.Lock()
	r.blueprints, r.broken = bps, broken
	r.mu.Unlock()
	r.logger.Debug("loaded blueprints", "dir", r.dir, "count", len(bps), "broken", len(broken))
	return nil
}

// Names returns the loaded blueprint names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.blueprints))
	for name := range r.blueprints {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the named blueprint. Names are validated as untrusted
// relative paths.
func (r *Registry) Get(name string) (*blueprint.Blueprint, error) {
	if err := apperrors.ValidatePath(name); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if bp, ok := r.blueprints[name]; ok {
		return bp, nil
	}
	if err, ok := r.broken[name]; ok {
		return nil, err
	}
	return nil, apperrors.New(apperrors.ErrCodeFileNotFound, "no blueprint %q", name)
}

// Watch reloads the registry whenever a blueprint file under the
// directory changes, until ctx is done.
func (r *Registry) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	err = filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if !blueprint.IsBlueprintFile(event.Name) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDelay, func() {
				r.logger.Debug("blueprint changed", "file", event.Name)
				if err := r.Reload(); err != nil {
					r.logger.Error("reload blueprints", "err", err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("watcher error", "err", err)
		}
	}
}
