package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/levelgen/internal/config"
	"github.com/matzehuels/levelgen/pkg/buildinfo"
	"github.com/matzehuels/levelgen/pkg/cache"
	"github.com/matzehuels/levelgen/pkg/pipeline"
)

// appName names the cache directory and the binary.
const appName = "levelgen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfgFile string
	cfg     *config.Config
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with every subcommand registered.
// Configuration is loaded before any subcommand runs, so flags set on the
// subcommand override the config file and environment.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "levelgen builds tile levels from generator blueprints",
		Long: `levelgen composes small generators (margins, splits, noise maps, flood
fills, connectors) into blueprints and runs them against a seeded RNG to
produce tile grids. Failed attempts are retried with the next seed.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			c.cfg = cfg
			if cfg.File != "" {
				c.Logger.Debug("loaded config", "file", cfg.File)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default ./levelgen.yaml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// settings returns the loaded configuration, or the defaults when a command
// runs without the root's pre-run hook (as in tests).
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		cfg, err := config.Load(c.cfgFile, nil)
		if err != nil {
			cfg = &config.Config{Blueprints: "."}
		}
		c.cfg = cfg
	}
	return c.cfg
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	lc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(lc, nil, c.Logger), nil
}

// newCache picks Redis when an address is configured, the file cache
// otherwise. A missing home directory disables caching.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.settings()
	if cfg.NoCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis.CacheConfig())
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("level cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if dir := c.settings().CacheDir; dir != "" {
		return dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/levelgen/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// options builds pipeline options from the merged configuration.
func (c *CLI) options() pipeline.Options {
	cfg := c.settings()
	return pipeline.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Seed:        cfg.Seed,
		MaxAttempts: cfg.MaxAttempts,
		Color:       cfg.Color,
		Logger:      c.Logger,
	}
}
