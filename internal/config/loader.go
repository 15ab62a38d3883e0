package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LEVELGEN_"

// fileNames are searched for in the working directory.
var fileNames = []string{"levelgen.yaml", "levelgen.yml"}

// flagKeys maps flags whose names differ from their config keys.
var flagKeys = map[string]string{
	"redis": "redis.addr",
	"addr":  "server.addr",
}

func defaults() map[string]any {
	return map[string]any{
		"blueprints":            ".",
		"color":                 true,
		"redis.prefix":          DefaultRedisPrefix,
		"server.addr":           DefaultServerAddr,
		"server.read_timeout":   DefaultReadTimeout,
		"server.write_timeout":  DefaultWriteTimeout,
		"server.max_body_bytes": DefaultMaxBodyBytes,
	}
}

// findFile returns the config file to read: the explicit path, or the
// first of fileNames present in dir.
func findFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range fileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load merges defaults, the config file, the environment and flags.
// cfgFile may be empty to search the working directory; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	return load(cfgFile, ".", flags)
}

func load(cfgFile, dir string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path := findFile(cfgFile, dir)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	// LEVELGEN_MAX_ATTEMPTS -> max_attempts, LEVELGEN_REDIS__ADDR -> redis.addr
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			if f.Name == "no-color" {
				return "color", !posflag.FlagVal(flags, f).(bool)
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
