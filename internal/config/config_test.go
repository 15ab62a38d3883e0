package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("width", 0, "")
	fs.Int("max-attempts", 0, "")
	fs.Uint64("seed", 0, "")
	fs.Bool("no-color", false, "")
	fs.String("redis", "", "")
	fs.String("addr", "", "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load("", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want none", cfg.File)
	}
	if !cfg.Color || cfg.Blueprints != "." {
		t.Errorf("color %v blueprints %q", cfg.Color, cfg.Blueprints)
	}
	if cfg.Server.Addr != DefaultServerAddr || cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes || cfg.Redis.Prefix != DefaultRedisPrefix {
		t.Errorf("max body %d prefix %q", cfg.Server.MaxBodyBytes, cfg.Redis.Prefix)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "levelgen.yaml", `
width: 60
max_attempts: 7
color: false
redis:
  addr: localhost:6379
  db: 2
server:
  read_timeout: 3s
`)
	cfg, err := load("", dir, nil)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.File != path {
		t.Errorf("File = %q, want %q", cfg.File, path)
	}
	if cfg.Width != 60 || cfg.MaxAttempts != 7 || cfg.Color {
		t.Errorf("width %d attempts %d color %v", cfg.Width, cfg.MaxAttempts, cfg.Color)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 || cfg.Redis.Prefix != DefaultRedisPrefix {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Server.ReadTimeout != 3*time.Second || cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "levelgen.yaml", "width: 10\n")
	other := writeFile(t, dir, "other.yaml", "width: 20\n")

	cfg, err := load(other, dir, nil)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.Width != 20 {
		t.Errorf("Width = %d, want the explicit file's 20", cfg.Width)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := load(filepath.Join(t.TempDir(), "nope.yaml"), ".", nil); err == nil {
		t.Error("load() should fail for a missing explicit file")
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "levelgen.yml", "width: 60\nmax_attempts: 7\nseed: 3\n")
	t.Setenv("LEVELGEN_MAX_ATTEMPTS", "9")
	t.Setenv("LEVELGEN_SEED", "4")
	t.Setenv("LEVELGEN_REDIS__ADDR", "cache:6379")
	t.Setenv("LEVELGEN_SERVER__WRITE_TIMEOUT", "2m")

	fs := testFlags()
	if err := fs.Parse([]string{"--seed", "5", "--no-color", "--addr", ":9090"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := load("", dir, fs)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	tests := []struct {
		name      string
		got, want any
	}{
		{"file", cfg.Width, 60},
		{"env over file", cfg.MaxAttempts, 9},
		{"flag over env", cfg.Seed, uint64(5)},
		{"nested env", cfg.Redis.Addr, "cache:6379"},
		{"env duration", cfg.Server.WriteTimeout, 2 * time.Minute},
		{"renamed flag", cfg.Server.Addr, ":9090"},
		{"negated flag", cfg.Color, false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadUnchangedFlagsKeepLowerLayers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "levelgen.yaml", "width: 60\n")
	fs := testFlags()
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	cfg, err := load("", dir, fs)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.Width != 60 || !cfg.Color || cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("unset flags overrode config: width %d color %v addr %q", cfg.Width, cfg.Color, cfg.Server.Addr)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{Server: ServerConfig{MaxBodyBytes: DefaultMaxBodyBytes}}
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"zero size", func(*Config) {}, false},
		{"width only", func(c *Config) { c.Width = 30 }, false},
		{"negative height", func(c *Config) { c.Height = -1 }, true},
		{"huge width", func(c *Config) { c.Width = 1 << 20 }, true},
		{"negative attempts", func(c *Config) { c.MaxAttempts = -2 }, true},
		{"negative db", func(c *Config) { c.Redis.DB = -1 }, true},
		{"no body", func(c *Config) { c.Server.MaxBodyBytes = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "levelgen.yaml", "max_attempts: -1\n")
	if _, err := load("", dir, nil); err == nil {
		t.Error("load() should validate the merged config")
	}
}
