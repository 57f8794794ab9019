package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperr "github.com/matzehuels/statcard/pkg/errors"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statcard.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
[server]
addr = ":9090"
cors_origin = "https://example.com"

[cache]
backend = "file"
dir = "/tmp/statcard"

[ratelimit]
requests = 120
window = "2m"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.CORSOrigin != "https://example.com" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Cache.Backend != "file" || cfg.Cache.Dir != "/tmp/statcard" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.RateLimit.Requests != 120 || cfg.RateLimit.Window != 2*time.Minute {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Error("unset fields should keep their defaults")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "[cache]\nbakend = \"file\"\n")
	if _, err := Load(path); !apperr.Is(err, apperr.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing explicit file should fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("STATCARD_CACHE_BACKEND", "redis")
	t.Setenv("STATCARD_REDIS_ADDR", "localhost:6379")
	t.Setenv("STATCARD_RATELIMIT_REQUESTS", "5")

	path := writeFile(t, "[cache]\nbackend = \"file\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GitHub.Token != "ghp_test" {
		t.Errorf("GitHub.Token = %q", cfg.GitHub.Token)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("environment should win over the file, backend = %q", cfg.Cache.Backend)
	}
	if cfg.RateLimit.Requests != 5 {
		t.Errorf("RateLimit.Requests = %d", cfg.RateLimit.Requests)
	}
}

func TestEnvBadNumber(t *testing.T) {
	cfg := Default()
	env := map[string]string{"STATCARD_RATELIMIT_WINDOW": "soon"}
	err := cfg.applyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok })
	if !apperr.Is(err, apperr.ErrCodeInvalidConfig) {
		t.Errorf("applyEnv() = %v, want INVALID_CONFIG", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, false},
		{"redis without addr", func(c *Config) { c.Cache.Backend = "redis" }, false},
		{"redis limiter without addr", func(c *Config) { c.RateLimit.Backend = "redis" }, false},
		{"mongo", func(c *Config) { c.Cache.Backend = "mongo"; c.Cache.MongoURI = "mongodb://localhost" }, true},
		{"genai without key", func(c *Config) { c.Quote.Provider = "genai" }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"upper-case log level", func(c *Config) { c.Log.Level = "DEBUG" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
