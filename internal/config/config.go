// Package config loads statcard settings from a TOML file, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	apperr "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/ratelimit"
)

// DefaultFile is read when no path is given and it exists in the working directory.
const DefaultFile = "statcard.toml"

// Config is the complete statcard configuration.
type Config struct {
	Server    Server    `toml:"server"`
	GitHub    GitHub    `toml:"github"`
	Cache     Cache     `toml:"cache"`
	RateLimit RateLimit `toml:"ratelimit"`
	Quote     Quote     `toml:"quote"`
	Log       Log       `toml:"log"`
}

type Server struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	CORSOrigin      string        `toml:"cors_origin"`
}

type GitHub struct {
	Token   string `toml:"token"`
	BaseURL string `toml:"base_url"`
}

// Cache selects the cache backend: memory, file, redis, mongo or none.
type Cache struct {
	Backend    string `toml:"backend"`
	Dir        string `toml:"dir"`
	Prefix     string `toml:"prefix"`
	MaxEntries int    `toml:"max_entries"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// RateLimit selects the limiter backend: memory, redis or none.
type RateLimit struct {
	Backend  string        `toml:"backend"`
	Requests int           `toml:"requests"`
	Window   time.Duration `toml:"window"`
}

// Quote selects the quote provider: static or genai.
type Quote struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
}

type Log struct {
	Level string `toml:"level"`
}

var (
	cacheBackends     = []string{"memory", "file", "redis", "mongo", "none"}
	rateLimitBackends = []string{"memory", "redis", "none"}
	quoteProviders    = []string{"static", "genai"}
	logLevels         = []string{"debug", "info", "warn", "error"}
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigin:      "*",
		},
		Cache:     Cache{Backend: "memory", MaxEntries: 10_000},
		RateLimit: RateLimit{Backend: "memory", Requests: ratelimit.DefaultRequests, Window: ratelimit.DefaultWindow},
		Quote:     Quote{Provider: "static"},
		Log:       Log{Level: "info"},
	}
}

// Load reads path (or DefaultFile when path is empty and the file exists),
// then .env, then environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.decodeFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return apperr.New(apperr.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// applyEnv overrides fields from STATCARD_* variables and the conventional
// GITHUB_TOKEN and GEMINI_API_KEY.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}
	num := func(dst *int, key string) error {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "%s must be an integer", key)
			}
			*dst = n
		}
		return nil
	}
	dur := func(dst *time.Duration, key string) error {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "%s must be a duration", key)
			}
			*dst = d
		}
		return nil
	}

	str(&c.Server.Addr, "STATCARD_ADDR")
	str(&c.Server.CORSOrigin, "STATCARD_CORS_ORIGIN")
	str(&c.GitHub.Token, "STATCARD_GITHUB_TOKEN", "GITHUB_TOKEN")
	str(&c.GitHub.BaseURL, "STATCARD_GITHUB_BASE_URL")
	str(&c.Cache.Backend, "STATCARD_CACHE_BACKEND")
	str(&c.Cache.Dir, "STATCARD_CACHE_DIR")
	str(&c.Cache.Prefix, "STATCARD_CACHE_PREFIX")
	str(&c.Cache.RedisAddr, "STATCARD_REDIS_ADDR")
	str(&c.Cache.RedisPassword, "STATCARD_REDIS_PASSWORD")
	str(&c.Cache.MongoURI, "STATCARD_MONGO_URI")
	str(&c.RateLimit.Backend, "STATCARD_RATELIMIT_BACKEND")
	str(&c.Quote.Provider, "STATCARD_QUOTE_PROVIDER")
	str(&c.Quote.APIKey, "STATCARD_GENAI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	str(&c.Quote.Model, "STATCARD_GENAI_MODEL")
	str(&c.Log.Level, "STATCARD_LOG_LEVEL")

	return errors.Join(
		num(&c.Cache.RedisDB, "STATCARD_REDIS_DB"),
		num(&c.RateLimit.Requests, "STATCARD_RATELIMIT_REQUESTS"),
		dur(&c.RateLimit.Window, "STATCARD_RATELIMIT_WINDOW"),
	)
}

// Validate rejects unknown backends and incomplete backend settings.
func (c *Config) Validate() error {
	var errs []error
	check := func(field, value string, allowed []string) {
		for _, a := range allowed {
			if value == a {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s: %q is not one of %s", field, value, strings.Join(allowed, ", ")))
	}

	check("cache.backend", c.Cache.Backend, cacheBackends)
	check("ratelimit.backend", c.RateLimit.Backend, rateLimitBackends)
	check("quote.provider", c.Quote.Provider, quoteProviders)
	check("log.level", strings.ToLower(c.Log.Level), logLevels)

	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		errs = append(errs, errors.New("cache.redis_addr is required for the redis backend"))
	}
	if c.RateLimit.Backend == "redis" && c.Cache.RedisAddr == "" {
		errs = append(errs, errors.New("cache.redis_addr is required for the redis rate limiter"))
	}
	if c.Cache.Backend == "mongo" && c.Cache.MongoURI == "" {
		errs = append(errs, errors.New("cache.mongo_uri is required for the mongo backend"))
	}
	if c.Quote.Provider == "genai" && c.Quote.APIKey == "" {
		errs = append(errs, errors.New("quote.api_key (or GEMINI_API_KEY) is required for the genai provider"))
	}
	if c.RateLimit.Requests < 0 || c.RateLimit.Window < 0 {
		errs = append(errs, errors.New("ratelimit.requests and ratelimit.window must not be negative"))
	}

	if len(errs) > 0 {
		return apperr.Wrap(apperr.ErrCodeInvalidConfig, errors.Join(errs...), "invalid configuration")
	}
	return nil
}
