package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/statcard/internal/config"
	"github.com/matzehuels/statcard/pkg/cache"
	"github.com/matzehuels/statcard/pkg/integrations/github"
	"github.com/matzehuels/statcard/pkg/pipeline"
	"github.com/matzehuels/statcard/pkg/quote"
	"github.com/matzehuels/statcard/pkg/ratelimit"
)

// connectTimeout bounds backend connection checks during startup.
const connectTimeout = 5 * time.Second

// services are the collaborators built from a Config.
type services struct {
	cache   cache.Cache
	keyer   cache.Keyer
	limiter ratelimit.Limiter
	quotes  *quote.Service
	fetcher *github.Client
	runner  *pipeline.Runner

	closers []func() error
}

// newServices wires every backend selected by cfg. offline leaves the
// fetcher unset so only supplied data is rendered.
func newServices(ctx context.Context, cfg *config.Config, logger *log.Logger, offline bool) (*services, error) {
	s := &services{keyer: cache.NewDefaultKeyer()}
	if cfg.Cache.Prefix != "" {
		s.keyer = cache.NewScopedKeyer(s.keyer, cfg.Cache.Prefix)
	}

	c, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("cache %s: %w", cfg.Cache.Backend, err)
	}
	s.cache = c
	s.closers = append(s.closers, c.Close)

	if s.limiter, err = s.newLimiter(ctx, cfg); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("rate limiter %s: %w", cfg.RateLimit.Backend, err)
	}

	primary, err := newQuoteProvider(ctx, cfg.Quote)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("quote provider %s: %w", cfg.Quote.Provider, err)
	}
	s.quotes = quote.NewService(s.cache, s.keyer, primary, logger)

	var fetcher pipeline.Fetcher
	if !offline {
		s.fetcher = github.NewClient(github.Options{
			Token:   cfg.GitHub.Token,
			BaseURL: cfg.GitHub.BaseURL,
			Cache:   s.cache,
			Keyer:   s.keyer,
		})
		fetcher = s.fetcher
	}
	s.runner = pipeline.NewRunner(s.cache, s.keyer, fetcher, s.quotes, logger)

	logger.Debug("services ready",
		"cache", cfg.Cache.Backend,
		"ratelimit", cfg.RateLimit.Backend,
		"quote", cfg.Quote.Provider,
		"authenticated", cfg.GitHub.Token != "")
	return s, nil
}

// newCache builds the configured cache backend.
func newCache(ctx context.Context, cfg config.Cache) (cache.Cache, error) {
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	case "redis":
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "mongo":
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return cache.NewMongoCache(ctx, cache.MongoOptions{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		return cache.NewMemoryCache(cfg.MaxEntries), nil
	}
}

// newLimiter builds the configured limiter. The redis limiter shares the
// cache's client when the cache is redis too.
func (s *services) newLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, error) {
	rl := cfg.RateLimit
	switch rl.Backend {
	case "none":
		return ratelimit.Noop{}, nil
	case "redis":
		if rc, ok := s.cache.(*cache.RedisCache); ok {
			return ratelimit.NewRedis(rc.Client(), cfg.Cache.Prefix+"ratelimit:", rl.Requests, rl.Window), nil
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		pctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := client.Ping(pctx).Err(); err != nil {
			_ = client.Close()
			return nil, err
		}
		s.closers = append(s.closers, client.Close)
		return ratelimit.NewRedis(client, cfg.Cache.Prefix+"ratelimit:", rl.Requests, rl.Window), nil
	default:
		return ratelimit.NewMemory(rl.Requests, rl.Window), nil
	}
}

// newQuoteProvider returns the primary provider, or nil for the static set
// which the quote service falls back to anyway.
func newQuoteProvider(ctx context.Context, cfg config.Quote) (quote.Provider, error) {
	if cfg.Provider != "genai" {
		return nil, nil
	}
	return quote.NewGenAI(ctx, cfg.APIKey, cfg.Model)
}

// ready pings the cache backend when it supports it.
func (s *services) ready(ctx context.Context) error {
	if p, ok := s.cache.(cache.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases backends in reverse order of creation.
func (s *services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	return errors.Join(errs...)
}
