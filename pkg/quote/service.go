package quote

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/statcard/pkg/cache"
	"github.com/matzehuels/statcard/pkg/card"
	"github.com/matzehuels/statcard/pkg/observability"
)

// Service serves one cached quote per hour bucket.
type Service struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Primary  Provider // may be nil
	Fallback Provider
	TTL      time.Duration
	Logger   *log.Logger

	now func() time.Time
}

// NewService wires a service with a static fallback. primary may be nil.
func NewService(c cache.Cache, keyer cache.Keyer, primary Provider, logger *log.Logger) *Service {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Service{
		Cache:    c,
		Keyer:    keyer,
		Primary:  primary,
		Fallback: NewStatic(nil),
		TTL:      cache.TTLQuote,
		Logger:   logger,
		now:      time.Now,
	}
}

// Get returns the quote of the current hour. hit reports whether it came from
// the cache. An error is returned only when every provider failed.
func (s *Service) Get(ctx context.Context, refresh bool) (q card.Quote, hit bool, err error) {
	key := s.Keyer.QuoteKey(s.now().UTC().Format("2006-01-02T15"))
	hooks := observability.Cache()

	if !refresh {
		if data, ok, err := s.Cache.Get(ctx, key); err == nil && ok {
			if json.Unmarshal(data, &q) == nil {
				hooks.OnCacheHit(ctx, "quote")
				return q, true, nil
			}
		}
		hooks.OnCacheMiss(ctx, "quote")
	}

	q, err = s.generate(ctx)
	if err != nil {
		return card.Quote{}, false, err
	}
	if data, err := json.Marshal(q); err == nil {
		if err := s.Cache.Set(ctx, key, data, s.TTL); err != nil {
			s.logger().Warn("quote cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, "quote", len(data))
		}
	}
	return q, false, nil
}

func (s *Service) generate(ctx context.Context) (card.Quote, error) {
	var err error
	for _, p := range []Provider{s.Primary, s.Fallback} {
		if p == nil {
			continue
		}
		start := time.Now()
		var q card.Quote
		q, err = p.Quote(ctx)
		if err == nil {
			q, err = validate(q)
		}
		observability.Pipeline().OnQuote(ctx, p.Name(), time.Since(start), err)
		if err == nil {
			return q, nil
		}
		s.logger().Warn("quote provider failed", "provider", p.Name(), "error", err)
	}
	if err == nil {
		err = ErrInvalidQuote
	}
	return card.Quote{}, err
}

func (s *Service) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}
