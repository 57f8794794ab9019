package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/statcard/pkg/cache"
	"github.com/matzehuels/statcard/pkg/card"
	"github.com/matzehuels/statcard/pkg/observability"
)

// Fetcher supplies GitHub profile data.
type Fetcher interface {
	Fetch(ctx context.Context, username string, refresh bool) (card.Data, error)
}

// QuoteSource supplies quotes. hit reports a cache hit.
type QuoteSource interface {
	Get(ctx context.Context, refresh bool) (q card.Quote, hit bool, err error)
}

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for its collaborators, so one Runner may
// serve concurrent requests.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Fetcher Fetcher     // nil disables fetching
	Quotes  QuoteSource // nil leaves quote cards on their default

	now func() time.Time
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// uses the DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, fetcher Fetcher, quotes QuoteSource, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Fetcher: fetcher,
		Quotes:  quotes,
		now:     time.Now,
	}
}

// Execute runs the complete fetch → quote → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p := req.Params
	p.Type = card.ParseKind(string(p.Type))
	if p.Now.IsZero() {
		p.Now = r.now()
	}
	result := &Result{Kind: p.Type}

	// Stage 1: Fetch
	if r.shouldFetch(p, req) {
		start := time.Now()
		data, hit, err := r.DataWithCacheInfo(ctx, p.Username, req.Refresh)
		if err != nil {
			return nil, fmt.Errorf("fetch: %w", err)
		}
		data.Quote = p.Data.Quote
		p.Data = data
		result.Stats.FetchTime = time.Since(start)
		result.CacheInfo.DataHit = hit

		r.Logger.Info("fetched profile",
			"user", p.Username,
			"cached", hit,
			"duration", result.Stats.FetchTime)
	}

	// Stage 2: Quote
	if p.Type == card.KindQuote && p.Data.Quote == nil && r.Quotes != nil && !req.Offline {
		start := time.Now()
		q, hit, err := r.Quotes.Get(ctx, req.Refresh)
		result.Stats.QuoteTime = time.Since(start)
		if err != nil {
			r.Logger.Warn("quote unavailable, using default", "error", err)
		} else {
			p.Data.Quote = &q
			result.CacheInfo.QuoteHit = hit
		}
	}

	// Stage 3: Render
	start := time.Now()
	doc, hit, err := r.RenderWithCacheInfo(ctx, p, req.Refresh)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.CardHit = hit

	if req.Format == FormatDataURL {
		doc = card.DataURL(doc)
	}
	result.SVG = []byte(doc)
	result.Stats.Bytes = len(result.SVG)

	r.Logger.Debug("rendered card",
		"type", p.Type,
		"bytes", result.Stats.Bytes,
		"cache", result.CacheInfo,
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (r *Runner) shouldFetch(p card.Params, req Request) bool {
	if req.Offline || r.Fetcher == nil || p.Username == "" || !p.Type.NeedsProfile() {
		return false
	}
	d := p.Data
	d.Quote = nil
	return d.Empty()
}

// DataWithCacheInfo returns the profile data of username, cached under the
// data tier, and whether it came from cache.
func (r *Runner) DataWithCacheInfo(ctx context.Context, username string, refresh bool) (card.Data, bool, error) {
	if r.Fetcher == nil {
		return card.Data{}, false, fmt.Errorf("no data fetcher configured")
	}
	key := r.Keyer.DataKey(username)
	hooks := observability.Cache()

	if !refresh {
		if raw, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var data card.Data
			if json.Unmarshal(raw, &data) == nil {
				hooks.OnCacheHit(ctx, "data")
				return data, true, nil
			}
		}
		hooks.OnCacheMiss(ctx, "data")
	}

	observability.Pipeline().OnFetchStart(ctx, username)
	start := time.Now()
	data, err := r.Fetcher.Fetch(ctx, username, refresh)
	observability.Pipeline().OnFetchComplete(ctx, username, time.Since(start), err)
	if err != nil {
		return card.Data{}, false, err
	}

	if raw, err := json.Marshal(data); err == nil {
		if err := r.Cache.Set(ctx, key, raw, cache.TTLData); err == nil {
			hooks.OnCacheSet(ctx, "data", len(raw))
		}
	}
	return data, false, nil
}

// Data is DataWithCacheInfo without the cache hit info.
func (r *Runner) Data(ctx context.Context, username string, refresh bool) (card.Data, error) {
	data, _, err := r.DataWithCacheInfo(ctx, username, refresh)
	return data, err
}

// RenderWithCacheInfo renders p, reusing a cached document rendered from
// identical normalized parameters on the same UTC day.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p card.Params, refresh bool) (string, bool, error) {
	resolved := card.Normalize(p)
	key, err := r.cardKey(resolved)
	if err != nil {
		return "", false, err
	}
	hooks := observability.Cache()

	if !refresh {
		if raw, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, "card")
			return string(raw), true, nil
		}
		hooks.OnCacheMiss(ctx, "card")
	}

	kind := string(resolved.Kind)
	observability.Pipeline().OnRenderStart(ctx, kind)
	start := time.Now()
	doc := card.RenderResolved(&resolved)
	observability.Pipeline().OnRenderComplete(ctx, kind, len(doc), time.Since(start), nil)

	if err := r.Cache.Set(ctx, key, []byte(doc), cache.TTLCard); err == nil {
		hooks.OnCacheSet(ctx, "card", len(doc))
	}
	return doc, false, nil
}

// cardKey hashes the normalized parameters together with the UTC date,
// since the streak card depends on "today".
func (r *Runner) cardKey(resolved card.Resolved) (string, error) {
	day := resolved.Today.UTC().Format("2006-01-02")
	resolved.Today = time.Time{}
	raw, err := json.Marshal(struct {
		Day    string
		Params card.Resolved
	}{day, resolved})
	if err != nil {
		return "", fmt.Errorf("serialize parameters for cache key: %w", err)
	}
	return r.Keyer.CardKey(cache.Hash(raw)), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
