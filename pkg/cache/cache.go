// Package cache provides the byte-level caches statcard stores fetched
// profiles, quotes and rendered cards in.
//
// Every backend implements [Cache]. Pick one by deployment:
//   - [NullCache]: caching disabled
//   - [FileCache]: per-user cache directory for the CLI
//   - [MemoryCache]: single-process server
//   - [RedisCache], [MongoCache]: shared across server replicas
//
// Keys are produced by a [Keyer] so the CLI and the server agree on layout.
package cache

import (
	"context"
	"errors"
	"time"
)

// Default TTLs per entry type.
const (
	TTLHTTP  = time.Hour
	TTLData  = 30 * time.Minute
	TTLQuote = time.Hour
	TTLCard  = 10 * time.Minute
)

// ErrClosed is returned by operations on a closed cache.
var ErrClosed = errors.New("cache closed")

// Cache is a TTL key/value store for opaque bytes. A zero ttl stores the
// entry without expiry. Get reports a miss with hit=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NullCache never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
