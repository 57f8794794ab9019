package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a fixed-window limiter whose counters live in Redis, so every
// server instance shares the same budget per key.
type Redis struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRedis creates a Redis-backed limiter. Keys are stored as
// prefix+key+":"+windowIndex.
func NewRedis(client redis.UniversalClient, prefix string, limit int, per time.Duration) *Redis {
	if limit <= 0 {
		limit = DefaultRequests
	}
	if per <= 0 {
		per = DefaultWindow
	}
	return &Redis{client: client, prefix: prefix, limit: limit, window: per, now: time.Now}
}

func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	now := r.now()
	slot := now.UnixNano() / int64(r.window)
	resetAt := time.Unix(0, (slot+1)*int64(r.window))
	k := fmt.Sprintf("%s%s:%d", r.prefix, key, slot)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, r.window)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: redis: %w", err)
	}
	return decide(int(incr.Val()), r.limit, resetAt, now), nil
}

var _ Limiter = (*Redis)(nil)
