// Package ratelimit bounds how many requests a client may make per window.
//
// Limiters use a fixed window keyed by an arbitrary client key (the HTTP edge
// uses the client IP). Three backends are provided: [Memory] for a single
// process, [Redis] for a fleet sharing one counter, and [Noop].
package ratelimit

import (
	"context"
	"time"
)

// Default limits: 60 requests per minute.
const (
	DefaultRequests = 60
	DefaultWindow   = time.Minute
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter decides whether a request for key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Noop allows everything.
type Noop struct{}

func (Noop) Allow(context.Context, string) (Decision, error) {
	return Decision{Allowed: true}, nil
}

// decide turns a window count into a Decision.
func decide(count, limit int, resetAt, now time.Time) Decision {
	d := Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   resetAt,
	}
	if !d.Allowed {
		d.RetryAfter = max(resetAt.Sub(now), time.Second)
	}
	return d
}
