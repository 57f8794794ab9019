package integrations

import (
	"errors"
	"net/http"
	"strconv"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the requested resource doesn't exist upstream.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrRateLimited is returned when the upstream API quota is exhausted.
	ErrRateLimited = errors.New("upstream rate limit exceeded")

	// ErrUnauthorized is returned when the upstream rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// RateLimitError carries the upstream reset time alongside [ErrRateLimited].
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return ErrRateLimited.Error()
	}
	return ErrRateLimited.Error() + ": resets at " + e.ResetAt.UTC().Format(time.RFC3339)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// RetryAfter returns the time left until reset, relative to now.
func (e *RateLimitError) RetryAfter(now time.Time) time.Duration {
	if e.ResetAt.IsZero() {
		return 0
	}
	return max(e.ResetAt.Sub(now), 0)
}

// rateLimitReset reads GitHub-style X-RateLimit-Reset or Retry-After headers.
func rateLimitReset(h http.Header, now time.Time) time.Time {
	if s := h.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil {
			return now.Add(time.Duration(secs) * time.Second)
		}
	}
	if s := h.Get("X-RateLimit-Reset"); s != "" {
		if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(unix, 0)
		}
	}
	return time.Time{}
}
