package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/statcard/pkg/cache"
	"github.com/matzehuels/statcard/pkg/card"
	apperr "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/pipeline"
	"github.com/matzehuels/statcard/pkg/ratelimit"
	"github.com/matzehuels/statcard/pkg/theme"
)

type stubFetcher struct{}

func (stubFetcher) Fetch(_ context.Context, username string, _ bool) (card.Data, error) {
	switch username {
	case "octocat":
		return card.Data{Stats: &card.Stats{TotalStars: 12345, PublicRepos: 8}}, nil
	case "limited":
		return card.Data{}, apperr.Wrap(apperr.ErrCodeRateLimited, errors.New("quota"), "github API rate limit exceeded")
	default:
		return card.Data{}, apperr.New(apperr.ErrCodeUserNotFound, "github user %q not found", username)
	}
}

type stubQuotes struct{}

func (stubQuotes) Get(context.Context, bool) (card.Quote, bool, error) {
	return card.Quote{Quote: "Keep shipping.", Author: "Tester"}, false, nil
}

func newTestServer(t *testing.T, limiter ratelimit.Limiter) http.Handler {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewMemoryCache(0), nil, stubFetcher{}, stubQuotes{}, logger)
	return New(Options{
		Runner:     runner,
		Quotes:     stubQuotes{},
		Limiter:    limiter,
		Logger:     logger,
		CORSOrigin: "https://example.com",
	}).Handler()
}

func do(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	h.ServeHTTP(w, req)
	return w
}

func TestGetCard(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(h, http.MethodGet, "/api/card?type=stats&username=octocat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/svg+xml; charset=utf-8", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Cache-Control"), "max-age=1800")
	require.NotEmpty(t, w.Header().Get(requestIDHeader))

	body := w.Body.String()
	require.True(t, strings.HasPrefix(body, "<svg"))
	require.Contains(t, body, "octocat's GitHub Stats")
	require.Contains(t, body, "12.3K")
}

func TestGetCardDataURL(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(h, http.MethodGet, "/api/card?type=custom&customText=hi&format=base64", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.HasPrefix(w.Body.String(), "data:image/svg+xml;base64,"))
	require.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestGetCardErrors(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		name   string
		target string
		status int
		code   apperr.Code
	}{
		{"invalid username", "/api/card?username=-oops", http.StatusBadRequest, apperr.ErrCodeInvalidUsername},
		{"unknown user", "/api/card?username=ghost", http.StatusNotFound, apperr.ErrCodeUserNotFound},
		{"upstream rate limit", "/api/card?username=limited", http.StatusTooManyRequests, apperr.ErrCodeRateLimited},
		{"bad format", "/api/card?format=png", http.StatusBadRequest, apperr.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodGet, tt.target, nil)
			require.Equal(t, tt.status, w.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Equal(t, tt.code, body.Code)
			require.NotEmpty(t, body.Error)
		})
	}
}

func TestPostCard(t *testing.T) {
	h := newTestServer(t, nil)

	payload := `{"type":"quote","data":{"quote":{"quote":"Posted <wisdom>","author":"Me"}}}`
	w := do(h, http.MethodPost, "/api/card", strings.NewReader(payload))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "&lt;wisdom&gt;")
	require.NotContains(t, w.Body.String(), "<wisdom>")
}

func TestPostCardMalformedJSON(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(h, http.MethodPost, "/api/card", bytes.NewBufferString(`{"type":`))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body["error"])
}

func TestGetQuote(t *testing.T) {
	w := do(newTestServer(t, nil), http.MethodGet, "/api/quote", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var q card.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	require.Equal(t, "Keep shipping.", q.Quote)
}

func TestGetStats(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(h, http.MethodGet, "/api/stats/octocat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data card.Data
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	require.Equal(t, 12345, data.Stats.TotalStars)

	w = do(h, http.MethodGet, "/api/stats/ghost", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetThemes(t *testing.T) {
	w := do(newTestServer(t, nil), http.MethodGet, "/api/themes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var themes map[string]theme.Palette
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &themes))
	require.Equal(t, "#0d1117", themes["neon"].Background)
	require.Contains(t, themes, "dracula")
}

func TestCORS(t *testing.T) {
	w := do(newTestServer(t, nil), http.MethodOptions, "/api/card", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, ratelimit.NewMemory(2, time.Minute))

	for range 2 {
		w := do(h, http.MethodGet, "/api/themes", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
	}

	w := do(h, http.MethodGet, "/api/themes", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "60", w.Header().Get("Retry-After"))
	require.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// health checks are not limited
	w = do(h, http.MethodGet, "/-/live", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestReady(t *testing.T) {
	logger := log.New(io.Discard)
	failing := New(Options{Logger: logger, Ready: func(context.Context) error { return errors.New("redis down") }})
	w := do(failing.Handler(), http.MethodGet, "/-/ready", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	healthy := New(Options{Logger: logger})
	w = do(healthy.Handler(), http.MethodGet, "/-/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDPropagates(t *testing.T) {
	h := newTestServer(t, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/-/live", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	h.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}
