package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/statcard/pkg/cache"
	apperr "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/httputil"
)

var refNow = time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)

func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c := NewClient(Options{BaseURL: srv.URL, Cache: cache.NewMemoryCache(0), Token: "secret"})
	c.SetHTTPClient(srv.Client())
	c.SetRetryPolicy(httputil.Policy{Attempts: 1})
	c.now = func() time.Time { return refNow }
	return c
}

func octocatServer(t *testing.T, hits map[string]int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		hits[r.URL.Path]++
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/users/octocat":
			json.NewEncoder(w).Encode(userResponse{Login: "octocat", PublicRepos: 8, Followers: 4000, Following: 9})
		case "/users/octocat/repos":
			if r.URL.Query().Get("page") == "" {
				w.Header().Set("Link", `<http://`+r.Host+`/users/octocat/repos?page=2>; rel="next"`)
				json.NewEncoder(w).Encode([]repoResponse{
					{Name: "hello", Language: "Go", Stars: 10000, Forks: 50},
					{Name: "fork", Fork: true, Language: "C", Stars: 999},
				})
				return
			}
			json.NewEncoder(w).Encode([]repoResponse{
				{Name: "site", Language: "JavaScript", Stars: 2345, Forks: 7},
				{Name: "cli", Language: "Go", Stars: 0},
			})
		case "/users/octocat/events/public":
			w.Write([]byte(`[
				{"type":"PushEvent","created_at":"2024-03-14T09:00:00Z","payload":{"size":3}},
				{"type":"IssuesEvent","created_at":"2024-03-13T09:00:00Z","payload":{"action":"opened"}},
				{"type":"IssuesEvent","created_at":"2024-03-13T10:00:00Z","payload":{"action":"closed"}},
				{"type":"WatchEvent","created_at":"2024-03-12T09:00:00Z","payload":{}}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestClientFetch(t *testing.T) {
	hits := map[string]int{}
	srv := octocatServer(t, hits)
	defer srv.Close()
	c := testClient(t, srv)

	data, err := c.Fetch(context.Background(), "octocat", false)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if data.Stats.TotalStars != 12345 {
		t.Errorf("TotalStars = %d, want 12345", data.Stats.TotalStars)
	}
	if data.Stats.TotalForks != 57 || data.Stats.Followers != 4000 || data.Stats.PublicRepos != 8 {
		t.Errorf("Stats = %+v", *data.Stats)
	}
	if len(data.Languages) != 2 || data.Languages[0].Name != "Go" || data.Languages[0].Percentage != 66.7 {
		t.Errorf("Languages = %+v", data.Languages)
	}
	if data.Streak.Current != 2 || data.Streak.Total != 4 {
		t.Errorf("Streak = current %d total %d, want 2 and 4", data.Streak.Current, data.Streak.Total)
	}
	if n := len(data.Activity); n != 30 {
		t.Fatalf("len(Activity) = %d, want 30", n)
	}
	if data.Activity[29] != 3 || data.Activity[28] != 1 {
		t.Errorf("Activity tail = %v", data.Activity[27:])
	}

	if _, err := c.Fetch(context.Background(), "octocat", false); err != nil {
		t.Fatal(err)
	}
	if hits["/users/octocat"] != 1 {
		t.Errorf("/users/octocat requested %d times, want 1 (cached)", hits["/users/octocat"])
	}
	if _, err := c.Fetch(context.Background(), "octocat", true); err != nil {
		t.Fatal(err)
	}
	if hits["/users/octocat"] != 2 {
		t.Error("refresh should bypass the cache")
	}
}

func TestClientFetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		username string
		handler  http.HandlerFunc
		want     apperr.Code
	}{
		{
			name:     "invalid username",
			username: "-bad-",
			handler:  func(w http.ResponseWriter, r *http.Request) { t.Error("no request expected") },
			want:     apperr.ErrCodeInvalidUsername,
		},
		{
			name:     "not found",
			username: "ghost",
			handler:  http.NotFound,
			want:     apperr.ErrCodeUserNotFound,
		},
		{
			name:     "rate limited",
			username: "octocat",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", "1710432000")
				w.WriteHeader(http.StatusForbidden)
			},
			want: apperr.ErrCodeRateLimited,
		},
		{
			name:     "upstream down",
			username: "octocat",
			handler:  func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
			want:     apperr.ErrCodeNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			c := testClient(t, srv)

			_, err := c.Fetch(context.Background(), tt.username, false)
			if got := apperr.GetCode(err); got != tt.want {
				t.Errorf("Fetch() code = %q (%v), want %q", got, err, tt.want)
			}
		})
	}
}

func TestClientFetchWithoutEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/quiet":
			json.NewEncoder(w).Encode(userResponse{Login: "quiet", PublicRepos: 1})
		case "/users/quiet/repos":
			w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	data, err := testClient(t, srv).Fetch(context.Background(), "quiet", false)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if data.Streak.Total != 0 || data.Streak.Current != 0 {
		t.Errorf("Streak = %+v", data.Streak)
	}
	if data.Languages != nil {
		t.Errorf("Languages = %v, want nil", data.Languages)
	}
}
