package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/statcard/pkg/buildinfo"
	"github.com/matzehuels/statcard/pkg/cache"
	"github.com/matzehuels/statcard/pkg/card"
	apperr "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/integrations"
)

// DefaultBaseURL is the public GitHub API.
const DefaultBaseURL = "https://api.github.com"

const (
	maxRepoPages  = 10
	maxEventPages = 3
	perPage       = 100
)

// Options configures a Client. Zero values are usable.
type Options struct {
	Token   string
	BaseURL string
	Cache   cache.Cache
	Keyer   cache.Keyer
	TTL     time.Duration
}

// Client fetches profile data from GitHub.
type Client struct {
	*integrations.Client
	baseURL string
	now     func() time.Time
}

// NewClient creates a GitHub client. Without a token requests are unauthenticated.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.TTL <= 0 {
		opts.TTL = cache.TTLHTTP
	}

	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
		"User-Agent":           buildinfo.UserAgent(),
	}
	if opts.Token != "" {
		headers["Authorization"] = "Bearer " + opts.Token
	}

	return &Client{
		Client:  integrations.NewClient(opts.Cache, opts.Keyer.HTTPKey("github", ""), opts.TTL, headers),
		baseURL: opts.BaseURL,
		now:     time.Now,
	}
}

// Fetch gathers every card payload for username. If refresh is true, cached
// responses are bypassed.
func (c *Client) Fetch(ctx context.Context, username string, refresh bool) (card.Data, error) {
	if err := apperr.ValidateUsername(username); err != nil {
		return card.Data{}, err
	}

	var (
		user   userResponse
		repos  []repoResponse
		events []eventResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.Cached(gctx, "/users/"+username, refresh, &user, func() error {
			return c.Get(gctx, c.url("/users/%s", username), &user)
		})
	})
	g.Go(func() error {
		return c.Cached(gctx, "/users/"+username+"/repos", refresh, &repos, func() error {
			var err error
			repos, err = c.fetchRepos(gctx, username)
			return err
		})
	})
	g.Go(func() error {
		err := c.Cached(gctx, "/users/"+username+"/events", refresh, &events, func() error {
			var err error
			events, err = c.fetchEvents(gctx, username)
			return err
		})
		// A profile without readable events still has stats to show.
		if err != nil && !errors.Is(err, integrations.ErrRateLimited) && gctx.Err() == nil {
			events = nil
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return card.Data{}, classify(err, username)
	}

	perDay := Contributions(events)
	today := c.now().UTC()
	streak := ComputeStreak(perDay, today)
	stats := StatsFrom(user, repos)
	return card.Data{
		Stats:     &stats,
		Languages: Languages(repos, 10),
		Streak:    &streak,
		Activity:  Activity(perDay, today, card.ActivityDays),
	}, nil
}

func (c *Client) fetchRepos(ctx context.Context, username string) ([]repoResponse, error) {
	var all []repoResponse
	next := c.url("/users/%s/repos?per_page=%d&type=owner&sort=updated", username, perPage)
	for page := 0; next != "" && page < maxRepoPages; page++ {
		var batch []repoResponse
		var err error
		if next, err = c.GetPage(ctx, next, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}
	return all, nil
}

func (c *Client) fetchEvents(ctx context.Context, username string) ([]eventResponse, error) {
	var all []eventResponse
	next := c.url("/users/%s/events/public?per_page=%d", username, perPage)
	for page := 0; next != "" && page < maxEventPages; page++ {
		var batch []eventResponse
		var err error
		if next, err = c.GetPage(ctx, next, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}
	return all, nil
}

func (c *Client) url(format string, username string, args ...any) string {
	return c.baseURL + fmt.Sprintf(format, append([]any{url.PathEscape(username)}, args...)...)
}

// classify attaches an error code to upstream failures.
func classify(err error, username string) error {
	var rl *integrations.RateLimitError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Wrap(apperr.ErrCodeTimeout, err, "fetch %s", username)
	case errors.Is(err, integrations.ErrNotFound):
		return apperr.Wrap(apperr.ErrCodeUserNotFound, err, "github user %q not found", username)
	case errors.As(err, &rl):
		return apperr.Wrap(apperr.ErrCodeRateLimited, err, "github API rate limit exceeded")
	case errors.Is(err, integrations.ErrUnauthorized):
		return apperr.Wrap(apperr.ErrCodeUnauthorized, err, "github rejected the configured token")
	case errors.Is(err, integrations.ErrNetwork):
		return apperr.Wrap(apperr.ErrCodeNetwork, err, "fetch %s", username)
	default:
		return err
	}
}
