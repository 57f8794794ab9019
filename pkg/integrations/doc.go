// Package integrations provides the shared HTTP client used by upstream API
// integrations, and the [github] subpackage that gathers profile data for
// stats cards.
//
// # Client Pattern
//
// [Client] wraps an http.Client with default headers, retry, a status-code to
// sentinel-error mapping, and a byte-level response cache:
//
//	c := integrations.NewClient(store, "http:github:", cache.TTLHTTP, headers)
//	var user userResponse
//	err := c.Cached(ctx, "/users/octocat", false, &user, func() error {
//	    return c.Get(ctx, url, &user)
//	})
//
// Failures are reported as [ErrNotFound], [ErrRateLimited], [ErrUnauthorized]
// or [ErrNetwork]; match them with errors.Is.
//
// [github]: github.com/matzehuels/statcard/pkg/integrations/github
package integrations
