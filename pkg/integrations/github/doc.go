// Package github gathers the public profile data behind stats cards from the
// GitHub REST API (https://api.github.com).
//
// # Usage
//
//	client := github.NewClient(github.Options{Token: os.Getenv("GITHUB_TOKEN"), Cache: store})
//	data, err := client.Fetch(ctx, "octocat", false)
//
// [Client.Fetch] requests the user, their repositories and their recent public
// events concurrently, then derives every card payload:
//
//   - Stats: stars and forks over non-fork repositories, public repos, followers
//   - Languages: share of non-fork repositories per primary language (top 10)
//   - Streak: current and longest runs of contribution days, see [ComputeStreak]
//   - Activity: contributions per day over the last 30 days
//
// # Authentication
//
// A token is optional. Without one GitHub allows 60 requests per hour per IP,
// with one 5000. Exhausted quotas surface as RATE_LIMITED errors.
//
// # Caching
//
// Raw responses are cached per endpoint under the HTTP tier of the keyer.
// Pass refresh=true to bypass the cache.
package github
