// Package httputil holds the HTTP plumbing shared by upstream integrations:
// retry with exponential backoff and a client that stamps default headers on
// every request.
//
// Wrap transient failures in [RetryableError] so that [Retry] tries again:
//
//	err := httputil.Retry(ctx, httputil.DefaultPolicy, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
package httputil
