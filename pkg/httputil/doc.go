// Package httputil fetches tree documents from remote URLs.
//
// # Fetching
//
// [Fetch] performs a single GET with a response size cap and classifies
// the outcome: 404 becomes [ErrNotFound], transport failures and 5xx or
// 429 responses become [ErrNetwork] wrapped in [RetryableError], and an
// oversized body becomes [ErrTooLarge]. [FetchWithRetry] adds the default
// retry policy on top.
//
// Callers cache fetched bytes themselves; the pipeline keys responses by
// URL and applies the HTTP TTL from its cache backend.
//
// # Retry
//
// [Retry] executes an operation with exponential backoff, retrying only
// errors wrapped in [RetryableError]:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    data, err = httputil.Fetch(ctx, nil, url)
//	    return err
//	})
//
// [RetryWithBackoff] applies the defaults (3 attempts, 1 second initial
// delay, doubling each retry).
package httputil
