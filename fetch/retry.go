package fetch

import (
	"context"
	"time"

	"github.com/fwojciec/symdex"
)

// FetchFunc is the signature of Fetcher.Fetch.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before each retry with the attempt about to start,
// counting from 2, and the error that caused it.
type RetryFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch until it succeeds, waiting delays[i] before
// retry i+1, so there are at most len(delays)+1 attempts.
//
// Not-found and invalid-input errors are returned at once; a missing file
// stays missing.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, onRetry RetryFunc) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(err) || attempt == len(delays) {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return "", lastErr
}

func retryable(err error) bool {
	switch symdex.ErrorCode(err) {
	case symdex.ENOTFOUND, symdex.EINVALID:
		return false
	}
	return true
}
