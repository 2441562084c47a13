package fetch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0, 0}

	t.Run("returns the first successful body", func(t *testing.T) {
		t.Parallel()

		var calls int
		body, err := fetch.FetchWithRetry(context.Background(), "u", func(context.Context, string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "ok", nil
		}, noDelays, nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", body)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the last delay", func(t *testing.T) {
		t.Parallel()

		var calls int
		_, err := fetch.FetchWithRetry(context.Background(), "u", func(context.Context, string) (string, error) {
			calls++
			return "", errors.New("connection reset")
		}, noDelays, nil)

		require.EqualError(t, err, "connection reset")
		assert.Equal(t, 4, calls)
	})

	t.Run("does not retry not-found errors", func(t *testing.T) {
		t.Parallel()

		var calls int
		_, err := fetch.FetchWithRetry(context.Background(), "u", func(context.Context, string) (string, error) {
			calls++
			return "", symdex.Errorf(symdex.ENOTFOUND, "HTTP 404 for u")
		}, noDelays, nil)

		assert.Equal(t, symdex.ENOTFOUND, symdex.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("reports each retry", func(t *testing.T) {
		t.Parallel()

		var attempts []int
		_, _ = fetch.FetchWithRetry(context.Background(), "u", func(context.Context, string) (string, error) {
			return "", errors.New("timeout")
		}, noDelays, func(url string, attempt int, err error) {
			assert.Equal(t, "u", url)
			assert.EqualError(t, err, "timeout")
			attempts = append(attempts, attempt)
		})

		assert.Equal(t, []int{2, 3, 4}, attempts)
	})

	t.Run("stops waiting when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		_, err := fetch.FetchWithRetry(ctx, "u", func(context.Context, string) (string, error) {
			cancel()
			return "", errors.New("timeout")
		}, []time.Duration{time.Hour}, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}
