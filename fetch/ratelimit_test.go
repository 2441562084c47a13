package fetch_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/symdex/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("first request to a host is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "ogrecave.org")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("second request to the same host waits", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(10) // 100ms between requests
		require.NoError(t, limiter.Wait(context.Background(), "ogrecave.org"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "ogrecave.org")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("hosts are limited independently", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "ogrecave.org"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "docs.example.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("non-positive rate disables limiting", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(0)

		start := time.Now()
		for range 20 {
			require.NoError(t, limiter.Wait(context.Background(), "ogrecave.org"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "ogrecave.org"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "ogrecave.org"))
	})

	t.Run("concurrent waiters all complete", func(t *testing.T) {
		t.Parallel()

		limiter := fetch.NewDomainLimiter(100)

		var wg sync.WaitGroup
		var completed atomic.Int32
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := limiter.Wait(context.Background(), "ogrecave.org"); err == nil {
					completed.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(5), completed.Load())
	})
}
