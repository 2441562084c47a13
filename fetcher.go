package symdex

import "context"

// Fetcher retrieves raw content (search data files or HTML pages) by URL.
type Fetcher interface {
	// Fetch returns the body behind url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases resources held by the fetcher.
	Close() error
}
