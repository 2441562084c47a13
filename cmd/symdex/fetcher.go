package main

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/symdex"
)

// sourceFetcher sends http(s) URLs to the network and everything else to
// the local filesystem, so sets can be imported from a published site or a
// freshly generated html directory alike.
type sourceFetcher struct {
	remote symdex.Fetcher
	local  symdex.Fetcher
}

func (f *sourceFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if isRemote(url) {
		return f.remote.Fetch(ctx, url)
	}
	return f.local.Fetch(ctx, url)
}

func (f *sourceFetcher) Close() error {
	return errors.Join(f.remote.Close(), f.local.Close())
}

func isRemote(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
