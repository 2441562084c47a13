// Package fs reads and writes Doxygen search directories on the local
// filesystem.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/symdex"
)

// Ensure Fetcher implements symdex.Fetcher at compile time.
var _ symdex.Fetcher = (*Fetcher)(nil)

// Fetcher serves search data from disk. It accepts plain paths and file://
// URLs, so an Importer can read a generated html/search directory the same
// way it reads a published site.
type Fetcher struct {
	root string
}

// NewFetcher creates a Fetcher. Relative paths are resolved against root;
// an empty root means the working directory.
func NewFetcher(root string) *Fetcher {
	return &Fetcher{root: root}
}

// Fetch returns the contents of the file named by rawURL.
// Returns ENOTFOUND if the file does not exist.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := f.resolve(rawURL)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", symdex.Errorf(symdex.ENOTFOUND, "file %s not found", path)
	} else if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}

func (f *Fetcher) resolve(rawURL string) (string, error) {
	path := rawURL
	if strings.HasPrefix(rawURL, "file:") {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", symdex.Errorf(symdex.EINVALID, "invalid file URL %q", rawURL)
		}
		path = u.Path
	} else if u, err := url.Parse(rawURL); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return "", symdex.Errorf(symdex.EINVALID, "unsupported URL scheme %q", u.Scheme)
	}

	path = filepath.FromSlash(path)
	if !filepath.IsAbs(path) && f.root != "" {
		path = filepath.Join(f.root, path)
	}
	return path, nil
}
