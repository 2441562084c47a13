package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("reads a path relative to the root", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "all_0.js"), []byte("var searchData=\n[\n];\n"), 0644))

		f := fs.NewFetcher(dir)
		body, err := f.Fetch(context.Background(), "all_0.js")

		require.NoError(t, err)
		assert.Equal(t, "var searchData=\n[\n];\n", body)
	})

	t.Run("reads a file URL", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "searchdata.js")
		require.NoError(t, os.WriteFile(path, []byte("manifest"), 0644))

		f := fs.NewFetcher("")
		body, err := f.Fetch(context.Background(), "file://"+filepath.ToSlash(path))

		require.NoError(t, err)
		assert.Equal(t, "manifest", body)
	})

	t.Run("returns ENOTFOUND for a missing file", func(t *testing.T) {
		t.Parallel()

		f := fs.NewFetcher(t.TempDir())
		_, err := f.Fetch(context.Background(), "searchdata.js")

		require.Error(t, err)
		assert.Equal(t, symdex.ENOTFOUND, symdex.ErrorCode(err))
	})

	t.Run("rejects remote URLs", func(t *testing.T) {
		t.Parallel()

		f := fs.NewFetcher("")
		_, err := f.Fetch(context.Background(), "https://example.com/search/searchdata.js")

		require.Error(t, err)
		assert.Equal(t, symdex.EINVALID, symdex.ErrorCode(err))
	})

	t.Run("respects a canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := fs.NewFetcher(t.TempDir())
		_, err := f.Fetch(ctx, "all_0.js")

		require.ErrorIs(t, err, context.Canceled)
	})
}
