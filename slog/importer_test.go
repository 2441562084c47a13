package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/mock"
	symslog "github.com/fwojciec/symdex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingImporter_Import(t *testing.T) {
	t.Parallel()

	t.Run("logs counts and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Importer{
			ImportFn: func(_ context.Context, req symdex.ImportRequest) (*symdex.ImportResult, error) {
				return &symdex.ImportResult{
					Set:        &symdex.Set{ID: "1", Name: req.Name},
					Files:      27,
					Entries:    4120,
					References: 9311,
				}, nil
			},
		}

		imp := symslog.NewLoggingImporter(inner, logger)
		result, err := imp.Import(context.Background(), symdex.ImportRequest{Name: "ogre", URL: "https://ogrecave.org/docs/search/"})

		require.NoError(t, err)
		assert.Equal(t, "ogre", result.Set.Name)
		output := buf.String()
		assert.Contains(t, output, "msg=import")
		assert.Contains(t, output, "name=ogre")
		assert.Contains(t, output, "url=https://ogrecave.org/docs/search/")
		assert.Contains(t, output, "files=27")
		assert.Contains(t, output, "entries=4120")
		assert.Contains(t, output, "refs=9311")
		assert.Contains(t, output, "unchanged=false")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Importer{
			ImportFn: func(context.Context, symdex.ImportRequest) (*symdex.ImportResult, error) {
				return nil, errors.New("manifest unavailable")
			},
		}

		_, err := symslog.NewLoggingImporter(inner, logger).Import(context.Background(), symdex.ImportRequest{Name: "ogre"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "files=0")
		assert.Contains(t, output, `err="manifest unavailable"`)
	})
}

func TestLoggingSiteDetector_DetectFromImporterSuite(t *testing.T) {
	t.Parallel()

	t.Run("logs the detected generator", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SiteDetector{
			DetectFn: func(string, string) symdex.Site {
				return symdex.Site{Generator: symdex.GeneratorDoxygen, Version: "1.9.1", SearchURL: "https://example.com/search/"}
			},
		}

		site := symslog.NewLoggingSiteDetector(inner, logger).Detect("<html></html>", "https://example.com/index.html")

		assert.Equal(t, "1.9.1", site.Version)
		output := buf.String()
		assert.Contains(t, output, "generator=doxygen")
		assert.Contains(t, output, "version=1.9.1")
		assert.Contains(t, output, "search=https://example.com/search/")
	})

	t.Run("logs unknown generators", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SiteDetector{
			DetectFn: func(string, string) symdex.Site { return symdex.Site{} },
		}

		symslog.NewLoggingSiteDetector(inner, logger).Detect("<html></html>", "https://example.com/")

		assert.Contains(t, buf.String(), "generator=(unknown)")
	})
}
