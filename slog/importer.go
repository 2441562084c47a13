package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/symdex"
)

// Ensure LoggingImporter implements symdex.Importer.
var _ symdex.Importer = (*LoggingImporter)(nil)

// LoggingImporter wraps an Importer with debug logging.
type LoggingImporter struct {
	next   symdex.Importer
	logger *slog.Logger
}

// NewLoggingImporter creates a new LoggingImporter.
func NewLoggingImporter(next symdex.Importer, logger *slog.Logger) *LoggingImporter {
	return &LoggingImporter{next: next, logger: logger}
}

// Import delegates to the wrapped importer and logs the outcome.
func (i *LoggingImporter) Import(ctx context.Context, req symdex.ImportRequest) (result *symdex.ImportResult, err error) {
	defer func(begin time.Time) {
		var files, entries, refs int
		var unchanged bool
		if result != nil {
			files, entries, refs, unchanged = result.Files, result.Entries, result.References, result.Unchanged
		}
		i.logger.Info("import",
			"name", req.Name,
			"url", req.URL,
			"sections", req.Sections,
			"files", files,
			"entries", entries,
			"refs", refs,
			"unchanged", unchanged,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Import(ctx, req)
}
