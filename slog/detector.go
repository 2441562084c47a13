package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/symdex"
)

// Ensure LoggingSiteDetector implements symdex.SiteDetector.
var _ symdex.SiteDetector = (*LoggingSiteDetector)(nil)

// LoggingSiteDetector wraps a SiteDetector with debug logging.
type LoggingSiteDetector struct {
	next   symdex.SiteDetector
	logger *slog.Logger
}

// NewLoggingSiteDetector creates a new LoggingSiteDetector.
func NewLoggingSiteDetector(next symdex.SiteDetector, logger *slog.Logger) *LoggingSiteDetector {
	return &LoggingSiteDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs what it found.
func (d *LoggingSiteDetector) Detect(html string, pageURL string) symdex.Site {
	begin := time.Now()
	site := d.next.Detect(html, pageURL)
	generator := string(site.Generator)
	if site.Generator == symdex.GeneratorUnknown {
		generator = "(unknown)"
	}
	d.logger.Info("site detection",
		"url", pageURL,
		"generator", generator,
		"version", site.Version,
		"search", site.SearchURL,
		"duration", time.Since(begin),
	)
	return site
}
