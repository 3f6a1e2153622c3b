package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/webcat"
)

// Ensure LoggingExtractor implements webcat.Extractor.
var _ webcat.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   webcat.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next webcat.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs how much content it kept.
func (e *LoggingExtractor) Extract(html string) (result *webcat.ExtractResult, err error) {
	defer func(begin time.Time) {
		kept := 0
		if result != nil {
			kept = len(result.ContentHTML)
		}
		e.logger.Debug("extract",
			"input_bytes", len(html),
			"content_bytes", kept,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
