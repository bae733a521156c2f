// Package slog provides logging decorators for portadoc services.
package slog

import (
	"log/slog"
	"time"

	"github.com/awrzos/portadoc"
)

// Ensure LoggingRegionExtractor implements portadoc.RegionExtractor.
var _ portadoc.RegionExtractor = (*LoggingRegionExtractor)(nil)

// LoggingRegionExtractor wraps a RegionExtractor with logging of the
// strategy that matched.
type LoggingRegionExtractor struct {
	next   portadoc.RegionExtractor
	logger *slog.Logger
}

// NewLoggingRegionExtractor creates a new LoggingRegionExtractor.
func NewLoggingRegionExtractor(next portadoc.RegionExtractor, logger *slog.Logger) *LoggingRegionExtractor {
	return &LoggingRegionExtractor{next: next, logger: logger}
}

// ExtractRegion delegates to the wrapped extractor and logs the operation.
func (e *LoggingRegionExtractor) ExtractRegion(fullHTML string) (region *portadoc.Region, err error) {
	defer func(begin time.Time) {
		strategy := "(none)"
		size := 0
		if region != nil {
			strategy = region.Strategy
			size = len(region.HTML)
		}
		e.logger.Info("region extraction",
			"strategy", strategy,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractRegion(fullHTML)
}
