// Package application implements the use cases of the cloud cover service.
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobrunner/nimbus/internal/domain"
	"github.com/jobrunner/nimbus/internal/ports/output"
)

// Locator discovers the newest archived scan for the current hour.
type Locator struct {
	lister  output.ArchiveLister
	metrics output.MetricsCollector
	logger  *slog.Logger
}

// NewLocator creates a new scan locator.
func NewLocator(lister output.ArchiveLister, metrics output.MetricsCollector, logger *slog.Logger) *Locator {
	return &Locator{
		lister:  lister,
		metrics: metrics,
		logger:  logger,
	}
}

// FindLatest lists the archive partition for the instant `now` and returns
// the newest scan under it. "Newest" is the lexicographically maximal key,
// which relies on the archive's filename convention embedding a
// monotonically increasing timestamp; it is a heuristic, not a guaranteed
// ordering.
//
// An empty partition and an unreachable archive both surface as
// ErrNoRecentScan; there is no fallback to the previous hour.
func (l *Locator) FindLatest(ctx context.Context, product, satellite string, now time.Time) (*domain.ScanReference, error) {
	prefix := domain.PartitionKeyAt(now).Prefix(satellite, product)

	start := time.Now()
	keys, err := l.lister.List(ctx, prefix)
	l.metrics.ObserveDiscoveryDuration(time.Since(start))

	if err != nil {
		l.metrics.IncDiscovery(false)
		l.logger.Warn("archive listing failed", "prefix", prefix, "error", err)
		return nil, &domain.ArchiveError{Prefix: prefix, Err: err}
	}
	if len(keys) == 0 {
		l.metrics.IncDiscovery(false)
		return nil, &domain.ArchiveError{Prefix: prefix}
	}

	latest := keys[0]
	for _, k := range keys[1:] {
		if k > latest {
			latest = k
		}
	}

	l.metrics.IncDiscovery(true)
	l.logger.Debug("latest scan located", "prefix", prefix, "key", latest, "count", len(keys))

	return &domain.ScanReference{
		Satellite: satellite,
		Product:   product,
		Path:      latest,
	}, nil
}
