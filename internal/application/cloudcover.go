package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jobrunner/nimbus/internal/domain"
	"github.com/jobrunner/nimbus/internal/ports/input"
	"github.com/jobrunner/nimbus/internal/ports/output"
)

// Renderer defines the output port for drawing plots.
type Renderer interface {
	BandPNG(g domain.Grid) ([]byte, error)
	MaskPNG(m domain.CloudMask) ([]byte, error)
}

// CloudCoverService runs the locate-fetch-load-classify pipeline. Each call
// is independent and stateless; the only owned resource is the downloaded
// artifact, which is removed before the call returns, on every path.
type CloudCoverService struct {
	locator    *Locator
	fetcher    output.ScanFetcher
	loader     output.ScanLoader
	classifier *domain.Classifier
	renderer   Renderer
	metrics    output.MetricsCollector
	clock      clockwork.Clock
	logger     *slog.Logger
	satellite  string
	product    string
}

// CloudCoverConfig holds pipeline configuration.
type CloudCoverConfig struct {
	Satellite string
	Product   string
}

// NewCloudCoverService creates the cloud cover service. The clock is
// injected so the hourly partition derived from "now" is deterministic
// under test.
func NewCloudCoverService(
	locator *Locator,
	fetcher output.ScanFetcher,
	loader output.ScanLoader,
	classifier *domain.Classifier,
	renderer Renderer,
	metrics output.MetricsCollector,
	clock clockwork.Clock,
	logger *slog.Logger,
	cfg CloudCoverConfig,
) *CloudCoverService {
	return &CloudCoverService{
		locator:    locator,
		fetcher:    fetcher,
		loader:     loader,
		classifier: classifier,
		renderer:   renderer,
		metrics:    metrics,
		clock:      clock,
		logger:     logger,
		satellite:  cfg.Satellite,
		product:    cfg.Product,
	}
}

// CloudCover locates, downloads, and classifies the newest scan for the
// current hour, returning its cloud fraction. The result's Percent is NaN
// when the scan had no valid pixels; that propagates to the caller as a
// value, not an error.
func (s *CloudCoverService) CloudCover(ctx context.Context) (*domain.CloudFractionResult, error) {
	ref, scan, err := s.latestScan(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.classifier.Classify(scan)
	if err != nil {
		return nil, fmt.Errorf("classifying %s: %w", ref.Path, err)
	}
	result.SourcePath = ref.ObjectPath()

	s.metrics.IncClassification(result.Daytime)
	if !math.IsNaN(result.Percent) {
		s.metrics.SetCloudFraction(result.Percent)
	}

	s.logger.Info("cloud cover derived",
		"source", result.SourcePath,
		"percent", result.Percent,
		"daytime", result.Daytime,
	)

	return &result, nil
}

// RenderPlot runs the same pipeline but renders the IR band or the derived
// cloud mask as a PNG.
func (s *CloudCoverService) RenderPlot(ctx context.Context, kind input.PlotKind) ([]byte, error) {
	ref, scan, err := s.latestScan(ctx)
	if err != nil {
		return nil, err
	}

	switch kind {
	case input.PlotBand:
		band, ok := scan.Band(s.classifier.IRBand())
		if !ok {
			return nil, fmt.Errorf("%s in %s: %w", s.classifier.IRBand(), ref.Path, domain.ErrBandMissing)
		}
		return s.renderer.BandPNG(band)

	case input.PlotMask:
		mask, err := s.classifier.CloudMask(scan)
		if err != nil {
			return nil, fmt.Errorf("masking %s: %w", ref.Path, err)
		}
		return s.renderer.MaskPNG(mask)

	default:
		return nil, fmt.Errorf("plot kind %q: %w", kind, domain.ErrInvalidInput)
	}
}

// latestScan locates, downloads, and decodes the newest scan. The
// downloaded artifact is removed before returning regardless of outcome;
// callers only ever see the in-memory scan.
func (s *CloudCoverService) latestScan(ctx context.Context) (*domain.ScanReference, *domain.Scan, error) {
	ref, err := s.locator.FindLatest(ctx, s.product, s.satellite, s.clock.Now())
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	artifact, err := s.fetcher.Fetch(ctx, *ref)
	s.metrics.ObserveFetchDuration(time.Since(start))
	if err != nil {
		s.metrics.IncFetch(false)
		s.logger.Warn("scan download failed", "path", ref.Path, "error", err)
		return nil, nil, err
	}
	s.metrics.IncFetch(true)

	defer func() {
		if err := artifact.Remove(); err != nil {
			s.logger.Warn("removing artifact", "path", artifact.Path, "error", err)
		}
	}()

	scan, err := s.loader.Load(artifact.Path)
	if err != nil {
		return nil, nil, err
	}
	return ref, scan, nil
}
