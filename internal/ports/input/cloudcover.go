// Package input defines the primary/driving ports of the application.
package input

import (
	"context"

	"github.com/jobrunner/nimbus/internal/domain"
)

// CloudCoverService defines the primary port for cloud cover estimation.
type CloudCoverService interface {
	// CloudCover locates the newest scan for the current hour, downloads
	// it, and derives the cloud fraction. The downloaded artifact is
	// removed before returning, on every path.
	CloudCover(ctx context.Context) (*domain.CloudFractionResult, error)

	// RenderPlot runs the same pipeline but renders the requested plot as
	// a PNG instead of returning the scalar result.
	RenderPlot(ctx context.Context, kind PlotKind) ([]byte, error)
}

// PlotKind selects what RenderPlot draws.
type PlotKind string

const (
	// PlotBand renders the raw IR band as grayscale.
	PlotBand PlotKind = "band"
	// PlotMask renders the derived cloud mask.
	PlotMask PlotKind = "mask"
)

// HealthChecker defines the primary port for health checks.
type HealthChecker interface {
	// IsHealthy returns true if the service is healthy.
	IsHealthy(ctx context.Context) bool

	// IsReady returns true if the service is ready to accept requests.
	IsReady(ctx context.Context) bool

	// GetHealthDetails returns detailed health information.
	GetHealthDetails(ctx context.Context) HealthDetails
}

// HealthDetails contains detailed health information.
type HealthDetails struct {
	Healthy    bool              // Overall health status
	Ready      bool              // Ready to accept requests
	Components map[string]string // Component statuses
}
