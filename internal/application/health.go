package application

import (
	"context"

	"github.com/jobrunner/nimbus/internal/ports/input"
)

// HealthService provides health check functionality. The pipeline is
// stateless, so readiness does not depend on any warm-up.
type HealthService struct {
	backend string
}

// NewHealthService creates a new health service.
func NewHealthService(backend string) *HealthService {
	return &HealthService{backend: backend}
}

// IsHealthy returns true if the service is healthy.
func (s *HealthService) IsHealthy(_ context.Context) bool {
	return true
}

// IsReady returns true if the service is ready to accept requests.
func (s *HealthService) IsReady(_ context.Context) bool {
	return true
}

// GetHealthDetails returns detailed health information.
func (s *HealthService) GetHealthDetails(ctx context.Context) input.HealthDetails {
	return input.HealthDetails{
		Healthy: s.IsHealthy(ctx),
		Ready:   s.IsReady(ctx),
		Components: map[string]string{
			"archive": s.backend,
		},
	}
}
