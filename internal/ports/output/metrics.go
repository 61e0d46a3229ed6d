package output

import "time"

// MetricsCollector defines the secondary port for metrics collection.
type MetricsCollector interface {
	// IncDiscovery increments the archive discovery counter.
	IncDiscovery(success bool)

	// ObserveDiscoveryDuration records archive listing duration.
	ObserveDiscoveryDuration(duration time.Duration)

	// IncFetch increments the scan download counter.
	IncFetch(success bool)

	// ObserveFetchDuration records scan download duration.
	ObserveFetchDuration(duration time.Duration)

	// IncClassification increments the classification counter per branch.
	IncClassification(daytime bool)

	// SetCloudFraction records the most recently derived cloud fraction.
	SetCloudFraction(percent float64)
}

// NoOpMetrics is a no-op implementation of MetricsCollector.
type NoOpMetrics struct{}

// IncDiscovery implements MetricsCollector.
func (n *NoOpMetrics) IncDiscovery(_ bool) {}

// ObserveDiscoveryDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveDiscoveryDuration(_ time.Duration) {}

// IncFetch implements MetricsCollector.
func (n *NoOpMetrics) IncFetch(_ bool) {}

// ObserveFetchDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveFetchDuration(_ time.Duration) {}

// IncClassification implements MetricsCollector.
func (n *NoOpMetrics) IncClassification(_ bool) {}

// SetCloudFraction implements MetricsCollector.
func (n *NoOpMetrics) SetCloudFraction(_ float64) {}
