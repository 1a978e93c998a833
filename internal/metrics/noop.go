package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncStrategyGenerated is a no-op.
func (n *NoopRecorder) IncStrategyGenerated(status string) {}

// IncTrendLookup is a no-op.
func (n *NoopRecorder) IncTrendLookup(status string) {}

// ObserveGenerationDuration is a no-op.
func (n *NoopRecorder) ObserveGenerationDuration(duration time.Duration) {}

// IncValidation is a no-op.
func (n *NoopRecorder) IncValidation(kind, status string) {}

// IncAssetGenerated is a no-op.
func (n *NoopRecorder) IncAssetGenerated(kind, status string) {}

// ObserveVideoPollChecks is a no-op.
func (n *NoopRecorder) ObserveVideoPollChecks(checks int) {}

// IncHistoryEviction is a no-op.
func (n *NoopRecorder) IncHistoryEviction() {}

// IncPerformanceAttached is a no-op.
func (n *NoopRecorder) IncPerformanceAttached() {}
