// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Strategy generation metrics
	IncStrategyGenerated(status string) // status: "success", "rejected", "failed"
	IncTrendLookup(status string)       // status: "success", "fallback"
	ObserveGenerationDuration(duration time.Duration)

	// Content validation metrics
	IncValidation(kind, status string) // kind: text/image/video/audio

	// Asset generation metrics
	IncAssetGenerated(kind, status string) // kind: "thumbnail", "video", "audio"
	ObserveVideoPollChecks(checks int)

	// History working-set metrics
	IncHistoryEviction()
	IncPerformanceAttached()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
