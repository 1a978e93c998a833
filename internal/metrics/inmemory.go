package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	StrategiesGenerated   map[string]uint64
	TrendLookups          map[string]uint64
	GenerationCount       uint64
	GenerationTotalNs     int64
	Validations           map[string]uint64
	AssetsGenerated       map[string]uint64
	VideoPollChecksTotal  uint64
	HistoryEvictions      uint64
	PerformanceAttachments uint64
}

// InMemoryRecorder stores metrics in memory for tests and the snapshot endpoint.
type InMemoryRecorder struct {
	mu                  sync.Mutex
	strategiesGenerated map[string]uint64
	trendLookups        map[string]uint64
	validations         map[string]uint64
	assetsGenerated     map[string]uint64

	generationCount        uint64
	generationTotalNs      int64
	videoPollChecksTotal   uint64
	historyEvictions       uint64
	performanceAttachments uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		strategiesGenerated: make(map[string]uint64),
		trendLookups:        make(map[string]uint64),
		validations:         make(map[string]uint64),
		assetsGenerated:     make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		StrategiesGenerated:    copyCounts(m.strategiesGenerated),
		TrendLookups:           copyCounts(m.trendLookups),
		Validations:            copyCounts(m.validations),
		AssetsGenerated:        copyCounts(m.assetsGenerated),
		GenerationCount:        atomic.LoadUint64(&m.generationCount),
		GenerationTotalNs:      atomic.LoadInt64(&m.generationTotalNs),
		VideoPollChecksTotal:   atomic.LoadUint64(&m.videoPollChecksTotal),
		HistoryEvictions:       atomic.LoadUint64(&m.historyEvictions),
		PerformanceAttachments: atomic.LoadUint64(&m.performanceAttachments),
	}
}

// IncStrategyGenerated increments the per-status generation counter.
func (m *InMemoryRecorder) IncStrategyGenerated(status string) {
	m.incMap(m.strategiesGenerated, status)
}

// IncTrendLookup increments the per-status trend lookup counter.
func (m *InMemoryRecorder) IncTrendLookup(status string) {
	m.incMap(m.trendLookups, status)
}

// ObserveGenerationDuration records a strategy generation duration.
func (m *InMemoryRecorder) ObserveGenerationDuration(duration time.Duration) {
	atomic.AddUint64(&m.generationCount, 1)
	atomic.AddInt64(&m.generationTotalNs, duration.Nanoseconds())
}

// IncValidation increments the per-kind/status validation counter.
func (m *InMemoryRecorder) IncValidation(kind, status string) {
	m.incMap(m.validations, kind+":"+status)
}

// IncAssetGenerated increments the per-kind/status asset counter.
func (m *InMemoryRecorder) IncAssetGenerated(kind, status string) {
	m.incMap(m.assetsGenerated, kind+":"+status)
}

// ObserveVideoPollChecks adds the number of status checks a video job took.
func (m *InMemoryRecorder) ObserveVideoPollChecks(checks int) {
	if checks > 0 {
		atomic.AddUint64(&m.videoPollChecksTotal, uint64(checks))
	}
}

// IncHistoryEviction increments the eviction counter.
func (m *InMemoryRecorder) IncHistoryEviction() {
	atomic.AddUint64(&m.historyEvictions, 1)
}

// IncPerformanceAttached increments the performance attachment counter.
func (m *InMemoryRecorder) IncPerformanceAttached() {
	atomic.AddUint64(&m.performanceAttachments, 1)
}

func (m *InMemoryRecorder) incMap(counts map[string]uint64, key string) {
	m.mu.Lock()
	counts[key]++
	m.mu.Unlock()
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
