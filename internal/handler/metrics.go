package handler

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/viralgrowth/viralgrowth/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeStatusCounts(w, "viralgrowth_strategies_generated_total", snap.StrategiesGenerated)
	writeStatusCounts(w, "viralgrowth_trend_lookups_total", snap.TrendLookups)

	writeMetric(w, "viralgrowth_generation_duration_seconds_count %d\n", snap.GenerationCount)
	writeMetric(w, "viralgrowth_generation_duration_seconds_sum %.6f\n", float64(snap.GenerationTotalNs)/1e9)

	writeKindStatusCounts(w, "viralgrowth_validations_total", snap.Validations)
	writeKindStatusCounts(w, "viralgrowth_assets_generated_total", snap.AssetsGenerated)

	writeMetric(w, "viralgrowth_video_poll_checks_total %d\n", snap.VideoPollChecksTotal)
	writeMetric(w, "viralgrowth_history_evictions_total %d\n", snap.HistoryEvictions)
	writeMetric(w, "viralgrowth_performance_attachments_total %d\n", snap.PerformanceAttachments)
}

// writeStatusCounts emits one line per status label, in sorted order so the
// output is stable scrape to scrape.
func writeStatusCounts(w http.ResponseWriter, name string, counts map[string]uint64) {
	for _, status := range sortedKeys(counts) {
		writeMetric(w, "%s{status=%q} %d\n", name, status, counts[status])
	}
}

// writeKindStatusCounts emits one line per kind/status pair. Counter keys are
// stored as "kind:status".
func writeKindStatusCounts(w http.ResponseWriter, name string, counts map[string]uint64) {
	for _, key := range sortedKeys(counts) {
		kind, status, ok := strings.Cut(key, ":")
		if !ok {
			continue
		}
		writeMetric(w, "%s{kind=%q,status=%q} %d\n", name, kind, status, counts[key])
	}
}

func sortedKeys(counts map[string]uint64) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
