package model

// PerformanceMetrics records the real-world outcome of a published post.
// All counters are non-negative; zero values mean "not reported".
type PerformanceMetrics struct {
	Reach    int64 `json:"reach"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
	Saves    int64 `json:"saves"`
}

// IsValid reports whether every counter is non-negative.
func (p PerformanceMetrics) IsValid() bool {
	for _, v := range []int64{p.Reach, p.Likes, p.Comments, p.Shares, p.Saves} {
		if v < 0 {
			return false
		}
	}
	return true
}

// HistoryEntry is one persisted interaction: the request that was made,
// the strategy it produced, and (later) how the published post performed.
// The ID is time-derived (Unix milliseconds, decimal) and stable for the
// entry's lifetime; performance updates target entries by ID only.
type HistoryEntry struct {
	ID          string              `json:"id"`
	Timestamp   int64               `json:"timestamp"` // Unix milliseconds
	Request     StrategyRequest     `json:"request"`
	Result      StrategyResult      `json:"result"`
	Performance *PerformanceMetrics `json:"performance,omitempty"`
}

// HasPerformance reports whether real-world metrics have been attached.
func (e *HistoryEntry) HasPerformance() bool {
	return e.Performance != nil
}
