package model

import "time"

// StrategyRecord is the durable archive row written for every successful
// generation. The Redis-backed history is a small working set capped at a
// handful of entries; the archive keeps the full trail for offline analysis
// and never feeds back into prompt construction directly.
type StrategyRecord struct {
	ID           string              `json:"id"`
	OwnerID      string              `json:"owner_id"`
	HistoryID    string              `json:"history_id"`
	Content      string              `json:"content"`
	Objective    Objective           `json:"objective"`
	HasMedia     bool                `json:"has_media"`
	MediaMIME    string              `json:"media_mime,omitempty"`
	TrendContext string              `json:"trend_context,omitempty"`
	Result       StrategyResult      `json:"result"`
	Performance  *PerformanceMetrics `json:"performance,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
