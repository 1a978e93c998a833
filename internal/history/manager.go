package history

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/viralgrowth/viralgrowth/internal/metrics"
	"github.com/viralgrowth/viralgrowth/internal/model"
)

// DefaultLimit is the number of sessions kept per owner.
const DefaultLimit = 5

// Manager owns the recency-ordered working set for each owner.
type Manager struct {
	store   Store
	limit   int
	logger  *slog.Logger
	metrics metrics.Recorder

	// now is swappable in tests.
	now func() time.Time
}

// NewManager creates a Manager on top of the given store. A limit of zero
// falls back to DefaultLimit.
func NewManager(store Store, limit int, logger *slog.Logger, recorder metrics.Recorder) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Manager{
		store:   store,
		limit:   limit,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// Record prepends a new session to the owner's working set, evicting the
// oldest entries beyond the cap. Media bytes are not retained; only the
// attachment's MIME type and kind survive into history.
func (m *Manager) Record(ctx context.Context, ownerID string, req model.StrategyRequest, result model.StrategyResult) (model.HistoryEntry, error) {
	entries, err := m.store.LoadHistory(ctx, ownerID)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("load history: %w", err)
	}

	ts := m.now().UnixMilli()
	id := m.uniqueID(entries, ts)

	entry := model.HistoryEntry{
		ID:        id,
		Timestamp: ts,
		Request:   stripMedia(req),
		Result:    result,
	}

	entries = append([]model.HistoryEntry{entry}, entries...)
	if len(entries) > m.limit {
		evicted := len(entries) - m.limit
		entries = entries[:m.limit]
		for i := 0; i < evicted; i++ {
			m.metrics.IncHistoryEviction()
		}
	}

	if err := m.store.SaveHistory(ctx, ownerID, entries); err != nil {
		return model.HistoryEntry{}, fmt.Errorf("save history: %w", err)
	}

	m.logger.Debug("history entry recorded", "owner_id", ownerID, "entry_id", id, "set_size", len(entries))
	return entry, nil
}

// Recent returns the owner's working set, newest first.
func (m *Manager) Recent(ctx context.Context, ownerID string) ([]model.HistoryEntry, error) {
	entries, err := m.store.LoadHistory(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return entries, nil
}

// AttachPerformance sets real-world metrics on an existing entry. Attaching
// again overwrites the previous metrics. Returns false when the entry is no
// longer in the working set; an evicted session cannot be recalibrated on.
func (m *Manager) AttachPerformance(ctx context.Context, ownerID, entryID string, perf model.PerformanceMetrics) (bool, error) {
	entries, err := m.store.LoadHistory(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("load history: %w", err)
	}

	found := false
	for i := range entries {
		if entries[i].ID == entryID {
			p := perf
			entries[i].Performance = &p
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	if err := m.store.SaveHistory(ctx, ownerID, entries); err != nil {
		return false, fmt.Errorf("save history: %w", err)
	}

	m.metrics.IncPerformanceAttached()
	m.logger.Debug("performance attached", "owner_id", ownerID, "entry_id", entryID)
	return true, nil
}

// Clear removes the owner's working set entirely.
func (m *Manager) Clear(ctx context.Context, ownerID string) error {
	if err := m.store.ClearHistory(ctx, ownerID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	m.logger.Debug("history cleared", "owner_id", ownerID)
	return nil
}

// uniqueID derives a millisecond-timestamp id, bumping forward past any
// id already present so two sessions in the same millisecond stay distinct.
func (m *Manager) uniqueID(entries []model.HistoryEntry, ts int64) string {
	taken := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		taken[e.ID] = struct{}{}
	}
	for {
		id := strconv.FormatInt(ts, 10)
		if _, exists := taken[id]; !exists {
			return id
		}
		ts++
	}
}

func stripMedia(req model.StrategyRequest) model.StrategyRequest {
	if req.Media == nil {
		return req
	}
	media := *req.Media
	media.Data = nil
	req.Media = &media
	return req
}
