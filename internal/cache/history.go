package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viralgrowth/viralgrowth/internal/model"
)

// historyKeyPrefix is the Redis key prefix for per-owner history blobs.
const historyKeyPrefix = "history:"

// LoadHistory retrieves the working-set history for an owner.
// Returns an empty slice when no history exists yet.
func (c *Cache) LoadHistory(ctx context.Context, ownerID string) ([]model.HistoryEntry, error) {
	key := historyKeyPrefix + ownerID

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if isRedisNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode history blob: %w", err)
	}
	return entries, nil
}

// SaveHistory persists the full working set for an owner as one blob.
// The set is overwritten wholesale on every mutation so a crash between
// load and save can never leave a torn state.
func (c *Cache) SaveHistory(ctx context.Context, ownerID string, entries []model.HistoryEntry) error {
	key := historyKeyPrefix + ownerID

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history blob: %w", err)
	}

	if err := c.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// ClearHistory removes the owner's working set entirely.
func (c *Cache) ClearHistory(ctx context.Context, ownerID string) error {
	key := historyKeyPrefix + ownerID
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
