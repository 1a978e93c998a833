package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"github.com/oklog/ulid/v2"
	"github.com/viralgrowth/viralgrowth/internal/model"
)

// Common errors for strategy record operations.
var (
	ErrRecordNotFound = errors.New("strategy record not found")
)

// InsertStrategyRecord writes one archive row for a generation. Fills the
// record's ID and timestamps when unset. Hook variations are mirrored into
// their own column for querying without unpacking the result blob.
func (r *Repository) InsertStrategyRecord(ctx context.Context, record *model.StrategyRecord) error {
	if record.ID == "" {
		record.ID = ulid.Make().String()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("encode strategy result: %w", err)
	}

	query := `
		INSERT INTO strategy_records
			(id, owner_id, history_id, content, objective, has_media, media_mime,
			 trend_context, result, hook_variations, performance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var perfJSON []byte
	if record.Performance != nil {
		perfJSON, err = json.Marshal(record.Performance)
		if err != nil {
			return fmt.Errorf("encode performance: %w", err)
		}
	}

	_, err = r.pool.Exec(ctx, query,
		record.ID,
		record.OwnerID,
		record.HistoryID,
		record.Content,
		record.Objective,
		record.HasMedia,
		record.MediaMIME,
		record.TrendContext,
		resultJSON,
		pq.Array(record.Result.Optimization.HookVariations),
		perfJSON,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert strategy record: %w", err)
	}

	return nil
}

// UpdateRecordPerformance mirrors an attached performance payload onto the
// archive row addressed by owner and history id.
func (r *Repository) UpdateRecordPerformance(ctx context.Context, ownerID, historyID string, perf model.PerformanceMetrics) error {
	perfJSON, err := json.Marshal(perf)
	if err != nil {
		return fmt.Errorf("encode performance: %w", err)
	}

	query := `
		UPDATE strategy_records
		SET performance = $3, updated_at = $4
		WHERE owner_id = $1 AND history_id = $2
	`

	result, err := r.pool.Exec(ctx, query, ownerID, historyID, perfJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update record performance: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// ListRecentRecordsByOwner returns the newest archive rows for an owner.
func (r *Repository) ListRecentRecordsByOwner(ctx context.Context, ownerID string, limit int) ([]*model.StrategyRecord, error) {
	query := `
		SELECT id, owner_id, history_id, content, objective, has_media, media_mime,
		       trend_context, result, performance, created_at, updated_at
		FROM strategy_records
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list strategy records: %w", err)
	}
	defer rows.Close()

	var records []*model.StrategyRecord
	for rows.Next() {
		record, err := scanStrategyRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan strategy record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating strategy records: %w", err)
	}

	return records, nil
}

// GetStrategyRecordByID retrieves one archive row.
func (r *Repository) GetStrategyRecordByID(ctx context.Context, id string) (*model.StrategyRecord, error) {
	query := `
		SELECT id, owner_id, history_id, content, objective, has_media, media_mime,
		       trend_context, result, performance, created_at, updated_at
		FROM strategy_records
		WHERE id = $1
	`

	record, err := scanStrategyRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get strategy record: %w", err)
	}

	return record, nil
}

func scanStrategyRecord(row pgx.Row) (*model.StrategyRecord, error) {
	var record model.StrategyRecord
	var resultJSON []byte
	var perfJSON []byte

	err := row.Scan(
		&record.ID,
		&record.OwnerID,
		&record.HistoryID,
		&record.Content,
		&record.Objective,
		&record.HasMedia,
		&record.MediaMIME,
		&record.TrendContext,
		&resultJSON,
		&perfJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(resultJSON, &record.Result); err != nil {
		return nil, fmt.Errorf("decode strategy result: %w", err)
	}
	if len(perfJSON) > 0 {
		record.Performance = &model.PerformanceMetrics{}
		if err := json.Unmarshal(perfJSON, record.Performance); err != nil {
			return nil, fmt.Errorf("decode performance: %w", err)
		}
	}

	return &record, nil
}
