package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ProgressRepo is the append-only task/achievement sink. The engine treats
// failures here as non-fatal; this repo just reports them.
type ProgressRepo struct {
	db *sqlx.DB
}

func NewProgressRepo(db *sqlx.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// RecordProgress implements engine.ProgressSink.
func (r *ProgressRepo) RecordProgress(ctx context.Context, playerID, kind string, amount int, itemTag string) error {
	var tag sql.NullString
	if itemTag != "" {
		tag = sql.NullString{String: itemTag, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO progress_log (player_id, kind, amount, item_tag, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, playerID, kind, amount, tag, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("progress insert: %w", err)
	}
	return nil
}

// SumByKind totals the recorded amounts for one progress kind.
func (r *ProgressRepo) SumByKind(ctx context.Context, playerID, kind string) (int, error) {
	var total sql.NullInt64
	err := r.db.GetContext(ctx, &total, `
		SELECT SUM(amount) FROM progress_log WHERE player_id = ? AND kind = ?
	`, playerID, kind)
	if err != nil {
		return 0, fmt.Errorf("progress sum: %w", err)
	}
	return int(total.Int64), nil
}

// Recent lists the newest entries for a player.
func (r *ProgressRepo) Recent(ctx context.Context, playerID string, limit int) ([]ProgressEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []ProgressEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, player_id, kind, amount, item_tag, created_at
		FROM progress_log
		WHERE player_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("progress recent: %w", err)
	}
	return entries, nil
}
