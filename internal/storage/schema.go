package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the schema. Statements are idempotent so every process can
// run this on startup.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			version INTEGER NOT NULL DEFAULT 0,
			vip INTEGER NOT NULL DEFAULT 0,
			working INTEGER NOT NULL DEFAULT 0,
			reputation INTEGER NOT NULL DEFAULT 0,

			kitchen_size TEXT NOT NULL DEFAULT 'none',
			workshop_device INTEGER NOT NULL DEFAULT 0,
			workshop_rate INTEGER,

			attributes_json TEXT NOT NULL DEFAULT '{}',
			quotas_json TEXT NOT NULL DEFAULT '{}',
			inventory_json TEXT NOT NULL DEFAULT '[]',
			course_json TEXT,
			work_json TEXT,
			completed_courses_json TEXT NOT NULL DEFAULT '[]',

			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Append-only sink for task/achievement progress; doubles as a local
		// training history.
		`CREATE TABLE IF NOT EXISTS progress_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			amount INTEGER NOT NULL,
			item_tag TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(player_id) REFERENCES players(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_progress_log_player_kind ON progress_log(player_id, kind);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
