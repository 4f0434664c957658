package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/MikeGii/vomm-sub000/internal/engine"
)

// ErrVersionConflict is returned when a write lost a compare-and-swap race.
// The engine does not retry; callers re-issue the whole action.
var ErrVersionConflict = errors.New("player state was modified concurrently")

// PlayerRepo stores the whole player aggregate in one row and writes it back
// atomically with a version check. It also answers the estate and workshop
// lookups from the same row.
type PlayerRepo struct {
	db *sqlx.DB
}

func NewPlayerRepo(db *sqlx.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

// Get loads a player, or nil when the row does not exist.
func (r *PlayerRepo) Get(ctx context.Context, id string) (*engine.PlayerState, error) {
	var row playerRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM players WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("player get: %w", err)
	}
	return row.toState()
}

// GetOrCreate loads a player, inserting a fresh row first when missing.
func (r *PlayerRepo) GetOrCreate(ctx context.Context, id string) (*engine.PlayerState, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO players (id) VALUES (?) ON CONFLICT(id) DO NOTHING`, id); err != nil {
		return nil, fmt.Errorf("player insert: %w", err)
	}
	p, err = r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("player %s vanished after insert", id)
	}
	return p, nil
}

// Write persists the whole aggregate as one UPDATE guarded by the version the
// state was read at. On success the in-memory version advances too.
func (r *PlayerRepo) Write(ctx context.Context, p *engine.PlayerState) error {
	attrs, quotas, inv, courses, course, work, err := encodeState(p)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE players
		SET version = version + 1,
		    vip = ?, working = ?, reputation = ?,
		    attributes_json = ?, quotas_json = ?, inventory_json = ?,
		    course_json = ?, work_json = ?, completed_courses_json = ?,
		    updated_at = ?
		WHERE id = ? AND version = ?
	`, p.VIP, p.Working, p.Reputation,
		attrs, quotas, inv,
		course, work, courses,
		time.Now().UTC(), p.ID, p.Version)
	if err != nil {
		return fmt.Errorf("player write: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("player write result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("player write %s: %w", p.ID, ErrVersionConflict)
	}
	p.Version++
	return nil
}

// SetFlags patches the VIP/working columns; a nil pointer leaves its column
// untouched, so setting one flag never resets the other.
func (r *PlayerRepo) SetFlags(ctx context.Context, id string, vip, working *bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE players
		SET vip = COALESCE(?, vip), working = COALESCE(?, working), version = version + 1
		WHERE id = ?
	`, nullBool(vip), nullBool(working), id)
	if err != nil {
		return fmt.Errorf("player set flags: %w", err)
	}
	return nil
}

// SetEstate patches the kitchen and workshop columns the lookups read; nil
// pointers leave their columns untouched.
func (r *PlayerRepo) SetEstate(ctx context.Context, id string, kitchen *engine.KitchenSize, device *bool, rate *int) error {
	var kitchenVal sql.NullString
	if kitchen != nil {
		kitchenVal = sql.NullString{String: string(*kitchen), Valid: true}
	}
	var rateVal sql.NullInt64
	if rate != nil {
		rateVal = sql.NullInt64{Int64: int64(*rate), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE players
		SET kitchen_size = COALESCE(?, kitchen_size),
		    workshop_device = COALESCE(?, workshop_device),
		    workshop_rate = COALESCE(?, workshop_rate)
		WHERE id = ?
	`, kitchenVal, nullBool(device), rateVal, id)
	if err != nil {
		return fmt.Errorf("player set estate: %w", err)
	}
	return nil
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

// Delete removes a player row together with its progress log, in one
// transaction so a partial wipe never survives.
func (r *PlayerRepo) Delete(ctx context.Context, id string) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM progress_log WHERE player_id = ?`, id); err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete player: %w", err)
		}
		return nil
	})
}

// KitchenSize implements engine.KitchenLookup from the players row.
func (r *PlayerRepo) KitchenSize(ctx context.Context, playerID string) (engine.KitchenSize, error) {
	var size string
	err := r.db.GetContext(ctx, &size, `SELECT kitchen_size FROM players WHERE id = ?`, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.KitchenNone, nil
	}
	if err != nil {
		return engine.KitchenNone, fmt.Errorf("kitchen size: %w", err)
	}
	k := engine.KitchenSize(size)
	if !k.IsValid() {
		return engine.KitchenNone, nil
	}
	return k, nil
}

// SuccessRate implements engine.WorkshopOracle from the players row: no
// device always succeeds, a device with no reported rate succeeds half the
// time.
func (r *PlayerRepo) SuccessRate(ctx context.Context, playerID, recipeKind string) (int, error) {
	var row struct {
		Device bool          `db:"workshop_device"`
		Rate   sql.NullInt64 `db:"workshop_rate"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT workshop_device, workshop_rate FROM players WHERE id = ?`, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.NoDeviceSuccessRate, nil
	}
	if err != nil {
		return 0, fmt.Errorf("workshop rate: %w", err)
	}
	if !row.Device {
		return engine.NoDeviceSuccessRate, nil
	}
	if !row.Rate.Valid {
		return engine.DeviceFallbackRate, nil
	}
	return int(row.Rate.Int64), nil
}
