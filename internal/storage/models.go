package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MikeGii/vomm-sub000/internal/engine"
)

// MainPlayerKey is the single local player the CLI operates on.
const MainPlayerKey = "main_player"

// playerRow mirrors one players table row. Nested aggregate state lives in
// JSON columns; scalar flags stay as columns for cheap querying.
type playerRow struct {
	ID         string `db:"id"`
	Version    int64  `db:"version"`
	VIP        bool   `db:"vip"`
	Working    bool   `db:"working"`
	Reputation int    `db:"reputation"`

	KitchenSize    string        `db:"kitchen_size"`
	WorkshopDevice bool          `db:"workshop_device"`
	WorkshopRate   sql.NullInt64 `db:"workshop_rate"`

	AttributesJSON       string         `db:"attributes_json"`
	QuotasJSON           string         `db:"quotas_json"`
	InventoryJSON        string         `db:"inventory_json"`
	CourseJSON           sql.NullString `db:"course_json"`
	WorkJSON             sql.NullString `db:"work_json"`
	CompletedCoursesJSON string         `db:"completed_courses_json"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *playerRow) toState() (*engine.PlayerState, error) {
	p := &engine.PlayerState{
		ID:         r.ID,
		Version:    r.Version,
		VIP:        r.VIP,
		Working:    r.Working,
		Reputation: r.Reputation,
	}
	if err := json.Unmarshal([]byte(r.AttributesJSON), &p.Attributes); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	if err := json.Unmarshal([]byte(r.QuotasJSON), &p.Quotas); err != nil {
		return nil, fmt.Errorf("decode quotas: %w", err)
	}
	if err := json.Unmarshal([]byte(r.InventoryJSON), &p.Inventory); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	if err := json.Unmarshal([]byte(r.CompletedCoursesJSON), &p.CompletedCourses); err != nil {
		return nil, fmt.Errorf("decode completed courses: %w", err)
	}
	if r.CourseJSON.Valid {
		p.Course = &engine.ActiveTimedTask{}
		if err := json.Unmarshal([]byte(r.CourseJSON.String), p.Course); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
	}
	if r.WorkJSON.Valid {
		p.Work = &engine.ActiveTimedTask{}
		if err := json.Unmarshal([]byte(r.WorkJSON.String), p.Work); err != nil {
			return nil, fmt.Errorf("decode work: %w", err)
		}
	}
	return p, nil
}

func encodeState(p *engine.PlayerState) (attrs, quotas, inv, courses string, course, work sql.NullString, err error) {
	b, err := json.Marshal(p.Attributes)
	if err != nil {
		return "", "", "", "", course, work, fmt.Errorf("encode attributes: %w", err)
	}
	attrs = string(b)

	b, err = json.Marshal(p.Quotas)
	if err != nil {
		return "", "", "", "", course, work, fmt.Errorf("encode quotas: %w", err)
	}
	quotas = string(b)

	if p.Inventory == nil {
		p.Inventory = []engine.InventoryLot{}
	}
	b, err = json.Marshal(p.Inventory)
	if err != nil {
		return "", "", "", "", course, work, fmt.Errorf("encode inventory: %w", err)
	}
	inv = string(b)

	if p.CompletedCourses == nil {
		p.CompletedCourses = []string{}
	}
	b, err = json.Marshal(p.CompletedCourses)
	if err != nil {
		return "", "", "", "", course, work, fmt.Errorf("encode completed courses: %w", err)
	}
	courses = string(b)

	if p.Course != nil {
		b, err = json.Marshal(p.Course)
		if err != nil {
			return "", "", "", "", course, work, fmt.Errorf("encode course: %w", err)
		}
		course = sql.NullString{String: string(b), Valid: true}
	}
	if p.Work != nil {
		b, err = json.Marshal(p.Work)
		if err != nil {
			return "", "", "", "", course, work, fmt.Errorf("encode work: %w", err)
		}
		work = sql.NullString{String: string(b), Valid: true}
	}
	return attrs, quotas, inv, courses, course, work, nil
}

// ProgressEntry is one row of the progress log.
type ProgressEntry struct {
	ID        int64          `db:"id"`
	PlayerID  string         `db:"player_id"`
	Kind      string         `db:"kind"`
	Amount    int            `db:"amount"`
	ItemTag   sql.NullString `db:"item_tag"`
	CreatedAt time.Time      `db:"created_at"`
}
