package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/timetable"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TimetableRepo struct {
	base
}

func NewTimetableRepo(pool *pgxpool.Pool, prom *observability.Prom) *TimetableRepo {
	return &TimetableRepo{base{pool: pool, prom: prom}}
}

func scanRow(row pgx.Row) (timetable.Row, error) {
	var t timetable.Row
	var slots []byte

	if err := row.Scan(&t.ID, &t.Role, &t.Day, &slots, &t.UpdatedAt); err != nil {
		return timetable.Row{}, err
	}
	if err := json.Unmarshal(slots, &t.Slots); err != nil {
		return timetable.Row{}, fmt.Errorf("decode slots for %s/%s: %w", t.Role, t.Day, err)
	}
	if t.Slots == nil {
		t.Slots = []timetable.Slot{}
	}
	return t, nil
}

// ListByRole returns the role's rows ordered Monday..Sunday.
func (r *TimetableRepo) ListByRole(ctx context.Context, role timetable.Role) ([]timetable.Row, error) {
	var out []timetable.Row
	err := r.observe("timetable.list_by_role", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, role, day, slots, updated_at FROM timetable WHERE role = $1`, string(role))
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]timetable.Row, 0)
		for rows.Next() {
			t, err := scanRow(rows)
			if err != nil {
				return err
			}
			out = append(out, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	timetable.SortRows(out)
	return out, nil
}

// Upsert replaces the slots of (role, day), creating the row if needed.
func (r *TimetableRepo) Upsert(ctx context.Context, role timetable.Role, day string, slots []timetable.Slot) (timetable.Row, error) {
	if slots == nil {
		slots = []timetable.Slot{}
	}
	b, err := json.Marshal(slots)
	if err != nil {
		return timetable.Row{}, err
	}

	var t timetable.Row
	err = r.observe("timetable.upsert", func() error {
		var err error
		t, err = scanRow(r.pool.QueryRow(ctx, `
			INSERT INTO timetable (id, role, day, slots, updated_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (role, day) DO UPDATE
			SET slots = EXCLUDED.slots, updated_at = NOW()
			RETURNING id, role, day, slots, updated_at`,
			uuid.NewString(), string(role), day, b,
		))
		return err
	})
	return t, err
}
