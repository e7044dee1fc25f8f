package memory

import (
	"context"
	"slices"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/timetable"
	"github.com/google/uuid"
)

type TimetableRepo struct{ s *Store }

func timetableKey(role timetable.Role, day string) string { return string(role) + "/" + day }

func (r *TimetableRepo) ListByRole(_ context.Context, role timetable.Role) ([]timetable.Row, error) {
	r.s.mu.RLock()
	out := make([]timetable.Row, 0)
	for _, row := range r.s.timetable {
		if row.Role == role {
			row.Slots = slices.Clone(row.Slots)
			out = append(out, row)
		}
	}
	r.s.mu.RUnlock()

	timetable.SortRows(out)
	return out, nil
}

func (r *TimetableRepo) Upsert(_ context.Context, role timetable.Role, day string, slots []timetable.Slot) (timetable.Row, error) {
	if slots == nil {
		slots = []timetable.Slot{}
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := timetableKey(role, day)
	row, ok := r.s.timetable[key]
	if !ok {
		row = timetable.Row{ID: uuid.NewString(), Role: role, Day: day}
	}
	row.Slots = slices.Clone(slots)
	row.UpdatedAt = time.Now().UTC()
	r.s.timetable[key] = row

	return row, nil
}
