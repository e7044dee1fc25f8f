package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/attendance"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/fee"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/mark"
)

// inStudents applies the nil-means-everyone rule of student filters.
func inStudents(ids []string, id string) bool {
	return ids == nil || slices.Contains(ids, id)
}

type MarksRepo struct{ s *Store }

func (r *MarksRepo) List(_ context.Context, f mark.ListFilter) ([]mark.Mark, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]mark.Mark, 0)
	for _, m := range r.s.marks {
		if inStudents(f.StudentIDs, m.StudentID) {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b mark.Mark) int {
		return cmp.Or(cmp.Compare(a.StudentID, b.StudentID), cmp.Compare(a.Subject, b.Subject))
	})
	return out, nil
}

func (r *MarksRepo) GetByID(_ context.Context, id string) (mark.Mark, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.marks[id]
	if !ok {
		return mark.Mark{}, mark.ErrNotFound
	}
	return m, nil
}

func (r *MarksRepo) Create(_ context.Context, m mark.Mark) error {
	r.s.mu.Lock()
	r.s.marks[m.ID] = m
	r.s.mu.Unlock()
	return nil
}

func (r *MarksRepo) Update(_ context.Context, m mark.Mark) (mark.Mark, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.marks[m.ID]
	if !ok {
		return mark.Mark{}, mark.ErrNotFound
	}
	cur.Internal1, cur.Internal2, cur.Assignment = m.Internal1, m.Internal2, m.Assignment
	cur.Recalculate()
	cur.UpdatedAt = time.Now().UTC()
	r.s.marks[cur.ID] = cur
	return cur, nil
}

type AttendanceRepo struct{ s *Store }

func (r *AttendanceRepo) List(_ context.Context, f attendance.ListFilter) ([]attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]attendance.Record, 0)
	for _, a := range r.s.attendance {
		if !inStudents(f.StudentIDs, a.StudentID) {
			continue
		}
		if f.Date != nil && a.Date != *f.Date {
			continue
		}
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b attendance.Record) int {
		return cmp.Or(
			cmp.Compare(b.Date, a.Date),
			b.CreatedAt.Compare(a.CreatedAt),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return out, nil
}

func (r *AttendanceRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.attendance[id]
	if !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	return a, nil
}

func (r *AttendanceRepo) Create(_ context.Context, a attendance.Record) error {
	r.s.mu.Lock()
	r.s.attendance[a.ID] = a
	r.s.mu.Unlock()
	return nil
}

func (r *AttendanceRepo) UpdateStatus(_ context.Context, id string, status attendance.Status) (attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attendance[id]
	if !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	a.Status = status
	r.s.attendance[id] = a
	return a, nil
}

type FeesRepo struct{ s *Store }

func (r *FeesRepo) List(_ context.Context, f fee.ListFilter) ([]fee.Fee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]fee.Fee, 0)
	for _, it := range r.s.fees {
		if f.AccountID != nil && it.AccountID != *f.AccountID {
			continue
		}
		if f.Status != nil && it.Status != *f.Status {
			continue
		}
		out = append(out, it)
	}
	slices.SortFunc(out, func(a, b fee.Fee) int {
		return cmp.Or(cmp.Compare(a.DueDate, b.DueDate), cmp.Compare(a.ExternalID, b.ExternalID))
	})
	return out, nil
}

func (r *FeesRepo) Pay(_ context.Context, id, accountID string) (fee.Fee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := byRef(r.s.fees, id, func(f fee.Fee) string { return f.ExternalID })
	if !ok || f.AccountID != accountID {
		return fee.Fee{}, fee.ErrNotFound
	}
	if f.Status == fee.StatusPaid {
		return f, nil
	}

	now := time.Now().UTC()
	f.Status = fee.StatusPaid
	f.PaidAt = &now
	r.s.fees[f.ID] = f
	return f, nil
}
