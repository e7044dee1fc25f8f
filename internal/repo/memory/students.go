package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/student"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/teacher"
)

type StudentsRepo struct{ s *Store }

func studentExt(s student.Student) string { return s.ExternalID }

func (r *StudentsRepo) List(_ context.Context, f student.ListFilter) ([]student.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]student.Student, 0, len(r.s.students))
	for _, s := range r.s.students {
		if f.Department != nil && s.Department != *f.Department {
			continue
		}
		out = append(out, s)
	}

	slices.SortFunc(out, func(a, b student.Student) int { return cmp.Compare(a.ExternalID, b.ExternalID) })
	return out, nil
}

func (r *StudentsRepo) GetByID(_ context.Context, id string) (student.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	s, ok := byRef(r.s.students, id, studentExt)
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	return s, nil
}

func (r *StudentsRepo) Update(_ context.Context, id string, req student.UpdateRequest) (student.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	s, ok := byRef(r.s.students, id, studentExt)
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	s.Apply(req)
	r.s.students[s.ID] = s
	return s, nil
}

func (r *StudentsRepo) IDsOwnedBy(_ context.Context, accountID string) ([]string, error) {
	return r.ids(func(s student.Student) *string { return s.AccountID }, accountID), nil
}

func (r *StudentsRepo) IDsGuardedBy(_ context.Context, accountID string) ([]string, error) {
	return r.ids(func(s student.Student) *string { return s.GuardianAccountID }, accountID), nil
}

func (r *StudentsRepo) ids(link func(student.Student) *string, accountID string) []string {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []student.Student
	for _, s := range r.s.students {
		if p := link(s); p != nil && *p == accountID {
			matched = append(matched, s)
		}
	}
	slices.SortFunc(matched, func(a, b student.Student) int { return cmp.Compare(a.ExternalID, b.ExternalID) })

	ids := make([]string, 0, len(matched))
	for _, s := range matched {
		ids = append(ids, s.ID)
	}
	return ids
}

type TeachersRepo struct{ s *Store }

func (r *TeachersRepo) List(_ context.Context) ([]teacher.Teacher, error) {
	r.s.mu.RLock()
	out := values(r.s.teachers)
	r.s.mu.RUnlock()

	slices.SortFunc(out, func(a, b teacher.Teacher) int { return cmp.Compare(a.ExternalID, b.ExternalID) })
	return out, nil
}

func (r *TeachersRepo) GetByID(_ context.Context, id string) (teacher.Teacher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := byRef(r.s.teachers, id, func(t teacher.Teacher) string { return t.ExternalID })
	if !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	return t, nil
}

func (r *TeachersRepo) GetByAccountID(ctx context.Context, accountID string) (teacher.Teacher, error) {
	all, _ := r.List(ctx)
	for _, t := range all {
		if t.AccountID != nil && *t.AccountID == accountID {
			return t, nil
		}
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}
