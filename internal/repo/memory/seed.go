package memory

import (
	"context"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/account"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/seed"
)

func (s *Store) UpsertAccount(_ context.Context, a account.Account) (string, error) {
	a.Email = account.NormalizeEmail(a.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Email == a.Email {
			return existing.ID, nil
		}
	}
	s.accounts[a.ID] = a
	return a.ID, nil
}

// Load inserts every row whose id is not already present.
func (s *Store) Load(_ context.Context, d seed.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range d.Students {
		putNew(s.students, v.ID, v)
	}
	for _, v := range d.Teachers {
		putNew(s.teachers, v.ID, v)
	}
	for _, v := range d.Marks {
		putNew(s.marks, v.ID, v)
	}
	for _, v := range d.Attendance {
		putNew(s.attendance, v.ID, v)
	}
	for _, v := range d.Fees {
		putNew(s.fees, v.ID, v)
	}
	for _, v := range d.Events {
		putNew(s.events, v.ID, v)
	}
	for _, v := range d.Clubs {
		putNew(s.clubs, v.ID, v)
	}
	for _, v := range d.Announcements {
		putNew(s.announcements, v.ID, v)
	}
	for _, v := range d.Requests {
		putNew(s.requests, v.ID, v)
	}
	for _, v := range d.Notifications {
		putNew(s.notifications, v.ID, v)
	}
	for _, v := range d.Timetable {
		putNew(s.timetable, timetableKey(v.Role, v.Day), v)
	}
	return nil
}

func putNew[T any](m map[string]T, key string, v T) {
	if _, ok := m[key]; !ok {
		m[key] = v
	}
}
