// Package memory is an in-process implementation of every store. It backs
// STORE=memory for local runs and the end-to-end tests.
package memory

import (
	"context"
	"sync"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/account"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/announcement"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/attendance"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/club"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/event"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/fee"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/job"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/mark"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/notification"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/request"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/student"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/teacher"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/timetable"
)

type Store struct {
	mu sync.RWMutex

	accounts      map[string]account.Account
	students      map[string]student.Student
	teachers      map[string]teacher.Teacher
	marks         map[string]mark.Mark
	attendance    map[string]attendance.Record
	fees          map[string]fee.Fee
	events        map[string]event.Event
	clubs         map[string]club.Club
	announcements map[string]announcement.Announcement
	requests      map[string]request.Request
	notifications map[string]notification.Notification
	timetable     map[string]timetable.Row // key: role/day
	jobs          map[string]job.Job
}

func New() *Store {
	return &Store{
		accounts:      make(map[string]account.Account),
		students:      make(map[string]student.Student),
		teachers:      make(map[string]teacher.Teacher),
		marks:         make(map[string]mark.Mark),
		attendance:    make(map[string]attendance.Record),
		fees:          make(map[string]fee.Fee),
		events:        make(map[string]event.Event),
		clubs:         make(map[string]club.Club),
		announcements: make(map[string]announcement.Announcement),
		requests:      make(map[string]request.Request),
		notifications: make(map[string]notification.Notification),
		timetable:     make(map[string]timetable.Row),
		jobs:          make(map[string]job.Job),
	}
}

// Ping always succeeds; it lets the store stand in for a database in
// readiness checks.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Accounts() *AccountsRepo           { return &AccountsRepo{s: s} }
func (s *Store) Students() *StudentsRepo           { return &StudentsRepo{s: s} }
func (s *Store) Teachers() *TeachersRepo           { return &TeachersRepo{s: s} }
func (s *Store) Marks() *MarksRepo                 { return &MarksRepo{s: s} }
func (s *Store) Attendance() *AttendanceRepo       { return &AttendanceRepo{s: s} }
func (s *Store) Fees() *FeesRepo                   { return &FeesRepo{s: s} }
func (s *Store) Events() *EventsRepo               { return &EventsRepo{s: s} }
func (s *Store) Clubs() *ClubsRepo                 { return &ClubsRepo{s: s} }
func (s *Store) Announcements() *AnnouncementsRepo { return &AnnouncementsRepo{s: s} }
func (s *Store) Requests() *RequestsRepo           { return &RequestsRepo{s: s} }
func (s *Store) Notifications() *NotificationsRepo { return &NotificationsRepo{s: s} }
func (s *Store) Timetable() *TimetableRepo         { return &TimetableRepo{s: s} }
func (s *Store) Jobs() *JobsRepo                   { return &JobsRepo{s: s} }

// byRef finds a row by durable id or display id.
func byRef[T any](m map[string]T, ref string, external func(T) string) (T, bool) {
	if v, ok := m[ref]; ok {
		return v, true
	}
	for _, v := range m {
		if external(v) == ref {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func values[T any](m map[string]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
