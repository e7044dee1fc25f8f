package http

import (
	"context"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/handlers"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/jobs"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/repo/memory"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/repo/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentsRepo interface {
	handlers.StudentsStore
	middlewares.StudentLinks
}

// Stores is everything the router reads and writes. Both backends fill it.
type Stores struct {
	Accounts      handlers.AccountReader
	Students      StudentsRepo
	Teachers      handlers.TeachersReader
	Marks         handlers.MarksStore
	Attendance    handlers.AttendanceStore
	Fees          handlers.FeesStore
	Events        handlers.EventsStore
	Clubs         handlers.ClubsStore
	Announcements handlers.AnnouncementsStore
	Requests      handlers.RequestsStore
	Notifications handlers.NotificationsStore
	Timetable     handlers.TimetableStore
	Jobs          jobs.Creator

	Ping func(ctx context.Context) error
}

func MemoryStores(s *memory.Store) Stores {
	return Stores{
		Accounts:      s.Accounts(),
		Students:      s.Students(),
		Teachers:      s.Teachers(),
		Marks:         s.Marks(),
		Attendance:    s.Attendance(),
		Fees:          s.Fees(),
		Events:        s.Events(),
		Clubs:         s.Clubs(),
		Announcements: s.Announcements(),
		Requests:      s.Requests(),
		Notifications: s.Notifications(),
		Timetable:     s.Timetable(),
		Jobs:          s.Jobs(),
		Ping:          s.Ping,
	}
}

func PostgresStores(pool *pgxpool.Pool, prom *observability.Prom) Stores {
	return Stores{
		Accounts:      postgres.NewAccountsRepo(pool, prom),
		Students:      postgres.NewStudentsRepo(pool, prom),
		Teachers:      postgres.NewTeachersRepo(pool, prom),
		Marks:         postgres.NewMarksRepo(pool, prom),
		Attendance:    postgres.NewAttendanceRepo(pool, prom),
		Fees:          postgres.NewFeesRepo(pool, prom),
		Events:        postgres.NewEventsRepo(pool, prom),
		Clubs:         postgres.NewClubsRepo(pool, prom),
		Announcements: postgres.NewAnnouncementsRepo(pool, prom),
		Requests:      postgres.NewRequestsRepo(pool, prom),
		Notifications: postgres.NewNotificationsRepo(pool, prom),
		Timetable:     postgres.NewTimetableRepo(pool, prom),
		Jobs:          postgres.NewJobsRepo(pool, prom),
		Ping:          pool.Ping,
	}
}
