package postgres

import (
	"context"
	"encoding/json"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/account"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/seed"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seeder writes seed datasets; every insert ignores rows that already
// exist, so a restart never overwrites live edits.
type Seeder struct {
	pool *pgxpool.Pool
}

func NewSeeder(pool *pgxpool.Pool) *Seeder {
	return &Seeder{pool: pool}
}

func (s *Seeder) UpsertAccount(ctx context.Context, a account.Account) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO accounts (`+accountColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (email) DO NOTHING
			RETURNING id
		)
		SELECT id FROM ins
		UNION ALL
		SELECT id FROM accounts WHERE email = $2
		LIMIT 1`,
		a.ID, account.NormalizeEmail(a.Email), a.PasswordHash, string(a.Role), a.CreatedAt, a.UpdatedAt,
	).Scan(&id)
	return id, err
}

func (s *Seeder) Load(ctx context.Context, d seed.Dataset) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		b := &pgx.Batch{}

		for _, st := range d.Students {
			b.Queue(`INSERT INTO students (`+studentColumns+`)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13) ON CONFLICT DO NOTHING`,
				st.ID, st.ExternalID, st.AccountID, st.GuardianAccountID, st.Name, st.Department,
				st.Year, st.Hostel, st.Attendance, st.CGPA, st.Photo, st.CreatedAt, st.UpdatedAt)
		}
		for _, t := range d.Teachers {
			b.Queue(`INSERT INTO teachers (`+teacherColumns+`)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8) ON CONFLICT DO NOTHING`,
				t.ID, t.ExternalID, t.AccountID, t.Name, t.Department, t.Subject, t.Experience, t.CreatedAt)
		}
		for _, m := range d.Marks {
			b.Queue(`INSERT INTO marks (`+markColumns+`)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) ON CONFLICT DO NOTHING`,
				m.ID, m.StudentID, m.Subject, m.Internal1, m.Internal2, m.Assignment, m.Total, m.Grade, m.CreatedAt, m.UpdatedAt)
		}
		for _, a := range d.Attendance {
			b.Queue(`INSERT INTO attendance_records (`+attendanceColumns+`)
				VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT DO NOTHING`,
				a.ID, a.StudentID, a.Date, a.Subject, string(a.Status), a.CreatedAt)
		}
		for _, f := range d.Fees {
			b.Queue(`INSERT INTO fees (`+feeColumns+`)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) ON CONFLICT DO NOTHING`,
				f.ID, f.ExternalID, f.AccountID, f.Type, f.Amount, f.DueDate, string(f.Status), f.PaidAt, f.CreatedAt)
		}
		for _, e := range d.Events {
			b.Queue(`INSERT INTO events (`+eventColumns+`)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) ON CONFLICT DO NOTHING`,
				e.ID, e.ExternalID, e.Title, e.Club, e.Date, e.Description, string(e.Status), e.Registrations, e.CreatedAt, e.UpdatedAt)
		}
		for _, c := range d.Clubs {
			b.Queue(`INSERT INTO clubs (`+clubColumns+`)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8) ON CONFLICT DO NOTHING`,
				c.ID, c.ExternalID, c.Name, c.Accent, c.Members, c.Description, c.CreatedAt, c.UpdatedAt)
		}
		for _, a := range d.Announcements {
			b.Queue(`INSERT INTO announcements (`+announcementColumns+`)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8) ON CONFLICT DO NOTHING`,
				a.ID, a.ExternalID, a.Title, a.Content, a.Author, a.Date, string(a.Priority), a.CreatedAt)
		}
		for _, q := range d.Requests {
			b.Queue(`INSERT INTO requests (`+requestColumns+`)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) ON CONFLICT DO NOTHING`,
				q.ID, q.ExternalID, q.Type, q.FromName, q.Date, q.Reason, string(q.Status),
				q.RequesterAccountID, q.DecidedAt, q.CreatedAt)
		}
		for _, n := range d.Notifications {
			b.Queue(`INSERT INTO notifications (`+notificationColumns+`)
				VALUES ($1,$2,$3,$4,$5,$6,$7) ON CONFLICT DO NOTHING`,
				n.ID, n.ExternalID, n.AccountID, n.Title, n.Message, n.Read, n.CreatedAt)
		}
		for _, row := range d.Timetable {
			slots, err := json.Marshal(row.Slots)
			if err != nil {
				return err
			}
			b.Queue(`INSERT INTO timetable (id, role, day, slots, updated_at)
				VALUES ($1,$2,$3,$4,$5) ON CONFLICT DO NOTHING`,
				row.ID, string(row.Role), row.Day, slots, row.UpdatedAt)
		}

		return tx.SendBatch(ctx, b).Close()
	})
}
