package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/attendance"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttendanceRepo struct {
	base
}

func NewAttendanceRepo(pool *pgxpool.Pool, prom *observability.Prom) *AttendanceRepo {
	return &AttendanceRepo{base{pool: pool, prom: prom}}
}

const attendanceColumns = `id, student_id, date, subject, status, created_at`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var a attendance.Record
	err := row.Scan(&a.ID, &a.StudentID, &a.Date, &a.Subject, &a.Status, &a.CreatedAt)
	return a, err
}

func (r *AttendanceRepo) List(ctx context.Context, f attendance.ListFilter) ([]attendance.Record, error) {
	if f.StudentIDs != nil && len(f.StudentIDs) == 0 {
		return []attendance.Record{}, nil
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records`

	var conds []string
	var args []any
	argsPosition := 1

	if f.StudentIDs != nil {
		conds = append(conds, fmt.Sprintf("student_id = ANY($%d)", argsPosition))
		args = append(args, f.StudentIDs)
		argsPosition++
	}
	if f.Date != nil {
		conds = append(conds, fmt.Sprintf("date = $%d", argsPosition))
		args = append(args, *f.Date)
		argsPosition++
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC, id"

	var out []attendance.Record
	err := r.observe("attendance.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]attendance.Record, 0)
		for rows.Next() {
			a, err := scanAttendance(rows)
			if err != nil {
				return err
			}
			out = append(out, a)
		}
		return rows.Err()
	})
	return out, err
}

func (r *AttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	var a attendance.Record
	err := r.observe("attendance.get_by_id", func() error {
		var err error
		a, err = scanAttendance(r.pool.QueryRow(ctx,
			`SELECT `+attendanceColumns+` FROM attendance_records WHERE id = $1`, id))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, attendance.ErrNotFound
	}
	return a, err
}

func (r *AttendanceRepo) Create(ctx context.Context, a attendance.Record) error {
	return r.observe("attendance.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO attendance_records (`+attendanceColumns+`) VALUES ($1,$2,$3,$4,$5,$6)`,
			a.ID, a.StudentID, a.Date, a.Subject, string(a.Status), a.CreatedAt,
		)
		return err
	})
}

func (r *AttendanceRepo) UpdateStatus(ctx context.Context, id string, status attendance.Status) (attendance.Record, error) {
	var a attendance.Record
	err := r.observe("attendance.update_status", func() error {
		var err error
		a, err = scanAttendance(r.pool.QueryRow(ctx,
			`UPDATE attendance_records SET status = $2 WHERE id = $1 RETURNING `+attendanceColumns,
			id, string(status),
		))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, attendance.ErrNotFound
	}
	return a, err
}
