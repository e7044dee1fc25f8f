package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/student"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentsRepo struct {
	base
}

func NewStudentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *StudentsRepo {
	return &StudentsRepo{base{pool: pool, prom: prom}}
}

const studentColumns = `id, external_id, account_id, guardian_account_id, name, department,
	year, hostel, attendance, cgpa, photo, created_at, updated_at`

func scanStudent(row pgx.Row) (student.Student, error) {
	var s student.Student
	err := row.Scan(
		&s.ID, &s.ExternalID, &s.AccountID, &s.GuardianAccountID, &s.Name, &s.Department,
		&s.Year, &s.Hostel, &s.Attendance, &s.CGPA, &s.Photo, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *StudentsRepo) List(ctx context.Context, f student.ListFilter) ([]student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`

	var conds []string
	var args []any
	argsPosition := 1

	if f.Department != nil {
		conds = append(conds, fmt.Sprintf("department = $%d", argsPosition))
		args = append(args, *f.Department)
		argsPosition++
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY external_id ASC"

	var out []student.Student
	err := r.observe("students.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]student.Student, 0)
		for rows.Next() {
			s, err := scanStudent(rows)
			if err != nil {
				return err
			}
			out = append(out, s)
		}
		return rows.Err()
	})
	return out, err
}

// GetByID accepts the durable id or the display id.
func (r *StudentsRepo) GetByID(ctx context.Context, id string) (student.Student, error) {
	var s student.Student
	err := r.observe("students.get_by_id", func() error {
		var err error
		s, err = scanStudent(r.pool.QueryRow(ctx,
			`SELECT `+studentColumns+` FROM students WHERE id = $1 OR external_id = $1`, id,
		))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return student.Student{}, student.ErrNotFound
	}
	return s, err
}

// Update applies the non-nil fields of req; the last write wins.
func (r *StudentsRepo) Update(ctx context.Context, id string, req student.UpdateRequest) (student.Student, error) {
	var s student.Student
	err := r.observe("students.update", func() error {
		var err error
		s, err = scanStudent(r.pool.QueryRow(ctx, `
			UPDATE students
			SET name                = COALESCE($2, name),
			    department          = COALESCE($3, department),
			    year                = COALESCE($4, year),
			    hostel              = COALESCE($5, hostel),
			    attendance          = COALESCE($6, attendance),
			    cgpa                = COALESCE($7, cgpa),
			    photo               = COALESCE($8, photo),
			    guardian_account_id = COALESCE($9, guardian_account_id),
			    updated_at          = NOW()
			WHERE id = $1 OR external_id = $1
			RETURNING `+studentColumns,
			id, req.Name, req.Department, req.Year, req.Hostel, req.Attendance, req.CGPA, req.Photo, req.GuardianAccountID,
		))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return student.Student{}, student.ErrNotFound
	}
	return s, err
}

// IDsOwnedBy returns the profiles whose own account is accountID.
func (r *StudentsRepo) IDsOwnedBy(ctx context.Context, accountID string) ([]string, error) {
	return r.ids(ctx, "students.ids_owned_by",
		`SELECT id FROM students WHERE account_id = $1 ORDER BY external_id`, accountID)
}

// IDsGuardedBy returns the profiles whose guardian is accountID.
func (r *StudentsRepo) IDsGuardedBy(ctx context.Context, accountID string) ([]string, error) {
	return r.ids(ctx, "students.ids_guarded_by",
		`SELECT id FROM students WHERE guardian_account_id = $1 ORDER BY external_id`, accountID)
}

func (r *StudentsRepo) ids(ctx context.Context, op, query, accountID string) ([]string, error) {
	var ids []string
	err := r.observe(op, func() error {
		rows, err := r.pool.Query(ctx, query, accountID)
		if err != nil {
			return err
		}
		ids, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	return ids, err
}
