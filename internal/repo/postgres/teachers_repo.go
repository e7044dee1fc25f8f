package postgres

import (
	"context"
	"errors"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/teacher"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeachersRepo struct {
	base
}

func NewTeachersRepo(pool *pgxpool.Pool, prom *observability.Prom) *TeachersRepo {
	return &TeachersRepo{base{pool: pool, prom: prom}}
}

const teacherColumns = `id, external_id, account_id, name, department, subject, experience, created_at`

func scanTeacher(row pgx.Row) (teacher.Teacher, error) {
	var t teacher.Teacher
	err := row.Scan(&t.ID, &t.ExternalID, &t.AccountID, &t.Name, &t.Department, &t.Subject, &t.Experience, &t.CreatedAt)
	return t, err
}

func (r *TeachersRepo) List(ctx context.Context) ([]teacher.Teacher, error) {
	var out []teacher.Teacher
	err := r.observe("teachers.list", func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+teacherColumns+` FROM teachers ORDER BY external_id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]teacher.Teacher, 0)
		for rows.Next() {
			t, err := scanTeacher(rows)
			if err != nil {
				return err
			}
			out = append(out, t)
		}
		return rows.Err()
	})
	return out, err
}

func (r *TeachersRepo) GetByID(ctx context.Context, id string) (teacher.Teacher, error) {
	return r.getOne(ctx, "teachers.get_by_id",
		`SELECT `+teacherColumns+` FROM teachers WHERE id = $1 OR external_id = $1`, id)
}

func (r *TeachersRepo) GetByAccountID(ctx context.Context, accountID string) (teacher.Teacher, error) {
	return r.getOne(ctx, "teachers.get_by_account",
		`SELECT `+teacherColumns+` FROM teachers WHERE account_id = $1 ORDER BY external_id LIMIT 1`, accountID)
}

func (r *TeachersRepo) getOne(ctx context.Context, op, query, arg string) (teacher.Teacher, error) {
	var t teacher.Teacher
	err := r.observe(op, func() error {
		var err error
		t, err = scanTeacher(r.pool.QueryRow(ctx, query, arg))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	return t, err
}
