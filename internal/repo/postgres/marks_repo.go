package postgres

import (
	"context"
	"errors"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/mark"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MarksRepo struct {
	base
}

func NewMarksRepo(pool *pgxpool.Pool, prom *observability.Prom) *MarksRepo {
	return &MarksRepo{base{pool: pool, prom: prom}}
}

const markColumns = `id, student_id, subject, internal1, internal2, assignment, total, grade, created_at, updated_at`

func scanMark(row pgx.Row) (mark.Mark, error) {
	var m mark.Mark
	err := row.Scan(&m.ID, &m.StudentID, &m.Subject, &m.Internal1, &m.Internal2, &m.Assignment,
		&m.Total, &m.Grade, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *MarksRepo) List(ctx context.Context, f mark.ListFilter) ([]mark.Mark, error) {
	query := `SELECT ` + markColumns + ` FROM marks`
	var args []any

	// nil: every student; empty: nobody
	if f.StudentIDs != nil {
		if len(f.StudentIDs) == 0 {
			return []mark.Mark{}, nil
		}
		query += ` WHERE student_id = ANY($1)`
		args = append(args, f.StudentIDs)
	}
	query += ` ORDER BY student_id, subject`

	var out []mark.Mark
	err := r.observe("marks.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]mark.Mark, 0)
		for rows.Next() {
			m, err := scanMark(rows)
			if err != nil {
				return err
			}
			out = append(out, m)
		}
		return rows.Err()
	})
	return out, err
}

func (r *MarksRepo) GetByID(ctx context.Context, id string) (mark.Mark, error) {
	var m mark.Mark
	err := r.observe("marks.get_by_id", func() error {
		var err error
		m, err = scanMark(r.pool.QueryRow(ctx, `SELECT `+markColumns+` FROM marks WHERE id = $1`, id))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return mark.Mark{}, mark.ErrNotFound
	}
	return m, err
}

func (r *MarksRepo) Create(ctx context.Context, m mark.Mark) error {
	return r.observe("marks.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO marks (`+markColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			m.ID, m.StudentID, m.Subject, m.Internal1, m.Internal2, m.Assignment, m.Total, m.Grade, m.CreatedAt, m.UpdatedAt,
		)
		return err
	})
}

// Update writes the components together with the total and grade derived
// from them.
func (r *MarksRepo) Update(ctx context.Context, m mark.Mark) (mark.Mark, error) {
	m.Recalculate()

	var out mark.Mark
	err := r.observe("marks.update", func() error {
		var err error
		out, err = scanMark(r.pool.QueryRow(ctx, `
			UPDATE marks
			SET internal1 = $2, internal2 = $3, assignment = $4,
			    total = $5, grade = $6, updated_at = NOW()
			WHERE id = $1
			RETURNING `+markColumns,
			m.ID, m.Internal1, m.Internal2, m.Assignment, m.Total, m.Grade,
		))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return mark.Mark{}, mark.ErrNotFound
	}
	return out, err
}
