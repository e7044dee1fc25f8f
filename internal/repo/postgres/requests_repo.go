package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/request"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestsRepo struct {
	base
}

func NewRequestsRepo(pool *pgxpool.Pool, prom *observability.Prom) *RequestsRepo {
	return &RequestsRepo{base{pool: pool, prom: prom}}
}

const requestColumns = `id, external_id, type, from_name, date, reason, status, requester_account_id, decided_at, created_at`

func scanRequest(row pgx.Row) (request.Request, error) {
	var q request.Request
	err := row.Scan(&q.ID, &q.ExternalID, &q.Type, &q.FromName, &q.Date, &q.Reason, &q.Status,
		&q.RequesterAccountID, &q.DecidedAt, &q.CreatedAt)
	return q, err
}

func (r *RequestsRepo) List(ctx context.Context, f request.ListFilter) ([]request.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests`

	var conds []string
	var args []any
	argsPosition := 1

	if f.RequesterAccountID != nil {
		conds = append(conds, fmt.Sprintf("requester_account_id = $%d", argsPosition))
		args = append(args, *f.RequesterAccountID)
		argsPosition++
	}
	if f.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argsPosition))
		args = append(args, string(*f.Status))
		argsPosition++
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"

	var out []request.Request
	err := r.observe("requests.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]request.Request, 0)
		for rows.Next() {
			q, err := scanRequest(rows)
			if err != nil {
				return err
			}
			out = append(out, q)
		}
		return rows.Err()
	})
	return out, err
}

func (r *RequestsRepo) GetByID(ctx context.Context, id string) (request.Request, error) {
	var q request.Request
	err := r.observe("requests.get_by_id", func() error {
		var err error
		q, err = scanRequest(r.pool.QueryRow(ctx,
			`SELECT `+requestColumns+` FROM requests WHERE id = $1 OR external_id = $1`, id))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return request.Request{}, request.ErrNotFound
	}
	return q, err
}

func (r *RequestsRepo) Create(ctx context.Context, q request.Request) error {
	return r.observe("requests.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO requests (`+requestColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			q.ID, q.ExternalID, q.Type, q.FromName, q.Date, q.Reason, string(q.Status),
			q.RequesterAccountID, q.DecidedAt, q.CreatedAt,
		)
		return err
	})
}

// UpdateStatus moves a request from -> to only if it is still in from.
// ErrStale means another writer got there first.
func (r *RequestsRepo) UpdateStatus(ctx context.Context, id string, from, to request.Status) (request.Request, error) {
	var q request.Request
	err := r.observe("requests.update_status", func() error {
		var err error
		q, err = scanRequest(r.pool.QueryRow(ctx, `
			UPDATE requests
			SET status = $3, decided_at = NOW()
			WHERE (id = $1 OR external_id = $1) AND status = $2
			RETURNING `+requestColumns,
			id, string(from), string(to),
		))
		return err
	})
	if err == nil {
		return q, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return request.Request{}, err
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return request.Request{}, err
	}
	return request.Request{}, request.ErrStale
}

func (r *RequestsRepo) Delete(ctx context.Context, id string) error {
	var affected int64
	err := r.observe("requests.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM requests WHERE id = $1 OR external_id = $1`, id)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return request.ErrNotFound
	}
	return nil
}
