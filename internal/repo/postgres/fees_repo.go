package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/fee"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FeesRepo struct {
	base
}

func NewFeesRepo(pool *pgxpool.Pool, prom *observability.Prom) *FeesRepo {
	return &FeesRepo{base{pool: pool, prom: prom}}
}

const feeColumns = `id, external_id, account_id, type, amount, due_date, status, paid_at, created_at`

func scanFee(row pgx.Row) (fee.Fee, error) {
	var f fee.Fee
	err := row.Scan(&f.ID, &f.ExternalID, &f.AccountID, &f.Type, &f.Amount, &f.DueDate, &f.Status, &f.PaidAt, &f.CreatedAt)
	return f, err
}

func (r *FeesRepo) List(ctx context.Context, filter fee.ListFilter) ([]fee.Fee, error) {
	query := `SELECT ` + feeColumns + ` FROM fees`

	var conds []string
	var args []any
	argsPosition := 1

	if filter.AccountID != nil {
		conds = append(conds, fmt.Sprintf("account_id = $%d", argsPosition))
		args = append(args, *filter.AccountID)
		argsPosition++
	}
	if filter.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argsPosition))
		args = append(args, string(*filter.Status))
		argsPosition++
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY due_date ASC, external_id ASC"

	var out []fee.Fee
	err := r.observe("fees.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]fee.Fee, 0)
		for rows.Next() {
			f, err := scanFee(rows)
			if err != nil {
				return err
			}
			out = append(out, f)
		}
		return rows.Err()
	})
	return out, err
}

// Pay marks a pending fee owned by accountID as paid. Paying a fee that is
// already paid returns it unchanged; a fee owned by someone else is
// reported as not found.
func (r *FeesRepo) Pay(ctx context.Context, id, accountID string) (fee.Fee, error) {
	var f fee.Fee
	err := r.observe("fees.pay", func() error {
		var err error
		f, err = scanFee(r.pool.QueryRow(ctx, `
			UPDATE fees
			SET status = 'paid', paid_at = NOW()
			WHERE (id = $1 OR external_id = $1)
			  AND account_id = $2
			  AND status = 'pending'
			RETURNING `+feeColumns,
			id, accountID,
		))
		return err
	})
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fee.Fee{}, err
	}

	// lost the compare-and-set: either already paid or not ours
	err = r.observe("fees.get_owned", func() error {
		var err error
		f, err = scanFee(r.pool.QueryRow(ctx,
			`SELECT `+feeColumns+` FROM fees WHERE (id = $1 OR external_id = $1) AND account_id = $2`,
			id, accountID,
		))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return fee.Fee{}, fee.ErrNotFound
	}
	return f, err
}
