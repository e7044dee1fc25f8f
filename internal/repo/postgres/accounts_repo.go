package postgres

import (
	"context"
	"errors"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/account"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountsRepo struct {
	base
}

func NewAccountsRepo(pool *pgxpool.Pool, prom *observability.Prom) *AccountsRepo {
	return &AccountsRepo{base{pool: pool, prom: prom}}
}

const accountColumns = `id, email, password_hash, role, created_at, updated_at`

func scanAccount(row pgx.Row) (account.Account, error) {
	var a account.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, err
	}
	return a, nil
}

func (r *AccountsRepo) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	var a account.Account
	err := r.observe("accounts.get_by_email", func() error {
		var err error
		a, err = scanAccount(r.pool.QueryRow(ctx,
			`SELECT `+accountColumns+` FROM accounts WHERE email = $1`,
			account.NormalizeEmail(email),
		))
		return err
	})
	return a, err
}

func (r *AccountsRepo) GetByID(ctx context.Context, id string) (account.Account, error) {
	var a account.Account
	err := r.observe("accounts.get_by_id", func() error {
		var err error
		a, err = scanAccount(r.pool.QueryRow(ctx,
			`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id,
		))
		return err
	})
	return a, err
}

func (r *AccountsRepo) Create(ctx context.Context, a account.Account) error {
	a.Email = account.NormalizeEmail(a.Email)

	err := r.observe("accounts.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO accounts (`+accountColumns+`) VALUES ($1,$2,$3,$4,$5,$6)`,
			a.ID, a.Email, a.PasswordHash, string(a.Role), a.CreatedAt, a.UpdatedAt,
		)
		return err
	})
	if IsUniqueViolation(err) {
		return account.ErrEmailAlreadyUsed
	}
	return err
}

// ListIDs returns every account id; broadcast notifications fan out to it.
func (r *AccountsRepo) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.observe("accounts.list_ids", func() error {
		rows, err := r.pool.Query(ctx, `SELECT id FROM accounts ORDER BY created_at, id`)
		if err != nil {
			return err
		}
		ids, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	return ids, err
}
