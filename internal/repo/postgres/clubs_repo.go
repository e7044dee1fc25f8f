package postgres

import (
	"context"
	"errors"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/club"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClubsRepo struct {
	base
}

func NewClubsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ClubsRepo {
	return &ClubsRepo{base{pool: pool, prom: prom}}
}

const clubColumns = `id, external_id, name, accent, members, description, created_at, updated_at`

func scanClub(row pgx.Row) (club.Club, error) {
	var c club.Club
	err := row.Scan(&c.ID, &c.ExternalID, &c.Name, &c.Accent, &c.Members, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *ClubsRepo) List(ctx context.Context) ([]club.Club, error) {
	var out []club.Club
	err := r.observe("clubs.list", func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+clubColumns+` FROM clubs ORDER BY external_id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]club.Club, 0)
		for rows.Next() {
			c, err := scanClub(rows)
			if err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})
	return out, err
}

func (r *ClubsRepo) GetByID(ctx context.Context, id string) (club.Club, error) {
	var c club.Club
	err := r.observe("clubs.get_by_id", func() error {
		var err error
		c, err = scanClub(r.pool.QueryRow(ctx,
			`SELECT `+clubColumns+` FROM clubs WHERE id = $1 OR external_id = $1`, id))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return club.Club{}, club.ErrNotFound
	}
	return c, err
}

func (r *ClubsRepo) Create(ctx context.Context, req club.CreateRequest) (club.Club, error) {
	c := club.NewFromCreateRequest(req)

	err := r.observe("clubs.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO clubs (`+clubColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			c.ID, c.ExternalID, c.Name, c.Accent, c.Members, c.Description, c.CreatedAt, c.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return club.Club{}, err
	}
	return c, nil
}

func (r *ClubsRepo) Update(ctx context.Context, id string, req club.UpdateRequest) (club.Club, error) {
	var c club.Club
	err := r.observe("clubs.update", func() error {
		var err error
		c, err = scanClub(r.pool.QueryRow(ctx, `
			UPDATE clubs
			SET name        = COALESCE($2, name),
			    accent      = COALESCE($3, accent),
			    members     = COALESCE($4, members),
			    description = COALESCE($5, description),
			    updated_at  = NOW()
			WHERE id = $1 OR external_id = $1
			RETURNING `+clubColumns,
			id, req.Name, req.Accent, req.Members, req.Description,
		))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return club.Club{}, club.ErrNotFound
	}
	return c, err
}

func (r *ClubsRepo) Delete(ctx context.Context, id string) error {
	var affected int64
	err := r.observe("clubs.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM clubs WHERE id = $1 OR external_id = $1`, id)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return club.ErrNotFound
	}
	return nil
}
