package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/event"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventsRepo struct {
	base
}

// constructor function
func NewEventsRepo(pool *pgxpool.Pool, prom *observability.Prom) *EventsRepo {
	return &EventsRepo{base{pool: pool, prom: prom}}
}

const eventColumns = `id, external_id, title, club, date, description, status, registrations, created_at, updated_at`

func scanEvent(row pgx.Row) (event.Event, error) {
	var e event.Event
	err := row.Scan(&e.ID, &e.ExternalID, &e.Title, &e.Club, &e.Date, &e.Description,
		&e.Status, &e.Registrations, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *EventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	e := event.NewFromCreateRequest(req)

	err := r.observe("events.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO events(`+eventColumns+`) VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			e.ID, e.ExternalID, e.Title, e.Club, e.Date, e.Description, string(e.Status), e.Registrations, e.CreatedAt, e.UpdatedAt)
		return err
	})
	if err != nil {
		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) List(ctx context.Context, filteredEvents event.ListEventsFilter) ([]event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`

	var conds []string
	var args []any

	argsPosition := 1

	// filtered conditional checks.
	if filteredEvents.Club != nil {
		conds = append(conds, fmt.Sprintf("club = $%d", argsPosition))
		args = append(args, *filteredEvents.Club)
		argsPosition++
	}

	if filteredEvents.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argsPosition))
		args = append(args, string(*filteredEvents.Status))
		argsPosition++
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// stable ordering
	query += " ORDER BY date ASC, id ASC"

	var output []event.Event
	err := r.observe("events.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		output = make([]event.Event, 0)
		for rows.Next() {
			e, err := scanEvent(rows)
			if err != nil {
				return err
			}
			output = append(output, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	var e event.Event
	err := r.observe("events.get_by_id", func() error {
		var err error
		e, err = scanEvent(r.pool.QueryRow(ctx,
			`SELECT `+eventColumns+` FROM events WHERE id = $1 OR external_id = $1`, id))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}

	return e, nil
}

// Update is a partial update: nil fields keep their stored value.
func (r *EventsRepo) Update(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error) {
	var status *string
	if req.Status != nil {
		s := string(*req.Status)
		status = &s
	}

	var e event.Event
	err := r.observe("events.update", func() error {
		var err error
		e, err = scanEvent(r.pool.QueryRow(ctx, `
			UPDATE events
			SET title         = COALESCE($2, title),
			    club          = COALESCE($3, club),
			    date          = COALESCE($4, date),
			    description   = COALESCE($5, description),
			    status        = COALESCE($6, status),
			    registrations = COALESCE($7, registrations),
			    updated_at    = NOW()
			WHERE id = $1 OR external_id = $1
			RETURNING `+eventColumns,
			id, req.Title, req.Club, req.Date, req.Description, status, req.Registrations,
		))
		return err
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	var affected int64
	err := r.observe("events.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1 OR external_id = $1`, id)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}

	// if no rows were deleted as a result return a not found error
	if affected == 0 {
		return event.ErrNotFound
	}

	return nil
}
