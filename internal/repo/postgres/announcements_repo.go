package postgres

import (
	"context"
	"errors"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/announcement"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AnnouncementsRepo struct {
	base
}

func NewAnnouncementsRepo(pool *pgxpool.Pool, prom *observability.Prom) *AnnouncementsRepo {
	return &AnnouncementsRepo{base{pool: pool, prom: prom}}
}

const announcementColumns = `id, external_id, title, content, author, date, priority, created_at`

func scanAnnouncement(row pgx.Row) (announcement.Announcement, error) {
	var a announcement.Announcement
	err := row.Scan(&a.ID, &a.ExternalID, &a.Title, &a.Content, &a.Author, &a.Date, &a.Priority, &a.CreatedAt)
	return a, err
}

// List returns newest first.
func (r *AnnouncementsRepo) List(ctx context.Context) ([]announcement.Announcement, error) {
	var out []announcement.Announcement
	err := r.observe("announcements.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+announcementColumns+` FROM announcements ORDER BY date DESC, created_at DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]announcement.Announcement, 0)
		for rows.Next() {
			a, err := scanAnnouncement(rows)
			if err != nil {
				return err
			}
			out = append(out, a)
		}
		return rows.Err()
	})
	return out, err
}

func (r *AnnouncementsRepo) GetByID(ctx context.Context, id string) (announcement.Announcement, error) {
	var a announcement.Announcement
	err := r.observe("announcements.get_by_id", func() error {
		var err error
		a, err = scanAnnouncement(r.pool.QueryRow(ctx,
			`SELECT `+announcementColumns+` FROM announcements WHERE id = $1 OR external_id = $1`, id))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	return a, err
}

func (r *AnnouncementsRepo) Create(ctx context.Context, req announcement.CreateRequest) (announcement.Announcement, error) {
	a := announcement.NewFromCreateRequest(req)

	err := r.observe("announcements.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO announcements (`+announcementColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			a.ID, a.ExternalID, a.Title, a.Content, a.Author, a.Date, string(a.Priority), a.CreatedAt,
		)
		return err
	})
	if err != nil {
		return announcement.Announcement{}, err
	}
	return a, nil
}

func (r *AnnouncementsRepo) Delete(ctx context.Context, id string) error {
	var affected int64
	err := r.observe("announcements.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1 OR external_id = $1`, id)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return announcement.ErrNotFound
	}
	return nil
}
