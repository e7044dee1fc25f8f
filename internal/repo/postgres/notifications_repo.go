package postgres

import (
	"context"
	"errors"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/notification"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationsRepo struct {
	base
}

func NewNotificationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *NotificationsRepo {
	return &NotificationsRepo{base{pool: pool, prom: prom}}
}

const notificationColumns = `id, external_id, account_id, title, message, read, created_at`

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification
	err := row.Scan(&n.ID, &n.ExternalID, &n.AccountID, &n.Title, &n.Message, &n.Read, &n.CreatedAt)
	return n, err
}

// ListByAccount returns the account's notifications, newest first.
func (r *NotificationsRepo) ListByAccount(ctx context.Context, accountID string) ([]notification.Notification, error) {
	var out []notification.Notification
	err := r.observe("notifications.list_by_account", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+notificationColumns+` FROM notifications WHERE account_id = $1 ORDER BY created_at DESC, id`,
			accountID)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]notification.Notification, 0)
		for rows.Next() {
			n, err := scanNotification(rows)
			if err != nil {
				return err
			}
			out = append(out, n)
		}
		return rows.Err()
	})
	return out, err
}

// MarkRead flags one of accountID's notifications as read. Someone else's
// notification is not found.
func (r *NotificationsRepo) MarkRead(ctx context.Context, id, accountID string) (notification.Notification, error) {
	var n notification.Notification
	err := r.observe("notifications.mark_read", func() error {
		var err error
		n, err = scanNotification(r.pool.QueryRow(ctx, `
			UPDATE notifications SET read = TRUE
			WHERE (id = $1 OR external_id = $1) AND account_id = $2
			RETURNING `+notificationColumns,
			id, accountID,
		))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return notification.Notification{}, notification.ErrNotFound
	}
	return n, err
}

func (r *NotificationsRepo) MarkAllRead(ctx context.Context, accountID string) (int64, error) {
	var updated int64
	err := r.observe("notifications.mark_all_read", func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE notifications SET read = TRUE WHERE account_id = $1 AND read = FALSE`, accountID)
		updated = tag.RowsAffected()
		return err
	})
	return updated, err
}

// CreateMany inserts every notification in one batch transaction.
func (r *NotificationsRepo) CreateMany(ctx context.Context, items []notification.Notification) error {
	if len(items) == 0 {
		return nil
	}

	return r.observe("notifications.create_many", func() error {
		return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
			batch := &pgx.Batch{}
			for _, n := range items {
				batch.Queue(
					`INSERT INTO notifications (`+notificationColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
					n.ID, n.ExternalID, n.AccountID, n.Title, n.Message, n.Read, n.CreatedAt,
				)
			}
			return tx.SendBatch(ctx, batch).Close()
		})
	})
}
