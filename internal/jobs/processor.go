package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/job"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/notification"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/student"
)

type NotificationWriter interface {
	CreateMany(ctx context.Context, items []notification.Notification) error
}

type AccountLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type StudentGetter interface {
	GetByID(ctx context.Context, id string) (student.Student, error)
}

// Pusher forwards a stored notification to an outbound channel.
type Pusher interface {
	Push(ctx context.Context, n notification.Notification) error
}

// Processor turns claimed jobs into notification rows.
type Processor struct {
	notifications NotificationWriter
	accounts      AccountLister
	students      StudentGetter
	pusher        Pusher
}

func NewProcessor(n NotificationWriter, a AccountLister, s StudentGetter) *Processor {
	return &Processor{notifications: n, accounts: a, students: s}
}

// WithPusher enables outbound delivery after notifications are stored.
func (p *Processor) WithPusher(pusher Pusher) *Processor {
	p.pusher = pusher
	return p
}

func (p *Processor) Execute(ctx context.Context, j job.Job) error {
	decoded, err := DecodePayload(j)
	if err != nil {
		return err
	}
	if err := ValidatePayload(JobType(j.Type), decoded); err != nil {
		return err
	}

	switch v := decoded.(type) {
	case NotifyAccountPayload:
		return p.deliver(ctx, j, []notification.Notification{
			notification.New(v.AccountID, v.Title, v.Message),
		})

	case NotifyBroadcastPayload:
		ids, err := p.accounts.ListIDs(ctx)
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		items := make([]notification.Notification, 0, len(ids))
		for _, id := range ids {
			items = append(items, notification.New(id, v.Title, v.Message))
		}
		if len(items) == 0 {
			return nil
		}
		return p.deliver(ctx, j, items)

	case NotifyStudentPayload:
		s, err := p.students.GetByID(ctx, v.StudentID)
		if err != nil {
			if errors.Is(err, student.ErrNotFound) {
				slog.WarnContext(ctx, "notification for unknown student dropped",
					"job_id", j.ID, "student_id", v.StudentID)
				return nil
			}
			return fmt.Errorf("load student: %w", err)
		}

		var items []notification.Notification
		if s.AccountID != nil {
			items = append(items, notification.New(*s.AccountID, v.Title, v.Message))
		}
		if s.GuardianAccountID != nil {
			items = append(items, notification.New(*s.GuardianAccountID, v.Title, v.Message))
		}
		if len(items) == 0 {
			return nil
		}
		return p.deliver(ctx, j, items)

	default:
		return ErrInvalidJobType
	}
}

// deliver stores the rows and then pushes them. Push failures are logged and
// never fail the job; the in-app notification already exists.
func (p *Processor) deliver(ctx context.Context, j job.Job, items []notification.Notification) error {
	if err := p.notifications.CreateMany(ctx, items); err != nil {
		return err
	}
	if p.pusher == nil {
		return nil
	}

	for _, n := range items {
		if ctx.Err() != nil {
			return nil
		}
		if err := p.pusher.Push(ctx, n); err != nil {
			slog.WarnContext(ctx, "notification push failed",
				"job_id", j.ID, "notification_id", n.ID, "err", err)
		}
	}
	return nil
}
