// Package seed loads the demo campus (accounts, students, marks, fees, ...)
// into a store and bootstraps the configured admin account.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/account"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/announcement"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/attendance"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/club"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/event"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/fee"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/mark"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/notification"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/request"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/student"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/teacher"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/timetable"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/security"
	"github.com/google/uuid"
)

// Dataset is everything a seed run writes. Rows carry stable ids derived
// from their display ids, so running the seed twice changes nothing.
type Dataset struct {
	Accounts      []account.Account
	Students      []student.Student
	Teachers      []teacher.Teacher
	Marks         []mark.Mark
	Attendance    []attendance.Record
	Fees          []fee.Fee
	Events        []event.Event
	Clubs         []club.Club
	Announcements []announcement.Announcement
	Requests      []request.Request
	Notifications []notification.Notification
	Timetable     []timetable.Row
}

// Target is a store that can absorb a Dataset. Implementations skip rows
// that already exist.
type Target interface {
	// UpsertAccount inserts a unless its email is taken and returns the id
	// of the account now holding that email.
	UpsertAccount(ctx context.Context, a account.Account) (string, error)
	Load(ctx context.Context, d Dataset) error
}

type Options struct {
	// HashCost is the bcrypt cost for demo passwords; 0 means the default.
	HashCost int
}

var namespace = uuid.MustParse("4d1c6a8e-3f7b-4c55-9a0e-2b6f0d7e1a93")

// stableID derives a deterministic UUID from a natural key.
func stableID(key string) string {
	return uuid.NewSHA1(namespace, []byte(key)).String()
}

// Run writes the demo dataset to t.
func Run(ctx context.Context, t Target, opts Options) error {
	d, err := Demo(opts)
	if err != nil {
		return err
	}

	// an account may already exist under another id (an earlier admin
	// bootstrap, say); rewrite references to whatever id holds the email
	remap := make(map[string]string, len(d.Accounts))
	for _, a := range d.Accounts {
		id, err := t.UpsertAccount(ctx, a)
		if err != nil {
			return fmt.Errorf("seed account %s: %w", a.Email, err)
		}
		remap[a.ID] = id
	}
	d.remapAccounts(remap)

	if err := t.Load(ctx, d); err != nil {
		return fmt.Errorf("seed data: %w", err)
	}

	slog.InfoContext(ctx, "demo data seeded",
		"accounts", len(d.Accounts), "students", len(d.Students), "events", len(d.Events))
	return nil
}

func (d *Dataset) remapAccounts(m map[string]string) {
	swap := func(p *string) *string {
		if p == nil {
			return nil
		}
		if id, ok := m[*p]; ok {
			return &id
		}
		return p
	}

	for i := range d.Students {
		d.Students[i].AccountID = swap(d.Students[i].AccountID)
		d.Students[i].GuardianAccountID = swap(d.Students[i].GuardianAccountID)
	}
	for i := range d.Teachers {
		d.Teachers[i].AccountID = swap(d.Teachers[i].AccountID)
	}
	for i := range d.Fees {
		d.Fees[i].AccountID = *swap(&d.Fees[i].AccountID)
	}
	for i := range d.Notifications {
		d.Notifications[i].AccountID = *swap(&d.Notifications[i].AccountID)
	}
	for i := range d.Requests {
		d.Requests[i].RequesterAccountID = swap(d.Requests[i].RequesterAccountID)
	}
}

type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Create(ctx context.Context, a account.Account) error
}

// EnsureAdmin creates an ADMIN account for email unless one exists. Empty
// credentials are a no-op.
func EnsureAdmin(ctx context.Context, accounts AccountStore, email, password string, opts Options) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := accounts.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, account.ErrNotFound) {
		return err
	}

	hash, err := hash(password, opts)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = accounts.Create(ctx, account.Account{
		ID:           uuid.NewString(),
		Email:        account.NormalizeEmail(email),
		PasswordHash: hash,
		Role:         rbac.Admin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, account.ErrEmailAlreadyUsed) {
		return nil
	}
	if err == nil {
		slog.InfoContext(ctx, "admin account created", "email", account.NormalizeEmail(email))
	}
	return err
}

func hash(plain string, opts Options) (string, error) {
	if opts.HashCost > 0 {
		return security.HashPasswordCost(plain, opts.HashCost)
	}
	return security.HashPassword(plain)
}
