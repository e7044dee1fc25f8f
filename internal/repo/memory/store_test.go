package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/account"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/fee"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/job"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/notification"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/request"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/student"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/timetable"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	require.NoError(t, seed.Run(context.Background(), s, seed.Options{HashCost: bcrypt.MinCost}))
	return s
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := seeded(t)

	before, err := s.Students().List(ctx, student.ListFilter{})
	require.NoError(t, err)

	require.NoError(t, seed.Run(ctx, s, seed.Options{HashCost: bcrypt.MinCost}))

	after, err := s.Students().List(ctx, student.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestSeedKeepsExistingAdminID(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, seed.EnsureAdmin(ctx, s.Accounts(), seed.AdminEmail, "bootstrap-pass", seed.Options{HashCost: bcrypt.MinCost}))
	admin, err := s.Accounts().GetByEmail(ctx, seed.AdminEmail)
	require.NoError(t, err)

	require.NoError(t, seed.Run(ctx, s, seed.Options{HashCost: bcrypt.MinCost}))

	again, err := s.Accounts().GetByEmail(ctx, seed.AdminEmail)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	notes, err := s.Notifications().ListByAccount(ctx, admin.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, notes, "seeded notifications follow the remapped admin id")
}

func TestAccountsCreate_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := New()

	a := account.Account{ID: "a1", Email: "x@oc-2-day.edu", Role: "ADMIN"}
	require.NoError(t, s.Accounts().Create(ctx, a))

	a.ID = "a2"
	a.Email = "X@OC-2-DAY.edu"
	assert.ErrorIs(t, s.Accounts().Create(ctx, a), account.ErrEmailAlreadyUsed)
}

func TestStudentsScopeLinks(t *testing.T) {
	ctx := context.Background()
	s := seeded(t)

	stu, err := s.Accounts().GetByEmail(ctx, seed.StudentEmail)
	require.NoError(t, err)
	par, err := s.Accounts().GetByEmail(ctx, seed.ParentEmail)
	require.NoError(t, err)

	owned, err := s.Students().IDsOwnedBy(ctx, stu.ID)
	require.NoError(t, err)
	guarded, err := s.Students().IDsGuardedBy(ctx, par.ID)
	require.NoError(t, err)

	require.Len(t, owned, 1)
	assert.Equal(t, owned, guarded)

	got, err := s.Students().GetByID(ctx, "STU001")
	require.NoError(t, err)
	assert.Equal(t, owned[0], got.ID)
}

func TestFeesPay(t *testing.T) {
	ctx := context.Background()
	s := seeded(t)

	stu, err := s.Accounts().GetByEmail(ctx, seed.StudentEmail)
	require.NoError(t, err)
	par, err := s.Accounts().GetByEmail(ctx, seed.ParentEmail)
	require.NoError(t, err)

	_, err = s.Fees().Pay(ctx, "FEE001", par.ID)
	assert.ErrorIs(t, err, fee.ErrNotFound, "foreign fee looks absent")

	paid, err := s.Fees().Pay(ctx, "FEE001", stu.ID)
	require.NoError(t, err)
	assert.Equal(t, fee.StatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	again, err := s.Fees().Pay(ctx, "FEE001", stu.ID)
	require.NoError(t, err)
	assert.Equal(t, *paid.PaidAt, *again.PaidAt)
}

func TestRequestsUpdateStatus_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	s := seeded(t)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, to := range []request.Status{request.StatusApproved, request.StatusRejected} {
		wg.Add(1)
		go func(to request.Status) {
			defer wg.Done()
			_, err := s.Requests().UpdateStatus(ctx, "REQ001", request.StatusPending, to)
			results <- err
		}(to)
	}
	wg.Wait()
	close(results)

	var ok, stale int
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, request.ErrStale)
		stale++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, stale)

	_, err := s.Requests().UpdateStatus(ctx, "REQ999", request.StatusPending, request.StatusApproved)
	assert.ErrorIs(t, err, request.ErrNotFound)
}

func TestNotifications_ReadFlow(t *testing.T) {
	ctx := context.Background()
	s := New()

	items := []notification.Notification{
		notification.New("acc-1", "One", "first"),
		notification.New("acc-1", "Two", "second"),
		notification.New("acc-2", "Other", "not mine"),
	}
	require.NoError(t, s.Notifications().CreateMany(ctx, items))

	_, err := s.Notifications().MarkRead(ctx, items[2].ID, "acc-1")
	assert.ErrorIs(t, err, notification.ErrNotFound)

	n, err := s.Notifications().MarkRead(ctx, items[0].ExternalID, "acc-1")
	require.NoError(t, err)
	assert.True(t, n.Read)

	updated, err := s.Notifications().MarkAllRead(ctx, "acc-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, updated)

	list, err := s.Notifications().ListByAccount(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 0, notification.CountUnread(list))
}

func TestTimetableUpsert(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, err := s.Timetable().Upsert(ctx, timetable.RoleStudent, "Tuesday", []timetable.Slot{{Subject: "DSA", Room: "A1"}})
	require.NoError(t, err)
	_, err = s.Timetable().Upsert(ctx, timetable.RoleStudent, "Monday", nil)
	require.NoError(t, err)
	second, err := s.Timetable().Upsert(ctx, timetable.RoleStudent, "Tuesday", []timetable.Slot{{Subject: "OS", Room: "B2"}})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	rows, err := s.Timetable().ListByRole(ctx, timetable.RoleStudent)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Monday", rows[0].Day)
	assert.Empty(t, rows[0].Slots)
	assert.Equal(t, "OS", rows[1].Slots[0].Subject)

	teacherRows, err := s.Timetable().ListByRole(ctx, timetable.RoleTeacher)
	require.NoError(t, err)
	assert.Empty(t, teacherRows)
}

func TestJobsLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := New().Jobs()

	_, err := repo.ClaimNext(ctx, "w1")
	assert.ErrorIs(t, err, job.ErrJobNotFound)

	later, err := repo.Create(ctx, job.CreateRequest{Type: "t", RunAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	now, err := repo.Create(ctx, job.CreateRequest{Type: "t"})
	require.NoError(t, err)

	claimed, err := repo.ClaimNext(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, now.ID, claimed.ID)
	assert.Equal(t, job.StatusProcessing, claimed.Status)

	_, err = repo.ClaimNext(ctx, "w2")
	assert.ErrorIs(t, err, job.ErrJobNotFound, "future job is not runnable")

	require.NoError(t, repo.Reschedule(ctx, claimed.ID, time.Now().Add(-time.Second), "boom"))
	again, err := repo.ClaimNext(ctx, "w2")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Attempts)

	require.NoError(t, repo.MarkDone(ctx, again.ID))
	got, err := repo.GetByID(ctx, again.ID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusDone, got.Status)
	assert.Nil(t, got.LastError)

	pending, err := repo.GetByID(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusPending, pending.Status)
}

func TestJobsRequeueStale(t *testing.T) {
	ctx := context.Background()
	repo := New().Jobs()

	_, err := repo.Create(ctx, job.CreateRequest{Type: "t"})
	require.NoError(t, err)
	claimed, err := repo.ClaimNext(ctx, "w1")
	require.NoError(t, err)

	n, err := repo.RequeueStaleProcessing(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.RequeueStaleProcessing(ctx, -time.Second)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.GetByID(ctx, claimed.ID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusPending, got.Status)
	assert.Nil(t, got.LockedBy)
}

func TestJobsCreate_IdempotencyKey(t *testing.T) {
	ctx := context.Background()
	repo := New().Jobs()
	key := "request:REQ001:approved"

	first, err := repo.Create(ctx, job.CreateRequest{Type: "t", IdempotencyKey: &key})
	require.NoError(t, err)
	second, err := repo.Create(ctx, job.CreateRequest{Type: "t", IdempotencyKey: &key})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := repo.Create(ctx, job.CreateRequest{Type: "t"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}
