package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/db"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/fee"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/job"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/request"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/jobs"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/repo/postgres"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/seed"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// openTestDB connects to TEST_DB_DSN, migrates, and reloads the demo data.
// Tests in this file share one database and must not run in parallel.
func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, db.PoolOptions{URL: dsn, MaxConns: 8})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool))

	_, err = pool.Exec(ctx, `
		TRUNCATE jobs, notifications, timetable, requests, announcements, clubs, events,
		         fees, attendance_records, marks, teachers, students, accounts
		CASCADE`)
	require.NoError(t, err)

	require.NoError(t, seed.Run(ctx, postgres.NewSeeder(pool), seed.Options{HashCost: bcrypt.MinCost}))
	return pool
}

func accountID(t *testing.T, pool *pgxpool.Pool, email string) string {
	t.Helper()
	a, err := postgres.NewAccountsRepo(pool, nil).GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return a.ID
}

func TestMigrateIsRepeatable(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Migrate(ctx, pool))

	var applied int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)

	// reseeding over live data is a no-op
	require.NoError(t, seed.Run(ctx, postgres.NewSeeder(pool), seed.Options{HashCost: bcrypt.MinCost}))

	var fees int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM fees`).Scan(&fees))
	assert.Equal(t, 8, fees)
}

func pendingTotal(t *testing.T, repo *postgres.FeesRepo, owner string) int64 {
	t.Helper()
	pending := fee.StatusPending
	items, err := repo.List(context.Background(), fee.ListFilter{AccountID: &owner, Status: &pending})
	require.NoError(t, err)

	var sum int64
	for _, f := range items {
		sum += f.Amount
	}
	return sum
}

func TestFeesPay(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	repo := postgres.NewFeesRepo(pool, nil)

	student := accountID(t, pool, seed.StudentEmail)
	parent := accountID(t, pool, seed.ParentEmail)
	before := pendingTotal(t, repo, student)

	_, err := repo.Pay(ctx, "FEE001", parent)
	assert.ErrorIs(t, err, fee.ErrNotFound, "a fee owned by someone else is not found")

	paid, err := repo.Pay(ctx, "FEE001", student)
	require.NoError(t, err)
	assert.Equal(t, fee.StatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.EqualValues(t, 75000, paid.Amount)

	again, err := repo.Pay(ctx, paid.ID, student)
	require.NoError(t, err)
	assert.Equal(t, fee.StatusPaid, again.Status)
	require.NotNil(t, again.PaidAt)
	assert.True(t, paid.PaidAt.Equal(*again.PaidAt), "paying twice must not move paid_at")

	assert.Equal(t, before-75000, pendingTotal(t, repo, student))

	_, err = repo.Pay(ctx, "FEE999", student)
	assert.ErrorIs(t, err, fee.ErrNotFound)
}

func TestFeesPayConcurrent(t *testing.T) {
	pool := openTestDB(t)
	repo := postgres.NewFeesRepo(pool, nil)
	student := accountID(t, pool, seed.StudentEmail)

	const n = 4
	stamps := make([]time.Time, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := repo.Pay(context.Background(), "FEE001", student)
			errs[i] = err
			if err == nil && f.PaidAt != nil {
				stamps[i] = *f.PaidAt
			}
		}()
	}
	wg.Wait()

	for i := range n {
		require.NoError(t, errs[i])
		assert.True(t, stamps[0].Equal(stamps[i]), "every caller sees the single payment")
	}
}

func TestRequestsDecisionRace(t *testing.T) {
	pool := openTestDB(t)
	repo := postgres.NewRequestsRepo(pool, nil)

	targets := []request.Status{request.StatusApproved, request.StatusRejected}
	results := make([]error, len(targets))

	var wg sync.WaitGroup
	for i, to := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = repo.UpdateStatus(context.Background(), "REQ001", request.StatusPending, to)
		}()
	}
	wg.Wait()

	won, stale := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, request.ErrStale):
			stale++
		default:
			t.Fatalf("unexpected error %v", err)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, stale)

	got, err := repo.GetByID(context.Background(), "REQ001")
	require.NoError(t, err)
	assert.True(t, got.Status.Terminal())
	assert.NotNil(t, got.DecidedAt)

	_, err = repo.UpdateStatus(context.Background(), "REQ999", request.StatusPending, request.StatusApproved)
	assert.ErrorIs(t, err, request.ErrNotFound)
}

func TestRequestsCreateDisplayIDs(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	repo := postgres.NewRequestsRepo(pool, nil)
	student := accountID(t, pool, seed.StudentEmail)

	body := request.CreateRequest{Type: "Leave", FromName: "Arjun Mehta", Reason: "Medical appointment"}
	for range 20 {
		require.NoError(t, repo.Create(ctx, request.NewFromCreateRequest(student, body)))
	}

	mine, err := repo.List(ctx, request.ListFilter{RequesterAccountID: &student})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(mine), 20)
}

func notifyJob(t *testing.T, key *string) job.CreateRequest {
	t.Helper()
	payload, err := json.Marshal(jobs.NotifyAccountPayload{AccountID: "acc-1", Title: "Hello", Message: "World"})
	require.NoError(t, err)
	return job.CreateRequest{
		Type:           string(jobs.JobNotifyAccount),
		Payload:        payload,
		RunAt:          time.Now().Add(-time.Second),
		MaxAttempts:    2,
		IdempotencyKey: key,
	}
}

func TestJobsCreateIdempotencyKey(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	repo := postgres.NewJobsRepo(pool, nil)

	key := "request:REQ001:approved"
	first, err := repo.Create(ctx, notifyJob(t, &key))
	require.NoError(t, err)
	second, err := repo.Create(ctx, notifyJob(t, &key))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE idempotency_key = $1`, key).Scan(&n))
	assert.Equal(t, 1, n)

	a, err := repo.Create(ctx, notifyJob(t, nil))
	require.NoError(t, err)
	b, err := repo.Create(ctx, notifyJob(t, nil))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID, "jobs without a key are never merged")
}

func TestJobsClaimRescheduleFail(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	repo := postgres.NewJobsRepo(pool, nil)

	created, err := repo.Create(ctx, notifyJob(t, nil))
	require.NoError(t, err)

	claimed, err := repo.ClaimNext(ctx, "worker-a")
	require.NoError(t, err)
	assert.Equal(t, created.ID, claimed.ID)
	assert.Equal(t, job.StatusProcessing, claimed.Status)
	require.NotNil(t, claimed.LockedBy)
	assert.Equal(t, "worker-a", *claimed.LockedBy)

	_, err = repo.ClaimNext(ctx, "worker-b")
	assert.ErrorIs(t, err, job.ErrJobNotFound, "a claimed job is not handed out twice")

	require.NoError(t, repo.Reschedule(ctx, claimed.ID, time.Now().Add(time.Hour), "push timeout"))

	got, err := repo.GetByID(ctx, claimed.ID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusPending, got.Status)
	assert.Equal(t, 1, got.Attempts)
	assert.Nil(t, got.LockedBy)
	require.NotNil(t, got.LastError)
	assert.Equal(t, "push timeout", *got.LastError)

	_, err = repo.ClaimNext(ctx, "worker-a")
	assert.ErrorIs(t, err, job.ErrJobNotFound, "not due yet")

	_, err = pool.Exec(ctx, `UPDATE jobs SET run_at = NOW() - INTERVAL '1 second' WHERE id = $1`, claimed.ID)
	require.NoError(t, err)

	claimed, err = repo.ClaimNext(ctx, "worker-b")
	require.NoError(t, err)
	require.NoError(t, repo.MarkFailed(ctx, claimed.ID, "push refused"))

	got, err = repo.GetByID(ctx, claimed.ID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusFailed, got.Status)
	assert.Equal(t, 2, got.Attempts)

	_, err = repo.ClaimNext(ctx, "worker-a")
	assert.ErrorIs(t, err, job.ErrJobNotFound)

	assert.ErrorIs(t, repo.MarkDone(ctx, "00000000-0000-0000-0000-000000000000"), job.ErrJobNotFound)
}

func TestJobsConcurrentClaimsAreDisjoint(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	repo := postgres.NewJobsRepo(pool, nil)

	const n = 6
	for range n {
		_, err := repo.Create(ctx, notifyJob(t, nil))
		require.NoError(t, err)
	}

	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j, err := repo.ClaimNext(ctx, "worker-"+string(rune('a'+i)))
			if err == nil {
				ids <- j.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "job %s claimed twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestJobsRequeueStaleProcessing(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	repo := postgres.NewJobsRepo(pool, nil)

	_, err := repo.Create(ctx, notifyJob(t, nil))
	require.NoError(t, err)
	fresh, err := repo.Create(ctx, notifyJob(t, nil))
	require.NoError(t, err)

	stale, err := repo.ClaimNext(ctx, "worker-gone")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `UPDATE jobs SET locked_at = NOW() - INTERVAL '2 minutes' WHERE id = $1`, stale.ID)
	require.NoError(t, err)

	live, err := repo.ClaimNext(ctx, "worker-live")
	require.NoError(t, err)
	assert.NotEqual(t, stale.ID, live.ID)
	assert.Equal(t, fresh.ID, live.ID)

	n, err := repo.RequeueStaleProcessing(ctx, time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusPending, got.Status)
	assert.Nil(t, got.LockedBy)

	got, err = repo.GetByID(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusProcessing, got.Status)
}
