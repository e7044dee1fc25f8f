package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/job"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JobsRepo is the durable notification queue. Workers claim rows with
// SKIP LOCKED; every terminal or retry write clears the lock.
type JobsRepo struct {
	base
}

func NewJobsRepo(pool *pgxpool.Pool, prom *observability.Prom) *JobsRepo {
	return &JobsRepo{base{pool: pool, prom: prom}}
}

const jobColumns = `id, type, payload, status, attempts, max_attempts, run_at, locked_at, locked_by,
	last_error, idempotency_key, created_at, updated_at`

func scanJob(row pgx.Row) (job.Job, error) {
	var (
		j      job.Job
		status string
	)
	err := row.Scan(&j.ID, &j.Type, &j.Payload, &status, &j.Attempts, &j.MaxAttempts,
		&j.RunAt, &j.LockedAt, &j.LockedBy, &j.LastError, &j.IdempotencyKey, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return job.Job{}, job.ErrJobNotFound
	}
	if err != nil {
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	return j, nil
}

// queryJob runs a single-row statement and scans the job it returns.
func (r *JobsRepo) queryJob(ctx context.Context, op, query string, args ...any) (job.Job, error) {
	var j job.Job
	err := r.observe(op, func() error {
		var err error
		j, err = scanJob(r.pool.QueryRow(ctx, query, args...))
		if errors.Is(err, job.ErrJobNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return job.Job{}, err
	}
	if j.ID == "" {
		return job.Job{}, job.ErrJobNotFound
	}
	return j, nil
}

// Create inserts a pending job. A repeated idempotency key returns the job
// already stored under it.
func (r *JobsRepo) Create(ctx context.Context, req job.CreateRequest) (job.Job, error) {
	j := job.New(req)

	return r.queryJob(ctx, "jobs.create", `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, 0, $5, $6, NULL, NULL, NULL, $7, $8, $8)
		ON CONFLICT (idempotency_key) DO UPDATE SET updated_at = jobs.updated_at
		RETURNING `+jobColumns,
		j.ID, j.Type, []byte(j.Payload), string(j.Status), j.MaxAttempts, j.RunAt, j.IdempotencyKey, j.CreatedAt)
}

func (r *JobsRepo) ClaimNext(ctx context.Context, workerID string) (job.Job, error) {
	return r.queryJob(ctx, "jobs.claim_next", `
		UPDATE jobs
		SET status = 'processing', locked_at = NOW(), locked_by = $1, updated_at = NOW()
		WHERE id = (
			SELECT id FROM jobs
			WHERE status = 'pending' AND run_at <= NOW() AND attempts < max_attempts
			ORDER BY run_at, created_at
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING `+jobColumns, workerID)
}

// release unlocks a claimed job and moves it to status. A nil runAt keeps
// the current schedule.
func (r *JobsRepo) release(ctx context.Context, op, id string, status job.Status, attempted bool, runAt *time.Time, lastErr *string) error {
	bump := 0
	if attempted {
		bump = 1
	}

	return r.observe(op, func() error {
		tag, err := r.pool.Exec(ctx, `
			UPDATE jobs
			SET status = $2,
			    attempts = attempts + $3,
			    run_at = COALESCE($4, run_at),
			    last_error = $5,
			    locked_at = NULL,
			    locked_by = NULL,
			    updated_at = NOW()
			WHERE id = $1`,
			id, string(status), bump, runAt, lastErr)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return job.ErrJobNotFound
		}
		return nil
	})
}

func (r *JobsRepo) MarkDone(ctx context.Context, id string) error {
	return r.release(ctx, "jobs.mark_done", id, job.StatusDone, false, nil, nil)
}

func (r *JobsRepo) MarkFailed(ctx context.Context, id string, errMsg string) error {
	return r.release(ctx, "jobs.mark_failed", id, job.StatusFailed, true, nil, &errMsg)
}

func (r *JobsRepo) Reschedule(ctx context.Context, id string, runAt time.Time, errMsg string) error {
	return r.release(ctx, "jobs.reschedule", id, job.StatusPending, true, &runAt, &errMsg)
}

// RequeueStaleProcessing hands back jobs locked for longer than lockTTL.
func (r *JobsRepo) RequeueStaleProcessing(ctx context.Context, lockTTL time.Duration) (int64, error) {
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	cutoff := time.Now().UTC().Add(-lockTTL)

	var n int64
	err := r.observe("jobs.requeue_stale", func() error {
		tag, err := r.pool.Exec(ctx, `
			UPDATE jobs
			SET status = 'pending', locked_at = NULL, locked_by = NULL, updated_at = NOW()
			WHERE status = 'processing' AND locked_at < $1`, cutoff)
		n = tag.RowsAffected()
		return err
	})
	return n, err
}

func (r *JobsRepo) GetByID(ctx context.Context, id string) (job.Job, error) {
	return r.queryJob(ctx, "jobs.get_by_id", `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
}
