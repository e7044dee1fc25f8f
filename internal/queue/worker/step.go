package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/job"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/jobs"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
)

// ProcessOne claims and runs at most one job. It reports whether a job was
// claimed.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	claimCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	j, err := w.repo.ClaimNext(claimCtx, w.cfg.WorkerID)
	cancel()

	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			return false, nil
		}
		return false, err
	}

	w.tally.Claimed(j.Type)
	if w.prom != nil {
		w.prom.JobsInFlight.Inc()
		defer w.prom.JobsInFlight.Dec()
	}

	start := time.Now()
	err = w.exec.Execute(ctx, j)
	elapsed := time.Since(start)

	if err != nil {
		result := w.handleFailure(ctx, j, err)
		w.observe(j.Type, result, elapsed)
		return true, nil
	}

	if err := w.repo.MarkDone(ctx, j.ID); err != nil {
		_ = w.repo.MarkFailed(ctx, j.ID, "mark_done_failed: "+err.Error())
		w.observe(j.Type, observability.JobFailed, elapsed)
		return true, err
	}

	w.observe(j.Type, observability.JobDone, elapsed)
	slog.Debug("job done", "job_id", j.ID, "job_type", j.Type, "duration_ms", elapsed.Milliseconds())

	return true, nil
}

func (w *Worker) handleFailure(ctx context.Context, j job.Job, cause error) string {
	msg := cause.Error()

	if jobs.IsPermanent(cause) || j.Attempts+1 >= j.MaxAttempts {
		slog.Error("job failed permanently",
			"job_id", j.ID, "job_type", j.Type, "attempts", j.Attempts+1, "err", cause)

		if err := w.repo.MarkFailed(ctx, j.ID, msg); err != nil {
			slog.Error("mark job failed", "job_id", j.ID, "err", err)
		}
		return observability.JobFailed
	}

	runAt := time.Now().UTC().Add(ExponentialBackoff(j.Attempts))
	slog.Warn("job failed, retrying",
		"job_id", j.ID, "job_type", j.Type, "attempt", j.Attempts+1, "run_at", runAt, "err", cause)

	if err := w.repo.Reschedule(ctx, j.ID, runAt, msg); err != nil {
		slog.Error("reschedule job", "job_id", j.ID, "err", err)
	}
	return observability.JobRetry
}

func (w *Worker) observe(jobType, result string, d time.Duration) {
	w.tally.Finished(jobType, result, d)
	if w.prom == nil {
		return
	}
	w.prom.JobResults.WithLabelValues(jobType, result).Inc()
	w.prom.JobDuration.WithLabelValues(jobType, result).Observe(d.Seconds())
}
