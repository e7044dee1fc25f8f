package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/job"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
)

type JobsRepository interface {
	ClaimNext(ctx context.Context, workerID string) (job.Job, error)
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, errMsg string) error
	Reschedule(ctx context.Context, id string, runAt time.Time, errMsg string) error
	RequeueStaleProcessing(ctx context.Context, lockTTL time.Duration) (int64, error)
}

type Executor interface {
	Execute(ctx context.Context, j job.Job) error
}

type Config struct {
	PollInterval  time.Duration
	WorkerID      string
	Concurrency   int
	ShutdownGrace time.Duration
	LockTTL       time.Duration
}

type Worker struct {
	cfg   Config
	repo  JobsRepository
	exec  Executor
	prom  *observability.Prom
	tally *observability.JobTally

	readyMu sync.RWMutex
	ready   bool
}

func New(cfg Config, repo JobsRepository, exec Executor, prom *observability.Prom) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = 10 * time.Second
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = time.Minute
	}
	if cfg.WorkerID == "" {
		cfg.WorkerID = "worker"
	}

	return &Worker{
		cfg:   cfg,
		repo:  repo,
		exec:  exec,
		prom:  prom,
		tally: observability.NewJobTally(),
	}
}

func (w *Worker) Stats() observability.JobTallySnapshot {
	return w.tally.Snapshot()
}

func (w *Worker) setReady(v bool) {
	w.readyMu.Lock()
	w.ready = v
	w.readyMu.Unlock()
}

// Run polls for jobs with cfg.Concurrency loops until ctx is cancelled,
// then waits up to ShutdownGrace for in-flight jobs.
func (w *Worker) Run(ctx context.Context) error {
	// a job that was processing when a previous worker died goes back to pending
	if n, err := w.repo.RequeueStaleProcessing(ctx, w.cfg.LockTTL); err != nil {
		slog.WarnContext(ctx, "requeue stale jobs failed", "err", err)
	} else if n > 0 {
		slog.InfoContext(ctx, "requeued stale jobs", "count", n)
	}

	w.setReady(true)
	defer w.setReady(false)

	// jobs keep running on their own context so a shutdown does not cut a
	// notification write in half
	jobCtx, cancelJobs := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelJobs()

	var wg sync.WaitGroup
	for i := 0; i < w.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.loop(ctx, jobCtx)
		}()
	}

	<-ctx.Done()
	slog.Info("worker received shutdown signal", "worker_id", w.cfg.WorkerID)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(w.cfg.ShutdownGrace):
		slog.Warn("worker shutdown grace elapsed, cancelling in-flight jobs")
		cancelJobs()
		<-done
	}

	return nil
}

func (w *Worker) loop(ctx, jobCtx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// drain while there is work, then go back to polling
		for ctx.Err() == nil {
			processed, err := w.ProcessOne(jobCtx)
			if err != nil {
				slog.Error("process job failed", "worker_id", w.cfg.WorkerID, "err", err)
				break
			}
			if !processed {
				break
			}
		}
	}
}
