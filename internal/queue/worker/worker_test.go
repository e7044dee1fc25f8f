package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/job"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/jobs"
)

type fakeRepo struct {
	next        []job.Job
	done        []string
	failed      []string
	rescheduled []string
}

func (f *fakeRepo) ClaimNext(context.Context, string) (job.Job, error) {
	if len(f.next) == 0 {
		return job.Job{}, job.ErrJobNotFound
	}
	j := f.next[0]
	f.next = f.next[1:]
	return j, nil
}

func (f *fakeRepo) MarkDone(_ context.Context, id string) error {
	f.done = append(f.done, id)
	return nil
}

func (f *fakeRepo) MarkFailed(_ context.Context, id string, _ string) error {
	f.failed = append(f.failed, id)
	return nil
}

func (f *fakeRepo) Reschedule(_ context.Context, id string, _ time.Time, _ string) error {
	f.rescheduled = append(f.rescheduled, id)
	return nil
}

func (f *fakeRepo) RequeueStaleProcessing(context.Context, time.Duration) (int64, error) {
	return 0, nil
}

type execFunc func(ctx context.Context, j job.Job) error

func (f execFunc) Execute(ctx context.Context, j job.Job) error { return f(ctx, j) }

func TestProcessOne(t *testing.T) {
	tests := []struct {
		name        string
		j           job.Job
		execErr     error
		wantDone    int
		wantFailed  int
		wantRetried int
	}{
		{"success", job.Job{ID: "j1", Type: "t", MaxAttempts: 3}, nil, 1, 0, 0},
		{"transient_retries", job.Job{ID: "j2", Type: "t", MaxAttempts: 3}, errors.New("db down"), 0, 0, 1},
		{"last_attempt_fails", job.Job{ID: "j3", Type: "t", Attempts: 2, MaxAttempts: 3}, errors.New("db down"), 0, 1, 0},
		{"permanent_fails_immediately", job.Job{ID: "j4", Type: "t", MaxAttempts: 3}, jobs.ErrInvalidJobPayload, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{next: []job.Job{tt.j}}
			w := New(Config{WorkerID: "test"}, repo, execFunc(func(context.Context, job.Job) error {
				return tt.execErr
			}), nil)

			processed, err := w.ProcessOne(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !processed {
				t.Fatalf("expected a job to be processed")
			}

			if len(repo.done) != tt.wantDone || len(repo.failed) != tt.wantFailed || len(repo.rescheduled) != tt.wantRetried {
				t.Fatalf("done=%d failed=%d rescheduled=%d", len(repo.done), len(repo.failed), len(repo.rescheduled))
			}
		})
	}
}

func TestProcessOne_Empty(t *testing.T) {
	w := New(Config{}, &fakeRepo{}, execFunc(func(context.Context, job.Job) error { return nil }), nil)

	processed, err := w.ProcessOne(context.Background())
	if err != nil || processed {
		t.Fatalf("expected (false, nil), got (%v, %v)", processed, err)
	}
}

func TestExponentialBackoff(t *testing.T) {
	if d := ExponentialBackoff(0); d < 2*time.Second || d > 2*time.Second+250*time.Millisecond {
		t.Fatalf("attempt 0: got %v", d)
	}
	if d := ExponentialBackoff(40); d < 5*time.Minute || d > 5*time.Minute+250*time.Millisecond {
		t.Fatalf("attempt 40 should be capped, got %v", d)
	}
}
