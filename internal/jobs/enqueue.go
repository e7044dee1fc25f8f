package jobs

import (
	"context"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/job"
)

type Creator interface {
	Create(ctx context.Context, req job.CreateRequest) (job.Job, error)
}

// Enqueue validates and encodes payload and inserts a pending job.
func Enqueue(ctx context.Context, c Creator, t JobType, payload any) (job.Job, error) {
	return enqueue(ctx, c, t, nil, payload)
}

// EnqueueOnce is Enqueue keyed by key: a second call with the same key
// returns the first job instead of queueing another.
func EnqueueOnce(ctx context.Context, c Creator, t JobType, key string, payload any) (job.Job, error) {
	return enqueue(ctx, c, t, &key, payload)
}

func enqueue(ctx context.Context, c Creator, t JobType, key *string, payload any) (job.Job, error) {
	if err := ValidatePayload(t, payload); err != nil {
		return job.Job{}, err
	}

	b, err := EncodePayload(t, payload)
	if err != nil {
		return job.Job{}, err
	}

	return c.Create(ctx, job.CreateRequest{
		Type:           string(t),
		Payload:        b,
		IdempotencyKey: key,
	})
}
