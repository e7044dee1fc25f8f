package handlers

import (
	"log/slog"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/job"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/jobs"
	"github.com/gin-gonic/gin"
)

// Notifier enqueues notification jobs for the worker. Enqueue failures are
// logged and never fail the request that caused them.
type Notifier struct {
	jobs jobs.Creator
}

func NewNotifier(c jobs.Creator) *Notifier {
	return &Notifier{jobs: c}
}

// enqueue queues payload; a non-empty key makes repeats of the same event a
// no-op.
func (n *Notifier) enqueue(ctx *gin.Context, t jobs.JobType, key string, payload any) {
	if n == nil || n.jobs == nil {
		return
	}

	var (
		j   job.Job
		err error
	)
	if key != "" {
		j, err = jobs.EnqueueOnce(ctx.Request.Context(), n.jobs, t, key, payload)
	} else {
		j, err = jobs.Enqueue(ctx.Request.Context(), n.jobs, t, payload)
	}
	if err != nil {
		slog.WarnContext(ctx.Request.Context(), "enqueue notification failed",
			"job_type", t, "err", err, "request_id", middlewares.RequestIDFrom(ctx))
		return
	}
	slog.DebugContext(ctx.Request.Context(), "notification enqueued", "job_id", j.ID, "job_type", t)
}

// Account notifies one account. key dedupes, pass "" to always send.
func (n *Notifier) Account(ctx *gin.Context, key, accountID, title, message string) {
	n.enqueue(ctx, jobs.JobNotifyAccount, key, jobs.NotifyAccountPayload{
		AccountID: accountID,
		Title:     title,
		Message:   message,
		RequestID: middlewares.RequestIDFrom(ctx),
	})
}

func (n *Notifier) Student(ctx *gin.Context, studentID, title, message string) {
	n.enqueue(ctx, jobs.JobNotifyStudent, "", jobs.NotifyStudentPayload{
		StudentID: studentID,
		Title:     title,
		Message:   message,
		RequestID: middlewares.RequestIDFrom(ctx),
	})
}

func (n *Notifier) Broadcast(ctx *gin.Context, title, message string) {
	n.enqueue(ctx, jobs.JobNotifyBroadcast, "", jobs.NotifyBroadcastPayload{
		Title:     title,
		Message:   message,
		RequestID: middlewares.RequestIDFrom(ctx),
	})
}
