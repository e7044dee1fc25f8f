package notifications

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/notification"
)

// LogPusher stands in for a real provider and writes each push to the log.
// Latency and Fail simulate a slow or broken provider.
type LogPusher struct {
	Latency time.Duration
	Fail    bool
}

var errProviderDown = errors.New("push provider down (simulated)")

func NewLogPusher() *LogPusher { return &LogPusher{} }

func (p *LogPusher) Push(ctx context.Context, n notification.Notification) error {
	if p.Latency > 0 {
		select {
		case <-time.After(p.Latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if p.Fail {
		return errProviderDown
	}

	slog.InfoContext(ctx, "notification.pushed",
		"notification_id", n.ID,
		"account_id", n.AccountID,
		"title", n.Title,
	)
	return nil
}
