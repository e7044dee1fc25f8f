// Package notifications pushes stored in-app notifications to an outbound
// channel (email, mobile push). Delivery is best effort: the in-app row is
// the source of truth.
package notifications

import (
	"context"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/notification"
)

type Pusher interface {
	Push(ctx context.Context, n notification.Notification) error
}
