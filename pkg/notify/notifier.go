// Package notify writes in-app notification records. Delivery (push,
// badges) belongs to downstream infrastructure; failures here are
// always best-effort from the caller's point of view.
package notify

import (
	"context"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

// Notifier creates notification records for a target user.
type Notifier interface {
	// CreateNotification writes one notification record.
	CreateNotification(ctx context.Context, targetUserID string, kind domain.NotificationKind,
		title, body string, metadata map[string]string, clearable bool) error
}
