package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

// MemoryNotifier records notifications in memory for tests and local
// development. FailWith, when set, is returned by every call, which
// lets tests exercise the swallow-and-log path. Safe for concurrent use.
type MemoryNotifier struct {
	mu       sync.Mutex
	records  []*domain.Notification
	FailWith error
}

// NewMemoryNotifier creates an empty in-memory notifier.
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

// CreateNotification records the notification, or fails with FailWith.
func (n *MemoryNotifier) CreateNotification(ctx context.Context, targetUserID string, kind domain.NotificationKind,
	title, body string, metadata map[string]string, clearable bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.FailWith != nil {
		return n.FailWith
	}

	n.records = append(n.records, &domain.Notification{
		ID:           uuid.NewString(),
		TargetUserID: targetUserID,
		Kind:         kind,
		Title:        title,
		Body:         body,
		Metadata:     metadata,
		Clearable:    clearable,
		CreatedAt:    time.Now().UTC(),
	})
	return nil
}

// Notifications returns a copy of all recorded notifications.
func (n *MemoryNotifier) Notifications() []*domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]*domain.Notification, len(n.records))
	copy(out, n.records)
	return out
}
