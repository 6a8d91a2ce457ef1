package notify

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
	"github.com/ernitpt/goal-gift-service/pkg/errors"
)

// PostgresNotifier implements Notifier using PostgreSQL.
type PostgresNotifier struct {
	db *sql.DB
}

// NewPostgresNotifier creates a new PostgreSQL-backed notifier.
func NewPostgresNotifier(db *sql.DB) *PostgresNotifier {
	return &PostgresNotifier{
		db: db,
	}
}

// CreateNotification writes one notification record.
func (n *PostgresNotifier) CreateNotification(ctx context.Context, targetUserID string, kind domain.NotificationKind,
	title, body string, metadata map[string]string, clearable bool) error {
	query := `
		INSERT INTO notifications (
			id, target_user_id, kind, title, body, metadata, clearable, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW()
		)
	`

	if metadata == nil {
		metadata = map[string]string{}
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return errors.ErrDatabaseError("encode notification metadata", err)
	}

	_, err = n.db.ExecContext(ctx, query,
		uuid.NewString(),
		targetUserID,
		kind,
		title,
		body,
		metaJSON,
		clearable,
	)
	if err != nil {
		return errors.ErrDatabaseError("create notification", err)
	}

	return nil
}
