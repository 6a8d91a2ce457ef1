package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the tables this service owns. Statements are idempotent
// so startup can apply them unconditionally.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS goals (
		id VARCHAR(64) PRIMARY KEY,
		owner_id VARCHAR(64) NOT NULL,
		giver_id VARCHAR(64) NULL,
		category VARCHAR(32) NOT NULL,
		custom_label VARCHAR(255) NOT NULL DEFAULT '',
		total_weeks INT NOT NULL,
		sessions_per_week INT NOT NULL,
		session_minutes INT NOT NULL,
		planned_start_date TIMESTAMP NOT NULL,
		experience_id VARCHAR(64) NULL,
		gift_id VARCHAR(64) NULL,
		current_count INT NOT NULL DEFAULT 0,
		weekly_count INT NOT NULL DEFAULT 0,
		approval_status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		CONSTRAINT check_approval_status CHECK (approval_status IN ('pending', 'approved')),
		CONSTRAINT check_total_weeks CHECK (total_weeks BETWEEN 1 AND 5),
		CONSTRAINT check_sessions_per_week CHECK (sessions_per_week BETWEEN 1 AND 7),
		CONSTRAINT check_session_minutes CHECK (session_minutes BETWEEN 1 AND 180)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_owner ON goals(owner_id)`,
	`CREATE TABLE IF NOT EXISTS experience_gifts (
		id VARCHAR(64) PRIMARY KEY,
		giver_id VARCHAR(64) NOT NULL,
		experience_id VARCHAR(64) NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		recipient_id VARCHAR(64) NULL,
		claimed_at TIMESTAMP NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		CONSTRAINT check_gift_status CHECK (status IN ('pending', 'claimed')),
		CONSTRAINT check_claimed_has_recipient CHECK (status != 'claimed' OR recipient_id IS NOT NULL)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id VARCHAR(64) PRIMARY KEY,
		target_user_id VARCHAR(64) NOT NULL,
		kind VARCHAR(32) NOT NULL,
		title VARCHAR(255) NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		metadata JSONB NOT NULL DEFAULT '{}',
		clearable BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_target ON notifications(target_user_id)`,
}

// Migrate applies the service schema to the database.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
