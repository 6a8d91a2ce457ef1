package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
	"github.com/ernitpt/goal-gift-service/pkg/errors"
)

// PostgresGoalRepository implements GoalRepository using PostgreSQL.
type PostgresGoalRepository struct {
	db *sql.DB
}

// NewPostgresGoalRepository creates a new PostgreSQL-backed goal repository.
func NewPostgresGoalRepository(db *sql.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{
		db: db,
	}
}

// CreateGoal persists a new goal record and returns it with the assigned
// ID and timestamps.
func (r *PostgresGoalRepository) CreateGoal(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	query := `
		INSERT INTO goals (
			id, owner_id, giver_id, category, custom_label,
			total_weeks, sessions_per_week, session_minutes,
			planned_start_date, experience_id, gift_id,
			current_count, weekly_count, approval_status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW()
		)
		RETURNING created_at, updated_at
	`

	created := *goal
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	err := r.db.QueryRowContext(ctx, query,
		created.ID,
		created.OwnerID,
		nullable(created.GiverID),
		created.Category,
		created.CustomLabel,
		created.TotalWeeks,
		created.SessionsPerWeek,
		created.SessionMinutes,
		created.PlannedStartDate,
		nullable(created.ExperienceID),
		nullable(created.GiftID),
		created.CurrentCount,
		created.WeeklyCount,
		created.ApprovalStatus,
	).Scan(&created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		return nil, errors.ErrDatabaseError("create goal", err)
	}

	return &created, nil
}

// GetGoal retrieves a goal by ID.
func (r *PostgresGoalRepository) GetGoal(ctx context.Context, goalID string) (*domain.Goal, error) {
	query := `
		SELECT id, owner_id, COALESCE(giver_id, ''), category, custom_label,
		       total_weeks, sessions_per_week, session_minutes,
		       planned_start_date, COALESCE(experience_id, ''), COALESCE(gift_id, ''),
		       current_count, weekly_count, approval_status,
		       created_at, updated_at
		FROM goals
		WHERE id = $1
	`

	var goal domain.Goal
	err := r.db.QueryRowContext(ctx, query, goalID).Scan(
		&goal.ID,
		&goal.OwnerID,
		&goal.GiverID,
		&goal.Category,
		&goal.CustomLabel,
		&goal.TotalWeeks,
		&goal.SessionsPerWeek,
		&goal.SessionMinutes,
		&goal.PlannedStartDate,
		&goal.ExperienceID,
		&goal.GiftID,
		&goal.CurrentCount,
		&goal.WeeklyCount,
		&goal.ApprovalStatus,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrGoalNotFound(goalID)
	}

	if err != nil {
		return nil, errors.ErrDatabaseError("get goal", err)
	}

	return &goal, nil
}

// GetGoalsByOwner retrieves all goals owned by a user, newest first.
func (r *PostgresGoalRepository) GetGoalsByOwner(ctx context.Context, ownerID string) ([]*domain.Goal, error) {
	query := `
		SELECT id, owner_id, COALESCE(giver_id, ''), category, custom_label,
		       total_weeks, sessions_per_week, session_minutes,
		       planned_start_date, COALESCE(experience_id, ''), COALESCE(gift_id, ''),
		       current_count, weekly_count, approval_status,
		       created_at, updated_at
		FROM goals
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, errors.ErrDatabaseError("get goals by owner", err)
	}
	defer func() { _ = rows.Close() }()

	goals := make([]*domain.Goal, 0)
	for rows.Next() {
		var goal domain.Goal
		if err := rows.Scan(
			&goal.ID,
			&goal.OwnerID,
			&goal.GiverID,
			&goal.Category,
			&goal.CustomLabel,
			&goal.TotalWeeks,
			&goal.SessionsPerWeek,
			&goal.SessionMinutes,
			&goal.PlannedStartDate,
			&goal.ExperienceID,
			&goal.GiftID,
			&goal.CurrentCount,
			&goal.WeeklyCount,
			&goal.ApprovalStatus,
			&goal.CreatedAt,
			&goal.UpdatedAt,
		); err != nil {
			return nil, errors.ErrDatabaseError("scan goal row", err)
		}
		goals = append(goals, &goal)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError("iterate goal rows", err)
	}

	return goals, nil
}

// nullable maps an empty string to SQL NULL for optional foreign keys.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
