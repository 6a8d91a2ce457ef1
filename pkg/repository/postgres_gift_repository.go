package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
	"github.com/ernitpt/goal-gift-service/pkg/errors"
)

// PostgresGiftRepository implements GiftRepository using PostgreSQL.
type PostgresGiftRepository struct {
	db *sql.DB
}

// NewPostgresGiftRepository creates a new PostgreSQL-backed gift repository.
func NewPostgresGiftRepository(db *sql.DB) *PostgresGiftRepository {
	return &PostgresGiftRepository{
		db: db,
	}
}

// GetGift retrieves a gift by ID.
func (r *PostgresGiftRepository) GetGift(ctx context.Context, giftID string) (*domain.ExperienceGift, error) {
	query := `
		SELECT id, giver_id, experience_id, message, status,
		       COALESCE(recipient_id, ''), claimed_at, created_at
		FROM experience_gifts
		WHERE id = $1
	`

	var gift domain.ExperienceGift
	err := r.db.QueryRowContext(ctx, query, giftID).Scan(
		&gift.ID,
		&gift.GiverID,
		&gift.ExperienceID,
		&gift.Message,
		&gift.Status,
		&gift.RecipientID,
		&gift.ClaimedAt,
		&gift.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrGiftNotFound(giftID)
	}

	if err != nil {
		return nil, errors.ErrDatabaseError("get gift", err)
	}

	return &gift, nil
}

// CreateGift persists a new pending gift.
func (r *PostgresGiftRepository) CreateGift(ctx context.Context, gift *domain.ExperienceGift) (*domain.ExperienceGift, error) {
	query := `
		INSERT INTO experience_gifts (
			id, giver_id, experience_id, message, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW()
		)
		RETURNING created_at
	`

	created := *gift
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.Status == "" {
		created.Status = domain.GiftPending
	}

	err := r.db.QueryRowContext(ctx, query,
		created.ID,
		created.GiverID,
		created.ExperienceID,
		created.Message,
		created.Status,
	).Scan(&created.CreatedAt)

	if err != nil {
		return nil, errors.ErrDatabaseError("create gift", err)
	}

	return &created, nil
}

// ClaimGift transitions a gift from pending to claimed in a single
// guarded UPDATE. The status predicate makes the write a compare-and-set:
// the row is only touched while still pending, so two concurrent
// claimants cannot both see an affected row. No row-level lock or
// explicit transaction is needed for a single-statement CAS.
func (r *PostgresGiftRepository) ClaimGift(ctx context.Context, giftID, recipientID string) error {
	query := `
		UPDATE experience_gifts
		SET status = 'claimed',
			recipient_id = $2,
			claimed_at = NOW()
		WHERE id = $1
		AND status = 'pending'
	`

	result, err := r.db.ExecContext(ctx, query, giftID, recipientID)
	if err != nil {
		return errors.ErrDatabaseError("claim gift", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError("check rows affected", err)
	}

	if rowsAffected == 0 {
		// No rows updated: either the gift does not exist or it is
		// already claimed. The caller needs to tell these apart, so do
		// a follow-up read to classify.
		gift, getErr := r.GetGift(ctx, giftID)
		if getErr != nil {
			return getErr // GIFT_NOT_FOUND or a database error
		}
		if gift.IsClaimed() {
			return errors.ErrGiftAlreadyClaimed(giftID)
		}
		return errors.NewGoalError(errors.ErrCodeTransactionFailed, "gift claim raced and did not settle", nil)
	}

	return nil
}
