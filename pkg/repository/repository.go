package repository

import (
	"context"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

// GoalRepository defines the interface for persisting goals.
// This interface abstracts database operations to allow for testing and
// different implementations.
type GoalRepository interface {
	// CreateGoal persists a new goal record, assigning its identifier
	// and creation timestamp. The goal is a snapshot of a validated
	// configuration; nothing mutates it afterwards from this module.
	CreateGoal(ctx context.Context, goal *domain.Goal) (*domain.Goal, error)

	// GetGoal retrieves a goal by ID.
	// Returns ErrGoalNotFound if no such goal exists.
	GetGoal(ctx context.Context, goalID string) (*domain.Goal, error)

	// GetGoalsByOwner retrieves all goals owned by a user, newest first.
	// Returns an empty slice if the user has no goals.
	GetGoalsByOwner(ctx context.Context, ownerID string) ([]*domain.Goal, error)
}

// GiftRepository defines the interface for experience gift lifecycle.
type GiftRepository interface {
	// GetGift retrieves a gift by ID.
	// Returns ErrGiftNotFound if no such gift exists.
	GetGift(ctx context.Context, giftID string) (*domain.ExperienceGift, error)

	// CreateGift persists a new pending gift.
	CreateGift(ctx context.Context, gift *domain.ExperienceGift) (*domain.ExperienceGift, error)

	// ClaimGift atomically transitions a gift from pending to claimed,
	// attaching the recipient and a claim timestamp. The transition is a
	// single compare-and-set: of two concurrent claimants on the same
	// gift, exactly one succeeds.
	//
	// Returns ErrGiftAlreadyClaimed if the gift was already claimed and
	// ErrGiftNotFound if it does not exist. The two must stay
	// distinguishable so the caller can tell the user "already used by
	// someone else" rather than a generic failure.
	ClaimGift(ctx context.Context, giftID, recipientID string) error
}
