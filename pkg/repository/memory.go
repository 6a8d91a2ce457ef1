package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
	"github.com/ernitpt/goal-gift-service/pkg/errors"
)

// MemoryGoalRepository is an in-memory GoalRepository for tests and
// local development. Safe for concurrent use.
type MemoryGoalRepository struct {
	mu    sync.Mutex
	goals map[string]*domain.Goal
}

// NewMemoryGoalRepository creates an empty in-memory goal repository.
func NewMemoryGoalRepository() *MemoryGoalRepository {
	return &MemoryGoalRepository{
		goals: make(map[string]*domain.Goal),
	}
}

// CreateGoal stores a copy of the goal with assigned ID and timestamps.
func (r *MemoryGoalRepository) CreateGoal(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *goal
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.goals[created.ID] = &created
	out := created
	return &out, nil
}

// GetGoal retrieves a goal by ID.
func (r *MemoryGoalRepository) GetGoal(ctx context.Context, goalID string) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal, ok := r.goals[goalID]
	if !ok {
		return nil, errors.ErrGoalNotFound(goalID)
	}
	out := *goal
	return &out, nil
}

// GetGoalsByOwner retrieves all goals owned by a user, newest first.
func (r *MemoryGoalRepository) GetGoalsByOwner(ctx context.Context, ownerID string) ([]*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Goal, 0)
	for _, goal := range r.goals {
		if goal.OwnerID == ownerID {
			g := *goal
			out = append(out, &g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Count returns the number of stored goals.
func (r *MemoryGoalRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.goals)
}

// MemoryGiftRepository is an in-memory GiftRepository for tests and
// local development. ClaimGift performs the same compare-and-set the
// Postgres implementation does, under the repository mutex, so
// concurrent claim tests behave like the real store.
type MemoryGiftRepository struct {
	mu    sync.Mutex
	gifts map[string]*domain.ExperienceGift
}

// NewMemoryGiftRepository creates an empty in-memory gift repository.
func NewMemoryGiftRepository() *MemoryGiftRepository {
	return &MemoryGiftRepository{
		gifts: make(map[string]*domain.ExperienceGift),
	}
}

// GetGift retrieves a gift by ID.
func (r *MemoryGiftRepository) GetGift(ctx context.Context, giftID string) (*domain.ExperienceGift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	gift, ok := r.gifts[giftID]
	if !ok {
		return nil, errors.ErrGiftNotFound(giftID)
	}
	out := *gift
	return &out, nil
}

// CreateGift stores a copy of the gift as pending.
func (r *MemoryGiftRepository) CreateGift(ctx context.Context, gift *domain.ExperienceGift) (*domain.ExperienceGift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *gift
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.Status == "" {
		created.Status = domain.GiftPending
	}
	created.CreatedAt = time.Now().UTC()

	r.gifts[created.ID] = &created
	out := created
	return &out, nil
}

// ClaimGift atomically transitions pending -> claimed exactly once.
func (r *MemoryGiftRepository) ClaimGift(ctx context.Context, giftID, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gift, ok := r.gifts[giftID]
	if !ok {
		return errors.ErrGiftNotFound(giftID)
	}
	if gift.Status != domain.GiftPending {
		return errors.ErrGiftAlreadyClaimed(giftID)
	}

	now := time.Now().UTC()
	gift.Status = domain.GiftClaimed
	gift.RecipientID = recipientID
	gift.ClaimedAt = &now
	return nil
}
