package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

// ReactionPersister persists a reaction change to the backend.
type ReactionPersister interface {
	// SetReaction adds (present=true) or removes (present=false) the
	// user's reaction on a post.
	SetReaction(ctx context.Context, postID, userID, emoji string, present bool) error
}

// ReactionToggler applies reaction toggles optimistically: the local
// state flips first so the UI responds immediately, then the backend
// call runs; on failure the pre-toggle state is restored.
type ReactionToggler struct {
	persister ReactionPersister
	logger    *slog.Logger

	mu        sync.Mutex
	reactions map[string][]domain.Reaction // post ID -> reactions
}

// NewReactionToggler creates a toggler over the given persister.
func NewReactionToggler(persister ReactionPersister, logger *slog.Logger) *ReactionToggler {
	return &ReactionToggler{
		persister: persister,
		logger:    logger,
		reactions: make(map[string][]domain.Reaction),
	}
}

// Load seeds the local reaction state for a post, typically from a
// fetched feed page.
func (t *ReactionToggler) Load(postID string, reactions []domain.Reaction) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reactions[postID] = append([]domain.Reaction(nil), reactions...)
}

// Reactions returns the current local reactions for a post.
func (t *ReactionToggler) Reactions(postID string) []domain.Reaction {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]domain.Reaction(nil), t.reactions[postID]...)
}

// Toggle flips the user's reaction on a post. The local list is updated
// before the backend call; if persisting fails the snapshot taken
// before the flip is restored and the error returned.
func (t *ReactionToggler) Toggle(ctx context.Context, postID, userID, emoji string) error {
	t.mu.Lock()
	snapshot := append([]domain.Reaction(nil), t.reactions[postID]...)
	present := t.flipLocked(postID, userID, emoji)
	t.mu.Unlock()

	if err := t.persister.SetReaction(ctx, postID, userID, emoji, present); err != nil {
		t.mu.Lock()
		t.reactions[postID] = snapshot
		t.mu.Unlock()

		t.logger.Warn("reaction toggle failed, rolled back",
			"post_id", postID,
			"user_id", userID,
			"error", err,
		)
		return err
	}

	return nil
}

// flipLocked toggles the reaction in local state and reports whether it
// is present after the flip. Caller holds the mutex.
func (t *ReactionToggler) flipLocked(postID, userID, emoji string) bool {
	current := t.reactions[postID]
	for i, r := range current {
		if r.UserID == userID && r.Emoji == emoji {
			t.reactions[postID] = append(current[:i:i], current[i+1:]...)
			return false
		}
	}

	t.reactions[postID] = append(current, domain.Reaction{UserID: userID, Emoji: emoji})
	return true
}
