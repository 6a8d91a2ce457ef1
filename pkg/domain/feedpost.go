package domain

import "time"

// PostKind identifies the layout a feed post renders with.
// The set is closed; unknown kinds must fall through to an explicit
// fallback rather than being string-compared ad hoc.
type PostKind string

const (
	// PostSessionProgress reports a completed session toward a goal.
	PostSessionProgress PostKind = "session_progress"

	// PostGoalStarted announces a newly created goal.
	PostGoalStarted PostKind = "goal_started"

	// PostGoalCompleted announces a finished goal and unlocked reward.
	PostGoalCompleted PostKind = "goal_completed"

	// PostGiftSent announces that a gift was sent to a recipient.
	PostGiftSent PostKind = "gift_sent"
)

// IsValid returns true if the kind is a known post kind.
func (k PostKind) IsValid() bool {
	switch k {
	case PostSessionProgress, PostGoalStarted, PostGoalCompleted, PostGiftSent:
		return true
	default:
		return false
	}
}

// FeedPost is one entry in the activity feed. Exactly one of the
// kind-specific payload pointers is set, matching Kind.
type FeedPost struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Kind      PostKind  `json:"kind"`
	CreatedAt time.Time `json:"created_at"`

	SessionProgress *SessionProgressPost `json:"session_progress,omitempty"`
	GoalStarted     *GoalStartedPost     `json:"goal_started,omitempty"`
	GoalCompleted   *GoalCompletedPost   `json:"goal_completed,omitempty"`
	GiftSent        *GiftSentPost        `json:"gift_sent,omitempty"`

	Reactions []Reaction `json:"reactions,omitempty"`
}

// SessionProgressPost is the payload for a session-progress post.
type SessionProgressPost struct {
	GoalID        string `json:"goal_id"`
	Category      string `json:"category"`
	SessionNumber int    `json:"session_number"`
	TotalSessions int    `json:"total_sessions"`
	Comment       string `json:"comment,omitempty"`
}

// GoalStartedPost is the payload for a goal-started post.
type GoalStartedPost struct {
	GoalID     string `json:"goal_id"`
	Category   string `json:"category"`
	TotalWeeks int    `json:"total_weeks"`
}

// GoalCompletedPost is the payload for a goal-completed post.
type GoalCompletedPost struct {
	GoalID          string `json:"goal_id"`
	Category        string `json:"category"`
	ExperienceID    string `json:"experience_id,omitempty"`
	ExperienceTitle string `json:"experience_title,omitempty"`
}

// GiftSentPost is the payload for a gift-sent post.
type GiftSentPost struct {
	GiftID          string `json:"gift_id"`
	RecipientName   string `json:"recipient_name"`
	ExperienceTitle string `json:"experience_title"`
}

// Reaction is one user's reaction on a feed post.
type Reaction struct {
	UserID string `json:"user_id"`
	Emoji  string `json:"emoji"`
}
