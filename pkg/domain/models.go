package domain

import (
	"strings"
	"time"
)

// GoalCategory identifies the kind of habit a goal builds.
// The catalog of categories is fixed; CategoryOther allows a free-text label.
type GoalCategory string

const (
	// CategoryGym covers strength and fitness training sessions.
	CategoryGym GoalCategory = "gym"

	// CategoryRunning covers outdoor and treadmill running sessions.
	CategoryRunning GoalCategory = "running"

	// CategorySwimming covers pool and open-water swimming sessions.
	CategorySwimming GoalCategory = "swimming"

	// CategoryReading covers reading sessions (books, not feeds).
	CategoryReading GoalCategory = "reading"

	// CategoryMeditation covers mindfulness and meditation sessions.
	CategoryMeditation GoalCategory = "meditation"

	// CategoryLanguage covers language-learning study sessions.
	CategoryLanguage GoalCategory = "language"

	// CategoryOther is the free-text escape hatch. A goal with this
	// category must carry a non-empty CustomLabel.
	CategoryOther GoalCategory = "other"
)

// IsValid returns true if the category is a known catalog value.
func (c GoalCategory) IsValid() bool {
	switch c {
	case CategoryGym, CategoryRunning, CategorySwimming, CategoryReading,
		CategoryMeditation, CategoryLanguage, CategoryOther:
		return true
	default:
		return false
	}
}

// DurationUnit is the unit a goal's duration is expressed in.
type DurationUnit string

const (
	// DurationWeeks counts the duration value directly in weeks.
	DurationWeeks DurationUnit = "weeks"

	// DurationMonths counts the duration value in months; one month
	// converts to four weeks for all limit checks.
	DurationMonths DurationUnit = "months"
)

// IsValid returns true if the unit is a valid duration unit.
func (u DurationUnit) IsValid() bool {
	switch u {
	case DurationWeeks, DurationMonths:
		return true
	default:
		return false
	}
}

// GoalConfiguration is the in-progress goal setup owned by the wizard
// controller for its lifetime. All fields are plain values; validation
// lives in the wizard package, not here.
type GoalConfiguration struct {
	Category    GoalCategory `json:"category"`
	CustomLabel string       `json:"custom_label,omitempty"` // Required when Category is "other"

	DurationValue int          `json:"duration_value"`
	DurationUnit  DurationUnit `json:"duration_unit"`

	SessionsPerWeek        int `json:"sessions_per_week"`
	SessionDurationHours   int `json:"session_duration_hours"`
	SessionDurationMinutes int `json:"session_duration_minutes"`

	// PlannedStartDate is a calendar date; the time component is always
	// midnight UTC.
	PlannedStartDate time.Time `json:"planned_start_date"`

	// ExperienceID references the selected reward experience. In the
	// gifted flow it is fixed by the redeemed gift; in the free flow it
	// is chosen by the user (optional unless the flow requires one).
	ExperienceID string `json:"experience_id,omitempty"`
}

// TotalWeeks returns the goal duration normalized to weeks.
// A month counts as four weeks.
func (c *GoalConfiguration) TotalWeeks() int {
	if c.DurationUnit == DurationMonths {
		return c.DurationValue * 4
	}
	return c.DurationValue
}

// TotalSessions returns the total number of sessions across the whole goal.
func (c *GoalConfiguration) TotalSessions() int {
	return c.TotalWeeks() * c.SessionsPerWeek
}

// SessionMinutes returns the per-session time budget in minutes.
func (c *GoalConfiguration) SessionMinutes() int {
	return c.SessionDurationHours*60 + c.SessionDurationMinutes
}

// ResolvedCategory returns the display label for the category: the
// trimmed custom label for "other", else the category value itself.
func (c *GoalConfiguration) ResolvedCategory() string {
	if c.Category == CategoryOther {
		return strings.TrimSpace(c.CustomLabel)
	}
	return string(c.Category)
}

// ApprovalStatus represents whether the goal's counterparty has signed
// off on the configuration.
type ApprovalStatus string

const (
	// ApprovalPending indicates the counterparty has not yet approved.
	ApprovalPending ApprovalStatus = "pending"

	// ApprovalApproved indicates the goal is approved. Self-gifted goals
	// (giver == owner) are approved automatically at creation.
	ApprovalApproved ApprovalStatus = "approved"
)

// IsValid returns true if the status is a valid approval status.
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved:
		return true
	default:
		return false
	}
}

// Goal is a persisted habit-building commitment. It carries a snapshot
// of the validated configuration plus progress bookkeeping. Beyond
// initial construction this module never mutates it.
type Goal struct {
	ID      string `json:"id" db:"id"`
	OwnerID string `json:"owner_id" db:"owner_id"`
	GiverID string `json:"giver_id,omitempty" db:"giver_id"` // Empty for self-directed goals

	Category    GoalCategory `json:"category" db:"category"`
	CustomLabel string       `json:"custom_label,omitempty" db:"custom_label"`

	TotalWeeks      int `json:"total_weeks" db:"total_weeks"`
	SessionsPerWeek int `json:"sessions_per_week" db:"sessions_per_week"`
	SessionMinutes  int `json:"session_minutes" db:"session_minutes"`

	PlannedStartDate time.Time `json:"planned_start_date" db:"planned_start_date"`

	ExperienceID string `json:"experience_id,omitempty" db:"experience_id"`
	GiftID       string `json:"gift_id,omitempty" db:"gift_id"`

	CurrentCount   int            `json:"current_count" db:"current_count"`
	WeeklyCount    int            `json:"weekly_count" db:"weekly_count"`
	ApprovalStatus ApprovalStatus `json:"approval_status" db:"approval_status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TotalSessions returns the total number of sessions the goal commits to.
func (g *Goal) TotalSessions() int {
	return g.TotalWeeks * g.SessionsPerWeek
}

// ResolvedCategory returns the display label for the goal's category:
// the custom label for "other", else the category value itself.
func (g *Goal) ResolvedCategory() string {
	if g.Category == CategoryOther {
		return g.CustomLabel
	}
	return string(g.Category)
}

// IsSelfGift returns true when the acting giver is also the goal owner,
// which auto-approves the goal at creation.
func (g *Goal) IsSelfGift() bool {
	return g.GiverID != "" && g.GiverID == g.OwnerID
}

// GiftStatus represents the redemption state of an experience gift.
type GiftStatus string

const (
	// GiftPending indicates the gift has not been redeemed.
	GiftPending GiftStatus = "pending"

	// GiftClaimed indicates the gift has been redeemed by exactly one
	// recipient. The transition pending -> claimed happens at most once.
	GiftClaimed GiftStatus = "claimed"
)

// IsValid returns true if the status is a valid gift status.
func (s GiftStatus) IsValid() bool {
	switch s {
	case GiftPending, GiftClaimed:
		return true
	default:
		return false
	}
}

// ExperienceGift is a one-time redeemable token linking a purchased
// experience to a future recipient-set goal. Its lifecycle is owned by
// the backing store; the only transition is pending -> claimed.
type ExperienceGift struct {
	ID           string     `json:"id" db:"id"`
	GiverID      string     `json:"giver_id" db:"giver_id"`
	ExperienceID string     `json:"experience_id" db:"experience_id"`
	Message      string     `json:"message,omitempty" db:"message"`
	Status       GiftStatus `json:"status" db:"status"`
	RecipientID  string     `json:"recipient_id,omitempty" db:"recipient_id"`
	ClaimedAt    *time.Time `json:"claimed_at,omitempty" db:"claimed_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// IsClaimed returns true if the gift has already been redeemed.
func (g *ExperienceGift) IsClaimed() bool {
	return g.Status == GiftClaimed
}

// Experience is the read-model for a reward experience, used to populate
// display fields before submission. It is fetched from the experience
// catalog service and never written by this module.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Partner     string `json:"partner"`
	Description string `json:"description"`
	PriceCents  int    `json:"price_cents"`
	Currency    string `json:"currency"`
	ImageURL    string `json:"image_url"`
}

// NotificationKind identifies the kind of in-app notification record.
type NotificationKind string

const (
	// NotificationGoalCreated tells a giver their recipient set up a goal.
	NotificationGoalCreated NotificationKind = "goal_created"

	// NotificationGoalApproval asks a counterparty to approve a goal.
	NotificationGoalApproval NotificationKind = "goal_approval"

	// NotificationGiftClaimed tells a giver their gift was redeemed.
	NotificationGiftClaimed NotificationKind = "gift_claimed"
)

// IsValid returns true if the kind is a known notification kind.
func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationGoalCreated, NotificationGoalApproval, NotificationGiftClaimed:
		return true
	default:
		return false
	}
}

// Notification is an in-app notification record. Delivery (push, badge)
// is out of scope; this module only writes the record.
type Notification struct {
	ID           string            `json:"id" db:"id"`
	TargetUserID string            `json:"target_user_id" db:"target_user_id"`
	Kind         NotificationKind  `json:"kind" db:"kind"`
	Title        string            `json:"title" db:"title"`
	Body         string            `json:"body" db:"body"`
	Metadata     map[string]string `json:"metadata,omitempty" db:"-"`
	Clearable    bool              `json:"clearable" db:"clearable"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
}
