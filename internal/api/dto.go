package api

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

var validate = validator.New()

// goalConfigurationDTO is the wire form of a goal configuration. The
// validator tags catch shape problems; the semantic rules (week caps,
// session time ceiling, start date) run in the wizard rule set after
// decoding.
type goalConfigurationDTO struct {
	Category               string `json:"category" validate:"required"`
	CustomLabel            string `json:"custom_label,omitempty"`
	DurationValue          int    `json:"duration_value" validate:"required,min=1"`
	DurationUnit           string `json:"duration_unit" validate:"required,oneof=weeks months"`
	SessionsPerWeek        int    `json:"sessions_per_week" validate:"required,min=1"`
	SessionDurationHours   int    `json:"session_duration_hours" validate:"min=0"`
	SessionDurationMinutes int    `json:"session_duration_minutes" validate:"min=0,max=59"`
	PlannedStartDate       string `json:"planned_start_date" validate:"required"`
	ExperienceID           string `json:"experience_id,omitempty"`
}

// toDomain converts the DTO into a domain configuration. The date is a
// calendar day in YYYY-MM-DD form.
func (d *goalConfigurationDTO) toDomain() (domain.GoalConfiguration, error) {
	startDate, err := time.ParseInLocation("2006-01-02", d.PlannedStartDate, time.UTC)
	if err != nil {
		return domain.GoalConfiguration{}, fmt.Errorf("invalid planned_start_date: %w", err)
	}

	return domain.GoalConfiguration{
		Category:               domain.GoalCategory(d.Category),
		CustomLabel:            d.CustomLabel,
		DurationValue:          d.DurationValue,
		DurationUnit:           domain.DurationUnit(d.DurationUnit),
		SessionsPerWeek:        d.SessionsPerWeek,
		SessionDurationHours:   d.SessionDurationHours,
		SessionDurationMinutes: d.SessionDurationMinutes,
		PlannedStartDate:       startDate,
		ExperienceID:           d.ExperienceID,
	}, nil
}

// submitGoalRequest is the body of POST /v1/goals.
type submitGoalRequest struct {
	GiftID        string               `json:"gift_id,omitempty"`
	Confirmed     bool                 `json:"confirmed"`
	RequireReward bool                 `json:"require_reward,omitempty"`
	Configuration goalConfigurationDTO `json:"configuration" validate:"required"`
}

// submitGoalResponse is the success body of POST /v1/goals.
type submitGoalResponse struct {
	Goal             *domain.Goal `json:"goal,omitempty"`
	RedirectToSignup bool         `json:"redirect_to_signup,omitempty"`
}

// validateGoalResponse is the body of POST /v1/goals/validate.
type validateGoalResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// claimGiftResponse is the success body of POST /v1/gifts/{giftID}/claim.
type claimGiftResponse struct {
	Gift *domain.ExperienceGift `json:"gift"`
}
