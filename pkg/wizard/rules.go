package wizard

import (
	"fmt"
	"strings"

	"github.com/ernitpt/goal-gift-service/pkg/common"
	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

// Bounds for a valid goal configuration. A goal runs 1-5 weeks, with
// 1-7 sessions per week, each session at most 3 hours.
const (
	MinTotalWeeks      = 1
	MaxTotalWeeks      = 5
	MinSessionsPerWeek = 1
	MaxSessionsPerWeek = 7
	MaxSessionMinutes  = 180
	MaxMinutesField    = 59
)

// RuleResult is the outcome of a single validation rule.
type RuleResult struct {
	Valid   bool
	Message string
}

// Rule is a stateless validation rule over an in-progress configuration.
// Rules never touch external services.
type Rule func(cfg *domain.GoalConfiguration) RuleResult

func pass() RuleResult {
	return RuleResult{Valid: true}
}

func fail(message string) RuleResult {
	return RuleResult{Valid: false, Message: message}
}

// RuleCategory requires a resolvable, non-empty category. For the
// "other" category the custom label must be non-blank after trimming.
func RuleCategory(cfg *domain.GoalConfiguration) RuleResult {
	if cfg.Category == "" {
		return fail("choose a category")
	}
	if !cfg.Category.IsValid() {
		return fail(fmt.Sprintf("unknown category: %s", cfg.Category))
	}
	if cfg.Category == domain.CategoryOther && strings.TrimSpace(cfg.CustomLabel) == "" {
		return fail("describe your own goal")
	}
	return pass()
}

// RuleDuration requires the normalized duration to land between 1 and 5
// weeks. Months convert at four weeks each, so "2 months" already
// exceeds the limit.
func RuleDuration(cfg *domain.GoalConfiguration) RuleResult {
	weeks := cfg.TotalWeeks()
	if weeks < MinTotalWeeks {
		return fail("set how long the goal runs")
	}
	if weeks > MaxTotalWeeks {
		return fail(fmt.Sprintf("goals can run at most %d weeks", MaxTotalWeeks))
	}
	return pass()
}

// RuleSessionsPerWeek requires between 1 and 7 sessions per week.
func RuleSessionsPerWeek(cfg *domain.GoalConfiguration) RuleResult {
	if cfg.SessionsPerWeek < MinSessionsPerWeek {
		return fail("set how many sessions per week")
	}
	if cfg.SessionsPerWeek > MaxSessionsPerWeek {
		return fail(fmt.Sprintf("at most %d sessions per week", MaxSessionsPerWeek))
	}
	return pass()
}

// RuleSessionTime requires the per-session time budget to be positive
// and at most 180 minutes. Exactly 180 minutes passes.
func RuleSessionTime(cfg *domain.GoalConfiguration) RuleResult {
	minutes := cfg.SessionMinutes()
	if minutes <= 0 {
		return fail("set how long each session lasts")
	}
	if minutes > MaxSessionMinutes {
		return fail("sessions can last at most 3 hours")
	}
	return pass()
}

// RuleStartDate requires the planned start date to be today or later,
// at calendar-day granularity. Date pickers refuse past dates, so in
// practice this rule never blocks a well-behaved client.
func RuleStartDate(cfg *domain.GoalConfiguration) RuleResult {
	if cfg.PlannedStartDate.IsZero() {
		return fail("pick a start date")
	}
	if common.IsBeforeToday(cfg.PlannedStartDate) {
		return fail("the start date can't be in the past")
	}
	return pass()
}

// RuleRewardRequired requires an experience to be selected. Only applied
// in flow variants where the reward is mandatory; in the gifted flow the
// reward comes from the redeemed gift and is fixed before the wizard opens.
func RuleRewardRequired(cfg *domain.GoalConfiguration) RuleResult {
	if cfg.ExperienceID == "" {
		return fail("pick a reward experience")
	}
	return pass()
}

// ValidateConfiguration runs every rule against a finished configuration
// at once, keyed by canonical field. Used as the final submission gate:
// submission must not reach any external service while this map is
// non-empty.
func ValidateConfiguration(cfg *domain.GoalConfiguration, requireReward bool) map[Field]string {
	rules := map[Field]Rule{
		FieldCategory:        RuleCategory,
		FieldDuration:        RuleDuration,
		FieldSessionsPerWeek: RuleSessionsPerWeek,
		FieldSessionTime:     RuleSessionTime,
		FieldStartDate:       RuleStartDate,
	}
	if requireReward {
		rules[FieldReward] = RuleRewardRequired
	}

	failed := make(map[Field]string)
	for field, rule := range rules {
		if res := rule(cfg); !res.Valid {
			failed[field] = res.Message
		}
	}
	return failed
}

// sanitizeDigits strips everything but ASCII digits from a numeric text
// input. "1h" becomes "1", "abc" becomes "".
func sanitizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseAmount parses a sanitized numeric text input. An empty string
// parses as 0 with set=false, so callers can tell "typed zero" from
// "never touched".
func parseAmount(s string) (value int, set bool) {
	s = sanitizeDigits(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		value = value*10 + int(r-'0')
		if value > 1_000_000 {
			return 1_000_000, true
		}
	}
	return value, true
}

// clampMinutes clamps a minutes value into [0, 59]. Applied on every
// keystroke, not only at submission.
func clampMinutes(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxMinutesField {
		return MaxMinutesField
	}
	return v
}
