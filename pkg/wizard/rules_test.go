package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ernitpt/goal-gift-service/pkg/common"
	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

func validConfig() domain.GoalConfiguration {
	return domain.GoalConfiguration{
		Category:               domain.CategoryGym,
		DurationValue:          3,
		DurationUnit:           domain.DurationWeeks,
		SessionsPerWeek:        3,
		SessionDurationHours:   1,
		SessionDurationMinutes: 0,
		PlannedStartDate:       common.Today(),
	}
}

func TestRuleCategory(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *domain.GoalConfiguration)
		wantValid bool
	}{
		{
			name:      "catalog category passes",
			mutate:    func(cfg *domain.GoalConfiguration) {},
			wantValid: true,
		},
		{
			name: "empty category fails",
			mutate: func(cfg *domain.GoalConfiguration) {
				cfg.Category = ""
			},
			wantValid: false,
		},
		{
			name: "unknown category fails",
			mutate: func(cfg *domain.GoalConfiguration) {
				cfg.Category = domain.GoalCategory("skydiving")
			},
			wantValid: false,
		},
		{
			name: "other with custom label passes",
			mutate: func(cfg *domain.GoalConfiguration) {
				cfg.Category = domain.CategoryOther
				cfg.CustomLabel = "rock climbing"
			},
			wantValid: true,
		},
		{
			name: "other with blank custom label fails",
			mutate: func(cfg *domain.GoalConfiguration) {
				cfg.Category = domain.CategoryOther
				cfg.CustomLabel = "   "
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			res := RuleCategory(&cfg)
			assert.Equal(t, tt.wantValid, res.Valid)
			if !tt.wantValid {
				assert.NotEmpty(t, res.Message)
			}
		})
	}
}

func TestRuleDuration(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		unit      domain.DurationUnit
		wantValid bool
	}{
		{name: "three weeks passes", value: 3, unit: domain.DurationWeeks, wantValid: true},
		{name: "five weeks is the inclusive max", value: 5, unit: domain.DurationWeeks, wantValid: true},
		{name: "six weeks fails", value: 6, unit: domain.DurationWeeks, wantValid: false},
		{name: "one month converts to four weeks", value: 1, unit: domain.DurationMonths, wantValid: true},
		{name: "two months converts to eight weeks and fails", value: 2, unit: domain.DurationMonths, wantValid: false},
		{name: "zero duration fails", value: 0, unit: domain.DurationWeeks, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.DurationValue = tt.value
			cfg.DurationUnit = tt.unit
			assert.Equal(t, tt.wantValid, RuleDuration(&cfg).Valid)
		})
	}
}

func TestRuleSessionsPerWeek(t *testing.T) {
	tests := []struct {
		name      string
		sessions  int
		wantValid bool
	}{
		{name: "one session passes", sessions: 1, wantValid: true},
		{name: "seven sessions is the inclusive max", sessions: 7, wantValid: true},
		{name: "eight sessions fails", sessions: 8, wantValid: false},
		{name: "zero sessions fails", sessions: 0, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.SessionsPerWeek = tt.sessions
			assert.Equal(t, tt.wantValid, RuleSessionsPerWeek(&cfg).Valid)
		})
	}
}

func TestRuleSessionTime(t *testing.T) {
	tests := []struct {
		name      string
		hours     int
		minutes   int
		wantValid bool
	}{
		{name: "one hour passes", hours: 1, minutes: 0, wantValid: true},
		{name: "exactly 180 minutes is the inclusive upper bound", hours: 3, minutes: 0, wantValid: true},
		{name: "181 minutes fails", hours: 3, minutes: 1, wantValid: false},
		{name: "zero time fails", hours: 0, minutes: 0, wantValid: false},
		{name: "minutes only passes", hours: 0, minutes: 45, wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.SessionDurationHours = tt.hours
			cfg.SessionDurationMinutes = tt.minutes
			assert.Equal(t, tt.wantValid, RuleSessionTime(&cfg).Valid)
		})
	}
}

func TestRuleStartDate(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		wantValid bool
	}{
		{name: "today passes", date: common.Today(), wantValid: true},
		{name: "later today passes", date: common.Today().Add(18 * time.Hour), wantValid: true},
		{name: "tomorrow passes", date: common.Today().AddDate(0, 0, 1), wantValid: true},
		{name: "yesterday fails", date: common.Today().AddDate(0, 0, -1), wantValid: false},
		{name: "zero date fails", date: time.Time{}, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.PlannedStartDate = tt.date
			assert.Equal(t, tt.wantValid, RuleStartDate(&cfg).Valid)
		})
	}
}

func TestRuleRewardRequired(t *testing.T) {
	cfg := validConfig()
	assert.False(t, RuleRewardRequired(&cfg).Valid)

	cfg.ExperienceID = "exp-1"
	assert.True(t, RuleRewardRequired(&cfg).Valid)
}

func TestSanitizeDigits(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "123", want: "123"},
		{input: "1h", want: "1"},
		{input: "abc", want: ""},
		{input: "", want: ""},
		{input: " 4 5 ", want: "45"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeDigits(tt.input), "input %q", tt.input)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantSet bool
	}{
		{input: "12", want: 12, wantSet: true},
		{input: "0", want: 0, wantSet: true},
		{input: "", want: 0, wantSet: false},
		{input: "no digits", want: 0, wantSet: false},
		{input: "7x", want: 7, wantSet: true},
	}

	for _, tt := range tests {
		got, set := parseAmount(tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, tt.wantSet, set, "input %q", tt.input)
	}
}

func TestClampMinutes(t *testing.T) {
	assert.Equal(t, 59, clampMinutes(75))
	assert.Equal(t, 0, clampMinutes(-3))
	assert.Equal(t, 30, clampMinutes(30))
	assert.Equal(t, 59, clampMinutes(59))
}

func TestValidation_ConcreteScenarioA(t *testing.T) {
	// category=gym, 3 weeks, 3 sessions/week, 1h sessions, start today
	cfg := validConfig()

	assert.True(t, RuleCategory(&cfg).Valid)
	assert.True(t, RuleDuration(&cfg).Valid)
	assert.True(t, RuleSessionsPerWeek(&cfg).Valid)
	assert.True(t, RuleSessionTime(&cfg).Valid)
	assert.True(t, RuleStartDate(&cfg).Valid)
	assert.Equal(t, 9, cfg.TotalSessions())
}
