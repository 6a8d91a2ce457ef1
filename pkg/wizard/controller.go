package wizard

import (
	"time"

	"github.com/ernitpt/goal-gift-service/pkg/common"
	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

// Field identifies a wizard input. Edit fields (what the user types
// into) map onto canonical validation fields (what rules evaluate):
// duration value and unit both validate as FieldDuration, session hours
// and minutes both validate as FieldSessionTime.
type Field string

const (
	FieldCategory        Field = "category"
	FieldCustomLabel     Field = "custom_label"
	FieldDurationValue   Field = "duration_value"
	FieldDurationUnit    Field = "duration_unit"
	FieldSessionsPerWeek Field = "sessions_per_week"
	FieldSessionHours    Field = "session_hours"
	FieldSessionMinutes  Field = "session_minutes"
	FieldStartDate       Field = "start_date"
	FieldReward          Field = "reward"

	// Canonical validation fields for composite inputs.
	FieldDuration    Field = "duration"
	FieldSessionTime Field = "session_time"
)

// Wizard steps for the multi-step variant. The single-page variant
// validates everything as step 1.
const (
	StepCategory  = 1
	StepIntensity = 2
	StepStartDate = 3
	StepReward    = 4
)

// AdvanceOutcome is the result of an Advance call.
type AdvanceOutcome int

const (
	// AdvanceBlocked means the current step failed validation; blocking
	// errors were recorded and the step pointer did not move.
	AdvanceBlocked AdvanceOutcome = iota

	// AdvanceMoved means the step validated and the pointer moved forward.
	AdvanceMoved

	// AdvanceComplete means the final step validated; the caller should
	// proceed to submission.
	AdvanceComplete
)

// Options selects the wizard flow variant.
type Options struct {
	// SinglePage collapses the wizard to one step that validates all
	// fields at once.
	SinglePage bool

	// RequireReward makes experience selection mandatory (the variant
	// used for self-directed goals that must name their reward).
	RequireReward bool

	// Gifted marks the gifted-goal flow: the reward is fixed by the
	// redeemed gift and the reward step never blocks on user choice.
	Gifted bool
}

// Controller holds the in-progress goal configuration and the current
// step pointer. It advances only when the active step's fields validate,
// and it never calls an external service. All methods run on the single
// caller goroutine; the controller is not safe for concurrent use.
type Controller struct {
	opts Options
	step int
	cfg  domain.GoalConfiguration

	// Blocking errors appear only after a failed Advance or ValidateAll.
	errors map[Field]string

	// Live warnings appear as soon as an edited value would violate a
	// bound, before any submission attempt.
	warnings map[Field]string

	// touched tracks which canonical fields the user has edited, so
	// untouched fields never show a premature warning.
	touched map[Field]bool
}

// NewController creates a wizard controller for the given flow variant.
func NewController(opts Options) *Controller {
	return &Controller{
		opts:     opts,
		step:     1,
		errors:   make(map[Field]string),
		warnings: make(map[Field]string),
		touched:  make(map[Field]bool),
	}
}

// Steps returns the number of steps in this variant.
func (c *Controller) Steps() int {
	if c.opts.SinglePage {
		return 1
	}
	return 4
}

// Step returns the current step pointer, in [1, Steps()].
func (c *Controller) Step() int {
	return c.step
}

// Configuration returns a copy of the in-progress configuration.
func (c *Controller) Configuration() domain.GoalConfiguration {
	return c.cfg
}

// Errors returns the blocking validation errors by canonical field.
func (c *Controller) Errors() map[Field]string {
	out := make(map[Field]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Warnings returns the live warnings by canonical field.
func (c *Controller) Warnings() map[Field]string {
	out := make(map[Field]string, len(c.warnings))
	for k, v := range c.warnings {
		out[k] = v
	}
	return out
}

// UpdateField applies a raw text input to the configuration. Numeric
// inputs are sanitized to digits, minutes are clamped to [0, 59], and
// the field's blocking error is cleared optimistically so the UI does
// not show a stale warning mid-edit; real re-validation happens again
// at Advance and submission time.
func (c *Controller) UpdateField(field Field, raw string) {
	canonical := canonicalField(field)
	delete(c.errors, canonical)
	c.touched[canonical] = true

	switch field {
	case FieldCategory:
		c.cfg.Category = domain.GoalCategory(raw)
	case FieldCustomLabel:
		c.cfg.CustomLabel = raw
	case FieldDurationValue:
		c.cfg.DurationValue, _ = parseAmount(raw)
	case FieldDurationUnit:
		c.cfg.DurationUnit = domain.DurationUnit(raw)
	case FieldSessionsPerWeek:
		c.cfg.SessionsPerWeek, _ = parseAmount(raw)
	case FieldSessionHours:
		c.cfg.SessionDurationHours, _ = parseAmount(raw)
	case FieldSessionMinutes:
		v, _ := parseAmount(raw)
		c.cfg.SessionDurationMinutes = clampMinutes(v)
	case FieldStartDate:
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			c.cfg.PlannedStartDate = common.TruncateToDateUTC(t)
		} else {
			c.cfg.PlannedStartDate = time.Time{}
		}
	case FieldReward:
		c.cfg.ExperienceID = raw
	}

	c.refreshWarning(canonical)
}

// SetStartDate applies a picker-selected start date directly.
func (c *Controller) SetStartDate(t time.Time) {
	delete(c.errors, FieldStartDate)
	c.touched[FieldStartDate] = true
	c.cfg.PlannedStartDate = common.TruncateToDateUTC(t)
}

// SetExperience applies a selected reward experience directly.
func (c *Controller) SetExperience(experienceID string) {
	delete(c.errors, FieldReward)
	c.touched[FieldReward] = true
	c.cfg.ExperienceID = experienceID
}

// Advance validates the current step only. On success it clears that
// step's errors and moves the pointer forward; on the final step it
// reports AdvanceComplete instead, leaving submission to the caller.
// On failure it records blocking errors for the failing fields and does
// not move. Fields belonging to other steps never block this step.
func (c *Controller) Advance() AdvanceOutcome {
	failed := c.evaluate(c.stepRules(c.step))
	if len(failed) > 0 {
		for field, msg := range failed {
			c.errors[field] = msg
		}
		return AdvanceBlocked
	}

	for field := range c.stepRules(c.step) {
		delete(c.errors, field)
	}

	if c.step >= c.Steps() {
		return AdvanceComplete
	}
	c.step++
	return AdvanceMoved
}

// Retreat moves the pointer back one step. At step 1 it returns false,
// signalling "leave the wizard" (navigation pop) to the caller.
func (c *Controller) Retreat() bool {
	if c.step <= 1 {
		return false
	}
	c.step--
	return true
}

// ValidateAll runs every rule for this variant at once, recording
// blocking errors. Used by the single-page variant and as the final
// submission gate. Returns true when the configuration is submittable.
func (c *Controller) ValidateAll() bool {
	failed := c.evaluate(c.allRules())
	for field, msg := range failed {
		c.errors[field] = msg
	}
	return len(failed) == 0
}

// Snapshot returns the configuration for draft serialization. The draft
// carries the same field set as the configuration, so it re-hydrates a
// fresh controller after authentication completes.
func (c *Controller) Snapshot() domain.GoalConfiguration {
	return c.cfg
}

// Restore re-hydrates the controller from a draft configuration. All
// fields count as touched so warnings reflect the restored values.
func (c *Controller) Restore(cfg domain.GoalConfiguration) {
	c.cfg = cfg
	c.step = 1
	c.errors = make(map[Field]string)
	c.warnings = make(map[Field]string)
	c.touched = make(map[Field]bool)
	for _, f := range []Field{FieldCategory, FieldDuration, FieldSessionsPerWeek, FieldSessionTime, FieldStartDate, FieldReward} {
		c.touched[f] = true
		c.refreshWarning(f)
	}
}

// stepRules returns the canonical rules evaluated for a step.
func (c *Controller) stepRules(step int) map[Field]Rule {
	if c.opts.SinglePage {
		return c.allRules()
	}

	switch step {
	case StepCategory:
		return map[Field]Rule{FieldCategory: RuleCategory}
	case StepIntensity:
		return map[Field]Rule{
			FieldDuration:        RuleDuration,
			FieldSessionsPerWeek: RuleSessionsPerWeek,
			FieldSessionTime:     RuleSessionTime,
		}
	case StepStartDate:
		return map[Field]Rule{FieldStartDate: RuleStartDate}
	case StepReward:
		if c.opts.RequireReward && !c.opts.Gifted {
			return map[Field]Rule{FieldReward: RuleRewardRequired}
		}
		return map[Field]Rule{}
	default:
		return map[Field]Rule{}
	}
}

func (c *Controller) allRules() map[Field]Rule {
	rules := map[Field]Rule{
		FieldCategory:        RuleCategory,
		FieldDuration:        RuleDuration,
		FieldSessionsPerWeek: RuleSessionsPerWeek,
		FieldSessionTime:     RuleSessionTime,
		FieldStartDate:       RuleStartDate,
	}
	if c.opts.RequireReward && !c.opts.Gifted {
		rules[FieldReward] = RuleRewardRequired
	}
	return rules
}

func (c *Controller) evaluate(rules map[Field]Rule) map[Field]string {
	failed := make(map[Field]string)
	for field, rule := range rules {
		if res := rule(&c.cfg); !res.Valid {
			failed[field] = res.Message
		}
	}
	return failed
}

// refreshWarning recomputes the live warning for one canonical field.
// Only the intensity fields warn live; category and start date surface
// problems through blocking errors and the date picker respectively.
func (c *Controller) refreshWarning(field Field) {
	var rule Rule
	switch field {
	case FieldDuration:
		rule = RuleDuration
	case FieldSessionsPerWeek:
		rule = RuleSessionsPerWeek
	case FieldSessionTime:
		rule = RuleSessionTime
	default:
		return
	}

	if !c.touched[field] {
		delete(c.warnings, field)
		return
	}

	if res := rule(&c.cfg); !res.Valid {
		c.warnings[field] = res.Message
	} else {
		delete(c.warnings, field)
	}
}

func canonicalField(field Field) Field {
	switch field {
	case FieldDurationValue, FieldDurationUnit:
		return FieldDuration
	case FieldSessionHours, FieldSessionMinutes:
		return FieldSessionTime
	case FieldCustomLabel:
		return FieldCategory
	default:
		return field
	}
}
