// Package submit orchestrates the final step of the goal wizard:
// validate, claim the gift when one is involved, create the goal, and
// notify the counterparty. The ordering matters: a goal must
// never exist for a gift that failed to claim.
package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
	"github.com/ernitpt/goal-gift-service/pkg/draft"
	"github.com/ernitpt/goal-gift-service/pkg/errors"
	"github.com/ernitpt/goal-gift-service/pkg/notify"
	"github.com/ernitpt/goal-gift-service/pkg/repository"
	"github.com/ernitpt/goal-gift-service/pkg/wizard"
)

// Request carries one submission attempt.
type Request struct {
	// UserID is the authenticated user, or empty for the deferred
	// sign-up path.
	UserID string

	// DeviceID scopes the parked draft when the user is not
	// authenticated yet.
	DeviceID string

	// GiftID selects the gifted-goal flow when non-empty.
	GiftID string

	// Confirmed records that the user explicitly confirmed the summary.
	// Authenticated submission refuses to run without it.
	Confirmed bool

	// RequireReward marks the flow variant where experience selection
	// is mandatory. Ignored in the gifted flow, where the gift fixes
	// the reward.
	RequireReward bool

	Configuration domain.GoalConfiguration
}

// Outcome is the result of a successful submission.
type Outcome struct {
	// Goal is the created goal on the authenticated path.
	Goal *domain.Goal

	// RedirectToSignup is set on the unauthenticated path: the draft was
	// parked and the caller should route to account creation.
	RedirectToSignup bool
}

// Submitter runs the submission sequence. At most one submission is in
// flight at a time; a second trigger while one runs fails fast instead
// of double-claiming.
type Submitter struct {
	goals    repository.GoalRepository
	gifts    repository.GiftRepository
	notifier notify.Notifier
	drafts   draft.Store
	logger   *slog.Logger

	inFlight atomic.Bool
	wg       sync.WaitGroup
}

// NewSubmitter wires a submitter from its collaborators.
func NewSubmitter(goals repository.GoalRepository, gifts repository.GiftRepository,
	notifier notify.Notifier, drafts draft.Store, logger *slog.Logger) *Submitter {
	return &Submitter{
		goals:    goals,
		gifts:    gifts,
		notifier: notifier,
		drafts:   drafts,
		logger:   logger,
	}
}

// Submit runs the submission sequence for the request.
//
// Unauthenticated: the configuration is parked in the draft store under
// the device key and the outcome asks for a sign-up redirect. No backend
// goal is created.
//
// Authenticated: claim the gift if one is involved, then create the
// goal, then fire a best-effort notification. Claim failure of any kind
// aborts before goal creation. Notification failure is logged and
// swallowed, never surfaced.
func (s *Submitter) Submit(ctx context.Context, req Request) (*Outcome, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, errors.ErrSubmissionInFlight()
	}
	defer s.inFlight.Store(false)

	// Re-validate before touching anything external. Field errors here
	// mean the wizard let something through or the client bypassed it.
	requireReward := req.RequireReward && req.GiftID == ""
	if failed := wizard.ValidateConfiguration(&req.Configuration, requireReward); len(failed) > 0 {
		for field, msg := range failed {
			return nil, errors.ErrValidationFailed(string(field), msg)
		}
	}

	if req.UserID == "" {
		return s.parkDraft(ctx, req)
	}

	if !req.Confirmed {
		return nil, errors.NewGoalError(errors.ErrCodeInvalidInput,
			"submission requires explicit confirmation", nil)
	}

	// The confirmation dialog can be dismissed any time before the claim
	// starts with no side effects. From the claim onward the sequence
	// must settle even if the caller goes away, so it runs detached from
	// the request's cancellation.
	seqCtx := context.WithoutCancel(ctx)

	var gift *domain.ExperienceGift
	if req.GiftID != "" {
		g, err := s.gifts.GetGift(seqCtx, req.GiftID)
		if err != nil {
			return nil, err
		}
		gift = g

		if err := s.gifts.ClaimGift(seqCtx, req.GiftID, req.UserID); err != nil {
			s.logger.Warn("gift claim failed, aborting submission",
				"gift_id", req.GiftID,
				"user_id", req.UserID,
				"code", errors.Code(err),
			)
			return nil, err
		}
	}

	goal := buildGoal(&req, gift)
	created, err := s.goals.CreateGoal(seqCtx, goal)
	if err != nil {
		if gift != nil {
			// Known gap: the gift is now claimed with no goal attached.
			// There is no automatic un-claim; log loudly so operators
			// can reconcile.
			s.logger.Error("goal creation failed after successful gift claim",
				"gift_id", gift.ID,
				"user_id", req.UserID,
				"error", err,
			)
		}
		return nil, errors.ErrGoalCreateFailed(err)
	}

	s.logger.Info("goal created",
		"goal_id", created.ID,
		"owner_id", created.OwnerID,
		"category", created.Category,
		"approval_status", created.ApprovalStatus,
	)

	s.notifyCounterparty(created, gift)

	return &Outcome{Goal: created}, nil
}

// Wait blocks until outstanding notification goroutines finish. Used at
// shutdown and by tests.
func (s *Submitter) Wait() {
	s.wg.Wait()
}

// parkDraft serializes the configuration for the deferred sign-up path.
// The draft re-hydrates the wizard with the same field set once the
// account exists.
func (s *Submitter) parkDraft(ctx context.Context, req Request) (*Outcome, error) {
	data, err := json.Marshal(req.Configuration)
	if err != nil {
		return nil, errors.ErrDraftStoreFailed(err)
	}

	if err := s.drafts.SetItem(ctx, draft.Key(req.DeviceID), data); err != nil {
		return nil, errors.ErrDraftStoreFailed(err)
	}

	s.logger.Info("draft parked for deferred sign-up", "device_id", req.DeviceID)

	return &Outcome{RedirectToSignup: true}, nil
}

// RestoreDraft loads and decodes a parked draft for the device, or
// (nil, nil) when none exists.
func (s *Submitter) RestoreDraft(ctx context.Context, deviceID string) (*domain.GoalConfiguration, error) {
	data, err := s.drafts.GetItem(ctx, draft.Key(deviceID))
	if err != nil {
		return nil, errors.ErrDraftStoreFailed(err)
	}
	if data == nil {
		return nil, nil
	}

	var cfg domain.GoalConfiguration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.ErrDraftStoreFailed(err)
	}
	return &cfg, nil
}

// buildGoal snapshots the configuration into a goal record. Self-gifted
// goals are auto-approved; everything else waits for the counterparty.
func buildGoal(req *Request, gift *domain.ExperienceGift) *domain.Goal {
	cfg := req.Configuration

	goal := &domain.Goal{
		OwnerID:          req.UserID,
		Category:         cfg.Category,
		CustomLabel:      strings.TrimSpace(cfg.CustomLabel),
		TotalWeeks:       cfg.TotalWeeks(),
		SessionsPerWeek:  cfg.SessionsPerWeek,
		SessionMinutes:   cfg.SessionMinutes(),
		PlannedStartDate: cfg.PlannedStartDate,
		ExperienceID:     cfg.ExperienceID,
		ApprovalStatus:   domain.ApprovalPending,
	}

	if gift != nil {
		goal.GiverID = gift.GiverID
		goal.GiftID = gift.ID
		// The redeemed gift fixes the reward regardless of wizard state.
		goal.ExperienceID = gift.ExperienceID
	}

	if goal.IsSelfGift() || goal.GiverID == "" {
		goal.ApprovalStatus = domain.ApprovalApproved
	}

	return goal
}

// notifyCounterparty fires the post-creation notification without
// blocking the submission result. Failures are logged and swallowed;
// the goal stands either way.
func (s *Submitter) notifyCounterparty(goal *domain.Goal, gift *domain.ExperienceGift) {
	if gift == nil || goal.IsSelfGift() {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		kind := domain.NotificationGiftClaimed
		title := "Your gift was redeemed"
		body := fmt.Sprintf("Your gift is backing a new %s goal: %d sessions over %d weeks.",
			goal.ResolvedCategory(), goal.TotalSessions(), goal.TotalWeeks)
		if goal.ApprovalStatus == domain.ApprovalPending {
			kind = domain.NotificationGoalApproval
			title = "A goal needs your approval"
		}

		metadata := map[string]string{
			"goal_id": goal.ID,
			"gift_id": gift.ID,
		}

		if err := s.notifier.CreateNotification(ctx, gift.GiverID, kind, title, body, metadata, true); err != nil {
			s.logger.Warn("counterparty notification failed",
				"goal_id", goal.ID,
				"target_user_id", gift.GiverID,
				"error", err,
			)
		}
	}()
}

// UserMessage translates a submission error into the single string shown
// to the user. Only the already-claimed case gets a specific message;
// everything else is generic and retryable from the user's point of view.
func UserMessage(err error) string {
	switch errors.Code(err) {
	case errors.ErrCodeGiftAlreadyClaimed:
		return "This gift has already been used by someone else."
	case errors.ErrCodeValidationFailed:
		return "Please fix the highlighted fields and try again."
	case errors.ErrCodeSubmissionInFlight:
		return "Hang on, your goal is still being created."
	default:
		return "Something went wrong creating your goal. Please try again."
	}
}
