package submit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ernitpt/goal-gift-service/pkg/common"
	"github.com/ernitpt/goal-gift-service/pkg/domain"
	"github.com/ernitpt/goal-gift-service/pkg/draft"
	customerrors "github.com/ernitpt/goal-gift-service/pkg/errors"
	"github.com/ernitpt/goal-gift-service/pkg/notify"
	"github.com/ernitpt/goal-gift-service/pkg/repository"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// countingGiftRepo wraps a GiftRepository and counts ClaimGift calls.
// When Block is set, ClaimGift parks until Release is closed, which lets
// tests hold a submission in flight.
type countingGiftRepo struct {
	repository.GiftRepository
	mu         sync.Mutex
	claimCalls int
	Block      bool
	Release    chan struct{}
}

func (r *countingGiftRepo) ClaimGift(ctx context.Context, giftID, recipientID string) error {
	r.mu.Lock()
	r.claimCalls++
	block := r.Block
	r.mu.Unlock()

	if block {
		<-r.Release
	}
	return r.GiftRepository.ClaimGift(ctx, giftID, recipientID)
}

func (r *countingGiftRepo) ClaimCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.claimCalls
}

// failingGoalRepo fails every CreateGoal with the configured error.
type failingGoalRepo struct {
	repository.GoalRepository
	FailWith error
}

func (r *failingGoalRepo) CreateGoal(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	return r.GoalRepository.CreateGoal(ctx, goal)
}

type fixture struct {
	goals    *repository.MemoryGoalRepository
	gifts    *repository.MemoryGiftRepository
	notifier *notify.MemoryNotifier
	drafts   *draft.MemoryStore
}

func newFixture() *fixture {
	return &fixture{
		goals:    repository.NewMemoryGoalRepository(),
		gifts:    repository.NewMemoryGiftRepository(),
		notifier: notify.NewMemoryNotifier(),
		drafts:   draft.NewMemoryStore(),
	}
}

func (f *fixture) submitter() *Submitter {
	return NewSubmitter(f.goals, f.gifts, f.notifier, f.drafts, slog.Default())
}

func validRequest() Request {
	return Request{
		UserID:    "user-1",
		Confirmed: true,
		Configuration: domain.GoalConfiguration{
			Category:             domain.CategoryGym,
			DurationValue:        3,
			DurationUnit:         domain.DurationWeeks,
			SessionsPerWeek:      3,
			SessionDurationHours: 1,
			PlannedStartDate:     common.Today(),
		},
	}
}

func (f *fixture) pendingGift(t *testing.T, giverID string) *domain.ExperienceGift {
	t.Helper()
	gift, err := f.gifts.CreateGift(context.Background(), &domain.ExperienceGift{
		GiverID:      giverID,
		ExperienceID: "exp-1",
	})
	require.NoError(t, err)
	return gift
}

func TestSubmit_FreeFlowCreatesApprovedGoal(t *testing.T) {
	f := newFixture()
	s := f.submitter()

	out, err := s.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, out.Goal)

	assert.False(t, out.RedirectToSignup)
	assert.Equal(t, "user-1", out.Goal.OwnerID)
	assert.Equal(t, domain.ApprovalApproved, out.Goal.ApprovalStatus)
	assert.Equal(t, 3, out.Goal.TotalWeeks)
	assert.Equal(t, 60, out.Goal.SessionMinutes)
	assert.Equal(t, 1, f.goals.Count())
}

func TestSubmit_InvalidConfigurationNeverTouchesServices(t *testing.T) {
	f := newFixture()
	gifts := &countingGiftRepo{GiftRepository: f.gifts}
	s := NewSubmitter(f.goals, gifts, f.notifier, f.drafts, slog.Default())

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{
			name: "total weeks over limit",
			mutate: func(req *Request) {
				req.Configuration.DurationValue = 2
				req.Configuration.DurationUnit = domain.DurationMonths
			},
		},
		{
			name: "sessions per week over limit",
			mutate: func(req *Request) {
				req.Configuration.SessionsPerWeek = 8
			},
		},
		{
			name: "session time over 180 minutes",
			mutate: func(req *Request) {
				req.Configuration.SessionDurationHours = 3
				req.Configuration.SessionDurationMinutes = 1
			},
		},
		{
			name: "session time zero",
			mutate: func(req *Request) {
				req.Configuration.SessionDurationHours = 0
				req.Configuration.SessionDurationMinutes = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.GiftID = "gift-whatever"
			tt.mutate(&req)

			_, err := s.Submit(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, customerrors.ErrCodeValidationFailed, customerrors.Code(err))
		})
	}

	assert.Equal(t, 0, gifts.ClaimCalls(), "no claim may happen for invalid configurations")
	assert.Equal(t, 0, f.goals.Count(), "no goal may be created for invalid configurations")
}

func TestSubmit_UnauthenticatedParksDraftAndRedirects(t *testing.T) {
	f := newFixture()
	s := f.submitter()

	req := validRequest()
	req.UserID = ""
	req.DeviceID = "device-42"

	out, err := s.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, out.RedirectToSignup)
	assert.Nil(t, out.Goal)
	assert.Equal(t, 0, f.goals.Count(), "no goal may be created before sign-up")

	// The parked draft round-trips into the same configuration.
	data, err := f.drafts.GetItem(context.Background(), draft.Key("device-42"))
	require.NoError(t, err)
	require.NotNil(t, data)

	var parked domain.GoalConfiguration
	require.NoError(t, json.Unmarshal(data, &parked))
	assert.Equal(t, req.Configuration, parked)

	restored, err := s.RestoreDraft(context.Background(), "device-42")
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, req.Configuration, *restored)
}

func TestSubmit_GiftedFlowClaimsThenCreates(t *testing.T) {
	f := newFixture()
	s := f.submitter()
	gift := f.pendingGift(t, "giver-1")

	req := validRequest()
	req.GiftID = gift.ID

	out, err := s.Submit(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out.Goal)

	assert.Equal(t, gift.ID, out.Goal.GiftID)
	assert.Equal(t, "giver-1", out.Goal.GiverID)
	assert.Equal(t, "exp-1", out.Goal.ExperienceID, "the gift fixes the reward")
	assert.Equal(t, domain.ApprovalPending, out.Goal.ApprovalStatus)

	claimed, err := f.gifts.GetGift(context.Background(), gift.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GiftClaimed, claimed.Status)
	assert.Equal(t, "user-1", claimed.RecipientID)

	// Counterparty notification reaches the giver.
	s.Wait()
	notifications := f.notifier.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, "giver-1", notifications[0].TargetUserID)
	assert.Equal(t, domain.NotificationGoalApproval, notifications[0].Kind)
}

func TestSubmit_AlreadyClaimedGiftAbortsBeforeCreate(t *testing.T) {
	f := newFixture()
	s := f.submitter()
	gift := f.pendingGift(t, "giver-1")
	require.NoError(t, f.gifts.ClaimGift(context.Background(), gift.ID, "someone-else"))

	req := validRequest()
	req.GiftID = gift.ID

	_, err := s.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, customerrors.ErrCodeGiftAlreadyClaimed, customerrors.Code(err))
	assert.Equal(t, 0, f.goals.Count(), "no orphan goal on claim failure")
	assert.Equal(t, "This gift has already been used by someone else.", UserMessage(err))
}

func TestSubmit_MissingGiftAbortsBeforeCreate(t *testing.T) {
	f := newFixture()
	s := f.submitter()

	req := validRequest()
	req.GiftID = "no-such-gift"

	_, err := s.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, customerrors.ErrCodeGiftNotFound, customerrors.Code(err))
	assert.Equal(t, 0, f.goals.Count())
}

func TestSubmit_GoalCreationFailureLeavesGiftClaimed(t *testing.T) {
	f := newFixture()
	goals := &failingGoalRepo{GoalRepository: f.goals, FailWith: errors.New("insert failed")}
	s := NewSubmitter(goals, f.gifts, f.notifier, f.drafts, slog.Default())
	gift := f.pendingGift(t, "giver-1")

	req := validRequest()
	req.GiftID = gift.ID

	_, err := s.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, customerrors.ErrCodeGoalCreateFailed, customerrors.Code(err))

	// Known gap: the claim is not compensated. The gift stays claimed.
	claimed, getErr := f.gifts.GetGift(context.Background(), gift.ID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.GiftClaimed, claimed.Status)

	s.Wait()
	assert.Empty(t, f.notifier.Notifications(), "no notification without a goal")
}

func TestSubmit_DoubleTapRunsExactlyOneSequence(t *testing.T) {
	f := newFixture()
	gifts := &countingGiftRepo{
		GiftRepository: f.gifts,
		Block:          true,
		Release:        make(chan struct{}),
	}
	s := NewSubmitter(f.goals, gifts, f.notifier, f.drafts, slog.Default())
	gift := f.pendingGift(t, "giver-1")

	req := validRequest()
	req.GiftID = gift.ID

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), req)
		firstDone <- err
	}()

	// Wait until the first submission is parked inside the claim.
	require.Eventually(t, func() bool { return gifts.ClaimCalls() == 1 },
		waitFor, tick, "first submission should reach the claim")

	// Second tap while the first is in flight fails fast.
	_, err := s.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, customerrors.ErrCodeSubmissionInFlight, customerrors.Code(err))

	close(gifts.Release)
	require.NoError(t, <-firstDone)

	assert.Equal(t, 1, gifts.ClaimCalls(), "exactly one claim call")
	assert.Equal(t, 1, f.goals.Count(), "at most one goal created")
}

func TestSubmit_UnconfirmedAuthenticatedSubmissionRefused(t *testing.T) {
	f := newFixture()
	gifts := &countingGiftRepo{GiftRepository: f.gifts}
	s := NewSubmitter(f.goals, gifts, f.notifier, f.drafts, slog.Default())

	req := validRequest()
	req.Confirmed = false

	_, err := s.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 0, gifts.ClaimCalls())
	assert.Equal(t, 0, f.goals.Count())
}

func TestSubmit_SelfGiftAutoApprovesAndSkipsNotification(t *testing.T) {
	f := newFixture()
	s := f.submitter()
	gift := f.pendingGift(t, "user-1") // giver is the submitting user

	req := validRequest()
	req.GiftID = gift.ID

	out, err := s.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, out.Goal.ApprovalStatus)

	s.Wait()
	assert.Empty(t, f.notifier.Notifications(), "self-gifts notify nobody")
}

func TestSubmit_NotificationFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.notifier.FailWith = errors.New("notification backend down")
	s := f.submitter()
	gift := f.pendingGift(t, "giver-1")

	req := validRequest()
	req.GiftID = gift.ID

	out, err := s.Submit(context.Background(), req)
	require.NoError(t, err, "notification failure must never surface")
	require.NotNil(t, out.Goal)
	assert.Equal(t, 1, f.goals.Count(), "the goal stands despite the failed notification")
	s.Wait()
}

func TestSubmit_RequiredRewardEnforcedInFreeFlow(t *testing.T) {
	f := newFixture()
	s := f.submitter()

	req := validRequest()
	req.RequireReward = true

	_, err := s.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, customerrors.ErrCodeValidationFailed, customerrors.Code(err))

	req.Configuration.ExperienceID = "exp-9"
	out, err := s.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "exp-9", out.Goal.ExperienceID)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "This gift has already been used by someone else.",
		UserMessage(customerrors.ErrGiftAlreadyClaimed("g")))
	assert.Equal(t, "Something went wrong creating your goal. Please try again.",
		UserMessage(customerrors.ErrGiftNotFound("g")))
	assert.Equal(t, "Something went wrong creating your goal. Please try again.",
		UserMessage(errors.New("boom")))
}
