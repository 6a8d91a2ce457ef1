package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

func TestRenderItem(t *testing.T) {
	tests := []struct {
		name          string
		post          *domain.FeedPost
		wantHeadline  string
		wantDetail    string
		wantSupported bool
	}{
		{
			name: "session progress",
			post: &domain.FeedPost{
				ID:   "p1",
				Kind: domain.PostSessionProgress,
				SessionProgress: &domain.SessionProgressPost{
					Category:      "gym",
					SessionNumber: 4,
					TotalSessions: 9,
				},
			},
			wantHeadline:  "Completed session 4 of 9",
			wantDetail:    "gym",
			wantSupported: true,
		},
		{
			name: "session progress with comment",
			post: &domain.FeedPost{
				ID:   "p2",
				Kind: domain.PostSessionProgress,
				SessionProgress: &domain.SessionProgressPost{
					Category:      "running",
					SessionNumber: 1,
					TotalSessions: 12,
					Comment:       "first 5k!",
				},
			},
			wantHeadline:  "Completed session 1 of 12",
			wantDetail:    "running · first 5k!",
			wantSupported: true,
		},
		{
			name: "goal started",
			post: &domain.FeedPost{
				ID:          "p3",
				Kind:        domain.PostGoalStarted,
				GoalStarted: &domain.GoalStartedPost{Category: "reading", TotalWeeks: 3},
			},
			wantHeadline:  "Started a reading goal",
			wantDetail:    "3 weeks",
			wantSupported: true,
		},
		{
			name: "goal completed with reward",
			post: &domain.FeedPost{
				ID:   "p4",
				Kind: domain.PostGoalCompleted,
				GoalCompleted: &domain.GoalCompletedPost{
					Category:        "gym",
					ExperienceTitle: "Spa Day for Two",
				},
			},
			wantHeadline:  "Completed a gym goal",
			wantDetail:    "Unlocked: Spa Day for Two",
			wantSupported: true,
		},
		{
			name: "gift sent",
			post: &domain.FeedPost{
				ID:   "p5",
				Kind: domain.PostGiftSent,
				GiftSent: &domain.GiftSentPost{
					RecipientName:   "Ana",
					ExperienceTitle: "Surf Lesson in Ericeira",
				},
			},
			wantHeadline:  "Sent a gift to Ana",
			wantDetail:    "Surf Lesson in Ericeira",
			wantSupported: true,
		},
		{
			name:          "unknown kind renders placeholder",
			post:          &domain.FeedPost{ID: "p6", Kind: domain.PostKind("live_stream")},
			wantHeadline:  "New activity",
			wantSupported: false,
		},
		{
			name:          "known kind missing payload renders placeholder",
			post:          &domain.FeedPost{ID: "p7", Kind: domain.PostGoalStarted},
			wantHeadline:  "New activity",
			wantSupported: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := RenderItem(tt.post)

			assert.Equal(t, tt.post.ID, item.PostID)
			assert.Equal(t, tt.wantHeadline, item.Headline)
			assert.Equal(t, tt.wantDetail, item.Detail)
			assert.Equal(t, tt.wantSupported, item.Supported)
		})
	}
}
