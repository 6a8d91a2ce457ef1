// Package feed renders activity feed posts and manages reactions.
package feed

import (
	"fmt"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

// Item is the display model for one feed post.
type Item struct {
	PostID   string
	AuthorID string

	// Headline is the one-line summary shown for the post.
	Headline string

	// Detail is the secondary line, empty for kinds without one.
	Detail string

	// Supported is false for post kinds this version does not know.
	// Unsupported posts render a placeholder instead of being dropped,
	// so a feed from a newer backend stays readable.
	Supported bool
}

// RenderItem produces the display model for a post. Every known kind is
// handled explicitly; anything else falls through to the placeholder.
func RenderItem(post *domain.FeedPost) Item {
	item := Item{
		PostID:    post.ID,
		AuthorID:  post.AuthorID,
		Supported: true,
	}

	switch post.Kind {
	case domain.PostSessionProgress:
		p := post.SessionProgress
		if p == nil {
			break
		}
		item.Headline = fmt.Sprintf("Completed session %d of %d", p.SessionNumber, p.TotalSessions)
		item.Detail = p.Category
		if p.Comment != "" {
			item.Detail = fmt.Sprintf("%s · %s", p.Category, p.Comment)
		}
		return item

	case domain.PostGoalStarted:
		p := post.GoalStarted
		if p == nil {
			break
		}
		item.Headline = fmt.Sprintf("Started a %s goal", p.Category)
		item.Detail = fmt.Sprintf("%d weeks", p.TotalWeeks)
		return item

	case domain.PostGoalCompleted:
		p := post.GoalCompleted
		if p == nil {
			break
		}
		item.Headline = fmt.Sprintf("Completed a %s goal", p.Category)
		if p.ExperienceTitle != "" {
			item.Detail = fmt.Sprintf("Unlocked: %s", p.ExperienceTitle)
		}
		return item

	case domain.PostGiftSent:
		p := post.GiftSent
		if p == nil {
			break
		}
		item.Headline = fmt.Sprintf("Sent a gift to %s", p.RecipientName)
		item.Detail = p.ExperienceTitle
		return item
	}

	// Unknown kind, or a known kind missing its payload.
	item.Supported = false
	item.Headline = "New activity"
	return item
}
