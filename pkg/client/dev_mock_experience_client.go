package client

import (
	"context"
	"log"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
	"github.com/ernitpt/goal-gift-service/pkg/errors"
)

// DevMockExperienceClient is a simple static-catalog implementation for
// local development. Unlike MockExperienceClient (testify/mock), this
// doesn't require explicit setup and serves a small fixed catalog.
//
// Use this for local development when EXPERIENCE_CLIENT_MODE=mock.
// For tests, use MockExperienceClient instead.
type DevMockExperienceClient struct {
	catalog map[string]*domain.Experience
}

// NewDevMockExperienceClient creates a dev client with a small catalog.
func NewDevMockExperienceClient() *DevMockExperienceClient {
	experiences := []*domain.Experience{
		{
			ID:         "exp-spa-day",
			Title:      "Spa Day for Two",
			Partner:    "Serenity Spa",
			PriceCents: 14900,
			Currency:   "EUR",
		},
		{
			ID:         "exp-wine-tasting",
			Title:      "Douro Valley Wine Tasting",
			Partner:    "Quinta Tours",
			PriceCents: 8900,
			Currency:   "EUR",
		},
		{
			ID:         "exp-surf-lesson",
			Title:      "Surf Lesson in Ericeira",
			Partner:    "Atlantic Surf School",
			PriceCents: 4500,
			Currency:   "EUR",
		},
	}

	catalog := make(map[string]*domain.Experience, len(experiences))
	for _, exp := range experiences {
		catalog[exp.ID] = exp
	}
	return &DevMockExperienceClient{catalog: catalog}
}

// GetExperienceByID serves from the static catalog and logs the lookup.
func (d *DevMockExperienceClient) GetExperienceByID(ctx context.Context, experienceID string) (*domain.Experience, error) {
	log.Printf("[DevMock] GetExperienceByID: experienceID=%s", experienceID)

	exp, ok := d.catalog[experienceID]
	if !ok {
		return nil, errors.ErrExperienceNotFound(experienceID)
	}
	out := *exp
	return &out, nil
}

// ListExperiences serves the full static catalog.
func (d *DevMockExperienceClient) ListExperiences(ctx context.Context) ([]*domain.Experience, error) {
	log.Printf("[DevMock] ListExperiences: %d entries", len(d.catalog))

	out := make([]*domain.Experience, 0, len(d.catalog))
	for _, exp := range d.catalog {
		e := *exp
		out = append(out, &e)
	}
	return out, nil
}
