package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ernitpt/goal-gift-service/pkg/client"
	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

const reloadTimeout = 15 * time.Second

// InMemoryExperienceCache provides O(1) in-memory lookups over the
// experience catalog. All indexes are rebuilt atomically on reload, so
// readers never observe a partially built catalog.
type InMemoryExperienceCache struct {
	byID      map[string]*domain.Experience   // "experience-id" -> Experience
	byPartner map[string][]*domain.Experience // "partner" -> [Experiences]
	all       []*domain.Experience            // Full catalog (ordered)
	client    client.ExperienceClient         // Source for reload
	mu        sync.RWMutex                    // Protects all indexes
	logger    *slog.Logger
}

// NewInMemoryExperienceCache builds a cache from the catalog service.
// The initial fetch happens here; an error means the catalog could not
// be loaded and the service should not start without it.
func NewInMemoryExperienceCache(ctx context.Context, experienceClient client.ExperienceClient, logger *slog.Logger) (*InMemoryExperienceCache, error) {
	cache := &InMemoryExperienceCache{
		byID:      make(map[string]*domain.Experience),
		byPartner: make(map[string][]*domain.Experience),
		client:    experienceClient,
		logger:    logger,
	}

	experiences, err := experienceClient.ListExperiences(ctx)
	if err != nil {
		return nil, err
	}
	cache.buildCache(experiences)

	return cache, nil
}

// buildCache replaces all indexes with ones built from the given
// catalog snapshot.
func (c *InMemoryExperienceCache) buildCache(experiences []*domain.Experience) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID = make(map[string]*domain.Experience, len(experiences))
	c.byPartner = make(map[string][]*domain.Experience)
	c.all = make([]*domain.Experience, 0, len(experiences))

	for _, exp := range experiences {
		c.byID[exp.ID] = exp
		c.byPartner[exp.Partner] = append(c.byPartner[exp.Partner], exp)
		c.all = append(c.all, exp)
	}

	c.logger.Info("experience cache built",
		"experiences", len(c.all),
		"partners", len(c.byPartner),
	)
}

// GetExperienceByID retrieves an experience by its unique ID.
// Returns nil if the experience does not exist.
func (c *InMemoryExperienceCache) GetExperienceByID(experienceID string) *domain.Experience {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.byID[experienceID]
}

// GetExperiencesByPartner retrieves all experiences offered by a
// partner. Returns an empty slice when the partner has none.
func (c *InMemoryExperienceCache) GetExperiencesByPartner(partner string) []*domain.Experience {
	c.mu.RLock()
	defer c.mu.RUnlock()

	experiences := c.byPartner[partner]
	if experiences == nil {
		return []*domain.Experience{}
	}

	// Safe to return directly. Cached experiences are never mutated.
	return experiences
}

// GetAllExperiences retrieves the full catalog in the order the catalog
// service returned it.
func (c *InMemoryExperienceCache) GetAllExperiences() []*domain.Experience {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.all
}

// Reload refetches the catalog and rebuilds all indexes. On fetch
// failure the existing indexes stay in place.
func (c *InMemoryExperienceCache) Reload() error {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	experiences, err := c.client.ListExperiences(ctx)
	if err != nil {
		c.logger.Warn("experience cache reload failed, keeping previous catalog", "error", err)
		return err
	}

	c.buildCache(experiences)
	c.logger.Info("experience cache reloaded")

	return nil
}
