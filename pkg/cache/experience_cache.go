package cache

import "github.com/ernitpt/goal-gift-service/pkg/domain"

// ExperienceCache provides O(1) in-memory lookups over the experience
// catalog. The cache is built at application startup from the catalog
// service and is safe for concurrent readers.
type ExperienceCache interface {
	// GetExperienceByID retrieves an experience by its unique ID.
	// Returns nil if the experience does not exist.
	// Time complexity: O(1)
	GetExperienceByID(experienceID string) *domain.Experience

	// GetExperiencesByPartner retrieves all experiences offered by a
	// partner. Returns an empty slice when the partner has none.
	// Time complexity: O(1)
	GetExperiencesByPartner(partner string) []*domain.Experience

	// GetAllExperiences retrieves the full catalog in the order the
	// catalog service returned it.
	// Time complexity: O(1)
	GetAllExperiences() []*domain.Experience

	// Reload refetches the catalog and rebuilds all indexes.
	// Returns an error if the catalog service cannot be reached.
	Reload() error
}
