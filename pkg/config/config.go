// Package config holds the two configuration surfaces of the service:
// environment-driven runtime settings and the JSON category catalog the
// wizard presents.
package config

// Catalog is the parsed categories.json file. It drives the category
// step of the goal wizard.
type Catalog struct {
	Categories []*Category `json:"categories"`
}

// Category is one selectable goal category.
type Category struct {
	// ID is the stable identifier stored on goals.
	ID string `json:"id"`

	// Label is the display name shown in the wizard.
	Label string `json:"label"`

	// Icon is an optional client-side icon hint.
	Icon string `json:"icon,omitempty"`

	// AllowsCustomLabel marks the free-text category. Exactly one
	// category in the catalog carries it.
	AllowsCustomLabel bool `json:"allows_custom_label,omitempty"`
}

// GetCategoryByID returns the category with the given ID, or nil.
func (c *Catalog) GetCategoryByID(id string) *Category {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat
		}
	}
	return nil
}
