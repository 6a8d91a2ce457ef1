package config

import (
	"errors"
	"fmt"
)

// Validator validates category catalog files.
// It ensures catalog rules are met before the application starts.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate performs validation of the catalog:
// - At least one category exists
// - All category IDs are unique and non-empty
// - All labels are non-empty
// - Exactly one category allows a custom label
//
// Returns an error describing the first validation failure encountered.
func (v *Validator) Validate(catalog *Catalog) error {
	if len(catalog.Categories) == 0 {
		return errors.New("catalog must have at least one category")
	}

	ids := make(map[string]bool)
	customLabelCount := 0

	for _, category := range catalog.Categories {
		if category.ID == "" {
			return errors.New("category ID cannot be empty")
		}
		if category.Label == "" {
			return fmt.Errorf("category '%s' has empty label", category.ID)
		}

		if ids[category.ID] {
			return fmt.Errorf("duplicate category ID: %s", category.ID)
		}
		ids[category.ID] = true

		if category.AllowsCustomLabel {
			customLabelCount++
		}
	}

	if customLabelCount != 1 {
		return fmt.Errorf("exactly one category must allow a custom label, found %d", customLabelCount)
	}

	return nil
}
