package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// CatalogLoader loads and validates the category catalog from a JSON
// file. It performs file reading, JSON parsing, and validation.
type CatalogLoader struct {
	catalogPath string
	validator   *Validator
	logger      *slog.Logger
}

// NewCatalogLoader creates a new CatalogLoader instance.
func NewCatalogLoader(catalogPath string, logger *slog.Logger) *CatalogLoader {
	return &CatalogLoader{
		catalogPath: catalogPath,
		validator:   NewValidator(),
		logger:      logger,
	}
}

// LoadCatalog loads the catalog file and returns a validated Catalog.
// This is a fail fast operation: an invalid catalog prevents startup.
func (l *CatalogLoader) LoadCatalog() (*Catalog, error) {
	data, err := os.ReadFile(l.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	if err := l.validator.Validate(&catalog); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	l.logger.Info("category catalog loaded",
		"categories", len(catalog.Categories),
		"catalog_path", l.catalogPath,
	)

	return &catalog, nil
}
