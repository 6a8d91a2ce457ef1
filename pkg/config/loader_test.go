package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createTempCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write temp catalog: %v", err)
	}
	return path
}

func TestCatalogLoader_LoadCatalog(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("successful load", func(t *testing.T) {
		tmpFile := createTempCatalogFile(t, `{
			"categories": [
				{"id": "gym", "label": "Gym"},
				{"id": "running", "label": "Running"},
				{"id": "other", "label": "Something else", "allows_custom_label": true}
			]
		}`)

		loader := NewCatalogLoader(tmpFile, logger)
		catalog, err := loader.LoadCatalog()

		if err != nil {
			t.Fatalf("LoadCatalog() unexpected error = %v", err)
		}

		if len(catalog.Categories) != 3 {
			t.Errorf("expected 3 categories, got %d", len(catalog.Categories))
		}

		if cat := catalog.GetCategoryByID("running"); cat == nil || cat.Label != "Running" {
			t.Errorf("GetCategoryByID('running') = %v, want label 'Running'", cat)
		}

		if catalog.GetCategoryByID("nonexistent") != nil {
			t.Error("expected nil for unknown category ID")
		}
	})

	t.Run("file not found", func(t *testing.T) {
		loader := NewCatalogLoader("/nonexistent/categories.json", logger)
		_, err := loader.LoadCatalog()

		if err == nil {
			t.Fatal("LoadCatalog() expected error for missing file")
		}
		if !strings.Contains(err.Error(), "failed to read catalog file") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		tmpFile := createTempCatalogFile(t, `{not json`)

		loader := NewCatalogLoader(tmpFile, logger)
		_, err := loader.LoadCatalog()

		if err == nil {
			t.Fatal("LoadCatalog() expected error for invalid JSON")
		}
		if !strings.Contains(err.Error(), "failed to parse catalog JSON") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("validation failure surfaces", func(t *testing.T) {
		tmpFile := createTempCatalogFile(t, `{
			"categories": [
				{"id": "gym", "label": "Gym"}
			]
		}`)

		loader := NewCatalogLoader(tmpFile, logger)
		_, err := loader.LoadCatalog()

		if err == nil {
			t.Fatal("LoadCatalog() expected validation error")
		}
		if !strings.Contains(err.Error(), "catalog validation failed") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
