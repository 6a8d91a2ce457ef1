package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
	"github.com/ernitpt/goal-gift-service/pkg/errors"
)

// HTTPExperienceClient calls the experience catalog service over HTTP.
type HTTPExperienceClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPExperienceClient creates a catalog client.
// A non-positive timeout falls back to 10 seconds.
func NewHTTPExperienceClient(baseURL, apiKey string, timeout time.Duration) *HTTPExperienceClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPExperienceClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetExperienceByID retrieves a single experience by ID.
func (c *HTTPExperienceClient) GetExperienceByID(ctx context.Context, experienceID string) (*domain.Experience, error) {
	endpoint := fmt.Sprintf("%s/v1/experiences/%s", c.baseURL, url.PathEscape(experienceID))

	body, err := c.get(ctx, endpoint, experienceID)
	if err != nil {
		return nil, err
	}

	var experience domain.Experience
	if err := json.Unmarshal(body, &experience); err != nil {
		return nil, fmt.Errorf("failed to decode experience response: %w", err)
	}

	return &experience, nil
}

// ListExperiences retrieves the full catalog.
func (c *HTTPExperienceClient) ListExperiences(ctx context.Context) ([]*domain.Experience, error) {
	endpoint := c.baseURL + "/v1/experiences"

	body, err := c.get(ctx, endpoint, "")
	if err != nil {
		return nil, err
	}

	var experiences []*domain.Experience
	if err := json.Unmarshal(body, &experiences); err != nil {
		return nil, fmt.Errorf("failed to decode experiences response: %w", err)
	}

	return experiences, nil
}

func (c *HTTPExperienceClient) get(ctx context.Context, endpoint, resourceID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to read
	case resp.StatusCode == http.StatusNotFound && resourceID != "":
		return nil, errors.ErrExperienceNotFound(resourceID)
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &AuthenticationError{Message: "catalog rejected credentials"}
	default:
		return nil, &CatalogError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("catalog returned status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}
	return body, nil
}
