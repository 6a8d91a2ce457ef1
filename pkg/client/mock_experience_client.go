package client

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ernitpt/goal-gift-service/pkg/domain"
)

// MockExperienceClient is a mock implementation of ExperienceClient for
// testing. It uses testify/mock to allow test assertions on method calls.
type MockExperienceClient struct {
	mock.Mock
}

// GetExperienceByID mocks a single-experience lookup.
func (m *MockExperienceClient) GetExperienceByID(ctx context.Context, experienceID string) (*domain.Experience, error) {
	args := m.Called(ctx, experienceID)
	if exp := args.Get(0); exp != nil {
		return exp.(*domain.Experience), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListExperiences mocks the catalog listing.
func (m *MockExperienceClient) ListExperiences(ctx context.Context) ([]*domain.Experience, error) {
	args := m.Called(ctx)
	if exps := args.Get(0); exps != nil {
		return exps.([]*domain.Experience), args.Error(1)
	}
	return nil, args.Error(1)
}

// NewMockExperienceClient creates a new mock experience client.
func NewMockExperienceClient() *MockExperienceClient {
	return &MockExperienceClient{}
}
