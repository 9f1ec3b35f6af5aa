package repository

import (
	"context"
	"testing"

	"chirp/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockFollowRepository is a mock implementation of repository.FollowRepository.
type MockFollowRepository struct {
	mock.Mock
}

// NewMockFollowRepository creates a mock wired to the test's lifecycle.
func NewMockFollowRepository(t *testing.T) *MockFollowRepository {
	m := &MockFollowRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFollowRepository) Create(ctx context.Context, edge *entity.FollowEdge) error {
	args := m.Called(ctx, edge)

	return args.Error(0)
}

func (m *MockFollowRepository) FindByPair(ctx context.Context, followerID, followeeID int64) (*entity.FollowEdge, error) {
	args := m.Called(ctx, followerID, followeeID)
	if edge, ok := args.Get(0).(*entity.FollowEdge); ok {
		return edge, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockFollowRepository) Confirm(ctx context.Context, edgeID int64) error {
	args := m.Called(ctx, edgeID)

	return args.Error(0)
}

func (m *MockFollowRepository) DeleteByPair(ctx context.Context, followerID, followeeID int64) error {
	args := m.Called(ctx, followerID, followeeID)

	return args.Error(0)
}

func (m *MockFollowRepository) Followers(ctx context.Context, followeeID int64, includeNotConfirmed bool) ([]*entity.FollowEdge, error) {
	args := m.Called(ctx, followeeID, includeNotConfirmed)
	if edges, ok := args.Get(0).([]*entity.FollowEdge); ok {
		return edges, args.Error(1)
	}

	return nil, args.Error(1)
}
