// Package usecase provides testify mocks for the application-layer interfaces.
package usecase

import (
	"context"
	"testing"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"

	"github.com/stretchr/testify/mock"
)

// MockUserUsecase is a mock implementation of usecase.UserUsecase.
type MockUserUsecase struct {
	mock.Mock
}

// NewMockUserUsecase creates a mock wired to the test's lifecycle.
func NewMockUserUsecase(t *testing.T) *MockUserUsecase {
	m := &MockUserUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserUsecase) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserUsecase) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, query *pagination.Query) (*pagination.Page[*entity.User], error) {
	args := m.Called(ctx, query)
	if page, ok := args.Get(0).(*pagination.Page[*entity.User]); ok {
		return page, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserUsecase) Follow(ctx context.Context, followerID, followeeID int64) error {
	args := m.Called(ctx, followerID, followeeID)

	return args.Error(0)
}

func (m *MockUserUsecase) ConfirmFollow(ctx context.Context, followerID, followeeID int64) error {
	args := m.Called(ctx, followerID, followeeID)

	return args.Error(0)
}

func (m *MockUserUsecase) DeleteFollow(ctx context.Context, followerID, followeeID int64) error {
	args := m.Called(ctx, followerID, followeeID)

	return args.Error(0)
}

func (m *MockUserUsecase) Followers(ctx context.Context, followeeID int64, includeNotConfirmed bool) ([]*entity.FollowEdge, error) {
	args := m.Called(ctx, followeeID, includeNotConfirmed)
	if edges, ok := args.Get(0).([]*entity.FollowEdge); ok {
		return edges, args.Error(1)
	}

	return nil, args.Error(1)
}
