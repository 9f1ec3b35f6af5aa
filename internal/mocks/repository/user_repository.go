// Package repository provides testify mocks for the persistence interfaces.
package repository

import (
	"context"
	"testing"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock wired to the test's lifecycle.
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	args := m.Called(ctx, nickname)

	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) Paginate(ctx context.Context, query *pagination.Query, path string) (*pagination.Page[*entity.User], error) {
	args := m.Called(ctx, query, path)
	if page, ok := args.Get(0).(*pagination.Page[*entity.User]); ok {
		return page, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) IncrementFollowerCount(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *MockUserRepository) DecrementFollowerCount(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *MockUserRepository) IncrementFolloweeCount(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *MockUserRepository) DecrementFolloweeCount(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}
