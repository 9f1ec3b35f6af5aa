package repository

import (
	"context"
	"testing"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"

	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock implementation of repository.PostRepository.
type MockPostRepository struct {
	mock.Mock
}

// NewMockPostRepository creates a mock wired to the test's lifecycle.
func NewMockPostRepository(t *testing.T) *MockPostRepository {
	m := &MockPostRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPostRepository) FindByID(ctx context.Context, id int64) (*entity.Post, error) {
	args := m.Called(ctx, id)
	if post, ok := args.Get(0).(*entity.Post); ok {
		return post, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)

	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)

	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockPostRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)

	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) IsOwner(ctx context.Context, postID, userID int64) (bool, error) {
	args := m.Called(ctx, postID, userID)

	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) Paginate(ctx context.Context, query *pagination.Query, path string) (*pagination.Page[*entity.Post], error) {
	args := m.Called(ctx, query, path)
	if page, ok := args.Get(0).(*pagination.Page[*entity.Post]); ok {
		return page, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPostRepository) AttachImage(ctx context.Context, image *entity.Image) error {
	args := m.Called(ctx, image)

	return args.Error(0)
}

func (m *MockPostRepository) IncrementCommentCount(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)

	return args.Error(0)
}

func (m *MockPostRepository) DecrementCommentCount(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)

	return args.Error(0)
}
