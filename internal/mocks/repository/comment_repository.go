package repository

import (
	"context"
	"testing"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"

	"github.com/stretchr/testify/mock"
)

// MockCommentRepository is a mock implementation of repository.CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

// NewMockCommentRepository creates a mock wired to the test's lifecycle.
func NewMockCommentRepository(t *testing.T) *MockCommentRepository {
	m := &MockCommentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	args := m.Called(ctx, id)
	if comment, ok := args.Get(0).(*entity.Comment); ok {
		return comment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)

	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)

	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockCommentRepository) IsOwner(ctx context.Context, commentID, userID int64) (bool, error) {
	args := m.Called(ctx, commentID, userID)

	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) Paginate(ctx context.Context, postID int64, query *pagination.Query, path string) (*pagination.Page[*entity.Comment], error) {
	args := m.Called(ctx, postID, query, path)
	if page, ok := args.Get(0).(*pagination.Page[*entity.Comment]); ok {
		return page, args.Error(1)
	}

	return nil, args.Error(1)
}
