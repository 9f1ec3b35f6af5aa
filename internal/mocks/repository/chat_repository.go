package repository

import (
	"context"
	"testing"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"

	"github.com/stretchr/testify/mock"
)

// MockChatRepository is a mock implementation of repository.ChatRepository.
type MockChatRepository struct {
	mock.Mock
}

// NewMockChatRepository creates a mock wired to the test's lifecycle.
func NewMockChatRepository(t *testing.T) *MockChatRepository {
	m := &MockChatRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockChatRepository) Create(ctx context.Context, chat *entity.Chat, memberIDs []int64) error {
	args := m.Called(ctx, chat, memberIDs)

	return args.Error(0)
}

func (m *MockChatRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)

	return args.Bool(0), args.Error(1)
}

func (m *MockChatRepository) Paginate(ctx context.Context, query *pagination.Query, path string) (*pagination.Page[*entity.Chat], error) {
	args := m.Called(ctx, query, path)
	if page, ok := args.Get(0).(*pagination.Page[*entity.Chat]); ok {
		return page, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockChatRepository) CreateMessage(ctx context.Context, message *entity.ChatMessage) error {
	args := m.Called(ctx, message)

	return args.Error(0)
}

func (m *MockChatRepository) PaginateMessages(ctx context.Context, chatID int64, query *pagination.Query, path string) (*pagination.Page[*entity.ChatMessage], error) {
	args := m.Called(ctx, chatID, query, path)
	if page, ok := args.Get(0).(*pagination.Page[*entity.ChatMessage]); ok {
		return page, args.Error(1)
	}

	return nil, args.Error(1)
}
