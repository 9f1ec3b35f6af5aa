package usecase

import (
	"context"
	"testing"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"

	"github.com/stretchr/testify/mock"
)

// MockChatUsecase is a mock implementation of usecase.ChatUsecase.
type MockChatUsecase struct {
	mock.Mock
}

// NewMockChatUsecase creates a mock wired to the test's lifecycle.
func NewMockChatUsecase(t *testing.T) *MockChatUsecase {
	m := &MockChatUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockChatUsecase) CreateChat(ctx context.Context, memberIDs []int64) (*entity.Chat, error) {
	args := m.Called(ctx, memberIDs)
	if chat, ok := args.Get(0).(*entity.Chat); ok {
		return chat, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockChatUsecase) ChatExists(ctx context.Context, chatID int64) (bool, error) {
	args := m.Called(ctx, chatID)

	return args.Bool(0), args.Error(1)
}

func (m *MockChatUsecase) PaginateChats(ctx context.Context, query *pagination.Query) (*pagination.Page[*entity.Chat], error) {
	args := m.Called(ctx, query)
	if page, ok := args.Get(0).(*pagination.Page[*entity.Chat]); ok {
		return page, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockChatUsecase) CreateMessage(ctx context.Context, chatID, authorID int64, text string) (*entity.ChatMessage, error) {
	args := m.Called(ctx, chatID, authorID, text)
	if message, ok := args.Get(0).(*entity.ChatMessage); ok {
		return message, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockChatUsecase) PaginateMessages(ctx context.Context, chatID int64, query *pagination.Query) (*pagination.Page[*entity.ChatMessage], error) {
	args := m.Called(ctx, chatID, query)
	if page, ok := args.Get(0).(*pagination.Page[*entity.ChatMessage]); ok {
		return page, args.Error(1)
	}

	return nil, args.Error(1)
}
