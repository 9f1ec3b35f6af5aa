package repository

import (
	"context"
	"testing"

	"chirp/internal/domain/repository"
)

// MockRepositoryFactory hands out the mock repositories inside a fake
// transaction. Every field is pre-built so a test only stubs what it uses.
type MockRepositoryFactory struct {
	User    *MockUserRepository
	Post    *MockPostRepository
	Comment *MockCommentRepository
	Follow  *MockFollowRepository
	Chat    *MockChatRepository
}

// NewMockRepositoryFactory creates a factory with all repository mocks wired
// to the test's lifecycle.
func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	return &MockRepositoryFactory{
		User:    NewMockUserRepository(t),
		Post:    NewMockPostRepository(t),
		Comment: NewMockCommentRepository(t),
		Follow:  NewMockFollowRepository(t),
		Chat:    NewMockChatRepository(t),
	}
}

func (f *MockRepositoryFactory) UserRepo() repository.UserRepository { return f.User }

func (f *MockRepositoryFactory) PostRepo() repository.PostRepository { return f.Post }

func (f *MockRepositoryFactory) CommentRepo() repository.CommentRepository { return f.Comment }

func (f *MockRepositoryFactory) FollowRepo() repository.FollowRepository { return f.Follow }

func (f *MockRepositoryFactory) ChatRepo() repository.ChatRepository { return f.Chat }

// immediateTransactionManager runs the closure against the mock factory with
// no real transaction underneath. The closure's error propagates unchanged,
// which matches the rollback contract of the production manager.
type immediateTransactionManager struct {
	factory *MockRepositoryFactory
}

// NewImmediateTransactionManager creates a TransactionManager for tests.
func NewImmediateTransactionManager(factory *MockRepositoryFactory) repository.TransactionManager {
	return &immediateTransactionManager{factory: factory}
}

func (m *immediateTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	return fn(m.factory)
}
