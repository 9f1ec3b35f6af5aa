package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to run multi-step writes atomically without
// depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a single database transaction. If the
	// function returns an error, the transaction is rolled back and the
	// original error is returned unchanged; otherwise it is committed. All
	// repository operations obtained from the factory share that transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repository instances bound to one transaction.
// A factory is only reachable inside Execute, so a transaction-scoped handle
// can never leak outside the request that created it.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// PostRepo returns a PostRepository bound to the current transaction.
	PostRepo() PostRepository

	// CommentRepo returns a CommentRepository bound to the current transaction.
	CommentRepo() CommentRepository

	// FollowRepo returns a FollowRepository bound to the current transaction.
	FollowRepo() FollowRepository

	// ChatRepo returns a ChatRepository bound to the current transaction.
	ChatRepo() ChatRepository
}
