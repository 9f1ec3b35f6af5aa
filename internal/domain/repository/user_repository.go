// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByNickname reports whether a user with the nickname exists.
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)

	// ExistsByEmail reports whether a user with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Paginate lists users according to the parsed query. The path names the
	// resource for next-page link construction.
	Paginate(ctx context.Context, query *pagination.Query, path string) (*pagination.Page[*entity.User], error)

	// IncrementFollowerCount / DecrementFollowerCount adjust the confirmed
	// follower counter as an atomic storage-level operation.
	IncrementFollowerCount(ctx context.Context, userID int64) error
	DecrementFollowerCount(ctx context.Context, userID int64) error

	// IncrementFolloweeCount / DecrementFolloweeCount adjust the followee
	// counter as an atomic storage-level operation.
	IncrementFolloweeCount(ctx context.Context, userID int64) error
	DecrementFolloweeCount(ctx context.Context, userID int64) error
}
