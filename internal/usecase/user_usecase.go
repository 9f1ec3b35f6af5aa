package usecase

import (
	"context"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"
)

// UserUsecase defines the interface for user and follow-graph operations.
type UserUsecase interface {
	// GetByID retrieves a single user.
	GetByID(ctx context.Context, id int64) (*entity.User, error)

	// GetByEmail retrieves a single user by email. Guards use it to load the
	// request principal from verified token claims.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// ListUsers pages through all users.
	ListUsers(ctx context.Context, query *pagination.Query) (*pagination.Page[*entity.User], error)

	// Follow records an unconfirmed follow request from follower to followee.
	Follow(ctx context.Context, followerID, followeeID int64) error

	// ConfirmFollow accepts a pending request. The caller is the followee;
	// the edge flips to confirmed and the counters move in one transaction.
	ConfirmFollow(ctx context.Context, followerID, followeeID int64) error

	// DeleteFollow removes the caller's follow edge and decrements the
	// counters in one transaction.
	DeleteFollow(ctx context.Context, followerID, followeeID int64) error

	// Followers lists the users following followeeID, optionally including
	// pending requests.
	Followers(ctx context.Context, followeeID int64, includeNotConfirmed bool) ([]*entity.FollowEdge, error)
}
