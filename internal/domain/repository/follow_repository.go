package repository

import (
	"context"
	"errors"

	"chirp/internal/domain/entity"
)

// ErrFollowNotFound is returned when no edge exists for an ordered pair.
var ErrFollowNotFound = errors.New("follow edge not found")

// ErrFollowExists is returned when an edge already exists for an ordered pair.
var ErrFollowExists = errors.New("follow edge already exists")

// FollowRepository defines the standard operations for follow-edge persistence.
type FollowRepository interface {
	// Create persists a new, unconfirmed follow edge. It fails with
	// ErrFollowExists when the ordered pair already has an edge.
	Create(ctx context.Context, edge *entity.FollowEdge) error

	// FindByPair retrieves the edge for an ordered (follower, followee) pair.
	FindByPair(ctx context.Context, followerID, followeeID int64) (*entity.FollowEdge, error)

	// Confirm flips the edge's isConfirmed flag to true.
	Confirm(ctx context.Context, edgeID int64) error

	// DeleteByPair removes the edge for an ordered pair. It fails with
	// ErrFollowNotFound when no edge exists.
	DeleteByPair(ctx context.Context, followerID, followeeID int64) error

	// Followers lists the edges pointing at the followee, optionally
	// including unconfirmed requests, with follower users loaded.
	Followers(ctx context.Context, followeeID int64, includeNotConfirmed bool) ([]*entity.FollowEdge, error)
}
