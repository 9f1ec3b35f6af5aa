package repository

import (
	"context"
	"errors"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"
)

// ErrCommentNotFound is a domain-specific error returned when a comment is not found.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository defines the standard operations for comment persistence.
type CommentRepository interface {
	// FindByID retrieves a single comment with its author.
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)

	// Create persists a new comment entity to the storage.
	Create(ctx context.Context, comment *entity.Comment) error

	// Update modifies an existing comment entity in the storage.
	Update(ctx context.Context, comment *entity.Comment) error

	// Delete removes a comment by id.
	Delete(ctx context.Context, id int64) error

	// IsOwner reports whether the comment's author is the given user.
	IsOwner(ctx context.Context, commentID, userID int64) (bool, error)

	// Paginate lists the comments of one post according to the parsed query.
	// The post id is a fixed constraint that client filters cannot override.
	Paginate(ctx context.Context, postID int64, query *pagination.Query, path string) (*pagination.Page[*entity.Comment], error)
}
