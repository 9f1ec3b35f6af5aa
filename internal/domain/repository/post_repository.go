package repository

import (
	"context"
	"errors"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"
)

// ErrPostNotFound is a domain-specific error returned when a post is not found.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the standard operations for post persistence.
type PostRepository interface {
	// FindByID retrieves a single post with its author and ordered images.
	FindByID(ctx context.Context, id int64) (*entity.Post, error)

	// Create persists a new post entity to the storage.
	Create(ctx context.Context, post *entity.Post) error

	// Update modifies an existing post entity in the storage.
	Update(ctx context.Context, post *entity.Post) error

	// Delete removes a post by id.
	Delete(ctx context.Context, id int64) error

	// Exists reports whether a post with the id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// IsOwner reports whether the post's author is the given user.
	IsOwner(ctx context.Context, postID, userID int64) (bool, error)

	// Paginate lists posts according to the parsed query. The path names the
	// resource for next-page link construction.
	Paginate(ctx context.Context, query *pagination.Query, path string) (*pagination.Page[*entity.Post], error)

	// AttachImage persists an image record belonging to a post.
	AttachImage(ctx context.Context, image *entity.Image) error

	// IncrementCommentCount / DecrementCommentCount adjust the comment counter
	// as an atomic storage-level operation, paired with comment create/delete.
	IncrementCommentCount(ctx context.Context, postID int64) error
	DecrementCommentCount(ctx context.Context, postID int64) error
}
