package usecase

import (
	"context"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"
)

// --- Input DTOs ---

// CreatePostInput defines the data required to create a post. Images holds
// the staged file names, in display order.
type CreatePostInput struct {
	Title   string
	Content string
	Images  []string
}

// UpdatePostInput defines the partial update of a post. Nil fields are left
// unchanged.
type UpdatePostInput struct {
	Title   *string
	Content *string
}

// PostUsecase defines the interface for post-related business operations.
type PostUsecase interface {
	// Paginate pages through all posts.
	Paginate(ctx context.Context, query *pagination.Query) (*pagination.Page[*entity.Post], error)

	// GetByID retrieves a single post with author and images.
	GetByID(ctx context.Context, id int64) (*entity.Post, error)

	// Create persists the post and commits its staged images in one
	// transaction. A missing staged file fails the whole operation.
	Create(ctx context.Context, authorID int64, input *CreatePostInput) (*entity.Post, error)

	// Update applies a partial update and returns the updated post.
	Update(ctx context.Context, postID int64, input *UpdatePostInput) (*entity.Post, error)

	// Delete removes a post.
	Delete(ctx context.Context, postID int64) error

	// IsPostMine reports whether the user authored the post.
	IsPostMine(ctx context.Context, postID, userID int64) (bool, error)
}
