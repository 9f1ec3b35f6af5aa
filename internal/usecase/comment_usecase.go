package usecase

import (
	"context"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"
)

// CommentUsecase defines the interface for comment-related business operations.
type CommentUsecase interface {
	// Paginate pages through the comments of one post.
	Paginate(ctx context.Context, postID int64, query *pagination.Query) (*pagination.Page[*entity.Comment], error)

	// GetByID retrieves a single comment of a post.
	GetByID(ctx context.Context, postID, commentID int64) (*entity.Comment, error)

	// Create persists the comment and increments the post's comment counter
	// in one transaction.
	Create(ctx context.Context, postID, authorID int64, text string) (*entity.Comment, error)

	// Update replaces the comment body.
	Update(ctx context.Context, postID, commentID int64, text string) (*entity.Comment, error)

	// Delete removes the comment and decrements the post's comment counter
	// in one transaction.
	Delete(ctx context.Context, postID, commentID int64) error

	// IsCommentMine reports whether the user authored the comment.
	IsCommentMine(ctx context.Context, commentID, userID int64) (bool, error)
}
