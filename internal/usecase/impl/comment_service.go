package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "chirp/internal/delivery/context"
	"chirp/internal/domain/entity"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/domain/repository"
	"chirp/internal/pagination"
	"chirp/internal/usecase"

	"github.com/pkg/errors"
)

// commentService implements the CommentUsecase interface.
type commentService struct {
	txManager   repository.TransactionManager
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	logger      *slog.Logger
}

// NewCommentService is the constructor for commentService.
func NewCommentService(
	txManager repository.TransactionManager,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	logger *slog.Logger,
) usecase.CommentUsecase {
	return &commentService{
		txManager:   txManager,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (srv *commentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func commentsResourcePath(postID int64) string {
	return fmt.Sprintf("posts/%d/comments", postID)
}

// Paginate pages through the comments of one post.
func (srv *commentService) Paginate(ctx context.Context, postID int64, query *pagination.Query) (*pagination.Page[*entity.Comment], error) {
	if err := srv.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}

	page, err := srv.commentRepo.Paginate(ctx, postID, query, commentsResourcePath(postID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to paginate comments")
	}

	return page, nil
}

// GetByID retrieves a single comment of a post.
func (srv *commentService) GetByID(ctx context.Context, postID, commentID int64) (*entity.Comment, error) {
	comment, err := srv.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, domainerrors.ErrCommentNotFound
		}

		return nil, errors.Wrap(err, "failed to find comment by id")
	}

	// A comment fetched through another post's URL does not exist there.
	if comment.PostID != postID {
		return nil, domainerrors.ErrCommentNotFound
	}

	return comment, nil
}

// Create persists the comment and increments the post's comment counter in
// one transaction, so the counter can never drift from the rows.
func (srv *commentService) Create(ctx context.Context, postID, authorID int64, text string) (*entity.Comment, error) {
	srv.log(ctx).Debug("Creating comment", slog.Int64("postID", postID), slog.Int64("authorID", authorID))

	newComment := &entity.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Comment:  text,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()
		commentRepo := repoFactory.CommentRepo()

		exists, err := postRepo.Exists(ctx, postID)
		if err != nil {
			return errors.Wrap(err, "failed to check post existence")
		}
		if !exists {
			return domainerrors.ErrPostNotFound
		}

		if err := commentRepo.Create(ctx, newComment); err != nil {
			return errors.Wrap(err, "failed to create comment")
		}

		return errors.Wrap(postRepo.IncrementCommentCount(ctx, postID), "failed to increment comment count")
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create comment", slog.Int64("postID", postID), slog.Any("error", err))

		return nil, err
	}

	return newComment, nil
}

// Update replaces the comment body.
func (srv *commentService) Update(ctx context.Context, postID, commentID int64, text string) (*entity.Comment, error) {
	comment, err := srv.GetByID(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Comment = text
	if err := srv.commentRepo.Update(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, domainerrors.ErrCommentNotFound
		}

		return nil, errors.Wrap(err, "failed to update comment")
	}

	return srv.GetByID(ctx, postID, commentID)
}

// Delete removes the comment and decrements the post's comment counter in
// one transaction.
func (srv *commentService) Delete(ctx context.Context, postID, commentID int64) error {
	srv.log(ctx).Debug("Deleting comment", slog.Int64("postID", postID), slog.Int64("commentID", commentID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()
		commentRepo := repoFactory.CommentRepo()

		comment, err := commentRepo.FindByID(ctx, commentID)
		if err != nil {
			if errors.Is(err, repository.ErrCommentNotFound) {
				return domainerrors.ErrCommentNotFound
			}

			return errors.Wrap(err, "failed to find comment by id")
		}
		if comment.PostID != postID {
			return domainerrors.ErrCommentNotFound
		}

		if err := commentRepo.Delete(ctx, commentID); err != nil {
			return errors.Wrap(err, "failed to delete comment")
		}

		return errors.Wrap(postRepo.DecrementCommentCount(ctx, postID), "failed to decrement comment count")
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete comment", slog.Int64("commentID", commentID), slog.Any("error", err))

		return err
	}

	return nil
}

// IsCommentMine reports whether the user authored the comment.
func (srv *commentService) IsCommentMine(ctx context.Context, commentID, userID int64) (bool, error) {
	mine, err := srv.commentRepo.IsOwner(ctx, commentID, userID)
	if err != nil {
		return false, errors.Wrap(err, "failed to check comment ownership")
	}

	return mine, nil
}

func (srv *commentService) ensurePostExists(ctx context.Context, postID int64) error {
	exists, err := srv.postRepo.Exists(ctx, postID)
	if err != nil {
		return errors.Wrap(err, "failed to check post existence")
	}
	if !exists {
		return domainerrors.ErrPostNotFound
	}

	return nil
}
