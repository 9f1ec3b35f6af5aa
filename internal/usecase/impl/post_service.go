package impl

import (
	"context"
	"log/slog"

	deliverycontext "chirp/internal/delivery/context"
	"chirp/internal/domain/entity"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/domain/repository"
	"chirp/internal/domain/service"
	"chirp/internal/pagination"
	"chirp/internal/usecase"

	"github.com/pkg/errors"
)

const postsResourcePath = "posts"

// postService implements the PostUsecase interface.
type postService struct {
	txManager  repository.TransactionManager
	postRepo   repository.PostRepository
	imageStore service.ImageStore
	logger     *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(
	txManager repository.TransactionManager,
	postRepo repository.PostRepository,
	imageStore service.ImageStore,
	logger *slog.Logger,
) usecase.PostUsecase {
	return &postService{
		txManager:  txManager,
		postRepo:   postRepo,
		imageStore: imageStore,
		logger:     logger,
	}
}

func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Paginate pages through all posts.
func (srv *postService) Paginate(ctx context.Context, query *pagination.Query) (*pagination.Page[*entity.Post], error) {
	page, err := srv.postRepo.Paginate(ctx, query, postsResourcePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to paginate posts")
	}

	return page, nil
}

// GetByID retrieves a single post with author and images.
func (srv *postService) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, domainerrors.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find post by id")
	}

	return post, nil
}

// Create persists the post and commits its staged images in one transaction.
// Every referenced file must already be staged; image records are written
// first and the files only move into the permanent store once the records
// exist, so a failed move rolls the whole post back.
func (srv *postService) Create(ctx context.Context, authorID int64, input *usecase.CreatePostInput) (*entity.Post, error) {
	srv.log(ctx).Debug("Creating post", slog.Int64("authorID", authorID), slog.Int("imageCount", len(input.Images)))

	for _, name := range input.Images {
		if err := srv.imageStore.EnsureStaged(name); err != nil {
			return nil, err
		}
	}

	newPost := &entity.Post{
		AuthorID: authorID,
		Title:    input.Title,
		Content:  input.Content,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()

		if err := postRepo.Create(ctx, newPost); err != nil {
			return errors.Wrap(err, "failed to create post")
		}

		// Order index is the position in the request slice.
		for i, name := range input.Images {
			image := &entity.Image{
				PostID: newPost.ID,
				Order:  i,
				Type:   entity.ImageTypePost,
				Path:   name,
			}

			if err := postRepo.AttachImage(ctx, image); err != nil {
				return errors.Wrap(err, "failed to attach image")
			}

			if err := srv.imageStore.CommitPostImage(name); err != nil {
				return errors.Wrap(err, "failed to commit image")
			}

			newPost.Images = append(newPost.Images, image)
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create post", slog.Int64("authorID", authorID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Post created", slog.Int64("postID", newPost.ID))

	return newPost, nil
}

// Update applies a partial update and returns the updated post.
func (srv *postService) Update(ctx context.Context, postID int64, input *usecase.UpdatePostInput) (*entity.Post, error) {
	post, err := srv.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}

	if err := srv.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, domainerrors.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to update post")
	}

	return srv.GetByID(ctx, postID)
}

// Delete removes a post.
func (srv *postService) Delete(ctx context.Context, postID int64) error {
	if err := srv.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return domainerrors.ErrPostNotFound
		}

		return errors.Wrap(err, "failed to delete post")
	}

	return nil
}

// IsPostMine reports whether the user authored the post.
func (srv *postService) IsPostMine(ctx context.Context, postID, userID int64) (bool, error) {
	mine, err := srv.postRepo.IsOwner(ctx, postID, userID)
	if err != nil {
		return false, errors.Wrap(err, "failed to check post ownership")
	}

	return mine, nil
}
