package postgres

import (
	"context"
	"net/url"

	"chirp/internal/domain/entity"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/domain/repository"
	"chirp/internal/infra/persistence/model"
	"chirp/internal/pagination"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// postFields whitelists the filterable/sortable fields of the posts resource.
var postFields = fieldColumns{
	"id":           "id",
	"authorId":     "author_id",
	"title":        "title",
	"content":      "content",
	"likeCount":    "like_count",
	"commentCount": "comment_count",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// postRepository implements the repository.PostRepository interface using GORM.
type postRepository struct {
	db      *gorm.DB
	baseURL *url.URL
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB, baseURL *url.URL) repository.PostRepository {
	return &postRepository{db: db, baseURL: baseURL}
}

// FindByID retrieves a single post with its author and ordered images.
func (repo *postRepository) FindByID(ctx context.Context, id int64) (*entity.Post, error) {
	postM := &model.PostModel{}
	err := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(postM, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find post by id")
	}

	return toPostDomain(postM), nil
}

// Create persists a new post entity to the database.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postM := fromPostDomain(post)

	if err := repo.db.WithContext(ctx).Create(postM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPostNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
	}

	post.ID = postM.ID
	post.CreatedAt = postM.CreatedAt
	post.UpdatedAt = postM.UpdatedAt

	return nil
}

// Update modifies the title and content of an existing post.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	result := repo.db.WithContext(ctx).Model(&model.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":   post.Title,
			"content": post.Content,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// Delete removes a post by id.
func (repo *postRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.PostModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// Exists reports whether a post with the id exists.
func (repo *postRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.PostModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to count posts by id")
	}

	return count > 0, nil
}

// IsOwner reports whether the post's author is the given user.
func (repo *postRepository) IsOwner(ctx context.Context, postID, userID int64) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.PostModel{}).
		Where("id = ? AND author_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check post ownership")
	}

	return count > 0, nil
}

// Paginate lists posts with their authors and images according to the parsed query.
func (repo *postRepository) Paginate(ctx context.Context, query *pagination.Query, path string) (*pagination.Page[*entity.Post], error) {
	scoped := repo.db.WithContext(ctx).Model(&model.PostModel{}).
		Preload("Author").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		})

	return runPaginate(scoped, query, postFields, repo.baseURL, path, toPostDomain, func(p *entity.Post) int64 { return p.ID })
}

// AttachImage persists an image record belonging to a post.
func (repo *postRepository) AttachImage(ctx context.Context, image *entity.Image) error {
	imageM := fromImageDomain(image)

	if err := repo.db.WithContext(ctx).Create(imageM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPostNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to attach image")
	}

	image.ID = imageM.ID
	image.CreatedAt = imageM.CreatedAt
	image.UpdatedAt = imageM.UpdatedAt

	return nil
}

// IncrementCommentCount adds one to the post's comment counter.
func (repo *postRepository) IncrementCommentCount(ctx context.Context, postID int64) error {
	return repo.adjustCommentCount(ctx, postID, 1)
}

// DecrementCommentCount subtracts one from the post's comment counter.
func (repo *postRepository) DecrementCommentCount(ctx context.Context, postID int64) error {
	return repo.adjustCommentCount(ctx, postID, -1)
}

func (repo *postRepository) adjustCommentCount(ctx context.Context, postID int64, delta int) error {
	result := repo.db.WithContext(ctx).Model(&model.PostModel{}).
		Where("id = ?", postID).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", delta))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update comment count")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toPostDomain converts a GORM PostModel to a domain Post entity.
func toPostDomain(data *model.PostModel) *entity.Post {
	if data == nil {
		return nil
	}

	images := make([]*entity.Image, 0, len(data.Images))
	for i := range data.Images {
		images = append(images, toImageDomain(&data.Images[i]))
	}

	return &entity.Post{
		ID:           data.ID,
		AuthorID:     data.AuthorID,
		Author:       toUserDomain(data.Author),
		Title:        data.Title,
		Content:      data.Content,
		LikeCount:    data.LikeCount,
		CommentCount: data.CommentCount,
		Images:       images,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromPostDomain converts a domain Post entity to a GORM PostModel for persistence.
func fromPostDomain(data *entity.Post) *model.PostModel {
	if data == nil {
		return nil
	}

	return &model.PostModel{
		ID:           data.ID,
		AuthorID:     data.AuthorID,
		Title:        data.Title,
		Content:      data.Content,
		LikeCount:    data.LikeCount,
		CommentCount: data.CommentCount,
	}
}

// toImageDomain converts a GORM ImageModel to a domain Image entity.
func toImageDomain(data *model.ImageModel) *entity.Image {
	if data == nil {
		return nil
	}

	return &entity.Image{
		ID:        data.ID,
		PostID:    data.PostID,
		Order:     data.Order,
		Type:      entity.ImageType(data.Type),
		Path:      data.Path,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromImageDomain converts a domain Image entity to a GORM ImageModel.
func fromImageDomain(data *entity.Image) *model.ImageModel {
	if data == nil {
		return nil
	}

	return &model.ImageModel{
		ID:     data.ID,
		PostID: data.PostID,
		Order:  data.Order,
		Type:   string(data.Type),
		Path:   data.Path,
	}
}
