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

// commentFields whitelists the filterable/sortable fields of the comments resource.
var commentFields = fieldColumns{
	"id":        "id",
	"postId":    "post_id",
	"authorId":  "author_id",
	"comment":   "comment",
	"likeCount": "like_count",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// commentRepository implements the repository.CommentRepository interface using GORM.
type commentRepository struct {
	db      *gorm.DB
	baseURL *url.URL
}

// NewCommentRepository is the constructor for commentRepository.
func NewCommentRepository(db *gorm.DB, baseURL *url.URL) repository.CommentRepository {
	return &commentRepository{db: db, baseURL: baseURL}
}

// FindByID retrieves a single comment with its author.
func (repo *commentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	commentM := &model.CommentModel{}
	if err := repo.db.WithContext(ctx).Preload("Author").First(commentM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommentNotFound
		}

		return nil, errors.Wrap(err, "failed to find comment by id")
	}

	return toCommentDomain(commentM), nil
}

// Create persists a new comment entity to the database.
func (repo *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentM := fromCommentDomain(comment)

	if err := repo.db.WithContext(ctx).Create(commentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPostNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create comment")
	}

	comment.ID = commentM.ID
	comment.CreatedAt = commentM.CreatedAt
	comment.UpdatedAt = commentM.UpdatedAt

	return nil
}

// Update modifies the body of an existing comment.
func (repo *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	result := repo.db.WithContext(ctx).Model(&model.CommentModel{}).
		Where("id = ?", comment.ID).
		UpdateColumn("comment", comment.Comment)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update comment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// Delete removes a comment by id.
func (repo *commentRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.CommentModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete comment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// IsOwner reports whether the comment's author is the given user.
func (repo *commentRepository) IsOwner(ctx context.Context, commentID, userID int64) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.CommentModel{}).
		Where("id = ? AND author_id = ?", commentID, userID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check comment ownership")
	}

	return count > 0, nil
}

// Paginate lists the comments of one post. The post id constraint is applied
// here, before client filters, so it can never be overridden.
func (repo *commentRepository) Paginate(ctx context.Context, postID int64, query *pagination.Query, path string) (*pagination.Page[*entity.Comment], error) {
	scoped := repo.db.WithContext(ctx).Model(&model.CommentModel{}).
		Preload("Author").
		Where("post_id = ?", postID)

	return runPaginate(scoped, query, commentFields, repo.baseURL, path, toCommentDomain, func(c *entity.Comment) int64 { return c.ID })
}

// --- Mapper Functions ---

// toCommentDomain converts a GORM CommentModel to a domain Comment entity.
func toCommentDomain(data *model.CommentModel) *entity.Comment {
	if data == nil {
		return nil
	}

	return &entity.Comment{
		ID:        data.ID,
		PostID:    data.PostID,
		AuthorID:  data.AuthorID,
		Author:    toUserDomain(data.Author),
		Comment:   data.Comment,
		LikeCount: data.LikeCount,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCommentDomain converts a domain Comment entity to a GORM CommentModel.
func fromCommentDomain(data *entity.Comment) *model.CommentModel {
	if data == nil {
		return nil
	}

	return &model.CommentModel{
		ID:        data.ID,
		PostID:    data.PostID,
		AuthorID:  data.AuthorID,
		Comment:   data.Comment,
		LikeCount: data.LikeCount,
	}
}
