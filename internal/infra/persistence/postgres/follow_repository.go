package postgres

import (
	"context"

	"chirp/internal/domain/entity"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/domain/repository"
	"chirp/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// followRepository implements the repository.FollowRepository interface using GORM.
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository is the constructor for followRepository.
func NewFollowRepository(db *gorm.DB) repository.FollowRepository {
	return &followRepository{db: db}
}

// Create persists a new, unconfirmed follow edge. The unique index on the
// ordered pair turns a duplicate request into ErrFollowExists.
func (repo *followRepository) Create(ctx context.Context, edge *entity.FollowEdge) error {
	edgeM := fromFollowEdgeDomain(edge)

	if err := repo.db.WithContext(ctx).Create(edgeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrFollowExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create follow edge")
	}

	edge.ID = edgeM.ID
	edge.CreatedAt = edgeM.CreatedAt
	edge.UpdatedAt = edgeM.UpdatedAt

	return nil
}

// FindByPair retrieves the edge for an ordered (follower, followee) pair.
func (repo *followRepository) FindByPair(ctx context.Context, followerID, followeeID int64) (*entity.FollowEdge, error) {
	edgeM := &model.FollowEdgeModel{}
	err := repo.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(edgeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFollowNotFound
		}

		return nil, errors.Wrap(err, "failed to find follow edge")
	}

	return toFollowEdgeDomain(edgeM), nil
}

// Confirm flips the edge's isConfirmed flag to true.
func (repo *followRepository) Confirm(ctx context.Context, edgeID int64) error {
	result := repo.db.WithContext(ctx).Model(&model.FollowEdgeModel{}).
		Where("id = ?", edgeID).
		UpdateColumn("is_confirmed", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to confirm follow edge")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFollowNotFound
	}

	return nil
}

// DeleteByPair removes the edge for an ordered pair.
func (repo *followRepository) DeleteByPair(ctx context.Context, followerID, followeeID int64) error {
	result := repo.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.FollowEdgeModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete follow edge")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFollowNotFound
	}

	return nil
}

// Followers lists the edges pointing at the followee with follower users loaded.
func (repo *followRepository) Followers(ctx context.Context, followeeID int64, includeNotConfirmed bool) ([]*entity.FollowEdge, error) {
	scoped := repo.db.WithContext(ctx).
		Preload("Follower").
		Where("followee_id = ?", followeeID)
	if !includeNotConfirmed {
		scoped = scoped.Where("is_confirmed = ?", true)
	}

	edgeMs := []*model.FollowEdgeModel{}
	if err := scoped.Order("id ASC").Find(&edgeMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list followers")
	}

	edges := make([]*entity.FollowEdge, 0, len(edgeMs))
	for _, edgeM := range edgeMs {
		edges = append(edges, toFollowEdgeDomain(edgeM))
	}

	return edges, nil
}

// --- Mapper Functions ---

// toFollowEdgeDomain converts a GORM FollowEdgeModel to a domain FollowEdge entity.
func toFollowEdgeDomain(data *model.FollowEdgeModel) *entity.FollowEdge {
	if data == nil {
		return nil
	}

	return &entity.FollowEdge{
		ID:          data.ID,
		FollowerID:  data.FollowerID,
		FolloweeID:  data.FolloweeID,
		Follower:    toUserDomain(data.Follower),
		Followee:    toUserDomain(data.Followee),
		IsConfirmed: data.IsConfirmed,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromFollowEdgeDomain converts a domain FollowEdge entity to a GORM FollowEdgeModel.
func fromFollowEdgeDomain(data *entity.FollowEdge) *model.FollowEdgeModel {
	if data == nil {
		return nil
	}

	return &model.FollowEdgeModel{
		ID:          data.ID,
		FollowerID:  data.FollowerID,
		FolloweeID:  data.FolloweeID,
		IsConfirmed: data.IsConfirmed,
	}
}
