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

// userFields whitelists the filterable/sortable fields of the users resource.
var userFields = fieldColumns{
	"id":            "id",
	"nickname":      "nickname",
	"email":         "email",
	"role":          "role",
	"followerCount": "follower_count",
	"followeeCount": "followee_count",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db      *gorm.DB
	baseURL *url.URL
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB, baseURL *url.URL) repository.UserRepository {
	return &userRepository{db: db, baseURL: baseURL}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	userM := &model.UserModel{}
	if err := repo.db.WithContext(ctx).First(userM, id).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	userM := &model.UserModel{}
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(userM), nil
}

// ExistsByNickname reports whether a user with the nickname exists.
func (repo *userRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("nickname = ?", nickname).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to count users by nickname")
	}

	return count > 0, nil
}

// ExistsByEmail reports whether a user with the email exists.
func (repo *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to count users by email")
	}

	return count > 0, nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("nickname or email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Paginate lists users according to the parsed query.
func (repo *userRepository) Paginate(ctx context.Context, query *pagination.Query, path string) (*pagination.Page[*entity.User], error) {
	scoped := repo.db.WithContext(ctx).Model(&model.UserModel{})

	return runPaginate(scoped, query, userFields, repo.baseURL, path, toUserDomain, func(u *entity.User) int64 { return u.ID })
}

// IncrementFollowerCount adds one to the confirmed follower counter.
func (repo *userRepository) IncrementFollowerCount(ctx context.Context, userID int64) error {
	return repo.adjustCounter(ctx, userID, "follower_count", 1)
}

// DecrementFollowerCount subtracts one from the confirmed follower counter.
func (repo *userRepository) DecrementFollowerCount(ctx context.Context, userID int64) error {
	return repo.adjustCounter(ctx, userID, "follower_count", -1)
}

// IncrementFolloweeCount adds one to the followee counter.
func (repo *userRepository) IncrementFolloweeCount(ctx context.Context, userID int64) error {
	return repo.adjustCounter(ctx, userID, "followee_count", 1)
}

// DecrementFolloweeCount subtracts one from the followee counter.
func (repo *userRepository) DecrementFolloweeCount(ctx context.Context, userID int64) error {
	return repo.adjustCounter(ctx, userID, "followee_count", -1)
}

// adjustCounter applies a relative counter update in a single statement so
// concurrent confirmations never lose increments.
func (repo *userRepository) adjustCounter(ctx context.Context, userID int64, column string, delta int) error {
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update "+column)
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:            data.ID,
		Nickname:      data.Nickname,
		Email:         data.Email,
		PasswordHash:  data.PasswordHash,
		Role:          entity.Role(data.Role),
		FollowerCount: data.FollowerCount,
		FolloweeCount: data.FolloweeCount,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:            data.ID,
		Nickname:      data.Nickname,
		Email:         data.Email,
		PasswordHash:  data.PasswordHash,
		Role:          data.Role.String(),
		FollowerCount: data.FollowerCount,
		FolloweeCount: data.FolloweeCount,
	}
}
