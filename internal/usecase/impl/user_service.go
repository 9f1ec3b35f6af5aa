package impl

import (
	"context"
	"log/slog"

	deliverycontext "chirp/internal/delivery/context"
	"chirp/internal/domain/entity"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/domain/repository"
	"chirp/internal/pagination"
	"chirp/internal/usecase"

	"github.com/pkg/errors"
)

const usersResourcePath = "users"

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		txManager: txManager,
		userRepo:  userRepo,
		logger:    logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetByID retrieves a single user.
func (srv *userService) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// GetByEmail retrieves a single user by email.
func (srv *userService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return user, nil
}

// ListUsers pages through all users.
func (srv *userService) ListUsers(ctx context.Context, query *pagination.Query) (*pagination.Page[*entity.User], error) {
	page, err := srv.userRepo.Paginate(ctx, query, usersResourcePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to paginate users")
	}

	return page, nil
}

// Follow records an unconfirmed follow request from follower to followee.
// A second request for the same pair is a conflict.
func (srv *userService) Follow(ctx context.Context, followerID, followeeID int64) error {
	srv.log(ctx).Debug("Creating follow request", slog.Int64("followerID", followerID), slog.Int64("followeeID", followeeID))

	edge := &entity.FollowEdge{FollowerID: followerID, FolloweeID: followeeID}

	return srv.followCreate(ctx, edge)
}

func (srv *userService) followCreate(ctx context.Context, edge *entity.FollowEdge) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.FollowRepo().Create(ctx, edge)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFollowExists):
			return domainerrors.ErrDuplicateFollow
		case errors.Is(err, repository.ErrUserNotFound):
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to create follow edge")
	}

	return nil
}

// ConfirmFollow accepts a pending request. The edge flips to confirmed and
// both counters move inside one transaction, so a failed increment rolls the
// confirmation back.
func (srv *userService) ConfirmFollow(ctx context.Context, followerID, followeeID int64) error {
	srv.log(ctx).Debug("Confirming follow request", slog.Int64("followerID", followerID), slog.Int64("followeeID", followeeID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		followRepo := repoFactory.FollowRepo()
		userRepo := repoFactory.UserRepo()

		edge, err := followRepo.FindByPair(ctx, followerID, followeeID)
		if err != nil {
			if errors.Is(err, repository.ErrFollowNotFound) {
				return domainerrors.ErrFollowRequestNotFound
			}

			return errors.Wrap(err, "failed to find follow request")
		}
		if edge.IsConfirmed {
			return domainerrors.ErrFollowRequestNotFound.WithDetails("follow request already confirmed")
		}

		if err := followRepo.Confirm(ctx, edge.ID); err != nil {
			return errors.Wrap(err, "failed to confirm follow request")
		}

		if err := userRepo.IncrementFollowerCount(ctx, followeeID); err != nil {
			return errors.Wrap(err, "failed to increment follower count")
		}

		return errors.Wrap(userRepo.IncrementFolloweeCount(ctx, followerID), "failed to increment followee count")
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to confirm follow", slog.Int64("followerID", followerID), slog.Int64("followeeID", followeeID), slog.Any("error", err))

		return err
	}

	return nil
}

// DeleteFollow removes the follow edge and decrements the counters in one
// transaction. Deleting an unconfirmed request leaves the counters alone.
func (srv *userService) DeleteFollow(ctx context.Context, followerID, followeeID int64) error {
	srv.log(ctx).Debug("Deleting follow edge", slog.Int64("followerID", followerID), slog.Int64("followeeID", followeeID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		followRepo := repoFactory.FollowRepo()
		userRepo := repoFactory.UserRepo()

		edge, err := followRepo.FindByPair(ctx, followerID, followeeID)
		if err != nil {
			if errors.Is(err, repository.ErrFollowNotFound) {
				return domainerrors.ErrFollowRequestNotFound
			}

			return errors.Wrap(err, "failed to find follow edge")
		}

		if err := followRepo.DeleteByPair(ctx, followerID, followeeID); err != nil {
			return errors.Wrap(err, "failed to delete follow edge")
		}

		if !edge.IsConfirmed {
			return nil
		}

		if err := userRepo.DecrementFollowerCount(ctx, followeeID); err != nil {
			return errors.Wrap(err, "failed to decrement follower count")
		}

		return errors.Wrap(userRepo.DecrementFolloweeCount(ctx, followerID), "failed to decrement followee count")
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete follow", slog.Int64("followerID", followerID), slog.Int64("followeeID", followeeID), slog.Any("error", err))

		return err
	}

	return nil
}

// Followers lists the users following followeeID.
func (srv *userService) Followers(ctx context.Context, followeeID int64, includeNotConfirmed bool) ([]*entity.FollowEdge, error) {
	var edges []*entity.FollowEdge

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var listErr error
		edges, listErr = repoFactory.FollowRepo().Followers(ctx, followeeID, includeNotConfirmed)

		return listErr
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list followers")
	}

	return edges, nil
}
