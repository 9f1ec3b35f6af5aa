package impl

import (
	"context"
	"testing"

	"chirp/internal/domain/entity"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/domain/repository"
	mockRepo "chirp/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Follow(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewUserService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockUserRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()

	factory.Follow.On("Create", ctx, mock.MatchedBy(func(edge *entity.FollowEdge) bool {
		return edge.FollowerID == 1 && edge.FolloweeID == 2 && !edge.IsConfirmed
	})).Return(nil)

	require.NoError(t, service.Follow(ctx, 1, 2))
}

func TestUserService_Follow_Duplicate(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewUserService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockUserRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	factory.Follow.On("Create", ctx, mock.AnythingOfType("*entity.FollowEdge")).Return(repository.ErrFollowExists)

	err := service.Follow(ctx, 1, 2)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateFollow)
}

func TestUserService_ConfirmFollow(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewUserService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockUserRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	edge := &entity.FollowEdge{ID: 10, FollowerID: 1, FolloweeID: 2}

	factory.Follow.On("FindByPair", ctx, int64(1), int64(2)).Return(edge, nil)
	factory.Follow.On("Confirm", ctx, int64(10)).Return(nil)
	factory.User.On("IncrementFollowerCount", ctx, int64(2)).Return(nil)
	factory.User.On("IncrementFolloweeCount", ctx, int64(1)).Return(nil)

	require.NoError(t, service.ConfirmFollow(ctx, 1, 2))
}

func TestUserService_ConfirmFollow_AlreadyConfirmed(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewUserService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockUserRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	edge := &entity.FollowEdge{ID: 10, FollowerID: 1, FolloweeID: 2, IsConfirmed: true}

	factory.Follow.On("FindByPair", ctx, int64(1), int64(2)).Return(edge, nil)

	err := service.ConfirmFollow(ctx, 1, 2)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "FOLLOW_REQUEST_NOT_FOUND", appErr.ErrorCode())
}

func TestUserService_ConfirmFollow_CounterFailureAborts(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewUserService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockUserRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	edge := &entity.FollowEdge{ID: 10, FollowerID: 1, FolloweeID: 2}
	boom := errors.New("connection reset")

	factory.Follow.On("FindByPair", ctx, int64(1), int64(2)).Return(edge, nil)
	factory.Follow.On("Confirm", ctx, int64(10)).Return(nil)
	factory.User.On("IncrementFollowerCount", ctx, int64(2)).Return(boom)

	// The closure's error must reach the caller so the manager rolls back.
	err := service.ConfirmFollow(ctx, 1, 2)
	assert.ErrorIs(t, err, boom)
	factory.User.AssertNotCalled(t, "IncrementFolloweeCount", ctx, int64(1))
}

func TestUserService_DeleteFollow_Confirmed(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewUserService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockUserRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	edge := &entity.FollowEdge{ID: 10, FollowerID: 1, FolloweeID: 2, IsConfirmed: true}

	factory.Follow.On("FindByPair", ctx, int64(1), int64(2)).Return(edge, nil)
	factory.Follow.On("DeleteByPair", ctx, int64(1), int64(2)).Return(nil)
	factory.User.On("DecrementFollowerCount", ctx, int64(2)).Return(nil)
	factory.User.On("DecrementFolloweeCount", ctx, int64(1)).Return(nil)

	require.NoError(t, service.DeleteFollow(ctx, 1, 2))
}

func TestUserService_DeleteFollow_UnconfirmedSkipsCounters(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewUserService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockUserRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	edge := &entity.FollowEdge{ID: 10, FollowerID: 1, FolloweeID: 2}

	factory.Follow.On("FindByPair", ctx, int64(1), int64(2)).Return(edge, nil)
	factory.Follow.On("DeleteByPair", ctx, int64(1), int64(2)).Return(nil)

	require.NoError(t, service.DeleteFollow(ctx, 1, 2))
	factory.User.AssertNotCalled(t, "DecrementFollowerCount", ctx, int64(2))
	factory.User.AssertNotCalled(t, "DecrementFolloweeCount", ctx, int64(1))
}

func TestUserService_DeleteFollow_NotFound(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewUserService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockUserRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	factory.Follow.On("FindByPair", ctx, int64(1), int64(2)).Return(nil, repository.ErrFollowNotFound)

	err := service.DeleteFollow(ctx, 1, 2)
	assert.ErrorIs(t, err, domainerrors.ErrFollowRequestNotFound)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	service := NewUserService(
		mockRepo.NewImmediateTransactionManager(mockRepo.NewMockRepositoryFactory(t)),
		userRepo,
		newDiscardLogger(),
	)

	ctx := context.Background()
	userRepo.On("FindByID", ctx, int64(404)).Return(nil, repository.ErrUserNotFound)

	_, err := service.GetByID(ctx, 404)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
