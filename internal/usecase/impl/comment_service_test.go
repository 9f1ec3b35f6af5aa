package impl

import (
	"context"
	"testing"

	"chirp/internal/domain/entity"
	domainerrors "chirp/internal/domain/errors"
	mockRepo "chirp/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Create(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewCommentService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockPostRepository(t),
		mockRepo.NewMockCommentRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()

	factory.Post.On("Exists", ctx, int64(5)).Return(true, nil)
	factory.Comment.On("Create", ctx, mock.MatchedBy(func(comment *entity.Comment) bool {
		return comment.PostID == 5 && comment.AuthorID == 7 && comment.Comment == "nice post"
	})).Return(nil)
	factory.Post.On("IncrementCommentCount", ctx, int64(5)).Return(nil)

	comment, err := service.Create(ctx, 5, 7, "nice post")
	require.NoError(t, err)
	assert.Equal(t, "nice post", comment.Comment)
}

func TestCommentService_Create_PostMissing(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewCommentService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockPostRepository(t),
		mockRepo.NewMockCommentRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	factory.Post.On("Exists", ctx, int64(5)).Return(false, nil)

	_, err := service.Create(ctx, 5, 7, "nice post")
	assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)
	factory.Comment.AssertNotCalled(t, "Create", ctx, mock.Anything)
}

func TestCommentService_Create_CounterFailureAborts(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewCommentService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockPostRepository(t),
		mockRepo.NewMockCommentRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	boom := errors.New("connection reset")

	factory.Post.On("Exists", ctx, int64(5)).Return(true, nil)
	factory.Comment.On("Create", ctx, mock.AnythingOfType("*entity.Comment")).Return(nil)
	factory.Post.On("IncrementCommentCount", ctx, int64(5)).Return(boom)

	_, err := service.Create(ctx, 5, 7, "nice post")
	assert.ErrorIs(t, err, boom)
}

func TestCommentService_Delete(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewCommentService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockPostRepository(t),
		mockRepo.NewMockCommentRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	comment := &entity.Comment{ID: 9, PostID: 5, AuthorID: 7}

	factory.Comment.On("FindByID", ctx, int64(9)).Return(comment, nil)
	factory.Comment.On("Delete", ctx, int64(9)).Return(nil)
	factory.Post.On("DecrementCommentCount", ctx, int64(5)).Return(nil)

	require.NoError(t, service.Delete(ctx, 5, 9))
}

func TestCommentService_Delete_WrongPost(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewCommentService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockPostRepository(t),
		mockRepo.NewMockCommentRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	comment := &entity.Comment{ID: 9, PostID: 6, AuthorID: 7}

	factory.Comment.On("FindByID", ctx, int64(9)).Return(comment, nil)

	err := service.Delete(ctx, 5, 9)
	assert.ErrorIs(t, err, domainerrors.ErrCommentNotFound)
	factory.Comment.AssertNotCalled(t, "Delete", ctx, int64(9))
}

func TestCommentService_GetByID_WrongPost(t *testing.T) {
	commentRepo := mockRepo.NewMockCommentRepository(t)
	service := NewCommentService(
		mockRepo.NewImmediateTransactionManager(mockRepo.NewMockRepositoryFactory(t)),
		mockRepo.NewMockPostRepository(t),
		commentRepo,
		newDiscardLogger(),
	)

	ctx := context.Background()
	comment := &entity.Comment{ID: 9, PostID: 6}

	commentRepo.On("FindByID", ctx, int64(9)).Return(comment, nil)

	_, err := service.GetByID(ctx, 5, 9)
	assert.ErrorIs(t, err, domainerrors.ErrCommentNotFound)
}

func TestCommentService_Paginate_PostMissing(t *testing.T) {
	postRepo := mockRepo.NewMockPostRepository(t)
	service := NewCommentService(
		mockRepo.NewImmediateTransactionManager(mockRepo.NewMockRepositoryFactory(t)),
		postRepo,
		mockRepo.NewMockCommentRepository(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	postRepo.On("Exists", ctx, int64(5)).Return(false, nil)

	_, err := service.Paginate(ctx, 5, nil)
	assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)
}

func TestCommentService_IsCommentMine(t *testing.T) {
	commentRepo := mockRepo.NewMockCommentRepository(t)
	service := NewCommentService(
		mockRepo.NewImmediateTransactionManager(mockRepo.NewMockRepositoryFactory(t)),
		mockRepo.NewMockPostRepository(t),
		commentRepo,
		newDiscardLogger(),
	)

	ctx := context.Background()
	commentRepo.On("IsOwner", ctx, int64(9), int64(7)).Return(true, nil)
	commentRepo.On("IsOwner", ctx, int64(9), int64(8)).Return(false, nil)

	mine, err := service.IsCommentMine(ctx, 9, 7)
	require.NoError(t, err)
	assert.True(t, mine)

	mine, err = service.IsCommentMine(ctx, 9, 8)
	require.NoError(t, err)
	assert.False(t, mine)
}
