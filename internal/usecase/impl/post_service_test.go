package impl

import (
	"context"
	"testing"

	"chirp/internal/domain/entity"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/domain/repository"
	mockRepo "chirp/internal/mocks/repository"
	mockSvc "chirp/internal/mocks/service"
	"chirp/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPostService_Create_WithImages(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	imageStore := mockSvc.NewMockImageStore(t)
	service := NewPostService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockPostRepository(t),
		imageStore,
		newDiscardLogger(),
	)

	ctx := context.Background()
	input := &usecase.CreatePostInput{
		Title:   "hello",
		Content: "world",
		Images:  []string{"a.png", "b.png"},
	}

	imageStore.On("EnsureStaged", "a.png").Return(nil)
	imageStore.On("EnsureStaged", "b.png").Return(nil)
	factory.Post.On("Create", ctx, mock.AnythingOfType("*entity.Post")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Post).ID = 3
		}).
		Return(nil)
	factory.Post.On("AttachImage", ctx, mock.MatchedBy(func(image *entity.Image) bool {
		return image.PostID == 3 && image.Path == "a.png" && image.Order == 0
	})).Return(nil)
	factory.Post.On("AttachImage", ctx, mock.MatchedBy(func(image *entity.Image) bool {
		return image.PostID == 3 && image.Path == "b.png" && image.Order == 1
	})).Return(nil)
	imageStore.On("CommitPostImage", "a.png").Return(nil)
	imageStore.On("CommitPostImage", "b.png").Return(nil)

	post, err := service.Create(ctx, 7, input)
	require.NoError(t, err)
	assert.Equal(t, int64(3), post.ID)
	assert.Len(t, post.Images, 2)
}

func TestPostService_Create_UnstagedImage(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	imageStore := mockSvc.NewMockImageStore(t)
	service := NewPostService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockPostRepository(t),
		imageStore,
		newDiscardLogger(),
	)

	ctx := context.Background()
	input := &usecase.CreatePostInput{Title: "hello", Content: "world", Images: []string{"ghost.png"}}

	imageStore.On("EnsureStaged", "ghost.png").Return(domainerrors.ErrImageNotStaged)

	_, err := service.Create(ctx, 7, input)
	assert.ErrorIs(t, err, domainerrors.ErrImageNotStaged)
	factory.Post.AssertNotCalled(t, "Create", ctx, mock.Anything)
}

func TestPostService_Create_CommitFailureAborts(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	imageStore := mockSvc.NewMockImageStore(t)
	service := NewPostService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockPostRepository(t),
		imageStore,
		newDiscardLogger(),
	)

	ctx := context.Background()
	input := &usecase.CreatePostInput{Title: "hello", Content: "world", Images: []string{"a.png"}}
	boom := errors.New("rename failed")

	imageStore.On("EnsureStaged", "a.png").Return(nil)
	factory.Post.On("Create", ctx, mock.AnythingOfType("*entity.Post")).Return(nil)
	factory.Post.On("AttachImage", ctx, mock.AnythingOfType("*entity.Image")).Return(nil)
	imageStore.On("CommitPostImage", "a.png").Return(boom)

	_, err := service.Create(ctx, 7, input)
	assert.ErrorIs(t, err, boom)
}

func TestPostService_Update_Partial(t *testing.T) {
	postRepo := mockRepo.NewMockPostRepository(t)
	service := NewPostService(
		mockRepo.NewImmediateTransactionManager(mockRepo.NewMockRepositoryFactory(t)),
		postRepo,
		mockSvc.NewMockImageStore(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	newTitle := "renamed"
	stored := &entity.Post{ID: 3, Title: "old", Content: "body"}

	postRepo.On("FindByID", ctx, int64(3)).Return(stored, nil)
	postRepo.On("Update", ctx, mock.MatchedBy(func(post *entity.Post) bool {
		return post.Title == "renamed" && post.Content == "body"
	})).Return(nil)

	post, err := service.Update(ctx, 3, &usecase.UpdatePostInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "renamed", post.Title)
	assert.Equal(t, "body", post.Content)
}

func TestPostService_Delete_NotFound(t *testing.T) {
	postRepo := mockRepo.NewMockPostRepository(t)
	service := NewPostService(
		mockRepo.NewImmediateTransactionManager(mockRepo.NewMockRepositoryFactory(t)),
		postRepo,
		mockSvc.NewMockImageStore(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	postRepo.On("Delete", ctx, int64(404)).Return(repository.ErrPostNotFound)

	err := service.Delete(ctx, 404)
	assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)
}
