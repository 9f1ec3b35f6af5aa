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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenSvc := mockSvc.NewMockTokenService(t)
	service := NewAuthService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockUserRepository(t),
		hasher,
		tokenSvc,
		newDiscardLogger(),
	)

	ctx := context.Background()
	input := &usecase.RegisterInput{Nickname: "gopher", Email: "gopher@example.com", Password: "sup3rsecret"}

	hasher.On("Hash", "sup3rsecret").Return("$2a$10$hash", nil)
	factory.User.On("ExistsByNickname", ctx, "gopher").Return(false, nil)
	factory.User.On("ExistsByEmail", ctx, "gopher@example.com").Return(false, nil)
	factory.User.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = 7
		}).
		Return(nil)
	tokenSvc.On("Issue", mock.AnythingOfType("*entity.User"), entity.TokenKindAccess).Return("access-token", nil)
	tokenSvc.On("Issue", mock.AnythingOfType("*entity.User"), entity.TokenKindRefresh).Return("refresh-token", nil)

	out, err := service.Register(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.User.ID)
	assert.Equal(t, "$2a$10$hash", out.User.PasswordHash)
	assert.Equal(t, entity.RoleUser, out.User.Role)
	assert.Equal(t, "access-token", out.Tokens.AccessToken)
	assert.Equal(t, "refresh-token", out.Tokens.RefreshToken)
}

func TestAuthService_Register_NicknameTaken(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	service := NewAuthService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockUserRepository(t),
		hasher,
		mockSvc.NewMockTokenService(t),
		newDiscardLogger(),
	)

	ctx := context.Background()

	hasher.On("Hash", "sup3rsecret").Return("$2a$10$hash", nil)
	factory.User.On("ExistsByNickname", ctx, "gopher").Return(true, nil)

	_, err := service.Register(ctx, &usecase.RegisterInput{Nickname: "gopher", Email: "gopher@example.com", Password: "sup3rsecret"})
	assert.ErrorIs(t, err, domainerrors.ErrNicknameTaken)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	service := NewAuthService(
		mockRepo.NewImmediateTransactionManager(factory),
		mockRepo.NewMockUserRepository(t),
		hasher,
		mockSvc.NewMockTokenService(t),
		newDiscardLogger(),
	)

	ctx := context.Background()

	hasher.On("Hash", "sup3rsecret").Return("$2a$10$hash", nil)
	factory.User.On("ExistsByNickname", ctx, "gopher").Return(false, nil)
	factory.User.On("ExistsByEmail", ctx, "gopher@example.com").Return(true, nil)

	_, err := service.Register(ctx, &usecase.RegisterInput{Nickname: "gopher", Email: "gopher@example.com", Password: "sup3rsecret"})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenSvc := mockSvc.NewMockTokenService(t)
	service := NewAuthService(
		mockRepo.NewImmediateTransactionManager(mockRepo.NewMockRepositoryFactory(t)),
		userRepo,
		hasher,
		tokenSvc,
		newDiscardLogger(),
	)

	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "gopher@example.com", PasswordHash: "$2a$10$hash"}

	userRepo.On("FindByEmail", ctx, "gopher@example.com").Return(user, nil)
	hasher.On("Check", "sup3rsecret", "$2a$10$hash").Return(true)
	tokenSvc.On("Issue", user, entity.TokenKindAccess).Return("access-token", nil)
	tokenSvc.On("Issue", user, entity.TokenKindRefresh).Return("refresh-token", nil)

	out, err := service.Login(ctx, "gopher@example.com", "sup3rsecret")
	require.NoError(t, err)
	assert.Equal(t, user, out.User)
	assert.Equal(t, "access-token", out.Tokens.AccessToken)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	service := NewAuthService(
		mockRepo.NewImmediateTransactionManager(mockRepo.NewMockRepositoryFactory(t)),
		userRepo,
		mockSvc.NewMockPasswordHasher(t),
		mockSvc.NewMockTokenService(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	userRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := service.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	service := NewAuthService(
		mockRepo.NewImmediateTransactionManager(mockRepo.NewMockRepositoryFactory(t)),
		userRepo,
		hasher,
		mockSvc.NewMockTokenService(t),
		newDiscardLogger(),
	)

	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "gopher@example.com", PasswordHash: "$2a$10$hash"}

	userRepo.On("FindByEmail", ctx, "gopher@example.com").Return(user, nil)
	hasher.On("Check", "wrong", "$2a$10$hash").Return(false)

	_, err := service.Login(ctx, "gopher@example.com", "wrong")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Rotate(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	service := NewAuthService(
		mockRepo.NewImmediateTransactionManager(mockRepo.NewMockRepositoryFactory(t)),
		mockRepo.NewMockUserRepository(t),
		mockSvc.NewMockPasswordHasher(t),
		tokenSvc,
		newDiscardLogger(),
	)

	ctx := context.Background()
	tokenSvc.On("Rotate", "old-refresh").Return("new-access", "new-refresh", nil)

	pair, err := service.Rotate(ctx, "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", pair.AccessToken)
	assert.Equal(t, "new-refresh", pair.RefreshToken)
}

func TestAuthService_Rotate_RejectsAccessToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	service := NewAuthService(
		mockRepo.NewImmediateTransactionManager(mockRepo.NewMockRepositoryFactory(t)),
		mockRepo.NewMockUserRepository(t),
		mockSvc.NewMockPasswordHasher(t),
		tokenSvc,
		newDiscardLogger(),
	)

	ctx := context.Background()
	tokenSvc.On("Rotate", "an-access-token").Return("", "", domainerrors.ErrRotateRequiresRefresh)

	_, err := service.Rotate(ctx, "an-access-token")
	assert.ErrorIs(t, err, domainerrors.ErrRotateRequiresRefresh)
}
