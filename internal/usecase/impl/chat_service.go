package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "chirp/internal/delivery/context"
	"chirp/internal/domain/entity"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/domain/repository"
	"chirp/internal/pagination"
	"chirp/internal/usecase"

	"github.com/pkg/errors"
)

const chatsResourcePath = "chats"

// chatService implements the ChatUsecase interface.
type chatService struct {
	txManager repository.TransactionManager
	chatRepo  repository.ChatRepository
	logger    *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(
	txManager repository.TransactionManager,
	chatRepo repository.ChatRepository,
	logger *slog.Logger,
) usecase.ChatUsecase {
	return &chatService{
		txManager: txManager,
		chatRepo:  chatRepo,
		logger:    logger,
	}
}

func (srv *chatService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func chatMessagesResourcePath(chatID int64) string {
	return fmt.Sprintf("chats/%d/messages", chatID)
}

// CreateChat opens a new room with the given member ids.
func (srv *chatService) CreateChat(ctx context.Context, memberIDs []int64) (*entity.Chat, error) {
	srv.log(ctx).Debug("Creating chat", slog.Int("memberCount", len(memberIDs)))

	newChat := &entity.Chat{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ChatRepo().Create(ctx, newChat, memberIDs)
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to create chat")
	}

	return newChat, nil
}

// ChatExists reports whether a room exists.
func (srv *chatService) ChatExists(ctx context.Context, chatID int64) (bool, error) {
	exists, err := srv.chatRepo.Exists(ctx, chatID)
	if err != nil {
		return false, errors.Wrap(err, "failed to check chat existence")
	}

	return exists, nil
}

// PaginateChats pages through chat rooms.
func (srv *chatService) PaginateChats(ctx context.Context, query *pagination.Query) (*pagination.Page[*entity.Chat], error) {
	page, err := srv.chatRepo.Paginate(ctx, query, chatsResourcePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to paginate chats")
	}

	return page, nil
}

// CreateMessage validates the room and persists a message in it.
func (srv *chatService) CreateMessage(ctx context.Context, chatID, authorID int64, text string) (*entity.ChatMessage, error) {
	exists, err := srv.ChatExists(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainerrors.ErrChatNotFound.WithDetails(fmt.Sprintf("no chat with id %d", chatID))
	}

	newMessage := &entity.ChatMessage{
		ChatID:   chatID,
		AuthorID: authorID,
		Message:  text,
	}

	if err := srv.chatRepo.CreateMessage(ctx, newMessage); err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return nil, domainerrors.ErrChatNotFound
		}

		return nil, errors.Wrap(err, "failed to create chat message")
	}

	return newMessage, nil
}

// PaginateMessages pages through one room's messages.
func (srv *chatService) PaginateMessages(ctx context.Context, chatID int64, query *pagination.Query) (*pagination.Page[*entity.ChatMessage], error) {
	exists, err := srv.ChatExists(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainerrors.ErrChatNotFound.WithDetails(fmt.Sprintf("no chat with id %d", chatID))
	}

	page, err := srv.chatRepo.PaginateMessages(ctx, chatID, query, chatMessagesResourcePath(chatID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to paginate chat messages")
	}

	return page, nil
}
