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

// chatFields whitelists the filterable/sortable fields of the chats resource.
var chatFields = fieldColumns{
	"id":        "id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// chatMessageFields whitelists the filterable/sortable fields of chat messages.
var chatMessageFields = fieldColumns{
	"id":        "id",
	"chatId":    "chat_id",
	"authorId":  "author_id",
	"message":   "message",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// chatRepository implements the repository.ChatRepository interface using GORM.
type chatRepository struct {
	db      *gorm.DB
	baseURL *url.URL
}

// NewChatRepository is the constructor for chatRepository.
func NewChatRepository(db *gorm.DB, baseURL *url.URL) repository.ChatRepository {
	return &chatRepository{db: db, baseURL: baseURL}
}

// Create persists a new chat room and its membership rows.
func (repo *chatRepository) Create(ctx context.Context, chat *entity.Chat, memberIDs []int64) error {
	chatM := &model.ChatModel{}
	for _, id := range memberIDs {
		chatM.Users = append(chatM.Users, &model.UserModel{ID: id})
	}

	// Omit the member models themselves so only the join rows are written.
	if err := repo.db.WithContext(ctx).Omit("Users.*").Create(chatM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create chat")
	}

	chat.ID = chatM.ID
	chat.CreatedAt = chatM.CreatedAt
	chat.UpdatedAt = chatM.UpdatedAt

	return nil
}

// Exists reports whether a chat with the id exists.
func (repo *chatRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ChatModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to count chats by id")
	}

	return count > 0, nil
}

// Paginate lists chat rooms with their members according to the parsed query.
func (repo *chatRepository) Paginate(ctx context.Context, query *pagination.Query, path string) (*pagination.Page[*entity.Chat], error) {
	scoped := repo.db.WithContext(ctx).Model(&model.ChatModel{}).Preload("Users")

	return runPaginate(scoped, query, chatFields, repo.baseURL, path, toChatDomain, func(c *entity.Chat) int64 { return c.ID })
}

// CreateMessage persists a message inside a chat room.
func (repo *chatRepository) CreateMessage(ctx context.Context, message *entity.ChatMessage) error {
	messageM := fromChatMessageDomain(message)

	if err := repo.db.WithContext(ctx).Create(messageM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrChatNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create chat message")
	}

	message.ID = messageM.ID
	message.CreatedAt = messageM.CreatedAt
	message.UpdatedAt = messageM.UpdatedAt

	return nil
}

// PaginateMessages lists the messages of one chat. The chat id constraint is
// applied before client filters, so it can never be overridden.
func (repo *chatRepository) PaginateMessages(ctx context.Context, chatID int64, query *pagination.Query, path string) (*pagination.Page[*entity.ChatMessage], error) {
	scoped := repo.db.WithContext(ctx).Model(&model.ChatMessageModel{}).
		Preload("Author").
		Where("chat_id = ?", chatID)

	return runPaginate(scoped, query, chatMessageFields, repo.baseURL, path, toChatMessageDomain, func(m *entity.ChatMessage) int64 { return m.ID })
}

// --- Mapper Functions ---

// toChatDomain converts a GORM ChatModel to a domain Chat entity.
func toChatDomain(data *model.ChatModel) *entity.Chat {
	if data == nil {
		return nil
	}

	users := make([]*entity.User, 0, len(data.Users))
	for _, userM := range data.Users {
		users = append(users, toUserDomain(userM))
	}

	return &entity.Chat{
		ID:        data.ID,
		Users:     users,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// toChatMessageDomain converts a GORM ChatMessageModel to a domain ChatMessage entity.
func toChatMessageDomain(data *model.ChatMessageModel) *entity.ChatMessage {
	if data == nil {
		return nil
	}

	return &entity.ChatMessage{
		ID:        data.ID,
		ChatID:    data.ChatID,
		AuthorID:  data.AuthorID,
		Author:    toUserDomain(data.Author),
		Message:   data.Message,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromChatMessageDomain converts a domain ChatMessage entity to a GORM ChatMessageModel.
func fromChatMessageDomain(data *entity.ChatMessage) *model.ChatMessageModel {
	if data == nil {
		return nil
	}

	return &model.ChatMessageModel{
		ID:       data.ID,
		ChatID:   data.ChatID,
		AuthorID: data.AuthorID,
		Message:  data.Message,
	}
}
