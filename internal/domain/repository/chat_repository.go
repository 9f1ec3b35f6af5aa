package repository

import (
	"context"
	"errors"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"
)

// ErrChatNotFound is a domain-specific error returned when a chat is not found.
var ErrChatNotFound = errors.New("chat not found")

// ChatRepository defines the standard operations for chat persistence.
type ChatRepository interface {
	// Create persists a new chat room with its member users.
	Create(ctx context.Context, chat *entity.Chat, memberIDs []int64) error

	// Exists reports whether a chat with the id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Paginate lists chat rooms according to the parsed query.
	Paginate(ctx context.Context, query *pagination.Query, path string) (*pagination.Page[*entity.Chat], error)

	// CreateMessage persists a message inside a chat room.
	CreateMessage(ctx context.Context, message *entity.ChatMessage) error

	// PaginateMessages lists the messages of one chat according to the parsed
	// query. The chat id is a fixed constraint.
	PaginateMessages(ctx context.Context, chatID int64, query *pagination.Query, path string) (*pagination.Page[*entity.ChatMessage], error)
}
