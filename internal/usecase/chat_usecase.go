package usecase

import (
	"context"

	"chirp/internal/domain/entity"
	"chirp/internal/pagination"
)

// ChatUsecase defines the interface for chat-room operations. The websocket
// gateway and the HTTP read endpoints share this contract.
type ChatUsecase interface {
	// CreateChat opens a new room with the given member ids.
	CreateChat(ctx context.Context, memberIDs []int64) (*entity.Chat, error)

	// ChatExists reports whether a room exists.
	ChatExists(ctx context.Context, chatID int64) (bool, error)

	// PaginateChats pages through chat rooms.
	PaginateChats(ctx context.Context, query *pagination.Query) (*pagination.Page[*entity.Chat], error)

	// CreateMessage validates the room and persists a message in it.
	CreateMessage(ctx context.Context, chatID, authorID int64, text string) (*entity.ChatMessage, error)

	// PaginateMessages pages through one room's messages.
	PaginateMessages(ctx context.Context, chatID int64, query *pagination.Query) (*pagination.Page[*entity.ChatMessage], error)
}
