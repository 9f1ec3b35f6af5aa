package handler

import (
	"log/slog"
	"net/http"

	"chirp/internal/delivery/http/response"
	"chirp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ChatHandler holds dependencies for the chat read endpoints. Writes go
// through the websocket gateway.
type ChatHandler struct {
	uc     usecase.ChatUsecase
	logger *slog.Logger
}

// NewChatHandler is the constructor for ChatHandler.
func NewChatHandler(uc usecase.ChatUsecase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{uc: uc, logger: logger}
}

// List handles the paginated chat room listing.
func (h *ChatHandler) List(c echo.Context) error {
	query, err := listQuery(c)
	if err != nil {
		return err
	}

	page, err := h.uc.PaginateChats(c.Request().Context(), query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// Messages handles the paginated message listing of one chat room.
func (h *ChatHandler) Messages(c echo.Context) error {
	chatID, err := pathID(c, "chatId")
	if err != nil {
		return err
	}

	query, err := listQuery(c)
	if err != nil {
		return err
	}

	page, err := h.uc.PaginateMessages(c.Request().Context(), chatID, query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}
