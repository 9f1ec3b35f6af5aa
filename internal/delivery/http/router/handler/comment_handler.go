package handler

import (
	"log/slog"
	"net/http"

	"chirp/internal/delivery/authctx"
	"chirp/internal/delivery/http/response"
	"chirp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CommentHandler holds dependencies for comment-related handlers.
type CommentHandler struct {
	uc     usecase.CommentUsecase
	logger *slog.Logger
}

// NewCommentHandler is the constructor for CommentHandler.
func NewCommentHandler(uc usecase.CommentUsecase, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{uc: uc, logger: logger}
}

type commentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

// List handles the paginated comment listing of one post.
func (h *CommentHandler) List(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}

	query, err := listQuery(c)
	if err != nil {
		return err
	}

	page, err := h.uc.Paginate(c.Request().Context(), postID, query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// Get returns one comment of a post.
func (h *CommentHandler) Get(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}

	commentID, err := pathID(c, "commentId")
	if err != nil {
		return err
	}

	comment, err := h.uc.GetByID(c.Request().Context(), postID, commentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, comment, "")
}

// Create handles comment creation on a post.
func (h *CommentHandler) Create(c echo.Context) error {
	me, err := authctx.Principal(c.Request().Context())
	if err != nil {
		return err
	}

	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}

	input := &commentRequest{}
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	comment, err := h.uc.Create(c.Request().Context(), postID, me.ID, input.Comment)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, comment, "Comment created successfully")
}

// Update replaces a comment body. Ownership is enforced by the guard.
func (h *CommentHandler) Update(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}

	commentID, err := pathID(c, "commentId")
	if err != nil {
		return err
	}

	input := &commentRequest{}
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	comment, err := h.uc.Update(c.Request().Context(), postID, commentID, input.Comment)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, comment, "Comment updated successfully")
}

// Delete removes a comment. The guard allows the owner or an admin.
func (h *CommentHandler) Delete(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}

	commentID, err := pathID(c, "commentId")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), postID, commentID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, commentID, "Comment deleted successfully")
}
