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

// PostHandler holds dependencies for post-related handlers.
type PostHandler struct {
	uc     usecase.PostUsecase
	logger *slog.Logger
}

// NewPostHandler is the constructor for PostHandler.
func NewPostHandler(uc usecase.PostUsecase, logger *slog.Logger) *PostHandler {
	return &PostHandler{uc: uc, logger: logger}
}

type createPostRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Images  []string `json:"images"`
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// List handles the paginated public post listing.
func (h *PostHandler) List(c echo.Context) error {
	query, err := listQuery(c)
	if err != nil {
		return err
	}

	page, err := h.uc.Paginate(c.Request().Context(), query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// Get returns one post by id.
func (h *PostHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, post, "")
}

// Create handles post creation with staged image references.
func (h *PostHandler) Create(c echo.Context) error {
	me, err := authctx.Principal(c.Request().Context())
	if err != nil {
		return err
	}

	input := &createPostRequest{}
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	post, err := h.uc.Create(c.Request().Context(), me.ID, &usecase.CreatePostInput{
		Title:   input.Title,
		Content: input.Content,
		Images:  input.Images,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, post, "Post created successfully")
}

// Update handles a partial post update. Ownership is enforced by the guard.
func (h *PostHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	input := &updatePostRequest{}
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}

	post, err := h.uc.Update(c.Request().Context(), id, &usecase.UpdatePostInput{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, post, "Post updated successfully")
}

// Delete removes a post. The route requires the admin role.
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, id, "Post deleted successfully")
}
