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

// UserHandler holds dependencies for user and follow-graph handlers.
type UserHandler struct {
	authUC usecase.AuthUsecase
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(authUC usecase.AuthUsecase, userUC usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{authUC: authUC, userUC: userUC, logger: logger}
}

type registerRequest struct {
	Nickname string `json:"nickname" validate:"required,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	input := &registerRequest{}
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Nickname: input.Nickname,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, echo.Map{
		"user":   output.User,
		"tokens": output.Tokens,
	}, "User registered successfully")
}

// List handles the paginated user listing (admin only).
func (h *UserHandler) List(c echo.Context) error {
	query, err := listQuery(c)
	if err != nil {
		return err
	}

	page, err := h.userUC.ListUsers(c.Request().Context(), query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// Follow records a follow request from the principal to the user in the path.
func (h *UserHandler) Follow(c echo.Context) error {
	me, err := authctx.Principal(c.Request().Context())
	if err != nil {
		return err
	}

	followeeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userUC.Follow(c.Request().Context(), me.ID, followeeID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, true, "Follow request created")
}

// Followers lists the users following the principal. Pending requests are
// included when includeNotConfirmed=true.
func (h *UserHandler) Followers(c echo.Context) error {
	me, err := authctx.Principal(c.Request().Context())
	if err != nil {
		return err
	}

	includeNotConfirmed := c.QueryParam("includeNotConfirmed") == "true"

	edges, err := h.userUC.Followers(c.Request().Context(), me.ID, includeNotConfirmed)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, edges, "")
}

// ConfirmFollow accepts the pending follow request from the user in the path.
func (h *UserHandler) ConfirmFollow(c echo.Context) error {
	me, err := authctx.Principal(c.Request().Context())
	if err != nil {
		return err
	}

	followerID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userUC.ConfirmFollow(c.Request().Context(), followerID, me.ID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, true, "Follow request confirmed")
}

// DeleteFollow removes the principal's follow edge to the user in the path.
func (h *UserHandler) DeleteFollow(c echo.Context) error {
	me, err := authctx.Principal(c.Request().Context())
	if err != nil {
		return err
	}

	followeeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userUC.DeleteFollow(c.Request().Context(), me.ID, followeeID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, true, "Follow removed")
}
