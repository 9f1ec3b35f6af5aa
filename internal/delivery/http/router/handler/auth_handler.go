package handler

import (
	"log/slog"
	"net/http"

	"chirp/internal/delivery/authctx"
	"chirp/internal/delivery/http/response"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication-related handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// Login handles the login request. The Basic guard has already decoded the
// credentials from the Authorization header.
func (h *AuthHandler) Login(c echo.Context) error {
	credential, err := authctx.BasicCredential(c.Request().Context())
	if err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), credential.Email, credential.Password)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, echo.Map{
		"user":   output.User,
		"tokens": output.Tokens,
	}, "Login successful")
}

// Rotate exchanges the refresh token carried by the bearer guard for a fresh
// token pair.
func (h *AuthHandler) Rotate(c echo.Context) error {
	auth := authctx.FromContext(c.Request().Context())
	if auth == nil || auth.Token == "" {
		return domainerrors.ErrTokenMissing
	}

	tokens, err := h.uc.Rotate(c.Request().Context(), auth.Token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokens, "Token rotated successfully")
}
