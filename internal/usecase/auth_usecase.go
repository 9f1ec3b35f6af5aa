// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"chirp/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Nickname string
	Email    string
	Password string
}

// --- Output DTOs ---

// TokenPair carries one freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterOutput returns the newly created user and their first token pair.
type RegisterOutput struct {
	User   *entity.User
	Tokens *TokenPair
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	User   *entity.User
	Tokens *TokenPair
}

// AuthUsecase defines the interface for authentication-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new account after checking nickname and email
	// uniqueness, then logs the user in.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login authenticates decoded Basic credentials and issues a token pair.
	Login(ctx context.Context, email, password string) (*LoginOutput, error)

	// Rotate exchanges a valid refresh token for a fresh pair.
	Rotate(ctx context.Context, refreshToken string) (*TokenPair, error)
}
