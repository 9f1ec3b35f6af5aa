// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chirp/config"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/domain/entity"
	"chirp/internal/domain/service"
	"chirp/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// All tokens are signed with a single HMAC secret; the "type" claim tells
// access and refresh tokens apart.
type jwtService struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.JWT == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret:     cfg.SecretKey.JWT,
		accessTTL:  cfg.Auth.AccessTokenTTL,
		refreshTTL: cfg.Auth.RefreshTokenTTL,
	}, nil
}

// Issue creates a signed token of the given kind for the user.
func (s *jwtService) Issue(user *entity.User, kind entity.TokenKind) (string, error) {
	ttl := s.accessTTL
	if kind == entity.TokenKindRefresh {
		ttl = s.refreshTTL
	}

	now := time.Now()
	claims := &service.Claims{
		Email: user.Email,
		Type:  kind.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Verify checks the token's signature and expiry and returns its claims.
// Every failure mode maps to the same unauthenticated error so callers
// cannot distinguish expiry from tampering.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrTokenInvalid
	}

	return claims, nil
}

// Rotate verifies a refresh token and re-issues a fresh access/refresh pair.
func (s *jwtService) Rotate(refreshToken string) (string, string, error) {
	claims, err := s.Verify(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Kind() != entity.TokenKindRefresh {
		return "", "", domainerrors.ErrRotateRequiresRefresh
	}

	user := &entity.User{ID: claims.UserID(), Email: claims.Email}

	accessToken, err := s.Issue(user, entity.TokenKindAccess)
	if err != nil {
		return "", "", err
	}

	newRefreshToken, err := s.Issue(user, entity.TokenKindRefresh)
	if err != nil {
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

// ExtractFromHeader splits an Authorization header of the exact form
// "{scheme} {credential}".
func (s *jwtService) ExtractFromHeader(header, scheme string) (string, error) {
	if header == "" {
		return "", domainerrors.ErrTokenMissing
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != scheme {
		return "", domainerrors.ErrTokenMalformed
	}

	return parts[1], nil
}

// DecodeBasic base64-decodes a Basic credential into its identifier/secret pair.
func (s *jwtService) DecodeBasic(credential string) (string, string, error) {
	decoded, err := base64.StdEncoding.DecodeString(credential)
	if err != nil {
		return "", "", domainerrors.ErrBasicCredentialInvalid
	}

	pair := strings.Split(string(decoded), ":")
	if len(pair) != 2 {
		return "", "", domainerrors.ErrBasicCredentialInvalid
	}

	return pair[0], pair[1], nil
}
