package service

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"chirp/internal/domain/entity"
)

// Claims defines the custom claims carried by every issued token.
// Subject holds the user id in decimal form.
type Claims struct {
	Email string `json:"email"`
	Type  string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// Kind returns the token kind the claims were issued with.
func (c *Claims) Kind() entity.TokenKind {
	return entity.TokenKind(c.Type)
}

// UserID parses the subject claim into the user id. A zero return means the
// subject was absent or malformed.
func (c *Claims) UserID() int64 {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}

	return id
}

// TokenService signs, verifies and rotates bearer tokens and decodes the two
// Authorization header credential formats. This abstracts the JWT details
// from the use cases and guards.
type TokenService interface {
	// Issue creates a signed token of the given kind for the user. The TTL is
	// determined solely by the kind (short for access, long for refresh).
	Issue(user *entity.User, kind entity.TokenKind) (string, error)

	// Verify checks the token's signature and expiry and returns its claims.
	Verify(tokenString string) (*Claims, error)

	// Rotate verifies a refresh token and re-issues a fresh access/refresh
	// pair from the embedded subject identity. Tokens of any other kind are
	// rejected.
	Rotate(refreshToken string) (newAccessToken string, newRefreshToken string, err error)

	// ExtractFromHeader splits an Authorization header of the exact form
	// "{scheme} {credential}" and returns the credential. The scheme name
	// must case-match the expected value.
	ExtractFromHeader(header, scheme string) (string, error)

	// DecodeBasic base64-decodes a Basic credential into its
	// identifier/secret pair. The decoded text must contain exactly one
	// colon-delimited pair.
	DecodeBasic(credential string) (identifier string, secret string, err error)
}
