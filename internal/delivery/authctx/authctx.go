// Package authctx threads the authenticated principal through the request
// context. Guards write it exactly once per request; handlers and services
// only read it, so authentication state never mutates mid-request.
package authctx

import (
	"context"

	"chirp/internal/domain/entity"
	domainerrors "chirp/internal/domain/errors"
)

type contextKey struct{}

type credentialKey struct{}

// Auth is the immutable authentication result attached to a request.
// For public routes Public is true and the other fields are zero.
type Auth struct {
	Token string
	Kind  entity.TokenKind
	User  *entity.User
	// Public marks a request that passed through a guard without credentials
	// because the route allows anonymous access.
	Public bool
}

// WithAuth returns a new context carrying the auth result.
func WithAuth(ctx context.Context, auth *Auth) context.Context {
	return context.WithValue(ctx, contextKey{}, auth)
}

// FromContext extracts the auth result. It returns nil when no guard ran.
func FromContext(ctx context.Context) *Auth {
	auth, _ := ctx.Value(contextKey{}).(*Auth)

	return auth
}

// Principal returns the authenticated user or fails when the request carries
// no principal. Handlers behind a non-public guard use this accessor.
func Principal(ctx context.Context) (*entity.User, error) {
	auth := FromContext(ctx)
	if auth == nil || auth.User == nil {
		return nil, domainerrors.ErrPrincipalMissing
	}

	return auth.User, nil
}

// Credential is the decoded Basic credential pair. The Basic guard writes it
// once per request, same as Auth.
type Credential struct {
	Email    string
	Password string
}

// WithCredential returns a new context carrying the decoded Basic credential.
func WithCredential(ctx context.Context, credential *Credential) context.Context {
	return context.WithValue(ctx, credentialKey{}, credential)
}

// BasicCredential returns the credential attached by the Basic guard or fails
// when none is present.
func BasicCredential(ctx context.Context) (*Credential, error) {
	credential, _ := ctx.Value(credentialKey{}).(*Credential)
	if credential == nil || credential.Email == "" {
		return nil, domainerrors.ErrBasicCredentialInvalid
	}

	return credential, nil
}
