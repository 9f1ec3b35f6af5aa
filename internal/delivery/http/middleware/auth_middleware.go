package middleware

import (
	"context"
	"strconv"

	"chirp/internal/delivery/authctx"
	"chirp/internal/domain/entity"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/domain/service"
	"chirp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	schemeBearer = "Bearer"
	schemeBasic  = "Basic"
)

// RouteOptions configures a guard explicitly per route. There is no implicit
// metadata; every route states what it allows.
type RouteOptions struct {
	// Public lets the request through without credentials. The guard still
	// attaches a (public) auth value so downstream code has one source of
	// truth.
	Public bool

	// Role, when set, requires the principal to carry this role.
	Role entity.Role
}

// AuthMiddleware provides the bearer, basic and ownership guards.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	users    usecase.UserUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, users usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, users: users}
}

// Bearer validates a bearer token of the expected kind and attaches the
// authentication result to the request context exactly once.
func (m *AuthMiddleware) Bearer(kind entity.TokenKind, opts RouteOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if opts.Public {
				m.attach(c, &authctx.Auth{Public: true})

				return next(c)
			}

			auth, err := m.authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization), kind)
			if err != nil {
				return err
			}

			if opts.Role != "" {
				if auth.User == nil {
					return domainerrors.ErrPrincipalMissing
				}
				if auth.User.Role != opts.Role {
					return domainerrors.ErrRoleRequired.WithDetails("required role: " + opts.Role.String())
				}
			}

			m.attach(c, auth)

			return next(c)
		}
	}
}

// authenticate verifies the credential and loads the principal. A token whose
// subject no longer resolves to a user still passes; accessors that need a
// principal fail later.
func (m *AuthMiddleware) authenticate(ctx context.Context, header string, kind entity.TokenKind) (*authctx.Auth, error) {
	token, err := m.tokenSvc.ExtractFromHeader(header, schemeBearer)
	if err != nil {
		return nil, err
	}

	claims, err := m.tokenSvc.Verify(token)
	if err != nil {
		return nil, err
	}

	if claims.Kind() != kind {
		if kind == entity.TokenKindRefresh {
			return nil, domainerrors.ErrNotRefreshToken
		}

		return nil, domainerrors.ErrNotAccessToken
	}

	auth := &authctx.Auth{Token: token, Kind: kind}

	user, err := m.users.GetByEmail(ctx, claims.Email)
	switch {
	case err == nil:
		auth.User = user
	case errors.Is(err, domainerrors.ErrUserNotFound):
		// Tolerated; the principal accessor rejects later if needed.
	default:
		return nil, err
	}

	return auth, nil
}

// Basic validates a Basic Authorization header and attaches the decoded
// credentials to the request context for the login handler.
func (m *AuthMiddleware) Basic() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential, err := m.tokenSvc.ExtractFromHeader(c.Request().Header.Get(echo.HeaderAuthorization), schemeBasic)
			if err != nil {
				return err
			}

			email, password, err := m.tokenSvc.DecodeBasic(credential)
			if err != nil {
				return err
			}

			ctx := authctx.WithCredential(c.Request().Context(), &authctx.Credential{
				Email:    email,
				Password: password,
			})
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// OwnershipCheck reports whether the user owns the resource with the id.
type OwnershipCheck func(ctx context.Context, resourceID, userID int64) (bool, error)

// OwnerOrAdmin allows the request when the principal is an admin or owns the
// resource named by the path parameter. It must run after a Bearer guard.
func (m *AuthMiddleware) OwnerOrAdmin(param string, check OwnershipCheck) echo.MiddlewareFunc {
	return m.ownership(param, check, true)
}

// Owner allows the request only when the principal owns the resource named by
// the path parameter. Admins get no bypass here.
func (m *AuthMiddleware) Owner(param string, check OwnershipCheck) echo.MiddlewareFunc {
	return m.ownership(param, check, false)
}

func (m *AuthMiddleware) ownership(param string, check OwnershipCheck, allowAdmin bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authctx.Principal(c.Request().Context())
			if err != nil {
				return err
			}

			if allowAdmin && user.Role == entity.RoleAdmin {
				return next(c)
			}

			resourceID, err := strconv.ParseInt(c.Param(param), 10, 64)
			if err != nil {
				return domainerrors.ErrValidationFailed.WithDetails("invalid path parameter: " + param)
			}

			mine, err := check(c.Request().Context(), resourceID, user.ID)
			if err != nil {
				return err
			}
			if !mine {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

// attach installs the immutable auth value on the request context.
func (m *AuthMiddleware) attach(c echo.Context, auth *authctx.Auth) {
	ctx := authctx.WithAuth(c.Request().Context(), auth)
	c.SetRequest(c.Request().WithContext(ctx))
}
