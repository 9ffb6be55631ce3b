package auth

import (
	"context"
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/fanshop/internal/apperror"
	"github.com/Skotchmaster/fanshop/internal/logging"
	"github.com/Skotchmaster/fanshop/internal/tokens"
)

// ContextKey is where the verified *tokens.Claims live in echo.Context.
const ContextKey = "claims"

const (
	msgUnauthenticated = "authentication required"
	msgForbidden       = "admin access required"
)

type ctxKey struct{}

type Gate struct {
	Tokens *tokens.Service
}

// RequireAuth verifies the bearer token and attaches its claims to the
// request. Every failure produces the same 401.
func (g *Gate) RequireAuth() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return g.Tokens.Verify(auth)
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get(ContextKey).(*tokens.Claims)
			if !ok {
				return
			}
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("user_id", claims.UserID)
			ctx = logging.IntoContext(WithClaims(ctx, claims), l)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logging.FromContext(c.Request().Context()).Warn("auth_failed",
				"status", 401, "reason", reason(err), "error", err)
			return apperror.NewUnauthenticated(msgUnauthenticated, err)
		},
	})
}

func reason(err error) string {
	switch {
	case errors.Is(err, echojwt.ErrJWTMissing):
		return "missing token"
	case errors.Is(err, tokens.ErrExpired):
		return "token expired"
	case errors.Is(err, tokens.ErrInvalidSignature):
		return "invalid signature"
	default:
		return "malformed token"
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok || !claims.IsAdmin {
			l := logging.FromContext(c.Request().Context())
			l.Warn("admin_required", "status", 403)
			return apperror.NewForbidden(msgForbidden, nil)
		}
		return next(c)
	}
}

func ClaimsFrom(c echo.Context) (*tokens.Claims, bool) {
	claims, ok := c.Get(ContextKey).(*tokens.Claims)
	return claims, ok && claims != nil
}

func WithClaims(ctx context.Context, claims *tokens.Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (*tokens.Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*tokens.Claims)
	return claims, ok && claims != nil
}
