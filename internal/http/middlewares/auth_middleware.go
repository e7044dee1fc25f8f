package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/actorctx"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/apierror"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/auth"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	tokens TokenVerifier
}

func NewAuthMiddleware(tokens TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abort(c, apierror.New(apierror.MissingToken, "Authorization header with a Bearer token is required"))
			return
		}

		claims, err := m.tokens.Verify(c.Request.Context(), raw)
		if err != nil {
			abort(c, verifyError(c, err))
			return
		}

		role, _ := rbac.ParseRole(claims.Role)
		c.Set(CtxClaims, claims)
		c.Request = c.Request.WithContext(actorctx.With(c.Request.Context(), actorctx.Actor{
			AccountID: claims.UserID,
			Email:     claims.Email,
			Role:      role,
		}))

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func verifyError(c *gin.Context, err error) *apierror.Error {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return apierror.New(apierror.MissingToken, "Authorization header with a Bearer token is required")
	case errors.Is(err, auth.ErrExpiredToken):
		return apierror.New(apierror.ExpiredToken, "Token has expired")
	case errors.Is(err, auth.ErrRevokedToken):
		return apierror.New(apierror.InvalidToken, "Token has been revoked")
	case errors.Is(err, auth.ErrInvalidToken):
		return apierror.New(apierror.InvalidToken, "Invalid token")
	default:
		// denylist unreachable: fail closed
		slog.ErrorContext(c.Request.Context(), "token verification failed", "err", err, "request_id", RequestIDFrom(c))
		return apierror.Wrap(apierror.Internal, "Internal server error", err)
	}
}

// Optional helpers so handlers don't need to know the magic keys.

func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}

func UserIDFromContext(c *gin.Context) (string, bool) {
	claims, ok := ClaimsFromContext(c)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

func RoleFromContext(c *gin.Context) (rbac.Role, bool) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return "", false
	}
	return rbac.ParseRole(claims.Role)
}
