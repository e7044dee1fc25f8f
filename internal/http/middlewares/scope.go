package middlewares

import (
	"context"
	"log/slog"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/apierror"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/gin-gonic/gin"
)

type StudentLinks interface {
	IDsOwnedBy(ctx context.Context, accountID string) ([]string, error)
	IDsGuardedBy(ctx context.Context, accountID string) ([]string, error)
}

// ResolveScope derives the caller's ownership scope once per request. It
// must run after RequireAuth.
func ResolveScope(links StudentLinks) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			abort(c, apierror.New(apierror.Unauthenticated, "Authentication required"))
			return
		}
		role, _ := rbac.ParseRole(claims.Role)

		var (
			linked []string
			err    error
		)
		switch role {
		case rbac.Student:
			linked, err = links.IDsOwnedBy(c.Request.Context(), claims.UserID)
		case rbac.Parent:
			linked, err = links.IDsGuardedBy(c.Request.Context(), claims.UserID)
		}
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "resolve scope", "err", err, "request_id", RequestIDFrom(c))
			abort(c, apierror.Wrap(apierror.Internal, "Internal server error", err))
			return
		}

		c.Set(CtxScope, rbac.NewScope(role, claims.UserID, linked))
		c.Next()
	}
}

// ScopeFromContext returns the resolved scope. Without one the caller is
// treated as restricted with nothing linked.
func ScopeFromContext(c *gin.Context) rbac.Scope {
	if v, ok := c.Get(CtxScope); ok {
		if s, ok := v.(rbac.Scope); ok {
			return s
		}
	}
	return rbac.Scope{Restricted: true, StudentIDs: []string{}}
}
