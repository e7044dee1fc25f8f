package middlewares

import (
	"errors"
	"log/slog"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/apierror"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/gin-gonic/gin"
)

// Authorize consults the policy table with gin's matched route pattern. A
// route without an entry is refused.
func Authorize(policy rbac.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)
		if !ok {
			abort(c, apierror.New(apierror.Unauthenticated, "Authentication required"))
			return
		}

		err := policy.Authorize(c.Request.Method, c.FullPath(), role)
		if err == nil {
			c.Next()
			return
		}

		var denied *rbac.DeniedError
		if errors.As(err, &denied) {
			abort(c, apierror.New(apierror.Forbidden, denied.Error()).WithDetails(gin.H{
				"requiredRoles": denied.Required,
				"role":          denied.Role,
			}))
			return
		}

		if errors.Is(err, rbac.ErrNoRule) {
			slog.WarnContext(c.Request.Context(), "route has no authorization rule",
				"method", c.Request.Method, "route", c.FullPath())
		}
		abort(c, apierror.New(apierror.Forbidden, "Access denied"))
	}
}
