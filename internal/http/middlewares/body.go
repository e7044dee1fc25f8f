package middlewares

import (
	"mime"
	"net/http"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/apierror"
	"github.com/gin-gonic/gin"
)

func hasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// MaxBodyBytes caps request bodies at limit. A declared Content-Length over
// the cap is refused before the handler runs; chunked bodies are cut off by
// the reader and surface as body_too_large from binding.
func MaxBodyBytes(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || !hasBody(c.Request.Method) {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			abort(c, apierror.New(apierror.InvalidRequest, "Invalid request body").
				WithDetails(gin.H{"json": "body_too_large", "limit": limit}))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// RequireJSON rejects write requests that carry a body in anything but JSON.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if hasBody(c.Request.Method) && c.Request.ContentLength != 0 {
			mt, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
			if err != nil || mt != "application/json" {
				abort(c, apierror.New(apierror.UnsupportedMedia, "Content-Type must be application/json"))
				return
			}
		}
		c.Next()
	}
}
