package middlewares

import (
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/apierror"
	"github.com/gin-gonic/gin"
)

// ErrorBody is the envelope every failed response uses:
// {"error":{"code","message","requestId","details"}}.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
	Details   any    `json:"details,omitempty"`
}

func RequestIDFrom(c *gin.Context) string {
	if v := c.GetString(CtxRequestID); v != "" {
		return v
	}
	return c.GetHeader(requestIDHeader)
}

func Body(c *gin.Context, e *apierror.Error) gin.H {
	return gin.H{
		"error": ErrorBody{
			Code:      e.Kind.Code(),
			Message:   e.Message,
			RequestID: RequestIDFrom(c),
			Details:   e.Details,
		},
	}
}

func abort(c *gin.Context, e *apierror.Error) {
	c.AbortWithStatusJSON(e.Kind.Status(), Body(c, e))
}
