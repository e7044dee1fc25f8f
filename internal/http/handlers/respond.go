package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/apierror"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func RespondError(ctx *gin.Context, e *apierror.Error) {
	ctx.AbortWithStatusJSON(e.Kind.Status(), middlewares.Body(ctx, e))
}

func RespondBadRequest(ctx *gin.Context, message string, details any) {
	RespondError(ctx, apierror.New(apierror.InvalidRequest, message).WithDetails(details))
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, apierror.New(apierror.NotFound, message))
}

func RespondUnAuthorized(ctx *gin.Context, kind apierror.Kind, message string) {
	RespondError(ctx, apierror.New(kind, message))
}

func RespondConflict(ctx *gin.Context, message string, details any) {
	RespondError(ctx, apierror.New(apierror.Conflict, message).WithDetails(details))
}

// RespondInternal logs the cause with the request id and sends a generic
// 500; store errors never reach the client.
func RespondInternal(ctx *gin.Context, message string, err error) {
	slog.ErrorContext(ctx.Request.Context(), message,
		"err", err,
		"route", ctx.FullPath(),
		"request_id", middlewares.RequestIDFrom(ctx),
	)
	RespondError(ctx, apierror.Wrap(apierror.Internal, message, err))
}

// list responses are {items, count} plus extras
func listBody[T any](items []T, extra gin.H) gin.H {
	if items == nil {
		items = []T{}
	}
	body := gin.H{"items": items, "count": len(items)}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func respondList[T any](ctx *gin.Context, items []T, extra gin.H) {
	RespondJSONWithETag(ctx, http.StatusOK, listBody(items, extra))
}
