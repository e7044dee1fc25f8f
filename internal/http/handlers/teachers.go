package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/teacher"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type TeachersReader interface {
	List(ctx context.Context) ([]teacher.Teacher, error)
	GetByID(ctx context.Context, id string) (teacher.Teacher, error)
	GetByAccountID(ctx context.Context, accountID string) (teacher.Teacher, error)
}

type TeachersHandler struct {
	teachers TeachersReader
}

func NewTeachersHandler(t TeachersReader) *TeachersHandler {
	return &TeachersHandler{teachers: t}
}

func (h *TeachersHandler) List(ctx *gin.Context) {
	items, err := h.teachers.List(ctx.Request.Context())
	if err != nil {
		RespondInternal(ctx, "Could not list teachers", err)
		return
	}
	respondList(ctx, items, nil)
}

func (h *TeachersHandler) Me(ctx *gin.Context) {
	id, _ := middlewares.UserIDFromContext(ctx)

	t, err := h.teachers.GetByAccountID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, teacher.ErrNotFound) {
			RespondNotFound(ctx, "Teacher profile not found")
			return
		}
		RespondInternal(ctx, "Could not load teacher profile", err)
		return
	}
	RespondJSONWithETag(ctx, http.StatusOK, t)
}

func (h *TeachersHandler) Get(ctx *gin.Context) {
	t, err := h.teachers.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, teacher.ErrNotFound) {
			RespondNotFound(ctx, "Teacher not found")
			return
		}
		RespondInternal(ctx, "Could not fetch teacher", err)
		return
	}
	RespondJSONWithETag(ctx, http.StatusOK, t)
}
