package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/mark"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/student"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type MarksStore interface {
	List(ctx context.Context, f mark.ListFilter) ([]mark.Mark, error)
	GetByID(ctx context.Context, id string) (mark.Mark, error)
	Create(ctx context.Context, m mark.Mark) error
	Update(ctx context.Context, m mark.Mark) (mark.Mark, error)
}

type MarksHandler struct {
	marks    MarksStore
	students StudentLookup
	notify   *Notifier
}

func NewMarksHandler(m MarksStore, s StudentLookup, n *Notifier) *MarksHandler {
	return &MarksHandler{marks: m, students: s, notify: n}
}

func (h *MarksHandler) List(ctx *gin.Context) {
	scope := middlewares.ScopeFromContext(ctx)
	if !requireProfile(ctx, scope) {
		return
	}

	c := ctx.Request.Context()
	ids, err := scopedStudents(c, h.students, scope, ctx.Query("studentId"))
	if err != nil {
		RespondInternal(ctx, "Could not list marks", err)
		return
	}

	items, err := h.marks.List(c, mark.ListFilter{StudentIDs: ids})
	if err != nil {
		RespondInternal(ctx, "Could not list marks", err)
		return
	}
	respondList(ctx, items, nil)
}

func (h *MarksHandler) Create(ctx *gin.Context) {
	var req mark.CreateRequest
	if !BindJSON(ctx, &req) {
		return
	}

	c := ctx.Request.Context()
	s, err := h.students.GetByID(c, req.StudentID)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			RespondNotFound(ctx, "Student not found")
			return
		}
		RespondInternal(ctx, "Could not create mark", err)
		return
	}

	m := mark.NewFromCreateRequest(s.ID, req)
	if err := h.marks.Create(c, m); err != nil {
		RespondInternal(ctx, "Could not create mark", err)
		return
	}

	h.notify.Student(ctx, s.ID, "Marks Published", markMessage(m))
	ctx.JSON(http.StatusCreated, m)
}

func (h *MarksHandler) Update(ctx *gin.Context) {
	var req mark.UpdateRequest
	if !BindJSON(ctx, &req) {
		return
	}

	c := ctx.Request.Context()
	m, err := h.marks.GetByID(c, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, mark.ErrNotFound) {
			RespondNotFound(ctx, "Mark not found")
			return
		}
		RespondInternal(ctx, "Could not update mark", err)
		return
	}

	m.Apply(req)

	updated, err := h.marks.Update(c, m)
	if err != nil {
		if errors.Is(err, mark.ErrNotFound) {
			RespondNotFound(ctx, "Mark not found")
			return
		}
		RespondInternal(ctx, "Could not update mark", err)
		return
	}

	h.notify.Student(ctx, updated.StudentID, "Mark Updated", markMessage(updated))
	ctx.JSON(http.StatusOK, updated)
}

func markMessage(m mark.Mark) string {
	return fmt.Sprintf("%s: total %d/%d, grade %s.", m.Subject, m.Total, mark.MaxTotal, m.Grade)
}
