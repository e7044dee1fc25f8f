package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/attendance"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/student"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type AttendanceStore interface {
	List(ctx context.Context, f attendance.ListFilter) ([]attendance.Record, error)
	GetByID(ctx context.Context, id string) (attendance.Record, error)
	Create(ctx context.Context, a attendance.Record) error
	UpdateStatus(ctx context.Context, id string, status attendance.Status) (attendance.Record, error)
}

type AttendanceHandler struct {
	records  AttendanceStore
	students StudentLookup
	notify   *Notifier
}

func NewAttendanceHandler(r AttendanceStore, s StudentLookup, n *Notifier) *AttendanceHandler {
	return &AttendanceHandler{records: r, students: s, notify: n}
}

func (h *AttendanceHandler) List(ctx *gin.Context) {
	scope := middlewares.ScopeFromContext(ctx)
	if !requireProfile(ctx, scope) {
		return
	}

	var f attendance.ListFilter
	if d := ctx.Query("date"); d != "" {
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			invalidQuery(ctx, FieldError{Field: "date", Rule: isoDateTag, Message: "date must be a calendar date in YYYY-MM-DD format"})
			return
		}
		f.Date = &d
	}

	c := ctx.Request.Context()
	ids, err := scopedStudents(c, h.students, scope, ctx.Query("studentId"))
	if err != nil {
		RespondInternal(ctx, "Could not list attendance", err)
		return
	}
	f.StudentIDs = ids

	items, err := h.records.List(c, f)
	if err != nil {
		RespondInternal(ctx, "Could not list attendance", err)
		return
	}
	respondList(ctx, items, nil)
}

func (h *AttendanceHandler) Create(ctx *gin.Context) {
	var req attendance.CreateRequest
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
		RespondInternal(ctx, "Could not record attendance", err)
		return
	}

	rec := attendance.NewFromCreateRequest(s.ID, req)
	if err := h.records.Create(c, rec); err != nil {
		RespondInternal(ctx, "Could not record attendance", err)
		return
	}

	if rec.Status == attendance.StatusAbsent {
		h.notify.Student(ctx, s.ID, "Attendance Alert", absentMessage(rec))
	}
	ctx.JSON(http.StatusCreated, rec)
}

func (h *AttendanceHandler) Update(ctx *gin.Context) {
	var req attendance.UpdateRequest
	if !BindJSON(ctx, &req) {
		return
	}

	c := ctx.Request.Context()
	before, err := h.records.GetByID(c, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, attendance.ErrNotFound) {
			RespondNotFound(ctx, "Attendance record not found")
			return
		}
		RespondInternal(ctx, "Could not update attendance", err)
		return
	}

	rec, err := h.records.UpdateStatus(c, before.ID, req.Status)
	if err != nil {
		if errors.Is(err, attendance.ErrNotFound) {
			RespondNotFound(ctx, "Attendance record not found")
			return
		}
		RespondInternal(ctx, "Could not update attendance", err)
		return
	}

	if before.Status != attendance.StatusAbsent && rec.Status == attendance.StatusAbsent {
		h.notify.Student(ctx, rec.StudentID, "Attendance Alert", absentMessage(rec))
	}
	ctx.JSON(http.StatusOK, rec)
}

func absentMessage(r attendance.Record) string {
	return fmt.Sprintf("Marked absent for %s on %s.", r.Subject, r.Date)
}
