package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/account"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/attendance"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/mark"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/student"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type StudentsStore interface {
	List(ctx context.Context, f student.ListFilter) ([]student.Student, error)
	GetByID(ctx context.Context, id string) (student.Student, error)
	Update(ctx context.Context, id string, req student.UpdateRequest) (student.Student, error)
}

type MarksLister interface {
	List(ctx context.Context, f mark.ListFilter) ([]mark.Mark, error)
}

type AttendanceLister interface {
	List(ctx context.Context, f attendance.ListFilter) ([]attendance.Record, error)
}

type AccountGetter interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
}

type StudentsHandler struct {
	students   StudentsStore
	marks      MarksLister
	attendance AttendanceLister
	accounts   AccountGetter
}

func NewStudentsHandler(s StudentsStore, m MarksLister, a AttendanceLister, accounts AccountGetter) *StudentsHandler {
	return &StudentsHandler{students: s, marks: m, attendance: a, accounts: accounts}
}

// StudentProfile is a student with their own academic rows embedded.
type StudentProfile struct {
	student.Student
	Marks             []mark.Mark         `json:"marks"`
	AttendanceRecords []attendance.Record `json:"attendanceRecords"`
}

func (h *StudentsHandler) List(ctx *gin.Context) {
	var f student.ListFilter
	if d := strings.TrimSpace(ctx.Query("department")); d != "" {
		f.Department = &d
	}

	items, err := h.students.List(ctx.Request.Context(), f)
	if err != nil {
		RespondInternal(ctx, "Could not list students", err)
		return
	}
	respondList(ctx, items, nil)
}

func (h *StudentsHandler) Me(ctx *gin.Context) {
	scope := middlewares.ScopeFromContext(ctx)
	if !scope.HasProfile() || len(scope.StudentIDs) == 0 {
		RespondNotFound(ctx, "Student profile not found")
		return
	}

	c := ctx.Request.Context()
	s, err := h.students.GetByID(c, scope.StudentIDs[0])
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			RespondNotFound(ctx, "Student profile not found")
			return
		}
		RespondInternal(ctx, "Could not load student profile", err)
		return
	}

	only := []string{s.ID}
	marks, err := h.marks.List(c, mark.ListFilter{StudentIDs: only})
	if err != nil {
		RespondInternal(ctx, "Could not load student profile", err)
		return
	}
	records, err := h.attendance.List(c, attendance.ListFilter{StudentIDs: only})
	if err != nil {
		RespondInternal(ctx, "Could not load student profile", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, StudentProfile{
		Student:           s,
		Marks:             nonNil(marks),
		AttendanceRecords: nonNil(records),
	})
}

func (h *StudentsHandler) Get(ctx *gin.Context) {
	s, err := h.students.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			RespondNotFound(ctx, "Student not found")
			return
		}
		RespondInternal(ctx, "Could not fetch student", err)
		return
	}
	RespondJSONWithETag(ctx, http.StatusOK, s)
}

func (h *StudentsHandler) Update(ctx *gin.Context) {
	var req student.UpdateRequest
	if !BindJSON(ctx, &req) {
		return
	}

	if req.GuardianAccountID != nil {
		if _, err := h.accounts.GetByID(ctx.Request.Context(), *req.GuardianAccountID); err != nil {
			if errors.Is(err, account.ErrNotFound) {
				RespondBadRequest(ctx, "Invalid request body", gin.H{"fields": []FieldError{{
					Field: "guardianAccountId", Rule: "exists", Message: "guardianAccountId does not match an account",
				}}})
				return
			}
			RespondInternal(ctx, "Could not update student", err)
			return
		}
	}

	s, err := h.students.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			RespondNotFound(ctx, "Student not found")
			return
		}
		RespondInternal(ctx, "Could not update student", err)
		return
	}
	ctx.JSON(http.StatusOK, s)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
