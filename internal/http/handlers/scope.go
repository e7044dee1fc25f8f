package handlers

import (
	"context"
	"errors"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/student"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/gin-gonic/gin"
)

type StudentLookup interface {
	GetByID(ctx context.Context, id string) (student.Student, error)
}

// scopedStudents turns an optional ?studentId= (UUID or display id) into the
// student filter for the caller's scope. The requested student is resolved
// first so display ids and durable ids behave the same.
func scopedStudents(ctx context.Context, lookup StudentLookup, scope rbac.Scope, requested string) ([]string, error) {
	if requested != "" {
		s, err := lookup.GetByID(ctx, requested)
		switch {
		case err == nil:
			requested = s.ID
		case errors.Is(err, student.ErrNotFound):
			if !scope.Restricted {
				return []string{}, nil
			}
			requested = ""
		default:
			return nil, err
		}
	}
	return scope.Students(requested), nil
}

// requireProfile answers 404 for a STUDENT account with no student row.
func requireProfile(ctx *gin.Context, scope rbac.Scope) bool {
	if scope.Role == rbac.Student && !scope.HasProfile() {
		RespondNotFound(ctx, "Student profile not found")
		return false
	}
	return true
}
