package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/teacher"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/handlers"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/gin-gonic/gin"
)

type fakeTeachers []teacher.Teacher

func (f fakeTeachers) List(context.Context) ([]teacher.Teacher, error) { return f, nil }

func (f fakeTeachers) GetByID(_ context.Context, id string) (teacher.Teacher, error) {
	for _, t := range f {
		if t.ID == id || t.ExternalID == id {
			return t, nil
		}
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (f fakeTeachers) GetByAccountID(_ context.Context, accountID string) (teacher.Teacher, error) {
	for _, t := range f {
		if t.AccountID != nil && *t.AccountID == accountID {
			return t, nil
		}
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func setupTeachersRouter(role rbac.Role, accountID string) *gin.Engine {
	store := fakeTeachers{
		{ID: "t1", ExternalID: "TCH001", Name: "Dr. Rajesh Kumar", Subject: "Data Structures", AccountID: ptr("teacher-account")},
		{ID: "t2", ExternalID: "TCH002", Name: "Prof. Sunita Patel", Subject: "DBMS"},
	}

	r := gin.New()
	r.Use(as(role, accountID))
	h := handlers.NewTeachersHandler(store)
	r.GET("/teachers", h.List)
	r.GET("/teachers/me", h.Me)
	r.GET("/teachers/:id", h.Get)
	return r
}

func TestTeachers(t *testing.T) {
	r := setupTeachersRouter(rbac.Teacher, "teacher-account")

	w := doJSON(t, r, http.MethodGet, "/teachers", "")
	wantStatus(t, w, http.StatusOK)
	if resp := decode[listResponse[teacher.Teacher]](t, w); resp.Count != 2 {
		t.Fatalf("count = %d", resp.Count)
	}

	w = doJSON(t, r, http.MethodGet, "/teachers/me", "")
	wantStatus(t, w, http.StatusOK)
	if me := decode[teacher.Teacher](t, w); me.ExternalID != "TCH001" {
		t.Fatalf("me = %+v", me)
	}

	wantStatus(t, doJSON(t, r, http.MethodGet, "/teachers/TCH002", ""), http.StatusOK)
	wantStatus(t, doJSON(t, r, http.MethodGet, "/teachers/TCH404", ""), http.StatusNotFound)
}

func TestTeacherMe_NoProfile(t *testing.T) {
	r := setupTeachersRouter(rbac.Teacher, "someone-else")
	wantStatus(t, doJSON(t, r, http.MethodGet, "/teachers/me", ""), http.StatusNotFound)
}
