package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/account"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/student"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/handlers"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/gin-gonic/gin"
)

type fakeStudentsStore struct {
	fakeStudents
	lastFilter student.ListFilter
}

func (f *fakeStudentsStore) List(_ context.Context, filter student.ListFilter) ([]student.Student, error) {
	f.lastFilter = filter
	var out []student.Student
	for _, id := range []string{"s1", "s2"} {
		s, ok := f.fakeStudents[id]
		if !ok || (filter.Department != nil && *filter.Department != s.Department) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStudentsStore) Update(ctx context.Context, id string, req student.UpdateRequest) (student.Student, error) {
	s, err := f.GetByID(ctx, id)
	if err != nil {
		return student.Student{}, err
	}
	s.Apply(req)
	f.fakeStudents[s.ID] = s
	return s, nil
}

func setupStudentsRouter(role rbac.Role, accountID string, linked ...string) (*gin.Engine, *fakeStudentsStore) {
	store := &fakeStudentsStore{fakeStudents: fakeStudents{
		"s1": {ID: "s1", ExternalID: "STU001", Name: "Arjun Mehta", Department: "Computer Science", Year: 3, AccountID: ptr("student-account")},
		"s2": {ID: "s2", ExternalID: "STU002", Name: "Priya Sharma", Department: "Electronics", Year: 2},
	}}
	marks, _ := marksFixtures()
	records, _ := attendanceFixtures()
	accounts := &fakeAccounts{byEmail: map[string]account.Account{
		"parent@oc-2-day.edu": {ID: "7f1c1b3e-2c4d-4a8e-9b1f-2a3c4d5e6f70", Email: "parent@oc-2-day.edu", Role: rbac.Parent},
	}}

	r := gin.New()
	r.Use(as(role, accountID, linked...))

	h := handlers.NewStudentsHandler(store, marks, records, accounts)
	r.GET("/students", h.List)
	r.GET("/students/me", h.Me)
	r.GET("/students/:id", h.Get)
	r.PUT("/students/:id", h.Update)
	return r, store
}

func TestListStudents_DepartmentFilter(t *testing.T) {
	r, store := setupStudentsRouter(rbac.Teacher, "teacher-account")

	w := doJSON(t, r, http.MethodGet, "/students?department=Electronics", "")
	wantStatus(t, w, http.StatusOK)

	if store.lastFilter.Department == nil || *store.lastFilter.Department != "Electronics" {
		t.Fatalf("department filter not passed: %+v", store.lastFilter)
	}
	resp := decode[listResponse[student.Student]](t, w)
	if resp.Count != 1 || resp.Items[0].ExternalID != "STU002" {
		t.Fatalf("unexpected list %+v", resp)
	}
}

func TestStudentMe_EmbedsOwnRows(t *testing.T) {
	r, _ := setupStudentsRouter(rbac.Student, "student-account", "s1")

	w := doJSON(t, r, http.MethodGet, "/students/me", "")
	wantStatus(t, w, http.StatusOK)

	p := decode[handlers.StudentProfile](t, w)
	if p.ExternalID != "STU001" {
		t.Fatalf("unexpected profile %+v", p.Student)
	}
	for _, m := range p.Marks {
		if m.StudentID != "s1" {
			t.Fatalf("foreign mark embedded: %+v", m)
		}
	}
	if len(p.Marks) != 1 || len(p.AttendanceRecords) != 2 {
		t.Fatalf("marks=%d attendance=%d", len(p.Marks), len(p.AttendanceRecords))
	}
}

func TestStudentMe_NoProfile(t *testing.T) {
	r, _ := setupStudentsRouter(rbac.Student, "orphan-account")

	w := doJSON(t, r, http.MethodGet, "/students/me", "")
	wantStatus(t, w, http.StatusNotFound)
}

func TestGetStudent_ByDisplayID(t *testing.T) {
	r, _ := setupStudentsRouter(rbac.Admin, "admin-account")

	w := doJSON(t, r, http.MethodGet, "/students/STU002", "")
	wantStatus(t, w, http.StatusOK)
	if s := decode[student.Student](t, w); s.ID != "s2" {
		t.Fatalf("unexpected student %+v", s)
	}

	wantStatus(t, doJSON(t, r, http.MethodGet, "/students/STU404", ""), http.StatusNotFound)
}

func TestUpdateStudent(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"partial", "/students/STU001", `{"year":4,"cgpa":8.9}`, http.StatusOK},
		{"year out of range", "/students/STU001", `{"year":9}`, http.StatusBadRequest},
		{"cgpa out of range", "/students/STU001", `{"cgpa":10.5}`, http.StatusBadRequest},
		{"unknown guardian", "/students/STU001", `{"guardianAccountId":"00000000-0000-4000-8000-000000000000"}`, http.StatusBadRequest},
		{"known guardian", "/students/STU001", `{"guardianAccountId":"7f1c1b3e-2c4d-4a8e-9b1f-2a3c4d5e6f70"}`, http.StatusOK},
		{"missing student", "/students/STU404", `{"year":2}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store := setupStudentsRouter(rbac.Admin, "admin-account")

			w := doJSON(t, r, http.MethodPut, tt.path, tt.body)
			wantStatus(t, w, tt.status)

			if tt.name == "partial" {
				s := store.fakeStudents["s1"]
				if s.Year != 4 || s.CGPA != 8.9 || s.Name != "Arjun Mehta" {
					t.Fatalf("partial update wrong: %+v", s)
				}
			}
		})
	}
}

var (
	_ handlers.MarksLister      = (*fakeMarks)(nil)
	_ handlers.AttendanceLister = (*fakeAttendance)(nil)
)
