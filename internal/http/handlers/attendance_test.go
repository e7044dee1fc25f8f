package handlers_test

import (
	"context"
	"net/http"
	"slices"
	"testing"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/attendance"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/handlers"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/jobs"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/gin-gonic/gin"
)

type fakeAttendance struct {
	rows []attendance.Record
	last attendance.ListFilter
}

func (f *fakeAttendance) List(_ context.Context, filter attendance.ListFilter) ([]attendance.Record, error) {
	f.last = filter
	var out []attendance.Record
	for _, r := range f.rows {
		if filter.StudentIDs != nil && !slices.Contains(filter.StudentIDs, r.StudentID) {
			continue
		}
		if filter.Date != nil && *filter.Date != r.Date {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeAttendance) GetByID(_ context.Context, id string) (attendance.Record, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrNotFound
}

func (f *fakeAttendance) Create(_ context.Context, r attendance.Record) error {
	f.rows = append(f.rows, r)
	return nil
}

func (f *fakeAttendance) UpdateStatus(_ context.Context, id string, status attendance.Status) (attendance.Record, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			return f.rows[i], nil
		}
	}
	return attendance.Record{}, attendance.ErrNotFound
}

func attendanceFixtures() (*fakeAttendance, fakeStudents) {
	records := &fakeAttendance{rows: []attendance.Record{
		{ID: "a1", StudentID: "s1", Date: "2026-02-20", Subject: "Data Structures", Status: attendance.StatusPresent},
		{ID: "a2", StudentID: "s1", Date: "2026-02-21", Subject: "Data Structures", Status: attendance.StatusAbsent},
		{ID: "a3", StudentID: "s2", Date: "2026-02-20", Subject: "DBMS", Status: attendance.StatusPresent},
	}}
	students := fakeStudents{
		"s1": {ID: "s1", ExternalID: "STU001", AccountID: ptr("student-account")},
		"s2": {ID: "s2", ExternalID: "STU002"},
	}
	return records, students
}

func setupAttendanceRouter(a handlers.AttendanceStore, s handlers.StudentLookup, q *fakeJobs, role rbac.Role, accountID string, linked ...string) *gin.Engine {
	r := gin.New()
	r.Use(as(role, accountID, linked...))

	h := handlers.NewAttendanceHandler(a, s, handlers.NewNotifier(q))
	r.GET("/attendance", h.List)
	r.POST("/attendance", h.Create)
	r.PATCH("/attendance/:id", h.Update)
	return r
}

func recordIDs(items []attendance.Record) []string {
	var ids []string
	for _, r := range items {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestListAttendance(t *testing.T) {
	tests := []struct {
		name   string
		role   rbac.Role
		linked []string
		query  string
		want   []string
	}{
		{"teacher by student", rbac.Teacher, nil, "?studentId=STU001", []string{"a1", "a2"}},
		{"teacher by date", rbac.Teacher, nil, "?date=2026-02-20", []string{"a1", "a3"}},
		{"student own only", rbac.Student, []string{"s1"}, "?studentId=STU002", []string{"a1", "a2"}},
		{"student own by date", rbac.Student, []string{"s1"}, "?date=2026-02-21", []string{"a2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, students := attendanceFixtures()
			r := setupAttendanceRouter(records, students, &fakeJobs{}, tt.role, "caller", tt.linked...)

			w := doJSON(t, r, http.MethodGet, "/attendance"+tt.query, "")
			wantStatus(t, w, http.StatusOK)

			if got := recordIDs(decode[listResponse[attendance.Record]](t, w).Items); !slices.Equal(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestListAttendance_BadDate(t *testing.T) {
	records, students := attendanceFixtures()
	r := setupAttendanceRouter(records, students, &fakeJobs{}, rbac.Teacher, "teacher-account")

	w := doJSON(t, r, http.MethodGet, "/attendance?date=20-02-2026", "")
	wantStatus(t, w, http.StatusBadRequest)
}

func TestCreateAttendance(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		status   int
		wantJobs int
	}{
		{"present", `{"studentId":"STU001","date":"2026-02-20","subject":"DS","status":"present"}`, http.StatusCreated, 0},
		{"absent alerts", `{"studentId":"STU001","date":"2026-02-22","subject":"DS","status":"absent"}`, http.StatusCreated, 1},
		{"bad status", `{"studentId":"STU001","date":"2026-02-20","subject":"DS","status":"late"}`, http.StatusBadRequest, 0},
		{"bad date", `{"studentId":"STU001","date":"2026-13-01","subject":"DS","status":"present"}`, http.StatusBadRequest, 0},
		{"unknown student", `{"studentId":"STU404","date":"2026-02-20","subject":"DS","status":"present"}`, http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, students := attendanceFixtures()
			q := &fakeJobs{}
			r := setupAttendanceRouter(records, students, q, rbac.Teacher, "teacher-account")

			w := doJSON(t, r, http.MethodPost, "/attendance", tt.body)
			wantStatus(t, w, tt.status)

			if got := q.types(); len(got) != tt.wantJobs {
				t.Fatalf("jobs = %v, want %d", got, tt.wantJobs)
			}
			if tt.status != http.StatusCreated {
				return
			}

			rec := decode[attendance.Record](t, w)
			if rec.ID == "" || rec.StudentID != "s1" {
				t.Fatalf("unexpected record %+v", rec)
			}

			list := doJSON(t, r, http.MethodGet, "/attendance?studentId=STU001", "")
			if !slices.Contains(recordIDs(decode[listResponse[attendance.Record]](t, list).Items), rec.ID) {
				t.Fatalf("created record %s missing from list", rec.ID)
			}
		})
	}
}

func TestUpdateAttendance_AlertsOnlyOnNewAbsence(t *testing.T) {
	records, students := attendanceFixtures()
	q := &fakeJobs{}
	r := setupAttendanceRouter(records, students, q, rbac.Teacher, "teacher-account")

	wantStatus(t, doJSON(t, r, http.MethodPatch, "/attendance/a2", `{"status":"absent"}`), http.StatusOK)
	if len(q.types()) != 0 {
		t.Fatalf("already absent should not alert: %v", q.types())
	}

	w := doJSON(t, r, http.MethodPatch, "/attendance/a1", `{"status":"absent"}`)
	wantStatus(t, w, http.StatusOK)
	if got := q.types(); len(got) != 1 || got[0] != string(jobs.JobNotifyStudent) {
		t.Fatalf("jobs = %v", got)
	}
	if rec := decode[attendance.Record](t, w); rec.Status != attendance.StatusAbsent {
		t.Fatalf("status not applied: %+v", rec)
	}

	wantStatus(t, doJSON(t, r, http.MethodPatch, "/attendance/missing", `{"status":"present"}`), http.StatusNotFound)
}
