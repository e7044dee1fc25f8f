package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/cache"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/timetable"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/handlers"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/gin-gonic/gin"
)

type fakeTimetable struct {
	rows  map[timetable.Role][]timetable.Row
	reads int
}

func (f *fakeTimetable) ListByRole(_ context.Context, role timetable.Role) ([]timetable.Row, error) {
	f.reads++
	return f.rows[role], nil
}

func (f *fakeTimetable) Upsert(_ context.Context, role timetable.Role, day string, slots []timetable.Slot) (timetable.Row, error) {
	row := timetable.Row{ID: string(role) + day, Role: role, Day: day, Slots: slots, UpdatedAt: time.Now().UTC()}
	f.rows[role] = append(f.rows[role], row)
	return row, nil
}

func setupTimetableRouter(store handlers.TimetableStore, role rbac.Role) *gin.Engine {
	r := gin.New()
	r.Use(as(role, "caller"))

	h := handlers.NewTimetableHandler(store, cache.New[[]timetable.Row](time.Minute))
	r.GET("/timetable", h.Mine)
	r.GET("/timetable/:role", h.ByRole)
	r.PUT("/timetable/:role/:day", h.Upsert)
	return r
}

func timetableFixture() *fakeTimetable {
	return &fakeTimetable{rows: map[timetable.Role][]timetable.Row{
		timetable.RoleStudent: {{ID: "st-mon", Role: timetable.RoleStudent, Day: "Monday", Slots: []timetable.Slot{{Subject: "Data Structures"}}}},
		timetable.RoleTeacher: {{ID: "te-mon", Role: timetable.RoleTeacher, Day: "Monday", Slots: []timetable.Slot{{Subject: "CS-301"}}}},
	}}
}

func TestTimetable_MinePicksRole(t *testing.T) {
	tests := []struct {
		role rbac.Role
		want timetable.Role
	}{
		{rbac.Teacher, timetable.RoleTeacher},
		{rbac.Student, timetable.RoleStudent},
		{rbac.Parent, timetable.RoleStudent},
		{rbac.Club, timetable.RoleStudent},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			r := setupTimetableRouter(timetableFixture(), tt.role)

			w := doJSON(t, r, http.MethodGet, "/timetable", "")
			wantStatus(t, w, http.StatusOK)

			resp := decode[struct {
				Role  timetable.Role  `json:"role"`
				Items []timetable.Row `json:"items"`
			}](t, w)
			if resp.Role != tt.want || len(resp.Items) != 1 || resp.Items[0].Role != tt.want {
				t.Fatalf("unexpected timetable %+v", resp)
			}
		})
	}
}

func TestTimetable_UnknownRole(t *testing.T) {
	r := setupTimetableRouter(timetableFixture(), rbac.Admin)
	wantStatus(t, doJSON(t, r, http.MethodGet, "/timetable/janitor", ""), http.StatusBadRequest)
}

func TestTimetable_CacheInvalidatedOnUpsert(t *testing.T) {
	store := timetableFixture()
	r := setupTimetableRouter(store, rbac.Admin)

	doJSON(t, r, http.MethodGet, "/timetable/student", "")
	doJSON(t, r, http.MethodGet, "/timetable/student", "")
	if store.reads != 1 {
		t.Fatalf("second read should come from cache, store reads=%d", store.reads)
	}

	w := doJSON(t, r, http.MethodPut, "/timetable/student/tuesday", `{"slots":[{"subject":"Networks","room":"B-12"}]}`)
	wantStatus(t, w, http.StatusOK)
	if row := decode[timetable.Row](t, w); row.Day != "Tuesday" {
		t.Fatalf("day not canonicalised: %q", row.Day)
	}

	resp := decode[listResponse[timetable.Row]](t, doJSON(t, r, http.MethodGet, "/timetable/student", ""))
	if resp.Count != 2 || store.reads != 2 {
		t.Fatalf("cache not invalidated: count=%d reads=%d", resp.Count, store.reads)
	}
}

func TestTimetable_UpsertBadDay(t *testing.T) {
	r := setupTimetableRouter(timetableFixture(), rbac.Admin)
	wantStatus(t, doJSON(t, r, http.MethodPut, "/timetable/student/funday", `{"slots":[]}`), http.StatusBadRequest)
}
