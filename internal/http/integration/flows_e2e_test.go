package integration_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feeList struct {
	Items []struct {
		ExternalID string `json:"externalId"`
		Status     string `json:"status"`
		PaidAt     string `json:"paidAt"`
	} `json:"items"`
	Count        int   `json:"count"`
	PendingTotal int64 `json:"pendingTotal"`
	PaidTotal    int64 `json:"paidTotal"`
}

type notificationList struct {
	Items []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Read  bool   `json:"read"`
	} `json:"items"`
	Unread int `json:"unread"`
}

func TestFeesTotalsAndPayTwice(t *testing.T) {
	a := newApp(t)
	student := a.login(t, seed.StudentEmail, seed.StudentPassword)

	var before feeList
	mustReadJSON(t, a.do(t, http.MethodGet, "/fees", student, ""), &before)
	assert.Equal(t, 8, before.Count)
	assert.Equal(t, int64(142500), before.PendingTotal)
	assert.Equal(t, int64(8500), before.PaidTotal)

	first := a.do(t, http.MethodPatch, "/fees/FEE001/pay", student, "")
	second := a.do(t, http.MethodPatch, "/fees/FEE001/pay", student, "")
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	var after feeList
	mustReadJSON(t, a.do(t, http.MethodGet, "/fees", student, ""), &after)
	assert.Equal(t, int64(142500-75000), after.PendingTotal)
	assert.Equal(t, int64(8500+75000), after.PaidTotal)

	// parents see the same numbers
	parent := a.login(t, seed.ParentEmail, seed.ParentPassword)
	var viaParent feeList
	mustReadJSON(t, a.do(t, http.MethodGet, "/fees", parent, ""), &viaParent)
	assert.Equal(t, after.PendingTotal, viaParent.PendingTotal)
}

func TestRequestDecisions(t *testing.T) {
	a := newApp(t)
	admin := a.login(t, seed.AdminEmail, seed.AdminPassword)

	require.Equal(t, http.StatusOK, a.do(t, http.MethodPatch, "/requests/REQ001", admin, `{"status":"approved"}`).Code)
	require.Equal(t, http.StatusOK, a.do(t, http.MethodPatch, "/requests/REQ001", admin, `{"status":"approved"}`).Code)

	w := a.do(t, http.MethodPatch, "/requests/REQ001", admin, `{"status":"rejected"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_transition", errorOf(t, w).Error.Code)

	// the requester hears about it once the worker runs
	a.drain(t)
	student := a.login(t, seed.StudentEmail, seed.StudentPassword)
	var notes notificationList
	mustReadJSON(t, a.do(t, http.MethodGet, "/notifications", student, ""), &notes)

	approved := 0
	for _, n := range notes.Items {
		if n.Title == "Request Approved" {
			approved++
		}
	}
	assert.Equal(t, 1, approved, "requester is notified once per decision")
}

func TestRequestCreationIsLimitedPerAccount(t *testing.T) {
	cfg := testConfig()
	cfg.RequestRatePerMin = 2
	a := newAppWith(t, cfg)

	student := a.login(t, seed.StudentEmail, seed.StudentPassword)
	teacher := a.login(t, seed.TeacherEmail, seed.TeacherPassword)
	body := `{"type":"Leave","fromName":"Aarav Sharma","reason":"Medical appointment"}`

	for range 2 {
		require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/requests", student, body).Code)
	}
	w := a.do(t, http.MethodPost, "/requests", student, body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// same client address, different account
	assert.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/requests", teacher, body).Code)
}

func TestConcurrentRequestDecisions(t *testing.T) {
	a := newApp(t)
	admin := a.login(t, seed.AdminEmail, seed.AdminPassword)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i, status := range []string{"approved", "rejected"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes[i] = a.do(t, http.MethodPatch, "/requests/REQ002", admin, `{"status":"`+status+`"}`).Code
		}()
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusConflict}, codes)
}

func TestTeacherAttendanceFlow(t *testing.T) {
	a := newApp(t)
	teacher := a.login(t, seed.TeacherEmail, seed.TeacherPassword)

	w := a.do(t, http.MethodPost, "/attendance", teacher,
		`{"studentId":"STU001","date":"2026-03-02","subject":"Data Structures","status":"absent"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var rec struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	mustReadJSON(t, w, &rec)

	w = a.do(t, http.MethodPatch, "/attendance/"+rec.ID, teacher, `{"status":"present"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	student := a.login(t, seed.StudentEmail, seed.StudentPassword)
	var mine struct {
		Items []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"items"`
	}
	mustReadJSON(t, a.do(t, http.MethodGet, "/attendance?date=2026-03-02", student, ""), &mine)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, "present", mine.Items[0].Status)

	// the absence alert reached student and guardian
	a.drain(t)
	parent := a.login(t, seed.ParentEmail, seed.ParentPassword)
	for _, token := range []string{student, parent} {
		var notes notificationList
		mustReadJSON(t, a.do(t, http.MethodGet, "/notifications", token, ""), &notes)

		titles := make([]string, 0, len(notes.Items))
		for _, n := range notes.Items {
			titles = append(titles, n.Title)
		}
		assert.Contains(t, titles, "Attendance Alert")
	}
}

func TestMarksRecomputed(t *testing.T) {
	a := newApp(t)
	teacher := a.login(t, seed.TeacherEmail, seed.TeacherPassword)

	w := a.do(t, http.MethodPost, "/marks", teacher,
		`{"studentId":"STU001","subject":"Compilers","internal1":20,"internal2":21,"assignment":9,"total":120,"grade":"A+"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var m markRow
	mustReadJSON(t, w, &m)
	assert.Equal(t, 50, m.Total)
	assert.Equal(t, "C", m.Grade)

	w = a.do(t, http.MethodPut, "/marks/"+m.ID, teacher, `{"internal1":50}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	mustReadJSON(t, w, &m)
	assert.Equal(t, 80, m.Total)
	assert.Equal(t, "A", m.Grade)
}

func TestNotificationsReadAll(t *testing.T) {
	a := newApp(t)
	admin := a.login(t, seed.AdminEmail, seed.AdminPassword)

	w := a.do(t, http.MethodPost, "/announcements", admin,
		`{"title":"Campus closed Friday","content":"Maintenance work.","author":"Admin Office","priority":"high"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a.drain(t)

	club := a.login(t, seed.ClubEmail, seed.ClubPassword)
	var notes notificationList
	mustReadJSON(t, a.do(t, http.MethodGet, "/notifications", club, ""), &notes)
	require.Positive(t, notes.Unread)

	require.Equal(t, http.StatusOK, a.do(t, http.MethodPatch, "/notifications/read-all", club, "").Code)
	mustReadJSON(t, a.do(t, http.MethodGet, "/notifications", club, ""), &notes)
	assert.Zero(t, notes.Unread)
}

func TestRequestBodyMustBeJSON(t *testing.T) {
	a := newApp(t)
	admin := a.login(t, seed.AdminEmail, seed.AdminPassword)

	req := a.do(t, http.MethodPost, "/clubs", admin, "")
	assert.Equal(t, http.StatusBadRequest, req.Code)
}
