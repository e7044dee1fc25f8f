package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/notification"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/handlers"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
	"github.com/gin-gonic/gin"
)

type fakeNotifications struct {
	rows []notification.Notification
}

func (f *fakeNotifications) ListByAccount(_ context.Context, accountID string) ([]notification.Notification, error) {
	var out []notification.Notification
	for _, n := range f.rows {
		if n.AccountID == accountID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, id, accountID string) (notification.Notification, error) {
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].AccountID == accountID {
			f.rows[i].Read = true
			return f.rows[i], nil
		}
	}
	return notification.Notification{}, notification.ErrNotFound
}

func (f *fakeNotifications) MarkAllRead(_ context.Context, accountID string) (int64, error) {
	var n int64
	for i := range f.rows {
		if f.rows[i].AccountID == accountID && !f.rows[i].Read {
			f.rows[i].Read = true
			n++
		}
	}
	return n, nil
}

func setupNotificationsRouter(store handlers.NotificationsStore, accountID string) *gin.Engine {
	r := gin.New()
	r.Use(as(rbac.Student, accountID, "s1"))

	h := handlers.NewNotificationsHandler(store)
	r.GET("/notifications", h.List)
	r.PATCH("/notifications/read-all", h.MarkAllRead)
	r.PATCH("/notifications/:id/read", h.MarkRead)
	return r
}

func TestNotifications_ReadFlow(t *testing.T) {
	store := &fakeNotifications{rows: []notification.Notification{
		{ID: "n1", AccountID: "me", Title: "Marks Published"},
		{ID: "n2", AccountID: "me", Title: "Fee Reminder"},
		{ID: "n3", AccountID: "someone-else", Title: "Hidden"},
	}}
	r := setupNotificationsRouter(store, "me")

	type listWithUnread struct {
		Items  []notification.Notification `json:"items"`
		Count  int                         `json:"count"`
		Unread int                         `json:"unread"`
	}

	resp := decode[listWithUnread](t, doJSON(t, r, http.MethodGet, "/notifications", ""))
	if resp.Count != 2 || resp.Unread != 2 {
		t.Fatalf("unexpected list %+v", resp)
	}

	wantStatus(t, doJSON(t, r, http.MethodPatch, "/notifications/n1/read", ""), http.StatusOK)
	wantStatus(t, doJSON(t, r, http.MethodPatch, "/notifications/n3/read", ""), http.StatusNotFound)

	w := doJSON(t, r, http.MethodPatch, "/notifications/read-all", "")
	wantStatus(t, w, http.StatusOK)
	if got := decode[struct {
		Updated int64 `json:"updated"`
	}](t, w); got.Updated != 1 {
		t.Fatalf("want 1 updated, got %d", got.Updated)
	}

	resp = decode[listWithUnread](t, doJSON(t, r, http.MethodGet, "/notifications", ""))
	if resp.Unread != 0 {
		t.Fatalf("want 0 unread, got %d", resp.Unread)
	}
	if store.rows[2].Read {
		t.Fatal("another account's notification was touched")
	}
}
