package worker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/job"
	"github.com/gin-gonic/gin"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func probe(t *testing.T, h http.Handler, path string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s: %v (%s)", path, err, w.Body.String())
	}
	return w.Code, body
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dbErr := errors.New("connection refused")
	var pingErr error
	w := New(Config{WorkerID: "test"}, &fakeRepo{next: []job.Job{{ID: "j1", Type: "t", MaxAttempts: 3}}},
		execFunc(func(context.Context, job.Job) error { return nil }), nil)
	h := w.HealthHandler(pingFunc(func(context.Context) error { return pingErr }))

	if code, _ := probe(t, h, "/healthz"); code != http.StatusOK {
		t.Fatalf("healthz = %d", code)
	}

	if code, body := probe(t, h, "/readyz"); code != http.StatusServiceUnavailable || body["status"] != "not_ready" {
		t.Fatalf("readyz before start = %d %v", code, body)
	}

	w.setReady(true)
	pingErr = dbErr
	code, body := probe(t, h, "/readyz")
	if code != http.StatusServiceUnavailable {
		t.Fatalf("readyz with db down = %d", code)
	}
	if checks, _ := body["checks"].(map[string]any); checks["db"] != dbErr.Error() {
		t.Fatalf("checks = %v", body["checks"])
	}

	pingErr = nil
	if _, err := w.ProcessOne(context.Background()); err != nil {
		t.Fatalf("process: %v", err)
	}
	code, body = probe(t, h, "/readyz")
	if code != http.StatusOK || body["status"] != "ready" {
		t.Fatalf("readyz = %d %v", code, body)
	}
	if _, ok := body["jobs"]; !ok {
		t.Fatalf("jobs tally missing: %v", body)
	}
}
