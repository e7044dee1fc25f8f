package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/auth"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/config"
	apphttp "github.com/aryanbhojgaria/oc-2-day-octo/internal/http"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/jobs"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/queue/worker"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/repo/memory"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/seed"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "integration-secret-0123456789abcdef"

type app struct {
	router http.Handler
	store  *memory.Store
	tokens *auth.Manager
	worker *worker.Worker
}

func testConfig() config.Config {
	return config.Config{
		Env:               "test",
		Store:             config.StoreMemory,
		JWTSecret:         testSecret,
		JWTTTLHours:       168,
		CORSOrigins:       []string{"http://localhost:3000"},
		LoginRatePerMin:   1000,
		RequestRatePerMin: 1000,
		MaxBodyBytes:      1 << 20,
	}
}

// newApp wires the real router over a freshly seeded memory store.
func newApp(t *testing.T) *app {
	t.Helper()
	return newAppWith(t, testConfig())
}

func newAppWith(t *testing.T, cfg config.Config) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := memory.New()
	require.NoError(t, seed.Run(context.Background(), mem, seed.Options{HashCost: bcrypt.MinCost}))

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL())

	router := apphttp.NewRouter(apphttp.Deps{
		Config:   cfg,
		Stores:   apphttp.MemoryStores(mem),
		Tokens:   tokens,
		Verifier: auth.NewVerifier(tokens, auth.NewMemoryDenylist()),
	})

	w := worker.New(worker.Config{WorkerID: "test"}, mem.Jobs(),
		jobs.NewProcessor(mem.Notifications(), mem.Accounts(), mem.Students()), nil)

	return &app{router: router, store: mem, tokens: tokens, worker: w}
}

// drain runs queued notification jobs to completion.
func (a *app) drain(t *testing.T) {
	t.Helper()
	for {
		processed, err := a.worker.ProcessOne(context.Background())
		require.NoError(t, err)
		if !processed {
			return
		}
	}
}

func (a *app) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) login(t *testing.T, email, password string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	mustReadJSON(t, w, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func mustReadJSON[T any](t *testing.T, w *httptest.ResponseRecorder, out *T) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}
}

type apiError struct {
	Error struct {
		Code      string          `json:"code"`
		Message   string          `json:"message"`
		RequestID string          `json:"requestId"`
		Details   json.RawMessage `json:"details"`
	} `json:"error"`
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) apiError {
	t.Helper()
	var e apiError
	mustReadJSON(t, w, &e)
	return e
}
