package integration_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginEveryDemoRole(t *testing.T) {
	a := newApp(t)

	creds := map[string]string{
		seed.AdminEmail:   seed.AdminPassword,
		seed.TeacherEmail: seed.TeacherPassword,
		seed.StudentEmail: seed.StudentPassword,
		seed.ParentEmail:  seed.ParentPassword,
		seed.ClubEmail:    seed.ClubPassword,
	}
	for email, pw := range creds {
		token := a.login(t, email, pw)

		w := a.do(t, http.MethodGet, "/auth/me", token, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var me struct {
			Email string `json:"email"`
		}
		mustReadJSON(t, w, &me)
		assert.Equal(t, email, me.Email)
	}
}

func TestUnauthenticated(t *testing.T) {
	a := newApp(t)

	w := a.do(t, http.MethodGet, "/students", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	e := errorOf(t, w)
	assert.Equal(t, "missing_token", e.Error.Code)
	assert.NotEmpty(t, e.Error.RequestID)
	assert.Equal(t, e.Error.RequestID, w.Header().Get("X-Request-Id"))

	w = a.do(t, http.MethodGet, "/students", "not-a-jwt", "")
	assert.Equal(t, "invalid_token", errorOf(t, w).Error.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	a := newApp(t)
	token := a.login(t, seed.TeacherEmail, seed.TeacherPassword)

	require.Equal(t, http.StatusNoContent, a.do(t, http.MethodPost, "/auth/logout", token, "").Code)

	w := a.do(t, http.MethodGet, "/auth/me", token, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_token", errorOf(t, w).Error.Code)

	// a fresh login still works
	fresh := a.login(t, seed.TeacherEmail, seed.TeacherPassword)
	assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/auth/me", fresh, "").Code)
}

func TestTokenLifetimeIsSevenDays(t *testing.T) {
	a := newApp(t)

	me, err := a.store.Accounts().GetByEmail(t.Context(), seed.TeacherEmail)
	require.NoError(t, err)

	mint := func(age time.Duration) string {
		aged := a.tokens.WithClock(func() time.Time { return time.Now().Add(-age) })
		token, _, err := aged.IssueToken(me.ID, me.Email, string(me.Role))
		require.NoError(t, err)
		return token
	}

	assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/auth/me", mint(6*24*time.Hour), "").Code)

	w := a.do(t, http.MethodGet, "/auth/me", mint(8*24*time.Hour), "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "expired_token", errorOf(t, w).Error.Code)
}

func TestWrongPassword(t *testing.T) {
	a := newApp(t)

	w := a.do(t, http.MethodPost, "/auth/login", "", `{"email":"`+seed.AdminEmail+`","password":"guess"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", errorOf(t, w).Error.Code)
}
